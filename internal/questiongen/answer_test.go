package questiongen

import "testing"

func TestParseChoice(t *testing.T) {
	q := validQuestion()
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"3", 3, false},
		{" 1 ", 1, false},
		{"c", 3, false},
		{"B)", 2, false},
		{"d.", 4, false},
		{"united states", 3, false},
		{"0", 0, true},
		{"5", 0, true},
		{"e", 0, true},
		{"Germany", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseChoice(q, tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseChoice(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseChoice(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseChoice_YearOptions(t *testing.T) {
	q := validQuestion()
	q.Options = [NumChoices]string{"1939", "1941", "1945", "1918"}

	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"1945", 3, false},
		{" 1918 ", 4, false},
		{"2", 2, false},
		{"1944", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseChoice(q, tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseChoice(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseChoice(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCheckAnswer(t *testing.T) {
	q := validQuestion()
	if !CheckAnswer(q, 3) {
		t.Error("3 should be correct")
	}
	for _, c := range []int{0, 1, 2, 4, 9} {
		if CheckAnswer(q, c) {
			t.Errorf("%d should be incorrect", c)
		}
	}
}
