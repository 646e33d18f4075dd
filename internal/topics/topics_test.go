package topics

import "testing"

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"Easy", Easy, false},
		{"medium", Medium, false},
		{" HARD ", Hard, false},
		{"expert", Easy, true},
		{"", Easy, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelOrdering(t *testing.T) {
	levels := Levels()
	if len(levels) != 3 {
		t.Fatalf("expected 3 levels, got %d", len(levels))
	}
	for i := 1; i < len(levels); i++ {
		if levels[i] <= levels[i-1] {
			t.Errorf("levels not ascending at %d", i)
		}
	}
	if Level(7).Valid() {
		t.Error("Level(7) should be invalid")
	}
	if Level(7).String() != "Level(7)" {
		t.Errorf("String() = %q", Level(7).String())
	}
}

func TestLookup(t *testing.T) {
	catalog := DefaultTopics()

	if got, ok := Lookup(catalog, "world war ii"); !ok || got.ID != "world-war-ii" {
		t.Errorf("Lookup by name = %+v, %v", got, ok)
	}
	if got, ok := Lookup(catalog, "world-wars-general"); !ok || got.Name != "World Wars General" {
		t.Errorf("Lookup by ID = %+v, %v", got, ok)
	}
	if _, ok := Lookup(catalog, "The Cold War"); ok {
		t.Error("expected no match for The Cold War")
	}
}

func TestResolveCustom(t *testing.T) {
	got := Resolve(DefaultTopics(), "  The Cold War ")
	if got.Name != "The Cold War" {
		t.Errorf("Name = %q", got.Name)
	}
	if got.ID != "the-cold-war" {
		t.Errorf("ID = %q", got.ID)
	}
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"World War I":            "world-war-i",
		"  Ancient  Rome!! ":     "ancient-rome",
		"1920s & the Depression": "1920s-the-depression",
	}
	for in, want := range tests {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}
