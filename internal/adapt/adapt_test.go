package adapt

import (
	"math"
	"testing"

	"github.com/abhisek/histquiz/internal/topics"
)

func outcomes(level topics.Level, results ...bool) []Outcome {
	out := make([]Outcome, len(results))
	for i, r := range results {
		out[i] = Outcome{Level: level, Correct: r}
	}
	return out
}

func TestNext(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name    string
		history []Outcome
		current topics.Level
		want    topics.Level
	}{
		{"empty history", nil, topics.Easy, topics.Easy},
		{"one correct", outcomes(topics.Easy, true), topics.Easy, topics.Easy},
		{"two correct raises", outcomes(topics.Easy, true, true), topics.Easy, topics.Medium},
		{"two incorrect lowers", outcomes(topics.Medium, false, false), topics.Medium, topics.Easy},
		{"mixed keeps", outcomes(topics.Medium, true, false), topics.Medium, topics.Medium},
		{"clamped at hard", outcomes(topics.Hard, true, true, true), topics.Hard, topics.Hard},
		{"clamped at easy", outcomes(topics.Easy, false, false), topics.Easy, topics.Easy},
		{"streak broken by miss", outcomes(topics.Easy, true, false, true), topics.Easy, topics.Easy},
		{
			name:    "streak at previous level ignored",
			history: append(outcomes(topics.Easy, true, true), outcomes(topics.Medium, true)...),
			current: topics.Medium,
			want:    topics.Medium,
		},
		{
			name:    "fresh streak at new level",
			history: append(outcomes(topics.Easy, true, true), outcomes(topics.Medium, true, true)...),
			current: topics.Medium,
			want:    topics.Hard,
		},
		{
			name:    "last question at other level",
			history: outcomes(topics.Hard, true, true),
			current: topics.Easy,
			want:    topics.Easy,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Next(tt.history, tt.current, cfg); got != tt.want {
				t.Errorf("Next() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNext_CustomBounds(t *testing.T) {
	cfg := Config{Min: topics.Medium, Max: topics.Medium, RaiseAfter: 1, LowerAfter: 1}
	if got := Next(outcomes(topics.Medium, true), topics.Medium, cfg); got != topics.Medium {
		t.Errorf("got %v, want Medium", got)
	}
	if got := Next(nil, topics.Easy, cfg); got != topics.Medium {
		t.Errorf("current below Min should clamp, got %v", got)
	}
}

func TestNext_ZeroStreakTreatedAsOne(t *testing.T) {
	cfg := Config{Min: topics.Easy, Max: topics.Hard}
	if got := Next(outcomes(topics.Easy, true), topics.Easy, cfg); got != topics.Medium {
		t.Errorf("got %v, want Medium", got)
	}
}

func TestRecentRatio(t *testing.T) {
	h := outcomes(topics.Easy, false, false, true, true)
	tests := []struct {
		window int
		want   float64
	}{
		{0, 0.5},
		{2, 1},
		{3, 2.0 / 3.0},
		{10, 0.5},
	}
	for _, tt := range tests {
		if got := RecentRatio(h, tt.window); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("RecentRatio(window=%d) = %v, want %v", tt.window, got, tt.want)
		}
	}
	if RecentRatio(nil, 3) != 0 {
		t.Error("empty history should be 0")
	}
}
