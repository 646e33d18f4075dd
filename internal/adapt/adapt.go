// Package adapt decides the difficulty of the next question.
package adapt

import "github.com/abhisek/histquiz/internal/topics"

// Outcome is one answered question as seen by the adapter.
type Outcome struct {
	Level   topics.Level
	Correct bool
}

// Config bounds the step function.
type Config struct {
	Min, Max topics.Level

	// RaiseAfter consecutive correct answers at the current level move up one level.
	RaiseAfter int

	// LowerAfter consecutive incorrect answers at the current level move down one level.
	LowerAfter int
}

// DefaultConfig returns Easy..Hard with two-answer streaks in both directions.
func DefaultConfig() Config {
	return Config{
		Min:        topics.Easy,
		Max:        topics.Hard,
		RaiseAfter: 2,
		LowerAfter: 2,
	}
}

// Next returns the level for the next question given the session history
// (oldest first) and the level the last question was asked at.
//
// Only the trailing run of outcomes at current is considered, so every level
// change requires a fresh streak at the new level.
func Next(history []Outcome, current topics.Level, cfg Config) topics.Level {
	cfg = normalize(cfg)
	current = clamp(current, cfg)

	var run []bool
	for i := len(history) - 1; i >= 0 && history[i].Level == current; i-- {
		run = append(run, history[i].Correct)
	}

	switch {
	case streak(run, true) >= cfg.RaiseAfter:
		return clamp(current+1, cfg)
	case streak(run, false) >= cfg.LowerAfter:
		return clamp(current-1, cfg)
	}
	return current
}

// RecentRatio returns the share of correct answers among the last window
// outcomes, or 0 when history is empty. A window <= 0 covers all history.
func RecentRatio(history []Outcome, window int) float64 {
	if window > 0 && len(history) > window {
		history = history[len(history)-window:]
	}
	if len(history) == 0 {
		return 0
	}
	correct := 0
	for _, o := range history {
		if o.Correct {
			correct++
		}
	}
	return float64(correct) / float64(len(history))
}

// streak counts the leading entries of run (most recent first) equal to want.
func streak(run []bool, want bool) int {
	n := 0
	for _, c := range run {
		if c != want {
			break
		}
		n++
	}
	return n
}

func normalize(cfg Config) Config {
	if cfg.RaiseAfter < 1 {
		cfg.RaiseAfter = 1
	}
	if cfg.LowerAfter < 1 {
		cfg.LowerAfter = 1
	}
	if cfg.Max < cfg.Min {
		cfg.Min, cfg.Max = cfg.Max, cfg.Min
	}
	return cfg
}

func clamp(l topics.Level, cfg Config) topics.Level {
	if l < cfg.Min {
		return cfg.Min
	}
	if l > cfg.Max {
		return cfg.Max
	}
	return l
}
