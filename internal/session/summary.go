package session

import (
	"time"

	"github.com/abhisek/histquiz/internal/recommend"
	"github.com/abhisek/histquiz/internal/topics"
)

// LevelResult tracks performance at one difficulty level.
type LevelResult struct {
	Level     topics.Level
	Attempted int
	Correct   int
}

// Summary holds the data displayed on the summary screen.
type Summary struct {
	SessionID      string
	Duration       time.Duration
	TotalQuestions int
	TotalCorrect   int
	Accuracy       float64
	Percent        float64
	Band           recommend.Band
	FinalLevel     topics.Level
	TopicResults   []TopicResult
	LevelResults   []LevelResult
}

// BuildSummary creates a Summary from the current session state.
// Topic and level results keep first-seen order.
func BuildSummary(state *SessionState) *Summary {
	topicsOut := make([]TopicResult, 0, len(state.topicOrder))
	for _, name := range state.topicOrder {
		topicsOut = append(topicsOut, *state.PerTopicResults[name])
	}

	var levels []LevelResult
	index := make(map[topics.Level]int)
	for _, r := range state.History {
		i, ok := index[r.Level]
		if !ok {
			i = len(levels)
			index[r.Level] = i
			levels = append(levels, LevelResult{Level: r.Level})
		}
		levels[i].Attempted++
		if r.Correct {
			levels[i].Correct++
		}
	}

	duration := state.Elapsed
	if duration == 0 {
		duration = time.Since(state.StartTime)
	}

	pct := recommend.Percent(state.Score, state.Answered())
	return &Summary{
		SessionID:      state.SessionID,
		Duration:       duration,
		TotalQuestions: state.Answered(),
		TotalCorrect:   state.Score,
		Accuracy:       Accuracy(state),
		Percent:        pct,
		Band:           recommend.BandFor(pct),
		FinalLevel:     state.Level,
		TopicResults:   topicsOut,
		LevelResults:   levels,
	}
}
