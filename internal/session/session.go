package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/histquiz/internal/adapt"
	"github.com/abhisek/histquiz/internal/questiongen"
	"github.com/abhisek/histquiz/internal/topics"
)

// MaxRecentErrors is the maximum number of recent errors tracked per topic.
const MaxRecentErrors = 5

var (
	ErrNoQuestion    = errors.New("no active question")
	ErrAlreadyAnswer = errors.New("question already answered")
)

// QuestionID formats the log identifier for question n (0-based).
func QuestionID(topic string, level topics.Level, n int) string {
	return fmt.Sprintf("%s_%s_%d", topic, level, n)
}

// Answered returns the number of questions answered so far.
func (s *SessionState) Answered() int { return len(s.History) }

// Done reports whether every question in the quiz has been answered.
func Done(state *SessionState) bool {
	return state.Answered() >= state.Config.MaxQuestions
}

// Accuracy returns the share of correct answers, or 0 before any answer.
func Accuracy(state *SessionState) float64 {
	if state.Answered() == 0 {
		return 0
	}
	return float64(state.Score) / float64(state.Answered())
}

// SetFocus sets the topic and level the next question is requested at.
func SetFocus(state *SessionState, topic topics.Topic, level topics.Level) {
	state.Topic = topic
	state.Level = level
}

// Input builds the question request for the current focus.
func Input(state *SessionState, audience string) questiongen.GenerateInput {
	return questiongen.GenerateInput{
		Topic:          state.Topic,
		Level:          state.Level,
		Audience:       audience,
		PriorQuestions: state.PriorQuestions[state.Topic.Name],
		RecentErrors:   state.RecentErrors[state.Topic.Name],
	}
}

// SetQuestion makes q the active question. It assigns q.ID and records
// the question text for de-duplication.
func SetQuestion(state *SessionState, q *questiongen.Question) {
	if q.Topic == "" {
		q.Topic = state.Topic.Name
	}
	q.Level = state.Level
	q.ID = QuestionID(q.Topic, q.Level, state.Answered())

	state.CurrentQuestion = q
	state.QuestionStartTime = time.Now()
	state.PriorQuestions[q.Topic] = append(state.PriorQuestions[q.Topic], q.Text)
	state.Phase = PhaseActive
}

// HandleAnswer scores choice (1-based) against the active question and
// appends it to the history.
func HandleAnswer(state *SessionState, choice int) (bool, error) {
	q := state.CurrentQuestion
	if q == nil {
		return false, ErrNoQuestion
	}
	if state.Phase != PhaseActive {
		return false, ErrAlreadyAnswer
	}
	if choice < 1 || choice > questiongen.NumChoices {
		return false, fmt.Errorf("choice %d out of range 1-%d", choice, questiongen.NumChoices)
	}

	correct := questiongen.CheckAnswer(q, choice)
	state.LastAnswerCorrect = correct
	if correct {
		state.Score++
	}

	state.History = append(state.History, Record{
		QuestionID:    q.ID,
		Topic:         q.Topic,
		Level:         q.Level,
		Question:      q.Text,
		Chosen:        choice,
		CorrectChoice: q.Correct,
		Correct:       correct,
		TimeMs:        time.Since(state.QuestionStartTime).Milliseconds(),
	})

	tr := state.PerTopicResults[q.Topic]
	if tr == nil {
		tr = &TopicResult{Topic: q.Topic}
		state.PerTopicResults[q.Topic] = tr
		state.topicOrder = append(state.topicOrder, q.Topic)
	}
	tr.Attempted++
	if correct {
		tr.Correct++
	}

	if !correct {
		errs := append(state.RecentErrors[q.Topic], BuildErrorContext(q, choice))
		if len(errs) > MaxRecentErrors {
			errs = errs[len(errs)-MaxRecentErrors:]
		}
		state.RecentErrors[q.Topic] = errs
	}

	state.Phase = PhaseFeedback
	return correct, nil
}

// Advance clears the answered question and applies the next level. The
// session moves to PhaseEnding once every question is answered.
func Advance(state *SessionState, next topics.Level) {
	state.CurrentQuestion = nil
	switch {
	case next > state.Level:
		state.LastLevelChange = 1
	case next < state.Level:
		state.LastLevelChange = -1
	default:
		state.LastLevelChange = 0
	}
	state.Level = next
	state.Elapsed = time.Since(state.StartTime)

	if Done(state) {
		state.Phase = PhaseEnding
		return
	}
	state.Phase = PhaseLoading
}

// Reset starts a retake under newID, keeping the configuration.
func Reset(state *SessionState, newID string) {
	*state = *NewSessionState(newID, state.Config)
}

// Outcomes converts the history for the difficulty adapter.
func Outcomes(state *SessionState) []adapt.Outcome {
	out := make([]adapt.Outcome, len(state.History))
	for i, r := range state.History {
		out[i] = adapt.Outcome{Level: r.Level, Correct: r.Correct}
	}
	return out
}

// BuildErrorContext describes a wrong answer for the question prompt.
func BuildErrorContext(q *questiongen.Question, choice int) string {
	chosen := ""
	if choice >= 1 && choice <= questiongen.NumChoices {
		chosen = q.Options[choice-1]
	}
	return fmt.Sprintf("Answered %q for '%s', correct answer was %q", chosen, q.Text, q.CorrectText())
}
