package session

import (
	"time"

	"github.com/abhisek/histquiz/internal/adapt"
	"github.com/abhisek/histquiz/internal/questiongen"
	"github.com/abhisek/histquiz/internal/topics"
)

// DefaultMaxQuestions is the number of questions in a quiz.
const DefaultMaxQuestions = 6

// SessionPhase represents the current phase of the session.
type SessionPhase int

const (
	PhaseLoading  SessionPhase = iota // Waiting for the next question
	PhaseActive                       // Question displayed
	PhaseFeedback                     // Showing answer feedback
	PhaseEnding                       // All questions answered or quit confirmed
	PhaseSummary                      // Showing summary screen
)

// Config holds per-session settings.
type Config struct {
	MaxQuestions int
	StartLevel   topics.Level
	Adapt        adapt.Config
}

// DefaultConfig returns a six-question quiz starting at Easy.
func DefaultConfig() Config {
	return Config{
		MaxQuestions: DefaultMaxQuestions,
		StartLevel:   topics.Easy,
		Adapt:        adapt.DefaultConfig(),
	}
}

// Record is one answered question.
type Record struct {
	QuestionID    string
	Topic         string
	Level         topics.Level
	Question      string
	Chosen        int
	CorrectChoice int
	Correct       bool
	TimeMs        int64
}

// SessionState tracks the runtime state of an active session.
type SessionState struct {
	// SessionID is the UUID for this session.
	SessionID string

	Config Config

	// Topic and Level are what the next (or current) question is asked at.
	Topic topics.Topic
	Level topics.Level

	// CurrentQuestion is the active question being displayed (nil between questions).
	CurrentQuestion *questiongen.Question

	// Score is the count of correct answers so far.
	Score int

	// History holds every answered question in order.
	History []Record

	// PerTopicResults tracks per-topic stats for the summary screen.
	PerTopicResults map[string]*TopicResult
	topicOrder      []string

	// PriorQuestions tracks questions asked per topic in this session (for dedup).
	PriorQuestions map[string][]string

	// RecentErrors tracks recent mistakes per topic (for LLM context).
	RecentErrors map[string][]string

	StartTime         time.Time
	QuestionStartTime time.Time
	Elapsed           time.Duration

	Phase SessionPhase

	// LastAnswerCorrect records whether the most recent answer was correct.
	LastAnswerCorrect bool

	// LastLevelChange is +1, 0 or -1 for the most recent Advance.
	LastLevelChange int

	// ShowingQuitConfirm is true when the quit confirmation dialog is displayed.
	ShowingQuitConfirm bool
}

// TopicResult tracks per-topic performance within a single session.
type TopicResult struct {
	Topic     string
	Attempted int
	Correct   int
}

// Accuracy returns Correct/Attempted, or 0 before any attempt.
func (r TopicResult) Accuracy() float64 {
	if r.Attempted == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Attempted)
}

// NewSessionState creates a new session state with initialized maps.
func NewSessionState(sessionID string, cfg Config) *SessionState {
	if cfg.MaxQuestions <= 0 {
		cfg.MaxQuestions = DefaultMaxQuestions
	}
	return &SessionState{
		SessionID:       sessionID,
		Config:          cfg,
		Level:           cfg.StartLevel,
		PerTopicResults: make(map[string]*TopicResult),
		PriorQuestions:  make(map[string][]string),
		RecentErrors:    make(map[string][]string),
		StartTime:       time.Now(),
		Phase:           PhaseLoading,
	}
}
