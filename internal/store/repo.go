package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	SessionID string    // exact session match, empty = all sessions
	Purpose   string    // LLM events only
}

// TopicProgress aggregates answers for one topic at one level.
type TopicProgress struct {
	Topic    string `json:"topic"`
	Level    string `json:"level"`
	Attempts int    `json:"attempts"`
	Correct  int    `json:"correct"`
}

// SnapshotData captures the learner's cumulative progress at a point in time.
type SnapshotData struct {
	Version           int             `json:"version"`
	SessionsCompleted int             `json:"sessions_completed"`
	Progress          []TopicProgress `json:"progress,omitempty"`
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// SessionEventData records a session lifecycle transition.
// Action is one of "start", "end" or "retake".
type SessionEventData struct {
	SessionID       string
	Action          string
	Topic           string
	Level           string
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int
}

// AnswerEventData records one answered question.
type AnswerEventData struct {
	SessionID     string
	QuestionID    string
	Topic         string
	Level         string
	QuestionText  string
	Choice        int
	CorrectChoice int
	Correct       bool
	TimeMs        int64
}

// AnswerEventRecord is a persisted answer event.
type AnswerEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// SessionSummaryRecord is a completed session as recorded by its "end" event.
type SessionSummaryRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a persisted LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// RecommendationEventData records a video suggested to the learner.
// Kind is "answer" for per-question suggestions and "final" for the
// end-of-quiz list. Video fields are empty when no video was found.
type RecommendationEventData struct {
	SessionID  string
	Kind       string
	Topic      string
	Level      string
	Query      string
	VideoID    string
	VideoTitle string
	VideoURL   string
}

// RecommendationRecord is a persisted recommendation event.
type RecommendationRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	RecommendationEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	AppendRecommendation(ctx context.Context, data RecommendationEventData) error

	// QueryAnswerEvents returns answers in sequence order (oldest first).
	QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEventRecord, error)

	// QuerySessionSummaries returns completed sessions, most recent first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// QueryLLMEvents returns LLM events, most recent first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns a single LLM event by ID, or nil if not found.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// QueryRecommendations returns recommendations in sequence order.
	QueryRecommendations(ctx context.Context, opts QueryOpts) ([]RecommendationRecord, error)
}
