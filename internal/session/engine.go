package session

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/histquiz/internal/adapt"
	"github.com/abhisek/histquiz/internal/logging"
	"github.com/abhisek/histquiz/internal/metrics"
	"github.com/abhisek/histquiz/internal/questiongen"
	"github.com/abhisek/histquiz/internal/recommend"
	"github.com/abhisek/histquiz/internal/store"
	"github.com/abhisek/histquiz/internal/topics"
)

// DefaultAttempts is how many times a question is generated before giving up.
const DefaultAttempts = 3

// snapshotsKept bounds the snapshot table.
const snapshotsKept = 20

// Deps are the collaborators an Engine drives. Everything except
// Generator and Planner may be nil.
type Deps struct {
	Generator questiongen.Generator
	Planner   *Planner
	Events    store.EventRepo
	Snapshots store.SnapshotRepo
	Recommend *recommend.Service
	Metrics   *metrics.Metrics

	Audience string
	Attempts int
}

// Engine runs the ask, answer, adapt loop for one learner. It is used by
// both the TUI and the plain-text quiz.
type Engine struct {
	deps  Deps
	State *SessionState

	// obs is the answer log the focus model trains on, including this session.
	obs []adapt.Observation
}

// NewEngine creates an Engine with a fresh session state.
func NewEngine(deps Deps, cfg Config, sessionID string) *Engine {
	if deps.Attempts <= 0 {
		deps.Attempts = DefaultAttempts
	}
	return &Engine{deps: deps, State: NewSessionState(sessionID, cfg)}
}

// Begin loads the answer log, picks the opening focus and records the
// session start.
func (e *Engine) Begin(ctx context.Context) Focus {
	log := logging.FromContext(ctx)
	if e.deps.Events != nil {
		recs, err := e.deps.Events.QueryAnswerEvents(ctx, store.QueryOpts{})
		if err != nil {
			log.Warn().Err(err).Msg("failed to load answer log")
		}
		e.obs = Observations(recs)
	}

	f := e.deps.Planner.Start(e.obs)
	SetFocus(e.State, f.Topic, f.Level)
	log.Info().
		Str("session_id", e.State.SessionID).
		Str("topic", f.Topic.Name).
		Str("level", f.Level.String()).
		Bool("from_model", f.FromModel).
		Msg("session started")

	e.appendSession(ctx, "start")
	return f
}

// NextQuestion generates and activates the next question.
func (e *Engine) NextQuestion(ctx context.Context) (*questiongen.Question, error) {
	input, err := e.PrepareQuestion()
	if err != nil {
		return nil, err
	}
	q, err := e.Generate(ctx, input)
	if err != nil {
		return nil, err
	}
	e.Activate(q)
	return q, nil
}

// PrepareQuestion moves the session to loading and returns the request
// for the next question.
func (e *Engine) PrepareQuestion() (questiongen.GenerateInput, error) {
	if Done(e.State) {
		return questiongen.GenerateInput{}, fmt.Errorf("quiz finished after %d questions", e.State.Config.MaxQuestions)
	}
	e.State.Phase = PhaseLoading
	return Input(e.State, e.deps.Audience), nil
}

// Generate runs the generator with retries. It does not touch the session
// state and is safe to call from a background goroutine.
func (e *Engine) Generate(ctx context.Context, input questiongen.GenerateInput) (*questiongen.Question, error) {
	q, err := questiongen.GenerateWithRetry(ctx, e.deps.Generator, input, e.deps.Attempts)
	e.deps.Metrics.ObserveQuestion(input.Topic.Name, input.Level.String(), err == nil)
	if err != nil {
		log := logging.FromContext(ctx)
		log.Error().Err(err).
			Str("topic", input.Topic.Name).
			Str("level", input.Level.String()).
			Msg("question generation failed")
		return nil, fmt.Errorf("generating question: %w", err)
	}
	return q, nil
}

// Activate makes q the current question.
func (e *Engine) Activate(q *questiongen.Question) {
	SetQuestion(e.State, q)
}

// Answer scores choice, persists it and starts the video lookup.
func (e *Engine) Answer(ctx context.Context, choice int) (bool, error) {
	correct, err := HandleAnswer(e.State, choice)
	if err != nil {
		return false, err
	}

	r := e.State.History[len(e.State.History)-1]
	e.obs = append(e.obs, adapt.Observation{Topic: r.Topic, Level: r.Level, Correct: r.Correct})
	e.deps.Metrics.ObserveAnswer(r.Level.String(), correct)

	if e.deps.Events != nil {
		if data, ok := AnswerEvent(e.State); ok {
			if err := e.deps.Events.AppendAnswerEvent(ctx, data); err != nil {
				log := logging.FromContext(ctx)
				log.Warn().Err(err).Msg("failed to record answer")
			}
		}
	}

	if e.deps.Recommend != nil {
		e.deps.Recommend.Request(ctx, recommend.AnswerRequest{
			SessionID:   e.State.SessionID,
			AnswerInput: e.AnswerInput(r.Topic, r.Level),
		})
	}
	return correct, nil
}

// AnswerInput builds the per-answer recommendation input from the log.
func (e *Engine) AnswerInput(topic string, level topics.Level) recommend.AnswerInput {
	return recommend.AnswerInput{
		Topic:       topic,
		Level:       level,
		Performance: adapt.Performance(e.obs, topic, level),
	}
}

// Advance applies the planner's next focus. It returns false when the quiz
// is over.
func (e *Engine) Advance(ctx context.Context) bool {
	f := e.deps.Planner.Next(e.State, e.obs)
	before := e.State.Level
	e.State.Topic = f.Topic
	Advance(e.State, f.Level)

	if e.State.LastLevelChange != 0 {
		e.deps.Metrics.ObserveLevelChange(e.State.LastLevelChange)
		log := logging.FromContext(ctx)
		log.Debug().
			Str("from", before.String()).
			Str("to", f.Level.String()).
			Msg("difficulty changed")
	}
	return !Done(e.State)
}

// Finish records the session end and a progress snapshot.
func (e *Engine) Finish(ctx context.Context) *Summary {
	e.State.Elapsed = time.Since(e.State.StartTime)
	e.State.Phase = PhaseSummary
	e.appendSession(ctx, "end")
	e.saveSnapshot(ctx)
	return BuildSummary(e.State)
}

// Retake starts a new session under newID, keeping the answer log.
func (e *Engine) Retake(ctx context.Context, newID string) Focus {
	if e.deps.Recommend != nil {
		e.deps.Recommend.Cancel()
	}
	Reset(e.State, newID)
	e.appendSession(ctx, "retake")

	f := e.deps.Planner.Start(e.obs)
	SetFocus(e.State, f.Topic, f.Level)
	return f
}

// Observations returns the answer log seen by the focus model.
func (e *Engine) Observations() []adapt.Observation { return e.obs }

func (e *Engine) appendSession(ctx context.Context, action string) {
	if e.deps.Events == nil {
		return
	}
	s := e.State
	err := e.deps.Events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:       s.SessionID,
		Action:          action,
		Topic:           s.Topic.Name,
		Level:           s.Level.String(),
		QuestionsServed: s.Answered(),
		CorrectAnswers:  s.Score,
		DurationSecs:    int(s.Elapsed.Seconds()),
	})
	if err != nil {
		log := logging.FromContext(ctx)
		log.Warn().Err(err).Str("action", action).Msg("failed to record session event")
	}
}

func (e *Engine) saveSnapshot(ctx context.Context) {
	if e.deps.Snapshots == nil {
		return
	}
	log := logging.FromContext(ctx)

	completed := 1
	if prev, err := e.deps.Snapshots.Latest(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to load snapshot")
	} else if prev != nil {
		completed = prev.Data.SessionsCompleted + 1
	}

	snap := &store.Snapshot{Data: store.SnapshotData{
		Version:           1,
		SessionsCompleted: completed,
		Progress:          Progress(e.obs),
	}}
	if err := e.deps.Snapshots.Save(ctx, snap); err != nil {
		log.Warn().Err(err).Msg("failed to save snapshot")
		return
	}
	if err := e.deps.Snapshots.Prune(ctx, snapshotsKept); err != nil {
		log.Warn().Err(err).Msg("failed to prune snapshots")
	}
}

// Progress aggregates observations per topic and level in first-seen order.
func Progress(obs []adapt.Observation) []store.TopicProgress {
	type key struct {
		topic string
		level topics.Level
	}
	index := make(map[key]int)
	var out []store.TopicProgress
	for _, o := range obs {
		k := key{o.Topic, o.Level}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, store.TopicProgress{Topic: o.Topic, Level: o.Level.String()})
		}
		out[i].Attempts++
		if o.Correct {
			out[i].Correct++
		}
	}
	return out
}
