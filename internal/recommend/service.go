package recommend

import (
	"context"
	"sync"

	"github.com/abhisek/histquiz/internal/logging"
	"github.com/abhisek/histquiz/internal/metrics"
	"github.com/abhisek/histquiz/internal/store"
	"github.com/abhisek/histquiz/internal/youtube"
)

// Event kinds recorded in the recommendation log.
const (
	KindAnswer = "answer"
	KindFinal  = "final"
)

// AnswerRequest asks for a video after a question was answered.
type AnswerRequest struct {
	SessionID string
	AnswerInput
}

// AnswerResult is the outcome of an AnswerRequest.
type AnswerResult struct {
	Queries []string
	Pick    *Recommendation // nil when no query resolved
}

// FinalResult is the end-of-quiz recommendation list.
type FinalResult struct {
	Band    Band
	Percent float64
	Items   []Recommendation
}

// Service resolves recommendations and records them. Per-answer requests
// run in the background so the quiz never waits on them.
type Service struct {
	rec      *Recommender
	searcher youtube.Searcher
	repo     store.EventRepo
	metrics  *metrics.Metrics

	mu      sync.Mutex
	gen     int
	pending *AnswerResult
	ready   bool
}

// NewService creates a Service. searcher, repo and m may be nil.
func NewService(rec *Recommender, searcher youtube.Searcher, repo store.EventRepo, m *metrics.Metrics) *Service {
	return &Service{rec: rec, searcher: searcher, repo: repo, metrics: m}
}

// Request starts a per-answer lookup. Only one request is pending at a
// time; a new request discards the result of an older one.
func (s *Service) Request(ctx context.Context, req AnswerRequest) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.pending = nil
	s.ready = false
	s.mu.Unlock()

	go func() {
		res := s.Answer(ctx, req)
		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.gen {
			return
		}
		s.pending = res
		s.ready = true
	}()
}

// Consume returns the pending result if one is ready and clears the slot.
func (s *Service) Consume() (*AnswerResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return nil, false
	}
	res := s.pending
	s.pending = nil
	s.ready = false
	return res, true
}

// Cancel discards any in-flight or unconsumed result.
func (s *Service) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.pending = nil
	s.ready = false
}

// Answer resolves a per-answer recommendation synchronously.
func (s *Service) Answer(ctx context.Context, req AnswerRequest) *AnswerResult {
	queries, err := s.rec.AnswerQueries(ctx, req.AnswerInput)
	if err != nil {
		log := logging.FromContext(ctx)
		log.Debug().Err(err).Str("topic", req.Topic).Msg("using fallback video queries")
	}
	res := &AnswerResult{Queries: queries}

	if pick, ok := LookupFirst(ctx, s.searcher, s.metrics, queries); ok {
		res.Pick = &pick
		s.record(ctx, req.SessionID, KindAnswer, req.Topic, req.Level.String(), pick)
	}
	return res
}

// Final resolves the end-of-quiz recommendations synchronously.
func (s *Service) Final(ctx context.Context, sessionID string, score, total int) *FinalResult {
	pct := Percent(score, total)
	queries, err := s.rec.FinalQueries(ctx, score, total)
	if err != nil {
		log := logging.FromContext(ctx)
		log.Debug().Err(err).Msg("using fallback final video queries")
	}
	items := Lookup(ctx, s.searcher, s.metrics, queries)
	for _, it := range items {
		s.record(ctx, sessionID, KindFinal, "", "", it)
	}
	return &FinalResult{Band: BandFor(pct), Percent: pct, Items: items}
}

func (s *Service) record(ctx context.Context, sessionID, kind, topic, level string, r Recommendation) {
	if s.repo == nil {
		return
	}
	data := store.RecommendationEventData{
		SessionID: sessionID,
		Kind:      kind,
		Topic:     topic,
		Level:     level,
		Query:     r.Query,
	}
	if r.Video != nil {
		data.VideoID = r.Video.ID
		data.VideoTitle = r.Video.Title
		data.VideoURL = r.Video.URL
	}
	if err := s.repo.AppendRecommendation(ctx, data); err != nil {
		log := logging.FromContext(ctx)
		log.Warn().Err(err).Msg("failed to record recommendation")
	}
}
