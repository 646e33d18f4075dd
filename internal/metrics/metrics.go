// Package metrics exposes Prometheus instruments for the quiz loop.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the collectors recorded by the quiz.
type Metrics struct {
	registry *prometheus.Registry

	QuestionsGenerated *prometheus.CounterVec
	Answers            *prometheus.CounterVec
	LevelChanges       *prometheus.CounterVec
	LLMRequests        *prometheus.CounterVec
	LLMLatency         *prometheus.HistogramVec
	VideoLookups       *prometheus.CounterVec
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		QuestionsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "histquiz",
			Name:      "questions_generated_total",
			Help:      "Questions generated, by topic, level and outcome.",
		}, []string{"topic", "level", "outcome"}),
		Answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "histquiz",
			Name:      "answers_total",
			Help:      "Answered questions, by level and correctness.",
		}, []string{"level", "correct"}),
		LevelChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "histquiz",
			Name:      "level_changes_total",
			Help:      "Difficulty changes chosen by the adapter.",
		}, []string{"direction"}),
		LLMRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "histquiz",
			Name:      "llm_requests_total",
			Help:      "LLM requests, by purpose and outcome.",
		}, []string{"purpose", "outcome"}),
		LLMLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "histquiz",
			Name:      "llm_request_seconds",
			Help:      "LLM request latency.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}, []string{"purpose"}),
		VideoLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "histquiz",
			Name:      "video_lookups_total",
			Help:      "YouTube lookups, by searcher and outcome.",
		}, []string{"searcher", "outcome"}),
	}
	m.registry.MustRegister(
		m.QuestionsGenerated,
		m.Answers,
		m.LevelChanges,
		m.LLMRequests,
		m.LLMLatency,
		m.VideoLookups,
	)
	return m
}

// Registry returns the registry the collectors are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveLLM records one LLM call.
func (m *Metrics) ObserveLLM(purpose string, success bool, latency time.Duration) {
	if m == nil {
		return
	}
	m.LLMRequests.WithLabelValues(purpose, outcome(success)).Inc()
	m.LLMLatency.WithLabelValues(purpose).Observe(latency.Seconds())
}

// ObserveQuestion records a question generation attempt.
func (m *Metrics) ObserveQuestion(topic, level string, success bool) {
	if m == nil {
		return
	}
	m.QuestionsGenerated.WithLabelValues(topic, level, outcome(success)).Inc()
}

// ObserveAnswer records an answered question.
func (m *Metrics) ObserveAnswer(level string, correct bool) {
	if m == nil {
		return
	}
	m.Answers.WithLabelValues(level, strconv.FormatBool(correct)).Inc()
}

// ObserveLevelChange records the adapter moving up or down.
// A zero delta is ignored.
func (m *Metrics) ObserveLevelChange(delta int) {
	if m == nil || delta == 0 {
		return
	}
	dir := "up"
	if delta < 0 {
		dir = "down"
	}
	m.LevelChanges.WithLabelValues(dir).Inc()
}

// ObserveVideoLookup records a video search.
func (m *Metrics) ObserveVideoLookup(searcher string, found bool) {
	if m == nil {
		return
	}
	result := "miss"
	if found {
		result = "hit"
	}
	m.VideoLookups.WithLabelValues(searcher, result).Inc()
}

// Handler returns an HTTP handler serving the registry in the Prometheus
// exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func outcome(success bool) string {
	if success {
		return "success"
	}
	return "error"
}
