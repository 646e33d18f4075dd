package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/histquiz/internal/logging"
	"github.com/abhisek/histquiz/internal/metrics"
	"github.com/abhisek/histquiz/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as an
// event, a log line and a metric sample.
type LoggingProvider struct {
	inner     Provider
	eventRepo store.EventRepo
	metrics   *metrics.Metrics
}

// WithLogging wraps a Provider with event logging. repo and m may be nil.
func WithLogging(p Provider, repo store.EventRepo, m *metrics.Metrics) Provider {
	return &LoggingProvider{inner: p, eventRepo: repo, metrics: m}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latency := time.Since(start)
	l.metrics.ObserveLLM(purpose, err == nil, latency)

	data := store.LLMRequestEventData{
		Provider:    providerName(l.inner),
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   latency.Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.ResponseBody = string(resp.Content)
	}

	log := logging.FromContext(ctx)
	if err != nil {
		data.ErrorMessage = err.Error()
		log.Warn().Err(err).
			Str("purpose", purpose).
			Str("model", data.Model).
			Int64("latency_ms", data.LatencyMs).
			Msg("llm request failed")
	} else {
		log.Debug().
			Str("purpose", purpose).
			Str("model", data.Model).
			Int("input_tokens", data.InputTokens).
			Int("output_tokens", data.OutputTokens).
			Int64("latency_ms", data.LatencyMs).
			Msg("llm request")
	}

	if l.eventRepo == nil {
		return resp, err
	}

	// A failed event write never fails the request.
	if logErr := l.eventRepo.AppendLLMRequest(ctx, data); logErr != nil {
		log.Warn().Err(logErr).Msg("failed to record LLM request event")
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func (l *LoggingProvider) Name() string { return providerName(l.inner) }

// providerName is the config name for the event log. Providers that do
// not implement Named are recorded by model.
func providerName(p Provider) string {
	if n, ok := p.(Named); ok {
		return n.Name()
	}
	return p.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		schemaDef, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n", req.Schema.Name)
			b.Write(schemaDef)
			b.WriteString("\n")
		}
	}

	return b.String()
}
