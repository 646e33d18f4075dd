// Package recommend suggests educational videos after answers and at the
// end of a quiz.
package recommend

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/abhisek/histquiz/internal/llm"
	"github.com/abhisek/histquiz/internal/logging"
	"github.com/abhisek/histquiz/internal/topics"
)

// Purpose labels for the LLM event log.
const (
	PurposeAnswer = llm.PurposeVideos
	PurposeFinal  = llm.PurposeFinalVideos
)

// AnswerInput describes the question just answered.
type AnswerInput struct {
	Topic string
	Level topics.Level

	// Performance is the learner's mean correctness at Topic and Level
	// (0.5 when there is no history).
	Performance float64
}

// Recommender asks the LLM for search queries, falling back to fixed
// lists when the provider fails.
type Recommender struct {
	provider llm.Provider
	cfg      Config
}

// NewRecommender creates a Recommender. provider may be nil, in which
// case the fallback queries are always used.
func NewRecommender(provider llm.Provider, cfg Config) *Recommender {
	return &Recommender{provider: provider, cfg: cfg}
}

// AnswerQueries returns search queries for the question just answered.
// It never fails; the error reports why the fallback was used.
func (r *Recommender) AnswerQueries(ctx context.Context, in AnswerInput) ([]string, error) {
	queries, err := r.ask(llm.WithPurpose(ctx, PurposeAnswer), buildAnswerMessage(in, r.cfg), r.cfg.AnswerQueries)
	if err != nil {
		return AnswerFallback(in.Topic), err
	}
	return queries, nil
}

// FinalQueries returns search queries for the end-of-quiz summary.
// It never fails; the error reports why the fallback was used.
func (r *Recommender) FinalQueries(ctx context.Context, score, total int) ([]string, error) {
	queries, err := r.ask(llm.WithPurpose(ctx, PurposeFinal), buildFinalMessage(score, total, r.cfg), r.cfg.FinalQueries)
	if err != nil {
		return FinalFallback(), err
	}
	return queries, nil
}

// AnswerFallback is used when per-answer queries cannot be generated.
func AnswerFallback(topic string) []string {
	return []string{
		topic + " for kids",
		topic + " simple explanation",
		"History for middle school",
	}
}

// FinalFallback is used when end-of-quiz queries cannot be generated.
func FinalFallback() []string {
	return []string{
		"World War 1 for kids",
		"World War 2 simple explanation",
		"History of World Wars animated",
		"Famous World War leaders for students",
		"World Wars timeline for middle school",
	}
}

var listMarker = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+`)

type queriesOutput struct {
	Queries []string `json:"queries"`
}

func (r *Recommender) ask(ctx context.Context, msg string, n int) ([]string, error) {
	if r.provider == nil {
		return nil, fmt.Errorf("no LLM provider")
	}

	resp, err := r.provider.Generate(ctx, llm.Prompt(systemPrompt, msg, QueriesSchema, r.cfg.MaxTokens, r.cfg.Temperature))
	if err != nil {
		log := logging.FromContext(ctx)
		log.Warn().Err(err).Msg("video query generation failed, using fallback")
		return nil, fmt.Errorf("query generation: %w", err)
	}

	var out queriesOutput
	if err := resp.Decode(&out); err != nil {
		return nil, fmt.Errorf("parse query response: %w", err)
	}

	queries := cleanQueries(out.Queries, n)
	if len(queries) == 0 {
		return nil, fmt.Errorf("query generation returned no queries")
	}
	return queries, nil
}

// cleanQueries trims list markers, drops blanks and duplicates, and keeps
// at most n entries.
func cleanQueries(raw []string, n int) []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range raw {
		q = listMarker.ReplaceAllString(q, "")
		q = strings.TrimSpace(strings.Trim(strings.TrimSpace(q), `"`))
		key := strings.ToLower(q)
		if q == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, q)
		if n > 0 && len(out) >= n {
			break
		}
	}
	return out
}
