package questiongen

import (
	"context"
	"fmt"

	"github.com/abhisek/histquiz/internal/llm"
)

// Purpose tags question requests in the LLM event log.
const Purpose = llm.PurposeQuestion

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// questionOutput is the raw LLM response before validation.
type questionOutput struct {
	Question      string `json:"question"`
	Option1       string `json:"option1"`
	Option2       string `json:"option2"`
	Option3       string `json:"option3"`
	Option4       string `json:"option4"`
	CorrectAnswer int    `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

// Generate produces a single question for the given input context.
// The returned question has no ID; the session assigns one.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*Question, error) {
	ctx = llm.WithPurpose(ctx, Purpose)

	req := llm.Prompt(systemPrompt, buildUserMessage(input, g.config), QuestionSchema, g.config.MaxTokens, g.config.Temperature)

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw questionOutput
	if err := resp.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	q := &Question{
		Text:        raw.Question,
		Options:     [NumChoices]string{raw.Option1, raw.Option2, raw.Option3, raw.Option4},
		Correct:     raw.CorrectAnswer,
		Explanation: raw.Explanation,
		Topic:       input.Topic.Name,
		Level:       input.Level,
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(q, input); verr != nil {
			return nil, verr
		}
	}

	return q, nil
}

// GenerateWithRetry calls gen up to attempts times, stopping early on
// success or on an error that regenerating cannot fix.
func GenerateWithRetry(ctx context.Context, gen Generator, input GenerateInput, attempts int) (*Question, error) {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		q, err := gen.Generate(ctx, input)
		if err == nil {
			return q, nil
		}
		lastErr = err
		if ctx.Err() != nil || !IsRetryable(err) {
			break
		}
	}
	return nil, lastErr
}
