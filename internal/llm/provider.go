// Package llm talks to the chat models that write quiz questions and video
// search queries. Every provider returns schema-checked JSON.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one structured completion per call.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the configured model, before any dated suffix the API adds.
	ModelID() string
}

// Named is implemented by providers that report their config name
// ("openai", "gemini", ...) for the event log.
type Named interface {
	Name() string
}

// Request is a single-turn prompt. Messages may carry earlier turns, but
// histquiz only ever sends one user message.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, is passed to the provider's structured-output mode
	// and the reply is validated against it.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Prompt builds the usual one-message request.
func Prompt(system, user string, schema *Schema, maxTokens int, temperature float64) Request {
	return Request{
		System:      system,
		Messages:    []Message{{Role: RoleUser, Content: user}},
		Schema:      schema,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema. Name doubles as the OpenAI schema name
// and the cache key for the compiled validator, so it must be unique.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Stop reasons, normalized across providers.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Response is a validated completion.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string // model that served the request, as reported by the API
	StopReason string
}

// Decode unmarshals the content into v. A decode failure is reported as
// KindInvalidResponse.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Content, v); err != nil {
		return invalidResponse("", r.Content, err)
	}
	return nil
}

// Usage is the token count of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// finish turns a provider's raw text into a Response: code fences are
// stripped, truncated structured output is rejected and the schema is
// checked.
func finish(provider string, req Request, text string, usage Usage, model, stop string) (*Response, error) {
	content := stripCodeFences(json.RawMessage(text))
	if req.Schema != nil && stop == StopMaxTokens {
		return nil, &Error{Kind: KindTruncated, Provider: provider, Content: content}
	}
	if verr := validateResponse(req.Schema, content); verr != nil {
		verr.Provider = provider
		return nil, verr
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}
