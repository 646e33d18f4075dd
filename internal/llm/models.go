package llm

import "strings"

// ModelCost is USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of a request.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// Model is one entry of the model table: the models histquiz is tuned for,
// with the short alias accepted in HISTQUIZ_*_MODEL and list pricing.
type Model struct {
	ID       string
	Provider string
	Alias    string
	Cost     ModelCost
}

// models lists the default model of each provider first. Prices as of
// 2026-02.
var models = []Model{
	{ID: "gpt-4o-mini", Provider: "openai", Cost: ModelCost{0.15, 0.6}},
	{ID: "gpt-4.1-mini", Provider: "openai", Alias: "gpt-mini", Cost: ModelCost{0.4, 1.6}},
	{ID: "gpt-4o", Provider: "openai", Cost: ModelCost{2.5, 10}},
	{ID: "gpt-4.1", Provider: "openai", Cost: ModelCost{2, 8}},

	{ID: "claude-haiku-4-5-20251001", Provider: "anthropic", Alias: "claude-haiku", Cost: ModelCost{1, 5}},
	{ID: "claude-sonnet-4-20250514", Provider: "anthropic", Alias: "claude-sonnet", Cost: ModelCost{3, 15}},

	{ID: "gemini-2.0-flash", Provider: "gemini", Alias: "gemini-flash", Cost: ModelCost{0.1, 0.4}},
	{ID: "gemini-2.5-flash", Provider: "gemini", Cost: ModelCost{0.3, 2.5}},
	{ID: "gemini-2.5-pro", Provider: "gemini", Alias: "gemini-pro", Cost: ModelCost{1.25, 10}},

	// Free-tier route; OpenRouter bills nothing for it.
	{ID: "google/gemini-2.0-flash-exp", Provider: "openrouter"},

	{ID: mockModel, Provider: "mock"},
}

// Models returns the model table.
func Models() []Model {
	out := make([]Model, len(models))
	copy(out, models)
	return out
}

// ResolveModel maps a provider's alias to its model ID. Unknown names are
// returned unchanged so any model ID the API accepts can be configured.
func ResolveModel(provider, name string) string {
	for _, m := range models {
		if m.Provider == provider && m.Alias != "" && m.Alias == name {
			return m.ID
		}
	}
	return name
}

// LookupCost returns the pricing for a model as logged. APIs often report
// a dated snapshot ("gpt-4o-mini-2024-07-18"), which is priced as its base
// model. Returns nil for models not in the table.
func LookupCost(modelID string) *ModelCost {
	var best *Model
	for i := range models {
		m := &models[i]
		if m.ID != modelID && !strings.HasPrefix(modelID, m.ID+"-") {
			continue
		}
		if best == nil || len(m.ID) > len(best.ID) {
			best = m
		}
	}
	if best == nil {
		return nil
	}
	c := best.Cost
	return &c
}
