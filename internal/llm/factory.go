package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/histquiz/internal/metrics"
	"github.com/abhisek/histquiz/internal/store"
)

// NewProvider resolves cfg and builds the provider stack:
//
//	caller -> retry -> logging -> provider
//
// so every attempt is logged. The offline mock is only logged. repo and m
// may be nil.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo, m *metrics.Metrics) (Provider, error) {
	cfg, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}

	var base Provider
	switch cfg.Provider {
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return WithLogging(NewOfflineProvider(), repo, m), nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithRetry(WithLogging(base, repo, m), cfg.Retry), nil
}
