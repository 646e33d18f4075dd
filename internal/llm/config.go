package llm

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// ErrNoProvider is returned by Config.Resolve when no provider is named and
// no API key is set.
var ErrNoProvider = errors.New("no LLM provider configured: set OPENAI_API_KEY (or GEMINI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY)")

// Config selects and configures the question-writing model. It is parsed
// from the environment as part of config.App.
type Config struct {
	// Provider is "openai", "anthropic", "gemini", "openrouter" or "mock".
	// Empty means the first provider with a key in Keys.
	Provider string `env:"HISTQUIZ_LLM_PROVIDER"`

	OpenAI     OpenAIConfig
	Anthropic  AnthropicConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	Keys StandardKeys
}

// StandardKeys are the provider-native key variables. They fill any key
// not set through HISTQUIZ_* and pick the provider when none is named.
type StandardKeys struct {
	OpenAI     string `env:"OPENAI_API_KEY"`
	Gemini     string `env:"GEMINI_API_KEY"`
	Anthropic  string `env:"ANTHROPIC_API_KEY"`
	OpenRouter string `env:"OPENROUTER_API_KEY"`
}

type OpenAIConfig struct {
	APIKey  string `env:"HISTQUIZ_OPENAI_API_KEY"`
	Model   string `env:"HISTQUIZ_OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	BaseURL string `env:"HISTQUIZ_OPENAI_BASE_URL"`
}

type AnthropicConfig struct {
	APIKey string `env:"HISTQUIZ_ANTHROPIC_API_KEY"`
	Model  string `env:"HISTQUIZ_ANTHROPIC_MODEL" envDefault:"claude-haiku"`
}

type GeminiConfig struct {
	APIKey string `env:"HISTQUIZ_GEMINI_API_KEY"`
	Model  string `env:"HISTQUIZ_GEMINI_MODEL" envDefault:"gemini-flash"`
}

type OpenRouterConfig struct {
	APIKey  string `env:"HISTQUIZ_OPENROUTER_API_KEY"`
	Model   string `env:"HISTQUIZ_OPENROUTER_MODEL" envDefault:"google/gemini-2.0-flash-exp"`
	BaseURL string `env:"HISTQUIZ_OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
}

// RetryConfig tunes the backoff for transient provider errors.
type RetryConfig struct {
	MaxAttempts int           `env:"HISTQUIZ_LLM_MAX_ATTEMPTS" envDefault:"3"`
	InitialWait time.Duration `env:"HISTQUIZ_LLM_RETRY_WAIT" envDefault:"1s"`
	MaxWait     time.Duration `env:"HISTQUIZ_LLM_RETRY_MAX_WAIT" envDefault:"10s"`
	Multiplier  float64       `env:"HISTQUIZ_LLM_RETRY_MULTIPLIER" envDefault:"2"`
}

// DefaultConfig returns the envDefault values with no variables applied.
func DefaultConfig() Config {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}}); err != nil {
		panic(fmt.Sprintf("llm: bad envDefault tag: %v", err))
	}
	return cfg
}

// Resolve fills missing keys from Keys and, when Provider is empty, picks
// the first provider with a key in the order OpenAI, Gemini, Anthropic,
// OpenRouter. It returns ErrNoProvider when nothing is configured.
func (c Config) Resolve() (Config, error) {
	c.OpenAI.APIKey = firstNonEmpty(c.OpenAI.APIKey, c.Keys.OpenAI)
	c.Gemini.APIKey = firstNonEmpty(c.Gemini.APIKey, c.Keys.Gemini)
	c.Anthropic.APIKey = firstNonEmpty(c.Anthropic.APIKey, c.Keys.Anthropic)
	c.OpenRouter.APIKey = firstNonEmpty(c.OpenRouter.APIKey, c.Keys.OpenRouter)

	if c.Provider == "" {
		switch {
		case c.OpenAI.APIKey != "":
			c.Provider = "openai"
		case c.Gemini.APIKey != "":
			c.Provider = "gemini"
		case c.Anthropic.APIKey != "":
			c.Provider = "anthropic"
		case c.OpenRouter.APIKey != "":
			c.Provider = "openrouter"
		default:
			return c, ErrNoProvider
		}
	}
	return c, c.Validate()
}

// Validate checks that the selected provider has a key.
func (c Config) Validate() error {
	var key, envName string
	switch c.Provider {
	case "openai":
		key, envName = c.OpenAI.APIKey, "OPENAI_API_KEY"
	case "anthropic":
		key, envName = c.Anthropic.APIKey, "ANTHROPIC_API_KEY"
	case "gemini":
		key, envName = c.Gemini.APIKey, "GEMINI_API_KEY"
	case "openrouter":
		key, envName = c.OpenRouter.APIKey, "OPENROUTER_API_KEY"
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s provider needs %s (or HISTQUIZ_%s)", c.Provider, envName, envName)
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
