package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/abhisek/histquiz/internal/llm"
)

// App holds runtime configuration for histquiz.
type App struct {
	Name     string `env:"HISTQUIZ_APP_NAME" envDefault:"histquiz"`
	Env      string `env:"HISTQUIZ_ENV" envDefault:"development"`
	LogLevel string `env:"HISTQUIZ_LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"HISTQUIZ_LOG_FILE"`
	DBPath   string `env:"HISTQUIZ_DB"`

	Quiz    Quiz
	Adapt   Adapt
	Video   Video
	Metrics Metrics
	LLM     llm.Config
}

// Quiz groups session defaults.
type Quiz struct {
	MaxQuestions int           `env:"HISTQUIZ_MAX_QUESTIONS" envDefault:"6"`
	StartLevel   string        `env:"HISTQUIZ_START_LEVEL" envDefault:"Easy"`
	Topic        string        `env:"HISTQUIZ_TOPIC"`
	Audience     string        `env:"HISTQUIZ_AUDIENCE" envDefault:"6th grade students (ages 11-12)"`
	GenTimeout   time.Duration `env:"HISTQUIZ_QUESTION_TIMEOUT" envDefault:"30s"`
}

// Adapt tunes the difficulty step function.
type Adapt struct {
	RaiseAfter int `env:"HISTQUIZ_RAISE_AFTER" envDefault:"2"`
	LowerAfter int `env:"HISTQUIZ_LOWER_AFTER" envDefault:"2"`
}

// Video configures YouTube lookups.
type Video struct {
	YouTubeAPIKey string        `env:"YOUTUBE_API_KEY"`
	Timeout       time.Duration `env:"HISTQUIZ_VIDEO_TIMEOUT" envDefault:"8s"`
	Disabled      bool          `env:"HISTQUIZ_NO_VIDEOS" envDefault:"false"`
}

// Metrics configures the optional Prometheus endpoint.
type Metrics struct {
	Addr string `env:"HISTQUIZ_METRICS_ADDR"`
}

// Load reads an optional .env file and parses environment variables into App.
// A missing .env file is not an error.
func Load(dotenvPaths ...string) (*App, error) {
	if err := godotenv.Load(dotenvPaths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse parses environment variables into App without touching .env files.
func Parse() (*App, error) {
	cfg := &App{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the quiz loop cannot work with.
func (c *App) Validate() error {
	if c.Quiz.MaxQuestions < 1 {
		return fmt.Errorf("HISTQUIZ_MAX_QUESTIONS must be at least 1, got %d", c.Quiz.MaxQuestions)
	}
	if c.Adapt.RaiseAfter < 1 || c.Adapt.LowerAfter < 1 {
		return fmt.Errorf("adapt streaks must be at least 1 (raise=%d, lower=%d)", c.Adapt.RaiseAfter, c.Adapt.LowerAfter)
	}
	switch c.LLM.Provider {
	case "", "openai", "anthropic", "gemini", "openrouter", "mock":
	default:
		return fmt.Errorf("HISTQUIZ_LLM_PROVIDER: unknown provider %q", c.LLM.Provider)
	}
	return nil
}
