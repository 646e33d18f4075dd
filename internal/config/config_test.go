package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "histquiz", cfg.Name)
	assert.Equal(t, 6, cfg.Quiz.MaxQuestions)
	assert.Equal(t, "Easy", cfg.Quiz.StartLevel)
	assert.Equal(t, 2, cfg.Adapt.RaiseAfter)
	assert.Equal(t, 2, cfg.Adapt.LowerAfter)
	assert.Equal(t, 8*time.Second, cfg.Video.Timeout)
	assert.False(t, cfg.Video.Disabled)
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("HISTQUIZ_MAX_QUESTIONS", "10")
	t.Setenv("HISTQUIZ_TOPIC", "World War II")
	t.Setenv("YOUTUBE_API_KEY", "yt-key")
	t.Setenv("HISTQUIZ_NO_VIDEOS", "true")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Quiz.MaxQuestions)
	assert.Equal(t, "World War II", cfg.Quiz.Topic)
	assert.Equal(t, "yt-key", cfg.Video.YouTubeAPIKey)
	assert.True(t, cfg.Video.Disabled)
}

func TestParseLLM(t *testing.T) {
	for _, k := range []string{"HISTQUIZ_LLM_PROVIDER", "HISTQUIZ_OPENAI_API_KEY", "GEMINI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	t.Setenv("OPENAI_API_KEY", "sk-bare")
	t.Setenv("HISTQUIZ_OPENAI_MODEL", "gpt-mini")
	t.Setenv("HISTQUIZ_LLM_MAX_ATTEMPTS", "5")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "sk-bare", cfg.LLM.Keys.OpenAI)
	assert.Empty(t, cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "gpt-mini", cfg.LLM.OpenAI.Model)
	assert.Equal(t, "claude-haiku", cfg.LLM.Anthropic.Model)
	assert.Equal(t, 5, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, time.Second, cfg.LLM.Retry.InitialWait)

	resolved, err := cfg.LLM.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "openai", resolved.Provider)
	assert.Equal(t, "sk-bare", resolved.OpenAI.APIKey)
}

func TestParseRejectsUnknownLLMProvider(t *testing.T) {
	t.Setenv("HISTQUIZ_LLM_PROVIDER", "palm")
	_, err := Parse()
	assert.ErrorContains(t, err, "palm")
}

func TestParseRejectsZeroQuestions(t *testing.T) {
	t.Setenv("HISTQUIZ_MAX_QUESTIONS", "0")
	_, err := Parse()
	assert.Error(t, err)
}

func TestParseRejectsBadNumber(t *testing.T) {
	t.Setenv("HISTQUIZ_RAISE_AFTER", "many")
	_, err := Parse()
	assert.Error(t, err)
}

func TestLoadReadsDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("HISTQUIZ_AUDIENCE=7th graders\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("HISTQUIZ_AUDIENCE") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7th graders", cfg.Quiz.Audience)
}

func TestLoadMissingDotenvIsFine(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}
