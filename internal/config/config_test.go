package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/internal/llm"
)

func noFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

// unset removes keys for the rest of the test. t.Setenv restores them, which
// also undoes whatever godotenv wrote.
func unset(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	unset(t, keyOpenAIKey, keyOpenAIBaseURL, KeyModel, KeyMaxSteps, keyRPS, keyBurst, keyJudgeCache, keyWeatherModel, keyFeedbackModel)
	t.Setenv(KeyProvider, "fake")

	cfg, err := Load(noFile(t))
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderFake, cfg.Provider)
	assert.Equal(t, "gpt-4.1-mini", cfg.Model)
	assert.Equal(t, "gpt-4.1-nano", cfg.WeatherModel)
	assert.Equal(t, "gpt-4.1", cfg.FeedbackModel)
	assert.Equal(t, 15, cfg.MaxReactSteps)
	assert.Equal(t, 0.0, cfg.RPS)
	assert.Equal(t, 1, cfg.Burst)
	assert.Equal(t, 256, cfg.JudgeCacheSize)
	assert.Equal(t, llm.DefaultOpenAIBaseURL, cfg.OpenAIBaseURL)
}

func TestLoadEnvFile(t *testing.T) {
	unset(t, KeyProvider, keyGeminiKey, KeyMaxSteps)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.env")
	require.NoError(t, os.WriteFile(path, []byte("LLM_PROVIDER=gemini\nGEMINI_API_KEY=g-key\nMAX_REACT_STEPS=7\n"), 0o600))

	cfg, err := Load(noFile(t), path)
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderGemini, cfg.Provider)
	assert.Equal(t, 7, cfg.MaxReactSteps)

	opts := cfg.LLMOptions(nil)
	assert.Equal(t, "g-key", opts.APIKey)
	assert.Empty(t, opts.BaseURL)
}

func TestLoadProcessEnvWinsOverFile(t *testing.T) {
	unset(t, keyOpenAIKey)
	t.Setenv(KeyProvider, "fake")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LLM_PROVIDER=openai\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderFake, cfg.Provider)
}

func TestLoadValidation(t *testing.T) {
	unset(t, keyOpenAIKey)
	t.Setenv(KeyProvider, "openai")
	t.Setenv(KeyMaxSteps, "0")

	_, err := Load(noFile(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), keyOpenAIKey)
	assert.Contains(t, err.Error(), KeyMaxSteps)

	t.Setenv(KeyProvider, "claude")
	_, err = Load(noFile(t))
	assert.ErrorIs(t, err, llm.ErrUnknownProvider)
}

func TestLLMOptionsOpenAI(t *testing.T) {
	cfg := &Config{Provider: llm.ProviderOpenAI, OpenAIKey: "k", OpenAIBaseURL: "http://x/v1", Model: "m", RPS: 2, Burst: 3}
	opts := cfg.LLMOptions(nil)
	assert.Equal(t, "k", opts.APIKey)
	assert.Equal(t, "http://x/v1", opts.BaseURL)
	assert.Equal(t, 2.0, opts.RPS)

	ev := cfg.EvalOptions(nil)
	assert.Equal(t, 0, ev.JudgeCacheSize)
}

func TestLoadWithOverrides(t *testing.T) {
	unset(t, keyOpenAIKey, KeyModel, KeyMaxSteps)
	t.Setenv(KeyProvider, "openai")

	cfg, err := LoadWithOverrides(map[string]string{KeyProvider: "fake", KeyMaxSteps: "4", KeyModel: ""}, noFile(t))
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderFake, cfg.Provider)
	assert.Equal(t, 4, cfg.MaxReactSteps)
	assert.Equal(t, "gpt-4.1-mini", cfg.Model)
}
