package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"tripplanner/internal/eval"
	"tripplanner/internal/llm"
)

// DefaultEnvFiles are tried in order; only the first one found is loaded.
var DefaultEnvFiles = []string{"config.env", ".env"}

// Environment variable names.
const (
	KeyProvider      = "LLM_PROVIDER"
	keyOpenAIKey     = "OPENAI_API_KEY"
	keyOpenAIBaseURL = "OPENAI_BASE_URL"
	keyGeminiKey     = "GEMINI_API_KEY"
	KeyModel         = "DEFAULT_MODEL"
	keyWeatherModel  = "WEATHER_JUDGE_MODEL"
	keyFeedbackModel = "FEEDBACK_JUDGE_MODEL"
	KeyMaxSteps      = "MAX_REACT_STEPS"
	keyRPS           = "LLM_RPS"
	keyBurst         = "LLM_BURST"
	keyJudgeCache    = "JUDGE_CACHE_SIZE"
)

type Config struct {
	Provider      llm.Provider
	OpenAIKey     string
	OpenAIBaseURL string
	GeminiKey     string

	Model         string
	WeatherModel  string
	FeedbackModel string

	MaxReactSteps  int
	RPS            float64
	Burst          int
	JudgeCacheSize int
}

// Load reads the first env file that exists (DefaultEnvFiles when none are
// given) and resolves every setting from the environment over defaults.
// Variables already set in the process win over the file.
func Load(envFiles ...string) (*Config, error) {
	return LoadWithOverrides(nil, envFiles...)
}

// LoadWithOverrides is Load with explicit values, typically command-line
// flags, that take precedence over the environment. Keys are the
// environment variable names.
func LoadWithOverrides(overrides map[string]string, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = DefaultEnvFiles
	}
	if err := loadFirstEnvFile(envFiles); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault(KeyProvider, string(llm.ProviderOpenAI))
	v.SetDefault(keyOpenAIBaseURL, llm.DefaultOpenAIBaseURL)
	v.SetDefault(KeyModel, "gpt-4.1-mini")
	v.SetDefault(keyWeatherModel, eval.DefaultWeatherModel)
	v.SetDefault(keyFeedbackModel, eval.DefaultFeedbackModel)
	v.SetDefault(KeyMaxSteps, 15)
	v.SetDefault(keyRPS, 0)
	v.SetDefault(keyBurst, 1)
	v.SetDefault(keyJudgeCache, 256)
	v.AutomaticEnv()
	for k, val := range overrides {
		if strings.TrimSpace(val) != "" {
			v.Set(k, val)
		}
	}

	provider, err := llm.ParseProvider(v.GetString(KeyProvider))
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		Provider:       provider,
		OpenAIKey:      strings.TrimSpace(v.GetString(keyOpenAIKey)),
		OpenAIBaseURL:  strings.TrimRight(strings.TrimSpace(v.GetString(keyOpenAIBaseURL)), "/"),
		GeminiKey:      strings.TrimSpace(v.GetString(keyGeminiKey)),
		Model:          strings.TrimSpace(v.GetString(KeyModel)),
		WeatherModel:   strings.TrimSpace(v.GetString(keyWeatherModel)),
		FeedbackModel:  strings.TrimSpace(v.GetString(keyFeedbackModel)),
		MaxReactSteps:  v.GetInt(KeyMaxSteps),
		RPS:            v.GetFloat64(keyRPS),
		Burst:          v.GetInt(keyBurst),
		JudgeCacheSize: v.GetInt(keyJudgeCache),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFirstEnvFile(paths []string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("config: load %s: %w", p, err)
		}
		return nil
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.MaxReactSteps <= 0 {
		errs = append(errs, fmt.Errorf("config: %s must be positive, got %d", KeyMaxSteps, c.MaxReactSteps))
	}
	if c.RPS < 0 {
		errs = append(errs, fmt.Errorf("config: %s must not be negative", keyRPS))
	}
	if c.JudgeCacheSize < 0 {
		errs = append(errs, fmt.Errorf("config: %s must not be negative", keyJudgeCache))
	}
	if c.Model == "" {
		errs = append(errs, fmt.Errorf("config: %s is empty", KeyModel))
	}
	switch c.Provider {
	case llm.ProviderOpenAI:
		if c.OpenAIKey == "" {
			errs = append(errs, fmt.Errorf("config: %s is required for provider %s", keyOpenAIKey, c.Provider))
		}
	case llm.ProviderGemini:
		if c.GeminiKey == "" {
			errs = append(errs, fmt.Errorf("config: %s is required for provider %s", keyGeminiKey, c.Provider))
		}
	}
	return errors.Join(errs...)
}

// LLMOptions returns backend options for the configured provider.
func (c *Config) LLMOptions(logger *log.Logger) llm.Options {
	opts := llm.Options{
		Provider: c.Provider,
		Model:    c.Model,
		RPS:      c.RPS,
		Burst:    c.Burst,
		Logger:   logger,
	}
	switch c.Provider {
	case llm.ProviderOpenAI:
		opts.APIKey = c.OpenAIKey
		opts.BaseURL = c.OpenAIBaseURL
	case llm.ProviderGemini:
		opts.APIKey = c.GeminiKey
	}
	return opts
}

func (c *Config) EvalOptions(logger *log.Logger) eval.EnvOptions {
	return eval.EnvOptions{
		WeatherModel:   c.WeatherModel,
		FeedbackModel:  c.FeedbackModel,
		JudgeCacheSize: c.JudgeCacheSize,
		Logger:         logger,
	}
}
