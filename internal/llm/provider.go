package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

// Provider names a backend.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
	ProviderFake   Provider = "fake"
)

var ErrUnknownProvider = errors.New("llm: unknown provider")

func ParseProvider(s string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(s))); p {
	case ProviderOpenAI, ProviderGemini, ProviderFake:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
	}
}

// Options selects and tunes a backend.
type Options struct {
	Provider Provider
	APIKey   string
	BaseURL  string
	Model    string
	RPS      float64
	Burst    int
	Logger   *log.Logger
}

// New builds the backend for opts.Provider and wraps it with the standard
// middleware stack: logging, hooks, rate limit.
func New(ctx context.Context, opts Options) (ChatClient, error) {
	var base ChatClient
	switch opts.Provider {
	case ProviderOpenAI:
		if opts.APIKey == "" {
			return nil, errors.New("llm: openai provider needs an API key")
		}
		base = NewOpenAIClient(opts.APIKey, opts.BaseURL, opts.Model)
	case ProviderGemini:
		if opts.APIKey == "" {
			return nil, errors.New("llm: gemini provider needs an API key")
		}
		g, err := NewGeminiClient(ctx, opts.APIKey, opts.Model)
		if err != nil {
			return nil, err
		}
		base = g
	case ProviderFake:
		base = NewFakeClient()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, opts.Provider)
	}
	return Wrap(base,
		WithLogging(opts.Logger),
		WithHooks(),
		RateLimit(opts.RPS, opts.Burst),
	), nil
}
