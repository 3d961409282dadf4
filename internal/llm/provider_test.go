package llm

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
)

func TestParseProvider(t *testing.T) {
	for in, want := range map[string]Provider{"openai": ProviderOpenAI, " Gemini ": ProviderGemini, "FAKE": ProviderFake} {
		got, err := ParseProvider(in)
		if err != nil || got != want {
			t.Fatalf("ParseProvider(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseProvider("claude"); !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(context.Background(), Options{Provider: ProviderOpenAI}); err == nil {
		t.Fatal("expected error without api key")
	}
	cli, err := New(context.Background(), Options{Provider: ProviderFake, Logger: log.New(io.Discard, "", 0)})
	if err != nil {
		t.Fatal(err)
	}
	if cli.Name() != "FakeLLM" {
		t.Fatalf("name = %s", cli.Name())
	}
}
