package llm

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
	"time"
)

type countingClient struct {
	calls int
	text  string
	err   error
}

func (c *countingClient) Name() string { return "counting" }
func (c *countingClient) Close() error { return nil }
func (c *countingClient) Complete(ctx context.Context, req Request) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return c.text, nil
}

type tagging struct {
	next ChatClient
	tag  string
	log  *[]string
}

func (t *tagging) Name() string { return t.next.Name() }
func (t *tagging) Close() error { return t.next.Close() }
func (t *tagging) Complete(ctx context.Context, req Request) (string, error) {
	*t.log = append(*t.log, t.tag)
	return t.next.Complete(ctx, req)
}

func TestWrapOrder(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next ChatClient) ChatClient { return &tagging{next: next, tag: name, log: &order} }
	}
	cli := Wrap(&countingClient{text: "ok"}, tag("A"), tag("B"))
	if _, err := cli.Complete(context.Background(), Request{}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if strings.Join(order, ",") != "A,B" {
		t.Fatalf("expected A then B, got %v", order)
	}
}

func TestCacheMemoisesByModelAndMessages(t *testing.T) {
	inner := &countingClient{text: "IS_COMPATIBLE"}
	cli := Wrap(inner, Cache(8))
	ctx := context.Background()
	req := Request{Model: "m", Messages: []Message{User("same prompt")}}

	for i := 0; i < 3; i++ {
		got, err := cli.Complete(ctx, req)
		if err != nil || got != "IS_COMPATIBLE" {
			t.Fatalf("call %d: got %q, %v", i, got, err)
		}
	}
	if inner.calls != 1 {
		t.Fatalf("expected 1 backend call, got %d", inner.calls)
	}

	if _, err := cli.Complete(ctx, Request{Model: "other", Messages: req.Messages}); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 2 {
		t.Fatalf("different model must miss the cache, calls=%d", inner.calls)
	}
}

func TestCacheSkipsErrors(t *testing.T) {
	inner := &countingClient{err: errors.New("boom")}
	cli := Wrap(inner, Cache(8))
	for i := 0; i < 2; i++ {
		if _, err := cli.Complete(context.Background(), Request{Model: "m"}); err == nil {
			t.Fatal("expected error")
		}
	}
	if inner.calls != 2 {
		t.Fatalf("errors must not be cached, calls=%d", inner.calls)
	}
}

func TestRateLimitSpacing(t *testing.T) {
	inner := &countingClient{text: "ok"}
	cli := Wrap(inner, RateLimit(20, 1))
	ctx := context.Background()
	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := cli.Complete(ctx, Request{}); err != nil {
			t.Fatal(err)
		}
	}
	// Burst 1 at 20 rps: the 2nd and 3rd calls wait ~50ms each.
	if el := time.Since(start); el < 80*time.Millisecond {
		t.Fatalf("expected throttling, elapsed %v", el)
	}
}

func TestRateLimitDisabledAndCanceled(t *testing.T) {
	inner := &countingClient{text: "ok"}
	if got := RateLimit(0, 0)(inner); got != ChatClient(inner) {
		t.Fatal("rps <= 0 should return the inner client")
	}

	cli := Wrap(inner, RateLimit(0.001, 1))
	ctx := context.Background()
	if _, err := cli.Complete(ctx, Request{}); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	if _, err := cli.Complete(ctx, Request{}); err == nil {
		t.Fatal("expected wait to fail once the bucket is empty")
	}
}

type recordingHook struct {
	phases []string
	texts  []string
}

func (h *recordingHook) Before(ctx context.Context, phase string, req Request) {
	h.phases = append(h.phases, phase)
}
func (h *recordingHook) After(ctx context.Context, phase string, text string, err error) {
	h.texts = append(h.texts, text)
}

func TestHooksAndLogging(t *testing.T) {
	var buf bytes.Buffer
	hook := &recordingHook{}
	cli := Wrap(&countingClient{text: "hello"}, WithLogging(log.New(&buf, "", 0)), WithHooks())

	ctx := WithHook(WithPhase(context.Background(), PhaseReact), hook)
	if _, err := cli.Complete(ctx, Request{Model: "gpt", Messages: []Message{System("s"), User("u")}}); err != nil {
		t.Fatal(err)
	}
	if len(hook.phases) != 1 || hook.phases[0] != PhaseReact || hook.texts[0] != "hello" {
		t.Fatalf("hook saw %v / %v", hook.phases, hook.texts)
	}
	if !strings.Contains(buf.String(), "LLM request (react)") {
		t.Fatalf("log output: %q", buf.String())
	}

	if PhaseFrom(context.Background()) != "unknown" || HookFrom(context.Background()) != nil {
		t.Fatal("empty context should carry no phase or hook")
	}
}

func TestCallRecorderKeepsOrder(t *testing.T) {
	rec := &CallRecorder{}
	cli := Wrap(&countingClient{text: "ok"}, WithHooks())
	ctx := WithHook(context.Background(), rec)

	if _, err := cli.Complete(WithPhase(ctx, PhaseJudgeWeather), Request{Model: "nano", Messages: []Message{User("a")}}); err != nil {
		t.Fatal(err)
	}
	if _, err := cli.Complete(WithPhase(ctx, PhaseReact), Request{Model: "mini", Messages: []Message{System("s"), User("b")}}); err != nil {
		t.Fatal(err)
	}
	calls := rec.Calls()
	if len(calls) != 2 {
		t.Fatalf("recorded %d calls, want 2", len(calls))
	}
	if calls[0].Phase != PhaseJudgeWeather || calls[0].Model != "nano" || calls[0].Messages != 1 {
		t.Fatalf("first call: %+v", calls[0])
	}
	if calls[1].Phase != PhaseReact || calls[1].Messages != 2 || calls[1].Response != "ok" || calls[1].Error != "" {
		t.Fatalf("second call: %+v", calls[1])
	}
}
