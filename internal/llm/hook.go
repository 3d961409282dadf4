package llm

import (
	"context"
	"sync"
	"time"
)

// PromptHook observes every completion made under a context.
type PromptHook interface {
	Before(ctx context.Context, phase string, req Request)
	After(ctx context.Context, phase string, text string, err error)
}

type ctxKeyHook struct{}
type ctxKeyPhase struct{}

// WithHook attaches a PromptHook to ctx. WithHooks middleware invokes it.
func WithHook(ctx context.Context, hook PromptHook) context.Context {
	return context.WithValue(ctx, ctxKeyHook{}, hook)
}

// WithPhase labels completions made under ctx, e.g. "react" or "judge.weather".
func WithPhase(ctx context.Context, phase string) context.Context {
	return context.WithValue(ctx, ctxKeyPhase{}, phase)
}

// HookFrom returns the hook stored in the context.
func HookFrom(ctx context.Context) PromptHook {
	if v := ctx.Value(ctxKeyHook{}); v != nil {
		if h, ok := v.(PromptHook); ok {
			return h
		}
	}
	return nil
}

// PhaseFrom returns the phase string stored in the context.
func PhaseFrom(ctx context.Context) string {
	if v := ctx.Value(ctxKeyPhase{}); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return "unknown"
}

// CallRecord is one completion seen by a CallRecorder.
type CallRecord struct {
	Phase    string        `json:"phase"`
	Model    string        `json:"model,omitempty"`
	Messages int           `json:"messages"`
	Response string        `json:"response,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// CallRecorder is a PromptHook that keeps every completion in call order.
// Completions under one recorder must not overlap.
type CallRecorder struct {
	mu      sync.Mutex
	pending *CallRecord
	started time.Time
	calls   []CallRecord
}

func (r *CallRecorder) Before(_ context.Context, phase string, req Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = &CallRecord{Phase: phase, Model: req.Model, Messages: len(req.Messages)}
	r.started = time.Now()
}

func (r *CallRecorder) After(_ context.Context, phase string, text string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := CallRecord{Phase: phase}
	if r.pending != nil {
		rec = *r.pending
		rec.Duration = time.Since(r.started)
		r.pending = nil
	}
	rec.Response = text
	if err != nil {
		rec.Error = err.Error()
	}
	r.calls = append(r.calls, rec)
}

// Calls returns a copy of the completed records.
func (r *CallRecorder) Calls() []CallRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]CallRecord{}, r.calls...)
}
