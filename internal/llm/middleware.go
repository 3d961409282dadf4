package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// Middleware decorates a ChatClient to inject cross-cutting concerns
// (rate limiting, caching, logging, hooks).
type Middleware func(ChatClient) ChatClient

// Wrap applies middlewares in left-to-right order.
// Example: Wrap(inner, A, B) => A(B(inner))
func Wrap(inner ChatClient, mws ...Middleware) ChatClient {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		out = mws[i](out)
	}
	return out
}

// -------- Rate Limiting --------

// RateLimit limits request rate with a token bucket.
// If rps <= 0, the limiter is disabled.
func RateLimit(rps float64, burst int) Middleware {
	return func(next ChatClient) ChatClient {
		if rps <= 0 {
			return next
		}
		if burst <= 0 {
			burst = 1
		}
		return &rateLimited{next: next, rl: rate.NewLimiter(rate.Limit(rps), burst)}
	}
}

type rateLimited struct {
	next ChatClient
	rl   *rate.Limiter
}

func (c *rateLimited) Name() string { return c.next.Name() }
func (c *rateLimited) Close() error { return c.next.Close() }
func (c *rateLimited) Complete(ctx context.Context, req Request) (string, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return "", err
	}
	return c.next.Complete(ctx, req)
}

// -------- Response cache --------

// Cache memoises successful completions keyed by model and message history.
// A sampling model then answers an unchanged prompt the same way every time.
// size <= 0 disables caching.
func Cache(size int) Middleware {
	return func(next ChatClient) ChatClient {
		if size <= 0 {
			return next
		}
		c, err := lru.New[string, string](size)
		if err != nil {
			return next
		}
		return &cached{next: next, lru: c}
	}
}

type cached struct {
	next ChatClient
	lru  *lru.Cache[string, string]
}

func (c *cached) Name() string { return c.next.Name() }
func (c *cached) Close() error { return c.next.Close() }
func (c *cached) Complete(ctx context.Context, req Request) (string, error) {
	key := cacheKey(req)
	if text, ok := c.lru.Get(key); ok {
		return text, nil
	}
	text, err := c.next.Complete(ctx, req)
	if err != nil {
		return "", err
	}
	c.lru.Add(key, text)
	return text, nil
}

func cacheKey(req Request) string {
	h := sha256.New()
	h.Write([]byte(req.Model))
	h.Write([]byte{0})
	for _, m := range req.Messages {
		h.Write([]byte(m.Role))
		h.Write([]byte{0})
		h.Write([]byte(m.Content))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// -------- Logging & Hooks --------

// WithLogging logs request size and errors. Provide a custom logger or nil
// to use log.Default().
func WithLogging(logger *log.Logger) Middleware {
	if logger == nil {
		logger = log.Default()
	}
	return func(next ChatClient) ChatClient {
		return &logging{next: next, log: logger}
	}
}

type logging struct {
	next ChatClient
	log  *log.Logger
}

func (l *logging) Name() string { return l.next.Name() }
func (l *logging) Close() error { return l.next.Close() }
func (l *logging) Complete(ctx context.Context, req Request) (string, error) {
	size := 0
	for _, m := range req.Messages {
		size += len(m.Content)
	}
	l.log.Printf("LLM request (%s): %s model=%q messages=%d %d bytes", PhaseFrom(ctx), l.next.Name(), req.Model, len(req.Messages), size)
	text, err := l.next.Complete(ctx, req)
	if err != nil {
		l.log.Printf("LLM error (%s): %v", PhaseFrom(ctx), err)
	}
	return text, err
}

// WithHooks calls HookFrom(ctx).Before/After around Complete.
// If no hook is present in the context, it is a no-op.
func WithHooks() Middleware {
	return func(next ChatClient) ChatClient {
		return &hooked{next: next}
	}
}

type hooked struct{ next ChatClient }

func (h *hooked) Name() string { return h.next.Name() }
func (h *hooked) Close() error { return h.next.Close() }
func (h *hooked) Complete(ctx context.Context, req Request) (string, error) {
	hook := HookFrom(ctx)
	if hook != nil {
		hook.Before(ctx, PhaseFrom(ctx), req)
	}
	text, err := h.next.Complete(ctx, req)
	if hook != nil {
		hook.After(ctx, PhaseFrom(ctx), text, err)
	}
	return text, err
}
