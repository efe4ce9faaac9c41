// Package ratelimit implements a fixed-window request counter keyed by
// caller-identifying strings. Entries expire lazily on access; a background
// sweep bounds memory growth but is never needed for a correct decision.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Policy bounds the frequency of a logical action.
type Policy struct {
	Limit  int
	Window time.Duration
}

// Result is the outcome of a single check. Exceeding the limit is an
// expected outcome and is communicated here, never as an error.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

type entry struct {
	count   int
	resetAt time.Time
}

// Limiter tracks per-key counts within fixed time windows. The zero value is
// not usable; construct with New. Each Limiter owns its map and its sweep
// lifecycle, so tests can run independent instances.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry

	now           func() time.Time
	sweepInterval time.Duration
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock injects a time source, used by tests to simulate window expiry.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// WithSweepInterval overrides how often expired entries are collected.
func WithSweepInterval(d time.Duration) Option {
	return func(l *Limiter) { l.sweepInterval = d }
}

// New constructs a Limiter.
func New(opts ...Option) *Limiter {
	l := &Limiter{
		entries:       make(map[string]*entry),
		now:           time.Now,
		sweepInterval: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Check records one request for key under the policy and reports whether it
// is within budget. The check-then-increment sequence is atomic under the
// limiter mutex, so concurrent callers can never both take the last slot.
func (l *Limiter) Check(key string, p Policy) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[key]
	if !ok || !now.Before(e.resetAt) {
		e = &entry{count: 1, resetAt: now.Add(p.Window)}
		l.entries[key] = e
		return Result{Allowed: true, Remaining: p.Limit - 1, ResetAt: e.resetAt}
	}
	if e.count >= p.Limit {
		return Result{Allowed: false, Remaining: 0, ResetAt: e.resetAt}
	}
	e.count++
	return Result{Allowed: true, Remaining: p.Limit - e.count, ResetAt: e.resetAt}
}

// Start runs the background sweep until ctx is cancelled.
func (l *Limiter) Start(ctx context.Context) {
	ticker := time.NewTicker(l.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for key, e := range l.entries {
		if !now.Before(e.resetAt) {
			delete(l.entries, key)
		}
	}
}

func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
