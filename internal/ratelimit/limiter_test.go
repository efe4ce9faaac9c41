package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestLimiter() (*Limiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return New(WithClock(clock.Now)), clock
}

func TestCheckWindowLaw(t *testing.T) {
	l, _ := newTestLimiter()
	policy := Policy{Limit: 5, Window: time.Hour}

	var firstReset time.Time
	for i := 0; i < 5; i++ {
		res := l.Check("contact:203.0.113.5", policy)
		require.Truef(t, res.Allowed, "call %d should be allowed", i+1)
		assert.Equal(t, 4-i, res.Remaining, "remaining must decrease strictly")
		if i == 0 {
			firstReset = res.ResetAt
		} else {
			assert.Equal(t, firstReset, res.ResetAt, "reset time is fixed for the window")
		}
	}

	res := l.Check("contact:203.0.113.5", policy)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, firstReset, res.ResetAt)
}

func TestCheckWindowReset(t *testing.T) {
	l, clock := newTestLimiter()
	policy := Policy{Limit: 2, Window: time.Minute}

	l.Check("k", policy)
	l.Check("k", policy)
	require.False(t, l.Check("k", policy).Allowed)

	clock.Advance(time.Minute)

	res := l.Check("k", policy)
	assert.True(t, res.Allowed, "expired window behaves like a first call")
	assert.Equal(t, 1, res.Remaining)
	assert.Equal(t, clock.Now().Add(time.Minute), res.ResetAt)
}

func TestCheckKeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter()
	policy := Policy{Limit: 3, Window: time.Hour}

	for i := 0; i < 3; i++ {
		require.True(t, l.Check("ai:blogGenerate:user-1", policy).Allowed)
	}
	require.False(t, l.Check("ai:blogGenerate:user-1", policy).Allowed)

	res := l.Check("ai:blogGenerate:user-2", policy)
	assert.True(t, res.Allowed, "exhausting one key must not affect another")
	assert.Equal(t, 2, res.Remaining)
}

func TestCheckZeroLimitDeniesAfterFirstWindowEntry(t *testing.T) {
	l, _ := newTestLimiter()
	policy := Policy{Limit: 1, Window: time.Hour}

	assert.True(t, l.Check("k", policy).Allowed)
	assert.False(t, l.Check("k", policy).Allowed)
}

func TestSweepRemovesExpiredEntries(t *testing.T) {
	l, clock := newTestLimiter()
	policy := Policy{Limit: 5, Window: time.Minute}

	l.Check("a", policy)
	l.Check("b", policy)
	require.Equal(t, 2, l.size())

	clock.Advance(2 * time.Minute)
	l.sweep()
	assert.Equal(t, 0, l.size())
}

func TestSweepKeepsLiveEntries(t *testing.T) {
	l, clock := newTestLimiter()

	l.Check("short", Policy{Limit: 5, Window: time.Minute})
	l.Check("long", Policy{Limit: 5, Window: time.Hour})

	clock.Advance(5 * time.Minute)
	l.sweep()
	assert.Equal(t, 1, l.size())

	// The surviving entry still enforces its original window.
	res := l.Check("long", Policy{Limit: 5, Window: time.Hour})
	assert.True(t, res.Allowed)
	assert.Equal(t, 3, res.Remaining)
}

func TestCheckConcurrentNeverOvergrants(t *testing.T) {
	l := New()
	policy := Policy{Limit: 50, Window: time.Hour}

	results := make(chan bool, 200)
	for i := 0; i < 200; i++ {
		go func() {
			results <- l.Check("shared", policy).Allowed
		}()
	}

	granted := 0
	for i := 0; i < 200; i++ {
		if <-results {
			granted++
		}
	}
	assert.Equal(t, 50, granted, "at most limit successes per window per key")
}

func TestMiddlewareRejectsOverBudget(t *testing.T) {
	l, _ := newTestLimiter()
	handler := Middleware(l, Policy{Limit: 2, Window: time.Hour}, KeyByClientIP("contact"))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}),
	)

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.5")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusNoContent, do().Code)
	assert.Equal(t, http.StatusNoContent, do().Code)

	rec := do()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestKeyByClientIP(t *testing.T) {
	key := KeyByClientIP("contact")

	req := httptest.NewRequest(http.MethodPost, "/contact", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	assert.Equal(t, "contact:203.0.113.5", key(req))

	req = httptest.NewRequest(http.MethodPost, "/contact", nil)
	req.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "contact:198.51.100.7", key(req))

	req = httptest.NewRequest(http.MethodPost, "/contact", nil)
	assert.Equal(t, "contact:unknown", key(req))
}
