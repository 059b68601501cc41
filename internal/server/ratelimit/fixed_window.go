// Package ratelimit provides per-requester admission control for the
// exchange service. The limiter is process-local: when several instances
// run, each enforces its own budget.
package ratelimit

import (
	"sync"
	"time"
)

// sweepEvery controls how often (in admissions) stale windows are evicted.
const sweepEvery = 512

// FixedWindow admits up to limit requests per key within a window of fixed
// duration. The counter resets at the window boundary, so a burst of up to
// 2*limit is possible across a boundary. That trade-off is intentional:
// the scheme is cheap and its behavior is easy to reason about.
type FixedWindow struct {
	limit   int
	window  time.Duration
	idleTTL time.Duration
	now     func() time.Time

	mu         sync.Mutex
	byKey      map[string]*windowState
	admissions uint64
}

type windowState struct {
	count   int
	resetAt time.Time
}

// New creates a limiter with the given per-key cap and window duration.
func New(limit int, window time.Duration) *FixedWindow {
	return NewWithClock(limit, window, time.Now)
}

// NewWithClock is New with an injectable clock. Used by tests to advance
// simulated time past window boundaries.
func NewWithClock(limit int, window time.Duration, now func() time.Time) *FixedWindow {
	return &FixedWindow{
		limit:   limit,
		window:  window,
		idleTTL: window,
		now:     now,
		byKey:   make(map[string]*windowState),
	}
}

// Admit reports whether one more request from key fits the current window.
// A denied call does not mutate the window state.
func (l *FixedWindow) Admit(key string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.byKey[key]
	if !ok {
		w = &windowState{resetAt: now.Add(l.window)}
		l.byKey[key] = w
	}

	if now.After(w.resetAt) {
		w.count = 0
		w.resetAt = now.Add(l.window)
	}

	if w.count >= l.limit {
		return false
	}
	w.count++

	l.admissions++
	if l.admissions%sweepEvery == 0 {
		l.evictStale(now)
	}

	return true
}

// evictStale drops windows that expired more than idleTTL ago, bounding the
// key map against one-off requester keys. Caller holds the mutex.
func (l *FixedWindow) evictStale(now time.Time) {
	cutoff := now.Add(-l.idleTTL)
	for k, w := range l.byKey {
		if w.resetAt.Before(cutoff) {
			delete(l.byKey, k)
		}
	}
}

// Len reports the number of tracked keys. Used by tests.
func (l *FixedWindow) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.byKey)
}
