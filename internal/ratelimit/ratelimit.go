// Package ratelimit provides an in-memory keyed sliding-window counter
// for guarding expensive operations such as template imports.
package ratelimit

import (
	"sync"
	"time"
)

// timeNow is a package-level var to allow test injection.
var timeNow = time.Now

// Decision reports the outcome of one Allow call. A denied decision
// carries how long until the oldest event slides out of the window.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter counts events per key over a sliding window.
type Limiter struct {
	limit  int
	window time.Duration

	mu     sync.Mutex
	events map[string][]time.Time
}

// New returns a limiter allowing limit events per window for each key.
// A non-positive limit disables limiting entirely.
func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:  limit,
		window: window,
		events: make(map[string][]time.Time),
	}
}

// Allow consumes one slot for the key when the budget permits.
func (l *Limiter) Allow(key string) Decision {
	if l.limit <= 0 {
		return Decision{Allowed: true}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := timeNow()
	cutoff := now.Add(-l.window)

	kept := l.events[key][:0]
	for _, ts := range l.events[key] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= l.limit {
		l.events[key] = kept
		return Decision{RetryAfter: kept[0].Sub(cutoff)}
	}

	kept = append(kept, now)
	l.events[key] = kept
	return Decision{Allowed: true, Remaining: l.limit - len(kept)}
}
