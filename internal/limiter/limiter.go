// Package limiter spaces outbound calls to the upstream API.  One Limiter
// is shared by the whole process: every cascade stage of every concurrent
// query serializes through the same slot, trading throughput for the
// guarantee that the upstream's rate limit is never exceeded.
package limiter

import (
	"context"
	"sync"
	"time"
)

// Limiter grants one acquisition per interval.  The zero value is not
// usable; construct with New.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	next     time.Time // earliest moment the next acquisition may be granted
}

// New returns a Limiter enforcing at least interval between acquisitions.
// A non-positive interval disables spacing.
func New(interval time.Duration) *Limiter {
	if interval < 0 {
		interval = 0
	}
	return &Limiter{interval: interval}
}

// Acquire blocks until at least the configured interval has elapsed since
// the previous acquisition was granted, or until ctx is done.
func (l *Limiter) Acquire(ctx context.Context) error {
	for {
		l.mu.Lock()
		now := time.Now()
		if !now.Before(l.next) {
			l.next = now.Add(l.interval)
			l.mu.Unlock()
			return nil
		}
		wait := l.next.Sub(now)
		l.mu.Unlock()

		t := time.NewTimer(wait)
		select {
		case <-t.C:
			// Re-check under the lock; another goroutine may have taken
			// the slot while we slept.
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		}
	}
}
