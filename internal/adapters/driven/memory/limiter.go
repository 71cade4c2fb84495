// Package memory holds single-process fallbacks for adapters that are
// normally backed by Redis.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/xalgrow/xalgrow-hr/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.AttemptLimiter = (*AttemptLimiter)(nil)

// AttemptLimiter is a fixed-window counter kept in process memory
type AttemptLimiter struct {
	mu      sync.Mutex
	windows map[string]*attemptWindow
	now     func() time.Time
}

type attemptWindow struct {
	count int
	end   time.Time
}

// NewAttemptLimiter creates an in-memory AttemptLimiter
func NewAttemptLimiter() *AttemptLimiter {
	return &AttemptLimiter{
		windows: make(map[string]*attemptWindow),
		now:     time.Now,
	}
}

// Allow records an attempt for key. A non-positive limit or window disables limiting.
func (l *AttemptLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if key == "" || limit <= 0 || window <= 0 {
		return true, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || !now.Before(w.end) {
		l.windows[key] = &attemptWindow{count: 1, end: now.Add(window)}
		l.prune(now)
		return true, nil
	}
	if w.count >= limit {
		return false, nil
	}
	w.count++
	return true, nil
}

// prune drops finished windows so idle keys do not accumulate
func (l *AttemptLimiter) prune(now time.Time) {
	for key, w := range l.windows {
		if !now.Before(w.end) {
			delete(l.windows, key)
		}
	}
}
