package driven

import (
	"context"
	"time"
)

// AttemptLimiter counts attempts per key in a fixed window.
// Used to throttle credential and token endpoints.
type AttemptLimiter interface {
	// Allow records an attempt for key and reports whether it is within limit
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
