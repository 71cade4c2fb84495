package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xalgrow/xalgrow-hr/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.AttemptLimiter = (*AttemptLimiter)(nil)

const limiterPrefix = keyPrefix + "attempts:"

// attemptScript counts an attempt and starts the window on the first one.
// Returns 1 while the count is within the limit.
var attemptScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`)

// AttemptLimiter is a fixed-window counter shared by all API instances
type AttemptLimiter struct {
	client *redis.Client
}

// NewAttemptLimiter creates a Redis-backed AttemptLimiter
func NewAttemptLimiter(client *redis.Client) *AttemptLimiter {
	return &AttemptLimiter{client: client}
}

// Allow records an attempt for key. A non-positive limit or window disables limiting.
func (l *AttemptLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if key == "" || limit <= 0 || window <= 0 {
		return true, nil
	}
	ttl := window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}

	allowed, err := attemptScript.Run(ctx, l.client, []string{limiterPrefix + key}, ttl, limit).Int64()
	if err != nil {
		return false, fmt.Errorf("count attempt: %w", err)
	}
	return allowed == 1, nil
}
