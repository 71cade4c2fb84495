package driven

import (
	"context"
	"time"
)

// DistributedLock coordinates periodic maintenance across API instances,
// so that only one instance sweeps expired refresh tokens per cycle.
type DistributedLock interface {
	// Acquire attempts to take the named lock for ttl.
	// Returns false without error when another instance holds it.
	Acquire(ctx context.Context, name string, ttl time.Duration) (acquired bool, err error)

	// Release gives up the named lock. Safe to call when not held.
	Release(ctx context.Context, name string) error

	// Ping checks if the lock backend is healthy
	Ping(ctx context.Context) error
}
