package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/xalgrow/xalgrow-hr/internal/core/ports/driven"
)

const sweeperLockName = "refresh-token-sweeper"

// TokenSweeper periodically clears expired refresh tokens.
//
// With several API instances, configure a DistributedLock so that only one
// of them sweeps per cycle.
type TokenSweeper struct {
	accounts driven.AccountStore
	lock     driven.DistributedLock
	logger   *slog.Logger
	now      func() time.Time

	mu       sync.Mutex
	running  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	interval time.Duration
	lockTTL  time.Duration
}

// TokenSweeperConfig holds configuration for the sweeper.
type TokenSweeperConfig struct {
	Accounts driven.AccountStore
	Lock     driven.DistributedLock // Optional
	Logger   *slog.Logger
	Interval time.Duration // default: 1h
	LockTTL  time.Duration // default: 1m
	Now      func() time.Time
}

// NewTokenSweeper creates a new sweeper.
func NewTokenSweeper(cfg TokenSweeperConfig) *TokenSweeper {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = time.Hour
	}
	lockTTL := cfg.LockTTL
	if lockTTL <= 0 {
		lockTTL = time.Minute
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &TokenSweeper{
		accounts: cfg.Accounts,
		lock:     cfg.Lock,
		logger:   logger.With("component", "token_sweeper"),
		now:      now,
		interval: interval,
		lockTTL:  lockTTL,
	}
}

// Start begins the sweep loop. It runs until Stop is called or ctx is cancelled.
func (s *TokenSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.mu.Unlock()

	s.logger.Info("token sweeper starting", "interval", s.interval)

	go s.run(ctx)
}

// Stop stops the loop and waits for an in-flight sweep.
func (s *TokenSweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	close(s.stopCh)
	doneCh := s.doneCh
	s.mu.Unlock()

	<-doneCh

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	s.logger.Info("token sweeper stopped")
}

func (s *TokenSweeper) run(ctx context.Context) {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs a single cycle and returns the number of cleared tokens.
// A cycle is skipped when another instance holds the lock.
func (s *TokenSweeper) Sweep(ctx context.Context) int64 {
	if s.lock != nil {
		acquired, err := s.lock.Acquire(ctx, sweeperLockName, s.lockTTL)
		if err != nil {
			s.logger.Warn("failed to acquire sweeper lock", "error", err)
			return 0
		}
		if !acquired {
			s.logger.Debug("sweeper lock held by another instance, skipping cycle")
			return 0
		}
		defer func() {
			if err := s.lock.Release(ctx, sweeperLockName); err != nil {
				s.logger.Warn("failed to release sweeper lock", "error", err)
			}
		}()
	}

	cleared, err := s.accounts.ClearExpiredRefreshTokens(ctx, s.now())
	if err != nil {
		s.logger.Error("failed to clear expired refresh tokens", "error", err)
		return 0
	}
	if cleared > 0 {
		s.logger.Info("cleared expired refresh tokens", "count", cleared)
	}
	return cleared
}
