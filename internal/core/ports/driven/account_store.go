package driven

import (
	"context"
	"time"

	"github.com/xalgrow/xalgrow-hr/internal/core/domain"
)

// AccountStore handles account persistence (PostgreSQL)
type AccountStore interface {
	// Create inserts a new account and assigns its ID.
	// Returns domain.ErrAlreadyExists on a username or email conflict.
	Create(ctx context.Context, account *domain.Account) error

	// Get retrieves an account by ID
	Get(ctx context.Context, id int64) (*domain.Account, error)

	// GetByUsername retrieves an account by exact username
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)

	// ExistsByUsernameOrEmail reports whether either value is taken
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)

	// SetRefreshToken overwrites the stored refresh token and expiry
	SetRefreshToken(ctx context.Context, id int64, token string, expiry time.Time) error

	// RotateRefreshToken replaces the stored refresh token only if it still
	// equals presented and has not expired at now.
	// Returns domain.ErrConflict when the condition does not hold.
	RotateRefreshToken(ctx context.Context, id int64, presented, token string, expiry, now time.Time) error

	// ClearRefreshToken removes the stored refresh token and expiry
	ClearRefreshToken(ctx context.Context, id int64) error

	// ClearExpiredRefreshTokens clears every refresh token expired at now
	// and returns how many accounts were affected
	ClearExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}
