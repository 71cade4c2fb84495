package driving

import (
	"context"

	"github.com/xalgrow/xalgrow-hr/internal/core/domain"
)

// AuthService handles account authentication and token rotation
type AuthService interface {
	// Login verifies credentials and issues an access/refresh token pair
	Login(ctx context.Context, req domain.LoginRequest) (*domain.TokenPair, error)

	// Register creates an account without issuing tokens
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.AccountSummary, error)

	// Refresh exchanges an expired access token plus the current refresh
	// token for a new pair. The presented refresh token stops working.
	Refresh(ctx context.Context, req domain.RefreshRequest) (*domain.TokenPair, error)

	// ValidateToken strictly validates an access token for protected routes
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)

	// Logout clears the account's refresh token
	Logout(ctx context.Context, accountID int64) error
}
