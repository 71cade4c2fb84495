package driven

import (
	"time"

	"github.com/xalgrow/xalgrow-hr/internal/core/domain"
)

// PasswordHasher handles one-way salted password hashing.
// Verification of a malformed hash reports a mismatch.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) bool
}

// TokenProvider issues and verifies signed access tokens.
// Issuer, audience and secret are fixed at construction.
type TokenProvider interface {
	// Issue signs a token for subject that expires after ttl
	Issue(subject domain.TokenSubject, ttl time.Duration) (string, error)

	// Validate verifies signature, algorithm, issuer and audience.
	// Expiry is checked only under domain.ExpiryEnforce.
	Validate(token string, policy domain.ExpiryPolicy) (*domain.TokenClaims, error)
}

// RefreshTokenGenerator produces opaque random rotation tokens
type RefreshTokenGenerator interface {
	Generate() (string, error)
}
