package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

const (
	// DefaultAccessTokenTTL is the lifetime of an issued access token
	DefaultAccessTokenTTL = time.Hour

	// DefaultRefreshTokenTTL is the lifetime of a stored refresh token
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour

	// MaxPasswordBytes is the longest password bcrypt accepts
	MaxPasswordBytes = 72
)

// TokenConfig holds the token settings loaded once at startup.
// Construct it with NewTokenConfig and treat it as read-only.
type TokenConfig struct {
	Secret     []byte
	Issuer     string
	Audience   string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// NewTokenConfig validates and builds a TokenConfig.
// A missing secret is a fatal configuration error.
func NewTokenConfig(secret, issuer, audience string, accessTTL, refreshTTL time.Duration) (TokenConfig, error) {
	if secret == "" {
		return TokenConfig{}, fmt.Errorf("%w: signing secret is required", ErrConfiguration)
	}
	if issuer == "" || audience == "" {
		return TokenConfig{}, fmt.Errorf("%w: token issuer and audience are required", ErrConfiguration)
	}
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTokenTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTokenTTL
	}

	key := make([]byte, len(secret))
	copy(key, secret)

	return TokenConfig{
		Secret:     key,
		Issuer:     issuer,
		Audience:   audience,
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	}, nil
}

// ExpiryPolicy selects how token validation treats the exp claim
type ExpiryPolicy int

const (
	// ExpiryEnforce rejects tokens past their expiry
	ExpiryEnforce ExpiryPolicy = iota
	// ExpiryIgnore accepts expired tokens. Only refresh rotation may use it.
	ExpiryIgnore
)

// TokenSubject is the identity embedded into an access token
type TokenSubject struct {
	AccountID int64
	Username  string
	Role      Role
}

// TokenClaims represents the verified access token payload
type TokenClaims struct {
	AccountID int64     `json:"uid"`
	Username  string    `json:"sub"`
	Role      Role      `json:"role"`
	Issuer    string    `json:"iss"`
	Audience  string    `json:"aud"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// AuthContext contains authenticated account info for request context
type AuthContext struct {
	AccountID int64  `json:"account_id"`
	Username  string `json:"username"`
	Role      Role   `json:"role"`
}

// HasRole checks if the authenticated account holds one of roles
func (a *AuthContext) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Username string `json:"username" example:"jdoe"`
	Password string `json:"password" example:"s3cret-pass"`
}

// RegisterRequest represents an account registration
type RegisterRequest struct {
	Username string `json:"username" example:"jdoe"`
	Email    string `json:"email" example:"jdoe@example.com"`
	Password string `json:"password" example:"s3cret-pass"`
}

// Validate checks the registration fields
func (r RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" || strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return fmt.Errorf("%w: username, email and password are required", ErrInvalidInput)
	}
	if len(r.Password) > MaxPasswordBytes {
		return fmt.Errorf("%w: password exceeds %d bytes", ErrInvalidInput, MaxPasswordBytes)
	}
	addr, err := mail.ParseAddress(r.Email)
	if err != nil || addr.Address != r.Email {
		return fmt.Errorf("%w: malformed email", ErrInvalidInput)
	}
	return nil
}

// RefreshRequest carries the (possibly expired) access token and the refresh token
type RefreshRequest struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenPair is returned by login and refresh
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}
