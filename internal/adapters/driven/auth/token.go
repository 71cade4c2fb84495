package auth

import (
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/xalgrow/xalgrow-hr/internal/core/domain"
	"github.com/xalgrow/xalgrow-hr/internal/core/ports/driven"
)

// Ensure TokenSigner implements driven.TokenProvider
var _ driven.TokenProvider = (*TokenSigner)(nil)

// signingMethod is the only algorithm accepted on validation
var signingMethod = jwt.SigningMethodHS256

// accessClaims is the JWT payload. The username travels as sub.
type accessClaims struct {
	AccountID int64       `json:"uid"`
	Role      domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenSigner issues and validates HS256 access tokens
type TokenSigner struct {
	secret   []byte
	issuer   string
	audience string
	now      func() time.Time
	parser   *jwt.Parser
}

// NewTokenSigner creates a signer from the startup token configuration
func NewTokenSigner(cfg domain.TokenConfig) *TokenSigner {
	return NewTokenSignerWithClock(cfg, time.Now)
}

// NewTokenSignerWithClock creates a signer with a custom time source
func NewTokenSignerWithClock(cfg domain.TokenConfig, now func() time.Time) *TokenSigner {
	return &TokenSigner{
		secret:   cfg.Secret,
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		now:      now,
		// Registered claims are checked in Validate so that both expiry
		// policies run the same issuer and audience checks.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{signingMethod.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
}

// Issue signs a token for subject that expires after ttl
func (s *TokenSigner) Issue(subject domain.TokenSubject, ttl time.Duration) (string, error) {
	now := s.now()
	claims := accessClaims{
		AccountID: subject.AccountID,
		Role:      subject.Role.OrDefault(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.Username,
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(signingMethod, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateStrict validates a token including its expiry
func (s *TokenSigner) ValidateStrict(token string) (*domain.TokenClaims, error) {
	return s.Validate(token, domain.ExpiryEnforce)
}

// ValidateIgnoringExpiry validates a token but accepts it past expiry.
// Only refresh rotation may use the result.
func (s *TokenSigner) ValidateIgnoringExpiry(token string) (*domain.TokenClaims, error) {
	return s.Validate(token, domain.ExpiryIgnore)
}

// Validate verifies the token and returns its claims
func (s *TokenSigner) Validate(tokenString string, policy domain.ExpiryPolicy) (*domain.TokenClaims, error) {
	if tokenString == "" {
		return nil, domain.ErrTokenInvalid
	}

	claims := &accessClaims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != signingMethod {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	if claims.Issuer != s.issuer {
		return nil, domain.ErrTokenIssuerMismatch
	}
	if !slices.Contains(claims.Audience, s.audience) {
		return nil, domain.ErrTokenAudienceMismatch
	}
	if claims.Subject == "" || claims.AccountID <= 0 {
		return nil, fmt.Errorf("%w: missing subject", domain.ErrTokenInvalid)
	}
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing expiry", domain.ErrTokenInvalid)
	}

	if policy == domain.ExpiryEnforce && !s.now().Before(claims.ExpiresAt.Time) {
		return nil, domain.ErrTokenExpired
	}

	result := &domain.TokenClaims{
		AccountID: claims.AccountID,
		Username:  claims.Subject,
		Role:      domain.ParseRole(string(claims.Role)),
		Issuer:    claims.Issuer,
		Audience:  s.audience,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	return result, nil
}
