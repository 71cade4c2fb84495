package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/xalgrow/xalgrow-hr/internal/core/domain"
	"github.com/xalgrow/xalgrow-hr/internal/core/ports/driven"
	"github.com/xalgrow/xalgrow-hr/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// AuthServiceConfig holds dependencies for the auth service
type AuthServiceConfig struct {
	Accounts      driven.AccountStore
	Hasher        driven.PasswordHasher
	Tokens        driven.TokenProvider
	RefreshTokens driven.RefreshTokenGenerator
	Logger        *slog.Logger

	// AccessTTL and RefreshTTL default to the domain defaults when zero
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Now defaults to time.Now
	Now func() time.Time
}

// authService implements the AuthService interface
type authService struct {
	accounts      driven.AccountStore
	hasher        driven.PasswordHasher
	tokens        driven.TokenProvider
	refreshTokens driven.RefreshTokenGenerator
	logger        *slog.Logger
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time

	// dummyHash is verified against for unknown usernames so both login
	// failures cost one hash comparison
	dummyOnce sync.Once
	dummyHash string
}

const dummyPassword = "xalgrow-hr-unknown-account"

// NewAuthService creates a new AuthService
func NewAuthService(cfg AuthServiceConfig) driving.AuthService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	accessTTL := cfg.AccessTTL
	if accessTTL <= 0 {
		accessTTL = domain.DefaultAccessTokenTTL
	}
	refreshTTL := cfg.RefreshTTL
	if refreshTTL <= 0 {
		refreshTTL = domain.DefaultRefreshTokenTTL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &authService{
		accounts:      cfg.Accounts,
		hasher:        cfg.Hasher,
		tokens:        cfg.Tokens,
		refreshTokens: cfg.RefreshTokens,
		logger:        logger.With("component", "auth"),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           now,
	}
}

// Login verifies credentials and issues a fresh token pair
func (s *authService) Login(ctx context.Context, req domain.LoginRequest) (*domain.TokenPair, error) {
	// Register stores trimmed usernames
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	account, err := s.accounts.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.hasher.VerifyPassword(req.Password, s.unknownAccountHash())
			s.logger.Info("login rejected", "reason", "unknown account", "username", req.Username)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	if !s.hasher.VerifyPassword(req.Password, account.PasswordHash) {
		s.logger.Info("login rejected", "reason", "wrong password", "account_id", account.ID)
		return nil, domain.ErrInvalidCredentials
	}

	pair, expiry, err := s.issuePair(account)
	if err != nil {
		return nil, err
	}

	if err := s.accounts.SetRefreshToken(ctx, account.ID, pair.RefreshToken, expiry); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	s.logger.Info("login succeeded", "account_id", account.ID)
	return pair, nil
}

// Register creates an account with an unset role
func (s *authService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AccountSummary, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.accounts.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check account: %w", err)
	}
	if exists {
		s.logger.Info("registration rejected", "reason", "username or email taken", "username", req.Username)
		return nil, domain.ErrAlreadyExists
	}

	hash, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &domain.Account{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			// Lost a race with a concurrent registration
			return nil, domain.ErrAlreadyExists
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.logger.Info("account registered", "account_id", account.ID, "username", account.Username)
	return account.ToSummary(), nil
}

// Refresh rotates the refresh token for the account named by an access
// token that may already be expired
func (s *authService) Refresh(ctx context.Context, req domain.RefreshRequest) (*domain.TokenPair, error) {
	if req.AccessToken == "" || req.RefreshToken == "" {
		return nil, domain.ErrInvalidInput
	}

	claims, err := s.tokens.Validate(req.AccessToken, domain.ExpiryIgnore)
	if err != nil {
		s.logger.Warn("refresh rejected", "reason", "access token", "error", err)
		return nil, domain.ErrTokenInvalid
	}

	account, err := s.accounts.GetByUsername(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("refresh rejected", "reason", "unknown account", "username", claims.Username)
			return nil, domain.ErrTokenInvalid
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	if account.ID != claims.AccountID {
		s.logger.Warn("refresh rejected", "reason", "account id mismatch",
			"account_id", account.ID, "token_account_id", claims.AccountID)
		return nil, domain.ErrTokenInvalid
	}

	now := s.now()
	if !account.HasActiveRefreshToken(now) {
		s.logger.Info("refresh rejected", "reason", "no active refresh token", "account_id", account.ID)
		return nil, domain.ErrTokenInvalid
	}
	if subtle.ConstantTimeCompare([]byte(*account.RefreshToken), []byte(req.RefreshToken)) != 1 {
		s.logger.Warn("refresh rejected", "reason", "refresh token mismatch", "account_id", account.ID)
		return nil, domain.ErrTokenInvalid
	}

	pair, expiry, err := s.issuePair(account)
	if err != nil {
		return nil, err
	}

	err = s.accounts.RotateRefreshToken(ctx, account.ID, req.RefreshToken, pair.RefreshToken, expiry, now)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("refresh rejected", "reason", "refresh token already rotated", "account_id", account.ID)
			return nil, domain.ErrTokenInvalid
		}
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}

	s.logger.Info("refresh token rotated", "account_id", account.ID)
	return pair, nil
}

// ValidateToken strictly validates an access token
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}

	claims, err := s.tokens.Validate(token, domain.ExpiryEnforce)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		s.logger.Debug("access token rejected", "error", err)
		return nil, domain.ErrTokenInvalid
	}

	return &domain.AuthContext{
		AccountID: claims.AccountID,
		Username:  claims.Username,
		Role:      claims.Role.OrDefault(),
	}, nil
}

// Logout clears the account's refresh token and expiry
func (s *authService) Logout(ctx context.Context, accountID int64) error {
	if err := s.accounts.ClearRefreshToken(ctx, accountID); err != nil {
		return fmt.Errorf("clear refresh token: %w", err)
	}
	s.logger.Info("logged out", "account_id", accountID)
	return nil
}

// unknownAccountHash returns a real hash of a fixed password, computed once
func (s *authService) unknownAccountHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.HashPassword(dummyPassword)
		if err != nil {
			s.logger.Warn("failed to prepare unknown account hash", "error", err)
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

// issuePair signs an access token and draws a refresh token for account.
// The returned time is the refresh token's expiry.
func (s *authService) issuePair(account *domain.Account) (*domain.TokenPair, time.Time, error) {
	now := s.now()

	access, err := s.tokens.Issue(domain.TokenSubject{
		AccountID: account.ID,
		Username:  account.Username,
		Role:      account.Role.OrDefault(),
	}, s.accessTTL)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("issue access token: %w", err)
	}

	refresh, err := s.refreshTokens.Generate()
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("generate refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    now.Add(s.accessTTL),
	}, now.Add(s.refreshTTL), nil
}
