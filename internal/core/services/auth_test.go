package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authadapter "github.com/xalgrow/xalgrow-hr/internal/adapters/driven/auth"
	"github.com/xalgrow/xalgrow-hr/internal/core/domain"
	"github.com/xalgrow/xalgrow-hr/internal/core/ports/driven/mocks"
)

// testClock is a settable time source shared by the service and the signer
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type authFixture struct {
	accounts *mocks.MockAccountStore
	hasher   *mocks.MockPasswordHasher
	signer   *authadapter.TokenSigner
	clock    *testClock
	svc      *authService
}

func newTestAuthService(t *testing.T) *authFixture {
	t.Helper()
	cfg, err := domain.NewTokenConfig("test-secret", "xalgrow-hr", "xalgrow-clients", time.Hour, 7*24*time.Hour)
	require.NoError(t, err)

	clock := newTestClock()
	accounts := mocks.NewMockAccountStore()
	hasher := mocks.NewMockPasswordHasher()
	signer := authadapter.NewTokenSignerWithClock(cfg, clock.Now)

	svc := NewAuthService(AuthServiceConfig{
		Accounts:      accounts,
		Hasher:        hasher,
		Tokens:        signer,
		RefreshTokens: authadapter.NewRefreshTokenGenerator(),
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
		Now:           clock.Now,
	}).(*authService)

	return &authFixture{accounts: accounts, hasher: hasher, signer: signer, clock: clock, svc: svc}
}

func (f *authFixture) register(t *testing.T, username, password string) *domain.AccountSummary {
	t.Helper()
	summary, err := f.svc.Register(context.Background(), domain.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: password,
	})
	require.NoError(t, err)
	return summary
}

func (f *authFixture) login(t *testing.T, username, password string) *domain.TokenPair {
	t.Helper()
	pair, err := f.svc.Login(context.Background(), domain.LoginRequest{Username: username, Password: password})
	require.NoError(t, err)
	return pair
}

func TestNewAuthService_Defaults(t *testing.T) {
	svc := NewAuthService(AuthServiceConfig{}).(*authService)

	assert.Equal(t, domain.DefaultAccessTokenTTL, svc.accessTTL)
	assert.Equal(t, domain.DefaultRefreshTokenTTL, svc.refreshTTL)
	assert.NotNil(t, svc.logger)
	assert.NotNil(t, svc.now)
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	f := newTestAuthService(t)

	summary := f.register(t, "jdoe", "password123")
	assert.Equal(t, "jdoe", summary.Username)
	assert.Equal(t, "jdoe@example.com", summary.Email)
	assert.Equal(t, domain.RoleUser, summary.Role)
	assert.Positive(t, summary.ID)

	pair := f.login(t, "jdoe", "password123")
	assert.Equal(t, 2, strings.Count(pair.AccessToken, "."), "access token should have 3 parts")
	assert.Len(t, pair.RefreshToken, authadapter.RefreshTokenLength)
	assert.Equal(t, f.clock.Now().Add(time.Hour), pair.ExpiresAt)

	stored, err := f.accounts.Get(context.Background(), summary.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, pair.RefreshToken, *stored.RefreshToken)
	require.NotNil(t, stored.RefreshTokenExpiry)
	assert.Equal(t, f.clock.Now().Add(7*24*time.Hour), *stored.RefreshTokenExpiry)
	assert.NotEqual(t, "password123", stored.PasswordHash)
}

func TestAuthService_Login(t *testing.T) {
	f := newTestAuthService(t)
	f.register(t, "jdoe", "password123")

	tests := []struct {
		name    string
		req     domain.LoginRequest
		wantErr error
	}{
		{"valid credentials", domain.LoginRequest{Username: "jdoe", Password: "password123"}, nil},
		{"empty username", domain.LoginRequest{Username: "", Password: "password123"}, domain.ErrInvalidInput},
		{"empty password", domain.LoginRequest{Username: "jdoe", Password: ""}, domain.ErrInvalidInput},
		{"wrong password", domain.LoginRequest{Username: "jdoe", Password: "wrongpassword"}, domain.ErrInvalidCredentials},
		{"unknown user", domain.LoginRequest{Username: "nobody", Password: "password123"}, domain.ErrInvalidCredentials},
		{"username is case sensitive", domain.LoginRequest{Username: "JDOE", Password: "password123"}, domain.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair, err := f.svc.Login(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, pair)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, pair.AccessToken)
		})
	}
}

func TestAuthService_Login_SameErrorForUnknownAndWrongPassword(t *testing.T) {
	f := newTestAuthService(t)
	f.register(t, "jdoe", "password123")

	_, errWrong := f.svc.Login(context.Background(), domain.LoginRequest{Username: "jdoe", Password: "nope"})
	_, errUnknown := f.svc.Login(context.Background(), domain.LoginRequest{Username: "ghost", Password: "nope"})

	assert.Equal(t, errWrong, errUnknown)
	assert.Equal(t, domain.ErrInvalidCredentials, errWrong)
}

func TestAuthService_Login_UnknownUserStillVerifiesPassword(t *testing.T) {
	f := newTestAuthService(t)
	f.register(t, "jdoe", "password123")
	hashesAfterRegister := f.hasher.HashCalls()

	for i, username := range []string{"ghost", "phantom", "nobody"} {
		before := f.hasher.VerifyCalls()
		_, err := f.svc.Login(context.Background(), domain.LoginRequest{Username: username, Password: "nope"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Equal(t, before+1, f.hasher.VerifyCalls(), "attempt %d should run one password comparison", i+1)
	}
	assert.Equal(t, hashesAfterRegister+1, f.hasher.HashCalls(), "unknown account hash should be computed once")

	before := f.hasher.VerifyCalls()
	_, err := f.svc.Login(context.Background(), domain.LoginRequest{Username: "jdoe", Password: "nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Equal(t, before+1, f.hasher.VerifyCalls())
}

func TestAuthService_Login_TrimsUsernameLikeRegister(t *testing.T) {
	f := newTestAuthService(t)
	summary, err := f.svc.Register(context.Background(), domain.RegisterRequest{
		Username: " jdoe ",
		Email:    "jdoe@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "jdoe", summary.Username)

	for _, username := range []string{" jdoe ", " jdoe", "jdoe"} {
		pair, err := f.svc.Login(context.Background(), domain.LoginRequest{Username: username, Password: "password123"})
		require.NoError(t, err, "login as %q", username)
		assert.NotEmpty(t, pair.AccessToken)
	}

	_, err = f.svc.Login(context.Background(), domain.LoginRequest{Username: "   ", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAuthService_Login_RoleInToken(t *testing.T) {
	f := newTestAuthService(t)
	f.accounts.Put(&domain.Account{
		ID:           42,
		Username:     "boss",
		Email:        "boss@example.com",
		PasswordHash: "mock-hash:password123",
		Role:         domain.RoleHRManager,
	})

	pair := f.login(t, "boss", "password123")

	claims, err := f.signer.ValidateStrict(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.AccountID)
	assert.Equal(t, "boss", claims.Username)
	assert.Equal(t, domain.RoleHRManager, claims.Role)
}

func TestAuthService_Login_StoreFailure(t *testing.T) {
	f := newTestAuthService(t)
	f.register(t, "jdoe", "password123")
	f.accounts.SetRefreshTokenErr = errors.New("connection reset")

	_, err := f.svc.Login(context.Background(), domain.LoginRequest{Username: "jdoe", Password: "password123"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Register(t *testing.T) {
	f := newTestAuthService(t)
	f.register(t, "existing", "password123")

	tests := []struct {
		name    string
		req     domain.RegisterRequest
		wantErr error
	}{
		{"valid", domain.RegisterRequest{Username: "fresh", Email: "fresh@example.com", Password: "pw"}, nil},
		{"empty username", domain.RegisterRequest{Username: "", Email: "a@example.com", Password: "pw"}, domain.ErrInvalidInput},
		{"blank username", domain.RegisterRequest{Username: "   ", Email: "a@example.com", Password: "pw"}, domain.ErrInvalidInput},
		{"empty email", domain.RegisterRequest{Username: "a", Email: "", Password: "pw"}, domain.ErrInvalidInput},
		{"empty password", domain.RegisterRequest{Username: "a", Email: "a@example.com", Password: ""}, domain.ErrInvalidInput},
		{"malformed email", domain.RegisterRequest{Username: "a", Email: "not-an-email", Password: "pw"}, domain.ErrInvalidInput},
		{"password too long", domain.RegisterRequest{Username: "a", Email: "a@example.com", Password: strings.Repeat("x", 73)}, domain.ErrInvalidInput},
		{"duplicate username", domain.RegisterRequest{Username: "existing", Email: "other@example.com", Password: "pw"}, domain.ErrAlreadyExists},
		{"duplicate email", domain.RegisterRequest{Username: "other", Email: "existing@example.com", Password: "pw"}, domain.ErrAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := f.svc.Register(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, summary)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.req.Username, summary.Username)
		})
	}
}

func TestAuthService_Register_DuplicateLeavesExistingAccount(t *testing.T) {
	f := newTestAuthService(t)
	original := f.register(t, "jdoe", "password123")

	_, err := f.svc.Register(context.Background(), domain.RegisterRequest{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Password: "another-password",
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.Equal(t, 1, f.accounts.Count())

	// Original password still works, the new one does not
	f.login(t, "jdoe", "password123")
	_, err = f.svc.Login(context.Background(), domain.LoginRequest{Username: "jdoe", Password: "another-password"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	stored, err := f.accounts.Get(context.Background(), original.ID)
	require.NoError(t, err)
	assert.Equal(t, "jdoe@example.com", stored.Email)
}

func TestAuthService_Register_StoreConflict(t *testing.T) {
	f := newTestAuthService(t)
	f.accounts.CreateErr = domain.ErrAlreadyExists

	_, err := f.svc.Register(context.Background(), domain.RegisterRequest{
		Username: "racer",
		Email:    "racer@example.com",
		Password: "pw",
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestAuthService_Register_HashFailure(t *testing.T) {
	f := newTestAuthService(t)
	f.svc.hasher = &mocks.MockPasswordHasher{HashErr: errors.New("boom")}

	_, err := f.svc.Register(context.Background(), domain.RegisterRequest{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Password: "pw",
	})
	require.Error(t, err)
	assert.Equal(t, 0, f.accounts.Count())
}

func TestAuthService_Refresh(t *testing.T) {
	f := newTestAuthService(t)
	f.register(t, "jdoe", "password123")
	pair := f.login(t, "jdoe", "password123")

	// Access token expires, refresh token is still valid
	f.clock.Advance(2 * time.Hour)
	_, err := f.svc.ValidateToken(context.Background(), pair.AccessToken)
	require.ErrorIs(t, err, domain.ErrTokenExpired)

	next, err := f.svc.Refresh(context.Background(), domain.RefreshRequest{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)
	assert.Len(t, next.RefreshToken, authadapter.RefreshTokenLength)

	auth, err := f.svc.ValidateToken(context.Background(), next.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "jdoe", auth.Username)

	// The presented refresh token is single use
	_, err = f.svc.Refresh(context.Background(), domain.RefreshRequest{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	// The rotated one works
	_, err = f.svc.Refresh(context.Background(), domain.RefreshRequest{
		AccessToken:  next.AccessToken,
		RefreshToken: next.RefreshToken,
	})
	assert.NoError(t, err)
}

func TestAuthService_Refresh_Rejections(t *testing.T) {
	f := newTestAuthService(t)
	summary := f.register(t, "jdoe", "password123")
	pair := f.login(t, "jdoe", "password123")

	otherCfg, err := domain.NewTokenConfig("other-secret", "xalgrow-hr", "xalgrow-clients", 0, 0)
	require.NoError(t, err)
	foreign, err := authadapter.NewTokenSigner(otherCfg).Issue(domain.TokenSubject{
		AccountID: summary.ID, Username: "jdoe", Role: domain.RoleUser,
	}, time.Hour)
	require.NoError(t, err)

	ghost, err := f.signer.Issue(domain.TokenSubject{AccountID: 999, Username: "ghost"}, time.Hour)
	require.NoError(t, err)

	wrongID, err := f.signer.Issue(domain.TokenSubject{AccountID: summary.ID + 1, Username: "jdoe"}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		req     domain.RefreshRequest
		wantErr error
	}{
		{"missing access token", domain.RefreshRequest{RefreshToken: pair.RefreshToken}, domain.ErrInvalidInput},
		{"missing refresh token", domain.RefreshRequest{AccessToken: pair.AccessToken}, domain.ErrInvalidInput},
		{"garbage access token", domain.RefreshRequest{AccessToken: "garbage", RefreshToken: pair.RefreshToken}, domain.ErrTokenInvalid},
		{"foreign signature", domain.RefreshRequest{AccessToken: foreign, RefreshToken: pair.RefreshToken}, domain.ErrTokenInvalid},
		{"unknown account", domain.RefreshRequest{AccessToken: ghost, RefreshToken: pair.RefreshToken}, domain.ErrTokenInvalid},
		{"account id mismatch", domain.RefreshRequest{AccessToken: wrongID, RefreshToken: pair.RefreshToken}, domain.ErrTokenInvalid},
		{"wrong refresh token", domain.RefreshRequest{AccessToken: pair.AccessToken, RefreshToken: "not-the-token"}, domain.ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Refresh(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// None of the rejections rotated the stored token
	stored, err := f.accounts.Get(context.Background(), summary.ID)
	require.NoError(t, err)
	assert.Equal(t, pair.RefreshToken, *stored.RefreshToken)
}

func TestAuthService_Refresh_ExpiredRefreshToken(t *testing.T) {
	f := newTestAuthService(t)
	f.register(t, "jdoe", "password123")
	pair := f.login(t, "jdoe", "password123")

	f.clock.Advance(7*24*time.Hour + time.Second)

	_, err := f.svc.Refresh(context.Background(), domain.RefreshRequest{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestAuthService_Refresh_AfterLogout(t *testing.T) {
	f := newTestAuthService(t)
	summary := f.register(t, "jdoe", "password123")
	pair := f.login(t, "jdoe", "password123")

	require.NoError(t, f.svc.Logout(context.Background(), summary.ID))

	stored, err := f.accounts.Get(context.Background(), summary.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.RefreshToken)
	assert.Nil(t, stored.RefreshTokenExpiry)

	_, err = f.svc.Refresh(context.Background(), domain.RefreshRequest{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestAuthService_Refresh_ConcurrentRotation(t *testing.T) {
	f := newTestAuthService(t)
	f.register(t, "jdoe", "password123")
	pair := f.login(t, "jdoe", "password123")

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		failures  int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Refresh(context.Background(), domain.RefreshRequest{
				AccessToken:  pair.AccessToken,
				RefreshToken: pair.RefreshToken,
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if errors.Is(err, domain.ErrTokenInvalid) {
				failures++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, failures)
}

func TestAuthService_ValidateToken(t *testing.T) {
	f := newTestAuthService(t)
	f.register(t, "jdoe", "password123")
	pair := f.login(t, "jdoe", "password123")

	auth, err := f.svc.ValidateToken(context.Background(), pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "jdoe", auth.Username)
	assert.Equal(t, domain.RoleUser, auth.Role)
	assert.Positive(t, auth.AccountID)

	_, err = f.svc.ValidateToken(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, err = f.svc.ValidateToken(context.Background(), "invalid-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	zero, err := f.signer.Issue(domain.TokenSubject{AccountID: auth.AccountID, Username: "jdoe"}, 0)
	require.NoError(t, err)
	_, err = f.svc.ValidateToken(context.Background(), zero)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestAuthService_Logout_UnknownAccount(t *testing.T) {
	f := newTestAuthService(t)

	err := f.svc.Logout(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
