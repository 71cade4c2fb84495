package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/xalgrow/xalgrow-hr/internal/core/domain"
	"github.com/xalgrow/xalgrow-hr/internal/core/ports/driven"
)

// Ensure MockAccountStore implements AccountStore
var _ driven.AccountStore = (*MockAccountStore)(nil)

// MockAccountStore is an in-memory AccountStore for testing.
// It hands out copies so callers cannot mutate stored state without a store call.
type MockAccountStore struct {
	mu         sync.Mutex
	nextID     int64
	accounts   map[int64]*domain.Account
	byUsername map[string]int64

	// Optional failure injection
	CreateErr          error
	SetRefreshTokenErr error
}

// NewMockAccountStore creates a new MockAccountStore
func NewMockAccountStore() *MockAccountStore {
	return &MockAccountStore{
		nextID:     1,
		accounts:   make(map[int64]*domain.Account),
		byUsername: make(map[string]int64),
	}
}

func (m *MockAccountStore) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.accounts {
		if a.Username == account.Username || a.Email == account.Email {
			return domain.ErrAlreadyExists
		}
	}

	account.ID = m.nextID
	m.nextID++
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}
	m.accounts[account.ID] = copyAccount(account)
	m.byUsername[account.Username] = account.ID
	return nil
}

func (m *MockAccountStore) Get(ctx context.Context, id int64) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyAccount(a), nil
}

func (m *MockAccountStore) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.byUsername[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyAccount(m.accounts[id]), nil
}

func (m *MockAccountStore) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.accounts {
		if a.Username == username || a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockAccountStore) SetRefreshToken(ctx context.Context, id int64, token string, expiry time.Time) error {
	if m.SetRefreshTokenErr != nil {
		return m.SetRefreshTokenErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.SetRefreshToken(token, expiry)
	return nil
}

func (m *MockAccountStore) RotateRefreshToken(ctx context.Context, id int64, presented, token string, expiry, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	if !a.HasActiveRefreshToken(now) || *a.RefreshToken != presented {
		return domain.ErrConflict
	}
	a.SetRefreshToken(token, expiry)
	return nil
}

func (m *MockAccountStore) ClearRefreshToken(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.ClearRefreshToken()
	return nil
}

func (m *MockAccountStore) ClearExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var cleared int64
	for _, a := range m.accounts {
		if a.RefreshTokenExpiry != nil && !now.Before(*a.RefreshTokenExpiry) {
			a.ClearRefreshToken()
			cleared++
		}
	}
	return cleared, nil
}

// Helper methods for testing

// Put stores an account as-is, keeping its ID
func (m *MockAccountStore) Put(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = copyAccount(account)
	m.byUsername[account.Username] = account.ID
	if account.ID >= m.nextID {
		m.nextID = account.ID + 1
	}
}

// ExpireRefreshToken moves the stored refresh token expiry to at
func (m *MockAccountStore) ExpireRefreshToken(id int64, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.accounts[id]; ok && a.RefreshToken != nil {
		a.RefreshTokenExpiry = &at
	}
}

func (m *MockAccountStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.accounts)
}

func copyAccount(a *domain.Account) *domain.Account {
	c := *a
	if a.RefreshToken != nil {
		token := *a.RefreshToken
		c.RefreshToken = &token
	}
	if a.RefreshTokenExpiry != nil {
		expiry := *a.RefreshTokenExpiry
		c.RefreshTokenExpiry = &expiry
	}
	return &c
}
