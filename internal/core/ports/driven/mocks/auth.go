package mocks

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/xalgrow/xalgrow-hr/internal/core/ports/driven"
)

// Ensure mocks implement their interfaces
var (
	_ driven.PasswordHasher        = (*MockPasswordHasher)(nil)
	_ driven.RefreshTokenGenerator = (*MockRefreshTokenGenerator)(nil)
)

const mockHashPrefix = "mock-hash:"

// MockPasswordHasher is a fast, NOT secure PasswordHasher for testing.
// The hash is the password behind a fixed prefix.
type MockPasswordHasher struct {
	HashErr error

	hashCalls   atomic.Int64
	verifyCalls atomic.Int64
}

// NewMockPasswordHasher creates a new MockPasswordHasher
func NewMockPasswordHasher() *MockPasswordHasher {
	return &MockPasswordHasher{}
}

// HashPassword returns the prefixed password
func (m *MockPasswordHasher) HashPassword(password string) (string, error) {
	m.hashCalls.Add(1)
	if m.HashErr != nil {
		return "", m.HashErr
	}
	return mockHashPrefix + password, nil
}

// VerifyPassword compares against the prefixed password
func (m *MockPasswordHasher) VerifyPassword(password, hash string) bool {
	m.verifyCalls.Add(1)
	if !strings.HasPrefix(hash, mockHashPrefix) {
		return false
	}
	return strings.TrimPrefix(hash, mockHashPrefix) == password
}

// MockRefreshTokenGenerator returns predictable, unique tokens
type MockRefreshTokenGenerator struct {
	mu  sync.Mutex
	n   int
	Err error
}

// NewMockRefreshTokenGenerator creates a new MockRefreshTokenGenerator
func NewMockRefreshTokenGenerator() *MockRefreshTokenGenerator {
	return &MockRefreshTokenGenerator{}
}

// Generate returns refresh-1, refresh-2, ...
func (m *MockRefreshTokenGenerator) Generate() (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++
	return fmt.Sprintf("refresh-%d", m.n), nil
}

// HashCalls returns how many times HashPassword ran
func (m *MockPasswordHasher) HashCalls() int64 {
	return m.hashCalls.Load()
}

// VerifyCalls returns how many times VerifyPassword ran
func (m *MockPasswordHasher) VerifyCalls() int64 {
	return m.verifyCalls.Load()
}
