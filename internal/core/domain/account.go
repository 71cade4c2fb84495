package domain

import "time"

// Role defines account permission level
type Role string

const (
	RoleUser      Role = "User"      // Default for accounts without a role
	RolePowerUser Role = "PowerUser" // Full access, including protected endpoints
	RoleHRManager Role = "HRManager" // Manage employees and departments
)

// DefaultRole is issued for accounts whose role is unset
const DefaultRole = RoleUser

// OrDefault returns the role, or DefaultRole when unset
func (r Role) OrDefault() Role {
	if r == "" {
		return DefaultRole
	}
	return r
}

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RolePowerUser, RoleHRManager:
		return true
	}
	return false
}

// ParseRole converts a stored or claimed role string to a Role.
// Empty and unknown values resolve to DefaultRole.
func ParseRole(s string) Role {
	r := Role(s)
	if !r.IsValid() {
		return DefaultRole
	}
	return r
}

// Account is the identity record used for authentication
type Account struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Never serialize
	// Role is empty until an administrator assigns one
	Role               Role       `json:"role,omitempty"`
	RefreshToken       *string    `json:"-"`
	RefreshTokenExpiry *time.Time `json:"-"`
	CreatedAt          time.Time  `json:"created_at"`
}

// HasActiveRefreshToken reports whether a refresh token is stored and unexpired at now
func (a *Account) HasActiveRefreshToken(now time.Time) bool {
	if a.RefreshToken == nil || a.RefreshTokenExpiry == nil {
		return false
	}
	return now.Before(*a.RefreshTokenExpiry)
}

// SetRefreshToken stores token and expiry together
func (a *Account) SetRefreshToken(token string, expiry time.Time) {
	a.RefreshToken = &token
	a.RefreshTokenExpiry = &expiry
}

// ClearRefreshToken removes token and expiry together
func (a *Account) ClearRefreshToken() {
	a.RefreshToken = nil
	a.RefreshTokenExpiry = nil
}

// AccountSummary provides a safe view of account data
type AccountSummary struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ToSummary converts an Account to AccountSummary
func (a *Account) ToSummary() *AccountSummary {
	return &AccountSummary{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		Role:      a.Role.OrDefault(),
		CreatedAt: a.CreatedAt,
	}
}
