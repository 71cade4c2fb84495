package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestRoleOrDefault(t *testing.T) {
	tests := []struct {
		role     Role
		expected Role
	}{
		{"", RoleUser},
		{RoleUser, RoleUser},
		{RolePowerUser, RolePowerUser},
		{RoleHRManager, RoleHRManager},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			if got := tt.role.OrDefault(); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in       string
		expected Role
	}{
		{"", RoleUser},
		{"User", RoleUser},
		{"PowerUser", RolePowerUser},
		{"HRManager", RoleHRManager},
		{"poweruser", RoleUser},
		{"Admin", RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseRole(tt.in); got != tt.expected {
				t.Errorf("ParseRole(%q) = %s, want %s", tt.in, got, tt.expected)
			}
		})
	}
}

func TestAccountRefreshTokenLifecycle(t *testing.T) {
	now := time.Now()
	account := &Account{ID: 1, Username: "jdoe"}

	if account.HasActiveRefreshToken(now) {
		t.Fatal("expected no active refresh token on new account")
	}

	account.SetRefreshToken("token-1", now.Add(time.Hour))
	if account.RefreshToken == nil || account.RefreshTokenExpiry == nil {
		t.Fatal("expected token and expiry to be set together")
	}
	if !account.HasActiveRefreshToken(now) {
		t.Error("expected active refresh token")
	}
	if account.HasActiveRefreshToken(now.Add(2 * time.Hour)) {
		t.Error("expected refresh token to be inactive after expiry")
	}

	account.ClearRefreshToken()
	if account.RefreshToken != nil || account.RefreshTokenExpiry != nil {
		t.Error("expected token and expiry to be cleared together")
	}
}

func TestAccountJSONHidesSecrets(t *testing.T) {
	account := &Account{
		ID:           7,
		Username:     "jdoe",
		Email:        "jdoe@example.com",
		PasswordHash: "$2a$10$hash",
	}
	account.SetRefreshToken("refresh-secret", time.Now().Add(time.Hour))

	data, err := json.Marshal(account)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	out := string(data)
	if strings.Contains(out, "$2a$10$hash") {
		t.Error("password hash must not be serialized")
	}
	if strings.Contains(out, "refresh-secret") {
		t.Error("refresh token must not be serialized")
	}
}

func TestAccountToSummary(t *testing.T) {
	account := &Account{ID: 3, Username: "jdoe", Email: "jdoe@example.com"}

	summary := account.ToSummary()
	if summary.ID != 3 || summary.Username != "jdoe" || summary.Email != "jdoe@example.com" {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if summary.Role != RoleUser {
		t.Errorf("expected default role in summary, got %s", summary.Role)
	}
}
