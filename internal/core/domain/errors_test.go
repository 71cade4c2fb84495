package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"ErrNotFound", ErrNotFound, "not found"},
		{"ErrAlreadyExists", ErrAlreadyExists, "already exists"},
		{"ErrInvalidInput", ErrInvalidInput, "invalid input"},
		{"ErrUnauthorized", ErrUnauthorized, "unauthorized"},
		{"ErrForbidden", ErrForbidden, "forbidden"},
		{"ErrConflict", ErrConflict, "conflict"},
		{"ErrInvalidCredentials", ErrInvalidCredentials, "invalid credentials"},
		{"ErrTokenInvalid", ErrTokenInvalid, "token invalid"},
		{"ErrTokenExpired", ErrTokenExpired, "token expired"},
		{"ErrTokenIssuerMismatch", ErrTokenIssuerMismatch, "token issuer mismatch"},
		{"ErrTokenAudienceMismatch", ErrTokenAudienceMismatch, "token audience mismatch"},
		{"ErrConfiguration", ErrConfiguration, "configuration error"},
		{"ErrRateLimited", ErrRateLimited, "rate limited"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.msg {
				t.Errorf("expected %q, got %q", tt.msg, tt.err.Error())
			}
		})
	}
}

func TestErrorsAreDistinct(t *testing.T) {
	allErrors := []error{
		ErrNotFound,
		ErrAlreadyExists,
		ErrInvalidInput,
		ErrUnauthorized,
		ErrForbidden,
		ErrConflict,
		ErrInvalidCredentials,
		ErrTokenInvalid,
		ErrTokenExpired,
		ErrTokenIssuerMismatch,
		ErrTokenAudienceMismatch,
		ErrConfiguration,
		ErrRateLimited,
	}

	for i, a := range allErrors {
		for j, b := range allErrors {
			if i != j && errors.Is(a, b) {
				t.Errorf("expected %v and %v to be distinct", a, b)
			}
		}
	}
}

func TestErrorsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("login: %w", ErrInvalidCredentials)
	if !errors.Is(wrapped, ErrInvalidCredentials) {
		t.Error("expected wrapped error to match ErrInvalidCredentials")
	}
}
