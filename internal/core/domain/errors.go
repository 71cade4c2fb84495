package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates the resource already exists.
	// Registration returns it when the username or email is taken.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates missing or malformed input fields
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the caller lacks the role for this action
	ErrForbidden = errors.New("forbidden")

	// ErrConflict indicates a conditional write lost against a concurrent update
	ErrConflict = errors.New("conflict")

	// ErrInvalidCredentials indicates a wrong username/password combination.
	// The same value is returned for unknown usernames.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenInvalid indicates the token is malformed, badly signed, uses an
	// unexpected algorithm, or the refresh token does not match
	ErrTokenInvalid = errors.New("token invalid")

	// ErrTokenExpired indicates the access token is past its expiry
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenIssuerMismatch indicates the token was issued by someone else
	ErrTokenIssuerMismatch = errors.New("token issuer mismatch")

	// ErrTokenAudienceMismatch indicates the token targets another audience
	ErrTokenAudienceMismatch = errors.New("token audience mismatch")

	// ErrConfiguration indicates fatal startup configuration problems
	ErrConfiguration = errors.New("configuration error")

	// ErrRateLimited indicates too many attempts in the current window
	ErrRateLimited = errors.New("rate limited")
)
