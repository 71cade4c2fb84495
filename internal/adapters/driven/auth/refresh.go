package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/xalgrow/xalgrow-hr/internal/core/ports/driven"
)

// Ensure RefreshTokenGenerator implements driven.RefreshTokenGenerator
var _ driven.RefreshTokenGenerator = (*RefreshTokenGenerator)(nil)

const (
	// RefreshTokenBytes is the amount of randomness per refresh token
	RefreshTokenBytes = 32
)

// RefreshTokenLength is the encoded length of every generated token
var RefreshTokenLength = base64.RawURLEncoding.EncodedLen(RefreshTokenBytes)

// RefreshTokenGenerator draws opaque tokens from a CSPRNG
type RefreshTokenGenerator struct {
	random io.Reader
}

// NewRefreshTokenGenerator creates a generator backed by crypto/rand
func NewRefreshTokenGenerator() *RefreshTokenGenerator {
	return &RefreshTokenGenerator{random: rand.Reader}
}

// Generate returns RefreshTokenBytes of randomness as unpadded base64url
func (g *RefreshTokenGenerator) Generate() (string, error) {
	b := make([]byte, RefreshTokenBytes)
	if _, err := io.ReadFull(g.random, b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
