package auth

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"
)

func TestRefreshTokenGenerator_Generate(t *testing.T) {
	gen := NewRefreshTokenGenerator()

	token, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate error = %v", err)
	}
	if len(token) != RefreshTokenLength {
		t.Errorf("len = %d, want %d", len(token), RefreshTokenLength)
	}
	if RefreshTokenLength != 43 {
		t.Errorf("RefreshTokenLength = %d, want 43", RefreshTokenLength)
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("token is not base64url: %v", err)
	}
	if len(raw) != RefreshTokenBytes {
		t.Errorf("decoded %d bytes, want %d", len(raw), RefreshTokenBytes)
	}
}

func TestRefreshTokenGenerator_Unique(t *testing.T) {
	gen := NewRefreshTokenGenerator()
	seen := make(map[string]bool)

	for i := 0; i < 1000; i++ {
		token, err := gen.Generate()
		if err != nil {
			t.Fatalf("Generate error = %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token after %d draws", i)
		}
		seen[token] = true
	}
}

func TestRefreshTokenGenerator_DeterministicReader(t *testing.T) {
	gen := &RefreshTokenGenerator{random: bytes.NewReader(make([]byte, RefreshTokenBytes))}

	token, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate error = %v", err)
	}
	want := base64.RawURLEncoding.EncodeToString(make([]byte, RefreshTokenBytes))
	if token != want {
		t.Errorf("token = %q, want %q", token, want)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy unavailable") }

func TestRefreshTokenGenerator_ReaderError(t *testing.T) {
	gen := &RefreshTokenGenerator{random: failingReader{}}
	if _, err := gen.Generate(); err == nil {
		t.Error("expected error from failing reader")
	}

	short := &RefreshTokenGenerator{random: bytes.NewReader(make([]byte, 8))}
	if _, err := short.Generate(); err == nil {
		t.Error("expected error from short reader")
	}
}
