package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/tictac1213/JobNotification/config"
)

func newTestManager(accessTTL time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:       "test-secret-key-at-least-16-chars",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: 24 * time.Hour,
	})
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	m := newTestManager(time.Hour)

	token, err := m.GenerateAccessToken("uid-001", "student")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "uid-001" {
		t.Errorf("UserID = %q, want uid-001", claims.UserID)
	}
	if claims.Role != "student" {
		t.Errorf("Role = %q, want student", claims.Role)
	}
	if claims.TokenType != "access" {
		t.Errorf("TokenType = %q, want access", claims.TokenType)
	}
	if claims.ID == "" {
		t.Error("expected a non-empty jti")
	}
}

func TestRefreshTokenHasRefreshType(t *testing.T) {
	m := newTestManager(time.Hour)

	token, err := m.GenerateRefreshToken("uid-002", "admin")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("TokenType = %q, want refresh", claims.TokenType)
	}
}

func TestParseExpiredToken(t *testing.T) {
	m := newTestManager(-time.Minute)

	token, err := m.GenerateAccessToken("uid-003", "student")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	_, err = m.ParseToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	m := newTestManager(time.Hour)
	other := NewManager(&config.AuthConfig{
		JWTSecret:       "another-secret-key-16-chars-min",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	})

	token, err := m.GenerateAccessToken("uid-004", "student")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	_, err = other.ParseToken(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseGarbageToken(t *testing.T) {
	m := newTestManager(time.Hour)

	_, err := m.ParseToken("not.a.token")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}
