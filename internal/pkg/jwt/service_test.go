package jwt

import (
	"errors"
	"testing"
	"time"
)

func TestHMACService_RoundTrip(t *testing.T) {
	svc := NewHMACService("secret", time.Minute)

	tok, exp, err := svc.GenerateAccessToken(RoleAdmin)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if exp.IsZero() {
		t.Fatalf("expected expiry")
	}

	c, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if c.Role != RoleAdmin || c.TokenType != TokenTypeAccess || c.ID == "" {
		t.Fatalf("claims = %+v", c)
	}
}

func TestHMACService_Rejects(t *testing.T) {
	svc := NewHMACService("secret", time.Minute)
	tok, _, err := svc.GenerateAccessToken(RoleAdmin)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	other := NewHMACService("other", time.Minute)
	if _, err := other.ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}

	later := NewHMACService("secret", time.Minute)
	later.now = func() time.Time { return time.Now().Add(time.Hour) }
	if _, err := later.ValidateToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}

	if _, _, err := NewHMACService("", time.Minute).GenerateAccessToken(RoleAdmin); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid without secret, got %v", err)
	}
}
