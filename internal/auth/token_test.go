package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"workboard/internal/model"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	ti := NewTokenIssuer([]byte("secret"), time.Hour, "")
	u := model.User{ID: "usr1", Email: "a@example.com", Name: "A"}
	tok, exp, err := ti.Issue(u)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expected future expiry, got %v", exp)
	}
	claims, err := ti.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != "usr1" || claims.Email != "a@example.com" || claims.Subject != "usr1" || claims.ID == "" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenIssuer_RejectsTamperedAndForeign(t *testing.T) {
	ti := NewTokenIssuer([]byte("secret"), time.Hour, "")
	tok, _, _ := ti.Issue(model.User{ID: "usr1"})

	parts := strings.Split(tok, ".")
	parts[1] = parts[1] + "x"
	if _, err := ti.Verify(strings.Join(parts, ".")); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered payload, got %v", err)
	}

	other := NewTokenIssuer([]byte("other-secret"), time.Hour, "")
	if _, err := other.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong key, got %v", err)
	}
	if _, err := ti.Verify(""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for empty token, got %v", err)
	}
	if _, err := ti.Verify("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}
}

func TestTokenIssuer_Expiry(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	ti := NewTokenIssuer([]byte("secret"), time.Hour, "")
	ti.now = func() time.Time { return now }

	tok, _, err := ti.Issue(model.User{ID: "usr1"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	now = start.Add(30 * time.Minute)
	if _, err := ti.Verify(tok); err != nil {
		t.Fatalf("expected valid token, got %v", err)
	}
	now = start.Add(2 * time.Hour)
	if _, err := ti.Verify(tok); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}
