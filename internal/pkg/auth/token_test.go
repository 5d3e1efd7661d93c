package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestNewBcryptVerifier_EmptyToken(t *testing.T) {
	if _, err := NewBcryptVerifier("", bcrypt.MinCost); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestNewBcryptVerifier_InvalidCost(t *testing.T) {
	if _, err := NewBcryptVerifier("secret", bcrypt.MaxCost+1); err == nil {
		t.Fatal("expected error for invalid cost")
	}
}

func TestNewBcryptVerifier_DoesNotKeepPlainToken(t *testing.T) {
	v, err := NewBcryptVerifier("secret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(v.hash), "secret") {
		t.Fatal("hash must not contain the plain token")
	}
	if cost, err := bcrypt.Cost(v.hash); err != nil || cost != bcrypt.MinCost {
		t.Fatalf("unexpected cost %d (%v)", cost, err)
	}
}

func TestBcryptVerifier_Verify(t *testing.T) {
	v, err := NewBcryptVerifier("secret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := v.Verify("secret"); err != nil {
		t.Fatalf("expected token to verify: %v", err)
	}
	for _, token := range []string{"", "Secret", "secret ", "wrong"} {
		if err := v.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Verify(%q) = %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestBcryptVerifier_LongTokens(t *testing.T) {
	base := strings.Repeat("a", 80)
	v, err := NewBcryptVerifier(base+"1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.Verify(base + "1"); err != nil {
		t.Fatalf("expected long token to verify: %v", err)
	}
	if err := v.Verify(base + "2"); !errors.Is(err, ErrInvalidToken) {
		t.Fatal("tokens differing after 72 bytes must not verify")
	}
}
