package auth

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	password := "password123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if hash == password {
		t.Error("hash must not equal the plaintext password")
	}
	if strings.Contains(hash, password) {
		t.Error("hash must not contain the plaintext password")
	}
	if !strings.HasPrefix(hash, "$2a$12$") && !strings.HasPrefix(hash, "$2b$12$") {
		t.Errorf("expected bcrypt hash with cost 12, got prefix %q", hash[:7])
	}
}

func TestHashPassword_Empty(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Error("expected error for empty password")
	}
}

func TestHashPassword_TooLong(t *testing.T) {
	if _, err := HashPassword(strings.Repeat("a", MaxPasswordLen+1)); err == nil {
		t.Error("expected error for over-long password")
	}
}

func TestComparePassword(t *testing.T) {
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if !ComparePassword(hash, "password123") {
		t.Error("correct password should verify")
	}
	if ComparePassword(hash, "password124") {
		t.Error("wrong password should not verify")
	}
	if ComparePassword(hash, "") {
		t.Error("empty password should not verify")
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	h1, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	h2, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if h1 == h2 {
		t.Error("two hashes of the same password should differ (random salt)")
	}
}
