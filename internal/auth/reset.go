package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// ResetTokenBytes is the entropy of the plaintext reset secret.
const ResetTokenBytes = 32

// ResetToken is the split representation of a password-reset credential.
// Plain is returned to the caller exactly once for out-of-band delivery;
// only Hash and ExpiresAt are ever persisted.
type ResetToken struct {
	Plain     string
	Hash      string
	ExpiresAt time.Time
}

// NewResetToken generates a cryptographically random reset secret with the
// given lifetime.
func NewResetToken(ttl time.Duration) (*ResetToken, error) {
	buf := make([]byte, ResetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to generate reset token: %w", err)
	}

	plain := hex.EncodeToString(buf)
	return &ResetToken{
		Plain:     plain,
		Hash:      HashResetToken(plain),
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

// HashResetToken digests a plaintext reset secret for storage or lookup.
// sha256 rather than bcrypt: this runs on every redemption attempt and the
// secret already carries 256 bits of entropy.
func HashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
