package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-with-enough-length"

func TestTokenManager_SignAndVerify(t *testing.T) {
	tm := NewTokenManager(testSecret, 15*time.Minute)

	token, err := tm.Sign("user123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user123", claims.UserID)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenManager_Verify_Expired(t *testing.T) {
	tm := NewTokenManager(testSecret, -1*time.Minute)

	token, err := tm.Sign("user123")
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.Error(t, err, "expired token must fail verification")
}

func TestTokenManager_Verify_Malformed(t *testing.T) {
	tm := NewTokenManager(testSecret, 15*time.Minute)

	for _, bad := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tm.Verify(bad)
		assert.Error(t, err, "malformed token %q must fail verification", bad)
	}
}

func TestTokenManager_Verify_WrongSecret(t *testing.T) {
	tm := NewTokenManager(testSecret, 15*time.Minute)
	other := NewTokenManager("a-completely-different-secret-key", 15*time.Minute)

	token, err := tm.Sign("user123")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err, "token signed with another secret must fail verification")
}

func TestTokenManager_Verify_Tampered(t *testing.T) {
	tm := NewTokenManager(testSecret, 15*time.Minute)

	token, err := tm.Sign("user123")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = tm.Verify(tampered)
	assert.Error(t, err, "tampered token must fail verification")
}
