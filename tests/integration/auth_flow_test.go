package integration

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAuthLifecycle walks the full credential lifecycle against a real
// postgres instance: signup, login, protected access, forgot/reset,
// re-login, soft delete.
func TestAuthLifecycle(t *testing.T) {
	if !IntegrationEnabled() {
		t.Skip("set INTEGRATION to run container-backed tests")
	}

	ctx := context.Background()

	testDB, err := SetupTestDatabase(ctx)
	require.NoError(t, err)
	defer testDB.Teardown(ctx)

	ts := NewTestServer(testDB)
	defer ts.Close()

	// Signup
	status, env, err := ts.PostJSON("/api/v1/users/signup", map[string]string{
		"name":            "Integration User",
		"email":           "flow@example.com",
		"password":        "password123",
		"passwordConfirm": "password123",
	}, "")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, env.Token)

	// Stored row holds a hash, never the plaintext
	var storedHash string
	require.NoError(t, testDB.Pool.QueryRow(ctx,
		`SELECT password_hash FROM users WHERE email = $1`, "flow@example.com").Scan(&storedHash))
	assert.NotEqual(t, "password123", storedHash)
	assert.True(t, strings.HasPrefix(storedHash, "$2"))

	// Duplicate signup rejected
	status, _, err = ts.PostJSON("/api/v1/users/signup", map[string]string{
		"name":            "Integration User",
		"email":           "flow@example.com",
		"password":        "password123",
		"passwordConfirm": "password123",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, status)

	// Login
	status, env, err = ts.PostJSON("/api/v1/users/login", map[string]string{
		"email":    "flow@example.com",
		"password": "password123",
	}, "")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	token := env.Token
	require.NotEmpty(t, token)

	// Wrong password and unknown email fail with the same message
	status, envWrong, err := ts.PostJSON("/api/v1/users/login", map[string]string{
		"email":    "flow@example.com",
		"password": "not-the-password",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, envUnknown, err := ts.PostJSON("/api/v1/users/login", map[string]string{
		"email":    "ghost@example.com",
		"password": "password123",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, envWrong.Message, envUnknown.Message)

	// Protected route with the bearer token
	status, env, err = ts.Get("/api/v1/users/me", token)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	require.Contains(t, env.Data, "user")

	// Protected route without a token
	status, _, err = ts.Get("/api/v1/users/me", "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, status)

	// Forgot password mails a reset URL
	status, _, err = ts.PostJSON("/api/v1/users/forgotPassword", map[string]string{
		"email": "flow@example.com",
	}, "")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)

	resetURL := ts.Mailer.LastResetURL()
	require.NotEmpty(t, resetURL)
	plainToken := resetURL[strings.LastIndex(resetURL, "/")+1:]

	// The stored reset column holds the digest, not the mailed secret
	var storedResetToken string
	require.NoError(t, testDB.Pool.QueryRow(ctx,
		`SELECT password_reset_token FROM users WHERE email = $1`, "flow@example.com").Scan(&storedResetToken))
	assert.NotEqual(t, plainToken, storedResetToken)

	// Redeem the token
	status, env, err = ts.PatchJSON("/api/v1/users/resetPassword/"+plainToken, map[string]string{
		"password":        "newpassword456",
		"passwordConfirm": "newpassword456",
	}, "")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	freshToken := env.Token
	require.NotEmpty(t, freshToken)

	// Second redemption fails: single use
	status, _, err = ts.PatchJSON("/api/v1/users/resetPassword/"+plainToken, map[string]string{
		"password":        "anotherpass789",
		"passwordConfirm": "anotherpass789",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, status)

	// Old password no longer works, new one does
	status, _, err = ts.PostJSON("/api/v1/users/login", map[string]string{
		"email":    "flow@example.com",
		"password": "password123",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env, err = ts.PostJSON("/api/v1/users/login", map[string]string{
		"email":    "flow@example.com",
		"password": "newpassword456",
	}, "")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	token = env.Token

	// Soft delete hides the account from login
	status, _, err = ts.Delete("/api/v1/users/deleteMe", token)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, status)

	status, _, err = ts.PostJSON("/api/v1/users/login", map[string]string{
		"email":    "flow@example.com",
		"password": "newpassword456",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, status)

	// The row still exists, just inactive
	var active bool
	require.NoError(t, testDB.Pool.QueryRow(ctx,
		`SELECT active FROM users WHERE email = $1`, "flow@example.com").Scan(&active))
	assert.False(t, active)
}

// TestStaleTokenRejectedAfterPasswordChange pins the iat-vs-changedAt check
// end to end.
func TestStaleTokenRejectedAfterPasswordChange(t *testing.T) {
	if !IntegrationEnabled() {
		t.Skip("set INTEGRATION to run container-backed tests")
	}

	ctx := context.Background()

	testDB, err := SetupTestDatabase(ctx)
	require.NoError(t, err)
	defer testDB.Teardown(ctx)

	ts := NewTestServer(testDB)
	defer ts.Close()

	_, env, err := ts.PostJSON("/api/v1/users/signup", map[string]string{
		"name":            "Stale Token User",
		"email":           "stale@example.com",
		"password":        "password123",
		"passwordConfirm": "password123",
	}, "")
	require.NoError(t, err)
	oldToken := env.Token
	require.NotEmpty(t, oldToken)

	// Change the password through the authenticated route
	status, env, err := ts.PatchJSON("/api/v1/users/updateMyPassword", map[string]string{
		"passwordCurrent": "password123",
		"password":        "rotated-pass-1",
		"passwordConfirm": "rotated-pass-1",
	}, oldToken)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	newToken := env.Token
	require.NotEmpty(t, newToken)

	// The pre-change token is now stale
	status, env, err = ts.Get("/api/v1/users/me", oldToken)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, env.Message, "recently changed password")

	// The freshly issued token works
	status, _, err = ts.Get("/api/v1/users/me", newToken)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
}

// TestTourRoleGuards pins role-based access on the tours resource.
func TestTourRoleGuards(t *testing.T) {
	if !IntegrationEnabled() {
		t.Skip("set INTEGRATION to run container-backed tests")
	}

	ctx := context.Background()

	testDB, err := SetupTestDatabase(ctx)
	require.NoError(t, err)
	defer testDB.Teardown(ctx)

	ts := NewTestServer(testDB)
	defer ts.Close()

	_, env, err := ts.PostJSON("/api/v1/users/signup", map[string]string{
		"name":            "Plain User",
		"email":           "plain@example.com",
		"password":        "password123",
		"passwordConfirm": "password123",
	}, "")
	require.NoError(t, err)
	userToken := env.Token

	tour := map[string]any{
		"name":         "Forest Hiker",
		"duration":     5,
		"maxGroupSize": 25,
		"difficulty":   "easy",
		"price":        397.0,
		"summary":      "Breathtaking hike through the forest",
	}

	// Reads are public
	status, _, err := ts.Get("/api/v1/tours", "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)

	// Unauthenticated create rejected
	status, _, err = ts.PostJSON("/api/v1/tours", tour, "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, status)

	// Plain user create rejected: role not in the allowed set
	status, env, err = ts.PostJSON("/api/v1/tours", tour, userToken)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, env.Message, "permission")

	// Promote to lead-guide directly in the database and re-login
	_, err = testDB.Pool.Exec(ctx,
		`UPDATE users SET role = 'lead-guide' WHERE email = $1`, "plain@example.com")
	require.NoError(t, err)

	status, env, err = ts.PostJSON("/api/v1/users/login", map[string]string{
		"email":    "plain@example.com",
		"password": "password123",
	}, "")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	guideToken := env.Token

	status, env, err = ts.PostJSON("/api/v1/tours", tour, guideToken)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)
	require.Contains(t, env.Data, "tour")
}
