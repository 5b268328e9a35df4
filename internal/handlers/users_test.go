package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wanderly/trailhead/internal/models"
	"github.com/wanderly/trailhead/internal/services"
)

func activeUser() *models.User {
	now := time.Now()
	return &models.User{
		ID:           "user123",
		Name:         "Alice",
		Email:        "a@x.com",
		Role:         models.RoleUser,
		PasswordHash: "$2a$12$notarealhashnotarealhashnotarealhashnotarealhash",
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserHandler_Me(t *testing.T) {
	h := NewUserHandler(&MockUserService{}, "development")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req = withContextUser(req, activeUser())
	rec := httptest.NewRecorder()

	h.Me(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	require.Contains(t, env.Data, "user")
	assert.NotContains(t, rec.Body.String(), "notarealhash",
		"the stored hash never appears in a response")
}

func TestUserHandler_Me_Unauthenticated(t *testing.T) {
	h := NewUserHandler(&MockUserService{}, "development")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	rec := httptest.NewRecorder()

	h.Me(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserHandler_UpdateMe_RejectsPasswordFields(t *testing.T) {
	updateCalled := false
	svc := &MockUserService{
		UpdateMeFunc: func(ctx context.Context, userID, name, email string) (*services.UserResponse, error) {
			updateCalled = true
			return nil, nil
		},
	}
	h := NewUserHandler(svc, "development")

	for _, body := range []string{
		`{"name":"Alice","password":"sneaky123"}`,
		`{"name":"Alice","passwordConfirm":"sneaky123"}`,
	} {
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/updateMe", strings.NewReader(body))
		req = withContextUser(req, activeUser())
		rec := httptest.NewRecorder()

		h.UpdateMe(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Contains(t, env.Message, "not for password updates")
	}
	assert.False(t, updateCalled)
}

func TestUserHandler_UpdateMe_Success(t *testing.T) {
	var gotName, gotEmail string
	svc := &MockUserService{
		UpdateMeFunc: func(ctx context.Context, userID, name, email string) (*services.UserResponse, error) {
			gotName, gotEmail = name, email
			return &services.UserResponse{ID: userID, Name: name, Email: email, Role: models.RoleUser}, nil
		},
	}
	h := NewUserHandler(svc, "development")

	body := `{"name":"Alice B","email":"b@x.com"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/updateMe", strings.NewReader(body))
	req = withContextUser(req, activeUser())
	rec := httptest.NewRecorder()

	h.UpdateMe(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Alice B", gotName)
	assert.Equal(t, "b@x.com", gotEmail)
}

func TestUserHandler_DeleteMe(t *testing.T) {
	deactivated := ""
	svc := &MockUserService{
		DeactivateMeFunc: func(ctx context.Context, userID string) error {
			deactivated = userID
			return nil
		},
	}
	h := NewUserHandler(svc, "development")

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/users/deleteMe", nil)
	req = withContextUser(req, activeUser())
	rec := httptest.NewRecorder()

	h.DeleteMe(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "user123", deactivated)
	assert.Empty(t, rec.Body.String())
}

func TestUserHandler_List(t *testing.T) {
	svc := &MockUserService{
		ListFunc: func(ctx context.Context, limit, offset int) ([]*services.UserResponse, error) {
			return []*services.UserResponse{
				{ID: "user123", Name: "Alice", Email: "a@x.com", Role: models.RoleUser},
				{ID: "user456", Name: "Bob", Email: "b@x.com", Role: models.RoleGuide},
			}, nil
		},
	}
	h := NewUserHandler(svc, "development")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users?limit=10", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Contains(t, env.Data, "users")
	assert.EqualValues(t, 2, env.Data["results"])
}
