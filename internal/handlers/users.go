package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/wanderly/trailhead/internal/auth"
	"github.com/wanderly/trailhead/internal/models"
	"github.com/wanderly/trailhead/internal/services"
	pkghttp "github.com/wanderly/trailhead/pkg/http"
)

// UserServiceInterface defines the interface for account self-service
type UserServiceInterface interface {
	UpdateMe(ctx context.Context, userID, name, email string) (*services.UserResponse, error)
	DeactivateMe(ctx context.Context, userID string) error
	List(ctx context.Context, limit, offset int) ([]*services.UserResponse, error)
}

// UserHandler handles account self-service and the admin listing
type UserHandler struct {
	service UserServiceInterface
	env     string
}

func NewUserHandler(service UserServiceInterface, env string) *UserHandler {
	return &UserHandler{service: service, env: env}
}

// UpdateMeRequest represents the request body for profile updates. The
// password fields exist only so their presence can be rejected.
type UpdateMeRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email" validate:"omitempty,email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// Me returns the authenticated user's sanitized record.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := auth.CurrentUser(r)
	if user == nil {
		pkghttp.WriteUnauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	pkghttp.WriteData(w, http.StatusOK, map[string]any{
		"user": services.SanitizeUser(user),
	})
}

// UpdateMe changes the caller's name/email. Credential changes must go
// through the password routes.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user := auth.CurrentUser(r)
	if user == nil {
		pkghttp.WriteUnauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	var req UpdateMeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if req.Password != "" || req.PasswordConfirm != "" {
		pkghttp.WriteBadRequest(w,
			"This route is not for password updates. Please use /updateMyPassword.")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	updated, err := h.service.UpdateMe(r.Context(), user.ID, req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrConflict):
			pkghttp.WriteBadRequest(w, "Duplicate field value: email. Please use another value!")
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteUnauthorized(w, "The user belonging to this token no longer exists.")
		default:
			pkghttp.WriteUnexpected(w, h.env, err)
		}
		return
	}

	pkghttp.WriteData(w, http.StatusOK, map[string]any{"user": updated})
}

// DeleteMe soft-deletes the caller's account.
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	user := auth.CurrentUser(r)
	if user == nil {
		pkghttp.WriteUnauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	if err := h.service.DeactivateMe(r.Context(), user.ID); err != nil {
		pkghttp.WriteUnexpected(w, h.env, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List returns active users. Admin only; role enforcement happens in the
// route middleware.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 100)
	offset := queryInt(r, "offset", 0)

	users, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		pkghttp.WriteUnexpected(w, h.env, err)
		return
	}

	pkghttp.WriteData(w, http.StatusOK, map[string]any{
		"users":   users,
		"results": len(users),
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
