package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wanderly/trailhead/internal/auth"
	"github.com/wanderly/trailhead/internal/models"
	"github.com/wanderly/trailhead/internal/services"
	pkghttp "github.com/wanderly/trailhead/pkg/http"
)

// AuthServiceInterface defines the interface for auth business logic
type AuthServiceInterface interface {
	Signup(ctx context.Context, name, email, password string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	ForgotPassword(ctx context.Context, email, baseURL string) error
	ResetPassword(ctx context.Context, plainToken, password string) (*services.AuthResult, error)
	UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) (*services.AuthResult, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	service AuthServiceInterface
	cookies auth.CookieConfig
	env     string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service AuthServiceInterface, cookies auth.CookieConfig, env string) *AuthHandler {
	return &AuthHandler{
		service: service,
		cookies: cookies,
		env:     env,
	}
}

// Request DTOs

// SignupRequest represents the request body for signup
type SignupRequest struct {
	Name            string `json:"name" validate:"required,min=1"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8,max=128"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest represents the request body for forgot-password
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest represents the request body for reset-password
type ResetPasswordRequest struct {
	Password        string `json:"password" validate:"required,min=8,max=128"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// UpdatePasswordRequest represents the request body for update-password
type UpdatePasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent" validate:"required"`
	Password        string `json:"password" validate:"required,min=8,max=128"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// Signup handles user registration. A client-supplied role is ignored; the
// created account always gets the default role.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	result, err := h.service.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	h.writeAuthResult(w, http.StatusCreated, result)
}

// Login authenticates by email and password
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		pkghttp.WriteBadRequest(w, "Please provide email and password!")
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	h.writeAuthResult(w, http.StatusOK, result)
}

// Logout replaces the jwt cookie with an immediately expiring one.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearJWTCookie(w, h.cookies)
	pkghttp.WriteData(w, http.StatusOK, nil)
}

// ForgotPassword mails a reset link to the account's address.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.service.ForgotPassword(r.Context(), req.Email, requestBaseURL(r)); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "There is no user with email address.")
			return
		}
		if errors.Is(err, models.ErrEmailSendFailed) {
			pkghttp.WriteFail(w, http.StatusInternalServerError,
				"There was an error sending the email. Try again later!")
			return
		}
		h.writeAuthError(w, err)
		return
	}

	pkghttp.WriteMessage(w, http.StatusOK, "Token sent to email!")
}

// ResetPassword redeems the plaintext token from the URL path
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	plainToken := chi.URLParam(r, "token")
	if plainToken == "" {
		pkghttp.WriteBadRequest(w, "Token is invalid or has expired")
		return
	}

	var req ResetPasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	result, err := h.service.ResetPassword(r.Context(), plainToken, req.Password)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	h.writeAuthResult(w, http.StatusOK, result)
}

// UpdatePassword rotates the authenticated user's password
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	user := auth.CurrentUser(r)
	if user == nil {
		pkghttp.WriteUnauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	var req UpdatePasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	result, err := h.service.UpdatePassword(r.Context(), user.ID, req.PasswordCurrent, req.Password)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	h.writeAuthResult(w, http.StatusOK, result)
}

// writeAuthResult mirrors the bearer token into the jwt cookie and writes the
// token envelope with the sanitized user.
func (h *AuthHandler) writeAuthResult(w http.ResponseWriter, statusCode int, result *services.AuthResult) {
	auth.SetJWTCookie(w, result.Token, h.cookies)
	pkghttp.WriteToken(w, statusCode, result.Token, map[string]any{"user": result.User})
}

// writeAuthError maps service sentinels onto the response envelope.
func (h *AuthHandler) writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrIncorrectCredentials):
		pkghttp.WriteUnauthorized(w, "Incorrect email or password")
	case errors.Is(err, models.ErrWrongCurrentPassword):
		pkghttp.WriteUnauthorized(w, "Your current password is wrong.")
	case errors.Is(err, models.ErrResetTokenInvalid):
		pkghttp.WriteBadRequest(w, "Token is invalid or has expired")
	case errors.Is(err, models.ErrConflict):
		pkghttp.WriteBadRequest(w, "Duplicate field value: email. Please use another value!")
	case errors.Is(err, models.ErrBadRequest):
		pkghttp.WriteBadRequest(w, "Invalid input data.")
	case errors.Is(err, models.ErrUnauthorized):
		pkghttp.WriteUnauthorized(w, "You are not logged in! Please log in to get access.")
	default:
		pkghttp.WriteUnexpected(w, h.env, err)
	}
}

// requestBaseURL reconstructs the external base URL for links placed in
// outbound email.
func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, r.Host)
}
