package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/wanderly/trailhead/internal/auth"
	"github.com/wanderly/trailhead/internal/models"
	pkgauth "github.com/wanderly/trailhead/pkg/auth"
	pkglogger "github.com/wanderly/trailhead/pkg/logger"
)

// UserRepository defines the persistence operations the auth flows need.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByResetTokenHash(ctx context.Context, tokenHash string) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	UpdateCredentials(ctx context.Context, id, passwordHash string, changedAt time.Time) (*models.User, error)
	SetResetToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, id string) error
	UpdateProfile(ctx context.Context, id, name, email string) (*models.User, error)
	Deactivate(ctx context.Context, id string) error
}

// Mailer is the external email collaborator, treated as fail/succeed only.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetURL string) error
}

// passwordChangeSkew backdates passwordChangedAt slightly so a token signed
// in the same second as the change is not wrongly treated as stale.
const passwordChangeSkew = 1 * time.Second

// AuthService orchestrates signup, login and the password lifecycle flows.
type AuthService struct {
	repo     UserRepository
	tm       *auth.TokenManager
	mailer   Mailer
	logger   *slog.Logger
	audit    *pkglogger.AuditLogger
	resetTTL time.Duration
}

func NewAuthService(repo UserRepository, tm *auth.TokenManager, mailer Mailer, logger *slog.Logger, audit *pkglogger.AuditLogger, resetTTL time.Duration) *AuthService {
	return &AuthService{
		repo:     repo,
		tm:       tm,
		mailer:   mailer,
		logger:   logger,
		audit:    audit,
		resetTTL: resetTTL,
	}
}

// UserResponse is the sanitized user shape for HTTP responses. The password
// hash and reset-token fields are never part of it.
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Photo     string `json:"photo,omitempty"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

// AuthResult carries a freshly issued bearer token and the sanitized user.
type AuthResult struct {
	Token string
	User  *UserResponse
}

// Signup registers a new account. The role is always the server-assigned
// default; a client-supplied role is never honored here.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)

	if email == "" || name == "" {
		return nil, models.ErrBadRequest
	}

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		s.logger.Info("signup failed: email already registered",
			slog.String("email", pkglogger.SanitizedEmail(email)))
		return nil, models.ErrConflict
	}
	if !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to check existing user", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	passwordHash, err := pkgauth.HashPassword(password)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	// PasswordChangedAt stays nil at creation; it only tracks changes after
	// the account exists.
	user := &models.User{
		Name:         name,
		Email:        email,
		Role:         models.RoleUser,
		PasswordHash: passwordHash,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to create user", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	result, err := s.issueToken(created)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user signed up", slog.String("user_id", created.ID))
	s.audit.LogAuthAttempt(pkglogger.AuditEvent{
		EventType: "signup",
		UserID:    created.ID,
		Success:   true,
	})

	return result, nil
}

// Login authenticates by email and password. An unknown email and a wrong
// password fail identically so registration status is not leaked.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.audit.LogAuthAttempt(pkglogger.AuditEvent{
				EventType:     "login",
				FailureReason: "invalid_credentials",
			})
			return nil, models.ErrIncorrectCredentials
		}
		s.logger.Error("failed to get user by email", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if !pkgauth.ComparePassword(user.PasswordHash, password) {
		s.audit.LogAuthAttempt(pkglogger.AuditEvent{
			EventType:     "login",
			UserID:        user.ID,
			FailureReason: "invalid_credentials",
		})
		return nil, models.ErrIncorrectCredentials
	}

	result, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", slog.String("user_id", user.ID))
	s.audit.LogAuthAttempt(pkglogger.AuditEvent{
		EventType: "login",
		UserID:    user.ID,
		Success:   true,
	})

	return result, nil
}

// ForgotPassword generates a reset token for the account, persists only its
// digest and expiry, and mails the plaintext secret. If the email cannot be
// sent the persisted pair is rolled back so no orphaned valid token remains.
func (s *AuthService) ForgotPassword(ctx context.Context, email, baseURL string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to get user by email", slog.Any("error", err))
		return models.ErrInternalServer
	}

	resetToken, err := auth.NewResetToken(s.resetTTL)
	if err != nil {
		s.logger.Error("failed to generate reset token", slog.Any("error", err))
		return models.ErrInternalServer
	}

	if err := s.repo.SetResetToken(ctx, user.ID, resetToken.Hash, resetToken.ExpiresAt); err != nil {
		s.logger.Error("failed to persist reset token",
			slog.String("user_id", user.ID), slog.Any("error", err))
		return models.ErrInternalServer
	}

	resetURL := fmt.Sprintf("%s/api/v1/users/resetPassword/%s", baseURL, resetToken.Plain)

	if err := s.mailer.SendPasswordReset(ctx, user.Email, resetURL); err != nil {
		s.logger.Error("failed to send reset email",
			slog.String("user_id", user.ID), slog.Any("error", err))

		if clearErr := s.repo.ClearResetToken(ctx, user.ID); clearErr != nil {
			s.logger.Error("failed to roll back reset token",
				slog.String("user_id", user.ID), slog.Any("error", clearErr))
		}
		return models.ErrEmailSendFailed
	}

	s.logger.Info("password reset token sent", slog.String("user_id", user.ID))
	s.audit.LogPasswordChange("reset_requested", user.ID, true)

	return nil
}

// ResetPassword redeems a plaintext reset token. The presented token is
// re-digested and matched against the stored hash; expired or unknown tokens
// fail uniformly. On success the reset-token pair is cleared, making the
// token single-use, and a fresh bearer token is issued.
func (s *AuthService) ResetPassword(ctx context.Context, plainToken, password string) (*AuthResult, error) {
	tokenHash := auth.HashResetToken(plainToken)

	user, err := s.repo.GetByResetTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.audit.LogPasswordChange("reset", "", false)
			return nil, models.ErrResetTokenInvalid
		}
		s.logger.Error("failed to look up reset token", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	passwordHash, err := pkgauth.HashPassword(password)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	changedAt := time.Now().Add(-passwordChangeSkew)
	updated, err := s.repo.UpdateCredentials(ctx, user.ID, passwordHash, changedAt)
	if err != nil {
		s.logger.Error("failed to update credentials",
			slog.String("user_id", user.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	result, err := s.issueToken(updated)
	if err != nil {
		return nil, err
	}

	s.logger.Info("password reset", slog.String("user_id", user.ID))
	s.audit.LogPasswordChange("reset", user.ID, true)

	return result, nil
}

// UpdatePassword rotates the password of an authenticated user after
// verifying the current one.
func (s *AuthService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) (*AuthResult, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUnauthorized
		}
		s.logger.Error("failed to get user", slog.String("user_id", userID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if !pkgauth.ComparePassword(user.PasswordHash, currentPassword) {
		s.audit.LogPasswordChange("update", user.ID, false)
		return nil, models.ErrWrongCurrentPassword
	}

	passwordHash, err := pkgauth.HashPassword(newPassword)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	changedAt := time.Now().Add(-passwordChangeSkew)
	updated, err := s.repo.UpdateCredentials(ctx, user.ID, passwordHash, changedAt)
	if err != nil {
		s.logger.Error("failed to update credentials",
			slog.String("user_id", user.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	result, err := s.issueToken(updated)
	if err != nil {
		return nil, err
	}

	s.logger.Info("password updated", slog.String("user_id", user.ID))
	s.audit.LogPasswordChange("update", user.ID, true)

	return result, nil
}

func (s *AuthService) issueToken(user *models.User) (*AuthResult, error) {
	token, err := s.tm.Sign(user.ID)
	if err != nil {
		s.logger.Error("failed to sign token", slog.String("user_id", user.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return &AuthResult{
		Token: token,
		User:  userModelToResponse(user),
	}, nil
}

// SanitizeUser strips credential fields for anything that serializes a
// stored user outside the auth flows.
func SanitizeUser(user *models.User) *UserResponse {
	return userModelToResponse(user)
}

// userModelToResponse strips credential fields before serialization.
func userModelToResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Photo:     user.Photo,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}
