package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wanderly/trailhead/internal/models"
	pkgauth "github.com/wanderly/trailhead/pkg/auth"
	pkglogger "github.com/wanderly/trailhead/pkg/logger"
)

// EnsureAdminUser creates the first admin account when email and password
// are configured. The email is normalized the same way signup and login
// normalize it; a verbatim mixed-case address would create an account the
// lowercased login lookup could never find.
func EnsureAdminUser(ctx context.Context, repo UserRepository, logger *slog.Logger, email, password string) error {
	if email == "" || password == "" {
		logger.Info("no ADMIN_EMAIL or ADMIN_PASSWORD set, skipping admin user creation")
		return nil
	}

	email = strings.ToLower(strings.TrimSpace(email))

	_, err := repo.GetByEmail(ctx, email)
	if err == nil {
		logger.Info("admin user already exists",
			slog.String("email", pkglogger.SanitizedEmail(email)))
		return nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("failed to check if admin exists: %w", err)
	}

	hashedPassword, err := pkgauth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         "Admin",
		Role:         models.RoleAdmin,
	}

	if _, err := repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("admin user created successfully")
	return nil
}
