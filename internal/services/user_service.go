package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/wanderly/trailhead/internal/models"
)

// UserService handles self-service account operations and admin listing.
type UserService struct {
	repo   UserRepository
	logger *slog.Logger
}

func NewUserService(repo UserRepository, logger *slog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// UpdateMe changes name/email of the authenticated user. Password and role
// are never mutable through this path.
func (s *UserService) UpdateMe(ctx context.Context, userID, name, email string) (*UserResponse, error) {
	current, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name == "" {
		name = current.Name
	}
	if email = strings.ToLower(strings.TrimSpace(email)); email == "" {
		email = current.Email
	}

	updated, err := s.repo.UpdateProfile(ctx, userID, name, email)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to update profile", slog.String("user_id", userID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return userModelToResponse(updated), nil
}

// DeactivateMe soft-deletes the authenticated user's account. The record
// survives but disappears from every default lookup, including login.
func (s *UserService) DeactivateMe(ctx context.Context, userID string) error {
	if err := s.repo.Deactivate(ctx, userID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to deactivate user", slog.String("user_id", userID), slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.logger.Info("user deactivated", slog.String("user_id", userID))
	return nil
}

// List returns active users for the admin surface.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]*UserResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("failed to list users", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	responses := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, userModelToResponse(user))
	}
	return responses, nil
}
