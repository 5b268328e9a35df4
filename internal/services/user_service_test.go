package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wanderly/trailhead/internal/models"
)

func TestUserService_UpdateMe_BlankFieldsKeepCurrentValues(t *testing.T) {
	user := NewTestUser("user123", "a@x.com", "Alice")

	var gotName, gotEmail string
	repo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return user, nil
		},
		UpdateProfileFunc: func(ctx context.Context, id, name, email string) (*models.User, error) {
			gotName, gotEmail = name, email
			updated := *user
			updated.Name = name
			updated.Email = email
			return &updated, nil
		},
	}

	svc := NewUserService(repo, slog.Default())

	resp, err := svc.UpdateMe(context.Background(), "user123", "  ", "")
	require.NoError(t, err)
	assert.Equal(t, "Alice", gotName)
	assert.Equal(t, "a@x.com", gotEmail)
	assert.Equal(t, "Alice", resp.Name)
}

func TestUserService_UpdateMe_NormalizesEmail(t *testing.T) {
	user := NewTestUser("user123", "a@x.com", "Alice")

	var gotEmail string
	repo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return user, nil
		},
		UpdateProfileFunc: func(ctx context.Context, id, name, email string) (*models.User, error) {
			gotEmail = email
			updated := *user
			updated.Email = email
			return &updated, nil
		},
	}

	svc := NewUserService(repo, slog.Default())

	_, err := svc.UpdateMe(context.Background(), "user123", "Alice", " New@X.Com ")
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", gotEmail)
}

func TestUserService_UpdateMe_DuplicateEmail(t *testing.T) {
	user := NewTestUser("user123", "a@x.com", "Alice")

	repo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return user, nil
		},
		UpdateProfileFunc: func(ctx context.Context, id, name, email string) (*models.User, error) {
			return nil, models.ErrConflict
		},
	}

	svc := NewUserService(repo, slog.Default())

	resp, err := svc.UpdateMe(context.Background(), "user123", "Alice", "taken@x.com")
	assert.ErrorIs(t, err, models.ErrConflict)
	assert.Nil(t, resp)
}

func TestUserService_DeactivateMe(t *testing.T) {
	deactivated := ""
	repo := &MockUserRepository{
		DeactivateFunc: func(ctx context.Context, id string) error {
			deactivated = id
			return nil
		},
	}

	svc := NewUserService(repo, slog.Default())

	err := svc.DeactivateMe(context.Background(), "user123")
	require.NoError(t, err)
	assert.Equal(t, "user123", deactivated)
}

func TestUserService_DeactivateMe_RepoFailure(t *testing.T) {
	repo := &MockUserRepository{
		DeactivateFunc: func(ctx context.Context, id string) error {
			return errors.New("connection reset")
		},
	}

	svc := NewUserService(repo, slog.Default())

	err := svc.DeactivateMe(context.Background(), "user123")
	assert.ErrorIs(t, err, models.ErrInternalServer)
}

func TestUserService_List_ClampsLimit(t *testing.T) {
	var gotLimit, gotOffset int
	repo := &MockUserRepository{
		ListFunc: func(ctx context.Context, limit, offset int) ([]*models.User, error) {
			gotLimit, gotOffset = limit, offset
			return []*models.User{NewTestUser("user123", "a@x.com", "Alice")}, nil
		},
	}

	svc := NewUserService(repo, slog.Default())

	resp, err := svc.List(context.Background(), 5000, -3)
	require.NoError(t, err)
	assert.Equal(t, 100, gotLimit)
	assert.Equal(t, 0, gotOffset)
	require.Len(t, resp, 1)
	assert.NotEmpty(t, resp[0].CreatedAt)
}
