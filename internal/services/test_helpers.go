package services

import (
	"context"
	"time"

	"github.com/wanderly/trailhead/internal/models"
)

// MockUserRepository implements UserRepository for testing
type MockUserRepository struct {
	GetByIDFunc             func(ctx context.Context, id string) (*models.User, error)
	GetByEmailFunc          func(ctx context.Context, email string) (*models.User, error)
	GetByResetTokenHashFunc func(ctx context.Context, tokenHash string) (*models.User, error)
	ListFunc                func(ctx context.Context, limit, offset int) ([]*models.User, error)
	CreateFunc              func(ctx context.Context, user *models.User) (*models.User, error)
	UpdateCredentialsFunc   func(ctx context.Context, id, passwordHash string, changedAt time.Time) (*models.User, error)
	SetResetTokenFunc       func(ctx context.Context, id, tokenHash string, expiresAt time.Time) error
	ClearResetTokenFunc     func(ctx context.Context, id string) error
	UpdateProfileFunc       func(ctx context.Context, id, name, email string) (*models.User, error)
	DeactivateFunc          func(ctx context.Context, id string) error
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetByResetTokenHash(ctx context.Context, tokenHash string) (*models.User, error) {
	if m.GetByResetTokenHashFunc != nil {
		return m.GetByResetTokenHashFunc(ctx, tokenHash)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return []*models.User{}, nil
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) UpdateCredentials(ctx context.Context, id, passwordHash string, changedAt time.Time) (*models.User, error) {
	if m.UpdateCredentialsFunc != nil {
		return m.UpdateCredentialsFunc(ctx, id, passwordHash, changedAt)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) SetResetToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error {
	if m.SetResetTokenFunc != nil {
		return m.SetResetTokenFunc(ctx, id, tokenHash, expiresAt)
	}
	return nil
}

func (m *MockUserRepository) ClearResetToken(ctx context.Context, id string) error {
	if m.ClearResetTokenFunc != nil {
		return m.ClearResetTokenFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id, name, email string) (*models.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, id, name, email)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) Deactivate(ctx context.Context, id string) error {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, id)
	}
	return nil
}

// MockMailer implements Mailer for testing
type MockMailer struct {
	SendPasswordResetFunc func(ctx context.Context, to, resetURL string) error
	SentTo                []string
	SentURLs              []string
}

func (m *MockMailer) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	m.SentTo = append(m.SentTo, to)
	m.SentURLs = append(m.SentURLs, resetURL)
	if m.SendPasswordResetFunc != nil {
		return m.SendPasswordResetFunc(ctx, to, resetURL)
	}
	return nil
}

// NewTestUser creates a user with sensible defaults for tests
func NewTestUser(id, email, name string) *models.User {
	now := time.Now()
	return &models.User{
		ID:        id,
		Name:      name,
		Email:     email,
		Role:      models.RoleUser,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
