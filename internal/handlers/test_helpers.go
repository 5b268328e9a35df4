package handlers

import (
	"context"

	"github.com/wanderly/trailhead/internal/models"
	"github.com/wanderly/trailhead/internal/services"
)

// MockAuthService implements AuthServiceInterface for testing
type MockAuthService struct {
	SignupFunc         func(ctx context.Context, name, email, password string) (*services.AuthResult, error)
	LoginFunc          func(ctx context.Context, email, password string) (*services.AuthResult, error)
	ForgotPasswordFunc func(ctx context.Context, email, baseURL string) error
	ResetPasswordFunc  func(ctx context.Context, plainToken, password string) (*services.AuthResult, error)
	UpdatePasswordFunc func(ctx context.Context, userID, currentPassword, newPassword string) (*services.AuthResult, error)
}

func (m *MockAuthService) Signup(ctx context.Context, name, email, password string) (*services.AuthResult, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, name, email, password)
	}
	return nil, models.ErrInternalServer
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*services.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, models.ErrInternalServer
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email, baseURL string) error {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email, baseURL)
	}
	return models.ErrInternalServer
}

func (m *MockAuthService) ResetPassword(ctx context.Context, plainToken, password string) (*services.AuthResult, error) {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, plainToken, password)
	}
	return nil, models.ErrInternalServer
}

func (m *MockAuthService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) (*services.AuthResult, error) {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, userID, currentPassword, newPassword)
	}
	return nil, models.ErrInternalServer
}

// MockUserService implements UserServiceInterface for testing
type MockUserService struct {
	UpdateMeFunc     func(ctx context.Context, userID, name, email string) (*services.UserResponse, error)
	DeactivateMeFunc func(ctx context.Context, userID string) error
	ListFunc         func(ctx context.Context, limit, offset int) ([]*services.UserResponse, error)
}

func (m *MockUserService) UpdateMe(ctx context.Context, userID, name, email string) (*services.UserResponse, error) {
	if m.UpdateMeFunc != nil {
		return m.UpdateMeFunc(ctx, userID, name, email)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserService) DeactivateMe(ctx context.Context, userID string) error {
	if m.DeactivateMeFunc != nil {
		return m.DeactivateMeFunc(ctx, userID)
	}
	return nil
}

func (m *MockUserService) List(ctx context.Context, limit, offset int) ([]*services.UserResponse, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return []*services.UserResponse{}, nil
}

func testAuthResult(userID, email string) *services.AuthResult {
	return &services.AuthResult{
		Token: "test.jwt.token",
		User: &services.UserResponse{
			ID:    userID,
			Name:  "Test User",
			Email: email,
			Role:  models.RoleUser,
		},
	}
}
