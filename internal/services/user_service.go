package services

import (
	"context"
	"fmt"

	"tradebook-backend/internal/models"
	"tradebook-backend/internal/repositories"

	"github.com/google/uuid"
)

// UserService handles the current-user profile endpoints
type UserService struct {
	repos *repositories.Repositories
}

// NewUserService creates a new user service
func NewUserService(repos *repositories.Repositories) *UserService {
	return &UserService{repos: repos}
}

// UpdateUserRequest represents a profile update request
type UpdateUserRequest struct {
	Username *string     `json:"username,omitempty" binding:"omitempty,min=3,max=50"`
	Avatar   *string     `json:"avatar,omitempty"`
	Settings models.JSON `json:"settings,omitempty"`
}

// GetCurrentUser returns the authenticated user's profile
func (s *UserService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.repos.User.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, repositories.ErrUserNotFound
	}
	return convertToUserInfo(user), nil
}

// UpdateCurrentUser patches the authenticated user's profile
func (s *UserService) UpdateCurrentUser(ctx context.Context, userID uuid.UUID, req *UpdateUserRequest) (*UserInfo, error) {
	user, err := s.repos.User.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, repositories.ErrUserNotFound
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Avatar != nil {
		user.Avatar = req.Avatar
	}
	if req.Settings != nil {
		user.Settings = req.Settings
	}

	if err := s.repos.User.Update(ctx, user); err != nil {
		if isUniqueConstraintViolation(err) {
			return nil, repositories.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return convertToUserInfo(user), nil
}
