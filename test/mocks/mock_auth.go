package mocks

import (
	"context"

	"tradebook-backend/pkg/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"golang.org/x/oauth2"
)

// MockJWTManager is a mock implementation of JWTManagerInterface
type MockJWTManager struct {
	mock.Mock
}

func (m *MockJWTManager) GenerateToken(userID uuid.UUID, username, email string) (string, error) {
	args := m.Called(userID, username, email)
	return args.String(0), args.Error(1)
}

func (m *MockJWTManager) GenerateTokenPair(userID uuid.UUID, username, email string) (*auth.TokenPair, error) {
	args := m.Called(userID, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.TokenPair), args.Error(1)
}

func (m *MockJWTManager) ValidateToken(tokenString string) (*auth.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

func (m *MockJWTManager) ValidateRefreshToken(tokenString string) (uuid.UUID, error) {
	args := m.Called(tokenString)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockJWTManager) RefreshToken(refreshToken, username, email string) (string, error) {
	args := m.Called(refreshToken, username, email)
	return args.String(0), args.Error(1)
}

// MockOAuthManager is a mock implementation of OAuthManagerInterface
type MockOAuthManager struct {
	mock.Mock
}

func (m *MockOAuthManager) GetAuthURL(state string) (string, error) {
	args := m.Called(state)
	return args.String(0), args.Error(1)
}

func (m *MockOAuthManager) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}

func (m *MockOAuthManager) GetUserInfo(ctx context.Context, token *oauth2.Token) (*auth.OAuthUser, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.OAuthUser), args.Error(1)
}
