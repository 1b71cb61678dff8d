package services

import (
	"context"
	"strings"
	"testing"

	"tradebook-backend/internal/models"
	"tradebook-backend/internal/repositories"
	"tradebook-backend/pkg/auth"
	"tradebook-backend/test/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/oauth2"
)

type AuthServiceTestSuite struct {
	suite.Suite
	mockRepos   *repositories.Repositories
	mockJWT     *mocks.MockJWTManager
	mockOAuth   *mocks.MockOAuthManager
	authService *AuthService
	ctx         context.Context
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockRepos = &repositories.Repositories{
		User:       &mocks.MockUserRepository{},
		Trade:      &mocks.MockTradeRepository{},
		Option:     &mocks.MockOptionRepository{},
		Collection: &mocks.MockCollectionRepository{},
		Preference: &mocks.MockPreferenceRepository{},
	}
	suite.mockJWT = &mocks.MockJWTManager{}
	suite.mockOAuth = &mocks.MockOAuthManager{}
	suite.authService = NewAuthService(suite.mockRepos, suite.mockJWT, suite.mockOAuth)
}

func (suite *AuthServiceTestSuite) userRepo() *mocks.MockUserRepository {
	return suite.mockRepos.User.(*mocks.MockUserRepository)
}

func (suite *AuthServiceTestSuite) TestInitiateLogin() {
	suite.mockOAuth.On("GetAuthURL", mock.AnythingOfType("string")).
		Return("https://accounts.google.com/o/oauth2/auth?state=abc", nil)

	response, err := suite.authService.InitiateLogin(suite.ctx,
		&LoginRequest{RedirectURL: "https://app.example.com/callback"})

	suite.NoError(err)
	suite.Require().NotNil(response)
	suite.NotEmpty(response.State)
	suite.Contains(response.AuthURL, "accounts.google.com")
}

func (suite *AuthServiceTestSuite) TestHandleCallback_StateMismatchRejected() {
	response, err := suite.authService.HandleCallback(suite.ctx,
		&CallbackRequest{Code: "code", State: "tampered"}, "expected")

	suite.Error(err)
	suite.Nil(response)
	suite.mockOAuth.AssertNotCalled(suite.T(), "ExchangeCodeForToken", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestHandleCallback_NewUserCreated() {
	token := &oauth2.Token{AccessToken: "oauth-token"}
	suite.mockOAuth.On("ExchangeCodeForToken", suite.ctx, "code").Return(token, nil)
	suite.mockOAuth.On("GetUserInfo", suite.ctx, token).Return(&auth.OAuthUser{
		ID:     "google-123",
		Email:  "trader@example.com",
		Name:   "Pat Trader",
		Avatar: "https://example.com/pic.png",
	}, nil)
	suite.userRepo().On("GetByEmail", suite.ctx, "trader@example.com").Return(nil, nil)
	suite.userRepo().On("Create", suite.ctx, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*models.User)
			user.ID = uuid.New()
			suite.Equal("PatTrader", user.Username)
			suite.Require().NotNil(user.Avatar)
		}).
		Return(nil)
	suite.mockJWT.On("GenerateTokenPair", mock.AnythingOfType("uuid.UUID"), "PatTrader", "trader@example.com").
		Return(&auth.TokenPair{
			AccessToken:  "access",
			RefreshToken: "refresh",
			TokenType:    "Bearer",
			ExpiresIn:    3600,
		}, nil)

	response, err := suite.authService.HandleCallback(suite.ctx,
		&CallbackRequest{Code: "code", State: "state"}, "state")

	suite.NoError(err)
	suite.Require().NotNil(response)
	suite.Equal("access", response.AccessToken)
	suite.Equal("trader@example.com", response.User.Email)
	suite.userRepo().AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestHandleCallback_ExistingUserAvatarRefreshed() {
	userID := uuid.New()
	oldAvatar := "https://example.com/old.png"
	existing := &models.User{
		ID:       userID,
		Username: "trader",
		Email:    "trader@example.com",
		Avatar:   &oldAvatar,
		Settings: models.JSON{},
	}
	token := &oauth2.Token{AccessToken: "oauth-token"}
	suite.mockOAuth.On("ExchangeCodeForToken", suite.ctx, "code").Return(token, nil)
	suite.mockOAuth.On("GetUserInfo", suite.ctx, token).Return(&auth.OAuthUser{
		Email:  "trader@example.com",
		Name:   "Pat Trader",
		Avatar: "https://example.com/new.png",
	}, nil)
	suite.userRepo().On("GetByEmail", suite.ctx, "trader@example.com").Return(existing, nil)
	suite.userRepo().On("Update", suite.ctx, existing).Return(nil)
	suite.mockJWT.On("GenerateTokenPair", userID, "trader", "trader@example.com").
		Return(&auth.TokenPair{AccessToken: "access", TokenType: "Bearer"}, nil)

	response, err := suite.authService.HandleCallback(suite.ctx,
		&CallbackRequest{Code: "code", State: "state"}, "state")

	suite.NoError(err)
	suite.Require().NotNil(response)
	suite.Equal("https://example.com/new.png", *existing.Avatar)
	suite.userRepo().AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestRefreshToken_Success() {
	userID := uuid.New()
	user := &models.User{ID: userID, Username: "trader", Email: "trader@example.com", Settings: models.JSON{}}
	suite.mockJWT.On("ValidateRefreshToken", "refresh-token").Return(userID, nil)
	suite.userRepo().On("GetByID", suite.ctx, userID).Return(user, nil)
	suite.mockJWT.On("RefreshToken", "refresh-token", "trader", "trader@example.com").
		Return("new-access", nil)

	response, err := suite.authService.RefreshToken(suite.ctx, &RefreshRequest{RefreshToken: "refresh-token"})

	suite.NoError(err)
	suite.Require().NotNil(response)
	suite.Equal("new-access", response.AccessToken)
	suite.Equal("refresh-token", response.RefreshToken)
	suite.Equal("Bearer", response.TokenType)
}

func (suite *AuthServiceTestSuite) TestRefreshToken_DeletedUserRejected() {
	userID := uuid.New()
	suite.mockJWT.On("ValidateRefreshToken", "refresh-token").Return(userID, nil)
	suite.userRepo().On("GetByID", suite.ctx, userID).Return(nil, nil)

	response, err := suite.authService.RefreshToken(suite.ctx, &RefreshRequest{RefreshToken: "refresh-token"})

	suite.ErrorIs(err, repositories.ErrUserNotFound)
	suite.Nil(response)
	suite.mockJWT.AssertNotCalled(suite.T(), "RefreshToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func TestGenerateUsername(t *testing.T) {
	service := &AuthService{}

	tests := []struct {
		name     string
		fullName string
		email    string
		expected string
	}{
		{"strips non-alphanumerics", "Pat Trader!", "x@example.com", "PatTrader"},
		{"truncates long names", strings.Repeat("a", 30), "x@example.com", strings.Repeat("a", 20)},
		{"short name falls back to email prefix", "Al", "tradejournal@example.com", "tradejournal"},
		{"unicode-only name falls back", "交易者", "trader@example.com", "trader"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := service.generateUsername(tt.fullName, tt.email)
			if result != tt.expected {
				t.Errorf("generateUsername(%q, %q) = %q, want %q", tt.fullName, tt.email, result, tt.expected)
			}
		})
	}
}

func TestGenerateUsername_TimestampFallback(t *testing.T) {
	service := &AuthService{}

	result := service.generateUsername("", "x@")
	if !strings.HasPrefix(result, "user") {
		t.Errorf("expected timestamp fallback username, got %q", result)
	}
}
