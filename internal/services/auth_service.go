package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tradebook-backend/internal/models"
	"tradebook-backend/internal/repositories"
	"tradebook-backend/pkg/auth"

	"github.com/google/uuid"
)

// AuthService handles authentication business logic
type AuthService struct {
	repos        *repositories.Repositories
	jwtManager   auth.JWTManagerInterface
	oauthManager auth.OAuthManagerInterface
}

// NewAuthService creates a new authentication service
func NewAuthService(repos *repositories.Repositories, jwtManager auth.JWTManagerInterface, oauthManager auth.OAuthManagerInterface) *AuthService {
	return &AuthService{
		repos:        repos,
		jwtManager:   jwtManager,
		oauthManager: oauthManager,
	}
}

// LoginRequest represents a login request
type LoginRequest struct {
	RedirectURL string `json:"redirect_uri" binding:"required,url"`
}

// LoginResponse represents a login response with auth URL
type LoginResponse struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}

// CallbackRequest represents an OAuth callback request
type CallbackRequest struct {
	Code  string `json:"code" binding:"required"`
	State string `json:"state" binding:"required"`
}

// AuthResponse represents an authentication response with tokens
type AuthResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int64     `json:"expires_in"`
	User         *UserInfo `json:"user"`
}

// UserInfo represents user information in auth responses
type UserInfo struct {
	ID       uuid.UUID   `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Avatar   *string     `json:"avatar,omitempty"`
	Settings models.JSON `json:"settings"`
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func convertToUserInfo(user *models.User) *UserInfo {
	var avatar *string
	if user.Avatar != nil && *user.Avatar != "" {
		avatar = user.Avatar
	}

	settings := user.Settings
	if settings == nil {
		settings = models.JSON{}
	}

	return &UserInfo{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Avatar:   avatar,
		Settings: settings,
	}
}

// InitiateLogin starts the Google OAuth login flow
func (s *AuthService) InitiateLogin(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	// State ties the callback to this login attempt
	state := auth.GenerateState()

	authURL, err := s.oauthManager.GetAuthURL(state)
	if err != nil {
		return nil, fmt.Errorf("failed to generate auth URL: %w", err)
	}

	return &LoginResponse{
		AuthURL: authURL,
		State:   state,
	}, nil
}

// HandleCallback exchanges the OAuth code, finds or creates the user and
// issues a token pair
func (s *AuthService) HandleCallback(ctx context.Context, req *CallbackRequest, expectedState string) (*AuthResponse, error) {
	if err := auth.ValidateState(expectedState, req.State); err != nil {
		return nil, fmt.Errorf("invalid state parameter: %w", err)
	}

	token, err := s.oauthManager.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}

	oauthUser, err := s.oauthManager.GetUserInfo(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}

	user, err := s.findOrCreateUser(ctx, oauthUser)
	if err != nil {
		return nil, fmt.Errorf("failed to find or create user: %w", err)
	}

	tokenPair, err := s.jwtManager.GenerateTokenPair(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		TokenType:    tokenPair.TokenType,
		ExpiresIn:    tokenPair.ExpiresIn,
		User:         convertToUserInfo(user),
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new access token
func (s *AuthService) RefreshToken(ctx context.Context, req *RefreshRequest) (*AuthResponse, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	user, err := s.repos.User.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, repositories.ErrUserNotFound
	}

	accessToken, err := s.jwtManager.RefreshToken(req.RefreshToken, user.Username, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: req.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    3600,
		User:         convertToUserInfo(user),
	}, nil
}

// Logout ends the session. Tokens are stateless, so the client discards
// them; nothing to revoke server-side.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return nil
}

// findOrCreateUser resolves the OAuth identity to a journal owner by email
func (s *AuthService) findOrCreateUser(ctx context.Context, oauthUser *auth.OAuthUser) (*models.User, error) {
	existing, err := s.repos.User.GetByEmail(ctx, oauthUser.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if existing != nil {
		// Keep the avatar fresh on every login
		if oauthUser.Avatar != "" && (existing.Avatar == nil || *existing.Avatar != oauthUser.Avatar) {
			existing.Avatar = &oauthUser.Avatar
			if err := s.repos.User.Update(ctx, existing); err != nil {
				return nil, fmt.Errorf("failed to update user avatar: %w", err)
			}
		}
		return existing, nil
	}

	user := &models.User{
		Username: s.generateUsername(oauthUser.Name, oauthUser.Email),
		Email:    oauthUser.Email,
		Settings: models.JSON{},
	}
	if oauthUser.Avatar != "" {
		user.Avatar = &oauthUser.Avatar
	}

	if err := s.repos.User.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// generateUsername derives a username from the OAuth profile name, falling
// back to the email prefix
func (s *AuthService) generateUsername(name, email string) string {
	if name != "" {
		username := ""
		for _, char := range name {
			if (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9') {
				username += string(char)
			}
		}
		if len(username) >= 3 {
			return username[:min(len(username), 20)]
		}
	}

	if email != "" {
		atIndex := strings.Index(email, "@")
		if atIndex > 0 {
			prefix := email[:atIndex]
			if len(prefix) >= 3 {
				return prefix[:min(len(prefix), 20)]
			}
		}
	}

	return fmt.Sprintf("user%d", time.Now().Unix())
}

// min returns the minimum of two integers
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
