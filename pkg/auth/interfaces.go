package auth

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// JWTManagerInterface defines the interface for JWT operations
type JWTManagerInterface interface {
	GenerateToken(userID uuid.UUID, username, email string) (string, error)
	GenerateTokenPair(userID uuid.UUID, username, email string) (*TokenPair, error)
	ValidateToken(tokenString string) (*Claims, error)
	ValidateRefreshToken(tokenString string) (uuid.UUID, error)
	RefreshToken(refreshToken, username, email string) (string, error)
}

// OAuthManagerInterface defines the interface for OAuth operations
type OAuthManagerInterface interface {
	GetAuthURL(state string) (string, error)
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*OAuthUser, error)
}
