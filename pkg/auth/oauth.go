package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// OAuthUser represents user information from the OAuth provider
type OAuthUser struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// GoogleUser represents the Google userinfo response
type GoogleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
	Locale        string `json:"locale"`
}

// GoogleOAuthConfig represents Google OAuth configuration
type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// OAuthManager manages the Google OAuth flow
type OAuthManager struct {
	config *oauth2.Config
}

// NewOAuthManager creates a new OAuth manager
func NewOAuthManager(cfg GoogleOAuthConfig) *OAuthManager {
	return &OAuthManager{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
	}
}

// GetAuthURL generates the OAuth authorization URL
func (om *OAuthManager) GetAuthURL(state string) (string, error) {
	if om.config.ClientID == "" {
		return "", errors.New("google OAuth is not configured")
	}
	return om.config.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

// ExchangeCodeForToken exchanges the authorization code for an access token
func (om *OAuthManager) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	return om.config.Exchange(ctx, code)
}

// GetUserInfo fetches the user profile with the OAuth token
func (om *OAuthManager) GetUserInfo(ctx context.Context, token *oauth2.Token) (*OAuthUser, error) {
	client := om.config.Client(ctx, token)

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read userinfo response: %w", err)
	}

	var googleUser GoogleUser
	if err := json.Unmarshal(body, &googleUser); err != nil {
		return nil, fmt.Errorf("failed to parse userinfo response: %w", err)
	}

	if googleUser.Email == "" {
		return nil, errors.New("userinfo response contains no email")
	}

	return &OAuthUser{
		ID:     googleUser.ID,
		Email:  googleUser.Email,
		Name:   googleUser.Name,
		Avatar: googleUser.Picture,
	}, nil
}

// ValidateState validates the OAuth state parameter
func ValidateState(expectedState, actualState string) error {
	if expectedState == "" {
		return errors.New("expected state is empty")
	}
	if actualState == "" {
		return errors.New("actual state is empty")
	}
	if expectedState != actualState {
		return errors.New("state parameter mismatch")
	}
	return nil
}

// GenerateState generates a random state parameter for OAuth
func GenerateState() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return hex.EncodeToString(buf)
}
