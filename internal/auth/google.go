package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/NathanBartolo/echo/internal/core"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// OAuthProviderConfig contains configuration for an OAuth provider
type OAuthProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// Compile-time interface check.
var _ core.IdentityProvider = (*GoogleProvider)(nil)

// GoogleProvider implements Google sign-in using the authorization code flow
type GoogleProvider struct {
	config      *oauth2.Config
	httpClient  *http.Client
	userInfoURL string
}

// NewGoogleProvider creates a Google OAuth provider. httpClient is used for
// both the token exchange and the userinfo request.
func NewGoogleProvider(cfg OAuthProviderConfig, httpClient *http.Client) *GoogleProvider {
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{"openid", "profile", "email"}
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint:     google.Endpoint,
		},
		httpClient:  httpClient,
		userInfoURL: googleUserInfoURL,
	}
}

// Name returns the provider name
func (p *GoogleProvider) Name() string {
	return "google"
}

// AuthCodeURL returns the consent page URL carrying state
func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
}

// Exchange trades the authorization code for a token and resolves the profile
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*core.OAuthUserInfo, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOAuthExchange, err)
	}

	return p.getUserInfo(ctx, token)
}

type googleUser struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// getUserInfo retrieves the OpenID Connect profile of the token owner
func (p *GoogleProvider) getUserInfo(
	ctx context.Context,
	token *oauth2.Token,
) (*core.OAuthUserInfo, error) {
	client := p.config.Client(ctx, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOAuthUserInfo, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOAuthUserInfo, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: %s - %s", ErrOAuthUserInfo, resp.Status, string(body))
	}

	var user googleUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOAuthUserInfo, err)
	}
	if user.Sub == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrOAuthUserInfo)
	}

	return &core.OAuthUserInfo{
		ProviderUserID: user.Sub,
		Email:          user.Email,
		EmailVerified:  user.EmailVerified,
		Name:           user.Name,
		AvatarURL:      user.Picture,
	}, nil
}
