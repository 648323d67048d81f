package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

// Provider API endpoints, overridable in tests
var (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	githubUserURL     = "https://api.github.com/user"
	githubEmailsURL   = "https://api.github.com/user/emails"
)

// OAuthConfig holds the configured sign-in providers
type OAuthConfig struct {
	providers map[Provider]*oauth2.Config
}

// OAuthUserInfo is the identity a provider vouches for
type OAuthUserInfo struct {
	ProviderID  string
	Email       string
	DisplayName string
}

// ProviderConfig holds the credentials for an OAuth provider
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
}

func (p ProviderConfig) configured() bool {
	return p.ClientID != "" && p.ClientSecret != ""
}

// NewOAuthConfig registers every provider that has credentials
func NewOAuthConfig(googleCfg, githubCfg ProviderConfig, callbackBaseURL string) *OAuthConfig {
	c := &OAuthConfig{providers: map[Provider]*oauth2.Config{}}

	if googleCfg.configured() {
		c.providers[ProviderGoogle] = &oauth2.Config{
			ClientID:     googleCfg.ClientID,
			ClientSecret: googleCfg.ClientSecret,
			RedirectURL:  callbackBaseURL + "/api/auth/callback/google",
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		}
	}

	if githubCfg.configured() {
		c.providers[ProviderGitHub] = &oauth2.Config{
			ClientID:     githubCfg.ClientID,
			ClientSecret: githubCfg.ClientSecret,
			RedirectURL:  callbackBaseURL + "/api/auth/callback/github",
			Scopes:       []string{"user:email", "read:user"},
			Endpoint:     github.Endpoint,
		}
	}

	return c
}

// IsProviderConfigured checks if a provider has credentials
func (c *OAuthConfig) IsProviderConfigured(provider Provider) bool {
	_, ok := c.providers[provider]
	return ok
}

// GetAuthURL returns the consent page URL for a provider
func (c *OAuthConfig) GetAuthURL(provider Provider, state string) (string, error) {
	cfg, err := c.getConfig(provider)
	if err != nil {
		return "", err
	}
	return cfg.AuthCodeURL(state), nil
}

// ExchangeCode exchanges an authorization code for tokens
func (c *OAuthConfig) ExchangeCode(ctx context.Context, provider Provider, code string) (*oauth2.Token, error) {
	cfg, err := c.getConfig(provider)
	if err != nil {
		return nil, err
	}
	return cfg.Exchange(ctx, code)
}

// GetUserInfo fetches the signed-in identity from the provider
func (c *OAuthConfig) GetUserInfo(ctx context.Context, provider Provider, token *oauth2.Token) (*OAuthUserInfo, error) {
	cfg, err := c.getConfig(provider)
	if err != nil {
		return nil, err
	}
	client := cfg.Client(ctx, token)

	switch provider {
	case ProviderGoogle:
		return fetchGoogleUser(client)
	case ProviderGitHub:
		return fetchGitHubUser(client)
	}
	return nil, fmt.Errorf("unsupported provider: %s", provider)
}

func (c *OAuthConfig) getConfig(provider Provider) (*oauth2.Config, error) {
	cfg, ok := c.providers[provider]
	if !ok {
		return nil, fmt.Errorf("%s OAuth not configured", provider)
	}
	return cfg, nil
}

func getJSON(client *http.Client, url string, out interface{}) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("provider API error: status=%d body=%s", resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func fetchGoogleUser(client *http.Client) (*OAuthUserInfo, error) {
	var info struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := getJSON(client, googleUserInfoURL, &info); err != nil {
		return nil, fmt.Errorf("google userinfo: %w", err)
	}
	if info.Email == "" {
		return nil, fmt.Errorf("email not provided by Google")
	}

	name := info.Name
	if name == "" {
		name = info.Email
	}
	return &OAuthUserInfo{ProviderID: info.ID, Email: info.Email, DisplayName: name}, nil
}

func fetchGitHubUser(client *http.Client) (*OAuthUserInfo, error) {
	var info struct {
		ID    int64  `json:"id"`
		Login string `json:"login"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := getJSON(client, githubUserURL, &info); err != nil {
		return nil, fmt.Errorf("github user: %w", err)
	}

	email := info.Email
	if email == "" {
		var emails []struct {
			Email    string `json:"email"`
			Primary  bool   `json:"primary"`
			Verified bool   `json:"verified"`
		}
		if err := getJSON(client, githubEmailsURL, &emails); err != nil {
			return nil, fmt.Errorf("github emails: %w", err)
		}
		for _, e := range emails {
			if e.Verified && (e.Primary || email == "") {
				email = e.Email
			}
		}
		if email == "" {
			return nil, fmt.Errorf("no verified email found")
		}
	}

	name := info.Name
	if name == "" {
		name = info.Login
	}
	return &OAuthUserInfo{ProviderID: strconv.FormatInt(info.ID, 10), Email: email, DisplayName: name}, nil
}
