package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Auth0Client drives the delegated login flow: authorize redirect, code
// exchange and userinfo lookup against the tenant.
type Auth0Client struct {
	Domain       string
	ClientID     string
	ClientSecret string
	Audience     string
	CallbackURL  string

	httpClient *http.Client
}

func NewAuth0Client(domain, clientID, clientSecret, audience, callbackURL string) *Auth0Client {
	return &Auth0Client{
		Domain:       domain,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Audience:     audience,
		CallbackURL:  callbackURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthorizeURL builds the /authorize redirect target for /login.
func (c *Auth0Client) AuthorizeURL(state string) string {
	params := url.Values{
		"response_type": {"code"},
		"client_id":     {c.ClientID},
		"redirect_uri":  {c.CallbackURL},
		"scope":         {"openid profile email"},
		"audience":      {c.Audience},
		"state":         {state},
	}
	return fmt.Sprintf("https://%s/authorize?%s", c.Domain, params.Encode())
}

// LogoutURL builds the /v2/logout redirect target for /logout.
func (c *Auth0Client) LogoutURL(returnTo string) string {
	params := url.Values{
		"returnTo":  {returnTo},
		"client_id": {c.ClientID},
	}
	return fmt.Sprintf("https://%s/v2/logout?%s", c.Domain, params.Encode())
}

// TokenResponse is the relevant subset of the /oauth/token reply.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Exchange trades an authorization code for tokens.
func (c *Auth0Client) Exchange(ctx context.Context, code string) (TokenResponse, error) {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"client_id":     {c.ClientID},
		"client_secret": {c.ClientSecret},
		"code":          {code},
		"redirect_uri":  {c.CallbackURL},
	}

	endpoint := fmt.Sprintf("https://%s/oauth/token", c.Domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return TokenResponse{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return TokenResponse{}, fmt.Errorf("token exchange failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return TokenResponse{}, fmt.Errorf("token exchange failed: status %d", resp.StatusCode)
	}

	var token TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return TokenResponse{}, fmt.Errorf("failed to decode token response: %w", err)
	}
	return token, nil
}

// Userinfo holds the profile claims returned by the /userinfo endpoint.
type Userinfo struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// FetchUserinfo retrieves the authenticated user's profile.
func (c *Auth0Client) FetchUserinfo(ctx context.Context, accessToken string) (Userinfo, error) {
	endpoint := fmt.Sprintf("https://%s/userinfo", c.Domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Userinfo{}, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Userinfo{}, fmt.Errorf("failed to fetch user information: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Userinfo{}, fmt.Errorf("failed to fetch user information: status %d", resp.StatusCode)
	}

	var info Userinfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return Userinfo{}, fmt.Errorf("failed to decode user information: %w", err)
	}
	return info, nil
}
