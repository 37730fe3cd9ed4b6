package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// OAuthConfig carries the platform OAuth client settings, loaded once at startup.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	RedirectURL  string
}

// OAuthToken is the result of exchanging an authorization code.
type OAuthToken struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
}

// ErrOAuthUnconfigured is returned when the OAuth client settings are absent.
var ErrOAuthUnconfigured = errors.New("oauth client is not configured")

// InstagramService exchanges authorization codes for access tokens against
// the configured token endpoint.
type InstagramService struct {
	cfg    OAuthConfig
	client *http.Client
}

func NewInstagramService(cfg OAuthConfig) *InstagramService {
	return &InstagramService{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// ExchangeCode trades an authorization code for an access token.
// A non-2xx response is an infrastructure fault, not a domain error.
func (s *InstagramService) ExchangeCode(ctx context.Context, code string) (*OAuthToken, error) {
	if s.cfg.ClientID == "" || s.cfg.TokenURL == "" {
		return nil, ErrOAuthUnconfigured
	}

	form := url.Values{}
	form.Set("client_id", s.cfg.ClientID)
	form.Set("client_secret", s.cfg.ClientSecret)
	form.Set("grant_type", "authorization_code")
	form.Set("redirect_uri", s.cfg.RedirectURL)
	form.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read token response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("token endpoint returned %d", resp.StatusCode)
	}

	var token OAuthToken
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return nil, errors.New("token response missing access_token")
	}
	return &token, nil
}
