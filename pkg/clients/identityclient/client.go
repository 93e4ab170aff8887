// Package identityclient talks to the external identity provider that owns
// account credentials. Registration and login flows depend on the Issuer
// interface rather than this concrete client.
package identityclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// SessionInfo is the session material returned by a successful login
type SessionInfo struct {
	UserID       string
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
}

// Issuer creates and authenticates external identity accounts
type Issuer interface {
	CreateAccount(ctx context.Context, email, secret string) (string, error)
	Authenticate(ctx context.Context, email, secret string) (SessionInfo, error)
}

// Client is a Supabase-style auth API client implementing Issuer
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// New creates an identity client for the given auth API base URL
func New(baseURL, serviceKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

// CreateAccount provisions a confirmed account and returns its external id
func (c *Client) CreateAccount(ctx context.Context, email, secret string) (string, error) {
	payload := map[string]any{
		"email":    email,
		"password": secret,
		// Admin endpoint creates confirmed users for operator onboarding
		"email_confirm": true,
	}

	var data struct {
		ID string `json:"id"`
	}
	if err := c.post(ctx, "/auth/v1/admin/users", payload, &data); err != nil {
		return "", err
	}
	if data.ID == "" {
		return "", fmt.Errorf("identity provider returned no user id")
	}
	return data.ID, nil
}

// Authenticate exchanges credentials for a session
func (c *Client) Authenticate(ctx context.Context, email, secret string) (SessionInfo, error) {
	payload := map[string]any{"email": email, "password": secret}

	var data struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int    `json:"expires_in"`
		User         struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := c.post(ctx, "/auth/v1/token?grant_type=password", payload, &data); err != nil {
		return SessionInfo{}, err
	}
	if data.AccessToken == "" || data.User.ID == "" {
		return SessionInfo{}, fmt.Errorf("identity provider returned incomplete session payload")
	}

	return SessionInfo{
		UserID:       data.User.ID,
		AccessToken:  data.AccessToken,
		RefreshToken: data.RefreshToken,
		ExpiresIn:    data.ExpiresIn,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var details struct {
			Msg     string `json:"msg"`
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&details)
		message := details.Msg
		if message == "" {
			message = details.Message
		}
		if message == "" {
			message = "identity provider request failed"
		}
		return fmt.Errorf("%s (status %d)", message, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
