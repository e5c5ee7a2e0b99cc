package credentials

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-success backend response. Its message is surfaced
// verbatim to the user.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// Client talks to the vendor backend's credential endpoints.
type Client struct {
	base       string
	httpClient *http.Client
}

// NewClient creates a Client for the given backend base URL.
// httpClient may be nil to use http.DefaultClient.
func NewClient(base string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{base: strings.TrimRight(base, "/"), httpClient: httpClient}
}

type messageResponse struct {
	Message string `json:"message"`
}

// ChangePassword issues the authenticated change-password call and
// returns the backend's success message (possibly empty).
func (c *Client) ChangePassword(ctx context.Context, bearer, currentPassword, newPassword string) (string, error) {
	payload := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	return c.post(ctx, "/api/vendors/change-password", bearer, payload)
}

// ResetPassword issues the unauthenticated token-based reset call.
func (c *Client) ResetPassword(ctx context.Context, token, email, newPassword string) (string, error) {
	payload := map[string]string{
		"token":       token,
		"email":       email,
		"newPassword": newPassword,
	}
	return c.post(ctx, "/api/auth/reset-password", "", payload)
}

func (c *Client) post(ctx context.Context, path, bearer string, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshalling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	// The body may be empty or non-JSON; that is not an error by
	// itself.
	var parsed messageResponse
	json.NewDecoder(resp.Body).Decode(&parsed)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{StatusCode: resp.StatusCode, Message: parsed.Message}
	}
	return parsed.Message, nil
}
