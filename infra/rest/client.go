package rest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/CrestNiraj12/terminalframes/domain"
	"github.com/CrestNiraj12/terminalframes/infra/auth"
)

const maxResponseBytes = 4 << 20

// Client is a thin HTTP wrapper for the Frames API.
// It handles base URL construction and bearer token injection.
type Client struct {
	baseURL       string
	tokenProvider auth.TokenProvider
	http          *http.Client
}

// NewClient creates a Frames API client.
func NewClient(baseURL string, tp auth.TokenProvider) *Client {
	return &Client{
		baseURL:       baseURL,
		tokenProvider: tp,
		http:          &http.Client{Timeout: 15 * time.Second},
	}
}

// Get performs a GET request, authenticated when a token is available.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	token, err := c.tokenProvider.AccessToken()
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("API %s %s: %w", method, path, domain.ErrUnauthorized)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API %s %s returned %d: %s", method, path, resp.StatusCode, string(data))
	}

	return data, nil
}
