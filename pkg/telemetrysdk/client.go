package telemetrysdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SDKClient is a client for the HPC telemetry API. It provides access to
// unauthenticated operations and can create authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a telemetry API client for the given base URL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login exchanges a username/password pair for a bearer token and returns an
// authenticated Session.
func (c *SDKClient) Login(ctx context.Context, username, password string) (*Session, error) {
	form := url.Values{
		"username": {username},
		"password": {password},
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/token",
		strings.NewReader(form.Encode()),
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
	)
	if err != nil {
		return nil, err
	}

	var token TokenResponse
	if err := decodeJSON(resp, &token, http.StatusOK); err != nil {
		return nil, err
	}

	return &Session{client: c, accessToken: token.AccessToken}, nil
}

// NewSessionFromToken creates an authenticated session from an existing
// bearer token, e.g. one stored from a previous login. The token is not
// validated client-side; an expired token surfaces as a 401 on first use.
func (c *SDKClient) NewSessionFromToken(accessToken string) *Session {
	return &Session{client: c, accessToken: accessToken}
}

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/livez", nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}

	return &health, nil
}

// GetReadiness checks if the service is ready, including its database
// reachability check.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/readyz", nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}

	return &health, nil
}
