// Package transport provides the HTTP client the Azure Resource Manager
// feed clients are built on: per-tenant OAuth2 client-credentials
// authentication, common headers, and response decoding into the
// error taxonomy.
package transport

import (
	"context"
	"net/http"

	"github.com/agentstation/tenantmap/pkg/accounts"
	"github.com/agentstation/tenantmap/pkg/constants"
	"github.com/agentstation/tenantmap/pkg/errors"
)

// DefaultEndpoint is the Azure Resource Manager base URL.
const DefaultEndpoint = "https://management.azure.com"

// Client performs authenticated requests against Azure Resource
// Manager.
type Client struct {
	http     *http.Client
	auth     *Authenticator
	endpoint string
}

// New creates a transport client for the given credentials.
func New(secret accounts.SecretData, opts ...Option) *Client {
	c := &Client{
		http:     &http.Client{Timeout: constants.DefaultHTTPTimeout},
		auth:     NewAuthenticator(secret),
		endpoint: DefaultEndpoint,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures a transport client.
type Option func(*Client)

// WithEndpoint overrides the Resource Manager base URL. Used for
// sovereign clouds and tests.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

// Endpoint returns the Resource Manager base URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Do performs the request authenticated against the given tenant.
func (c *Client) Do(req *http.Request, tenantID string) (*http.Response, error) {
	if err := c.auth.Apply(req, tenantID); err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if req.Method == http.MethodPost || req.Method == http.MethodPut || req.Method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.http.Do(req)
}

// GetJSON performs an authenticated GET against a fully built URL and
// decodes the JSON response into target.
func (c *Client) GetJSON(ctx context.Context, url, tenantID string, target any) error {
	return c.doJSON(ctx, http.MethodGet, url, tenantID, target)
}

// PostJSON performs an authenticated bodyless POST and decodes the JSON
// response into target. Some Resource Manager list operations are
// POST-only.
func (c *Client) PostJSON(ctx context.Context, url, tenantID string, target any) error {
	return c.doJSON(ctx, http.MethodPost, url, tenantID, target)
}

func (c *Client) doJSON(ctx context.Context, method, url, tenantID string, target any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return errors.WrapIO("create", method+" "+url, err)
	}

	resp, err := c.Do(req, tenantID)
	if err != nil {
		if errors.IsAuthFailure(err) || ctx.Err() != nil {
			return err
		}
		return errors.NewIOError(method, url, err)
	}
	return DecodeResponse(resp, url, tenantID, target)
}
