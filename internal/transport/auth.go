package transport

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/agentstation/tenantmap/pkg/accounts"
	"github.com/agentstation/tenantmap/pkg/errors"
)

const (
	// loginEndpoint is the OAuth2 token endpoint template, one issuer per
	// tenant.
	loginEndpoint = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"

	// managementScope is the resource scope for Azure Resource Manager.
	managementScope = "https://management.azure.com/.default"
)

// Authenticator issues bearer tokens for the service principal it was
// constructed with. Partner and multi-tenant feeds authenticate against
// the customer tenant rather than the principal's home tenant, so token
// sources are built and cached per tenant.
type Authenticator struct {
	secret accounts.SecretData

	mu      sync.Mutex
	sources map[string]oauth2.TokenSource
}

// NewAuthenticator creates an authenticator for the given credentials.
// The credentials are held as a value; nothing is written to process
// environment or other shared state.
func NewAuthenticator(secret accounts.SecretData) *Authenticator {
	return &Authenticator{
		secret:  secret,
		sources: make(map[string]oauth2.TokenSource),
	}
}

// TokenSource returns the cached token source for a tenant, creating it
// on first use. An empty tenant id means the principal's home tenant.
// The source caches its token until expiry.
func (a *Authenticator) TokenSource(tenantID string) oauth2.TokenSource {
	if tenantID == "" {
		tenantID = a.secret.TenantID
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if source, ok := a.sources[tenantID]; ok {
		return source
	}

	config := &clientcredentials.Config{
		ClientID:     a.secret.ClientID,
		ClientSecret: a.secret.ClientSecret,
		TokenURL:     fmt.Sprintf(loginEndpoint, tenantID),
		Scopes:       []string{managementScope},
	}
	source := config.TokenSource(context.Background())
	a.sources[tenantID] = source
	return source
}

// Apply sets the bearer token for the tenant on the request. A token
// grant failure is an authentication-class error; callers decide
// whether it degrades or propagates.
func (a *Authenticator) Apply(req *http.Request, tenantID string) error {
	token, err := a.TokenSource(tenantID).Token()
	if err != nil {
		return errors.NewAuthenticationError(tenantID, a.secret.ClientID, "token grant failed", err)
	}
	token.SetAuthHeader(req)
	return nil
}
