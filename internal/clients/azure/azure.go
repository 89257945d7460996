// Package azure implements the collaborator clients the sync engine
// reads its feeds through, backed by the Azure Resource Manager REST
// API. Each client owns pagination and api-version selection for its
// feeds; auth and transport live in internal/transport.
package azure

import (
	"context"

	"github.com/agentstation/tenantmap/internal/transport"
	"github.com/agentstation/tenantmap/pkg/accounts"
	"github.com/agentstation/tenantmap/pkg/paging"
)

// caller is the slice of the transport client the feed clients use.
// Narrowed to an interface so tests can substitute a fake.
type caller interface {
	Endpoint() string
	GetJSON(ctx context.Context, url, tenantID string, target any) error
	PostJSON(ctx context.Context, url, tenantID string, target any) error
}

// listResponse is the common page envelope of Resource Manager list
// operations.
type listResponse struct {
	Value    []map[string]any `json:"value"`
	NextLink string           `json:"nextLink"`
}

// NewClients builds the full collaborator client bundle for one set of
// credentials. It satisfies accounts.ClientFactory.
func NewClients(secret accounts.SecretData) (accounts.Clients, error) {
	if err := secret.Validate(); err != nil {
		return accounts.Clients{}, err
	}
	client := transport.New(secret)
	return accounts.Clients{
		Billing:          &BillingClient{caller: client},
		Subscription:     &SubscriptionClient{caller: client},
		ManagementGroups: &ManagementGroupClient{caller: client},
	}, nil
}

// collectPages follows a feed's nextLink continuations starting from
// initialURL and returns all rows.
func collectPages(ctx context.Context, c caller, initialURL, tenantID string) ([]map[string]any, error) {
	return paging.Collect(ctx, initialURL, func(ctx context.Context, cursor string) (paging.Page[map[string]any], error) {
		var page listResponse
		if err := c.GetJSON(ctx, cursor, tenantID, &page); err != nil {
			return paging.Page[map[string]any]{}, err
		}
		return paging.Page[map[string]any]{Items: page.Value, Next: page.NextLink}, nil
	})
}
