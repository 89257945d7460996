package azure

import (
	"context"
	"fmt"
	"net/url"

	"github.com/agentstation/tenantmap/internal/transport"
	"github.com/agentstation/tenantmap/pkg/accounts"
	"github.com/agentstation/tenantmap/pkg/errors"
)

const subscriptionAPIVersion = "2020-01-01"

// SubscriptionClient reads the identity-side tenant and subscription
// feeds.
type SubscriptionClient struct {
	caller caller
}

// ListTenants enumerates tenants visible to the credential.
func (c *SubscriptionClient) ListTenants(ctx context.Context) ([]accounts.Tenant, error) {
	rows, err := c.list(ctx, "/tenants", "")
	if err != nil {
		return nil, errors.WrapSource("tenants", "", err)
	}

	tenants := make([]accounts.Tenant, 0, len(rows))
	for _, row := range rows {
		tenantID, _ := row["tenantId"].(string)
		if tenantID == "" {
			continue
		}
		displayName, _ := row["displayName"].(string)
		tenants = append(tenants, accounts.Tenant{
			TenantID:    tenantID,
			DisplayName: displayName,
		})
	}
	return tenants, nil
}

// ListSubscriptions enumerates subscriptions in one tenant. The token
// is issued against that tenant, so the feed only returns subscriptions
// the principal can reach there.
func (c *SubscriptionClient) ListSubscriptions(ctx context.Context, tenantID string) ([]any, error) {
	rows, err := c.list(ctx, "/subscriptions", tenantID)
	if err != nil {
		return nil, errors.WrapSource("subscriptions", tenantID, err)
	}

	out := make([]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, flattenSubscription(row))
	}
	return out, nil
}

// GetSubscription fetches a single subscription directly, scoped to the
// given tenant. This is the access probe behind credential injection;
// permission-class failures are the expected negative outcome.
func (c *SubscriptionClient) GetSubscription(ctx context.Context, subscriptionID, tenantID string) (any, error) {
	query := url.Values{}
	query.Set("api-version", subscriptionAPIVersion)
	u := transport.BuildURL(c.caller.Endpoint(), fmt.Sprintf("/subscriptions/%s", url.PathEscape(subscriptionID)), query)

	var row map[string]any
	if err := c.caller.GetJSON(ctx, u, tenantID, &row); err != nil {
		return nil, err
	}
	return flattenSubscription(row), nil
}

func (c *SubscriptionClient) list(ctx context.Context, path, tenantID string) ([]map[string]any, error) {
	query := url.Values{}
	query.Set("api-version", subscriptionAPIVersion)
	initialURL := transport.BuildURL(c.caller.Endpoint(), path, query)
	return collectPages(ctx, c.caller, initialURL, tenantID)
}

// flattenSubscription maps a provider subscription row onto the flat
// snake_case layout the engine's policy functions read.
func flattenSubscription(row map[string]any) map[string]any {
	flat := map[string]any{
		"subscription_id": row["subscriptionId"],
		"display_name":    row["displayName"],
		"state":           row["state"],
	}
	if tags, ok := row["tags"]; ok {
		flat["tags"] = tags
	}
	return flat
}
