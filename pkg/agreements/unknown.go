package agreements

import (
	"context"
	"strings"

	"github.com/agentstation/tenantmap/pkg/accounts"
	"github.com/agentstation/tenantmap/pkg/errors"
	"github.com/agentstation/tenantmap/pkg/logging"
	"github.com/agentstation/tenantmap/pkg/normalize"
)

// Unknown covers billing accounts with no recognized agreement, and the
// fallback when no billing account is visible at all. It discovers
// subscriptions from the identity-side tenant and subscription
// enumeration feeds instead of any billing feed.
type Unknown struct{}

// Kind returns the agreement kind this strategy handles.
func (s *Unknown) Kind() accounts.AgreementKind {
	return accounts.AgreementUnknown
}

// Candidates enumerates tenants and each tenant's subscriptions. The
// billing account id is ignored; it may be empty in the zero-billing-
// account fallback. When the secret pins a subscription id, enumeration
// narrows to that one subscription. A tenant whose subscription feed
// fails is skipped, not fatal.
func (s *Unknown) Candidates(ctx context.Context, _ accounts.Options, clients accounts.Clients, secret accounts.SecretData, _ string) ([]accounts.SubscriptionCandidate, error) {
	logger := logging.FromContext(ctx)
	only := strings.ToLower(secret.SubscriptionID)

	tenants, err := clients.Subscription.ListTenants(ctx)
	if err != nil {
		return nil, errors.WrapSource("tenants", "", err)
	}

	var candidates []accounts.SubscriptionCandidate
	for _, tenant := range tenants {
		rows, err := clients.Subscription.ListSubscriptions(ctx, tenant.TenantID)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("tenant_id", tenant.TenantID).
				Msg("Skipping tenant; subscription enumeration failed")
			continue
		}

		tenantNode := accounts.LocationNode{
			Name:       tenant.DisplayName,
			ResourceID: tenant.TenantID,
		}
		if tenantNode.Name == "" {
			tenantNode.Name = "Home"
		}

		for _, raw := range rows {
			info, err := normalize.Map(raw)
			if err != nil {
				logger.Debug().Err(err).Str("tenant_id", tenant.TenantID).Msg("Dropping malformed subscription row")
				continue
			}

			subscriptionID := SubscriptionID(info, s.Kind())
			if subscriptionID == "" {
				continue
			}
			if only != "" && subscriptionID != only {
				continue
			}

			status := SubscriptionStatus(info, s.Kind())
			if !StatusAccepted(status, s.Kind()) {
				continue
			}

			candidates = append(candidates, accounts.SubscriptionCandidate{
				SubscriptionID:       subscriptionID,
				TenantID:             tenant.TenantID,
				DisplayName:          SubscriptionName(info, s.Kind()),
				Status:               status,
				Tags:                 stringMap(info["tags"]),
				BillingLocation:      accounts.LocationChain{tenantNode},
				FallbackSecretSchema: accounts.SecretSchemaSubscriptionID,
			})
		}
	}

	return candidates, nil
}
