package agreements

import (
	"context"
	"strings"

	"github.com/agentstation/tenantmap/pkg/accounts"
	"github.com/agentstation/tenantmap/pkg/errors"
	"github.com/agentstation/tenantmap/pkg/logging"
	"github.com/agentstation/tenantmap/pkg/normalize"
)

// Partner discovers subscriptions under a reseller Microsoft Partner
// Agreement billing account. Each subscription belongs to a customer
// tenant; the tenant id is derived from the customer id rather than
// taken from the credential.
type Partner struct{}

// Kind returns the agreement kind this strategy handles.
func (s *Partner) Kind() accounts.AgreementKind {
	return accounts.AgreementPartner
}

// Candidates lists billing subscriptions either per configured customer
// (options.SyncCustomers) or at billing-account scope when no customer
// filter is set. A subscription appearing in several scopes yields
// several candidates; the merger keeps one record per id.
func (s *Partner) Candidates(ctx context.Context, opts accounts.Options, clients accounts.Clients, secret accounts.SecretData, billingAccountID string) ([]accounts.SubscriptionCandidate, error) {
	rows, err := s.listSubscriptions(ctx, opts, clients, billingAccountID)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)

	var candidates []accounts.SubscriptionCandidate
	for _, raw := range rows {
		info, err := normalize.Map(raw)
		if err != nil {
			logger.Debug().Err(err).Str("billing_account_id", billingAccountID).Msg("Dropping malformed subscription row")
			continue
		}

		subscriptionID := SubscriptionID(info, s.Kind())
		if subscriptionID == "" {
			continue
		}

		status := SubscriptionStatus(info, s.Kind())
		if !StatusAccepted(status, s.Kind()) {
			logger.Debug().
				Str("subscription_id", subscriptionID).
				Str("status", status).
				Msg("Skipping subscription outside accepted status set")
			continue
		}

		tenantID := TenantFromCustomerID(getString(info, "customer_id"))

		var location accounts.LocationChain
		if customerName := strings.TrimSpace(getString(info, "customer_display_name")); customerName != "" {
			location = accounts.LocationChain{{Name: customerName, ResourceID: tenantID}}
		}

		candidates = append(candidates, accounts.SubscriptionCandidate{
			SubscriptionID:  subscriptionID,
			TenantID:        tenantID,
			DisplayName:     SubscriptionName(info, s.Kind()),
			Status:          status,
			Tags:            stringMap(info["tags"]),
			BillingLocation: location,
		})
	}

	return candidates, nil
}

func (s *Partner) listSubscriptions(ctx context.Context, opts accounts.Options, clients accounts.Clients, billingAccountID string) ([]any, error) {
	if len(opts.SyncCustomers) == 0 {
		rows, err := clients.Billing.ListSubscriptionsByBillingAccount(ctx, billingAccountID)
		if err != nil {
			return nil, errors.WrapSource("billing_subscriptions", billingAccountID, err)
		}
		return rows, nil
	}

	var rows []any
	for _, customerID := range opts.SyncCustomers {
		customerRows, err := clients.Billing.ListSubscriptionsByCustomer(ctx, billingAccountID, customerID)
		if err != nil {
			return nil, errors.WrapSource("customer_subscriptions", customerID, err)
		}
		rows = append(rows, customerRows...)
	}
	return rows, nil
}
