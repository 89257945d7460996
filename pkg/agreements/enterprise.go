package agreements

import (
	"context"

	"github.com/agentstation/tenantmap/pkg/accounts"
	"github.com/agentstation/tenantmap/pkg/errors"
	"github.com/agentstation/tenantmap/pkg/logging"
	"github.com/agentstation/tenantmap/pkg/normalize"
)

// Enterprise discovers subscriptions under a direct Enterprise
// Agreement billing account by walking its departments and each
// department's billing subscriptions. The billing account is
// single-tenant, so every candidate inherits the credential's tenant.
type Enterprise struct{}

// Kind returns the agreement kind this strategy handles.
func (s *Enterprise) Kind() accounts.AgreementKind {
	return accounts.AgreementEnterprise
}

// Candidates walks departments and their subscriptions. Each candidate
// carries a billing location of the department node plus, unless
// excluded by options, the enrollment-account node above the
// subscription.
func (s *Enterprise) Candidates(ctx context.Context, opts accounts.Options, clients accounts.Clients, secret accounts.SecretData, billingAccountID string) ([]accounts.SubscriptionCandidate, error) {
	logger := logging.FromContext(ctx)

	departments, err := clients.Billing.ListDepartments(ctx, billingAccountID)
	if err != nil {
		return nil, errors.WrapSource("departments", billingAccountID, err)
	}

	var candidates []accounts.SubscriptionCandidate
	for _, rawDepartment := range departments {
		department, err := normalize.Map(rawDepartment)
		if err != nil {
			logger.Debug().Err(err).Msg("Dropping malformed department row")
			continue
		}

		departmentID := getString(department, "name")
		departmentName := digString(department, "properties", "departmentName")

		subscriptions, err := clients.Billing.ListSubscriptionsByDepartment(ctx, billingAccountID, departmentID)
		if err != nil {
			return nil, errors.WrapSource("billing_subscriptions", departmentID, err)
		}

		for _, raw := range subscriptions {
			info, err := normalize.Map(raw)
			if err != nil {
				logger.Debug().Err(err).Str("department_id", departmentID).Msg("Dropping malformed subscription row")
				continue
			}

			subscriptionID := SubscriptionID(info, s.Kind())
			if subscriptionID == "" {
				// Not a subscription row; many department feed rows
				// describe other billing entities.
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

			location := accounts.LocationChain{{Name: departmentName, ResourceID: departmentID}}
			if !opts.ExcludeEnrollmentAccount {
				if node, ok := enrollmentAccountNode(info); ok {
					location = append(location, node)
				}
			}

			candidates = append(candidates, accounts.SubscriptionCandidate{
				SubscriptionID:  subscriptionID,
				TenantID:        secret.TenantID,
				DisplayName:     SubscriptionName(info, s.Kind()),
				Status:          status,
				Tags:            stringMap(info["tags"]),
				BillingLocation: location,
			})
		}
	}

	return candidates, nil
}

// enrollmentAccountNode builds the enrollment-account location node for
// an enterprise subscription row. The node sits above the subscription
// but is distinct from management-group ancestry.
func enrollmentAccountNode(info map[string]any) (accounts.LocationNode, bool) {
	name := digString(info, "properties", "enrollmentAccountDisplayName")
	resourceID := digString(info, "properties", "enrollmentAccountId")
	if name == "" && resourceID == "" {
		return accounts.LocationNode{}, false
	}
	return accounts.LocationNode{Name: name, ResourceID: resourceID}, true
}
