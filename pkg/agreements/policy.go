// Package agreements implements one discovery strategy per billing
// agreement kind. All strategies share a single contract: given the
// billing-side feeds for one billing account, produce candidate
// subscription records. The points where the kinds diverge (status
// field, subscription-id field, tenant resolution) live here as pure
// policy functions rather than being duplicated per strategy.
package agreements

import (
	"strings"

	"github.com/agentstation/tenantmap/pkg/accounts"
)

// SubscriptionStatus extracts the billing-side lifecycle status from a
// normalized feed row, per agreement kind. Enterprise rows carry the
// status nested under properties; partner rows and plain provider
// subscriptions carry it flat.
func SubscriptionStatus(info map[string]any, kind accounts.AgreementKind) string {
	switch kind {
	case accounts.AgreementEnterprise:
		return digString(info, "properties", "enrollmentAccountSubscriptionDetails", "subscriptionEnrollmentAccountStatus")
	case accounts.AgreementPartner:
		return getString(info, "subscription_billing_status")
	default:
		return getString(info, "state")
	}
}

// SubscriptionID extracts the subscription id from a normalized feed
// row, per agreement kind, lowercased. Empty means the row is not a
// subscription and must be dropped silently.
func SubscriptionID(info map[string]any, kind accounts.AgreementKind) string {
	var id string
	switch kind {
	case accounts.AgreementEnterprise:
		id = digString(info, "properties", "subscriptionId")
	default:
		id = getString(info, "subscription_id")
	}
	return strings.ToLower(strings.TrimSpace(id))
}

// SubscriptionName extracts the display name from a normalized feed row.
func SubscriptionName(info map[string]any, kind accounts.AgreementKind) string {
	switch kind {
	case accounts.AgreementEnterprise:
		return digString(info, "properties", "displayName")
	default:
		return getString(info, "display_name")
	}
}

// TenantFromCustomerID derives a partner customer's tenant id from its
// fully qualified customer id by taking the last path segment.
func TenantFromCustomerID(customerID string) string {
	if customerID == "" {
		return ""
	}
	parts := strings.Split(customerID, "/")
	return parts[len(parts)-1]
}

// StatusAccepted reports whether a status value proceeds to enrichment
// for the given agreement kind. Anything else is legitimately skipped
// (suspended, expired, deleted), never an error.
func StatusAccepted(status string, kind accounts.AgreementKind) bool {
	switch kind {
	case accounts.AgreementEnterprise, accounts.AgreementPartner:
		return status == "Active"
	default:
		return status == "Enabled"
	}
}

// getString reads a string value from a mapping, tolerating absence.
func getString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// digString walks a nested mapping path and returns the string leaf, or
// empty if any step is absent or the wrong shape.
func digString(m map[string]any, path ...string) string {
	current := m
	for i, key := range path {
		if current == nil {
			return ""
		}
		if i == len(path)-1 {
			s, _ := current[key].(string)
			return s
		}
		next, _ := current[key].(map[string]any)
		current = next
	}
	return ""
}

// stringMap converts a normalized tags value into a string map,
// dropping non-string values.
func stringMap(value any) map[string]string {
	raw, ok := value.(map[string]any)
	if !ok || len(raw) == 0 {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
