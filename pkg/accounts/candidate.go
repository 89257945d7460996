package accounts

import (
	"strings"

	"github.com/agentstation/tenantmap/pkg/errors"
)

// SubscriptionCandidate is produced by an agreement strategy from one
// billing-side feed row. Candidates without a subscription id never
// survive; ids are normalized to lowercase at construction.
type SubscriptionCandidate struct {
	// SubscriptionID is the lowercase subscription id. Required.
	SubscriptionID string

	// TenantID may be empty until merge for partner agreements.
	TenantID string

	DisplayName string

	// Status is the billing-side lifecycle status ("Active", "Enabled",
	// or any other provider string). Only accepted statuses proceed to
	// enrichment.
	Status string

	Tags map[string]string

	// BillingLocation is the billing-side location fragment (department,
	// enrollment account, customer), always preceding any hierarchy
	// nodes in the final location.
	BillingLocation LocationChain

	// FallbackSecretSchema, when set, is attached to the record if the
	// direct per-subscription lookup does not verify access. Used by the
	// tenant-enumeration fallback.
	FallbackSecretSchema string
}

// NewCandidate builds a candidate with a normalized subscription id.
// An empty id returns ErrInvalidInput; callers drop such rows silently
// since many feed rows represent non-subscription billing entities.
func NewCandidate(subscriptionID string) (SubscriptionCandidate, error) {
	id := strings.ToLower(strings.TrimSpace(subscriptionID))
	if id == "" {
		return SubscriptionCandidate{}, &errors.ValidationError{
			Field:   "subscription_id",
			Message: "must not be empty",
		}
	}
	return SubscriptionCandidate{SubscriptionID: id}, nil
}

func missingSecretField(field string) error {
	return &errors.ValidationError{
		Field:   field,
		Message: "required secret field is missing",
	}
}
