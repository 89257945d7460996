// Package reconciler finalizes candidate subscription records into
// canonical account records. It joins three partial views of the same
// subscription: the billing-side candidate, the management-group
// location chain for its tenant, and a direct per-subscription lookup
// that decides whether narrow-scope credentials may be attached.
package reconciler

import (
	"context"

	"github.com/agentstation/tenantmap/pkg/accounts"
	"github.com/agentstation/tenantmap/pkg/errors"
	"github.com/agentstation/tenantmap/pkg/hierarchy"
	"github.com/agentstation/tenantmap/pkg/logging"
	"github.com/agentstation/tenantmap/pkg/normalize"
)

// Merger merges agreement-strategy candidates with hierarchy and
// direct-lookup data. One merger serves one sync run; its hierarchy
// resolver carries the per-tenant location cache across calls, entries
// only ever added during the run.
type Merger struct {
	resolver      *hierarchy.Resolver
	subscriptions accounts.SubscriptionClient
	secret        accounts.SecretData
}

// New returns a merger backed by the given hierarchy resolver and
// subscription client, issuing credentials derived from secret.
func New(resolver *hierarchy.Resolver, subscriptions accounts.SubscriptionClient, secret accounts.SecretData) *Merger {
	return &Merger{
		resolver:      resolver,
		subscriptions: subscriptions,
		secret:        secret,
	}
}

// Merge folds candidates into result, keyed by subscription id. Callers
// pass the same result map across strategy batches so a subscription
// seen by several feeds yields exactly one record. The later write wins
// for name, location, and tags, but the secret schema only ever
// upgrades: a pass that did not verify the subscription itself keeps
// whatever schema an earlier pass attached, so a fallback schema never
// replaces a verified one.
//
// Only context cancellation aborts a merge; every per-candidate
// enrichment failure degrades to a thinner record.
func (m *Merger) Merge(ctx context.Context, candidates []accounts.SubscriptionCandidate, result map[string]accounts.AccountRecord) error {
	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return err
		}

		record, err := m.finalize(ctx, candidate)
		if err != nil {
			return err
		}

		if prior, ok := result[candidate.SubscriptionID]; ok &&
			prior.SecretSchemaID != "" &&
			record.SecretSchemaID != accounts.SecretSchemaMultiTenant {
			record.SecretSchemaID = prior.SecretSchemaID
			record.SecretData = prior.SecretData
		}
		result[candidate.SubscriptionID] = record
	}
	return nil
}

// finalize builds the account record for one candidate: location chain,
// authoritative tags, and the secret-injection decision.
func (m *Merger) finalize(ctx context.Context, candidate accounts.SubscriptionCandidate) (accounts.AccountRecord, error) {
	logger := logging.FromContext(ctx).With().
		Str("subscription_id", candidate.SubscriptionID).
		Str("tenant_id", candidate.TenantID).
		Logger()

	chain, err := m.resolver.Chain(ctx, candidate.TenantID, candidate.SubscriptionID)
	if err != nil {
		return accounts.AccountRecord{}, err
	}

	// Billing fragment first, hierarchy nodes after, no deduplication
	// between the two even when names coincide.
	location := candidate.BillingLocation.Clone()
	location = append(location, chain...)

	record := accounts.AccountRecord{
		Name: candidate.DisplayName,
		Data: accounts.AccountData{
			SubscriptionID: candidate.SubscriptionID,
			TenantID:       candidate.TenantID,
		},
		ResourceID: candidate.SubscriptionID,
		Tags:       candidate.Tags,
		Location:   location,
	}

	tags, verified, err := m.verify(ctx, candidate)
	if err != nil {
		return accounts.AccountRecord{}, err
	}

	switch {
	case verified:
		record.SecretSchemaID = accounts.SecretSchemaMultiTenant
		record.SecretData = map[string]string{
			"tenant_id":       m.secret.TenantID,
			"client_id":       m.secret.ClientID,
			"client_secret":   m.secret.ClientSecret,
			"subscription_id": candidate.SubscriptionID,
		}
		if len(tags) > 0 {
			record.Tags = tags
		}
	case candidate.FallbackSecretSchema != "":
		record.SecretSchemaID = candidate.FallbackSecretSchema
		record.SecretData = map[string]string{
			"subscription_id": candidate.SubscriptionID,
		}
	default:
		logger.Debug().Msg("Subscription not verified for credential injection")
	}

	return record, nil
}

// verify attempts the direct per-subscription lookup. Success returns
// the provider-side tags, which override billing-side tags. Any lookup
// failure short of cancellation means "not eligible", never a sync
// failure; forbidden and unauthenticated responses are the expected
// shape here.
func (m *Merger) verify(ctx context.Context, candidate accounts.SubscriptionCandidate) (map[string]string, bool, error) {
	logger := logging.FromContext(ctx)

	raw, err := m.subscriptions.GetSubscription(ctx, candidate.SubscriptionID, candidate.TenantID)
	if err != nil {
		if errors.IsCanceled(err) || ctx.Err() != nil {
			return nil, false, err
		}
		event := logger.Debug()
		if !errors.IsAuthFailure(err) && !errors.IsPermissionDenied(err) {
			event = logger.Warn()
		}
		event.Err(err).
			Str("subscription_id", candidate.SubscriptionID).
			Msg("Direct subscription lookup failed")
		return nil, false, nil
	}
	if raw == nil {
		return nil, false, nil
	}

	info, err := normalize.Map(raw)
	if err != nil {
		logger.Debug().Err(err).
			Str("subscription_id", candidate.SubscriptionID).
			Msg("Direct subscription lookup returned a malformed object")
		return nil, true, nil
	}
	return tagMap(info["tags"]), true, nil
}

// tagMap converts a normalized tags value into a string map, dropping
// non-string values.
func tagMap(value any) map[string]string {
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
