// Package hierarchy resolves the management-group ancestry of
// subscriptions. One resolver is created per sync invocation; it walks
// each tenant's entity feed at most once and caches the resulting
// subscription-to-location mapping for the rest of the run.
package hierarchy

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/agentstation/tenantmap/pkg/accounts"
	"github.com/agentstation/tenantmap/pkg/errors"
	"github.com/agentstation/tenantmap/pkg/logging"
)

// Resolver lazily builds, per tenant, the mapping from subscription id
// to its management-group location chain. The cache is monotonic for the
// lifetime of the resolver: entries are only added, never removed, and a
// tenant is listed at most once even under concurrent first access.
type Resolver struct {
	client      accounts.ManagementGroupClient
	excludeRoot bool

	group   singleflight.Group
	mu      sync.RWMutex
	tenants map[string]map[string]accounts.LocationChain
	failed  map[string]bool
}

// NewResolver creates a resolver for one sync run. excludeRoot drops the
// tenant root group (index 0 of the ancestor chains) from every chain.
func NewResolver(client accounts.ManagementGroupClient, excludeRoot bool) *Resolver {
	return &Resolver{
		client:      client,
		excludeRoot: excludeRoot,
		tenants:     make(map[string]map[string]accounts.LocationChain),
		failed:      make(map[string]bool),
	}
}

// Locations returns the subscription-to-chain mapping for a tenant,
// populating the cache on first use. A permission or transient failure
// on the hierarchy feed degrades gracefully: the tenant is remembered as
// unresolvable, nil is returned, and the sync continues with
// billing-fragment-only locations. Only context cancellation is
// returned as an error.
func (r *Resolver) Locations(ctx context.Context, tenantID string) (map[string]accounts.LocationChain, error) {
	if tenantID == "" {
		return nil, nil
	}

	if m, done := r.lookup(tenantID); done {
		return m, nil
	}

	// singleflight collapses concurrent first access so the feed is
	// walked exactly once per tenant.
	_, err, _ := r.group.Do(tenantID, func() (any, error) {
		if _, done := r.lookup(tenantID); done {
			return nil, nil
		}
		return nil, r.populate(ctx, tenantID)
	})
	if err != nil {
		return nil, err
	}

	m, _ := r.lookup(tenantID)
	return m, nil
}

// Chain returns the location chain for one subscription under a tenant.
func (r *Resolver) Chain(ctx context.Context, tenantID, subscriptionID string) (accounts.LocationChain, error) {
	locations, err := r.Locations(ctx, tenantID)
	if err != nil || locations == nil {
		return nil, err
	}
	return locations[subscriptionID], nil
}

// lookup returns the cached mapping and whether the tenant has already
// been resolved (successfully or not).
func (r *Resolver) lookup(tenantID string) (map[string]accounts.LocationChain, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if m, ok := r.tenants[tenantID]; ok {
		return m, true
	}
	if r.failed[tenantID] {
		return nil, true
	}
	return nil, false
}

func (r *Resolver) populate(ctx context.Context, tenantID string) error {
	logger := logging.FromContext(ctx)

	entities, err := r.client.ListEntities(ctx, tenantID)
	if err != nil {
		if errors.IsCanceled(err) || ctx.Err() != nil {
			return errors.ErrCanceled
		}

		// Forbidden, not-found, and transient listing failures all
		// degrade to "no hierarchy for this tenant".
		event := logger.Warn()
		if errors.IsPermissionDenied(err) {
			event = logger.Debug()
		}
		event.
			Err(err).
			Str("tenant_id", tenantID).
			Msg("Management group hierarchy unavailable; locations limited to billing fragments")

		r.mu.Lock()
		r.failed[tenantID] = true
		r.mu.Unlock()
		return nil
	}

	locations := make(map[string]accounts.LocationChain)
	for _, entity := range entities {
		if !entity.IsSubscription() || entity.Name == "" {
			continue
		}
		locations[entity.Name] = r.chain(entity)
	}

	logger.Debug().
		Str("tenant_id", tenantID).
		Int("subscription_count", len(locations)).
		Msg("Resolved management group locations")

	r.mu.Lock()
	r.tenants[tenantID] = locations
	r.mu.Unlock()
	return nil
}

// chain zips the parallel ancestor chains into a location chain. The
// chains must be index-aligned; if their lengths diverge the zip fails
// closed by truncating to the shorter one.
func (r *Resolver) chain(entity accounts.ManagementGroupEntity) accounts.LocationChain {
	n := len(entity.ParentDisplayNameChain)
	if len(entity.ParentNameChain) < n {
		n = len(entity.ParentNameChain)
	}

	start := 0
	if r.excludeRoot {
		start = 1
	}

	var chain accounts.LocationChain
	for i := start; i < n; i++ {
		chain = append(chain, accounts.LocationNode{
			Name:       entity.ParentDisplayNameChain[i],
			ResourceID: entity.ParentNameChain[i],
		})
	}
	return chain
}
