package sync

import (
	"context"
	stdsync "sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/tenantmap/pkg/accounts"
	"github.com/agentstation/tenantmap/pkg/agreements"
	"github.com/agentstation/tenantmap/pkg/errors"
	"github.com/agentstation/tenantmap/pkg/hierarchy"
	"github.com/agentstation/tenantmap/pkg/logging"
	"github.com/agentstation/tenantmap/pkg/normalize"
	"github.com/agentstation/tenantmap/pkg/reconciler"
)

// Orchestrator runs subscription discovery for one set of credentials.
type Orchestrator struct {
	factory accounts.ClientFactory
}

// New returns an orchestrator that builds collaborator clients through
// factory for each run's credentials.
func New(factory accounts.ClientFactory) *Orchestrator {
	return &Orchestrator{factory: factory}
}

// billingAccount is one enumerated billing account with its declared
// agreement kind.
type billingAccount struct {
	id   string
	kind accounts.AgreementKind
}

// Run performs one discovery run and returns the final account records.
//
// Feed failures scoped to one billing account or tenant degrade to
// fewer records; the run itself fails only on invalid input, a
// strategy-dispatch contract violation, or cancellation.
func (o *Orchestrator) Run(ctx context.Context, accountOpts accounts.Options, secret accounts.SecretData, opts ...Option) (*Result, error) {
	runOpts := Defaults().Apply(opts...)
	if err := runOpts.Validate(); err != nil {
		return nil, err
	}
	if err := secret.Validate(); err != nil {
		return nil, err
	}

	if runOpts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, runOpts.Timeout)
		defer cancel()
	}

	runID := uuid.NewString()
	logger := logging.FromContext(ctx).With().
		Str("run_id", runID).
		Str("tenant_id", secret.TenantID).
		Logger()
	if runOpts.DomainID != "" {
		logger = logger.With().Str("domain_id", runOpts.DomainID).Logger()
	}
	ctx = logging.WithLogger(ctx, &logger)

	clients, err := o.factory(secret)
	if err != nil {
		return nil, errors.NewConfigError("clients", "constructing provider clients", err)
	}

	resolver := hierarchy.NewResolver(clients.ManagementGroups, accountOpts.ExcludeRootManagementGroup)
	merger := reconciler.New(resolver, clients.Subscription, secret)

	billingAccounts := o.listBillingAccounts(ctx, clients)
	logger.Info().
		Int("billing_account_count", len(billingAccounts)).
		Msg("Starting subscription discovery")

	result := &Result{
		RunID:           runID,
		BillingAccounts: len(billingAccounts),
	}

	batches, skipped, err := o.discover(ctx, billingAccounts, accountOpts, clients, secret, runOpts.Concurrency)
	if err != nil {
		return nil, err
	}
	result.Skipped = skipped

	records := make(map[string]accounts.AccountRecord)
	for _, candidates := range batches {
		if err := merger.Merge(ctx, candidates, records); err != nil {
			return nil, err
		}
	}

	result.Records = make([]accounts.AccountRecord, 0, len(records))
	for _, record := range records {
		result.Records = append(result.Records, record)
	}

	logger.Info().
		Int("record_count", len(result.Records)).
		Int("verified_count", result.VerifiedCount()).
		Int("skipped_account_count", len(result.Skipped)).
		Msg("Subscription discovery complete")
	return result, nil
}

// listBillingAccounts enumerates billing accounts and reads each one's
// declared agreement kind. A listing failure or an unreadable row never
// fails the run: no visible billing accounts triggers the
// identity-side fallback, and an unreadable kind defaults to Unknown.
func (o *Orchestrator) listBillingAccounts(ctx context.Context, clients accounts.Clients) []billingAccount {
	logger := logging.FromContext(ctx)

	rows, err := clients.Billing.ListBillingAccounts(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Billing account enumeration failed; falling back to tenant enumeration")
		return nil
	}

	out := make([]billingAccount, 0, len(rows))
	for _, raw := range rows {
		info, err := normalize.Map(raw)
		if err != nil {
			logger.Debug().Err(err).Msg("Dropping malformed billing account row")
			continue
		}

		id, _ := info["name"].(string)
		var agreementType string
		if properties, ok := info["properties"].(map[string]any); ok {
			agreementType, _ = properties["agreementType"].(string)
		}

		out = append(out, billingAccount{
			id:   id,
			kind: accounts.KindOf(agreementType),
		})
	}
	return out
}

// discover runs the agreement strategy for each billing account with
// bounded fan-out and collects the candidate batches. With no billing
// accounts it falls back to the Unknown strategy so identity-derived
// inventory is still returned.
//
// Source failures skip the affected billing account; an unregistered
// agreement kind is a contract violation and fails the run.
func (o *Orchestrator) discover(ctx context.Context, billingAccounts []billingAccount, accountOpts accounts.Options, clients accounts.Clients, secret accounts.SecretData, concurrency int) ([][]accounts.SubscriptionCandidate, []SkippedAccount, error) {
	if len(billingAccounts) == 0 {
		strategy, err := agreements.For(accounts.AgreementUnknown)
		if err != nil {
			return nil, nil, err
		}
		candidates, err := strategy.Candidates(ctx, accountOpts, clients, secret, "")
		if err != nil {
			if errors.IsCanceled(err) || ctx.Err() != nil {
				return nil, nil, err
			}
			logging.FromContext(ctx).Warn().Err(err).Msg("Tenant enumeration fallback failed")
			return nil, nil, nil
		}
		return [][]accounts.SubscriptionCandidate{candidates}, nil, nil
	}

	var (
		mu      stdsync.Mutex
		batches [][]accounts.SubscriptionCandidate
		skipped []SkippedAccount
	)

	group, groupCtx := errgroup.WithContext(ctx)
	if concurrency > len(billingAccounts) {
		concurrency = len(billingAccounts)
	}
	group.SetLimit(concurrency)

	for _, account := range billingAccounts {
		group.Go(func() error {
			accountCtx := logging.WithBillingAccount(groupCtx, account.id)
			logger := logging.FromContext(accountCtx)

			strategy, err := agreements.For(account.kind)
			if err != nil {
				// Missing strategy implementation, not a data issue.
				return err
			}

			candidates, err := strategy.Candidates(accountCtx, accountOpts, clients, secret, account.id)
			if err != nil {
				if errors.IsCanceled(err) || groupCtx.Err() != nil {
					return err
				}
				logger.Warn().Err(err).
					Str("agreement_kind", account.kind.String()).
					Msg("Skipping billing account; feed unavailable")
				mu.Lock()
				skipped = append(skipped, SkippedAccount{
					BillingAccountID: account.id,
					Kind:             account.kind,
					Err:              err,
				})
				mu.Unlock()
				return nil
			}

			mu.Lock()
			batches = append(batches, candidates)
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, nil, err
	}
	return batches, skipped, nil
}
