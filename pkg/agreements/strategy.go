package agreements

import (
	"context"

	"github.com/agentstation/tenantmap/pkg/accounts"
	"github.com/agentstation/tenantmap/pkg/errors"
)

// Strategy collects candidate subscription records for one billing
// account. Implementations differ only in which feeds they read and in
// the policy functions they apply; they never enrich candidates with
// hierarchy data or secrets, that is the merger's job.
type Strategy interface {
	// Kind returns the agreement kind this strategy handles.
	Kind() accounts.AgreementKind

	// Candidates lists the billing-side feed(s) for the billing account
	// and yields one candidate per accepted subscription row. Rows
	// without a subscription id and rows with a non-accepted status are
	// dropped silently. A feed listing failure is returned as a
	// source-class error scoped to this billing account.
	Candidates(ctx context.Context, opts accounts.Options, clients accounts.Clients, secret accounts.SecretData, billingAccountID string) ([]accounts.SubscriptionCandidate, error)
}

// registry maps agreement kinds to their strategy constructors. The set
// of kinds is closed; dispatch is an explicit table lookup, not
// reflective discovery.
var registry = map[accounts.AgreementKind]func() Strategy{
	accounts.AgreementEnterprise: func() Strategy { return &Enterprise{} },
	accounts.AgreementPartner:    func() Strategy { return &Partner{} },
	accounts.AgreementUnknown:    func() Strategy { return &Unknown{} },
}

// For returns a new strategy for the given agreement kind. A kind with
// no registered strategy is a contract violation and surfaces as a
// StrategyError, fatal for the billing account being processed.
func For(kind accounts.AgreementKind) (Strategy, error) {
	constructor, ok := registry[kind]
	if !ok {
		return nil, errors.NewStrategyError(kind.String(), "")
	}
	return constructor(), nil
}

// Has reports whether a strategy is registered for the kind.
func Has(kind accounts.AgreementKind) bool {
	_, ok := registry[kind]
	return ok
}

// Kinds returns the agreement kinds with registered strategies.
func Kinds() []accounts.AgreementKind {
	kinds := make([]accounts.AgreementKind, 0, len(registry))
	for kind := range registry {
		kinds = append(kinds, kind)
	}
	return kinds
}
