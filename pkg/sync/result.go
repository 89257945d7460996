package sync

import (
	"fmt"

	"github.com/agentstation/tenantmap/pkg/accounts"
)

// Result represents the complete result of a sync run.
type Result struct {
	// RunID identifies one run across its log lines.
	RunID string

	// Records are the final account records, at most one per
	// subscription id. Ordering is not stable across runs.
	Records []accounts.AccountRecord

	// BillingAccounts is the number of billing accounts enumerated;
	// zero means the identity-side fallback ran.
	BillingAccounts int

	// Skipped lists billing accounts whose feed could not be read. Their
	// subscriptions are absent from Records but the run still succeeded.
	Skipped []SkippedAccount
}

// SkippedAccount records one billing account dropped from a run.
type SkippedAccount struct {
	BillingAccountID string
	Kind             accounts.AgreementKind
	Err              error
}

// VerifiedCount returns how many records carry an injected secret
// schema.
func (r *Result) VerifiedCount() int {
	n := 0
	for _, record := range r.Records {
		if record.SecretSchemaID != "" {
			n++
		}
	}
	return n
}

// Summary returns a human-readable summary of the sync result.
func (r *Result) Summary() string {
	if r.BillingAccounts == 0 {
		return fmt.Sprintf("%d subscriptions discovered via tenant enumeration (no billing accounts visible)", len(r.Records))
	}

	summary := fmt.Sprintf("%d subscriptions across %d billing accounts, %d verified for credential injection",
		len(r.Records), r.BillingAccounts, r.VerifiedCount())
	if len(r.Skipped) > 0 {
		summary += fmt.Sprintf(" (%d billing accounts skipped)", len(r.Skipped))
	}
	return summary
}
