package agreements

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tenantmap/pkg/accounts"
	tmerrors "github.com/agentstation/tenantmap/pkg/errors"
)

func TestFor(t *testing.T) {
	t.Parallel()

	for _, kind := range accounts.AgreementKinds() {
		strategy, err := For(kind)
		require.NoError(t, err, "kind %s", kind)
		assert.Equal(t, kind, strategy.Kind())
	}

	_, err := For(accounts.AgreementKind("MicrosoftCustomerAgreement"))
	require.Error(t, err)
	assert.True(t, tmerrors.IsContractViolation(err))
}

func TestHas(t *testing.T) {
	t.Parallel()

	assert.True(t, Has(accounts.AgreementEnterprise))
	assert.True(t, Has(accounts.AgreementPartner))
	assert.True(t, Has(accounts.AgreementUnknown))
	assert.False(t, Has(accounts.AgreementKind("MicrosoftCustomerAgreement")))
}

func TestKinds(t *testing.T) {
	t.Parallel()

	assert.ElementsMatch(t, accounts.AgreementKinds(), Kinds())
}

func TestEnterpriseCandidates(t *testing.T) {
	t.Parallel()

	billing := &fakeBilling{
		departments: map[string][]any{
			"ba-1": {
				map[string]any{
					"name":       "dept-100",
					"properties": map[string]any{"departmentName": "Engineering"},
				},
				map[string]any{
					"name":       "dept-200",
					"properties": map[string]any{"departmentName": "Finance"},
				},
			},
		},
		byDepartment: map[string][]any{
			"dept-100": {
				enterpriseRow("AAAA-1111", "Prod", "Active"),
				enterpriseRow("BBBB-2222", "Old", "Inactive"),
				map[string]any{"name": "not-a-subscription"},
			},
			"dept-200": {
				enterpriseRow("CCCC-3333", "Billing", "Active"),
			},
		},
	}

	secret := accounts.SecretData{TenantID: "home-tenant"}
	strategy := &Enterprise{}

	candidates, err := strategy.Candidates(context.Background(), accounts.DefaultOptions(), testClients(billing, nil), secret, "ba-1")
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	prod := candidates[0]
	assert.Equal(t, "aaaa-1111", prod.SubscriptionID)
	assert.Equal(t, "home-tenant", prod.TenantID)
	assert.Equal(t, "Prod", prod.DisplayName)
	assert.Equal(t, "Active", prod.Status)
	assert.Empty(t, prod.FallbackSecretSchema)
	require.Len(t, prod.BillingLocation, 2)
	assert.Equal(t, accounts.LocationNode{Name: "Engineering", ResourceID: "dept-100"}, prod.BillingLocation[0])
	assert.Equal(t, accounts.LocationNode{Name: "Enrollment Prod", ResourceID: "ea-AAAA-1111"}, prod.BillingLocation[1])

	assert.Equal(t, "cccc-3333", candidates[1].SubscriptionID)
	assert.Equal(t, "Finance", candidates[1].BillingLocation[0].Name)
}

func TestEnterpriseCandidatesExcludeEnrollmentAccount(t *testing.T) {
	t.Parallel()

	billing := &fakeBilling{
		departments: map[string][]any{
			"ba-1": {
				map[string]any{
					"name":       "dept-100",
					"properties": map[string]any{"departmentName": "Engineering"},
				},
			},
		},
		byDepartment: map[string][]any{
			"dept-100": {enterpriseRow("AAAA-1111", "Prod", "Active")},
		},
	}

	opts := accounts.DefaultOptions()
	opts.ExcludeEnrollmentAccount = true

	strategy := &Enterprise{}
	candidates, err := strategy.Candidates(context.Background(), opts, testClients(billing, nil), accounts.SecretData{TenantID: "home-tenant"}, "ba-1")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	require.Len(t, candidates[0].BillingLocation, 1)
	assert.Equal(t, "Engineering", candidates[0].BillingLocation[0].Name)
}

func TestEnterpriseCandidatesFeedFailure(t *testing.T) {
	t.Parallel()

	billing := &fakeBilling{err: errors.New("throttled")}
	strategy := &Enterprise{}

	_, err := strategy.Candidates(context.Background(), accounts.DefaultOptions(), testClients(billing, nil), accounts.SecretData{}, "ba-1")
	require.Error(t, err)
	assert.False(t, tmerrors.IsContractViolation(err))
	assert.ErrorContains(t, err, "throttled")
}

func TestPartnerCandidates(t *testing.T) {
	t.Parallel()

	billing := &fakeBilling{
		byAccount: map[string][]any{
			"ba-mpa": {
				partnerRow("AAAA-1111", "/billingAccounts/ba-mpa/customers/cust-1", "  Contoso  ", "Active"),
				partnerRow("BBBB-2222", "/billingAccounts/ba-mpa/customers/cust-2", "", "Active"),
				partnerRow("CCCC-3333", "/billingAccounts/ba-mpa/customers/cust-1", "Contoso", "Deleted"),
			},
		},
	}

	strategy := &Partner{}
	candidates, err := strategy.Candidates(context.Background(), accounts.DefaultOptions(), testClients(billing, nil), accounts.SecretData{TenantID: "partner-tenant"}, "ba-mpa")
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	first := candidates[0]
	assert.Equal(t, "aaaa-1111", first.SubscriptionID)
	assert.Equal(t, "cust-1", first.TenantID, "tenant derives from the customer id, not the credential")
	require.Len(t, first.BillingLocation, 1)
	assert.Equal(t, accounts.LocationNode{Name: "Contoso", ResourceID: "cust-1"}, first.BillingLocation[0])

	second := candidates[1]
	assert.Equal(t, "cust-2", second.TenantID)
	assert.Empty(t, second.BillingLocation, "no customer node without a display name")
}

func TestPartnerCandidatesSyncCustomers(t *testing.T) {
	t.Parallel()

	billing := &fakeBilling{
		byAccount: map[string][]any{
			"ba-mpa": {partnerRow("ZZZZ-9999", "/billingAccounts/ba-mpa/customers/cust-9", "Ignored", "Active")},
		},
		byCustomer: map[string][]any{
			"cust-1": {partnerRow("AAAA-1111", "/billingAccounts/ba-mpa/customers/cust-1", "Contoso", "Active")},
			"cust-2": {partnerRow("BBBB-2222", "/billingAccounts/ba-mpa/customers/cust-2", "Fabrikam", "Active")},
		},
	}

	opts := accounts.DefaultOptions()
	opts.SyncCustomers = []string{"cust-1", "cust-2"}

	strategy := &Partner{}
	candidates, err := strategy.Candidates(context.Background(), opts, testClients(billing, nil), accounts.SecretData{}, "ba-mpa")
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "aaaa-1111", candidates[0].SubscriptionID)
	assert.Equal(t, "bbbb-2222", candidates[1].SubscriptionID)
}

func TestPartnerCandidatesCustomerFeedFailure(t *testing.T) {
	t.Parallel()

	billing := &fakeBilling{err: errors.New("backend unavailable")}
	opts := accounts.DefaultOptions()
	opts.SyncCustomers = []string{"cust-1"}

	strategy := &Partner{}
	_, err := strategy.Candidates(context.Background(), opts, testClients(billing, nil), accounts.SecretData{}, "ba-mpa")
	require.Error(t, err)
	assert.ErrorContains(t, err, "backend unavailable")
}

func TestUnknownCandidates(t *testing.T) {
	t.Parallel()

	subscriptions := &fakeSubscriptions{
		tenants: []accounts.Tenant{
			{TenantID: "tenant-a", DisplayName: "Tenant A"},
			{TenantID: "tenant-b"},
		},
		byTenant: map[string][]any{
			"tenant-a": {
				providerRow("AAAA-1111", "Prod", "Enabled"),
				providerRow("BBBB-2222", "Gone", "Disabled"),
			},
			"tenant-b": {
				providerRow("CCCC-3333", "Sandbox", "Enabled"),
			},
		},
	}

	strategy := &Unknown{}
	candidates, err := strategy.Candidates(context.Background(), accounts.DefaultOptions(), testClients(nil, subscriptions), accounts.SecretData{}, "")
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	first := candidates[0]
	assert.Equal(t, "aaaa-1111", first.SubscriptionID)
	assert.Equal(t, "tenant-a", first.TenantID)
	assert.Equal(t, accounts.SecretSchemaSubscriptionID, first.FallbackSecretSchema)
	assert.Equal(t, map[string]string{"env": "prod"}, first.Tags)
	require.Len(t, first.BillingLocation, 1)
	assert.Equal(t, accounts.LocationNode{Name: "Tenant A", ResourceID: "tenant-a"}, first.BillingLocation[0])

	second := candidates[1]
	assert.Equal(t, "tenant-b", second.TenantID)
	assert.Equal(t, "Home", second.BillingLocation[0].Name, "nameless tenant falls back to Home")
}

func TestUnknownCandidatesNarrowsToSecretSubscription(t *testing.T) {
	t.Parallel()

	subscriptions := &fakeSubscriptions{
		tenants: []accounts.Tenant{
			{TenantID: "tenant-a", DisplayName: "Tenant A"},
			{TenantID: "tenant-b", DisplayName: "Tenant B"},
		},
		byTenant: map[string][]any{
			"tenant-a": {
				providerRow("AAAA-1111", "Prod", "Enabled"),
				providerRow("BBBB-2222", "Dev", "Enabled"),
			},
			"tenant-b": {
				providerRow("CCCC-3333", "Sandbox", "Enabled"),
			},
		},
	}

	secret := accounts.SecretData{SubscriptionID: "BBBB-2222"}
	strategy := &Unknown{}
	candidates, err := strategy.Candidates(context.Background(), accounts.DefaultOptions(), testClients(nil, subscriptions), secret, "")
	require.NoError(t, err)
	require.Len(t, candidates, 1,
		"a pinned subscription id narrows enumeration to that subscription")
	assert.Equal(t, "bbbb-2222", candidates[0].SubscriptionID)
	assert.Equal(t, "tenant-a", candidates[0].TenantID)
}

func TestUnknownCandidatesSkipsFailingTenant(t *testing.T) {
	t.Parallel()

	subscriptions := &fakeSubscriptions{
		tenants: []accounts.Tenant{
			{TenantID: "tenant-a", DisplayName: "Tenant A"},
			{TenantID: "tenant-forbidden", DisplayName: "No Access"},
		},
		byTenant: map[string][]any{
			"tenant-a": {providerRow("AAAA-1111", "Prod", "Enabled")},
		},
		listErr: map[string]error{
			"tenant-forbidden": errors.New("authorization failed"),
		},
	}

	strategy := &Unknown{}
	candidates, err := strategy.Candidates(context.Background(), accounts.DefaultOptions(), testClients(nil, subscriptions), accounts.SecretData{}, "")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "aaaa-1111", candidates[0].SubscriptionID)
}
