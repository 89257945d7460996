package integration

import (
	"context"
	"testing"

	"github.com/agentstation/tenantmap"
	"github.com/agentstation/tenantmap/pkg/accounts"
	"github.com/agentstation/tenantmap/pkg/errors"
)

// Fakes for a full pass through the public API: billing feeds,
// identity-side subscription feeds, and the management-group hierarchy.

type fakeBilling struct {
	accounts     []any
	departments  map[string][]any
	byDepartment map[string][]any
}

func (f *fakeBilling) ListBillingAccounts(context.Context) ([]any, error) {
	return f.accounts, nil
}

func (f *fakeBilling) ListDepartments(_ context.Context, billingAccountID string) ([]any, error) {
	return f.departments[billingAccountID], nil
}

func (f *fakeBilling) ListSubscriptionsByDepartment(_ context.Context, _, departmentID string) ([]any, error) {
	return f.byDepartment[departmentID], nil
}

func (f *fakeBilling) ListSubscriptionsByBillingAccount(context.Context, string) ([]any, error) {
	return nil, nil
}

func (f *fakeBilling) ListSubscriptionsByCustomer(context.Context, string, string) ([]any, error) {
	return nil, nil
}

func (f *fakeBilling) ListCustomers(context.Context, string) ([]any, error) {
	return nil, nil
}

type fakeSubscriptions struct {
	tenants  []accounts.Tenant
	byTenant map[string][]any
	objects  map[string]any
}

func (f *fakeSubscriptions) ListTenants(context.Context) ([]accounts.Tenant, error) {
	return f.tenants, nil
}

func (f *fakeSubscriptions) ListSubscriptions(_ context.Context, tenantID string) ([]any, error) {
	return f.byTenant[tenantID], nil
}

func (f *fakeSubscriptions) GetSubscription(_ context.Context, subscriptionID, _ string) (any, error) {
	obj, ok := f.objects[subscriptionID]
	if !ok {
		return nil, errors.NewPermissionError("subscription", "", 403, nil)
	}
	return obj, nil
}

type fakeManagementGroups struct {
	entities map[string][]accounts.ManagementGroupEntity
}

func (f *fakeManagementGroups) ListEntities(_ context.Context, tenantID string) ([]accounts.ManagementGroupEntity, error) {
	return f.entities[tenantID], nil
}

func testFactory(clients accounts.Clients) accounts.ClientFactory {
	return func(accounts.SecretData) (accounts.Clients, error) {
		return clients, nil
	}
}

var testSecret = accounts.SecretData{
	TenantID:     "home-tenant",
	ClientID:     "client-1",
	ClientSecret: "s3cret",
}

func TestSyncEnterpriseAgreement(t *testing.T) {
	clients := accounts.Clients{
		Billing: &fakeBilling{
			accounts: []any{map[string]any{
				"name":       "1234567",
				"properties": map[string]any{"agreementType": "EnterpriseAgreement"},
			}},
			departments: map[string][]any{
				"1234567": {map[string]any{
					"name":       "dept-1",
					"properties": map[string]any{"departmentName": "Engineering"},
				}},
			},
			byDepartment: map[string][]any{
				"dept-1": {map[string]any{
					"properties": map[string]any{
						"subscriptionId": "SUB-1",
						"displayName":    "Platform",
						"enrollmentAccountSubscriptionDetails": map[string]any{
							"subscriptionEnrollmentAccountStatus": "Active",
						},
						"enrollmentAccountDisplayName": "Enrollment Prod",
						"enrollmentAccountId":          "ea-1",
					},
				}},
			},
		},
		Subscription: &fakeSubscriptions{
			objects: map[string]any{
				"sub-1": map[string]any{
					"subscriptionId": "sub-1",
					"tags":           map[string]any{"env": "prod"},
				},
			},
		},
		ManagementGroups: &fakeManagementGroups{},
	}

	tm, err := tenantmap.New(tenantmap.WithClientFactory(testFactory(clients)))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	result, err := tm.Sync(context.Background(), accounts.DefaultOptions(), testSecret)
	if err != nil {
		t.Fatalf("Sync() failed: %v", err)
	}

	if result.BillingAccounts != 1 {
		t.Errorf("BillingAccounts = %d, want 1", result.BillingAccounts)
	}
	if len(result.Records) != 1 {
		t.Fatalf("Records = %d, want 1", len(result.Records))
	}

	record := result.Records[0]
	if record.Data.SubscriptionID != "sub-1" {
		t.Errorf("subscription id = %q, want sub-1", record.Data.SubscriptionID)
	}
	if record.Name != "Platform" {
		t.Errorf("name = %q, want Platform", record.Name)
	}
	if record.SecretSchemaID != accounts.SecretSchemaMultiTenant {
		t.Errorf("secret schema = %q, want %q", record.SecretSchemaID, accounts.SecretSchemaMultiTenant)
	}
	if record.SecretData["client_secret"] != "s3cret" {
		t.Error("secret data missing client secret")
	}
	if record.Tags["env"] != "prod" {
		t.Errorf("tags = %v, want env=prod from direct lookup", record.Tags)
	}
	if len(record.Location) != 2 {
		t.Fatalf("location chain = %v, want department and enrollment nodes", record.Location)
	}
	if record.Location[0].Name != "Engineering" {
		t.Errorf("first location node = %q, want Engineering", record.Location[0].Name)
	}
}

func TestSyncTenantEnumerationFallback(t *testing.T) {
	clients := accounts.Clients{
		Billing: &fakeBilling{},
		Subscription: &fakeSubscriptions{
			tenants: []accounts.Tenant{{TenantID: "tenant-a", DisplayName: "Contoso"}},
			byTenant: map[string][]any{
				"tenant-a": {map[string]any{
					"subscription_id": "sub-9",
					"display_name":    "Sandbox",
					"state":           "Enabled",
				}},
			},
		},
		ManagementGroups: &fakeManagementGroups{},
	}

	tm, err := tenantmap.New(tenantmap.WithClientFactory(testFactory(clients)))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	result, err := tm.Sync(context.Background(), accounts.DefaultOptions(), testSecret)
	if err != nil {
		t.Fatalf("Sync() failed: %v", err)
	}

	if result.BillingAccounts != 0 {
		t.Errorf("BillingAccounts = %d, want 0", result.BillingAccounts)
	}
	if len(result.Records) != 1 {
		t.Fatalf("Records = %d, want 1", len(result.Records))
	}

	record := result.Records[0]
	if record.Data.SubscriptionID != "sub-9" {
		t.Errorf("subscription id = %q, want sub-9", record.Data.SubscriptionID)
	}
	if record.SecretSchemaID != accounts.SecretSchemaSubscriptionID {
		t.Errorf("secret schema = %q, want %q", record.SecretSchemaID, accounts.SecretSchemaSubscriptionID)
	}
}
