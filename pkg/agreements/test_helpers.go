package agreements

import (
	"context"

	"github.com/agentstation/tenantmap/pkg/accounts"
)

// Fakes shared by the strategy tests. Feeds are keyed the way the real
// clients scope them; a nil entry means "feed returns nothing".

type fakeBilling struct {
	accounts     []any
	departments  map[string][]any // billing account id -> rows
	byDepartment map[string][]any // department id -> rows
	byAccount    map[string][]any // billing account id -> rows
	byCustomer   map[string][]any // customer id -> rows
	customers    map[string][]any // billing account id -> rows
	err          error
}

func (f *fakeBilling) ListBillingAccounts(context.Context) ([]any, error) {
	return f.accounts, f.err
}

func (f *fakeBilling) ListDepartments(_ context.Context, billingAccountID string) ([]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.departments[billingAccountID], nil
}

func (f *fakeBilling) ListSubscriptionsByDepartment(_ context.Context, _, departmentID string) ([]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byDepartment[departmentID], nil
}

func (f *fakeBilling) ListSubscriptionsByBillingAccount(_ context.Context, billingAccountID string) ([]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byAccount[billingAccountID], nil
}

func (f *fakeBilling) ListSubscriptionsByCustomer(_ context.Context, _, customerID string) ([]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byCustomer[customerID], nil
}

func (f *fakeBilling) ListCustomers(_ context.Context, billingAccountID string) ([]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.customers[billingAccountID], nil
}

type fakeSubscriptions struct {
	tenants  []accounts.Tenant
	byTenant map[string][]any
	listErr  map[string]error
}

func (f *fakeSubscriptions) ListTenants(context.Context) ([]accounts.Tenant, error) {
	return f.tenants, nil
}

func (f *fakeSubscriptions) ListSubscriptions(_ context.Context, tenantID string) ([]any, error) {
	if err := f.listErr[tenantID]; err != nil {
		return nil, err
	}
	return f.byTenant[tenantID], nil
}

func (f *fakeSubscriptions) GetSubscription(context.Context, string, string) (any, error) {
	return nil, nil
}

func testClients(billing *fakeBilling, subscriptions *fakeSubscriptions) accounts.Clients {
	if billing == nil {
		billing = &fakeBilling{}
	}
	if subscriptions == nil {
		subscriptions = &fakeSubscriptions{}
	}
	return accounts.Clients{
		Billing:      billing,
		Subscription: subscriptions,
	}
}

func enterpriseRow(subscriptionID, name, status string) map[string]any {
	return map[string]any{
		"name": "billing-row",
		"properties": map[string]any{
			"subscriptionId": subscriptionID,
			"displayName":    name,
			"enrollmentAccountSubscriptionDetails": map[string]any{
				"subscriptionEnrollmentAccountStatus": status,
			},
			"enrollmentAccountDisplayName": "Enrollment " + name,
			"enrollmentAccountId":          "ea-" + subscriptionID,
		},
	}
}

func partnerRow(subscriptionID, customerID, customerName, status string) map[string]any {
	return map[string]any{
		"subscription_id":             subscriptionID,
		"display_name":                "Sub " + subscriptionID,
		"subscription_billing_status": status,
		"customer_id":                 customerID,
		"customer_display_name":       customerName,
	}
}

func providerRow(subscriptionID, name, state string) map[string]any {
	return map[string]any{
		"subscription_id": subscriptionID,
		"display_name":    name,
		"state":           state,
		"tags":            map[string]any{"env": "prod"},
	}
}
