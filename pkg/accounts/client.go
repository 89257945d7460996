package accounts

import "context"

// BillingClient lists billing-side feeds for the credentials it was
// constructed with. Implementations own all network, auth, retry, and
// pagination concerns; each method returns the complete, finite feed.
// Feed rows are raw provider objects (decoded JSON) that callers pass
// through the normalizer before reading fields.
type BillingClient interface {
	// ListBillingAccounts lists billing accounts visible to the caller.
	// Zero visible accounts is a normal outcome, not an error.
	ListBillingAccounts(ctx context.Context) ([]any, error)

	// ListDepartments lists departments under an Enterprise Agreement
	// billing account.
	ListDepartments(ctx context.Context, billingAccountID string) ([]any, error)

	// ListSubscriptionsByDepartment lists billing subscriptions under one
	// department of an Enterprise Agreement billing account.
	ListSubscriptionsByDepartment(ctx context.Context, billingAccountID, departmentID string) ([]any, error)

	// ListSubscriptionsByBillingAccount lists billing subscriptions at
	// billing-account scope.
	ListSubscriptionsByBillingAccount(ctx context.Context, billingAccountID string) ([]any, error)

	// ListSubscriptionsByCustomer lists billing subscriptions for one
	// customer of a partner-agreement billing account.
	ListSubscriptionsByCustomer(ctx context.Context, billingAccountID, customerID string) ([]any, error)

	// ListCustomers lists the customers of a partner-agreement billing
	// account.
	ListCustomers(ctx context.Context, billingAccountID string) ([]any, error)
}

// SubscriptionClient exposes the identity-side subscription feeds.
type SubscriptionClient interface {
	// ListTenants enumerates tenants visible to the credentials.
	ListTenants(ctx context.Context) ([]Tenant, error)

	// ListSubscriptions enumerates subscriptions in one tenant. An empty
	// tenant id means the credential's home tenant.
	ListSubscriptions(ctx context.Context, tenantID string) ([]any, error)

	// GetSubscription fetches a single subscription directly, scoped to
	// the given tenant. A forbidden or unauthorized response is returned
	// as a permission-class error; callers treat it as "access not
	// verified", never as a sync failure.
	GetSubscription(ctx context.Context, subscriptionID, tenantID string) (any, error)
}

// ManagementGroupClient exposes the management-group hierarchy feed.
type ManagementGroupClient interface {
	// ListEntities lists the management-group entities of one tenant.
	ListEntities(ctx context.Context, tenantID string) ([]ManagementGroupEntity, error)
}

// Clients bundles the collaborator clients a sync run needs.
type Clients struct {
	Billing          BillingClient
	Subscription     SubscriptionClient
	ManagementGroups ManagementGroupClient
}

// ClientFactory constructs collaborator clients for a set of
// credentials. Credentials are passed as a value; implementations must
// not stash them in process-wide state.
type ClientFactory func(secret SecretData) (Clients, error)
