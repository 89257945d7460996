// Package accounts defines the domain types for Azure subscription
// discovery: the canonical account record emitted per subscription, the
// intermediate candidate produced by agreement strategies, the
// management-group hierarchy entities, and the collaborator interfaces
// the sync engine talks to.
package accounts

// Secret schema identifiers attached to emitted records.
const (
	// SecretSchemaMultiTenant is attached when a direct per-subscription
	// lookup succeeded and single-subscription credentials may be issued.
	SecretSchemaMultiTenant = "azure-secret-multi-tenant"

	// SecretSchemaSubscriptionID is attached to records discovered purely
	// from the hierarchy feed, carrying only the subscription id.
	SecretSchemaSubscriptionID = "azure-secret-subscription-id"
)

// LocationNode is one ancestor entry in a subscription's location chain.
type LocationNode struct {
	Name       string `json:"name"`
	ResourceID string `json:"resource_id"`
}

// LocationChain is an ordered list of ancestor nodes describing where a
// subscription sits in organizational hierarchy, highest level first.
type LocationChain []LocationNode

// Clone returns a copy of the chain.
func (c LocationChain) Clone() LocationChain {
	if c == nil {
		return nil
	}
	out := make(LocationChain, len(c))
	copy(out, c)
	return out
}

// AccountData is the data payload of an emitted account record.
type AccountData struct {
	SubscriptionID string `json:"subscription_id"`
	TenantID       string `json:"tenant_id,omitempty"`
}

// AccountRecord is the canonical output unit: one record per discovered
// subscription.
type AccountRecord struct {
	Name           string            `json:"name"`
	Data           AccountData       `json:"data"`
	ResourceID     string            `json:"resource_id"`
	Tags           map[string]string `json:"tags,omitempty"`
	Location       LocationChain     `json:"location,omitempty"`
	SecretSchemaID string            `json:"secret_schema_id,omitempty"`
	SecretData     map[string]string `json:"secret_data,omitempty"`
}

// SecretData holds the service principal credentials a sync call runs
// with. Credentials are passed as values into collaborator constructors;
// nothing writes them into process-wide state.
type SecretData struct {
	TenantID       string `json:"tenant_id"`
	ClientID       string `json:"client_id"`
	ClientSecret   string `json:"client_secret"`
	SubscriptionID string `json:"subscription_id,omitempty"`
}

// Validate checks the minimally required credential fields.
func (s SecretData) Validate() error {
	if s.TenantID == "" {
		return missingSecretField("tenant_id")
	}
	if s.ClientID == "" {
		return missingSecretField("client_id")
	}
	if s.ClientSecret == "" {
		return missingSecretField("client_secret")
	}
	return nil
}

// Tenant is one entry from the tenant enumeration feed.
type Tenant struct {
	TenantID    string `json:"tenant_id"`
	DisplayName string `json:"display_name,omitempty"`
}

// ManagementGroupEntity is one node from a tenant's management-group
// hierarchy feed. Only nodes of type "/subscriptions" matter further;
// for those, Name carries the subscription id. The two parent chains are
// parallel, root-first; consumers must truncate to the shorter length if
// the source violates that alignment.
type ManagementGroupEntity struct {
	Type                   string   `json:"type"`
	Name                   string   `json:"name"`
	TenantID               string   `json:"tenant_id"`
	DisplayName            string   `json:"display_name"`
	ParentNameChain        []string `json:"parent_name_chain"`
	ParentDisplayNameChain []string `json:"parent_display_name_chain"`
}

// IsSubscription reports whether the entity is a subscription node.
func (e ManagementGroupEntity) IsSubscription() bool {
	return e.Type == "/subscriptions"
}
