package accounts

// Options are the caller-supplied sync options recognized by the plugin.
type Options struct {
	// ExcludeRootManagementGroup drops the tenant root group (index 0 of
	// the ancestor chains) from every location chain.
	ExcludeRootManagementGroup bool `json:"exclude_root_management_group"`

	// ExcludeEnrollmentAccount suppresses the enrollment-account location
	// fragment for Enterprise Agreement subscriptions.
	ExcludeEnrollmentAccount bool `json:"exclude_enrollment_account"`

	// SyncCustomers limits partner-agreement discovery to the listed
	// customer ids. Empty means sync all customers.
	SyncCustomers []string `json:"sync_customers"`
}

// DefaultOptions returns the option defaults.
func DefaultOptions() Options {
	return Options{
		ExcludeRootManagementGroup: true,
	}
}

// ParseOptions builds Options from the raw option mapping of a plugin
// request. Unknown keys are ignored; defaults apply to absent keys.
func ParseOptions(raw map[string]any) Options {
	opts := DefaultOptions()
	if raw == nil {
		return opts
	}
	if v, ok := raw["exclude_root_management_group"].(bool); ok {
		opts.ExcludeRootManagementGroup = v
	}
	if v, ok := raw["exclude_enrollment_account"].(bool); ok {
		opts.ExcludeEnrollmentAccount = v
	}
	switch v := raw["sync_customers"].(type) {
	case []string:
		opts.SyncCustomers = v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				opts.SyncCustomers = append(opts.SyncCustomers, s)
			}
		}
	}
	return opts
}

// OptionsSchema returns the JSON-Schema description of the recognized
// options, served from the plugin init call.
func OptionsSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"exclude_root_management_group": map[string]any{
				"title":   "Exclude Root Management Group",
				"type":    "boolean",
				"default": true,
			},
			"exclude_enrollment_account": map[string]any{
				"title":   "Exclude Enrollment Account",
				"type":    "boolean",
				"default": false,
			},
			"sync_customers": map[string]any{
				"title": "Sync Customers",
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
	}
}
