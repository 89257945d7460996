package azure

import (
	"context"
	"fmt"
	"net/url"

	"github.com/agentstation/tenantmap/internal/transport"
	"github.com/agentstation/tenantmap/pkg/errors"
	"github.com/agentstation/tenantmap/pkg/paging"
)

// API versions per billing feed. The department and partner
// subscription feeds only exist under their preview versions.
const (
	billingAPIVersion                 = "2020-05-01"
	departmentsAPIVersion             = "2019-10-01-preview"
	departmentSubscriptionsAPIVersion = "2022-10-01-privatepreview"
	partnerSubscriptionsAPIVersion    = "2020-12-15-privatepreview"
)

// BillingClient reads the Microsoft.Billing feeds. Rows are returned as
// decoded JSON objects; the engine's normalizer and policy functions
// own field extraction.
type BillingClient struct {
	caller caller
}

// ListBillingAccounts lists billing accounts visible to the credential.
func (c *BillingClient) ListBillingAccounts(ctx context.Context) ([]any, error) {
	rows, err := c.list(ctx, "/providers/Microsoft.Billing/billingAccounts", billingAPIVersion)
	if err != nil {
		return nil, errors.WrapSource("billing_accounts", "", err)
	}
	return rows, nil
}

// ListDepartments lists departments under an Enterprise Agreement
// billing account. Unlike the other billing feeds this one returns a
// single department per response body, chained through
// properties.nextLink rather than a top-level value/nextLink envelope.
func (c *BillingClient) ListDepartments(ctx context.Context, billingAccountID string) ([]any, error) {
	path := fmt.Sprintf("/providers/Microsoft.Billing/billingAccounts/%s/departments", url.PathEscape(billingAccountID))
	query := url.Values{}
	query.Set("api-version", departmentsAPIVersion)
	initialURL := transport.BuildURL(c.caller.Endpoint(), path, query)

	rows, err := paging.Collect(ctx, initialURL, func(ctx context.Context, cursor string) (paging.Page[any], error) {
		var page map[string]any
		if err := c.caller.GetJSON(ctx, cursor, "", &page); err != nil {
			return paging.Page[any]{}, err
		}
		next := ""
		if properties, ok := page["properties"].(map[string]any); ok {
			if link, ok := properties["nextLink"].(string); ok {
				next = link
			}
		}
		return paging.Page[any]{Items: []any{page}, Next: next}, nil
	})
	if err != nil {
		return nil, errors.WrapSource("departments", billingAccountID, err)
	}
	return rows, nil
}

// ListSubscriptionsByDepartment lists billing subscriptions under one
// department.
func (c *BillingClient) ListSubscriptionsByDepartment(ctx context.Context, billingAccountID, departmentID string) ([]any, error) {
	path := fmt.Sprintf("/providers/Microsoft.Billing/billingAccounts/%s/departments/%s/billingSubscriptions",
		url.PathEscape(billingAccountID), url.PathEscape(departmentID))
	rows, err := c.list(ctx, path, departmentSubscriptionsAPIVersion)
	if err != nil {
		return nil, errors.WrapSource("billing_subscriptions", departmentID, err)
	}
	return rows, nil
}

// ListSubscriptionsByBillingAccount lists billing subscriptions at
// billing-account scope, flattened for partner-agreement reads.
func (c *BillingClient) ListSubscriptionsByBillingAccount(ctx context.Context, billingAccountID string) ([]any, error) {
	path := fmt.Sprintf("/providers/Microsoft.Billing/billingAccounts/%s/billingSubscriptions", url.PathEscape(billingAccountID))
	rows, err := c.list(ctx, path, partnerSubscriptionsAPIVersion)
	if err != nil {
		return nil, errors.WrapSource("billing_subscriptions", billingAccountID, err)
	}
	return flattenPartnerRows(rows), nil
}

// ListSubscriptionsByCustomer lists billing subscriptions for one
// customer of a partner-agreement billing account, flattened the same
// way as the account-scope feed.
func (c *BillingClient) ListSubscriptionsByCustomer(ctx context.Context, billingAccountID, customerID string) ([]any, error) {
	path := fmt.Sprintf("/providers/Microsoft.Billing/billingAccounts/%s/customers/%s/billingSubscriptions",
		url.PathEscape(billingAccountID), url.PathEscape(customerID))
	rows, err := c.list(ctx, path, billingAPIVersion)
	if err != nil {
		return nil, errors.WrapSource("customer_subscriptions", customerID, err)
	}
	return flattenPartnerRows(rows), nil
}

// ListCustomers lists the customers of a partner-agreement billing
// account.
func (c *BillingClient) ListCustomers(ctx context.Context, billingAccountID string) ([]any, error) {
	path := fmt.Sprintf("/providers/Microsoft.Billing/billingAccounts/%s/customers", url.PathEscape(billingAccountID))
	rows, err := c.list(ctx, path, billingAPIVersion)
	if err != nil {
		return nil, errors.WrapSource("customers", billingAccountID, err)
	}
	return rows, nil
}

func (c *BillingClient) list(ctx context.Context, path, apiVersion string) ([]any, error) {
	query := url.Values{}
	query.Set("api-version", apiVersion)
	initialURL := transport.BuildURL(c.caller.Endpoint(), path, query)

	rows, err := collectPages(ctx, c.caller, initialURL, "")
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, row)
	}
	return out, nil
}

// flattenPartnerRows lifts the fields the partner policy reads out of
// each row's properties envelope into flat snake_case keys. Enterprise
// rows are passed through raw instead because their policy reads the
// nested layout directly.
func flattenPartnerRows(rows []any) []any {
	out := make([]any, 0, len(rows))
	for _, raw := range rows {
		row, ok := raw.(map[string]any)
		if !ok {
			out = append(out, raw)
			continue
		}
		properties, ok := row["properties"].(map[string]any)
		if !ok {
			out = append(out, raw)
			continue
		}
		flat := map[string]any{
			"subscription_id":             properties["subscriptionId"],
			"display_name":                properties["displayName"],
			"subscription_billing_status": properties["subscriptionBillingStatus"],
			"customer_id":                 properties["customerId"],
			"customer_display_name":       properties["customerDisplayName"],
		}
		if tags, ok := properties["tags"]; ok {
			flat["tags"] = tags
		}
		out = append(out, flat)
	}
	return out
}
