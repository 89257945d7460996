package azure

import (
	"context"
	"net/url"

	"github.com/agentstation/tenantmap/internal/transport"
	"github.com/agentstation/tenantmap/pkg/accounts"
	"github.com/agentstation/tenantmap/pkg/errors"
	"github.com/agentstation/tenantmap/pkg/paging"
)

const managementGroupsAPIVersion = "2020-05-01"

// ManagementGroupClient reads the management-group entities feed, the
// source of subscription ancestry chains.
type ManagementGroupClient struct {
	caller caller
}

// entitiesResponse is the getEntities page envelope. Continuation is a
// full nextLink URL carrying the next page's $skipToken.
type entitiesResponse struct {
	Value []struct {
		Type       string `json:"type"`
		Name       string `json:"name"`
		Properties struct {
			TenantID               string   `json:"tenantId"`
			DisplayName            string   `json:"displayName"`
			ParentNameChain        []string `json:"parentNameChain"`
			ParentDisplayNameChain []string `json:"parentDisplayNameChain"`
		} `json:"properties"`
	} `json:"value"`
	NextLink string `json:"nextLink"`
}

// ListEntities lists the management-group entities of one tenant. The
// getEntities operation is POST-only; pages chain through nextLink.
func (c *ManagementGroupClient) ListEntities(ctx context.Context, tenantID string) ([]accounts.ManagementGroupEntity, error) {
	entities, err := paging.Collect(ctx, c.initialURL(), func(ctx context.Context, cursor string) (paging.Page[accounts.ManagementGroupEntity], error) {
		var page entitiesResponse
		if err := c.caller.PostJSON(ctx, cursor, tenantID, &page); err != nil {
			return paging.Page[accounts.ManagementGroupEntity]{}, err
		}

		items := make([]accounts.ManagementGroupEntity, 0, len(page.Value))
		for _, row := range page.Value {
			items = append(items, accounts.ManagementGroupEntity{
				Type:                   row.Type,
				Name:                   row.Name,
				TenantID:               row.Properties.TenantID,
				DisplayName:            row.Properties.DisplayName,
				ParentNameChain:        row.Properties.ParentNameChain,
				ParentDisplayNameChain: row.Properties.ParentDisplayNameChain,
			})
		}
		return paging.Page[accounts.ManagementGroupEntity]{Items: items, Next: page.NextLink}, nil
	})
	if err != nil {
		if errors.IsPermissionDenied(err) || errors.IsAuthFailure(err) {
			return nil, err
		}
		return nil, errors.WrapSource("entities", tenantID, err)
	}
	return entities, nil
}

func (c *ManagementGroupClient) initialURL() string {
	query := url.Values{}
	query.Set("api-version", managementGroupsAPIVersion)
	return transport.BuildURL(c.caller.Endpoint(), "/providers/Microsoft.Management/getEntities", query)
}
