package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/agentstation/tenantmap/pkg/errors"
)

// BuildURL joins the Resource Manager endpoint with a resource path and
// query parameters. The api-version parameter differs per feed, so each
// feed client supplies its own.
func BuildURL(endpoint, path string, query url.Values) string {
	u := strings.TrimRight(endpoint, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// DecodeResponse decodes a JSON response into target, mapping error
// statuses onto the failure taxonomy: unauthorized, forbidden, and
// not-found become permission-class errors that degrade a single
// enrichment; everything else becomes an API error, transient when the
// status says so.
func DecodeResponse(resp *http.Response, endpoint, tenantID string, target any) error {
	defer resp.Body.Close() //nolint:errcheck // read side already consumed

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", endpoint, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return errors.NewPermissionError(endpoint, tenantID, resp.StatusCode, nil)
	default:
		return errors.NewAPIError(endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", endpoint, err)
	}
	return nil
}
