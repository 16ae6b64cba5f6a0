package upstream

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kebelehub/rfm-ui-api/internal/listing"
)

// FetchList loads the full collection for a resource screen via
// GET <resource>/list. The items key varies per resource ("residents",
// "reports", ...), so the first array value in the envelope is taken.
func (c *Client) FetchList(ctx context.Context, resource string) ([]listing.Row, error) {
	data, err := c.getJSON(ctx, "/"+resource+"/list")
	if err != nil {
		return nil, err
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("decode %s list: %w", resource, err)
	}

	if raw, ok := body["success"]; ok {
		var success bool
		if err := json.Unmarshal(raw, &success); err == nil && !success {
			return nil, fmt.Errorf("%s list rejected by upstream", resource)
		}
	}

	for key, raw := range body {
		if key == "success" || key == "message" {
			continue
		}
		var rows []listing.Row
		if err := json.Unmarshal(raw, &rows); err != nil {
			continue // not the items array
		}
		return rows, nil
	}

	return nil, fmt.Errorf("%s list: no items array in response", resource)
}

// ListFetcher binds a resource name into the fetcher shape the list
// controller consumes.
func (c *Client) ListFetcher(resource string) listing.Fetcher {
	return func(ctx context.Context) ([]listing.Row, error) {
		return c.FetchList(ctx, resource)
	}
}
