package api

import "context"

// AdminClient covers the admin-scoped endpoints. Payload shapes of the
// query endpoints are owned by the service and passed through for
// display.
type AdminClient struct {
	base *Client
}

// NewAdminClient returns client.
func NewAdminClient(base *Client) *AdminClient {
	return &AdminClient{base: base}
}

// QueryAllPilesStat fetches per-pile statistics.
func (c *AdminClient) QueryAllPilesStat(ctx context.Context) (map[string]any, error) {
	raw, err := c.base.Get(ctx, "/admin/query_all_piles_stat")
	if err != nil {
		return nil, err
	}
	var stat map[string]any
	if err := decode(raw, &stat); err != nil {
		return nil, err
	}
	return stat, nil
}

// QueryReport fetches the operating report rows.
func (c *AdminClient) QueryReport(ctx context.Context) ([]map[string]any, error) {
	raw, err := c.base.Get(ctx, "/admin/query_report")
	if err != nil {
		return nil, err
	}
	var rows []map[string]any
	if err := decode(raw, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// QueryQueue fetches the waiting vehicles overview.
func (c *AdminClient) QueryQueue(ctx context.Context) ([]map[string]any, error) {
	raw, err := c.base.Get(ctx, "/admin/query_queue")
	if err != nil {
		return nil, err
	}
	var rows []map[string]any
	if err := decode(raw, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdatePile switches a charging pile's status.
func (c *AdminClient) UpdatePile(ctx context.Context, pileID, status string) error {
	_, err := c.base.Post(ctx, "/admin/update_pile", map[string]string{
		"pile_id": pileID,
		"status":  status,
	})
	return err
}
