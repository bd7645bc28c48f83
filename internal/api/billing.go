package api

import "context"

// BillingClient queries finalized bills and their order breakdowns.
type BillingClient struct {
	base *Client
}

// NewBillingClient returns client.
func NewBillingClient(base *Client) *BillingClient {
	return &BillingClient{base: base}
}

// QueryBill fetches the bills for a given date. Ordering is decided by
// the service and preserved as returned.
func (c *BillingClient) QueryBill(ctx context.Context, date string) ([]Bill, error) {
	raw, err := c.base.Post(ctx, "/user/query_bill", map[string]string{
		"date": date,
	})
	if err != nil {
		return nil, err
	}
	var bills []Bill
	if err := decode(raw, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

// QueryOrderDetail fetches the order lines behind a bill, in service
// order.
func (c *BillingClient) QueryOrderDetail(ctx context.Context, billID string) ([]OrderDetail, error) {
	raw, err := c.base.Post(ctx, "/user/query_order_detail", map[string]string{
		"bill_id": billID,
	})
	if err != nil {
		return nil, err
	}
	var orders []OrderDetail
	if err := decode(raw, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
