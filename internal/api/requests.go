package api

import "context"

// RequestClient manages the user's charging request lifecycle.
type RequestClient struct {
	base *Client
}

// NewRequestClient returns client.
func NewRequestClient(base *Client) *RequestClient {
	return &RequestClient{base: base}
}

// Submit files a new charging request.
func (c *RequestClient) Submit(ctx context.Context, mode ChargeMode, amount, batterySize string) error {
	_, err := c.base.Post(ctx, "/user/submit_charging_request", map[string]string{
		"charge_mode":    string(mode),
		"require_amount": amount,
		"battery_size":   batterySize,
	})
	return err
}

// Edit changes mode or amount of the pending request. The service
// decides whether the request is still editable; its rejection message
// passes through untouched.
func (c *RequestClient) Edit(ctx context.Context, mode ChargeMode, amount string) error {
	_, err := c.base.Post(ctx, "/user/edit_charging_request", map[string]string{
		"charge_mode":    string(mode),
		"require_amount": amount,
	})
	return err
}

// End terminates the active request. Not idempotent: ending without an
// active request surfaces whatever error the service returns.
func (c *RequestClient) End(ctx context.Context) error {
	_, err := c.base.Get(ctx, "/user/end_charging_request")
	return err
}
