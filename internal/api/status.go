package api

import "context"

// StatusClient reads the live queue/charging view the poller consumes.
type StatusClient struct {
	base *Client
}

// NewStatusClient returns client.
func NewStatusClient(base *Client) *StatusClient {
	return &StatusClient{base: base}
}

// PreviewQueue fetches the current queue/charging snapshot.
func (c *StatusClient) PreviewQueue(ctx context.Context) (QueueStatus, error) {
	raw, err := c.base.Get(ctx, "/user/preview_queue")
	if err != nil {
		return QueueStatus{}, err
	}
	var status QueueStatus
	if err := decode(raw, &status); err != nil {
		return QueueStatus{}, err
	}
	return status, nil
}

// ServerTime fetches the service clock.
func (c *StatusClient) ServerTime(ctx context.Context) (ServerTime, error) {
	raw, err := c.base.Get(ctx, "/time")
	if err != nil {
		return ServerTime{}, err
	}
	var now ServerTime
	if err := decode(raw, &now); err != nil {
		return ServerTime{}, err
	}
	return now, nil
}
