package client

import (
	"context"
	"net/http"
)

// MyDeliveries returns the deliveries belonging to the current user. The
// server scopes the result to the caller's role: customers see what they
// sent, riders what they carry.
func (c *Client) MyDeliveries(ctx context.Context) ([]Delivery, error) {
	return DoJSON[[]Delivery](ctx, c, http.MethodGet, "/deliveries/mine/", nil)
}
