package client

import (
	"context"
	"fmt"
	"net/http"
)

// Notifications returns the current user's notifications, newest first.
func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	return DoJSON[[]Notification](ctx, c, http.MethodGet, "/notifications/", nil)
}

// UnreadCount returns the number of unread notifications.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	res, err := DoJSON[struct {
		Count int `json:"count"`
	}](ctx, c, http.MethodGet, "/notifications/unread-count/", nil)
	if err != nil {
		return 0, err
	}
	return res.Count, nil
}

// MarkNotificationRead marks a single notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id int) error {
	_, err := c.Request(ctx, http.MethodPost, fmt.Sprintf("/notifications/%d/read/", id), map[string]string{})
	return err
}

// MarkAllNotificationsRead marks every notification as read in one call.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	_, err := c.Request(ctx, http.MethodPost, "/notifications/mark-all-read/", map[string]string{})
	return err
}
