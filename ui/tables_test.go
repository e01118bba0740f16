package ui_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mzigoego/mzigo/client"
	"github.com/mzigoego/mzigo/ui"
)

func TestRenderDeliveries(t *testing.T) {
	var buf bytes.Buffer
	ui.RenderDeliveries(&buf, []client.Delivery{
		{ID: 3, Sender: "Jane Doe", Recipient: "Ali Hassan", Status: client.DeliveryInTransit, CreatedAt: "2026-08-01"},
	})

	out := buf.String()
	assert.Contains(t, out, "SENDER")
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "in-transit")
}

func TestRenderDeliveries_EmptyListStillRendersHeader(t *testing.T) {
	var buf bytes.Buffer
	ui.RenderDeliveries(&buf, nil)
	assert.Contains(t, buf.String(), "STATUS")
}

func TestRenderNotifications_MarksUnread(t *testing.T) {
	var buf bytes.Buffer
	ui.RenderNotifications(&buf, []client.Notification{
		{ID: 1, Title: "Delivery update", Message: "Your package\nis on the way", Type: "delivery", IsRead: false},
		{ID: 2, Title: "Welcome", Message: "Hello", Type: "system", IsRead: true},
	})

	out := buf.String()
	assert.Contains(t, out, "*")
	assert.Contains(t, out, "Your package is on the way", "line breaks are flattened")
}

func TestRenderProfile(t *testing.T) {
	var buf bytes.Buffer
	ui.RenderProfile(&buf, client.User{
		ID: 1, Email: "jane@example.com", FirstName: "Jane", LastName: "Doe",
		Role: client.RoleCustomer, IsActive: true,
	})

	out := buf.String()
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "jane@example.com")
	assert.Contains(t, out, "customer")
}
