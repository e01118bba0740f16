package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/mzigoego/mzigo/client"
)

// newTable applies the shared appearance settings for all list views.
func newTable(w io.Writer, headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetRowLine(false)
	return table
}

// RenderDeliveries writes the user's deliveries as a table.
func RenderDeliveries(w io.Writer, deliveries []client.Delivery) {
	table := newTable(w, []string{"ID", "Sender", "Recipient", "Status", "Created"})
	for _, d := range deliveries {
		table.Append([]string{
			fmt.Sprintf("%d", d.ID),
			clean(d.Sender),
			clean(d.Recipient),
			d.Status,
			d.CreatedAt,
		})
	}
	table.Render()
}

// RenderNotifications writes the user's notifications as a table. Unread rows
// are marked in the first column.
func RenderNotifications(w io.Writer, notifications []client.Notification) {
	table := newTable(w, []string{"", "ID", "Type", "Title", "Message", "Received"})
	table.SetColMinWidth(4, 40)
	for _, n := range notifications {
		marker := ""
		if !n.IsRead {
			marker = "*"
		}
		table.Append([]string{
			marker,
			fmt.Sprintf("%d", n.ID),
			n.Type,
			clean(n.Title),
			clean(n.Message),
			n.CreatedAt,
		})
	}
	table.Render()
}

// RenderProfile writes a user profile as a two-column table.
func RenderProfile(w io.Writer, user client.User) {
	table := newTable(w, []string{"Field", "Value"})
	rows := [][]string{
		{"ID", fmt.Sprintf("%d", user.ID)},
		{"Name", clean(user.FullName())},
		{"Email", user.Email},
		{"Phone", user.Phone},
		{"Role", user.Role},
		{"Active", fmt.Sprintf("%t", user.IsActive)},
		{"Joined", user.DateJoined},
	}
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
}

// clean removes line breaks so a value cannot span table rows.
func clean(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}
