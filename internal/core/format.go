package core

import (
	"fmt"
	"strings"
)

// HistoryColumns are the labels of the history table, in display order.
var HistoryColumns = []string{"Date", "Status", "Product", "Qty", "Item Price", "Order Total"}

// historySourceColumns maps each label to the source column it shows.
var historySourceColumns = map[string]string{
	"Date":        "orderdate",
	"Status":      "orderstatus",
	"Product":     "productname",
	"Qty":         "quantity",
	"Item Price":  "totalprice",
	"Order Total": "paymentamount",
}

// SourceColumn returns the dataset column behind a history label, or "".
func SourceColumn(label string) string {
	return historySourceColumns[label]
}

// FullName joins first and last name with a space and trims the result.
func FullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}

// FormatAddress joins the non-empty parts with ", ".
func FormatAddress(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// Address returns the customer's billing address on one line.
func (c Customer) Address() string {
	return FormatAddress(c.BillingAddress1, c.BillingCity, c.BillingState)
}

// FullName returns the customer's display name.
func (c Customer) FullName() string {
	return FullName(c.FirstName, c.LastName)
}

// PanelTitle is the heading of a customer panel: "Ann Lee (ann@x.com)".
func PanelTitle(c Customer) string {
	return fmt.Sprintf("%s (%s)", c.FullName(), c.Email)
}

// Value returns the display text of the source column on r, or "" for a
// column the history table does not show.
func (r HistoryRow) Value(column string) string {
	switch column {
	case "orderdate":
		return r.Date
	case "orderstatus":
		return r.Status
	case "productname":
		return r.Product
	case "quantity":
		return FormatDecimal(r.Qty)
	case "totalprice":
		return FormatDecimal(r.ItemPrice)
	case "paymentamount":
		return FormatDecimal(r.OrderTotal)
	default:
		return ""
	}
}

// Cells returns the row's values in HistoryColumns order.
func (r HistoryRow) Cells() []string {
	cells := make([]string, len(HistoryColumns))
	for i, label := range HistoryColumns {
		cells[i] = r.Value(SourceColumn(label))
	}
	return cells
}

// NewPanel builds the display model for a customer and their history.
func NewPanel(c Customer, h History) CustomerPanel {
	return CustomerPanel{
		Customer: c,
		FullName: c.FullName(),
		Title:    PanelTitle(c),
		Address:  c.Address(),
		History:  h,
	}
}

// Result messages shared by the web page and the terminal client.
const (
	MsgNoCustomers = "No customers found with that name."
	MsgNoOrders    = "No orders on file for this customer."
	MsgNoDetails   = "Orders found, but no product details available."
)

// FoundMessage reports how many customers matched.
func FoundMessage(n int) string {
	return fmt.Sprintf("Found %d customer(s).", n)
}

// HistoryMessage returns the message shown instead of the history table,
// or "" when there are rows to show.
func HistoryMessage(h History) string {
	switch h.State {
	case HistoryNoOrders:
		return MsgNoOrders
	case HistoryNoDetails:
		return MsgNoDetails
	default:
		return ""
	}
}
