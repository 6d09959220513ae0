package core

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/orderlookup/internal/dataset"
)

// Dataset keys used by the registry and the snapshot.
const (
	DatasetCustomers    = "customers"
	DatasetOrders       = "orders"
	DatasetOrderDetails = "order_details"
)

// FieldType represents the expected data type for a column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldKey
	FieldNumeric
)

// FieldSpec describes one column of a dataset.
type FieldSpec struct {
	Name     string    // Column header, lowercase: "customerid"
	Type     FieldType // Selects the conversion in ConvertRow
	Required bool      // Column must exist in the header
}

// DatasetInfo contains display and lookup information about a dataset.
type DatasetInfo struct {
	Key         string // Unique identifier: "customers"
	Label       string // Display name: "Customers"
	DefaultFile string // Conventional base file: "Customers_64V94W6D22.csv"
	Pattern     string // Glob fallback: "Customers_*.{csv,zip,xlsx}"
	Table       string // Database table for the optional Postgres source
}

// HeaderIndex maps column names (lowercase) to their position in a row.
type HeaderIndex map[string]int

// DecodeFunc builds the typed record for one converted row.
type DecodeFunc func(rec Record) any

// DatasetDefinition contains everything needed to read a dataset.
type DatasetDefinition struct {
	Info       DatasetInfo
	FieldSpecs []FieldSpec
	Decode     DecodeFunc
}

// Ref returns the loader reference for the dataset's defaults.
func (d DatasetDefinition) Ref() dataset.Ref {
	return dataset.Ref{
		Name:     d.Info.Key,
		BaseFile: d.Info.DefaultFile,
		Pattern:  d.Info.Pattern,
		Table:    d.Info.Table,
	}
}

// Customer is one row of the customers dataset. Absent text is "".
type Customer struct {
	CustomerID      string `json:"customerId"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	BillingAddress1 string `json:"billingAddress1"`
	BillingCity     string `json:"billingCity"`
	BillingState    string `json:"billingState"`
}

// Order is one row of the orders dataset.
type Order struct {
	OrderID           string              `json:"orderId"`
	CustomerID        string              `json:"customerId"`
	OrderDate         string              `json:"orderDate"`
	TotalShippingCost decimal.NullDecimal `json:"totalShippingCost"`
	PaymentAmount     decimal.NullDecimal `json:"paymentAmount"`
	OrderStatus       string              `json:"orderStatus"`
}

// OrderDetail is one line item of an order.
type OrderDetail struct {
	OrderID     string              `json:"orderId"`
	ProductName string              `json:"productName"`
	Quantity    decimal.NullDecimal `json:"quantity"`
	TotalPrice  decimal.NullDecimal `json:"totalPrice"`
}

// HistoryRow is one (order, line item) pair of a customer's history.
type HistoryRow struct {
	OrderID      string              `json:"orderId"`
	Date         string              `json:"date"`
	Status       string              `json:"status"`
	Product      string              `json:"product"`
	Qty          decimal.NullDecimal `json:"qty"`
	ItemPrice    decimal.NullDecimal `json:"itemPrice"`
	OrderTotal   decimal.NullDecimal `json:"orderTotal"`
	ShippingCost decimal.NullDecimal `json:"shippingCost"`
}

// HistoryState tells apart the outcomes of a history join.
type HistoryState string

const (
	HistoryOK        HistoryState = "ok"
	HistoryNoOrders  HistoryState = "no_orders"
	HistoryNoDetails HistoryState = "no_details"
)

// History is the joined order history of one customer.
type History struct {
	CustomerID string       `json:"customerId"`
	State      HistoryState `json:"state"`
	Orders     int          `json:"orders"`
	Rows       []HistoryRow `json:"rows"`
}

// SearchResult is the outcome of a customer search.
// Performed is false when the query was empty.
type SearchResult struct {
	Query     string     `json:"query"`
	Performed bool       `json:"performed"`
	Customers []Customer `json:"customers"`
}

// CustomerPanel is the display model for one matched customer.
type CustomerPanel struct {
	Customer Customer `json:"customer"`
	FullName string   `json:"fullName"`
	Title    string   `json:"title"`
	Address  string   `json:"address"`
	History  History  `json:"history"`
}

// LookupResult is a search plus the panel of every match.
type LookupResult struct {
	Query     string          `json:"query"`
	Performed bool            `json:"performed"`
	Panels    []CustomerPanel `json:"panels"`
}

// DatasetStatus describes where a dataset came from.
type DatasetStatus struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Source string `json:"source"`
	Format string `json:"format"`
	Rows   int    `json:"rows"`
}

// Status summarizes the loaded snapshot.
type Status struct {
	SnapshotID    uuid.UUID       `json:"snapshotId"`
	LoadedAt      time.Time       `json:"loadedAt"`
	Datasets      []DatasetStatus `json:"datasets"`
	OrphanOrders  int             `json:"orphanOrders"`
	OrphanDetails int             `json:"orphanDetails"`
}
