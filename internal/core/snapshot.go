package core

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot is the decoded, indexed view of the three datasets.
// It is read-only once built and safe for concurrent use.
type Snapshot struct {
	ID            uuid.UUID
	LoadedAt      time.Time
	Customers     []Customer
	Orders        []Order
	Details       []OrderDetail
	Datasets      []DatasetStatus
	OrphanOrders  int // orders whose customer id matches no customer
	OrphanDetails int // line items whose order id matches no order

	customerByID     map[string]int
	ordersByCustomer map[string][]int
	detailsByOrder   map[string][]int
}

// NewSnapshot indexes the decoded records. Index slices hold positions in
// source order so joins keep the original row order.
func NewSnapshot(customers []Customer, orders []Order, details []OrderDetail) *Snapshot {
	s := &Snapshot{
		ID:               uuid.New(),
		LoadedAt:         time.Now(),
		Customers:        customers,
		Orders:           orders,
		Details:          details,
		customerByID:     make(map[string]int, len(customers)),
		ordersByCustomer: make(map[string][]int),
		detailsByOrder:   make(map[string][]int),
	}

	for i, c := range customers {
		if c.CustomerID == "" {
			continue
		}
		if _, dup := s.customerByID[c.CustomerID]; !dup {
			s.customerByID[c.CustomerID] = i
		}
	}

	orderIDs := make(map[string]bool, len(orders))
	for i, o := range orders {
		if o.OrderID != "" {
			orderIDs[o.OrderID] = true
		}
		if o.CustomerID == "" {
			s.OrphanOrders++
			continue
		}
		if _, ok := s.customerByID[o.CustomerID]; !ok {
			s.OrphanOrders++
		}
		s.ordersByCustomer[o.CustomerID] = append(s.ordersByCustomer[o.CustomerID], i)
	}

	for i, d := range details {
		if d.OrderID == "" || !orderIDs[d.OrderID] {
			s.OrphanDetails++
		}
		if d.OrderID != "" {
			s.detailsByOrder[d.OrderID] = append(s.detailsByOrder[d.OrderID], i)
		}
	}

	return s
}

// Customer returns the first customer with the given id.
func (s *Snapshot) Customer(customerID string) (Customer, bool) {
	i, ok := s.customerByID[NormalizeKey(customerID)]
	if !ok {
		return Customer{}, false
	}
	return s.Customers[i], true
}

// Search runs SearchCustomers over the snapshot's customers.
func (s *Snapshot) Search(query string) SearchResult {
	return SearchCustomers(s.Customers, query)
}

// History joins the customer's orders with their line items using the
// snapshot indexes. It yields the same result as JoinHistory.
func (s *Snapshot) History(customerID string) History {
	key := NormalizeKey(customerID)

	var own []Order
	if key != "" {
		for _, i := range s.ordersByCustomer[key] {
			own = append(own, s.Orders[i])
		}
	}

	return assembleHistory(key, own, func(orderID string) []OrderDetail {
		positions := s.detailsByOrder[orderID]
		out := make([]OrderDetail, len(positions))
		for j, p := range positions {
			out[j] = s.Details[p]
		}
		return out
	})
}

// Lookup searches and builds a panel for every matched customer.
func (s *Snapshot) Lookup(query string) LookupResult {
	found := s.Search(query)
	result := LookupResult{Query: found.Query, Performed: found.Performed}
	for _, c := range found.Customers {
		result.Panels = append(result.Panels, NewPanel(c, s.History(c.CustomerID)))
	}
	return result
}

// Status summarizes the snapshot.
func (s *Snapshot) Status() Status {
	return Status{
		SnapshotID:    s.ID,
		LoadedAt:      s.LoadedAt,
		Datasets:      s.Datasets,
		OrphanOrders:  s.OrphanOrders,
		OrphanDetails: s.OrphanDetails,
	}
}
