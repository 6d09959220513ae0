package core

// JoinHistory builds the order history of one customer: orders filtered by
// customer id, inner-joined with their line items on order id. Rows follow
// the order of orders, then the order of details within each order.
//
// The result state is HistoryNoOrders when the customer has no orders and
// HistoryNoDetails when orders exist but none has a line item.
func JoinHistory(orders []Order, details []OrderDetail, customerID string) History {
	key := NormalizeKey(customerID)

	var own []Order
	for _, o := range orders {
		if key != "" && o.CustomerID == key {
			own = append(own, o)
		}
	}

	byOrder := make(map[string][]OrderDetail)
	for _, d := range details {
		byOrder[d.OrderID] = append(byOrder[d.OrderID], d)
	}

	return assembleHistory(key, own, func(orderID string) []OrderDetail {
		return byOrder[orderID]
	})
}

// assembleHistory joins a customer's orders with the line items returned by
// lookup and classifies the outcome.
func assembleHistory(customerID string, orders []Order, lookup func(orderID string) []OrderDetail) History {
	h := History{CustomerID: customerID, Orders: len(orders)}
	if len(orders) == 0 {
		h.State = HistoryNoOrders
		return h
	}

	for _, o := range orders {
		if o.OrderID == "" {
			continue
		}
		for _, d := range lookup(o.OrderID) {
			h.Rows = append(h.Rows, HistoryRow{
				OrderID:      o.OrderID,
				Date:         o.OrderDate,
				Status:       o.OrderStatus,
				Product:      d.ProductName,
				Qty:          d.Quantity,
				ItemPrice:    d.TotalPrice,
				OrderTotal:   o.PaymentAmount,
				ShippingCost: o.TotalShippingCost,
			})
		}
	}

	if len(h.Rows) == 0 {
		h.State = HistoryNoDetails
		return h
	}
	h.State = HistoryOK
	return h
}
