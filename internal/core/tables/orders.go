package tables

import "github.com/JonMunkholm/orderlookup/internal/core"

func init() {
	registerOrders()
	registerOrderDetails()
}

func registerOrders() {
	core.Register(core.DatasetDefinition{
		Info: core.DatasetInfo{
			Key:         core.DatasetOrders,
			Label:       "Orders",
			DefaultFile: "Orders_WUMZTNW4SS.csv",
			Pattern:     "Orders_*",
			Table:       "orders",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "orderid", Type: core.FieldKey, Required: true},
			{Name: "customerid", Type: core.FieldKey, Required: true},
			{Name: "orderdate", Type: core.FieldText},
			{Name: "totalshippingcost", Type: core.FieldNumeric},
			{Name: "paymentamount", Type: core.FieldNumeric},
			{Name: "orderstatus", Type: core.FieldText},
		},
		Decode: func(rec core.Record) any {
			return core.Order{
				OrderID:           rec.Text("orderid"),
				CustomerID:        rec.Text("customerid"),
				OrderDate:         rec.Text("orderdate"),
				TotalShippingCost: rec.Decimal("totalshippingcost"),
				PaymentAmount:     rec.Decimal("paymentamount"),
				OrderStatus:       rec.Text("orderstatus"),
			}
		},
	})
}

func registerOrderDetails() {
	core.Register(core.DatasetDefinition{
		Info: core.DatasetInfo{
			Key:         core.DatasetOrderDetails,
			Label:       "Order Details",
			DefaultFile: "OrderDetails_WUMZTNW4SS.csv",
			Pattern:     "OrderDetails_*",
			Table:       "order_details",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "orderid", Type: core.FieldKey, Required: true},
			{Name: "productname", Type: core.FieldText},
			{Name: "quantity", Type: core.FieldNumeric},
			{Name: "totalprice", Type: core.FieldNumeric},
		},
		Decode: func(rec core.Record) any {
			return core.OrderDetail{
				OrderID:     rec.Text("orderid"),
				ProductName: rec.Text("productname"),
				Quantity:    rec.Decimal("quantity"),
				TotalPrice:  rec.Decimal("totalprice"),
			}
		},
	})
}
