package tables

import "github.com/JonMunkholm/orderlookup/internal/core"

func init() {
	registerCustomers()
}

func registerCustomers() {
	core.Register(core.DatasetDefinition{
		Info: core.DatasetInfo{
			Key:         core.DatasetCustomers,
			Label:       "Customers",
			DefaultFile: "Customers_64V94W6D22.csv",
			Pattern:     "Customers_*",
			Table:       "customers",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "customerid", Type: core.FieldKey, Required: true},
			{Name: "firstname", Type: core.FieldText},
			{Name: "lastname", Type: core.FieldText},
			{Name: "emailaddress", Type: core.FieldText},
			{Name: "phonenumber", Type: core.FieldText},
			{Name: "billingaddress1", Type: core.FieldText},
			{Name: "billingcity", Type: core.FieldText},
			{Name: "billingstate", Type: core.FieldText},
		},
		Decode: func(rec core.Record) any {
			return core.Customer{
				CustomerID:      rec.Text("customerid"),
				FirstName:       rec.Text("firstname"),
				LastName:        rec.Text("lastname"),
				Email:           rec.Text("emailaddress"),
				Phone:           rec.Text("phonenumber"),
				BillingAddress1: rec.Text("billingaddress1"),
				BillingCity:     rec.Text("billingcity"),
				BillingState:    rec.Text("billingstate"),
			}
		},
	})
}
