// Package core provides the business logic for the customer order history lookup.
//
// This package holds all domain logic independent of any UI or transport
// layer. It is used by the web handlers and the terminal client alike.
//
// # Architecture
//
// The package is organized around several key concepts:
//
//   - Dataset Definitions: Registered via the registry, each dataset has
//     field specs, a default file name and a row decoder.
//   - Snapshot: The decoded customers, orders and line items, indexed by id.
//   - Service: The main entry point. Loads the snapshot once and answers
//     search, history and lookup requests from it.
//
// # Dataset Registry
//
// Datasets are registered at init time using [Register], normally by
// importing the core/tables package:
//
//	core.Register(DatasetDefinition{
//	    Info: DatasetInfo{Key: "customers", Label: "Customers", DefaultFile: "Customers.csv"},
//	    FieldSpecs: []FieldSpec{
//	        {Name: "customerid", Type: FieldKey, Required: true},
//	        {Name: "firstname", Type: FieldText},
//	    },
//	    Decode: decodeCustomer,
//	})
//
// # Lookup Flow
//
//  1. [Service.Snapshot] loads every dataset through the dataset.Loader
//  2. Rows are decoded into [Customer], [Order] and [OrderDetail] records
//  3. [SearchCustomers] matches the query against first and last names
//  4. [JoinHistory] inner-joins a customer's orders with their line items
//  5. [NewPanel] derives the display fields (full name, address, title)
//
// "No customers", "no orders" and "orders without line items" are results,
// not errors. Missing data files surface as [*MissingDatasetError].
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - DATA001-DATA006: Dataset errors (missing files, archives, database)
//   - VAL002, VAL004: Validation errors (numbers, missing columns)
//   - FILE002-FILE005: File errors (CSV, workbook, compression, empty)
//   - REQ001-REQ002: Request errors (cancelled, timeout)
package core
