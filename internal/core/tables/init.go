// Package tables registers all dataset definitions with the core registry.
// Import this package to ensure all datasets are registered.
package tables

// This file exists to provide a single import point.
// Each dataset file uses init() to register its definition.
