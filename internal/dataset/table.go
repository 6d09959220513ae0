// Package dataset resolves logical datasets to files (or tables) and parses
// them into in-memory string tables.
//
// A dataset is located by trying an ordered chain of [Resolver]s; the first
// one that finds an artifact wins. Resolvers that find nothing return
// [ErrNotFound] so the chain can continue. The [Loader] memoizes every result,
// including "missing", for the lifetime of the process.
package dataset

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrNotFound reports that no artifact exists for a dataset reference.
var ErrNotFound = errors.New("dataset not found")

// Ref identifies a logical dataset and where to look for it.
type Ref struct {
	Name     string // Logical name: "customers"
	BaseFile string // Conventional file name: "Customers_64V94W6D22.csv"
	Pattern  string // Optional doublestar pattern used by GlobMatch
	Table    string // Optional database table used by PostgresTable
}

// Stem returns BaseFile without its extension ("Customers_64V94W6D22").
func (r Ref) Stem() string {
	return strings.TrimSuffix(r.BaseFile, filepath.Ext(r.BaseFile))
}

// key is the memoization key for a reference.
func (r Ref) key() string {
	return r.Name + "\x00" + r.BaseFile + "\x00" + r.Pattern + "\x00" + r.Table
}

// Table is a parsed tabular dataset. Header names are trimmed and lowercased;
// every row has exactly len(Header) cells.
type Table struct {
	Name   string
	Source string // Where the data came from: file path, "archive.zip:inner.csv", "postgres:customers"
	Format string // "csv", "zip", "gzip", "bzip2", "xz", "xlsx", "postgres"
	Header []string
	Rows   [][]string
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}
