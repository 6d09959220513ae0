// Package cli is the terminal client: it runs lookups against the service
// and prints each customer with a text history table.
package cli

import (
	"fmt"
	"io"

	"github.com/JonMunkholm/orderlookup/internal/core"
	"github.com/olekukonko/tablewriter"
)

// RenderResult prints a lookup result. A result whose search was not
// performed prints nothing.
func RenderResult(w io.Writer, result core.LookupResult) error {
	if !result.Performed {
		return nil
	}
	if len(result.Panels) == 0 {
		_, err := fmt.Fprintln(w, core.MsgNoCustomers)
		return err
	}

	if _, err := fmt.Fprintln(w, core.FoundMessage(len(result.Panels))); err != nil {
		return err
	}
	for _, p := range result.Panels {
		if err := RenderPanel(w, p); err != nil {
			return err
		}
	}
	return nil
}

// RenderPanel prints one customer block.
func RenderPanel(w io.Writer, p core.CustomerPanel) error {
	_, err := fmt.Fprintf(w, "\n== %s ==\nPhone:   %s\nAddress: %s\n", p.Title, p.Customer.Phone, p.Address)
	if err != nil {
		return err
	}

	if msg := core.HistoryMessage(p.History); msg != "" {
		_, err = fmt.Fprintln(w, msg)
		return err
	}
	if _, err := fmt.Fprintln(w, "Order History"); err != nil {
		return err
	}
	return RenderHistory(w, p.History.Rows)
}

// RenderHistory prints rows as a table under the display column labels.
func RenderHistory(w io.Writer, rows []core.HistoryRow) error {
	header := make([]any, len(core.HistoryColumns))
	for i, label := range core.HistoryColumns {
		header[i] = label
	}

	data := make([][]string, len(rows))
	for i, row := range rows {
		data[i] = row.Cells()
	}

	table := tablewriter.NewWriter(w)
	table.Header(header...)
	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("render history: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render history: %w", err)
	}
	return nil
}
