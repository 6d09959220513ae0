package templates

import (
	"context"
	"io"

	"github.com/JonMunkholm/orderlookup/internal/core"
	"github.com/a-h/templ"
)

// SearchLabel is the label of the name input.
const SearchLabel = "Enter Customer Name (First or Last):"

// SearchPage is the full lookup page: heading, form and results.
func SearchPage(result core.LookupResult) templ.Component {
	return Layout(AppTitle, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		h.component(Header())
		h.component(SearchForm(result.Query))
		h.raw(`<section id="results">`)
		h.component(Results(result))
		h.raw(`</section>`)
		return h.err
	}))
}

// MissingDataPage replaces the results when a dataset could not be found.
func MissingDataPage(query string, files, formats []string) templ.Component {
	return Layout(AppTitle, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		h.component(Header())
		h.component(SearchForm(query))
		h.component(MissingData(files, formats))
		return h.err
	}))
}

// SearchForm renders the name input. The form submits with GET so a
// search is a plain bookmarkable URL.
func SearchForm(query string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		h.raw(`<form class="search" method="get" action="/">`)
		h.raw(`<label for="q">`)
		h.text(SearchLabel)
		h.raw(`</label><input type="search" id="q" name="q" autocomplete="off"`)
		h.attr("value", query)
		h.raw(`><button type="submit">Search</button></form>`)
		return h.err
	})
}

// Results renders the outcome of a lookup. Nothing is shown before the
// first search.
func Results(result core.LookupResult) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if !result.Performed {
			return nil
		}
		h := newWriter(ctx, w)
		if len(result.Panels) == 0 {
			h.component(Notice("warning", core.MsgNoCustomers))
			return h.err
		}
		h.component(Notice("success", core.FoundMessage(len(result.Panels))))
		for _, p := range result.Panels {
			h.component(Panel(p))
		}
		return h.err
	})
}

// Notice renders a one-line status message; kind is success, warning or info.
func Notice(kind, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		h.raw(`<p role="status"`)
		h.attr("class", "notice notice-"+kind)
		h.raw(`>`)
		h.text(message)
		h.raw(`</p>`)
		return h.err
	})
}

// Panel renders one customer's profile and order history, expanded.
func Panel(p core.CustomerPanel) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		h.raw(`<details class="customer" open`)
		h.attr("data-customer-id", p.Customer.CustomerID)
		h.raw(`><summary>`)
		h.text(p.Title)
		h.raw(`</summary><dl class="profile"><dt>Phone</dt><dd>`)
		h.text(p.Customer.Phone)
		h.raw(`</dd><dt>Address</dt><dd>`)
		h.text(p.Address)
		h.raw(`</dd></dl>`)

		if msg := core.HistoryMessage(p.History); msg != "" {
			h.component(Notice("info", msg))
		} else {
			h.element("h3", "Order History")
			h.component(HistoryTable(p.History.Rows))
		}
		h.raw(`</details>`)
		return h.err
	})
}

// HistoryTable renders history rows under the display column labels.
func HistoryTable(rows []core.HistoryRow) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		h.raw(`<table class="history"><thead><tr>`)
		for _, label := range core.HistoryColumns {
			h.element("th", label)
		}
		h.raw(`</tr></thead><tbody>`)
		for _, row := range rows {
			h.raw(`<tr>`)
			for _, cell := range row.Cells() {
				h.element("td", cell)
			}
			h.raw(`</tr>`)
		}
		h.raw(`</tbody></table>`)
		return h.err
	})
}

// MissingData is the error panel naming the files that must be provided.
func MissingData(files, formats []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		h.raw(`<div class="alert alert-error" role="alert">`)
		h.element("strong", "Data files not found!")
		h.raw(`<p>Please place your files in the data directory. You can provide them as `)
		for i, f := range formats {
			if i > 0 {
				h.raw(` or `)
			}
			h.element("code", f)
		}
		h.raw(` files.</p><p>Expected filenames (or their .zip equivalents):</p><ul>`)
		for _, f := range files {
			h.raw(`<li>`)
			h.element("code", f)
			h.raw(`</li>`)
		}
		h.raw(`</ul></div>`)
		return h.err
	})
}
