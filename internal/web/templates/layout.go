package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Page title and subtitle shown above the search form.
const (
	AppTitle    = "Customer History Search"
	AppSubtitle = "Type a customer's name below to see their profile and purchase history."
)

// Layout wraps body in the HTML document shell.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.element("title", title)
		h.raw(`<link rel="stylesheet" href="/static/app.css"></head><body><main class="container">`)
		h.component(body)
		h.raw(`</main></body></html>`)
		return h.err
	})
}

// Header renders the page heading.
func Header() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		h.raw(`<header>`)
		h.element("h1", AppTitle)
		h.raw(`<p class="subtitle">`)
		h.text(AppSubtitle)
		h.raw(`</p></header>`)
		return h.err
	})
}
