package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// ErrorAlert renders a user-facing error with its suggested action and
// support code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		h.raw(`<div class="alert alert-error" role="alert">`)
		h.element("strong", message)
		if action != "" {
			h.element("p", action)
		}
		if code != "" {
			h.raw(`<p class="code">Error code: `)
			h.text(code)
			h.raw(`</p>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}

// ErrorPage wraps ErrorAlert in the page layout.
func ErrorPage(message, action, code string) templ.Component {
	return Layout(AppTitle, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		h.component(Header())
		h.component(ErrorAlert(message, action, code))
		return h.err
	}))
}
