// Package templates holds the HTML components of the lookup UI.
//
// Components are templ.Component values so handlers render full pages and
// nested fragments the same way.
package templates

import (
	"context"
	"fmt"
	"io"
	"regexp"

	"github.com/a-h/templ"
)

// nameRegex matches the tag and attribute names components may emit.
var nameRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// htmlWriter accumulates the first write error so components can emit
// markup without checking every call.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
}

// raw writes trusted markup.
func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// text writes escaped text.
func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// validName records an error for a tag or attribute name that is not a
// plain lowercase identifier.
func (h *htmlWriter) validName(kind, name string) bool {
	if h.err != nil {
		return false
	}
	if !nameRegex.MatchString(name) {
		h.err = fmt.Errorf("invalid %s name %q", kind, name)
		return false
	}
	return true
}

// attr writes ` name="value"` with the value escaped.
func (h *htmlWriter) attr(name, value string) {
	if !h.validName("attribute", name) {
		return
	}
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// element writes <tag>text</tag>.
func (h *htmlWriter) element(tag, text string) {
	if !h.validName("tag", tag) {
		return
	}
	h.raw("<" + tag + ">")
	h.text(text)
	h.raw("</" + tag + ">")
}

// component renders a nested component.
func (h *htmlWriter) component(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}
