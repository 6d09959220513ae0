package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JonMunkholm/orderlookup/internal/core"
	"github.com/JonMunkholm/orderlookup/internal/logging"
	"github.com/JonMunkholm/orderlookup/internal/web/templates"
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
)

// handleSearchPage renders the search page, running the search in ?q=.
// HTMX requests get only the results fragment.
func (s *Server) handleSearchPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query().Get("q")

	result, err := s.service.Lookup(ctx, query)
	if err != nil {
		var missing *core.MissingDatasetError
		if errors.As(err, &missing) {
			s.renderMissingData(w, r, query, missing)
			return
		}
		respondError(w, r, err, statusFor(err))
		return
	}

	if result.Performed {
		logging.FromContext(ctx).Debug("search", "query_len", len(result.Query), "matches", len(result.Panels))
	}

	render(w, r, http.StatusOK, templates.SearchPage(result))
}

// renderMissingData shows which files are expected. The form stays usable
// so the user can retry once the files are in place.
func (s *Server) renderMissingData(w http.ResponseWriter, r *http.Request, query string, missing *core.MissingDatasetError) {
	logging.FromContext(r.Context()).Warn("datasets missing", "files", strings.Join(missing.Files(), ","))

	render(w, r, http.StatusServiceUnavailable, templates.MissingDataPage(query, missing.Files(), core.AcceptedFormats))
}

// handleLookupAPI returns the lookup for ?q= as JSON.
func (s *Server) handleLookupAPI(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.Lookup(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, result)
}

// handleHistoryAPI returns one customer's joined order history as JSON.
func (s *Server) handleHistoryAPI(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerID")

	history, err := s.service.History(r.Context(), customerID)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, history)
}

// handleStatus reports where each dataset was loaded from.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.service.Status(r.Context())
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, status)
}

// handleHealth reports liveness. It never touches the datasets.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// render writes an HTML component with the given status.
func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		slog.Error("render failed", "path", r.URL.Path, "error", err)
	}
}
