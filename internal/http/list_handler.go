package httpx

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/kebelehub/rfm-ui-api/internal/listing"
)

// ListScreen fixes the shape of one list endpoint: where its rows come
// from and how the screen searches and tabs them.
type ListScreen struct {
	// Resource is the upstream collection name, also used in the route.
	Resource string
	// SearchFields are JMESPath expressions the free-text query matches against.
	SearchFields []string
	// TabField enables tab filtering on the named row field when non-empty.
	TabField string
}

// ListHandler serves one screen's collection through its controller.
type ListHandler struct {
	screen     ListScreen
	controller *listing.Controller
	logger     *slog.Logger
}

// NewListHandler wires a screen definition to a fetcher. Screen definitions
// are static, so a bad search expression fails here at startup.
func NewListHandler(screen ListScreen, fetch listing.Fetcher, logger *slog.Logger) (*ListHandler, error) {
	ctrl, err := listing.NewController(fetch, listing.Options{
		SearchFields: screen.SearchFields,
		TabField:     screen.TabField,
	})
	if err != nil {
		return nil, fmt.Errorf("screen %s: %w", screen.Resource, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ListHandler{screen: screen, controller: ctrl, logger: logger}, nil
}

// ServeHTTP handles GET /api/<resource>.
//
// The first request (or ?refresh=true) fetches from upstream; filter and
// sort changes are answered from the in-memory collection without another
// round trip. A failed refresh keeps serving the stale rows and reports
// the error alongside them.
func (h *ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	snapshot := h.controller.View(listing.Filter{})
	if !snapshot.Loaded || q.Get(paramRefresh) == "true" {
		if err := h.controller.Load(r.Context()); err != nil {
			h.logger.WarnContext(r.Context(), "list fetch failed",
				slog.String("resource", h.screen.Resource),
				slog.Any("error", err))
		}
	}

	snapshot = h.controller.View(ParseFilter(q))

	rows := snapshot.Rows
	if field, dir := ParseSortParam(q); field != "" && dir != "" {
		rows = listing.Sort(rows, field, dir)
	}
	if rows == nil {
		rows = []listing.Row{}
	}

	body := map[string]any{
		"success": true,
		"items":   rows,
		"total":   len(rows),
		"loaded":  snapshot.Loaded,
	}
	if snapshot.Err != nil {
		// Stale rows plus an indicator, not a hard failure.
		body["fetch_error"] = "could not refresh the list, showing previous results"
	}
	WriteJSON(w, http.StatusOK, body)
}
