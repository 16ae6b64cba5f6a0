package httpx

import (
	"net/http"

	"github.com/kebelehub/rfm-ui-api/internal/domain/nav"
)

// NavHandlers serves the role-filtered navigation menu.
type NavHandlers struct {
	Entries []nav.Entry
}

// Menu returns the entries visible to the current session, each flagged
// active against the ?path= the browser is on. Unauthenticated requests
// get the public entries only.
// GET /api/nav.
func (h *NavHandlers) Menu(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	currentPath := r.URL.Query().Get("path")

	visible := nav.Visible(h.Entries, session)
	items := make([]map[string]any, 0, len(visible))
	for _, e := range visible {
		items = append(items, map[string]any{
			"title":  e.Title,
			"path":   e.Path,
			"icon":   e.Icon,
			"active": nav.IsActive(e, currentPath),
		})
	}

	WriteJSON(w, http.StatusOK, map[string]any{"success": true, "items": items})
}
