package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/kebelehub/rfm-ui-api/internal/ports"
)

// defaultLanguage is served when the session has no stored preference.
const defaultLanguage = "en"

// supportedLanguages are the UI language codes the front-end ships
// translations for.
var supportedLanguages = map[string]bool{
	"en": true,
	"am": true,
	"om": true,
}

// PrefsHandlers serves per-session UI preferences.
type PrefsHandlers struct {
	Store  ports.PreferenceStore
	Logger *slog.Logger
}

func (h *PrefsHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Language returns the session's language preference.
// GET /api/prefs/language.
func (h *PrefsHandlers) Language(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())

	code := ""
	if session != nil {
		stored, err := h.Store.Language(r.Context(), session.ID)
		if err != nil {
			h.logger().WarnContext(r.Context(), "read language preference", "error", err)
		} else {
			code = stored
		}
	}
	if code == "" {
		code = defaultLanguage
	}

	WriteJSON(w, http.StatusOK, map[string]any{"success": true, "language": code})
}

type setLanguageRequest struct {
	Language string `json:"language"`
}

// SetLanguage stores the session's language preference.
// PUT /api/prefs/language.
func (h *PrefsHandlers) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req setLanguageRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if !supportedLanguages[req.Language] {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "unsupported_language",
			Err:     errors.New("unsupported language code"),
		})
		return
	}

	session := GetSessionFromContext(r.Context())
	if session == nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	if err := h.Store.SetLanguage(r.Context(), session.ID, req.Language); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "preference_save_failed", Err: err})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"success": true, "language": req.Language})
}
