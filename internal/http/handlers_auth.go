package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/kebelehub/rfm-ui-api/internal/domain/auth"
	"github.com/kebelehub/rfm-ui-api/internal/ports"
	"github.com/kebelehub/rfm-ui-api/internal/service"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	Login(ctx context.Context, username, password string) (service.LoginResult, error)
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	Flashes      ports.FlashStore
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles credential submission.
// POST /api/auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.Svc.Login(r.Context(), strings.TrimSpace(req.Username), req.Password)
	if errors.Is(err, service.ErrSubmitting) {
		WriteError(w, ErrorParams{
			Code:    http.StatusConflict,
			ErrCode: "already_submitting",
			Err:     errors.New("a login attempt is already in progress"),
		})
		return
	}
	if err != nil {
		h.logger().ErrorContext(r.Context(), "login failed", "error", err)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "login_failed", Err: err})
		return
	}
	if !result.Success {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "invalid_credentials",
			Err:     errors.New(result.Error),
		})
		return
	}

	h.setSessionCookie(w, r, result.Session.ID)
	WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    principalJSON(result.Session.Principal),
	})
}

// Logout handles the logout endpoint.
// POST /api/auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID := ""
	if sessionCookie, err := r.Cookie(sessionCookieName); err == nil {
		sessionID = sessionCookie.Value
	}

	if err := h.Svc.Logout(r.Context(), sessionID); err != nil {
		h.logger().WarnContext(r.Context(), "logout failed", "error", err)
	}

	// The cookie goes regardless of what the upstream said.
	h.clearCookie(w, r, sessionCookieName)

	WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "You have been logged out",
	})
}

// Status returns the current authentication status.
// GET /api/auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	sessionCookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	session, err := h.Svc.GetSession(r.Context(), sessionCookie.Value)
	if err != nil || !session.IsAuthenticated() {
		// Session is invalid or expired, clear the cookie.
		h.clearCookie(w, r, sessionCookieName)
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          principalJSON(session.Principal),
		"created_at":    session.CreatedAt,
	})
}

// Flash drains queued toasts for the current session.
// GET /api/auth/flash.
func (h *AuthHandlers) Flash(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		WriteJSON(w, http.StatusOK, map[string]any{"success": true, "flashes": []ports.Flash{}})
		return
	}

	flashes, err := h.Flashes.Drain(r.Context(), session.ID)
	if err != nil {
		h.logger().WarnContext(r.Context(), "drain flashes", "error", err)
		flashes = nil
	}
	if flashes == nil {
		flashes = []ports.Flash{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"success": true, "flashes": flashes})
}

// Notifications returns the notification list embedded in the principal,
// unmodified. The upstream owns read/unread state.
// GET /api/notifications.
func (h *AuthHandlers) Notifications(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	items := session.Principal.Notifications
	if items == nil {
		items = []domainauth.Notification{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"success": true, "items": items})
}

// principalJSON shapes the authenticated user for API responses.
func principalJSON(p domainauth.Principal) map[string]any {
	return map[string]any{
		"id":           p.ID,
		"display_name": p.DisplayName,
		"username":     p.Username,
		"avatar":       p.Avatar,
		"role":         p.Role,
	}
}

// setSessionCookie stores the opaque session ID in an HTTP-only cookie.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// clearCookie clears a cookie by setting it to expire immediately.
// It mirrors key attributes (Secure, Path, Domain, SameSite) used when setting cookies
// to maximize compatibility across browsers during deletion.
func (h *AuthHandlers) clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
