package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/kebelehub/rfm-ui-api/internal/domain/resetflow"
	"github.com/kebelehub/rfm-ui-api/internal/service"
)

// resetCookieName carries the opaque reset-flow ID between steps.
const resetCookieName = "reset_flow"

// ResetServiceInterface defines the interface for reset flow operations.
type ResetServiceInterface interface {
	Start(ctx context.Context) (resetflow.Flow, error)
	RequestCode(ctx context.Context, flowID, email string) (service.StepResult, error)
	VerifyCode(ctx context.Context, flowID, code string) (service.StepResult, error)
	Complete(ctx context.Context, flowID, newPassword, confirmPassword string) (service.StepResult, error)
	Back(ctx context.Context, flowID string) (service.StepResult, error)
	Get(ctx context.Context, flowID string) (resetflow.Flow, error)
}

// ResetHandlers provides HTTP handlers for the password-reset flow.
type ResetHandlers struct {
	Svc          ResetServiceInterface
	CookieDomain string
	Logger       *slog.Logger
}

func (h *ResetHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type requestCodeRequest struct {
	Email string `json:"email"`
}

// RequestCode accepts the account email and asks the upstream to send an OTP.
// A new flow is started when the browser carries none.
// POST /api/auth/forgot-password.
func (h *ResetHandlers) RequestCode(w http.ResponseWriter, r *http.Request) {
	var req requestCodeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	flowID := h.flowID(r)
	if flowID == "" {
		flow, err := h.Svc.Start(r.Context())
		if err != nil {
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "reset_start_failed", Err: err})
			return
		}
		flowID = flow.ID
		h.setFlowCookie(w, r, flowID)
	}

	result, err := h.Svc.RequestCode(r.Context(), flowID, strings.TrimSpace(req.Email))
	h.writeStep(w, r, result, err)
}

type verifyCodeRequest struct {
	Otp string `json:"otp"`
}

// VerifyCode submits the one-time code for the current flow.
// POST /api/auth/verify-otp.
func (h *ResetHandlers) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req verifyCodeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	flowID := h.flowID(r)
	if flowID == "" {
		h.writeNoFlow(w)
		return
	}

	result, err := h.Svc.VerifyCode(r.Context(), flowID, strings.TrimSpace(req.Otp))
	h.writeStep(w, r, result, err)
}

type completeResetRequest struct {
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Complete submits the new password. On success the flow is destroyed and
// the browser is told to route back to login.
// POST /api/auth/reset-password.
func (h *ResetHandlers) Complete(w http.ResponseWriter, r *http.Request) {
	var req completeResetRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	flowID := h.flowID(r)
	if flowID == "" {
		h.writeNoFlow(w)
		return
	}

	result, err := h.Svc.Complete(r.Context(), flowID, req.NewPassword, req.ConfirmPassword)
	if err == nil && result.Success && result.Flow.Step == resetflow.StepDone {
		h.clearFlowCookie(w, r)
		WriteJSON(w, http.StatusOK, map[string]any{
			"success":     true,
			"step":        resetflow.StepDone,
			"message":     "Password reset. Please log in with your new password.",
			"redirect_to": "/login",
		})
		return
	}
	h.writeStep(w, r, result, err)
}

// Back steps the flow backwards without contacting the upstream.
// POST /api/auth/reset/back.
func (h *ResetHandlers) Back(w http.ResponseWriter, r *http.Request) {
	flowID := h.flowID(r)
	if flowID == "" {
		h.writeNoFlow(w)
		return
	}

	result, err := h.Svc.Back(r.Context(), flowID)
	h.writeStep(w, r, result, err)
}

// Step reports where the flow currently stands so a reloaded page can
// resume on the right screen.
// GET /api/auth/reset.
func (h *ResetHandlers) Step(w http.ResponseWriter, r *http.Request) {
	flowID := h.flowID(r)
	if flowID == "" {
		h.writeNoFlow(w)
		return
	}

	flow, err := h.Svc.Get(r.Context(), flowID)
	if err != nil {
		// Expired or unknown flow; the browser starts over.
		h.clearFlowCookie(w, r)
		h.writeNoFlow(w)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"step":    flow.Step,
		"email":   flow.Email,
	})
}

// writeStep renders a StepResult uniformly across the step handlers.
func (h *ResetHandlers) writeStep(w http.ResponseWriter, r *http.Request, result service.StepResult, err error) {
	if errors.Is(err, service.ErrSubmitting) {
		WriteError(w, ErrorParams{
			Code:    http.StatusConflict,
			ErrCode: "already_submitting",
			Err:     errors.New("this step is already submitting"),
		})
		return
	}
	if err != nil {
		h.logger().ErrorContext(r.Context(), "reset step failed", "error", err)
		// A vanished flow means the TTL lapsed mid-flow.
		h.clearFlowCookie(w, r)
		WriteError(w, ErrorParams{
			Code:    http.StatusGone,
			ErrCode: "reset_flow_expired",
			Err:     errors.New("the reset flow has expired, please start over"),
		})
		return
	}

	body := map[string]any{
		"success": result.Success,
		"step":    result.Flow.Step,
		"email":   result.Flow.Email,
	}
	if len(result.Fields) > 0 {
		body["fields"] = result.Fields
	}
	WriteJSON(w, http.StatusOK, body)
}

func (h *ResetHandlers) writeNoFlow(w http.ResponseWriter) {
	WriteError(w, ErrorParams{
		Code:    http.StatusNotFound,
		ErrCode: "no_reset_flow",
		Err:     errors.New("no password reset in progress"),
	})
}

func (h *ResetHandlers) flowID(r *http.Request) string {
	c, err := r.Cookie(resetCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

func (h *ResetHandlers) setFlowCookie(w http.ResponseWriter, r *http.Request, flowID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     resetCookieName,
		Value:    flowID,
		Path:     "/api/auth",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *ResetHandlers) clearFlowCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     resetCookieName,
		Value:    "",
		Path:     "/api/auth",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}
