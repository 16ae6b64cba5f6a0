package ports

// Package ports defines interfaces (hexagonal ports) for auth-related
// behavior. Implementations live in internal/adapters; orchestration in
// internal/service.

import (
	"context"

	domainauth "github.com/kebelehub/rfm-ui-api/internal/domain/auth"
	"github.com/kebelehub/rfm-ui-api/internal/domain/resetflow"
)

// Result is the normalized outcome of one upstream call. Transport errors,
// malformed responses, and business rejections all collapse into
// Success=false with a human-readable message; upstream adapters never let
// an error cross this boundary.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// OK is the successful Result.
func OK() Result { return Result{Success: true} }

// Fail builds a failure Result with the given message.
func Fail(msg string) Result { return Result{Success: false, Error: msg} }

// CompleteResetInput groups parameters for the final reset step.
type CompleteResetInput struct {
	Email       string
	NewPassword string
	Code        string
}

// UpstreamAuth talks to the remote auth API. Each call maps to one fixed
// endpoint and settles with a uniform Result.
type UpstreamAuth interface {
	// Login authenticates and returns the principal on success. On failure
	// the principal is the zero value and Result carries the message.
	Login(ctx context.Context, username, password string) (domainauth.Principal, Result)

	// RequestResetCode asks the server to email a one-time code.
	RequestResetCode(ctx context.Context, email string) Result

	// VerifyResetCode checks the one-time code for the email.
	VerifyResetCode(ctx context.Context, email, code string) Result

	// CompleteReset sets the new password.
	CompleteReset(ctx context.Context, in CompleteResetInput) Result

	// Logout invalidates the upstream session. Callers treat it as
	// best-effort; its failure never blocks local teardown.
	Logout(ctx context.Context) Result
}

// SessionStore persists and retrieves browser sessions. It is the single
// writer of session keys.
type SessionStore interface {
	// Commit persists the session verbatim and makes it live.
	Commit(ctx context.Context, sess domainauth.Session) error

	// Rehydrate loads the persisted session. A missing key or a blob that
	// fails to parse yields ErrNotFound after the key is removed; the parse
	// error never propagates outward.
	Rehydrate(ctx context.Context, id string) (domainauth.Session, error)

	// Clear removes the session. Idempotent.
	Clear(ctx context.Context, id string) error
}

// FlowStore persists ephemeral password-reset flow state with a TTL.
type FlowStore interface {
	Save(ctx context.Context, f resetflow.Flow) error
	Get(ctx context.Context, id string) (resetflow.Flow, error)
	Delete(ctx context.Context, id string) error
}

// Flash is one toast emitted by a session-lifecycle event.
type Flash struct {
	Level   string `json:"level"` // "success" | "error" | "info"
	Message string `json:"message"`
}

// FlashStore queues toasts per session until the browser drains them.
type FlashStore interface {
	Push(ctx context.Context, sessionID string, f Flash) error
	// Drain returns queued flashes in insertion order and empties the queue.
	Drain(ctx context.Context, sessionID string) ([]Flash, error)
}

// PreferenceStore holds per-session UI preferences; currently only the
// selected language code. Values are opaque to the core.
type PreferenceStore interface {
	SetLanguage(ctx context.Context, sessionID, code string) error
	Language(ctx context.Context, sessionID string) (string, error)
}
