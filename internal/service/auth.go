package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/kebelehub/rfm-ui-api/internal/domain/auth"
	"github.com/kebelehub/rfm-ui-api/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Upstream ports.UpstreamAuth
	Sessions ports.SessionStore
	Flashes  ports.FlashStore
	Logger   *slog.Logger
}

// AuthService orchestrates login, logout, and session rehydration by
// coordinating the upstream auth API and the session store. It never lets
// an upstream failure escape as an error: callers always receive a settled
// LoginResult or a cleared session.
type AuthService struct {
	upstream ports.UpstreamAuth
	sessions ports.SessionStore
	flashes  ports.FlashStore
	inflight *Inflight
	logger   *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		upstream: opts.Upstream,
		sessions: opts.Sessions,
		flashes:  opts.Flashes,
		inflight: NewInflight(),
		logger:   logger,
	}
}

// LoginResult is the settled outcome of a login attempt.
type LoginResult struct {
	Success bool
	Session domainauth.Session
	// Error is the toast message for a failed attempt. Transport and
	// business failures read the same here on purpose.
	Error string
}

// ErrSubmitting is returned when the same operation is re-invoked while a
// prior submission is still in flight.
var ErrSubmitting = errors.New("operation already submitting")

// Login authenticates against the upstream API and, on success, commits
// the returned principal as a new session and queues a success toast. On
// failure the session store is untouched.
func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	if username == "" || password == "" {
		return LoginResult{Error: "username and password are required"}, nil
	}

	key := "login:" + username
	if !s.inflight.Begin(key) {
		return LoginResult{}, ErrSubmitting
	}
	defer s.inflight.End(key)

	principal, res := s.upstream.Login(ctx, username, password)
	if !res.Success {
		return LoginResult{Error: res.Error}, nil
	}

	session := domainauth.Session{
		ID:        uuid.New().String(),
		Principal: principal,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.sessions.Commit(ctx, session); err != nil {
		return LoginResult{}, fmt.Errorf("commit session: %w", err)
	}

	flash := ports.Flash{Level: "success", Message: "Logged in as " + principal.DisplayName}
	if err := s.flashes.Push(ctx, session.ID, flash); err != nil {
		// A lost toast is not worth failing the login over.
		s.logger.Warn("push login flash", "error", err)
	}

	return LoginResult{Success: true, Session: session}, nil
}

// GetSession rehydrates the session by ID. Missing or unparseable
// persisted state surfaces as the store's not-found error; the caller
// treats that as "no session".
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Rehydrate(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("rehydrate session: %w", err)
	}
	return &session, nil
}

// Logout fires the upstream logout best-effort and unconditionally clears
// the local session. The upstream call's failure never blocks teardown.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if res := s.upstream.Logout(ctx); !res.Success {
		s.logger.Warn("upstream logout failed", "error", res.Error)
	}

	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
