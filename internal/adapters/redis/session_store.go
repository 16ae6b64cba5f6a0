package redis

// Package redis provides Redis-based adapters for browser-facing state:
// sessions, reset flows, flash toasts, and UI preferences. It is the only
// writer of these keys.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/kebelehub/rfm-ui-api/internal/domain/auth"
)

// SessionStore persists the principal blob per browser session. The blob is
// written verbatim as received at login and carries no expiry; teardown
// happens only through Clear (logout) or a failed rehydration parse.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	logger *slog.Logger
}

// NewSessionStore creates a Redis-based session store.
func NewSessionStore(client redis.UniversalClient, logger *slog.Logger) *SessionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{
		client: client,
		prefix: "session:",
		logger: logger,
	}
}

// Commit persists the session and makes it live.
func (s *SessionStore) Commit(ctx context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return s.client.Set(ctx, s.prefix+sess.ID, data, 0).Err()
}

// Rehydrate loads the persisted session. A missing key yields ErrNotFound.
// A blob that fails to parse is removed and also yields ErrNotFound: the
// parse error is logged for diagnostics, never propagated, so a corrupt
// blob degrades to "no session" instead of crashing the request.
func (s *SessionStore) Rehydrate(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}

	key := s.prefix + id
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, ErrNotFound
		}
		return domainauth.Session{}, fmt.Errorf("redis get: %w", err)
	}

	var sess domainauth.Session
	if unmarshalErr := json.Unmarshal([]byte(data), &sess); unmarshalErr != nil {
		s.logger.Warn("discarding unparseable session blob", "session_id", id, "error", unmarshalErr)
		if delErr := s.client.Del(ctx, key).Err(); delErr != nil {
			s.logger.Warn("remove unparseable session blob", "session_id", id, "error", delErr)
		}
		return domainauth.Session{}, ErrNotFound
	}

	return sess, nil
}

// Clear removes the session. Idempotent: clearing an absent session is a
// no-op with the same end state.
func (s *SessionStore) Clear(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+id).Err()
}

// ErrNotFound is returned when a session, flow, or preference is absent.
type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

var ErrNotFound error = notFoundError{}
