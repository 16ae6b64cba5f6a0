package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// PrefsStore holds per-session UI preferences. The only preference today is
// the selected language code; the value is opaque to the core.
type PrefsStore struct {
	client redis.UniversalClient
	prefix string
}

// NewPrefsStore creates a Redis-based preference store.
func NewPrefsStore(client redis.UniversalClient) *PrefsStore {
	return &PrefsStore{client: client, prefix: "prefs:lang:"}
}

func (s *PrefsStore) SetLanguage(ctx context.Context, sessionID, code string) error {
	if sessionID == "" {
		return errors.New("session ID cannot be empty")
	}
	return s.client.Set(ctx, s.prefix+sessionID, code, 0).Err()
}

// Language returns the stored code, or empty string when none was set.
func (s *PrefsStore) Language(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", nil
	}
	val, err := s.client.Get(ctx, s.prefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}
