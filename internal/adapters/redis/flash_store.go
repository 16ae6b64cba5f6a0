package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kebelehub/rfm-ui-api/internal/ports"
)

// flashTTL bounds how long undrained toasts survive.
const flashTTL = 30 * time.Minute

// Ensure compile-time conformance to ports.
var (
	_ ports.SessionStore    = (*SessionStore)(nil)
	_ ports.FlowStore       = (*FlowStore)(nil)
	_ ports.FlashStore      = (*FlashStore)(nil)
	_ ports.PreferenceStore = (*PrefsStore)(nil)
)

// FlashStore queues session-lifecycle toasts per session until the browser
// drains them. Insertion order is preserved.
type FlashStore struct {
	client redis.UniversalClient
	prefix string
}

// NewFlashStore creates a Redis-based flash store.
func NewFlashStore(client redis.UniversalClient) *FlashStore {
	return &FlashStore{client: client, prefix: "flash:"}
}

func (s *FlashStore) Push(ctx context.Context, sessionID string, f ports.Flash) error {
	if sessionID == "" {
		return errors.New("session ID cannot be empty")
	}

	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal flash: %w", err)
	}

	key := s.prefix + sessionID
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, flashTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push flash: %w", err)
	}
	return nil
}

func (s *FlashStore) Drain(ctx context.Context, sessionID string) ([]ports.Flash, error) {
	if sessionID == "" {
		return nil, nil
	}

	key := s.prefix + sessionID
	pipe := s.client.TxPipeline()
	itemsCmd := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("drain flash: %w", err)
	}

	raw := itemsCmd.Val()
	out := make([]ports.Flash, 0, len(raw))
	for _, item := range raw {
		var f ports.Flash
		if err := json.Unmarshal([]byte(item), &f); err != nil {
			continue // skip corrupt entries, keep the rest
		}
		out = append(out, f)
	}
	return out, nil
}
