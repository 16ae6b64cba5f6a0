package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kebelehub/rfm-ui-api/internal/domain/resetflow"
)

// flowTTL bounds how long an abandoned reset flow survives. The flow is
// ephemeral state scoped to the reset screens; navigating away and coming
// back after the TTL starts over.
const flowTTL = 15 * time.Minute

// FlowStore persists password-reset flow state between the flow's steps.
type FlowStore struct {
	client redis.UniversalClient
	prefix string
}

// NewFlowStore creates a Redis-based reset flow store.
func NewFlowStore(client redis.UniversalClient) *FlowStore {
	return &FlowStore{client: client, prefix: "resetflow:"}
}

func (s *FlowStore) Save(ctx context.Context, f resetflow.Flow) error {
	if f.ID == "" {
		return errors.New("flow ID cannot be empty")
	}

	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal flow: %w", err)
	}

	return s.client.Set(ctx, s.prefix+f.ID, data, flowTTL).Err()
}

func (s *FlowStore) Get(ctx context.Context, id string) (resetflow.Flow, error) {
	if id == "" {
		return resetflow.Flow{}, ErrNotFound
	}

	data, err := s.client.Get(ctx, s.prefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return resetflow.Flow{}, ErrNotFound
		}
		return resetflow.Flow{}, fmt.Errorf("redis get: %w", err)
	}

	var f resetflow.Flow
	if unmarshalErr := json.Unmarshal([]byte(data), &f); unmarshalErr != nil {
		// Corrupt flow state starts the flow over rather than erroring.
		if delErr := s.client.Del(ctx, s.prefix+id).Err(); delErr != nil {
			return resetflow.Flow{}, fmt.Errorf("cleanup corrupt flow: %w", delErr)
		}
		return resetflow.Flow{}, ErrNotFound
	}

	return f, nil
}

func (s *FlowStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+id).Err()
}
