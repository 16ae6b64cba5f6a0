package redis

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/kebelehub/rfm-ui-api/internal/domain/auth"
	"github.com/kebelehub/rfm-ui-api/internal/testutil"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func testSession(id string) domainauth.Session {
	return domainauth.Session{
		ID: id,
		Principal: domainauth.Principal{
			ID:          "user-123",
			DisplayName: "Abebe Kebede",
			Username:    "abebek",
			Role:        domainauth.RoleOfficer,
		},
	}
}

func TestSessionStore_CommitAndRehydrate(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client, nil)
	ctx := context.Background()

	sess := testSession("test-session-1")
	require.NoError(t, store.Commit(ctx, sess))

	// A fresh store over the same backing storage models a new process.
	fresh := NewSessionStore(client, nil)
	got, err := fresh.Rehydrate(ctx, "test-session-1")
	require.NoError(t, err)
	assert.Equal(t, sess, got, "rehydrated principal deep-equals the committed one")
	assert.True(t, got.IsAuthenticated())
}

func TestSessionStore_RehydrateMissing(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client, nil)

	_, err := store.Rehydrate(context.Background(), "non-existent")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_RehydrateCorruptBlobClearsKey(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client, nil)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "session:corrupt", "{not json", 0).Err())

	_, err := store.Rehydrate(ctx, "corrupt")
	assert.Equal(t, ErrNotFound, err, "parse failure degrades to no session")

	exists, err := client.Exists(ctx, "session:corrupt").Result()
	require.NoError(t, err)
	assert.Zero(t, exists, "unparseable blob is removed")
}

func TestSessionStore_ClearIdempotent(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client, nil)
	ctx := context.Background()

	require.NoError(t, store.Commit(ctx, testSession("test-session-clear")))

	require.NoError(t, store.Clear(ctx, "test-session-clear"))
	// Second clear: same end state, no error.
	require.NoError(t, store.Clear(ctx, "test-session-clear"))

	_, err := store.Rehydrate(ctx, "test-session-clear")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_CommitRequiresID(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client, nil)

	err := store.Commit(context.Background(), domainauth.Session{})
	assert.Error(t, err)
}
