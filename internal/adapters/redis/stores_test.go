package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kebelehub/rfm-ui-api/internal/domain/resetflow"
	"github.com/kebelehub/rfm-ui-api/internal/ports"
)

func TestFlowStore_SaveGetDelete(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewFlowStore(client)
	ctx := context.Background()

	f := resetflow.New("flow-1")
	require.NoError(t, f.EmailAccepted("user@example.com"))
	require.NoError(t, store.Save(ctx, f))

	got, err := store.Get(ctx, "flow-1")
	require.NoError(t, err)
	assert.Equal(t, resetflow.StepOtpEntry, got.Step)
	assert.Equal(t, "user@example.com", got.Email)

	require.NoError(t, store.Delete(ctx, "flow-1"))
	_, err = store.Get(ctx, "flow-1")
	assert.Equal(t, ErrNotFound, err)
}

func TestFlowStore_CorruptStateStartsOver(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewFlowStore(client)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "resetflow:bad", "][", 0).Err())

	_, err := store.Get(ctx, "bad")
	assert.Equal(t, ErrNotFound, err)
}

func TestFlashStore_DrainsInInsertionOrder(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewFlashStore(client)
	ctx := context.Background()

	require.NoError(t, store.Push(ctx, "s-1", ports.Flash{Level: "success", Message: "Logged in"}))
	require.NoError(t, store.Push(ctx, "s-1", ports.Flash{Level: "info", Message: "Welcome back"}))

	flashes, err := store.Drain(ctx, "s-1")
	require.NoError(t, err)
	require.Len(t, flashes, 2)
	assert.Equal(t, "Logged in", flashes[0].Message)
	assert.Equal(t, "Welcome back", flashes[1].Message)

	// Drained queue is empty.
	flashes, err = store.Drain(ctx, "s-1")
	require.NoError(t, err)
	assert.Empty(t, flashes)
}

func TestPrefsStore_LanguageRoundTrip(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewPrefsStore(client)
	ctx := context.Background()

	lang, err := store.Language(ctx, "s-1")
	require.NoError(t, err)
	assert.Empty(t, lang, "unset language reads as empty")

	require.NoError(t, store.SetLanguage(ctx, "s-1", "am"))

	lang, err = store.Language(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "am", lang)
}
