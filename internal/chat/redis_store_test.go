package chat

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (HistoryStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisStore(rdb, time.Second), mr
}

func TestRedisStoreAppendAndGet(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	_, err := store.AppendUser(ctx, "42", "привет")
	require.NoError(t, err)
	_, err = store.AppendAssistant(ctx, "42", "привет)")
	require.NoError(t, err)
	_, err = store.AppendUser(ctx, "42", "как дела?")
	require.NoError(t, err)

	turns, err := store.GetTurns(ctx, "42")
	require.NoError(t, err)
	require.Len(t, turns, 3)
	require.Equal(t, RoleUser, turns[0].Role)
	require.Equal(t, "привет", turns[0].Content)
	require.Equal(t, RoleAssistant, turns[1].Role)
	require.Equal(t, "как дела?", turns[2].Content)
}

func TestRedisStoreUnknownKeyIsEmpty(t *testing.T) {
	store, _ := newTestRedisStore(t)

	turns, err := store.GetTurns(context.Background(), "nobody")
	require.NoError(t, err)
	require.Empty(t, turns)
}

func TestRedisStoreExpiresAfterTTL(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	_, err := store.AppendUser(ctx, "42", "привет")
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	turns, err := store.GetTurns(ctx, "42")
	require.NoError(t, err)
	require.Empty(t, turns)
}

func TestRedisStoreTTLRefreshedOnWrite(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	_, err := store.AppendUser(ctx, "42", "раз")
	require.NoError(t, err)

	mr.FastForward(700 * time.Millisecond)

	_, err = store.AppendAssistant(ctx, "42", "два")
	require.NoError(t, err)

	// с момента последней записи прошло меньше TTL
	mr.FastForward(700 * time.Millisecond)

	turns, err := store.GetTurns(ctx, "42")
	require.NoError(t, err)
	require.Len(t, turns, 2)
}

func TestRedisStoreUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(rdb, time.Second)
	mr.Close()

	_, err := store.GetTurns(context.Background(), "42")
	require.True(t, IsKind(err, KindStoreUnavailable))

	_, err = store.AppendUser(context.Background(), "42", "привет")
	require.True(t, IsKind(err, KindStoreUnavailable))
}
