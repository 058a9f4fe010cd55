package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) Storage {
	t.Helper()
	mr := miniredis.RunT(t)
	store := NewStorage(zerolog.Nop(), "test", Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func TestSaveAndLoadState(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveState(ctx, "province", "p1", []byte(`{"gold":500}`)))

	data, err := store.LoadState(ctx, "province", "p1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"gold":500}`), data)
}

func TestLoadMissingState(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.LoadState(context.Background(), "province", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatesAreNamespacedPerGame(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveState(ctx, "province", "e1", []byte("a")))
	require.NoError(t, store.SaveState(ctx, "ascension", "e1", []byte("b")))

	data, err := store.LoadState(ctx, "province", "e1")
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), data)

	data, err = store.LoadState(ctx, "ascension", "e1")
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), data)
}

func TestDeleteState(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveState(ctx, "province", "p1", []byte("x")))
	require.NoError(t, store.RecordScore(ctx, "province", "p1", 100))
	require.NoError(t, store.DeleteState(ctx, "province", "p1"))

	_, err := store.LoadState(ctx, "province", "p1")
	assert.ErrorIs(t, err, ErrNotFound)

	ranks, err := store.Leaderboard(ctx, "province", 10)
	require.NoError(t, err)
	assert.Empty(t, ranks)
}

func TestListEntityIDs(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveState(ctx, "province", "p1", []byte("a")))
	require.NoError(t, store.SaveState(ctx, "province", "p2", []byte("b")))

	ids, err := store.ListEntityIDs(ctx, "province")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p1", "p2"}, ids)
}

func TestLeaderboardRanksBestFirst(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.RecordScore(ctx, "province", "bronze", 100))
	require.NoError(t, store.RecordScore(ctx, "province", "gold", 900))
	require.NoError(t, store.RecordScore(ctx, "province", "silver", 500))

	ranks, err := store.Leaderboard(ctx, "province", 2)
	require.NoError(t, err)
	require.Len(t, ranks, 2)
	assert.Equal(t, Rank{EntityID: "gold", Score: 900}, ranks[0])
	assert.Equal(t, Rank{EntityID: "silver", Score: 500}, ranks[1])
}

func TestScoresOnlyMoveUp(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.RecordScore(ctx, "province", "p1", 500))
	require.NoError(t, store.RecordScore(ctx, "province", "p1", 100))

	ranks, err := store.Leaderboard(ctx, "province", 1)
	require.NoError(t, err)
	require.Len(t, ranks, 1)
	assert.Equal(t, int64(500), ranks[0].Score)
}
