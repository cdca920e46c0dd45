package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmlink/internal/errs"
	"filmlink/internal/models"
)

// 内存替身和 gorm 实现遵守同一套语义，这里做最小一致性检查。

func TestMemoryLikeIndex(t *testing.T) {
	idx := NewMemoryLikeIndex()
	ctx := context.Background()

	created, err := idx.Put(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, created)
	created, err = idx.Put(ctx, 1, 10)
	require.NoError(t, err)
	assert.False(t, created)

	_, err = idx.Put(ctx, 2, 10)
	require.NoError(t, err)
	_, err = idx.Put(ctx, 1, 20)
	require.NoError(t, err)

	count, err := idx.Count(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	films, err := idx.FilmsLikedBy(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 20}, films)

	likers, err := idx.LikersOf(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, likers)

	removed, err := idx.Delete(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = idx.Delete(ctx, 1, 10)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestMemoryFriendGraph(t *testing.T) {
	graph := NewMemoryFriendGraph()
	ctx := context.Background()

	created, err := graph.Put(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, created)
	created, err = graph.Put(ctx, 2, 1)
	require.NoError(t, err)
	assert.False(t, created)

	_, err = graph.Put(ctx, 1, 3)
	require.NoError(t, err)
	_, err = graph.Put(ctx, 2, 3)
	require.NoError(t, err)

	friends, err := graph.FriendsOf(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, friends)

	common, err := graph.Common(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, common)

	removed, err := graph.Delete(ctx, 2, 1)
	require.NoError(t, err)
	assert.True(t, removed)
	friends, err = graph.FriendsOf(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, friends)
}

func TestMemoryVoteLedger(t *testing.T) {
	ledger := NewMemoryVoteLedger()
	ctx := context.Background()

	require.NoError(t, ledger.Vote(ctx, 1, 10, true))
	assert.Equal(t, 1, ledger.Useful(1))

	err := ledger.Vote(ctx, 1, 10, true)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))

	require.NoError(t, ledger.Vote(ctx, 1, 10, false))
	assert.Equal(t, -1, ledger.Useful(1))

	err = ledger.Retract(ctx, 1, 10, true)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	require.NoError(t, ledger.Retract(ctx, 1, 10, false))
	assert.Equal(t, 0, ledger.Useful(1))
}

func TestMemoryFeedLog(t *testing.T) {
	log := NewMemoryFeedLog()
	ctx := context.Background()

	require.NoError(t, log.Append(ctx, 1, 100, models.EventTypeLike, models.OperationAdd))
	require.NoError(t, log.Append(ctx, 1, 2, models.EventTypeFriend, models.OperationAdd))
	require.NoError(t, log.Append(ctx, 2, 100, models.EventTypeLike, models.OperationAdd))

	events, err := log.ByUser(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, models.EventTypeFriend, events[0].EventType)

	events, err = log.ByUser(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
}
