package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeIndexPutIsIdempotent(t *testing.T) {
	gdb := newTestDB(t)
	idx := NewLikeIndex(gdb)
	ctx := context.Background()

	created, err := idx.Put(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, created)

	// 重复点赞不再新增
	created, err = idx.Put(ctx, 1, 10)
	require.NoError(t, err)
	assert.False(t, created)

	count, err := idx.Count(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestLikeIndexDelete(t *testing.T) {
	gdb := newTestDB(t)
	idx := NewLikeIndex(gdb)
	ctx := context.Background()

	_, err := idx.Put(ctx, 1, 10)
	require.NoError(t, err)

	removed, err := idx.Delete(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, removed)

	// 删除不存在的点赞是空操作
	removed, err = idx.Delete(ctx, 1, 10)
	require.NoError(t, err)
	assert.False(t, removed)

	liked, err := idx.IsLiked(ctx, 1, 10)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestLikeIndexListings(t *testing.T) {
	gdb := newTestDB(t)
	idx := NewLikeIndex(gdb)
	ctx := context.Background()

	for _, pair := range [][2]int64{{1, 30}, {1, 10}, {1, 20}, {2, 10}} {
		_, err := idx.Put(ctx, pair[0], pair[1])
		require.NoError(t, err)
	}

	films, err := idx.FilmsLikedBy(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 20, 30}, films)

	likers, err := idx.LikersOf(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, likers)

	films, err = idx.FilmsLikedBy(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, films)
}
