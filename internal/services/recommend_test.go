package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmlink/internal/errs"
	"filmlink/internal/storage"
)

func TestRecommendationsNearestNeighbour(t *testing.T) {
	gdb := newTestDB(t)
	likes := storage.NewLikeIndex(gdb)
	svc := NewRecommendService(gdb, likes)
	ctx := context.Background()

	a := seedUser(t, gdb, "anna")
	b := seedUser(t, gdb, "boris")
	c := seedUser(t, gdb, "vera")

	f1 := seedFilm(t, gdb, "Фильм 1", 2001)
	f2 := seedFilm(t, gdb, "Фильм 2", 2002)
	f3 := seedFilm(t, gdb, "Фильм 3", 2003)
	f4 := seedFilm(t, gdb, "Фильм 4", 2004)

	// anna: {1,2,3}; boris: {2,3,4}; vera: {2}
	for _, f := range []int64{f1, f2, f3} {
		seedLike(t, gdb, a, f)
	}
	for _, f := range []int64{f2, f3, f4} {
		seedLike(t, gdb, b, f)
	}
	seedLike(t, gdb, c, f2)

	// boris 是最近邻（交集 2 > 1），推荐他赞过而 anna 没赞过的 4
	films, err := svc.Recommendations(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, []int64{f4}, filmIDs(films))
}

func TestRecommendationsTieBreaksByLowestUserID(t *testing.T) {
	gdb := newTestDB(t)
	likes := storage.NewLikeIndex(gdb)
	svc := NewRecommendService(gdb, likes)
	ctx := context.Background()

	a := seedUser(t, gdb, "anna")
	b := seedUser(t, gdb, "boris")
	c := seedUser(t, gdb, "vera")

	f1 := seedFilm(t, gdb, "Фильм 1", 2001)
	f2 := seedFilm(t, gdb, "Фильм 2", 2002)
	f3 := seedFilm(t, gdb, "Фильм 3", 2003)

	// boris 和 vera 与 anna 的交集都是 {1}，取 ID 较小的 boris
	seedLike(t, gdb, a, f1)
	seedLike(t, gdb, b, f1)
	seedLike(t, gdb, b, f2)
	seedLike(t, gdb, c, f1)
	seedLike(t, gdb, c, f3)

	films, err := svc.Recommendations(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, []int64{f2}, filmIDs(films))
}

func TestRecommendationsEmptyCases(t *testing.T) {
	gdb := newTestDB(t)
	likes := storage.NewLikeIndex(gdb)
	svc := NewRecommendService(gdb, likes)
	ctx := context.Background()

	a := seedUser(t, gdb, "anna")
	b := seedUser(t, gdb, "boris")
	f1 := seedFilm(t, gdb, "Фильм 1", 2001)
	f2 := seedFilm(t, gdb, "Фильм 2", 2002)

	// 目标用户没有点赞
	films, err := svc.Recommendations(ctx, a)
	require.NoError(t, err)
	assert.Empty(t, films)

	// 有点赞但与其他人零交集
	seedLike(t, gdb, a, f1)
	seedLike(t, gdb, b, f2)
	films, err = svc.Recommendations(ctx, a)
	require.NoError(t, err)
	assert.Empty(t, films)

	// 最近邻的点赞是目标用户点赞的子集
	seedLike(t, gdb, b, f1)
	films, err = svc.Recommendations(ctx, b)
	require.NoError(t, err)
	assert.Empty(t, films)

	_, err = svc.Recommendations(ctx, 999)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}
