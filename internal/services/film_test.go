package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"filmlink/internal/errs"
	"filmlink/internal/models"
	"filmlink/internal/storage"
)

func newFilmService(gdb *gorm.DB) *FilmService {
	return NewFilmService(gdb,
		storage.NewLikeIndex(gdb),
		storage.NewFeedLog(gdb),
		NewPopularityService(gdb, nil))
}

func feedEvents(t *testing.T, gdb *gorm.DB, userID int64) []models.FeedEvent {
	t.Helper()
	events := make([]models.FeedEvent, 0)
	require.NoError(t, gdb.Where("user_id = ?", userID).Order("id ASC").Find(&events).Error)
	return events
}

func TestFilmCreateAndFind(t *testing.T) {
	gdb := newTestDB(t)
	svc := newFilmService(gdb)
	ctx := context.Background()

	film := &models.Film{
		Name:        "Собачье сердце",
		Description: "Экранизация Булгакова",
		ReleaseDate: models.NewDate(1988, time.November, 20),
		Duration:    131,
		Mpa:         models.Mpa{ID: 2},
		Genres:      []models.Genre{{ID: 2}, {ID: 1}, {ID: 2}},
	}
	created, err := svc.Create(ctx, film)
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	found, err := svc.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Собачье сердце", found.Name)
	assert.Equal(t, "PG", found.Mpa.Name)
	// 重复类型去重，输出按 ID 升序
	require.Len(t, found.Genres, 2)
	assert.Equal(t, int64(1), found.Genres[0].ID)
	assert.Equal(t, int64(2), found.Genres[1].ID)
}

func TestFilmCreateUnknownMpa(t *testing.T) {
	gdb := newTestDB(t)
	svc := newFilmService(gdb)

	_, err := svc.Create(context.Background(), &models.Film{
		Name:        "Фильм",
		Description: "—",
		ReleaseDate: models.NewDate(2000, time.January, 1),
		Duration:    90,
		Mpa:         models.Mpa{ID: 99},
	})
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestFilmPutLikeIdempotentFeedOnce(t *testing.T) {
	gdb := newTestDB(t)
	svc := newFilmService(gdb)
	ctx := context.Background()

	userID := seedUser(t, gdb, "anna")
	filmID := seedFilm(t, gdb, "Брат", 1997)

	require.NoError(t, svc.PutLike(ctx, filmID, userID))
	// 重复点赞幂等，动态流只记一条
	require.NoError(t, svc.PutLike(ctx, filmID, userID))

	var likes int64
	require.NoError(t, gdb.Model(&models.Like{}).Count(&likes).Error)
	assert.Equal(t, int64(1), likes)

	events := feedEvents(t, gdb, userID)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventTypeLike, events[0].EventType)
	assert.Equal(t, models.OperationAdd, events[0].Operation)
	assert.Equal(t, filmID, events[0].EntityID)
}

func TestFilmDeleteLike(t *testing.T) {
	gdb := newTestDB(t)
	svc := newFilmService(gdb)
	ctx := context.Background()

	userID := seedUser(t, gdb, "anna")
	filmID := seedFilm(t, gdb, "Брат", 1997)

	// 删除不存在的点赞是空操作，不写动态流
	require.NoError(t, svc.DeleteLike(ctx, filmID, userID))
	assert.Empty(t, feedEvents(t, gdb, userID))

	require.NoError(t, svc.PutLike(ctx, filmID, userID))
	require.NoError(t, svc.DeleteLike(ctx, filmID, userID))

	events := feedEvents(t, gdb, userID)
	require.Len(t, events, 2)
	assert.Equal(t, models.OperationRemove, events[1].Operation)

	err := svc.PutLike(ctx, 999, userID)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	err = svc.PutLike(ctx, filmID, 999)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestFilmCommonFilms(t *testing.T) {
	gdb := newTestDB(t)
	svc := newFilmService(gdb)
	ctx := context.Background()

	a := seedUser(t, gdb, "anna")
	b := seedUser(t, gdb, "boris")
	c := seedUser(t, gdb, "vera")
	f1 := seedFilm(t, gdb, "Фильм 1", 2001)
	f2 := seedFilm(t, gdb, "Фильм 2", 2002)
	f3 := seedFilm(t, gdb, "Фильм 3", 2003)

	// 共同点赞 f1、f2；f2 更热（三个赞）
	seedLike(t, gdb, a, f1)
	seedLike(t, gdb, b, f1)
	seedLike(t, gdb, a, f2)
	seedLike(t, gdb, b, f2)
	seedLike(t, gdb, c, f2)
	seedLike(t, gdb, a, f3)

	films, err := svc.CommonFilms(ctx, a, b)
	require.NoError(t, err)
	assert.Equal(t, []int64{f2, f1}, filmIDs(films))
}

func TestFilmDirectorFilms(t *testing.T) {
	gdb := newTestDB(t)
	svc := newFilmService(gdb)
	ctx := context.Background()

	director := models.Director{Name: "Алексей Балабанов"}
	require.NoError(t, gdb.Create(&director).Error)

	u := seedUser(t, gdb, "anna")
	f1 := seedFilm(t, gdb, "Брат 2", 2000)
	f2 := seedFilm(t, gdb, "Брат", 1997)
	for _, id := range []int64{f1, f2} {
		require.NoError(t, gdb.Exec("INSERT INTO film_directors (film_id, director_id) VALUES (?, ?)", id, director.ID).Error)
	}
	seedLike(t, gdb, u, f1)

	films, err := svc.DirectorFilms(ctx, director.ID, "year")
	require.NoError(t, err)
	assert.Equal(t, []int64{f2, f1}, filmIDs(films))

	films, err = svc.DirectorFilms(ctx, director.ID, "likes")
	require.NoError(t, err)
	assert.Equal(t, []int64{f1, f2}, filmIDs(films))

	_, err = svc.DirectorFilms(ctx, director.ID, "rating")
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))

	_, err = svc.DirectorFilms(ctx, 999, "year")
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestFilmSearch(t *testing.T) {
	gdb := newTestDB(t)
	svc := newFilmService(gdb)
	ctx := context.Background()

	director := models.Director{Name: "Sergio Leone"}
	require.NoError(t, gdb.Create(&director).Error)

	f1 := seedFilm(t, gdb, "Once Upon a Time in the West", 1968)
	f2 := seedFilm(t, gdb, "Once", 2007)
	require.NoError(t, gdb.Exec("INSERT INTO film_directors (film_id, director_id) VALUES (?, ?)", f1, director.ID).Error)

	films, err := svc.Search(ctx, "oNcE", "title")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{f1, f2}, filmIDs(films))

	films, err = svc.Search(ctx, "leone", "director")
	require.NoError(t, err)
	assert.Equal(t, []int64{f1}, filmIDs(films))

	films, err = svc.Search(ctx, "once", "director,title")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{f1, f2}, filmIDs(films))

	_, err = svc.Search(ctx, "", "title")
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))
	_, err = svc.Search(ctx, "once", "genre")
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))
}
