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

func newUserService(gdb *gorm.DB) *UserService {
	return NewUserService(gdb, storage.NewFriendGraph(gdb), storage.NewFeedLog(gdb))
}

func TestUserCreateNameFallback(t *testing.T) {
	gdb := newTestDB(t)
	svc := newUserService(gdb)
	ctx := context.Background()

	user, err := svc.Create(ctx, &models.User{
		Email:    "anna@mail.ru",
		Login:    "anna",
		Birthday: models.NewDate(1990, time.March, 15),
	})
	require.NoError(t, err)
	assert.Equal(t, "anna", user.Name)

	// 邮箱占用
	_, err = svc.Create(ctx, &models.User{
		Email:    "anna@mail.ru",
		Login:    "anna2",
		Birthday: models.NewDate(1991, time.March, 15),
	})
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
}

func TestUserFriendshipFlow(t *testing.T) {
	gdb := newTestDB(t)
	svc := newUserService(gdb)
	ctx := context.Background()

	a := seedUser(t, gdb, "anna")
	b := seedUser(t, gdb, "boris")

	require.NoError(t, svc.PutFriend(ctx, a, b))
	// 重复添加幂等，动态流只记一条
	require.NoError(t, svc.PutFriend(ctx, a, b))

	friends, err := svc.Friends(ctx, b)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, a, friends[0].ID)

	events := feedEvents(t, gdb, a)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventTypeFriend, events[0].EventType)
	assert.Equal(t, models.OperationAdd, events[0].Operation)
	assert.Equal(t, b, events[0].EntityID)

	require.NoError(t, svc.DeleteFriend(ctx, a, b))
	// 再删是空操作
	require.NoError(t, svc.DeleteFriend(ctx, a, b))
	events = feedEvents(t, gdb, a)
	require.Len(t, events, 2)
	assert.Equal(t, models.OperationRemove, events[1].Operation)
}

// 服务只依赖接口，内存替身可以原样顶替 gorm 实现
func TestUserFriendshipWithMemoryDoubles(t *testing.T) {
	gdb := newTestDB(t)
	feed := storage.NewMemoryFeedLog()
	svc := NewUserService(gdb, storage.NewMemoryFriendGraph(), feed)
	ctx := context.Background()

	a := seedUser(t, gdb, "anna")
	b := seedUser(t, gdb, "boris")

	require.NoError(t, svc.PutFriend(ctx, a, b))
	require.NoError(t, svc.PutFriend(ctx, a, b))

	friends, err := svc.Friends(ctx, a)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, b, friends[0].ID)

	events, err := feed.ByUser(ctx, a, 0)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestUserSelfFriendConflict(t *testing.T) {
	gdb := newTestDB(t)
	svc := newUserService(gdb)

	a := seedUser(t, gdb, "anna")
	err := svc.PutFriend(context.Background(), a, a)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
}

func TestUserFriendNotFound(t *testing.T) {
	gdb := newTestDB(t)
	svc := newUserService(gdb)
	ctx := context.Background()

	a := seedUser(t, gdb, "anna")
	err := svc.PutFriend(ctx, a, 999)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	err = svc.PutFriend(ctx, 999, a)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestUserCommonFriends(t *testing.T) {
	gdb := newTestDB(t)
	svc := newUserService(gdb)
	ctx := context.Background()

	a := seedUser(t, gdb, "anna")
	b := seedUser(t, gdb, "boris")
	c := seedUser(t, gdb, "vera")

	require.NoError(t, svc.PutFriend(ctx, a, c))
	require.NoError(t, svc.PutFriend(ctx, b, c))
	require.NoError(t, svc.PutFriend(ctx, a, b))

	common, err := svc.CommonFriends(ctx, a, b)
	require.NoError(t, err)
	require.Len(t, common, 1)
	assert.Equal(t, c, common[0].ID)
}

func TestUserDeleteCleansIndexes(t *testing.T) {
	gdb := newTestDB(t)
	svc := newUserService(gdb)
	ctx := context.Background()

	a := seedUser(t, gdb, "anna")
	b := seedUser(t, gdb, "boris")
	f := seedFilm(t, gdb, "Брат", 1997)
	require.NoError(t, svc.PutFriend(ctx, a, b))
	seedLike(t, gdb, a, f)

	require.NoError(t, svc.Delete(ctx, a))

	_, err := svc.FindByID(ctx, a)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	var likes, edges int64
	require.NoError(t, gdb.Model(&models.Like{}).Count(&likes).Error)
	require.NoError(t, gdb.Model(&models.Friendship{}).Count(&edges).Error)
	assert.Zero(t, likes)
	assert.Zero(t, edges)
}
