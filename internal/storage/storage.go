// Package storage 四个核心索引各自独立的能力接口：
// 点赞索引、好友图、评价投票账本、动态流日志。
// 生产实现基于 gorm，内存实现仅用于测试替身，通过构造函数注入选择。
package storage

import (
	"context"

	"gorm.io/gorm"

	"filmlink/internal/models"
)

// LikeIndex 用户↔电影点赞关系，集合语义
type LikeIndex interface {
	// WithTx 返回绑定到指定事务的索引，用于把索引写入和动态流写入放进同一事务
	WithTx(tx *gorm.DB) LikeIndex
	// Put 幂等写入，首次插入返回 true
	Put(ctx context.Context, userID, filmID int64) (bool, error)
	// Delete 幂等删除，实际删除了记录返回 true
	Delete(ctx context.Context, userID, filmID int64) (bool, error)
	// Count 电影当前点赞数，永远等于索引基数
	Count(ctx context.Context, filmID int64) (int64, error)
	IsLiked(ctx context.Context, userID, filmID int64) (bool, error)
	// FilmsLikedBy 用户点赞过的电影，按电影 ID 升序
	FilmsLikedBy(ctx context.Context, userID int64) ([]int64, error)
	// LikersOf 点赞过电影的用户，按用户 ID 升序
	LikersOf(ctx context.Context, filmID int64) ([]int64, error)
}

// FriendGraph 无向好友图。每条边落库两行，互为镜像
type FriendGraph interface {
	WithTx(tx *gorm.DB) FriendGraph
	// Put 建边，两个方向同一事务写入；首次建边返回 true
	Put(ctx context.Context, userID, friendID int64) (bool, error)
	// Delete 拆边，两个方向一起删；实际删除返回 true
	Delete(ctx context.Context, userID, friendID int64) (bool, error)
	// FriendsOf 用户的好友 ID，按 ID 升序
	FriendsOf(ctx context.Context, userID int64) ([]int64, error)
	// Common 两人共同好友，不含两人自身
	Common(ctx context.Context, userID, otherID int64) ([]int64, error)
}

// VoteLedger 评价有用性投票账本。投票写入与 useful 计数调整在同一事务内完成
type VoteLedger interface {
	WithTx(tx *gorm.DB) VoteLedger
	// Vote 记录投票。无前票 ±1；反向改票 ±2；同向重复投票返回 Conflict
	Vote(ctx context.Context, reviewID, userID int64, isLike bool) error
	// Retract 撤销指定方向的投票并回滚其影响；无此方向投票返回 NotFound
	Retract(ctx context.Context, reviewID, userID int64, wasLike bool) error
}

// FeedLog 只增不改的动态流
type FeedLog interface {
	WithTx(tx *gorm.DB) FeedLog
	Append(ctx context.Context, actorID, entityID int64, eventType, operation string) error
	// ByUser 某用户的动态，新的在前（timestamp 降序，eventId 降序）；limit<=0 不限
	ByUser(ctx context.Context, userID int64, limit int) ([]models.FeedEvent, error)
}
