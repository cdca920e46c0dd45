package storage

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"filmlink/internal/models"
)

type gormFriendGraph struct {
	db *gorm.DB
}

func NewFriendGraph(db *gorm.DB) FriendGraph { return &gormFriendGraph{db: db} }

func (g *gormFriendGraph) WithTx(tx *gorm.DB) FriendGraph { return &gormFriendGraph{db: tx} }

func (g *gormFriendGraph) Put(ctx context.Context, userID, friendID int64) (bool, error) {
	var created bool
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 对称不变量：正反两行同一事务落库
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Friendship{UserID: userID, FriendID: friendID})
		if res.Error != nil {
			return res.Error
		}
		created = res.RowsAffected > 0
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Friendship{UserID: friendID, FriendID: userID}).Error
	})
	return created, err
}

func (g *gormFriendGraph) Delete(ctx context.Context, userID, friendID int64) (bool, error) {
	var removed bool
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND friend_id = ?", userID, friendID).
			Delete(&models.Friendship{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected > 0
		return tx.Where("user_id = ? AND friend_id = ?", friendID, userID).
			Delete(&models.Friendship{}).Error
	})
	return removed, err
}

func (g *gormFriendGraph) FriendsOf(ctx context.Context, userID int64) ([]int64, error) {
	ids := make([]int64, 0)
	err := g.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("user_id = ?", userID).
		Order("friend_id ASC").
		Pluck("friend_id", &ids).Error
	return ids, err
}

func (g *gormFriendGraph) Common(ctx context.Context, userID, otherID int64) ([]int64, error) {
	ids := make([]int64, 0)
	// 两人好友列表的交集，排除两人自身（防御脏边）
	err := g.db.WithContext(ctx).Raw(`
		SELECT f1.friend_id FROM friendships f1
		JOIN friendships f2 ON f1.friend_id = f2.friend_id
		WHERE f1.user_id = ? AND f2.user_id = ?
		  AND f1.friend_id NOT IN (?, ?)
		ORDER BY f1.friend_id ASC
	`, userID, otherID, userID, otherID).Scan(&ids).Error
	return ids, err
}
