package storage

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"filmlink/internal/models"
)

type gormLikeIndex struct {
	db *gorm.DB
}

func NewLikeIndex(db *gorm.DB) LikeIndex { return &gormLikeIndex{db: db} }

func (s *gormLikeIndex) WithTx(tx *gorm.DB) LikeIndex { return &gormLikeIndex{db: tx} }

func (s *gormLikeIndex) Put(ctx context.Context, userID, filmID int64) (bool, error) {
	// 幂等：重复点赞不报错，也不产生第二行
	like := models.Like{UserID: userID, FilmID: filmID}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *gormLikeIndex) Delete(ctx context.Context, userID, filmID int64) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND film_id = ?", userID, filmID).
		Delete(&models.Like{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *gormLikeIndex) Count(ctx context.Context, filmID int64) (int64, error) {
	var cnt int64
	err := s.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("film_id = ?", filmID).
		Count(&cnt).Error
	return cnt, err
}

func (s *gormLikeIndex) IsLiked(ctx context.Context, userID, filmID int64) (bool, error) {
	var cnt int64
	err := s.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND film_id = ?", userID, filmID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (s *gormLikeIndex) FilmsLikedBy(ctx context.Context, userID int64) ([]int64, error) {
	ids := make([]int64, 0)
	err := s.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ?", userID).
		Order("film_id ASC").
		Pluck("film_id", &ids).Error
	return ids, err
}

func (s *gormLikeIndex) LikersOf(ctx context.Context, filmID int64) ([]int64, error) {
	ids := make([]int64, 0)
	err := s.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("film_id = ?", filmID).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}
