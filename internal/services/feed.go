package services

import (
	"context"

	"gorm.io/gorm"

	"filmlink/internal/errs"
	"filmlink/internal/models"
	"filmlink/internal/storage"
)

// FeedService 用户动态流读取端
type FeedService struct {
	db   *gorm.DB
	feed storage.FeedLog
}

func NewFeedService(db *gorm.DB, feed storage.FeedLog) *FeedService {
	return &FeedService{db: db, feed: feed}
}

// FeedFor 某用户的动态，新的在前；limit<=0 不限条数
func (s *FeedService) FeedFor(ctx context.Context, userID int64, limit int) ([]models.FeedEvent, error) {
	var cnt int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&cnt).Error; err != nil {
		return nil, err
	}
	if cnt == 0 {
		return nil, errs.NotFound("пользователь с id = %d не найден", userID)
	}
	return s.feed.ByUser(ctx, userID, limit)
}
