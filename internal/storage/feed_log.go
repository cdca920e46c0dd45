package storage

import (
	"context"
	"time"

	"gorm.io/gorm"

	"filmlink/internal/models"
)

type gormFeedLog struct {
	db *gorm.DB
}

func NewFeedLog(db *gorm.DB) FeedLog { return &gormFeedLog{db: db} }

func (f *gormFeedLog) WithTx(tx *gorm.DB) FeedLog { return &gormFeedLog{db: tx} }

func (f *gormFeedLog) Append(ctx context.Context, actorID, entityID int64, eventType, operation string) error {
	event := models.FeedEvent{
		UserID:    actorID,
		EntityID:  entityID,
		EventType: eventType,
		Operation: operation,
		Timestamp: time.Now().UnixMilli(),
	}
	return f.db.WithContext(ctx).Create(&event).Error
}

func (f *gormFeedLog) ByUser(ctx context.Context, userID int64, limit int) ([]models.FeedEvent, error) {
	events := make([]models.FeedEvent, 0)
	q := f.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&events).Error
	return events, err
}
