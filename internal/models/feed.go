package models

// 事件类型
const (
	EventTypeFriend = "FRIEND"
	EventTypeLike   = "LIKE"
	EventTypeReview = "REVIEW"
)

// 事件操作
const (
	OperationAdd    = "ADD"
	OperationRemove = "REMOVE"
	OperationUpdate = "UPDATE"
)

// FeedEvent 动态流事件。只增不改，ID 即单调递增的 eventId
type FeedEvent struct {
	ID        int64  `gorm:"primaryKey" json:"eventId"`
	UserID    int64  `gorm:"not null;index:idx_feed_user" json:"userId"`
	EntityID  int64  `gorm:"not null" json:"entityId"`
	EventType string `gorm:"size:16;not null" json:"eventType"`
	Operation string `gorm:"size:16;not null" json:"operation"`
	Timestamp int64  `gorm:"not null" json:"timestamp"` // epoch 毫秒
}

func (FeedEvent) TableName() string { return "feed" }
