package models

import (
	"time"
)

// Friendship 好友边。无向关系存两行（A→B 和 B→A），同一事务内写入
type Friendship struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index:idx_friend_user;uniqueIndex:idx_friend_pair" json:"user_id"`
	FriendID  int64     `gorm:"not null;uniqueIndex:idx_friend_pair" json:"friend_id"`
	CreatedAt time.Time `json:"created_at"`
}
