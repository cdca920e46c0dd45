package models

import (
	"time"
)

// Like 用户对电影的点赞，(user_id, film_id) 唯一
type Like struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index:idx_like_user;uniqueIndex:idx_like_pair" json:"user_id"`
	FilmID    int64     `gorm:"not null;index:idx_like_film;uniqueIndex:idx_like_pair" json:"film_id"`
	CreatedAt time.Time `json:"created_at"`
}
