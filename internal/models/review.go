package models

import (
	"time"
)

type Review struct {
	ID         int64     `gorm:"primaryKey" json:"reviewId"`
	Content    string    `gorm:"type:text;not null" json:"content" binding:"required"`
	IsPositive *bool     `gorm:"not null" json:"isPositive" binding:"required"`
	UserID     *int64    `gorm:"not null;index" json:"userId" binding:"required"`
	FilmID     *int64    `gorm:"not null;index" json:"filmId" binding:"required"`
	Useful     int       `gorm:"not null;default:0" json:"useful"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

// ReviewVote 用户对评论的有用/无用投票，(review_id, user_id) 唯一
type ReviewVote struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	ReviewID  int64     `gorm:"not null;index:idx_review_vote_review;uniqueIndex:idx_review_vote_pair" json:"review_id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_review_vote_pair" json:"user_id"`
	IsLike    bool      `gorm:"not null" json:"is_like"`
	CreatedAt time.Time `json:"created_at"`
}

func (ReviewVote) TableName() string { return "review_likes" }
