package models

import (
	"time"
)

type User struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email" binding:"required,email"`
	Login     string    `gorm:"not null" json:"login" binding:"required"`
	Name      string    `json:"name"` // 为空时使用 Login
	Birthday  Date      `json:"birthday" binding:"required,notfuture"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
