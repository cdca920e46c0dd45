package models

import (
	"time"
)

type Film struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"not null" json:"name" binding:"required"`
	Description string     `gorm:"size:200" json:"description" binding:"required,max=200"`
	ReleaseDate Date       `gorm:"index" json:"releaseDate" binding:"required,releasedate"`
	Duration    int        `gorm:"not null" json:"duration" binding:"required,gt=0"`
	MpaID       int64      `gorm:"not null" json:"-"`
	Mpa         Mpa        `gorm:"foreignKey:MpaID" json:"mpa" binding:"required"`
	Genres      []Genre    `gorm:"many2many:film_genres" json:"genres"`
	Directors   []Director `gorm:"many2many:film_directors" json:"directors"`
	CreatedAt   time.Time  `json:"-"`
	UpdatedAt   time.Time  `json:"-"`
}

type Genre struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// Mpa 电影分级（MPA rating）
type Mpa struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

func (Mpa) TableName() string { return "rating_mpa" }

type Director struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name" binding:"required"`
}
