package db

import (
	"os"

	"filmlink/internal/logger"
	"filmlink/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=filmlink port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.L.Fatal("Failed to connect to database", zap.Error(err))
	}

	logger.L.Info("Database connection established")

	if err := Migrate(DB); err != nil {
		logger.L.Fatal("Failed to migrate database", zap.Error(err))
	}
	logger.L.Info("Database migration completed")

	Seed(DB)
}

// Migrate 建表，测试里也会对 sqlite 内存库调用
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Mpa{},
		&models.Genre{},
		&models.Director{},
		&models.Film{},
		&models.Like{},
		&models.Friendship{},
		&models.Review{},
		&models.ReviewVote{},
		&models.FeedEvent{},
	)
}

// Seed 预置片单参考数据（类型与分级是固定字典表）
func Seed(db *gorm.DB) {
	var count int64
	db.Model(&models.Genre{}).Count(&count)
	if count == 0 {
		genres := []models.Genre{
			{ID: 1, Name: "Комедия"},
			{ID: 2, Name: "Драма"},
			{ID: 3, Name: "Мультфильм"},
			{ID: 4, Name: "Триллер"},
			{ID: 5, Name: "Документальный"},
			{ID: 6, Name: "Боевик"},
		}
		for _, g := range genres {
			if err := db.Create(&g).Error; err != nil {
				logger.L.Warn("Failed to seed genre", zap.String("name", g.Name), zap.Error(err))
			}
		}
	}

	db.Model(&models.Mpa{}).Count(&count)
	if count == 0 {
		ratings := []models.Mpa{
			{ID: 1, Name: "G"},
			{ID: 2, Name: "PG"},
			{ID: 3, Name: "PG-13"},
			{ID: 4, Name: "R"},
			{ID: 5, Name: "NC-17"},
		}
		for _, m := range ratings {
			if err := db.Create(&m).Error; err != nil {
				logger.L.Warn("Failed to seed MPA rating", zap.String("name", m.Name), zap.Error(err))
			}
		}
	}
}
