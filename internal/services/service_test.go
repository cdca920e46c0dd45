package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"filmlink/internal/db"
	"filmlink/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))
	db.Seed(gdb)
	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, login string) int64 {
	t.Helper()
	user := models.User{
		Email:    login + "@mail.ru",
		Login:    login,
		Name:     login,
		Birthday: models.NewDate(1990, time.March, 15),
	}
	require.NoError(t, gdb.Create(&user).Error)
	return user.ID
}

func seedFilm(t *testing.T, gdb *gorm.DB, name string, year int) int64 {
	t.Helper()
	film := models.Film{
		Name:        name,
		Description: "описание " + name,
		ReleaseDate: models.NewDate(year, time.June, 1),
		Duration:    120,
		MpaID:       1,
	}
	require.NoError(t, gdb.Omit(clause.Associations).Create(&film).Error)
	return film.ID
}

func seedLike(t *testing.T, gdb *gorm.DB, userID, filmID int64) {
	t.Helper()
	require.NoError(t, gdb.Create(&models.Like{UserID: userID, FilmID: filmID}).Error)
}

func filmIDs(films []models.Film) []int64 {
	ids := make([]int64, 0, len(films))
	for _, f := range films {
		ids = append(ids, f.ID)
	}
	return ids
}
