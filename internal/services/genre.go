package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"filmlink/internal/errs"
	"filmlink/internal/models"
	"filmlink/internal/utils"
)

const (
	genreCacheKey = "genres:all"
	dictCacheTTL  = 10 * time.Minute
)

// GenreService 类型字典，列表走进程内 LRU 缓存
type GenreService struct {
	db *gorm.DB
}

func NewGenreService(db *gorm.DB) *GenreService {
	return &GenreService{db: db}
}

func (s *GenreService) FindAll(ctx context.Context) ([]models.Genre, error) {
	if cached := utils.GetCache().Get(genreCacheKey); cached != nil {
		if genres, ok := cached.([]models.Genre); ok {
			return genres, nil
		}
	}
	genres := make([]models.Genre, 0)
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&genres).Error; err != nil {
		return nil, err
	}
	utils.GetCache().Set(genreCacheKey, genres, dictCacheTTL)
	return genres, nil
}

func (s *GenreService) FindByID(ctx context.Context, id int64) (*models.Genre, error) {
	var genre models.Genre
	if err := s.db.WithContext(ctx).First(&genre, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("жанр с id = %d не найден", id)
		}
		return nil, err
	}
	return &genre, nil
}
