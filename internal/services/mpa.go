package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"filmlink/internal/errs"
	"filmlink/internal/models"
	"filmlink/internal/utils"
)

const mpaCacheKey = "mpa:all"

// MpaService 年龄分级字典
type MpaService struct {
	db *gorm.DB
}

func NewMpaService(db *gorm.DB) *MpaService {
	return &MpaService{db: db}
}

func (s *MpaService) FindAll(ctx context.Context) ([]models.Mpa, error) {
	if cached := utils.GetCache().Get(mpaCacheKey); cached != nil {
		if ratings, ok := cached.([]models.Mpa); ok {
			return ratings, nil
		}
	}
	ratings := make([]models.Mpa, 0)
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&ratings).Error; err != nil {
		return nil, err
	}
	utils.GetCache().Set(mpaCacheKey, ratings, dictCacheTTL)
	return ratings, nil
}

func (s *MpaService) FindByID(ctx context.Context, id int64) (*models.Mpa, error) {
	var rating models.Mpa
	if err := s.db.WithContext(ctx).First(&rating, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("рейтинг с id = %d не найден", id)
		}
		return nil, err
	}
	return &rating, nil
}
