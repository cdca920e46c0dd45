package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"filmlink/internal/errs"
	"filmlink/internal/models"
)

// DirectorService 导演字典维护
type DirectorService struct {
	db *gorm.DB
}

func NewDirectorService(db *gorm.DB) *DirectorService {
	return &DirectorService{db: db}
}

func (s *DirectorService) FindAll(ctx context.Context) ([]models.Director, error) {
	directors := make([]models.Director, 0)
	err := s.db.WithContext(ctx).Order("id ASC").Find(&directors).Error
	return directors, err
}

func (s *DirectorService) FindByID(ctx context.Context, id int64) (*models.Director, error) {
	var director models.Director
	if err := s.db.WithContext(ctx).First(&director, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("режиссёр с id = %d не найден", id)
		}
		return nil, err
	}
	return &director, nil
}

func (s *DirectorService) Create(ctx context.Context, director *models.Director) (*models.Director, error) {
	if err := s.db.WithContext(ctx).Create(director).Error; err != nil {
		return nil, err
	}
	return director, nil
}

func (s *DirectorService) Update(ctx context.Context, director *models.Director) (*models.Director, error) {
	if director.ID == 0 {
		return nil, errs.InvalidArgument("id не указан")
	}
	if _, err := s.FindByID(ctx, director.ID); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Director{}).
		Where("id = ?", director.ID).
		Update("name", director.Name).Error; err != nil {
		return nil, err
	}
	return s.FindByID(ctx, director.ID)
}

// Delete 连同 film_directors 关联一起清掉
func (s *DirectorService) Delete(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM film_directors WHERE director_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Director{}, id).Error
	})
}
