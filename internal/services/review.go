package services

import (
	"context"
	"errors"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"filmlink/internal/errs"
	"filmlink/internal/logger"
	"filmlink/internal/models"
	"filmlink/internal/storage"
)

// ReviewService 电影评价与有用性投票
type ReviewService struct {
	db        *gorm.DB
	votes     storage.VoteLedger
	feed      storage.FeedLog
	sanitizer *bluemonday.Policy
}

func NewReviewService(db *gorm.DB, votes storage.VoteLedger, feed storage.FeedLog) *ReviewService {
	return &ReviewService{
		db:        db,
		votes:     votes,
		feed:      feed,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *ReviewService) FindByID(ctx context.Context, id int64) (*models.Review, error) {
	var review models.Review
	if err := s.db.WithContext(ctx).First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("отзыв с id = %d не найден", id)
		}
		return nil, err
	}
	return &review, nil
}

// FindAll 评价列表，filmId=0 表示全部；按 useful 降序、ID 升序
func (s *ReviewService) FindAll(ctx context.Context, filmID int64, count int) ([]models.Review, error) {
	if count <= 0 {
		count = 10
	}
	reviews := make([]models.Review, 0)
	q := s.db.WithContext(ctx).Order("useful DESC, id ASC").Limit(count)
	if filmID > 0 {
		q = q.Where("film_id = ?", filmID)
	}
	err := q.Find(&reviews).Error
	return reviews, err
}

func (s *ReviewService) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := s.checkRefs(ctx, review); err != nil {
		return nil, err
	}
	review.Content = s.sanitizer.Sanitize(review.Content)
	review.Useful = 0

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		return s.feed.WithTx(tx).Append(ctx, *review.UserID, review.ID, models.EventTypeReview, models.OperationAdd)
	})
	if err != nil {
		return nil, err
	}
	logger.L.Info("Review created", zap.Int64("id", review.ID), zap.Int64p("filmId", review.FilmID))
	return review, nil
}

// Update 只允许改内容和正负面标记；动态流记在原作者名下
func (s *ReviewService) Update(ctx context.Context, upd *models.Review) (*models.Review, error) {
	if upd.ID == 0 {
		return nil, errs.InvalidArgument("id не указан")
	}
	review, err := s.FindByID(ctx, upd.ID)
	if err != nil {
		return nil, err
	}

	review.Content = s.sanitizer.Sanitize(upd.Content)
	review.IsPositive = upd.IsPositive

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Review{}).
			Where("id = ?", review.ID).
			Updates(map[string]any{
				"content":     review.Content,
				"is_positive": review.IsPositive,
			}).Error; err != nil {
			return err
		}
		return s.feed.WithTx(tx).Append(ctx, *review.UserID, review.ID, models.EventTypeReview, models.OperationUpdate)
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(ctx, review.ID)
}

func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	review, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", id).Delete(&models.ReviewVote{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Review{}, id).Error; err != nil {
			return err
		}
		return s.feed.WithTx(tx).Append(ctx, *review.UserID, id, models.EventTypeReview, models.OperationRemove)
	})
}

// Vote 点有用/没用。重复同向投票报 Conflict，反向改票净变动 ±2
func (s *ReviewService) Vote(ctx context.Context, reviewID, userID int64, isLike bool) (*models.Review, error) {
	if _, err := s.FindByID(ctx, reviewID); err != nil {
		return nil, err
	}
	if err := s.checkUserID(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.votes.Vote(ctx, reviewID, userID, isLike); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, reviewID)
}

// Retract 撤销指定方向的投票；没有对应投票时报 NotFound
func (s *ReviewService) Retract(ctx context.Context, reviewID, userID int64, wasLike bool) (*models.Review, error) {
	if _, err := s.FindByID(ctx, reviewID); err != nil {
		return nil, err
	}
	if err := s.checkUserID(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.votes.Retract(ctx, reviewID, userID, wasLike); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, reviewID)
}

func (s *ReviewService) checkRefs(ctx context.Context, review *models.Review) error {
	if review.UserID == nil || review.FilmID == nil || review.IsPositive == nil {
		return errs.InvalidArgument("отзыв заполнен не полностью")
	}
	if err := s.checkUserID(ctx, *review.UserID); err != nil {
		return err
	}
	var cnt int64
	if err := s.db.WithContext(ctx).Model(&models.Film{}).Where("id = ?", *review.FilmID).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		return errs.NotFound("фильм с id = %d не найден", *review.FilmID)
	}
	return nil
}

func (s *ReviewService) checkUserID(ctx context.Context, id int64) error {
	var cnt int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		return errs.NotFound("пользователь с id = %d не найден", id)
	}
	return nil
}
