package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"filmlink/internal/errs"
	"filmlink/internal/models"
)

type gormVoteLedger struct {
	db *gorm.DB
}

func NewVoteLedger(db *gorm.DB) VoteLedger { return &gormVoteLedger{db: db} }

func (l *gormVoteLedger) WithTx(tx *gorm.DB) VoteLedger { return &gormVoteLedger{db: tx} }

// 状态机：NoVote→Liked(+1) NoVote→Disliked(-1) Liked↔Disliked(±2)
// Liked→NoVote(-1) Disliked→NoVote(+1)；同态迁移拒绝
func (l *gormVoteLedger) Vote(ctx context.Context, reviewID, userID int64, isLike bool) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prev models.ReviewVote
		err := tx.Where("review_id = ? AND user_id = ?", reviewID, userID).First(&prev).Error
		switch {
		case err == nil:
			if prev.IsLike == isLike {
				return errs.Conflict("пользователь %d уже голосовал так за отзыв %d", userID, reviewID)
			}
			// 改票：去掉旧票影响再施加新票，净变动 ±2
			if err := tx.Model(&models.ReviewVote{}).
				Where("id = ?", prev.ID).
				Update("is_like", isLike).Error; err != nil {
				return err
			}
			return bumpUseful(tx, reviewID, 2*voteDelta(isLike))
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := models.ReviewVote{ReviewID: reviewID, UserID: userID, IsLike: isLike}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			return bumpUseful(tx, reviewID, voteDelta(isLike))
		default:
			return err
		}
	})
}

func (l *gormVoteLedger) Retract(ctx context.Context, reviewID, userID int64, wasLike bool) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("review_id = ? AND user_id = ? AND is_like = ?", reviewID, userID, wasLike).
			Delete(&models.ReviewVote{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.NotFound("голос пользователя %d за отзыв %d не найден", userID, reviewID)
		}
		return bumpUseful(tx, reviewID, -voteDelta(wasLike))
	})
}

func voteDelta(isLike bool) int {
	if isLike {
		return 1
	}
	return -1
}

func bumpUseful(tx *gorm.DB, reviewID int64, delta int) error {
	return tx.Model(&models.Review{}).
		Where("id = ?", reviewID).
		UpdateColumn("useful", gorm.Expr("useful + ?", delta)).Error
}
