package services

import (
	"context"

	"gorm.io/gorm"

	"filmlink/internal/errs"
	"filmlink/internal/models"
	"filmlink/internal/storage"
)

// RecommendService 基于共同点赞的单邻居协同过滤。
// 在所有其他用户里找与目标用户点赞交集最大的一位（平分取 ID 较小者），
// 推荐对方赞过而目标用户没赞过的电影
type RecommendService struct {
	db    *gorm.DB
	likes storage.LikeIndex
}

func NewRecommendService(db *gorm.DB, likes storage.LikeIndex) *RecommendService {
	return &RecommendService{db: db, likes: likes}
}

func (s *RecommendService) Recommendations(ctx context.Context, userID int64) ([]models.Film, error) {
	var cnt int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&cnt).Error; err != nil {
		return nil, err
	}
	if cnt == 0 {
		return nil, errs.NotFound("пользователь с id = %d не найден", userID)
	}

	mine, err := s.likes.FilmsLikedBy(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(mine) == 0 {
		return []models.Film{}, nil
	}

	// 交集大小统计
	overlap := make(map[int64]int)
	for _, filmID := range mine {
		likers, err := s.likes.LikersOf(ctx, filmID)
		if err != nil {
			return nil, err
		}
		for _, v := range likers {
			if v != userID {
				overlap[v]++
			}
		}
	}

	best := int64(0)
	bestCount := 0
	for v, c := range overlap {
		if c > bestCount || (c == bestCount && c > 0 && v < best) {
			best = v
			bestCount = c
		}
	}
	if bestCount == 0 {
		// 没有任何人和目标用户有交集：返回空列表，不是错误
		return []models.Film{}, nil
	}

	theirs, err := s.likes.FilmsLikedBy(ctx, best)
	if err != nil {
		return nil, err
	}

	liked := make(map[int64]bool, len(mine))
	for _, id := range mine {
		liked[id] = true
	}
	ids := make([]int64, 0, len(theirs))
	for _, id := range theirs {
		if !liked[id] {
			ids = append(ids, id)
		}
	}
	return loadFilmsOrdered(ctx, s.db, ids)
}
