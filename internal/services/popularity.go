package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"filmlink/internal/errs"
	"filmlink/internal/logger"
	"filmlink/internal/models"
)

const (
	popularKeyPrefix = "popular:"
	popularCacheTTL  = 30 * time.Second
)

// PopularityService 热门榜。分值 = 当前点赞数，平分按电影 ID 升序，
// 结果可选地走 Redis 缓存（JSON + TTL），点赞写入时整体失效
type PopularityService struct {
	db    *gorm.DB
	cache *redis.Client // nil 表示不启用缓存
}

func NewPopularityService(db *gorm.DB, cache *redis.Client) *PopularityService {
	return &PopularityService{db: db, cache: cache}
}

// Popular 取前 count 部电影，可按类型和上映年份过滤。
// count=0 返回空列表；零赞电影只要过滤命中也会进榜（排在末尾）
func (s *PopularityService) Popular(ctx context.Context, count int, genreID int64, year int) ([]models.Film, error) {
	if count < 0 {
		return nil, errs.InvalidArgument("count не может быть отрицательным")
	}
	if count == 0 {
		return []models.Film{}, nil
	}

	key := fmt.Sprintf("%s%d:%d:%d", popularKeyPrefix, count, genreID, year)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var films []models.Film
			if uErr := json.Unmarshal(data, &films); uErr == nil {
				return films, nil
			}
		}
	}

	ids, err := s.rank(ctx, count, genreID, year)
	if err != nil {
		return nil, err
	}
	films, err := loadFilmsOrdered(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(films); err == nil {
			if err := s.cache.Set(ctx, key, payload, popularCacheTTL).Err(); err != nil {
				logger.L.Warn("Failed to cache popular films", zap.Error(err))
			}
		}
	}
	return films, nil
}

func (s *PopularityService) rank(ctx context.Context, count int, genreID int64, year int) ([]int64, error) {
	q := s.db.WithContext(ctx).
		Table("films").
		Select("films.id").
		Joins("LEFT JOIN likes ON likes.film_id = films.id")

	if genreID > 0 {
		q = q.Joins("JOIN film_genres fg ON fg.film_id = films.id").
			Where("fg.genre_id = ?", genreID)
	}
	if year > 0 {
		// 半开区间，postgres 和 sqlite 下行为一致
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(1, 0, 0)
		q = q.Where("films.release_date >= ? AND films.release_date < ?", from, to)
	}

	ids := make([]int64, 0)
	err := q.Group("films.id").
		Order("COUNT(likes.id) DESC, films.id ASC").
		Limit(count).
		Pluck("films.id", &ids).Error
	return ids, err
}

// Invalidate 清空热门榜缓存，点赞集合变化后调用
func (s *PopularityService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	keys, err := s.cache.Keys(ctx, popularKeyPrefix+"*").Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		logger.L.Warn("Failed to invalidate popular films cache", zap.Error(err))
	}
}
