package db

import (
	"context"
	"os"
	"time"

	"filmlink/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// InitRedis 按 REDIS_URL 创建客户端，未配置时返回 nil（热门榜缓存退化为直查）
func InitRedis() *redis.Client {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		logger.L.Info("REDIS_URL not set, popular films cache disabled")
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		logger.L.Warn("Invalid REDIS_URL, popular films cache disabled", zap.Error(err))
		return nil
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.L.Warn("Redis unreachable, popular films cache disabled", zap.Error(err))
		return nil
	}
	logger.L.Info("Redis connection established")
	return client
}
