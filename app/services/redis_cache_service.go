package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/intent-parser/app/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisCacheService tầng cache nóng sử dụng Redis, key theo fingerprint truy vấn
type RedisCacheService struct {
	client *redis.Client
	logger *zap.Logger
	prefix string
	ttl    time.Duration

	// Stats, atomic vì Get chạy song song từ nhiều request
	hits   atomic.Int64
	misses atomic.Int64
}

// NewRedisCacheService tạo mới Redis cache service
func NewRedisCacheService(redisURL string, ttl time.Duration, logger *zap.Logger) (*RedisCacheService, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("lỗi parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("không thể kết nối Redis: %w", err)
	}

	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &RedisCacheService{
		client: client,
		logger: logger,
		prefix: "intent_parser:",
		ttl:    ttl,
	}, nil
}

// Get lấy kết quả phân tích từ cache
func (rcs *RedisCacheService) Get(ctx context.Context, key string) (*models.Interpretation, bool, error) {
	cacheKey := rcs.prefix + key

	val, err := rcs.client.Get(ctx, cacheKey).Result()
	if err == redis.Nil {
		rcs.misses.Add(1)
		return nil, false, nil
	}
	if err != nil {
		rcs.logger.Error("Lỗi get từ Redis", zap.Error(err), zap.String("key", cacheKey))
		return nil, false, err
	}

	var result models.Interpretation
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		rcs.logger.Error("Lỗi unmarshal cache data", zap.Error(err))
		return nil, false, err
	}

	rcs.hits.Add(1)
	rcs.logger.Debug("Redis cache hit", zap.String("key", key))
	return &result, true, nil
}

// Set lưu kết quả phân tích vào cache. Redis chỉ lưu Interpretation,
// rawQuery dùng cho tầng persistent.
func (rcs *RedisCacheService) Set(ctx context.Context, key, rawQuery string, result *models.Interpretation) error {
	cacheKey := rcs.prefix + key

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("lỗi marshal cache data: %w", err)
	}

	err = rcs.client.Set(ctx, cacheKey, data, rcs.ttl).Err()
	if err != nil {
		rcs.logger.Error("Lỗi set vào Redis", zap.Error(err), zap.String("key", cacheKey))
		return err
	}

	rcs.logger.Debug("Đã lưu vào Redis cache", zap.String("key", key))
	return nil
}

// Delete xóa key khỏi cache
func (rcs *RedisCacheService) Delete(ctx context.Context, key string) error {
	cacheKey := rcs.prefix + key

	err := rcs.client.Del(ctx, cacheKey).Err()
	if err != nil {
		rcs.logger.Error("Lỗi delete từ Redis", zap.Error(err), zap.String("key", cacheKey))
		return err
	}

	rcs.logger.Debug("Đã xóa khỏi Redis cache", zap.String("key", key))
	return nil
}

// Clear xóa toàn bộ cache
func (rcs *RedisCacheService) Clear(ctx context.Context) error {
	pattern := rcs.prefix + "*"
	keys, err := rcs.client.Keys(ctx, pattern).Result()
	if err != nil {
		return fmt.Errorf("lỗi lấy danh sách keys: %w", err)
	}

	if len(keys) > 0 {
		err = rcs.client.Del(ctx, keys...).Err()
		if err != nil {
			return fmt.Errorf("lỗi xóa keys: %w", err)
		}
	}

	rcs.logger.Info("Đã clear Redis cache", zap.Int("keys_deleted", len(keys)))
	return nil
}

// InvalidateByRulesetVersion xóa cache theo phiên bản bộ luật.
// Redis không lưu ruleset version trong value, nên clear toàn bộ prefix.
func (rcs *RedisCacheService) InvalidateByRulesetVersion(ctx context.Context, rulesetVersion string) error {
	return rcs.Clear(ctx)
}

// GetStats lấy thống kê cache
func (rcs *RedisCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	_, err := rcs.client.Info(ctx, "memory").Result()
	if err != nil {
		rcs.logger.Warn("Không thể lấy Redis memory info", zap.Error(err))
	}

	total := rcs.hits.Load() + rcs.misses.Load()
	hitRate := float64(0)
	if total > 0 {
		hitRate = float64(rcs.hits.Load()) / float64(total)
	}

	// Estimate số items từ pattern
	keys, err := rcs.client.Keys(ctx, rcs.prefix+"*").Result()
	totalItems := int64(0)
	if err == nil {
		totalItems = int64(len(keys))
	}

	return &CacheStats{
		HitRate:    hitRate,
		TotalHits:  rcs.hits.Load(),
		TotalMiss:  rcs.misses.Load(),
		TotalItems: totalItems,
	}, nil
}

// Exists kiểm tra key có tồn tại không
func (rcs *RedisCacheService) Exists(ctx context.Context, key string) (bool, error) {
	cacheKey := rcs.prefix + key

	exists, err := rcs.client.Exists(ctx, cacheKey).Result()
	if err != nil {
		return false, err
	}

	return exists > 0, nil
}

// GetTTL lấy TTL của key
func (rcs *RedisCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	cacheKey := rcs.prefix + key

	ttl, err := rcs.client.TTL(ctx, cacheKey).Result()
	if err != nil {
		return 0, err
	}

	return ttl, nil
}

// Close đóng kết nối Redis
func (rcs *RedisCacheService) Close() error {
	return rcs.client.Close()
}

// GetClient lấy Redis client (cho debug)
func (rcs *RedisCacheService) GetClient() *redis.Client {
	return rcs.client
}
