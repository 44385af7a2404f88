package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/intent-parser/app/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoCacheService persistent cache service sử dụng MongoDB + LRU in-memory.
// Key là fingerprint đã tính sẵn của truy vấn, không hash lại ở tầng này.
type MongoCacheService struct {
	db             *mongo.Database
	collection     *mongo.Collection
	l1Cache        *lru.Cache[string, *models.Interpretation] // LRU in-memory cache
	rulesetVersion string
	ttl            time.Duration
	logger         *zap.Logger

	// Metrics, đếm từ nhiều request goroutine đồng thời nên phải atomic
	totalHits atomic.Int64
	totalMiss atomic.Int64
	l1Hits    atomic.Int64
	l1Miss    atomic.Int64
	mongoHits atomic.Int64
	mongoMiss atomic.Int64
}

// NewMongoCacheService tạo mới MongoCacheService
func NewMongoCacheService(db *mongo.Database, l1Size int, rulesetVersion string, ttl time.Duration, logger *zap.Logger) (*MongoCacheService, error) {
	l1Cache, err := lru.New[string, *models.Interpretation](l1Size)
	if err != nil {
		return nil, fmt.Errorf("không thể tạo LRU cache: %w", err)
	}

	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}

	collection := db.Collection("intent_cache")

	// Tạo indexes cho performance. expires_at là TTL index để Mongo tự dọn.
	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "fingerprint", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{bson.E{Key: "ruleset_version", Value: 1}},
		},
		{
			Keys:    bson.D{bson.E{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
		{
			Keys: bson.D{bson.E{Key: "last_accessed", Value: 1}},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = collection.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		logger.Warn("Không thể tạo indexes cho intent_cache", zap.Error(err))
	}

	service := &MongoCacheService{
		db:             db,
		collection:     collection,
		l1Cache:        l1Cache,
		rulesetVersion: rulesetVersion,
		ttl:            ttl,
		logger:         logger,
	}

	return service, nil
}

// Get lấy kết quả phân tích từ cache (L1 → MongoDB)
func (mcs *MongoCacheService) Get(ctx context.Context, key string) (*models.Interpretation, bool, error) {
	// 1. Thử L1 cache trước (in-memory LRU)
	if result, found := mcs.l1Cache.Get(key); found {
		mcs.l1Hits.Add(1)
		mcs.totalHits.Add(1)
		mcs.logger.Debug("L1 cache hit", zap.String("key", key))
		return result, true, nil
	}
	mcs.l1Miss.Add(1)

	// 2. Thử MongoDB persistent cache
	var cacheEntry models.IntentCache
	filter := bson.M{"fingerprint": key}

	err := mcs.collection.FindOne(ctx, filter).Decode(&cacheEntry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			mcs.mongoMiss.Add(1)
			mcs.totalMiss.Add(1)
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("lỗi query MongoDB cache: %w", err)
	}

	// Entry của bộ luật cũ hoặc đã hết hạn (TTL monitor chưa kịp dọn) coi như miss
	if !cacheEntry.IsValidRulesetVersion(mcs.rulesetVersion) || cacheEntry.IsExpired() {
		mcs.mongoMiss.Add(1)
		mcs.totalMiss.Add(1)
		return nil, false, nil
	}

	mcs.mongoHits.Add(1)
	mcs.totalHits.Add(1)

	// Update last_accessed và access_count
	go mcs.updateAccessStats(context.Background(), cacheEntry.ID)

	// Lưu vào L1 cache cho lần sau
	mcs.l1Cache.Add(key, &cacheEntry.Result)

	mcs.logger.Debug("MongoDB cache hit", zap.String("fingerprint", key))

	return &cacheEntry.Result, true, nil
}

// Set lưu kết quả phân tích vào cache (L1 + MongoDB)
func (mcs *MongoCacheService) Set(ctx context.Context, key, rawQuery string, result *models.Interpretation) error {
	// 1. Lưu vào L1 cache
	mcs.l1Cache.Add(key, result)

	// 2. Lưu vào MongoDB persistent cache
	cacheEntry := models.NewIntentCache(key, rawQuery, *result, mcs.rulesetVersion, mcs.ttl)

	opts := options.Replace().SetUpsert(true)
	filter := bson.M{"fingerprint": key}

	_, err := mcs.collection.ReplaceOne(ctx, filter, cacheEntry, opts)
	if err != nil {
		mcs.logger.Error("Lỗi lưu vào MongoDB cache",
			zap.Error(err),
			zap.String("fingerprint", key))
		return fmt.Errorf("lỗi lưu vào MongoDB cache: %w", err)
	}

	mcs.logger.Debug("Đã lưu vào cache",
		zap.String("fingerprint", key),
		zap.String("source", result.Source))

	return nil
}

// Delete xóa entry khỏi cache
func (mcs *MongoCacheService) Delete(ctx context.Context, key string) error {
	// 1. Xóa khỏi L1 cache
	mcs.l1Cache.Remove(key)

	// 2. Xóa khỏi MongoDB
	filter := bson.M{"fingerprint": key}

	_, err := mcs.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("lỗi xóa khỏi MongoDB cache: %w", err)
	}

	return nil
}

// Clear xóa tất cả cache
func (mcs *MongoCacheService) Clear(ctx context.Context) error {
	// 1. Clear L1 cache
	mcs.l1Cache.Purge()

	// 2. Clear MongoDB cache
	_, err := mcs.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("lỗi clear MongoDB cache: %w", err)
	}

	// Reset metrics
	mcs.totalHits.Store(0)
	mcs.totalMiss.Store(0)
	mcs.l1Hits.Store(0)
	mcs.l1Miss.Store(0)
	mcs.mongoHits.Store(0)
	mcs.mongoMiss.Store(0)

	return nil
}

// InvalidateByRulesetVersion xóa các entry không thuộc phiên bản bộ luật hiện hành
func (mcs *MongoCacheService) InvalidateByRulesetVersion(ctx context.Context, rulesetVersion string) error {
	// 1. Clear toàn bộ L1 cache (đơn giản nhất)
	mcs.l1Cache.Purge()

	// 2. Xóa records trong MongoDB có ruleset_version cũ
	filter := bson.M{"ruleset_version": bson.M{"$ne": rulesetVersion}}

	result, err := mcs.collection.DeleteMany(ctx, filter)
	if err != nil {
		return fmt.Errorf("lỗi invalidate cache theo ruleset version: %w", err)
	}

	mcs.logger.Info("Đã invalidate cache",
		zap.String("ruleset_version", rulesetVersion),
		zap.Int64("deleted_count", result.DeletedCount))

	return nil
}

// GetStats lấy thống kê cache
func (mcs *MongoCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	// L1 cache stats
	l1Size := mcs.l1Cache.Len()

	// MongoDB cache stats
	mongoCount, err := mcs.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("lỗi đếm documents trong MongoDB cache: %w", err)
	}

	// Calculate hit rate
	total := mcs.totalHits.Load() + mcs.totalMiss.Load()
	hitRate := float64(0)
	if total > 0 {
		hitRate = float64(mcs.totalHits.Load()) / float64(total)
	}

	stats := &CacheStats{
		HitRate:    hitRate,
		TotalHits:  mcs.totalHits.Load(),
		TotalMiss:  mcs.totalMiss.Load(),
		TotalItems: mongoCount,
	}

	mcs.logger.Debug("Cache stats",
		zap.Float64("hit_rate", hitRate),
		zap.Int64("total_hits", mcs.totalHits.Load()),
		zap.Int64("total_miss", mcs.totalMiss.Load()),
		zap.Int("l1_size", l1Size),
		zap.Int64("mongo_count", mongoCount))

	return stats, nil
}

// Exists kiểm tra key có tồn tại không
func (mcs *MongoCacheService) Exists(ctx context.Context, key string) (bool, error) {
	// Check L1 first
	if mcs.l1Cache.Contains(key) {
		return true, nil
	}

	// Check MongoDB
	filter := bson.M{"fingerprint": key}

	count, err := mcs.collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("lỗi check exists trong MongoDB: %w", err)
	}

	return count > 0, nil
}

// GetTTL lấy TTL còn lại của key theo expires_at
func (mcs *MongoCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	var cacheEntry models.IntentCache
	filter := bson.M{"fingerprint": key}

	err := mcs.collection.FindOne(ctx, filter).Decode(&cacheEntry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, nil
		}
		return 0, fmt.Errorf("lỗi query TTL từ MongoDB: %w", err)
	}

	remaining := time.Until(cacheEntry.ExpiresAt)
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}

// Close đóng kết nối
func (mcs *MongoCacheService) Close() error {
	// L1 cache không cần close
	// MongoDB connection được quản lý bởi caller
	return nil
}

// updateAccessStats cập nhật thống kê truy cập (async)
func (mcs *MongoCacheService) updateAccessStats(ctx context.Context, id primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": id}
	update := bson.M{
		"$set": bson.M{"last_accessed": time.Now()},
		"$inc": bson.M{"access_count": 1},
	}

	_, err := mcs.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		mcs.logger.Warn("Lỗi update access stats", zap.Error(err))
	}
}

// GetL1Stats lấy thống kê L1 cache
func (mcs *MongoCacheService) GetL1Stats() map[string]interface{} {
	return map[string]interface{}{
		"l1_size":    mcs.l1Cache.Len(),
		"l1_hits":    mcs.l1Hits.Load(),
		"l1_miss":    mcs.l1Miss.Load(),
		"mongo_hits": mcs.mongoHits.Load(),
		"mongo_miss": mcs.mongoMiss.Load(),
		"total_hits": mcs.totalHits.Load(),
		"total_miss": mcs.totalMiss.Load(),
	}
}

// WarmUp làm nóng L1 từ các entry được truy cập nhiều nhất trong MongoDB
func (mcs *MongoCacheService) WarmUp(ctx context.Context, limit int) error {
	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "access_count", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := mcs.collection.Find(ctx, bson.M{"ruleset_version": mcs.rulesetVersion}, opts)
	if err != nil {
		return fmt.Errorf("lỗi warm up cache: %w", err)
	}
	defer cursor.Close(ctx)

	count := 0
	for cursor.Next(ctx) {
		var cacheEntry models.IntentCache
		if err := cursor.Decode(&cacheEntry); err != nil {
			mcs.logger.Warn("Lỗi decode cache entry trong warm up", zap.Error(err))
			continue
		}
		if cacheEntry.IsExpired() {
			continue
		}

		mcs.l1Cache.Add(cacheEntry.Fingerprint, &cacheEntry.Result)
		count++
	}

	mcs.logger.Info("Cache warm up hoàn thành",
		zap.Int("loaded_items", count),
		zap.Int("l1_size", mcs.l1Cache.Len()))

	return nil
}
