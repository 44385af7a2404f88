package services

import (
	"context"
	"time"

	"github.com/intent-parser/app/models"
)

// CacheStats thống kê cache
type CacheStats struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// ICacheService interface định nghĩa các method cần thiết cho cache kết quả phân tích
type ICacheService interface {
	// Get lấy kết quả phân tích từ cache theo fingerprint
	Get(ctx context.Context, key string) (*models.Interpretation, bool, error)

	// Set lưu kết quả phân tích vào cache
	Set(ctx context.Context, key, rawQuery string, result *models.Interpretation) error

	// Delete xóa một entry khỏi cache
	Delete(ctx context.Context, key string) error

	// Clear xóa tất cả cache
	Clear(ctx context.Context) error

	// InvalidateByRulesetVersion xóa các entry được tạo bởi phiên bản bộ luật khác
	InvalidateByRulesetVersion(ctx context.Context, rulesetVersion string) error

	// GetStats lấy thống kê cache
	GetStats(ctx context.Context) (*CacheStats, error)

	// Exists kiểm tra key có tồn tại không
	Exists(ctx context.Context, key string) (bool, error)

	// GetTTL lấy TTL còn lại của key
	GetTTL(ctx context.Context, key string) (time.Duration, error)

	// Close đóng kết nối (nếu cần)
	Close() error
}
