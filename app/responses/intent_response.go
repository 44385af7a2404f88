package responses

import (
	"github.com/intent-parser/app/models"
)

// ParseIntentResponse response phân tích truy vấn
type ParseIntentResponse struct {
	Filters          models.IntentFilters `json:"filters"`            // Bộ lọc suy ra từ truy vấn
	Explanation      string               `json:"explanation"`        // Giải thích cho người dùng
	Source           string               `json:"source"`             // "model" | "heuristic"
	Cached           bool                 `json:"cached"`             // Có hit cache không
	ProcessingTimeMs int64                `json:"processing_time_ms"` // Thời gian xử lý (ms)
}

// CacheStatsResponse response thống kê cache
type CacheStatsResponse struct {
	HitRate    float64 `json:"hit_rate"`    // Tỷ lệ hit
	TotalHits  int64   `json:"total_hits"`  // Tổng số hit
	TotalMiss  int64   `json:"total_miss"`  // Tổng số miss
	TotalItems int64   `json:"total_items"` // Tổng số entry
}

// ErrorResponse response lỗi
type ErrorResponse struct {
	Error   string `json:"error"`   // Mã lỗi
	Message string `json:"message"` // Thông báo lỗi
}

// SuccessResponse response thành công
type SuccessResponse struct {
	Success bool        `json:"success"`        // Có thành công không
	Message string      `json:"message"`        // Thông báo
	Data    interface{} `json:"data,omitempty"` // Dữ liệu
}

// HealthCheckResponse response kiểm tra sức khỏe
type HealthCheckResponse struct {
	Status    string            `json:"status"`    // Trạng thái sức khỏe
	Timestamp string            `json:"timestamp"` // Thời gian kiểm tra
	Uptime    string            `json:"uptime"`    // Thời gian hoạt động
	Version   string            `json:"version"`   // Phiên bản
	Services  map[string]string `json:"services"`  // Trạng thái các service
}
