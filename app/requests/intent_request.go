package requests

// ParseIntentRequest request phân tích truy vấn tìm kiếm
type ParseIntentRequest struct {
	Query     string `json:"query" binding:"required"` // Truy vấn tự do của người dùng
	SkipModel bool   `json:"skip_model,omitempty"`     // Bỏ qua bước hòa giải bằng mô hình
}

// InvalidateCacheRequest request invalidate cache
type InvalidateCacheRequest struct {
	RulesetVersion string `json:"ruleset_version,omitempty"` // Rỗng => clear toàn bộ
}
