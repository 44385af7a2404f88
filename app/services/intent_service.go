package services

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/intent-parser/app/models"
	"github.com/intent-parser/internal/extractor"
	"github.com/intent-parser/internal/location"
	"github.com/intent-parser/internal/normalizer"
)

// Truy vấn bị cắt về tối đa 400 ký tự (rune) trước khi xử lý.
const maxQueryRunes = 400

// ErrEmptyQuery lỗi duy nhất entry point trả ra: truy vấn rỗng sau khi trim.
var ErrEmptyQuery = errors.New("truy vấn không được để trống")

// IntentService service phân tích truy vấn tìm kiếm bất động sản.
// Mọi lỗi nội bộ (cache, tỉnh/thành, mô hình) đều được nuốt, chỉ truy vấn
// rỗng mới trả lỗi cho caller.
type IntentService struct {
	detector   *location.Detector
	reconciler *Reconciler   // nil => chỉ chạy heuristic
	cache      ICacheService // nil => không cache
	logger     *zap.Logger
	startTime  time.Time
}

// NewIntentService tạo mới IntentService
func NewIntentService(detector *location.Detector, reconciler *Reconciler, cache ICacheService, logger *zap.Logger) *IntentService {
	return &IntentService{
		detector:   detector,
		reconciler: reconciler,
		cache:      cache,
		logger:     logger,
		startTime:  time.Now(),
	}
}

// Interpret phân tích một truy vấn tự do thành bộ lọc tìm kiếm.
// Trả về kết quả, cờ cached và error (chỉ khi truy vấn rỗng).
func (is *IntentService) Interpret(ctx context.Context, rawQuery string, skipModel bool) (*models.Interpretation, bool, error) {
	trimmed := strings.TrimSpace(rawQuery)
	if trimmed == "" {
		return nil, false, ErrEmptyQuery
	}

	query := capQuery(trimmed, maxQueryRunes)
	fingerprint := queryFingerprint(query)

	// 1. Thử cache trước. Lỗi cache không được làm hỏng request.
	if is.cache != nil {
		result, found, err := is.cache.Get(ctx, fingerprint)
		if err != nil {
			is.logger.Warn("Lỗi đọc cache, bỏ qua", zap.Error(err))
		} else if found {
			is.logger.Debug("Cache hit", zap.String("fingerprint", fingerprint))
			return result, true, nil
		}
	}

	// 2. Chạy pipeline heuristic.
	heuristic := is.extractHeuristic(ctx, query)

	// 3. Hòa giải với mô hình ngôn ngữ nếu được bật.
	result := heuristic
	if !skipModel && is.reconciler != nil {
		result = is.reconciler.Reconcile(ctx, query, heuristic)
	}

	// 4. Lưu cache, nuốt lỗi.
	if is.cache != nil {
		if err := is.cache.Set(ctx, fingerprint, query, result); err != nil {
			is.logger.Warn("Lỗi ghi cache, bỏ qua", zap.Error(err))
		}
	}

	return result, false, nil
}

// extractHeuristic chạy toàn bộ pipeline luật trên một truy vấn đã trim/cap.
// Thuần túy trừ bước tra cứu tỉnh/thành (lỗi đã được Detector nuốt).
func (is *IntentService) extractHeuristic(ctx context.Context, query string) *models.Interpretation {
	start := time.Now()

	foldedStrict := normalizer.FoldStrict(query)
	foldedPrice := normalizer.FoldPrice(query)

	loaiHinh := extractor.InferListingType(foldedStrict)
	category := extractor.InferCategory(foldedStrict)
	priceMin, priceMax := extractor.RoundPrice(extractor.ExtractPriceRange(foldedPrice))
	bedrooms := extractor.ExtractBedrooms(foldedStrict)

	var province, district *string
	if is.detector != nil {
		province, district = is.detector.Detect(ctx, query, foldedStrict)
	}

	filters := models.IntentFilters{
		LoaiHinh: loaiHinh,
		Category: category,
		PriceMin: priceMin,
		PriceMax: priceMax,
		Bedrooms: bedrooms,
		Province: province,
		District: district,
	}
	filters.Keyword = extractor.ExtractKeyword(query, category)

	// Truy vấn không phân tích được không bao giờ bị bỏ rơi:
	// không có tín hiệu cấu trúc nào thì toàn bộ truy vấn thành keyword.
	if filters.Keyword == nil && !filters.HasStructuredSignal() {
		kw := query
		filters.Keyword = &kw
	}

	is.logger.Debug("Heuristic extraction hoàn thành",
		zap.String("query", query),
		zap.Duration("duration", time.Since(start)),
		zap.Bool("structured", filters.HasStructuredSignal()))

	return &models.Interpretation{
		Filters:     filters,
		Explanation: buildHeuristicExplanation(filters),
		Source:      models.SourceHeuristic,
	}
}

// buildHeuristicExplanation mô tả ngắn gọn các tiêu chí đã nhận diện.
func buildHeuristicExplanation(f models.IntentFilters) string {
	var parts []string

	if f.LoaiHinh != nil {
		if *f.LoaiHinh == models.LoaiHinhRent {
			parts = append(parts, "loại hình thuê")
		} else {
			parts = append(parts, "loại hình mua bán")
		}
	}
	if f.Category != nil {
		parts = append(parts, "danh mục "+*f.Category)
	}
	if f.PriceMin != nil || f.PriceMax != nil {
		parts = append(parts, "khoảng giá")
	}
	if f.Bedrooms != nil {
		parts = append(parts, fmt.Sprintf("%d phòng ngủ", *f.Bedrooms))
	}
	if f.Province != nil {
		parts = append(parts, "khu vực "+*f.Province)
	}
	if f.District != nil {
		parts = append(parts, *f.District)
	}

	if len(parts) == 0 {
		return "Không nhận diện được tiêu chí cụ thể, dùng toàn bộ truy vấn làm từ khóa."
	}
	return "Đã nhận diện: " + strings.Join(parts, ", ") + "."
}

// capQuery cắt truy vấn về tối đa max rune
func capQuery(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max]))
}

// queryFingerprint sinh fingerprint cache không phân biệt hoa thường và dấu
func queryFingerprint(query string) string {
	hash := sha256.Sum256([]byte(normalizer.FoldStrict(query)))
	return fmt.Sprintf("sha256:%x", hash)
}

// GetStartTime lấy thời gian khởi động service
func (is *IntentService) GetStartTime() time.Time {
	return is.startTime
}

// GetStats lấy thống kê service
func (is *IntentService) GetStats() map[string]interface{} {
	uptime := time.Since(is.startTime)

	return map[string]interface{}{
		"uptime_seconds": int64(uptime.Seconds()),
		"start_time":     is.startTime.Format(time.RFC3339),
		"status":         "running",
	}
}
