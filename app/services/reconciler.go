package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/intent-parser/app/models"
	"github.com/intent-parser/helpers/utils"
	"github.com/intent-parser/internal/external"
	"github.com/intent-parser/internal/normalizer"
)

// Thông điệp cố định khi mô hình không dùng được, kết quả thuần heuristic.
const fallbackExplanation = "Hệ thống đã phân tích truy vấn theo bộ luật nội bộ."

// systemPrompt chỉ dẫn cố định cho mô hình: khung nhiệm vụ, yêu cầu không phân
// biệt hoa thường/dấu, bảng mở rộng viết tắt tỉnh/thành và output shape.
const systemPrompt = `Bạn là công cụ phân tích truy vấn tìm kiếm bất động sản tiếng Việt.
Nhiệm vụ: trích xuất tiêu chí tìm kiếm từ câu truy vấn của người dùng.
Truy vấn có thể viết thường, viết hoa, có dấu hoặc không dấu — xử lý như nhau.

Mở rộng viết tắt địa danh trước khi điền province:
- hcm, tphcm, sg, sai gon => Hồ Chí Minh
- hn, ha noi => Hà Nội
- dn, da nang => Đà Nẵng
- ct, can tho => Cần Thơ
- bd, binh duong => Bình Dương
- vt, vung tau => Bà Rịa - Vũng Tàu

Trả về DUY NHẤT một object JSON, không giải thích ngoài JSON, theo đúng shape:
{
  "keyword": string | null,
  "loaiHinh": "sale" | "rent" | null,
  "category": string | null,
  "priceMin": number | null,
  "priceMax": number | null,
  "areaMin": number | null,
  "areaMax": number | null,
  "bedrooms": number | null,
  "province": string | null,
  "district": string | null,
  "explanation": string
}

category chỉ nhận một trong các slug:
can-ho-chung-cu, nha-rieng, nha-mat-pho, dat-nen, kho-nha-xuong,
biet-thu, van-phong, mat-bang, khac.
priceMin/priceMax tính bằng VNĐ. bedrooms trong khoảng 1-20.
province/district là tên hiển thị chuẩn có dấu.
keyword là phần text tự do còn lại SAU KHI đã bóc các tiêu chí, không bao giờ
lặp lại nguyên văn cả câu truy vấn.`

// Reconciler hòa giải kết quả heuristic với kết quả từ mô hình ngôn ngữ.
// Chính sách ưu tiên từng field được tách thành bảng merge riêng để test độc lập.
type Reconciler struct {
	client    external.ChatClient
	maxTokens int
	logger    *zap.Logger
}

// NewReconciler tạo mới Reconciler. client nil nghĩa là luôn fallback heuristic.
func NewReconciler(client external.ChatClient, maxTokens int, logger *zap.Logger) *Reconciler {
	if maxTokens <= 0 {
		maxTokens = 512
	}
	return &Reconciler{
		client:    client,
		maxTokens: maxTokens,
		logger:    logger,
	}
}

// modelReply payload thô từ mô hình, mọi field đều untrusted
type modelReply struct {
	Keyword     interface{} `json:"keyword"`
	LoaiHinh    interface{} `json:"loaiHinh"`
	Category    interface{} `json:"category"`
	PriceMin    interface{} `json:"priceMin"`
	PriceMax    interface{} `json:"priceMax"`
	AreaMin     interface{} `json:"areaMin"`
	AreaMax     interface{} `json:"areaMax"`
	Bedrooms    interface{} `json:"bedrooms"`
	Province    interface{} `json:"province"`
	District    interface{} `json:"district"`
	Explanation interface{} `json:"explanation"`
}

// Reconcile gọi mô hình và merge với kết quả heuristic. Mọi lỗi (mạng, timeout,
// JSON hỏng) đều kết thúc ở fallback heuristic, không bao giờ trả lỗi ra ngoài.
func (r *Reconciler) Reconcile(ctx context.Context, query string, heuristic *models.Interpretation) *models.Interpretation {
	if r == nil || r.client == nil {
		return r.heuristicFallback(heuristic)
	}

	messages := []external.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf("Truy vấn: %q", query)},
	}

	raw, err := r.client.Complete(ctx, messages, r.maxTokens)
	if err != nil {
		r.logger.Warn("Gọi mô hình thất bại, dùng kết quả heuristic",
			zap.Error(err),
			zap.String("query", query))
		return r.heuristicFallback(heuristic)
	}

	var reply modelReply
	if err := utils.ParseModelJSON(raw, &reply); err != nil {
		r.logger.Warn("Không parse được JSON từ mô hình, dùng kết quả heuristic",
			zap.Error(err),
			zap.String("query", query))
		return r.heuristicFallback(heuristic)
	}

	return r.merge(query, reply, heuristic)
}

// merge áp dụng bảng ưu tiên từng field giữa kết quả mô hình và heuristic.
func (r *Reconciler) merge(query string, reply modelReply, heuristic *models.Interpretation) *models.Interpretation {
	h := heuristic.Filters

	var f models.IntentFilters

	// Model thắng khi có giá trị hợp lệ, heuristic là lưới đỡ.
	f.LoaiHinh = firstString(coerceEnum(reply.LoaiHinh, models.IsValidLoaiHinh), h.LoaiHinh)
	f.Category = firstString(coerceEnum(reply.Category, models.IsValidCategory), h.Category)
	f.PriceMin = firstInt(coercePositiveInt(reply.PriceMin), h.PriceMin)
	f.PriceMax = firstInt(coercePositiveInt(reply.PriceMax), h.PriceMax)
	f.Bedrooms = firstInt(coerceBedrooms(reply.Bedrooms), h.Bedrooms)

	// Diện tích và địa danh chỉ lấy từ mô hình: heuristic không suy ra diện
	// tích, còn địa danh mô hình đã qua bảng mở rộng viết tắt.
	f.AreaMin = coercePositiveInt(reply.AreaMin)
	f.AreaMax = coercePositiveInt(reply.AreaMax)
	f.Province = coerceString(reply.Province)
	f.District = coerceString(reply.District)

	// priceMin <= priceMax phải đúng bất kể hai nguồn trộn thế nào.
	if f.PriceMin != nil && f.PriceMax != nil && *f.PriceMin > *f.PriceMax {
		f.PriceMin, f.PriceMax = f.PriceMax, f.PriceMin
	}
	if f.AreaMin != nil && f.AreaMax != nil && *f.AreaMin > *f.AreaMax {
		f.AreaMin, f.AreaMax = f.AreaMax, f.AreaMin
	}

	// Keyword: nếu mô hình chỉ lặp lại nguyên văn truy vấn, hoặc trả về
	// chuỗi dưới 2 ký tự, thì bỏ và lấy keyword heuristic thay thế.
	modelKeyword := coerceString(reply.Keyword)
	if modelKeyword != nil && normalizer.FoldStrict(*modelKeyword) == normalizer.FoldStrict(query) {
		r.logger.Debug("Mô hình echo nguyên truy vấn làm keyword, bỏ qua",
			zap.String("keyword", *modelKeyword))
		modelKeyword = nil
	}
	if modelKeyword != nil && utf8.RuneCountInString(*modelKeyword) < 2 {
		r.logger.Debug("Keyword từ mô hình quá ngắn, bỏ qua",
			zap.String("keyword", *modelKeyword))
		modelKeyword = nil
	}
	f.Keyword = firstString(modelKeyword, h.Keyword)
	if f.Keyword == nil && !f.HasStructuredSignal() {
		kw := query
		f.Keyword = &kw
	}

	explanation := fallbackExplanation
	if e := coerceString(reply.Explanation); e != nil {
		explanation = *e
	}

	return &models.Interpretation{
		Filters:     f,
		Explanation: explanation,
		Source:      models.SourceModel,
	}
}

// heuristicFallback trạng thái kết thúc bắt buộc của mọi lỗi mô hình.
func (r *Reconciler) heuristicFallback(heuristic *models.Interpretation) *models.Interpretation {
	return &models.Interpretation{
		Filters:     heuristic.Filters,
		Explanation: fallbackExplanation,
		Source:      models.SourceHeuristic,
	}
}

// coerceString ép về *string đã trim, nil nếu rỗng hoặc sai kiểu
func coerceString(v interface{}) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// coerceEnum ép về *string và loại giá trị ngoài tập cho phép
func coerceEnum(v interface{}, valid func(string) bool) *string {
	s := coerceString(v)
	if s == nil || !valid(*s) {
		return nil
	}
	return s
}

// coercePositiveInt ép số dương hữu hạn về *int64, nil nếu không hợp lệ.
// Chấp nhận cả number lẫn string vì mô hình hay trả "5000000000".
func coercePositiveInt(v interface{}) *int64 {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return nil
	}
	n := int64(math.Round(f))
	if n <= 0 {
		return nil
	}
	return &n
}

// coerceBedrooms như coercePositiveInt nhưng thêm biên 1..20
func coerceBedrooms(v interface{}) *int64 {
	n := coercePositiveInt(v)
	if n == nil || *n < 1 || *n > 20 {
		return nil
	}
	return n
}

// firstString giá trị đầu tiên khác nil
func firstString(candidates ...*string) *string {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}

// firstInt giá trị đầu tiên khác nil
func firstInt(candidates ...*int64) *int64 {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}
