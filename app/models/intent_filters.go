package models

// IntentFilters bộ lọc tìm kiếm được suy ra từ câu truy vấn.
// Mọi field đều độc lập, có thể null.
type IntentFilters struct {
	Keyword  *string `json:"keyword"`  // Phần text tự do còn lại, dài >= 2 ký tự
	LoaiHinh *string `json:"loaiHinh"` // "sale" | "rent"
	Category *string `json:"category"` // Slug danh mục BĐS
	PriceMin *int64  `json:"priceMin"` // VNĐ
	PriceMax *int64  `json:"priceMax"` // VNĐ
	AreaMin  *int64  `json:"areaMin"`  // m²
	AreaMax  *int64  `json:"areaMax"`  // m²
	Bedrooms *int64  `json:"bedrooms"` // 1..20
	Province *string `json:"province"` // Tên hiển thị có dấu
	District *string `json:"district"` // Tên hiển thị có dấu
}

// PriceRange khoảng giá trung gian trước khi làm tròn về VNĐ nguyên.
type PriceRange struct {
	Min *float64
	Max *float64
}

// Interpretation kết quả đầy đủ của một lần phân tích truy vấn.
type Interpretation struct {
	Filters     IntentFilters `json:"filters"`
	Explanation string        `json:"explanation"`
	Source      string        `json:"source"` // "model" | "heuristic"
}

// LoaiHinh constants
const (
	LoaiHinhSale = "sale"
	LoaiHinhRent = "rent"
)

// Source constants
const (
	SourceModel     = "model"
	SourceHeuristic = "heuristic"
)

// Category slugs
const (
	CategoryCanHo      = "can-ho-chung-cu"
	CategoryNhaRieng   = "nha-rieng"
	CategoryNhaMatPho  = "nha-mat-pho"
	CategoryDatNen     = "dat-nen"
	CategoryKhoXuong   = "kho-nha-xuong"
	CategoryBietThu    = "biet-thu"
	CategoryVanPhong   = "van-phong"
	CategoryMatBang    = "mat-bang"
	CategoryKhac       = "khac"
)

var validCategories = []string{
	CategoryCanHo,
	CategoryNhaRieng,
	CategoryNhaMatPho,
	CategoryDatNen,
	CategoryKhoXuong,
	CategoryBietThu,
	CategoryVanPhong,
	CategoryMatBang,
	CategoryKhac,
}

// IsValidCategory kiểm tra slug danh mục có hợp lệ không
func IsValidCategory(slug string) bool {
	for _, c := range validCategories {
		if slug == c {
			return true
		}
	}
	return false
}

// IsValidLoaiHinh kiểm tra loại hình có hợp lệ không
func IsValidLoaiHinh(v string) bool {
	return v == LoaiHinhSale || v == LoaiHinhRent
}

// HasStructuredSignal trả về true nếu có ít nhất một field cấu trúc khác null.
// Keyword và area không tính là tín hiệu cấu trúc.
func (f IntentFilters) HasStructuredSignal() bool {
	return f.LoaiHinh != nil || f.Category != nil || f.Bedrooms != nil ||
		f.PriceMin != nil || f.PriceMax != nil || f.Province != nil || f.District != nil
}
