package extractor

import (
	"math"
	"regexp"

	"github.com/intent-parser/app/models"
)

// Các pattern giá chạy trên text đã FoldPrice (không dấu, giữ ". , - ~").
// Thứ tự alternation của unit quan trọng: "trieu" phải đứng trước "tr".
const (
	numPat  = `(\d+(?:[.,]\d+)*)`
	unitPat = `(trieu|tr|ty|ti)`
	sepPat  = `(?:\s*[-~]\s*|\s+(?:den|toi)\s+)`
)

var (
	// Gate: phải có cụm "<số> <đơn vị tiền>" thì mới xét giá,
	// tránh ăn nhầm các con số khác (số phòng ngủ, số quận...).
	rePriceGate = regexp.MustCompile(`\d(?:[\d.,])*\s*(?:trieu|tr|ty|ti)\b`)

	reSameUnitRange = regexp.MustCompile(`(?:\btu\s+)?` + numPat + sepPat + numPat + `\s*` + unitPat + `\b`)
	reDualUnitRange = regexp.MustCompile(numPat + `\s*` + unitPat + sepPat + numPat + `(?:\s*` + unitPat + `)?\b`)
	reUpperSuffix   = regexp.MustCompile(numPat + `\s*` + unitPat + `\s+(?:tro xuong|do lai)\b`)
	reUpperPrefix   = regexp.MustCompile(`\b(?:duoi|toi da|khong qua|nho hon|it hon)\s+` + numPat + `\s*` + unitPat + `\b`)
	reLowerSuffix   = regexp.MustCompile(numPat + `\s*` + unitPat + `\s+tro len\b`)
	reLowerPrefix   = regexp.MustCompile(`\b(?:tren|hon|tu|it nhat|toi thieu)\s+` + numPat + `\s*` + unitPat + `\b`)
	reApproxPrefix  = regexp.MustCompile(`\b(?:tam|khoang|quanh|gan|xap xi)\s+` + numPat + `\s*` + unitPat + `\b`)
	reBareValue     = regexp.MustCompile(numPat + `\s*` + unitPat + `\b`)
)

func unitMultiplier(unit string) float64 {
	switch unit {
	case "ty", "ti":
		return 1e9
	default: // trieu, tr
		return 1e6
	}
}

// priceRule một luật trích khoảng giá thuần túy: text → range hoặc nil.
type priceRule func(text string) *models.PriceRange

// Thứ tự luật là bất biến của thuật toán: luật khớp đầu tiên thắng,
// đổi chỗ hai luật sẽ đổi kết quả trên các cụm chồng lấn.
var priceRules = []priceRule{
	matchSameUnitRange,
	matchDualUnitRange,
	matchUpperSuffix,
	matchUpperPrefix,
	matchLowerSuffix,
	matchLowerPrefix,
	matchApprox,
	matchBareValue,
}

// ExtractPriceRange trích khoảng giá {min, max} VNĐ từ text đã FoldPrice.
// Trả về range rỗng nếu không có cụm giá nào.
func ExtractPriceRange(text string) models.PriceRange {
	if !rePriceGate.MatchString(text) {
		return models.PriceRange{}
	}
	for _, rule := range priceRules {
		if r := rule(text); r != nil {
			return normalizeRange(*r)
		}
	}
	return models.PriceRange{}
}

func matchSameUnitRange(text string) *models.PriceRange {
	m := reSameUnitRange.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n1, ok1 := ParseLocaleNumber(m[1])
	n2, ok2 := ParseLocaleNumber(m[2])
	if !ok1 || !ok2 {
		return nil
	}
	mul := unitMultiplier(m[3])
	min, max := n1*mul, n2*mul
	return &models.PriceRange{Min: &min, Max: &max}
}

func matchDualUnitRange(text string) *models.PriceRange {
	m := reDualUnitRange.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n1, ok1 := ParseLocaleNumber(m[1])
	n2, ok2 := ParseLocaleNumber(m[3])
	if !ok1 || !ok2 {
		return nil
	}
	leftUnit := m[2]
	rightUnit := m[4]
	if rightUnit == "" {
		rightUnit = leftUnit
	}
	min := n1 * unitMultiplier(leftUnit)
	max := n2 * unitMultiplier(rightUnit)
	return &models.PriceRange{Min: &min, Max: &max}
}

func matchUpperSuffix(text string) *models.PriceRange {
	return matchSingleBound(reUpperSuffix, text, false)
}

func matchUpperPrefix(text string) *models.PriceRange {
	return matchSingleBound(reUpperPrefix, text, false)
}

func matchLowerSuffix(text string) *models.PriceRange {
	return matchSingleBound(reLowerSuffix, text, true)
}

func matchLowerPrefix(text string) *models.PriceRange {
	return matchSingleBound(reLowerPrefix, text, true)
}

func matchSingleBound(re *regexp.Regexp, text string, isLower bool) *models.PriceRange {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, ok := ParseLocaleNumber(m[1])
	if !ok {
		return nil
	}
	v := n * unitMultiplier(m[2])
	if isLower {
		return &models.PriceRange{Min: &v}
	}
	return &models.PriceRange{Max: &v}
}

func matchApprox(text string) *models.PriceRange {
	return approxRange(reApproxPrefix, text)
}

// Một con số đứng trơ trọi cũng được hiểu là "tầm giá đó":
// người tìm nhà gõ "5 tỷ" thường muốn quanh mức 5 tỷ chứ không phải đúng 5 tỷ.
func matchBareValue(text string) *models.PriceRange {
	return approxRange(reBareValue, text)
}

func approxRange(re *regexp.Regexp, text string) *models.PriceRange {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, ok := ParseLocaleNumber(m[1])
	if !ok {
		return nil
	}
	mul := unitMultiplier(m[2])
	min := math.Round(0.9 * n * mul)
	max := math.Round(1.1 * n * mul)
	return &models.PriceRange{Min: &min, Max: &max}
}

// normalizeRange đảm bảo min <= max, không tin thứ tự từ upstream.
func normalizeRange(r models.PriceRange) models.PriceRange {
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		r.Min, r.Max = r.Max, r.Min
	}
	return r
}

// RoundPrice làm tròn hai biên về VNĐ nguyên.
func RoundPrice(r models.PriceRange) (min, max *int64) {
	if r.Min != nil {
		v := int64(math.Round(*r.Min))
		min = &v
	}
	if r.Max != nil {
		v := int64(math.Round(*r.Max))
		max = &v
	}
	return min, max
}
