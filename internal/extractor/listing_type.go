package extractor

import (
	"regexp"

	"github.com/intent-parser/app/models"
)

// Hai tập từ khóa ý định, chạy trên text đã FoldStrict.
var (
	reRentIntent = regexp.MustCompile(`\b(?:muon thue|can thue|tim thue|thue)\b`)
	reSaleIntent = regexp.MustCompile(`\b(?:can mua|tim mua|mua|ban|so huu)\b`)
)

// InferListingType phân loại ý định thuê/mua-bán. Khi cả hai tập cùng khớp
// hoặc không tập nào khớp thì trả về nil, không đoán mò.
func InferListingType(text string) *string {
	rent := reRentIntent.MatchString(text)
	sale := reSaleIntent.MatchString(text)
	switch {
	case rent && !sale:
		v := models.LoaiHinhRent
		return &v
	case sale && !rent:
		v := models.LoaiHinhSale
		return &v
	default:
		return nil
	}
}
