package extractor

import (
	"regexp"

	"github.com/intent-parser/app/models"
)

// categoryRule một luật phân loại danh mục trên text đã FoldStrict.
type categoryRule struct {
	slug string
	re   *regexp.Regexp
}

// Thứ tự luật quan trọng vì các danh mục dùng chung token
// ("dat nen" phải thắng trước luật "dat" trơ trọi, "nha mat pho"
// phải được xét trước "nha rieng").
var categoryRules = []categoryRule{
	{models.CategoryCanHo, regexp.MustCompile(`\b(?:can ho|chung cu|studio|apartment)\b`)},
	{models.CategoryBietThu, regexp.MustCompile(`\b(?:biet thu|villa)\b`)},
	{models.CategoryNhaMatPho, regexp.MustCompile(`\b(?:nha mat pho|nha mat tien|mat tien|nha pho)\b`)},
	{models.CategoryNhaRieng, regexp.MustCompile(`\b(?:nha rieng|nha nguyen can)\b`)},
	{models.CategoryDatNen, regexp.MustCompile(`\b(?:dat nen|dat tho cu|dat du an)\b`)},
	{models.CategoryVanPhong, regexp.MustCompile(`\b(?:van phong|office|officetel)\b`)},
	{models.CategoryMatBang, regexp.MustCompile(`\b(?:mat bang|ki ot|kiot|shophouse|cua hang)\b`)},
	{models.CategoryKhoXuong, regexp.MustCompile(`\b(?:kho xuong|nha xuong|kho bai|kho)\b`)},
}

var (
	// "nhà đất" là cụm chỉ chung bất động sản, không phải danh mục đất
	reNhaDat  = regexp.MustCompile(`\bnha dat\b`)
	reBareDat = regexp.MustCompile(`\bdat\b`)
)

// InferCategory phân loại truy vấn vào một slug danh mục, nil nếu không nhận ra.
func InferCategory(text string) *string {
	for _, rule := range categoryRules {
		if rule.re.MatchString(text) {
			slug := rule.slug
			return &slug
		}
	}
	if reNhaDat.MatchString(text) {
		return nil
	}
	if reBareDat.MatchString(text) {
		slug := models.CategoryDatNen
		return &slug
	}
	return nil
}

// categorySynonyms các cụm đồng nghĩa của từng danh mục (cả có dấu và không dấu),
// dùng để gột cụm danh mục khỏi keyword còn lại. Chạy trên text gốc còn dấu
// nên dùng boundary class thay cho \b (RE2 coi chữ có dấu là non-word).
var categorySynonyms = map[string]*regexp.Regexp{
	models.CategoryCanHo:     regexp.MustCompile(`(?i)` + lb + `(?:căn hộ|can ho|chung cư|chung cu|studio|apartment)` + rb),
	models.CategoryBietThu:   regexp.MustCompile(`(?i)` + lb + `(?:biệt thự|biet thu|villa)` + rb),
	models.CategoryNhaMatPho: regexp.MustCompile(`(?i)` + lb + `(?:nhà mặt phố|nha mat pho|nhà mặt tiền|nha mat tien|mặt tiền|mat tien|nhà phố|nha pho)` + rb),
	models.CategoryNhaRieng:  regexp.MustCompile(`(?i)` + lb + `(?:nhà riêng|nha rieng|nhà nguyên căn|nha nguyen can)` + rb),
	models.CategoryDatNen:    regexp.MustCompile(`(?i)` + lb + `(?:đất nền|dat nen|đất thổ cư|dat tho cu|đất dự án|dat du an|đất|dat)` + rb),
	models.CategoryVanPhong:  regexp.MustCompile(`(?i)` + lb + `(?:văn phòng|van phong|office|officetel)` + rb),
	models.CategoryMatBang:   regexp.MustCompile(`(?i)` + lb + `(?:mặt bằng|mat bang|ki ốt|ki ot|kiot|shophouse|cửa hàng|cua hang)` + rb),
	models.CategoryKhoXuong:  regexp.MustCompile(`(?i)` + lb + `(?:kho xưởng|kho xuong|nhà xưởng|nha xuong|kho bãi|kho bai|kho)` + rb),
}
