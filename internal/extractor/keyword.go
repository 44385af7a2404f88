package extractor

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/intent-parser/internal/normalizer"
)

// Các pass gột keyword chạy trên text GỐC (còn dấu, còn hoa thường) nên
// không dùng được \b của RE2 (chỉ tính chữ ASCII là word char).
// lb/rb là boundary tường minh, match cả ký tự phân cách.
const (
	lb = `(?:^|[\s\p{P}])`
	rb = `(?:$|[\s\p{P}])`

	numRaw  = `\d+(?:[.,]\d+)*`
	unitRaw = `(?:tỷ|tỉ|triệu|trieu|ty|ti|tr)`
	sepRaw  = `(?:\s*[-~]\s*|\s+(?:đến|den|tới|toi)\s+)`

	bedValRaw  = `(?:\d{1,2}|một|mot|hai|ba|bốn|bon|tư|tu|năm|nam|sáu|sau|bảy|bay|tám|tam|chín|chin|mười|muoi)`
	bedUnitRaw = `(?:pn|phòng ngủ|phong ngu|phòng|phong|ngủ|ngu|bedrooms?|beds?|br)`
)

var (
	reKwBedValueFirst = regexp.MustCompile(`(?i)` + lb + bedValRaw + `\s*` + bedUnitRaw + rb)
	reKwBedUnitFirst  = regexp.MustCompile(`(?i)` + lb + bedUnitRaw + `\s*` + bedValRaw + rb)

	reKwPriceRange = regexp.MustCompile(`(?i)` + lb + `(?:(?:từ|tu)\s+)?` + numRaw + sepRaw + numRaw + `\s*` + unitRaw + rb)
	reKwPriceDual  = regexp.MustCompile(`(?i)` + lb + numRaw + `\s*` + unitRaw + sepRaw + numRaw + `(?:\s*` + unitRaw + `)?` + rb)
	reKwPriceLead  = regexp.MustCompile(`(?i)` + lb + `(?:dưới|duoi|tối đa|toi da|không quá|khong qua|nhỏ hơn|nho hon|ít hơn|it hon|trên|tren|hơn|hon|từ|tu|ít nhất|it nhat|tối thiểu|toi thieu|tầm|tam|khoảng|khoang|quanh|gần|gan|xấp xỉ|xap xi)\s+` + numRaw + `\s*` + unitRaw + rb)
	reKwPriceBare  = regexp.MustCompile(`(?i)` + lb + numRaw + `\s*` + unitRaw + `(?:\s+(?:trở xuống|tro xuong|đổ lại|do lai|trở lên|tro len))?` + rb)

	// "can" không dấu vừa là "cần" vừa là "căn" nên chỉ gột khi đi kèm động từ ý định
	reKwCanVerb    = regexp.MustCompile(`(?i)` + lb + `(?:cần|can)\s+(?:mua|thuê|thue|tìm|tim|muốn|muon)` + rb)
	reKwConnective = regexp.MustCompile(`(?i)` + lb + `(?:cần|tìm|tim|muốn|muon|mua|thuê|thue|bán|ban|ở|o|tại|tai)` + rb)

	reKwComparison = regexp.MustCompile(`(?i)` + lb + `(?:dưới|duoi|trên|tren|từ|đến|den|tới|toi|hơn|hon|ít nhất|it nhat|không quá|khong qua|tầm|khoảng|khoang|quanh|gần|gan|nhỏ hơn|nho hon|ít hơn|it hon|tối đa|toi da|tối thiểu|toi thieu|trở lên|tro len|trở xuống|tro xuong|đổ lại|do lai|xấp xỉ|xap xi)` + rb)

	reKwStrayNum  = regexp.MustCompile(`(?:^|\s)` + numRaw + `\s*-(?:\s|$)`)
	reKwStrayDash = regexp.MustCompile(`(?:^|\s)[-~]+(?:\s|$)`)

	reKwQDistrict = regexp.MustCompile(`(?i)\bq\.?\s*(\d{1,2})\b`)

	reKwSpaces = regexp.MustCompile(`\s+`)
)

// ExtractKeyword gột mọi cụm đã nhận dạng được khỏi câu gốc, trả về phần
// text tự do còn lại. Nil nếu phần còn lại dưới 2 ký tự.
func ExtractKeyword(original string, category *string) *string {
	s := original

	// (a) cụm phòng ngủ, cả hai chiều số-đơn vị
	s = removeMatches(s, reKwBedValueFirst, vetoBathroom)
	s = removeMatches(s, reKwBedUnitFirst, vetoBathroom)

	// (b) cụm giá dạng khoảng và có từ khóa so sánh
	s = removeAll(s, reKwPriceRange)
	s = removeAll(s, reKwPriceDual)
	s = removeAll(s, reKwPriceLead)

	// (c) cụm "<số> <đơn vị>" trơ trọi, kèm hậu tố nếu có
	s = removeAll(s, reKwPriceBare)

	// (d) động từ ý định và từ nối vị trí
	s = removeAll(s, reKwCanVerb)
	s = removeAll(s, reKwConnective)

	// (e) từ khóa so sánh còn sót
	s = removeAll(s, reKwComparison)

	// (f) mảnh số-gạch ngang mồ côi
	s = removeAll(s, reKwStrayNum)
	s = removeAll(s, reKwStrayDash)

	// (g) chuẩn hóa "q7" thành "quận 7"
	s = reKwQDistrict.ReplaceAllString(s, "quận $1")

	if category != nil {
		if re := categorySynonyms[*category]; re != nil {
			s = removeAll(s, re)
		}
	}

	s = strings.TrimSpace(reKwSpaces.ReplaceAllString(s, " "))
	s = strings.Trim(s, "-~,. ")
	if utf8.RuneCountInString(s) < 2 {
		return nil
	}
	return &s
}

// removeAll thay mọi match bằng space, lặp tới khi ổn định vì lb/rb
// nuốt mất ký tự phân cách giữa hai cụm liền kề.
func removeAll(s string, re *regexp.Regexp) string {
	for {
		next := re.ReplaceAllString(s, " ")
		if next == s {
			return s
		}
		s = next
	}
}

// removeMatches như removeAll nhưng cho phép veto từng match.
func removeMatches(s string, re *regexp.Regexp, veto func(match, rest string) bool) string {
	for {
		changed := false
		var b strings.Builder
		last := 0
		for _, loc := range re.FindAllStringIndex(s, -1) {
			m := s[loc[0]:loc[1]]
			if veto != nil && veto(m, s[loc[1]:]) {
				continue
			}
			b.WriteString(s[last:loc[0]])
			b.WriteString(" ")
			last = loc[1]
			changed = true
		}
		b.WriteString(s[last:])
		if !changed {
			return s
		}
		s = b.String()
	}
}

// vetoBathroom chặn việc gột nhầm "2 phòng tắm" / "phòng wc" như cụm phòng ngủ.
func vetoBathroom(match, rest string) bool {
	folded := normalizer.FoldStrict(match)
	for _, bad := range []string{"phong tam", "phong wc", "phong ve"} {
		if strings.Contains(folded, bad) {
			return true
		}
	}
	if !strings.HasSuffix(folded, "phong") {
		return false
	}
	next := normalizer.FoldStrict(rest)
	if i := strings.IndexByte(next, ' '); i >= 0 {
		next = next[:i]
	}
	return next == "tam" || next == "wc" || next == "ve"
}
