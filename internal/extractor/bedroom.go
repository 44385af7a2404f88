package extractor

import (
	"regexp"
	"strconv"
	"strings"
)

// Chạy trên text đã FoldStrict. "phong ngu" phải đứng trước "phong"
// trong alternation để cụm đầy đủ thắng.
const (
	bedroomValuePat = `(\d{1,2}|mot|hai|ba|bon|tu|nam|sau|bay|tam|chin|muoi)`
	bedroomUnitPat  = `(pn|phong ngu|phong|ngu|bedrooms|bedroom|beds|bed|br)`
)

var (
	reBedroomValueFirst = regexp.MustCompile(`\b` + bedroomValuePat + `\s*` + bedroomUnitPat + `\b`)
	reBedroomUnitFirst  = regexp.MustCompile(`\b` + bedroomUnitPat + `\s*` + bedroomValuePat + `\b`)

	// Token theo sau "phong" khiến match bị loại: phòng tắm, phòng wc, phòng vệ sinh
	bathroomTokens = map[string]bool{"tam": true, "wc": true, "ve": true}

	bedroomWords = map[string]int64{
		"mot": 1, "hai": 2, "ba": 3, "bon": 4, "tu": 4,
		"nam": 5, "sau": 6, "bay": 7, "tam": 8, "chin": 9, "muoi": 10,
	}
)

// ExtractBedrooms trích số phòng ngủ từ text đã FoldStrict.
// Chấp nhận "2pn", "2 phòng ngủ", "phòng ngủ 2", "hai phòng", "3br"...
// nhưng không bao giờ đọc nhầm "2 phòng tắm" / "phòng wc" thành phòng ngủ.
func ExtractBedrooms(text string) *int64 {
	if n := scanBedrooms(reBedroomValueFirst, text, 1, 2); n != nil {
		return n
	}
	return scanBedrooms(reBedroomUnitFirst, text, 2, 1)
}

func scanBedrooms(re *regexp.Regexp, text string, valueGroup, unitGroup int) *int64 {
	for _, idx := range re.FindAllStringSubmatchIndex(text, -1) {
		value := text[idx[2*valueGroup]:idx[2*valueGroup+1]]
		unit := text[idx[2*unitGroup]:idx[2*unitGroup+1]]

		// RE2 không có negative lookahead nên kiểm tra token kế tiếp thủ công
		if unit == "phong" && followedByBathroomToken(text, idx[2*unitGroup+1]) {
			continue
		}
		// Dạng unit-first "phong <value>": "phong tam" là phòng tắm, không phải 8 phòng
		if unit == "phong" && unitGroup < valueGroup && bathroomTokens[value] {
			continue
		}

		n, ok := bedroomValue(value)
		if !ok || n < 1 || n > 20 {
			continue
		}
		return &n
	}
	return nil
}

func followedByBathroomToken(text string, unitEnd int) bool {
	rest := strings.TrimLeft(text[unitEnd:], " ")
	tok := rest
	if i := strings.IndexByte(rest, ' '); i >= 0 {
		tok = rest[:i]
	}
	return bathroomTokens[tok]
}

func bedroomValue(s string) (int64, bool) {
	if n, ok := bedroomWords[s]; ok {
		return n, true
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
