package normalizer

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var reSpaces = regexp.MustCompile(`\s+`)

// StripDiacritics loại bỏ dấu tiếng Việt một cách an toàn.
// "đ" không phải combining mark nên phải thay riêng.
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	out, _, _ := transform.String(t, s)
	out = strings.ReplaceAll(out, "đ", "d")
	out = strings.ReplaceAll(out, "Đ", "D")
	return out
}

// isMn kiểm tra xem rune có phải là diacritic mark không
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

// FoldStrict chuẩn hóa để so khớp từ khóa: lowercase, bỏ dấu,
// mọi ký tự ngoài [chữ, số, khoảng trắng] thành một space, gọn khoảng trắng.
func FoldStrict(s string) string {
	return fold(s, false)
}

// FoldPrice như FoldStrict nhưng giữ lại ". , - ~" để nhận cụm giá
// ("5,5 tỷ", "3 - 5 ty", "1.200 trieu").
func FoldPrice(s string) string {
	return fold(s, true)
}

func fold(s string, keepPriceMarks bool) string {
	s = strings.ToLower(StripDiacritics(s))
	s = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return r
		case r == '.' || r == ',' || r == '-' || r == '~':
			if keepPriceMarks {
				return r
			}
			return ' '
		default:
			return ' '
		}
	}, s)
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}
