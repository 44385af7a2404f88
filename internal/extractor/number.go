package extractor

import (
	"math"
	"strconv"
	"strings"
)

// ParseLocaleNumber đọc một chuỗi số kiểu Việt Nam, trong đó "," và "."
// đều có thể là dấu thập phân hoặc dấu phân tách hàng nghìn:
//   - có cả hai: "." là hàng nghìn, "," là thập phân ("1.234,5" → 1234.5)
//   - chỉ có ",": dấu thập phân ("5,5" → 5.5)
//   - chỉ có ".": hàng nghìn nếu có nhiều nhóm hoặc đúng 3 chữ số sau dấu
//     ("1.200" → 1200), ngược lại là thập phân ("5.5" → 5.5)
//
// Trả về false nếu kết quả không phải số dương hữu hạn.
func ParseLocaleNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	commas := strings.Count(s, ",")
	dots := strings.Count(s, ".")

	switch {
	case commas > 0 && dots > 0:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case commas > 1:
		// "1,200,000" — cách đọc hữu hạn duy nhất là phân tách hàng nghìn
		s = strings.ReplaceAll(s, ",", "")
	case commas == 1:
		s = strings.ReplaceAll(s, ",", ".")
	case dots > 1:
		s = strings.ReplaceAll(s, ".", "")
	case dots == 1:
		if i := strings.LastIndex(s, "."); len(s)-i-1 == 3 {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) || v <= 0 {
		return 0, false
	}
	return v, true
}
