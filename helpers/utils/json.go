package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var reMarkdownJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")

// ParseModelJSON đào object JSON ra khỏi câu trả lời của model — model hay
// bọc JSON trong văn xuôi hoặc markdown fence. Chiến lược: cắt từ dấu "{"
// đầu tiên tới "}" cuối cùng, rồi lần lượt thử fence và quét ngoặc cân bằng.
func ParseModelJSON(input string, target interface{}) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return fmt.Errorf("response rỗng")
	}

	start := strings.Index(input, "{")
	end := strings.LastIndex(input, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(input[start:end+1]), target); err == nil {
			return nil
		}
	}

	if m := reMarkdownJSON.FindStringSubmatch(input); len(m) > 1 {
		if err := json.Unmarshal([]byte(m[1]), target); err == nil {
			return nil
		}
	}

	if start >= 0 {
		if extracted := extractBalancedBraces(input[start:]); extracted != "" {
			if err := json.Unmarshal([]byte(extracted), target); err == nil {
				return nil
			}
		}
	}

	return fmt.Errorf("không tìm thấy JSON hợp lệ trong response: %s", truncate(input, 120))
}

// extractBalancedBraces lấy object đầu tiên có ngoặc nhọn cân bằng,
// bỏ qua ngoặc nằm trong string literal.
func extractBalancedBraces(input string) string {
	depth := 0
	inString := false
	escape := false
	start := 0

	for i, ch := range input {
		if escape {
			escape = false
			continue
		}
		switch {
		case ch == '\\':
			escape = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == '{':
			if depth == 0 {
				start = i
			}
			depth++
		case ch == '}':
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
		}
	}
	return ""
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
