package utils

import "testing"

func TestParseModelJSON(t *testing.T) {
	type payload struct {
		Category string `json:"category"`
		Bedrooms *int64 `json:"bedrooms"`
	}

	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Pure_JSON",
			input: `{"category":"can-ho-chung-cu","bedrooms":2}`,
			want:  "can-ho-chung-cu",
		},
		{
			name:  "Wrapped_In_Prose",
			input: `Đây là kết quả phân tích: {"category":"nha-rieng","bedrooms":3} mong là hữu ích.`,
			want:  "nha-rieng",
		},
		{
			name:  "Markdown_Fence",
			input: "```json\n{\"category\":\"dat-nen\"}\n```",
			want:  "dat-nen",
		},
		{
			name:  "Braces_In_String",
			input: `note {"category":"biet-thu","note":"gia {tam} 5 ty"} done`,
			want:  "biet-thu",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var p payload
			if err := ParseModelJSON(tc.input, &p); err != nil {
				t.Fatalf("ParseModelJSON(%q): %v", tc.input, err)
			}
			if p.Category != tc.want {
				t.Errorf("category = %q, want %q", p.Category, tc.want)
			}
		})
	}
}

func TestParseModelJSON_Invalid(t *testing.T) {
	var p map[string]interface{}
	for _, input := range []string{"", "không có json ở đây", "{broken"} {
		if err := ParseModelJSON(input, &p); err == nil {
			t.Errorf("input %q: expected error", input)
		}
	}
}
