package extractor

import "testing"

func strp(s string) *string { return &s }

func TestExtractKeyword(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		category *string
		want     string // "" nghĩa là nil
	}{
		{
			name:     "Full_Query_Leaves_District",
			input:    "can ho 2pn q7 tam 5 ty",
			category: strp("can-ho-chung-cu"),
			want:     "quận 7",
		},
		{
			name:     "Range_And_Category_Stripped",
			input:    "nha rieng tu 3 den 5 ty thu duc",
			category: strp("nha-rieng"),
			want:     "thu duc",
		},
		{
			name:     "Intent_Verbs_Stripped",
			input:    "cần mua nhà ở gần chợ Bến Thành",
			category: nil,
			want:     "nhà chợ Bến Thành",
		},
		{
			name:     "Nothing_Left",
			input:    "tầm 5 tỷ",
			category: nil,
			want:     "",
		},
		{
			name:     "Bedroom_Both_Orders",
			input:    "căn hộ 2 phòng ngủ view sông",
			category: strp("can-ho-chung-cu"),
			want:     "view sông",
		},
		{
			name:     "Bathroom_Kept",
			input:    "nhà có 2 phòng tắm đẹp",
			category: nil,
			want:     "nhà có 2 phòng tắm đẹp",
		},
		{
			name:     "Q_Digits_Normalized",
			input:    "văn phòng Q.3",
			category: strp("van-phong"),
			want:     "quận 3",
		},
		{
			name:     "Price_Suffix_Stripped",
			input:    "nhà 2 tỷ trở xuống hóc môn",
			category: nil,
			want:     "nhà hóc môn",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractKeyword(tc.input, tc.category)
			if tc.want == "" {
				if got != nil {
					t.Errorf("input %q: expected nil keyword, got %q", tc.input, *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("input %q: expected %q, got nil", tc.input, tc.want)
			}
			if *got != tc.want {
				t.Errorf("input %q: got %q, want %q", tc.input, *got, tc.want)
			}
			t.Logf("Input: %s → Keyword: %s", tc.input, *got)
		})
	}
}

func TestExtractKeyword_TooShortBecomesNil(t *testing.T) {
	if got := ExtractKeyword("5 tỷ ở", nil); got != nil {
		t.Errorf("expected nil, got %q", *got)
	}
}
