package normalizer

import "testing"

func TestFoldStrict(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "With_Diacritics",
			input:    "Căn Hộ Quận 7",
			expected: "can ho quan 7",
		},
		{
			name:     "D_Bar",
			input:    "Đất nền Thủ Đức",
			expected: "dat nen thu duc",
		},
		{
			name:     "Punctuation_Collapsed",
			input:    "nhà riêng, 3 - 5 tỷ!!!",
			expected: "nha rieng 3 5 ty",
		},
		{
			name:     "Whitespace_Runs",
			input:    "  can   ho \t q7  ",
			expected: "can ho q7",
		},
		{
			name:     "Already_Folded",
			input:    "can ho 2pn q7 tam 5 ty",
			expected: "can ho 2pn q7 tam 5 ty",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := FoldStrict(tc.input)
			if got != tc.expected {
				t.Errorf("FoldStrict(%q) = %q, want %q", tc.input, got, tc.expected)
			}
			t.Logf("Input: %s → Folded: %s", tc.input, got)
		})
	}
}

func TestFoldPrice_KeepsSeparators(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Comma_Decimal",
			input:    "tầm 5,5 tỷ",
			expected: "tam 5,5 ty",
		},
		{
			name:     "Dash_Range",
			input:    "3 - 5 Tỷ",
			expected: "3 - 5 ty",
		},
		{
			name:     "Dot_Thousands",
			input:    "1.200 triệu",
			expected: "1.200 trieu",
		},
		{
			name:     "Tilde_Range",
			input:    "2~3 tỷ",
			expected: "2~3 ty",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := FoldPrice(tc.input)
			if got != tc.expected {
				t.Errorf("FoldPrice(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestStripDiacritics_PreservesCase(t *testing.T) {
	got := StripDiacritics("Quận 7, Đà Nẵng")
	want := "Quan 7, Da Nang"
	if got != want {
		t.Errorf("StripDiacritics = %q, want %q", got, want)
	}
}
