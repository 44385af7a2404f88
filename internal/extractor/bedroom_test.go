package extractor

import (
	"testing"

	"github.com/intent-parser/internal/normalizer"
)

func TestExtractBedrooms(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  int64
	}{
		{name: "Compact_PN", input: "căn hộ 2pn quận 7", want: 2},
		{name: "Spaced_PN", input: "căn hộ 3 pn", want: 3},
		{name: "Full_Phong_Ngu", input: "nhà 4 phòng ngủ", want: 4},
		{name: "Unit_First", input: "phòng ngủ 2", want: 2},
		{name: "Bare_Phong", input: "nhà 3 phòng", want: 3},
		{name: "Bare_Ngu", input: "2 ngủ 2 wc", want: 2},
		{name: "English_BR", input: "apartment 3br district 2", want: 3},
		{name: "English_Bedroom", input: "2 bedroom apartment", want: 2},
		{name: "Word_Hai", input: "hai phòng ngủ", want: 2},
		{name: "Word_Tu", input: "tư phòng ngủ", want: 4},
		{name: "Word_Muoi", input: "mười phòng ngủ", want: 10},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractBedrooms(normalizer.FoldStrict(tc.input))
			if got == nil {
				t.Fatalf("input %q: expected %d, got nil", tc.input, tc.want)
			}
			if *got != tc.want {
				t.Errorf("input %q: got %d, want %d", tc.input, *got, tc.want)
			}
		})
	}
}

func TestExtractBedrooms_BathroomNeverCounts(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "Phong_Tam", input: "nhà 2 phòng tắm"},
		{name: "Phong_WC", input: "căn hộ 1 phòng wc"},
		{name: "Phong_Ve_Sinh", input: "nhà 2 phòng vệ sinh"},
		{name: "Unit_First_Phong_Tam", input: "phòng tắm rộng rãi"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractBedrooms(normalizer.FoldStrict(tc.input))
			if got != nil {
				t.Errorf("input %q: expected nil, got %d", tc.input, *got)
			}
		})
	}
}

func TestExtractBedrooms_Range(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "Zero", input: "0 phòng ngủ"},
		{name: "Above_Twenty", input: "21 phòng ngủ"},
		{name: "No_Unit", input: "căn hộ quận 2"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractBedrooms(normalizer.FoldStrict(tc.input))
			if got != nil {
				t.Errorf("input %q: expected nil, got %d", tc.input, *got)
			}
		})
	}
}
