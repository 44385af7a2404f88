package extractor

import (
	"testing"

	"github.com/intent-parser/internal/normalizer"
)

func TestInferListingType(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string // "" nghĩa là nil
	}{
		{name: "Rent_Thue", input: "thuê căn hộ quận 7", want: "rent"},
		{name: "Rent_Can_Thue", input: "cần thuê nhà nguyên căn", want: "rent"},
		{name: "Sale_Mua", input: "mua nhà riêng thủ đức", want: "sale"},
		{name: "Sale_Ban", input: "bán đất nền long an", want: "sale"},
		{name: "Sale_So_Huu", input: "sở hữu căn hộ cao cấp", want: "sale"},
		{name: "Both_Ambiguous", input: "mua bán cho thuê căn hộ", want: ""},
		{name: "Neither", input: "căn hộ 2pn quận 7", want: ""},
		{name: "No_Partial_Word", input: "xã Mường Thuền", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := InferListingType(normalizer.FoldStrict(tc.input))
			if tc.want == "" {
				if got != nil {
					t.Errorf("input %q: expected nil, got %q", tc.input, *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("input %q: expected %q, got nil", tc.input, tc.want)
			}
			if *got != tc.want {
				t.Errorf("input %q: got %q, want %q", tc.input, *got, tc.want)
			}
		})
	}
}
