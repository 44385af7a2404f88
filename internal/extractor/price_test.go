package extractor

import (
	"testing"

	"github.com/intent-parser/internal/normalizer"
)

func extractPrice(t *testing.T, raw string) (min, max *int64) {
	t.Helper()
	r := ExtractPriceRange(normalizer.FoldPrice(raw))
	return RoundPrice(r)
}

func TestExtractPriceRange_Ranges(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantMin int64
		wantMax int64
	}{
		{
			name:    "Same_Unit_Range_Dash",
			input:   "nhà 3 - 5 tỷ",
			wantMin: 3_000_000_000,
			wantMax: 5_000_000_000,
		},
		{
			name:    "Same_Unit_Range_Tu_Den",
			input:   "từ 3 đến 5 tỷ",
			wantMin: 3_000_000_000,
			wantMax: 5_000_000_000,
		},
		{
			name:    "Same_Unit_Range_Reversed_Order",
			input:   "5 - 3 tỷ",
			wantMin: 3_000_000_000,
			wantMax: 5_000_000_000,
		},
		{
			name:    "Same_Unit_Range_Tilde",
			input:   "2~3 tỷ",
			wantMin: 2_000_000_000,
			wantMax: 3_000_000_000,
		},
		{
			name:    "Dual_Unit_Range",
			input:   "800 triệu - 1,2 tỷ",
			wantMin: 800_000_000,
			wantMax: 1_200_000_000,
		},
		{
			name:    "Dual_Unit_Range_Right_Unit_Omitted",
			input:   "1 tỷ đến 2",
			wantMin: 1_000_000_000,
			wantMax: 2_000_000_000,
		},
		{
			name:    "Decimal_Comma_Range",
			input:   "tu 1,5 den 2,5 ty",
			wantMin: 1_500_000_000,
			wantMax: 2_500_000_000,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			min, max := extractPrice(t, tc.input)
			if min == nil || max == nil {
				t.Fatalf("expected both bounds for %q, got min=%v max=%v", tc.input, min, max)
			}
			if *min != tc.wantMin || *max != tc.wantMax {
				t.Errorf("input %q: got [%d, %d], want [%d, %d]", tc.input, *min, *max, tc.wantMin, tc.wantMax)
			}
			if *min > *max {
				t.Errorf("invariant violated: min %d > max %d", *min, *max)
			}
		})
	}
}

func TestExtractPriceRange_SingleBounds(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantMin *int64
		wantMax *int64
	}{
		{
			name:    "Upper_Trailing_Tro_Xuong",
			input:   "5 tỷ trở xuống",
			wantMax: i64(5_000_000_000),
		},
		{
			name:    "Upper_Trailing_Do_Lai",
			input:   "2 tỷ đổ lại",
			wantMax: i64(2_000_000_000),
		},
		{
			name:    "Upper_Leading_Duoi",
			input:   "dưới 3 tỷ",
			wantMax: i64(3_000_000_000),
		},
		{
			name:    "Upper_Leading_Khong_Qua",
			input:   "không quá 800 triệu",
			wantMax: i64(800_000_000),
		},
		{
			name:    "Lower_Trailing_Tro_Len",
			input:   "2 tỷ trở lên",
			wantMin: i64(2_000_000_000),
		},
		{
			name:    "Lower_Leading_Tren",
			input:   "trên 1,5 tỷ",
			wantMin: i64(1_500_000_000),
		},
		{
			name:    "Lower_Leading_Tu",
			input:   "từ 900 triệu",
			wantMin: i64(900_000_000),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			min, max := extractPrice(t, tc.input)
			assertBound(t, "min", min, tc.wantMin)
			assertBound(t, "max", max, tc.wantMax)
		})
	}
}

func TestExtractPriceRange_Approximate(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "Keyword_Tam", input: "tầm 5 tỷ"},
		{name: "Keyword_Khoang", input: "khoảng 5 tỷ"},
		{name: "Keyword_Gan", input: "gần 5 tỷ"},
		{name: "Bare_Value", input: "căn hộ 5 tỷ"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			min, max := extractPrice(t, tc.input)
			if min == nil || max == nil {
				t.Fatalf("expected approximate range for %q", tc.input)
			}
			if *min != 4_500_000_000 || *max != 5_500_000_000 {
				t.Errorf("input %q: got [%d, %d], want [4500000000, 5500000000]", tc.input, *min, *max)
			}
		})
	}
}

func TestExtractPriceRange_Units(t *testing.T) {
	min, max := extractPrice(t, "tầm 500 tr")
	if min == nil || max == nil || *min != 450_000_000 || *max != 550_000_000 {
		t.Errorf("triệu shorthand: got min=%v max=%v", min, max)
	}

	min, max = extractPrice(t, "1.200 triệu")
	if min == nil || max == nil || *min != 1_080_000_000 || *max != 1_320_000_000 {
		t.Errorf("dot-thousands: got min=%v max=%v", min, max)
	}
}

func TestExtractPriceRange_GateRejectsUnrelatedNumbers(t *testing.T) {
	testCases := []string{
		"căn hộ 2 phòng ngủ quận 7",
		"nhà 3 tầng mặt tiền 5m",
		"cho thuê văn phòng 100m2",
	}

	for _, input := range testCases {
		min, max := extractPrice(t, input)
		if min != nil || max != nil {
			t.Errorf("input %q: expected no price, got min=%v max=%v", input, min, max)
		}
	}
}

func i64(v int64) *int64 { return &v }

func assertBound(t *testing.T, label string, got, want *int64) {
	t.Helper()
	if want == nil {
		if got != nil {
			t.Errorf("%s: expected nil, got %d", label, *got)
		}
		return
	}
	if got == nil {
		t.Errorf("%s: expected %d, got nil", label, *want)
		return
	}
	if *got != *want {
		t.Errorf("%s: got %d, want %d", label, *got, *want)
	}
}
