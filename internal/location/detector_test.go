package location

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/intent-parser/internal/gazetteer"
	"github.com/intent-parser/internal/normalizer"
)

type fakeProvinceLookup struct {
	match *gazetteer.Match
	err   error
}

func (f *fakeProvinceLookup) Lookup(_ context.Context, _ string) (*gazetteer.Match, error) {
	return f.match, f.err
}

func newTestDetector(t *testing.T, lookup gazetteer.ProvinceLookup) *Detector {
	t.Helper()
	d, err := NewDetector(lookup, zap.NewNop())
	if err != nil {
		t.Fatalf("NewDetector: %v", err)
	}
	return d
}

func TestDetector_DistrictLongestAliasWins(t *testing.T) {
	d := newTestDetector(t, &fakeProvinceLookup{})

	testCases := []struct {
		name  string
		input string
		want  string // "" nghĩa là nil
	}{
		{name: "Quan_10_Not_Quan_1", input: "căn hộ quận 10", want: "Quận 10"},
		{name: "Quan_1", input: "nhà quận 1 giá tốt", want: "Quận 1"},
		{name: "Q7_Compact", input: "can ho 2pn q7 tam 5 ty", want: "Quận 7"},
		{name: "Thu_Duc", input: "nha rieng tu 3 den 5 ty thu duc", want: "Thủ Đức"},
		{name: "Binh_Thanh", input: "chung cư bình thạnh", want: "Bình Thạnh"},
		{name: "Ha_Dong", input: "nhà hà đông hà nội", want: "Hà Đông"},
		{name: "No_District", input: "căn hộ giá rẻ", want: ""},
		{name: "Q12_Not_Q1", input: "đất q12", want: "Quận 12"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, district := d.Detect(context.Background(), tc.input, normalizer.FoldStrict(tc.input))
			if tc.want == "" {
				if district != nil {
					t.Errorf("input %q: expected nil district, got %q", tc.input, *district)
				}
				return
			}
			if district == nil {
				t.Fatalf("input %q: expected %q, got nil", tc.input, tc.want)
			}
			if *district != tc.want {
				t.Errorf("input %q: got %q, want %q", tc.input, *district, tc.want)
			}
		})
	}
}

func TestDetector_ProvinceQualifierStripped(t *testing.T) {
	testCases := []struct {
		name     string
		returned string
		want     string
	}{
		{name: "Tinh_Prefix", returned: "Tỉnh Long An", want: "Long An"},
		{name: "Thanh_Pho_Prefix", returned: "Thành phố Hồ Chí Minh", want: "Hồ Chí Minh"},
		{name: "No_Prefix", returned: "Hà Nội", want: "Hà Nội"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := newTestDetector(t, &fakeProvinceLookup{
				match: &gazetteer.Match{ProvinceName: tc.returned},
			})
			province, _ := d.Detect(context.Background(), "x", "x")
			if province == nil {
				t.Fatal("expected province, got nil")
			}
			if *province != tc.want {
				t.Errorf("got %q, want %q", *province, tc.want)
			}
		})
	}
}

func TestDetector_ProvinceLookupErrorAbsorbed(t *testing.T) {
	d := newTestDetector(t, &fakeProvinceLookup{err: context.DeadlineExceeded})
	province, district := d.Detect(context.Background(), "nhà quận 3", normalizer.FoldStrict("nhà quận 3"))
	if province != nil {
		t.Errorf("expected nil province on lookup error, got %q", *province)
	}
	if district == nil || *district != "Quận 3" {
		t.Errorf("district should still resolve, got %v", district)
	}
}
