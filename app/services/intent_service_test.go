package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/intent-parser/app/models"
	"github.com/intent-parser/internal/gazetteer"
	"github.com/intent-parser/internal/location"
)

// fakeProvinceLookup trả về cố định một match hoặc một lỗi
type fakeProvinceLookup struct {
	match *gazetteer.Match
	err   error
}

func (f *fakeProvinceLookup) Lookup(ctx context.Context, text string) (*gazetteer.Match, error) {
	return f.match, f.err
}

// memoryCache cache in-memory tối giản cho test
type memoryCache struct {
	entries  map[string]*models.Interpretation
	setCalls int
	getErr   error
	setErr   error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]*models.Interpretation{}}
}

func (m *memoryCache) Get(ctx context.Context, key string) (*models.Interpretation, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	r, ok := m.entries[key]
	return r, ok, nil
}

func (m *memoryCache) Set(ctx context.Context, key, rawQuery string, result *models.Interpretation) error {
	m.setCalls++
	if m.setErr != nil {
		return m.setErr
	}
	m.entries[key] = result
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, key string) error { delete(m.entries, key); return nil }
func (m *memoryCache) Clear(ctx context.Context) error {
	m.entries = map[string]*models.Interpretation{}
	return nil
}
func (m *memoryCache) InvalidateByRulesetVersion(ctx context.Context, v string) error { return nil }
func (m *memoryCache) GetStats(ctx context.Context) (*CacheStats, error) {
	return &CacheStats{TotalItems: int64(len(m.entries))}, nil
}
func (m *memoryCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.entries[key]
	return ok, nil
}
func (m *memoryCache) GetTTL(ctx context.Context, key string) (time.Duration, error) { return 0, nil }
func (m *memoryCache) Close() error                                                  { return nil }

func newTestService(t *testing.T, cache ICacheService) *IntentService {
	t.Helper()
	detector, err := location.NewDetector(&fakeProvinceLookup{}, zap.NewNop())
	if err != nil {
		t.Fatalf("không tạo được detector: %v", err)
	}
	return NewIntentService(detector, nil, cache, zap.NewNop())
}

func TestIntentService_EmptyQueryIsCallerError(t *testing.T) {
	svc := newTestService(t, nil)

	for _, query := range []string{"", "   ", "\t\n"} {
		_, _, err := svc.Interpret(context.Background(), query, true)
		if !errors.Is(err, ErrEmptyQuery) {
			t.Errorf("Interpret(%q) err = %v, muốn ErrEmptyQuery", query, err)
		}
	}
}

func TestIntentService_ApartmentScenario(t *testing.T) {
	svc := newTestService(t, nil)

	result, cached, err := svc.Interpret(context.Background(), "can ho 2pn q7 tam 5 ty", true)
	if err != nil {
		t.Fatalf("Interpret lỗi: %v", err)
	}
	if cached {
		t.Error("lần gọi đầu không thể là cache hit")
	}

	f := result.Filters
	if f.Category == nil || *f.Category != models.CategoryCanHo {
		t.Errorf("category = %v, muốn can-ho-chung-cu", f.Category)
	}
	if f.Bedrooms == nil || *f.Bedrooms != 2 {
		t.Errorf("bedrooms = %v, muốn 2", f.Bedrooms)
	}
	if f.District == nil || *f.District != "Quận 7" {
		t.Errorf("district = %v, muốn Quận 7", f.District)
	}
	if f.PriceMin == nil || *f.PriceMin != 4_500_000_000 {
		t.Errorf("priceMin = %v, muốn 4500000000", f.PriceMin)
	}
	if f.PriceMax == nil || *f.PriceMax != 5_500_000_000 {
		t.Errorf("priceMax = %v, muốn 5500000000", f.PriceMax)
	}
	if result.Source != models.SourceHeuristic {
		t.Errorf("source = %q", result.Source)
	}
	t.Logf("explanation: %s", result.Explanation)
}

func TestIntentService_PrivateHouseScenario(t *testing.T) {
	svc := newTestService(t, nil)

	result, _, err := svc.Interpret(context.Background(), "nha rieng tu 3 den 5 ty thu duc", true)
	if err != nil {
		t.Fatalf("Interpret lỗi: %v", err)
	}

	f := result.Filters
	if f.Category == nil || *f.Category != models.CategoryNhaRieng {
		t.Errorf("category = %v, muốn nha-rieng", f.Category)
	}
	if f.PriceMin == nil || *f.PriceMin != 3_000_000_000 {
		t.Errorf("priceMin = %v, muốn 3000000000", f.PriceMin)
	}
	if f.PriceMax == nil || *f.PriceMax != 5_000_000_000 {
		t.Errorf("priceMax = %v, muốn 5000000000", f.PriceMax)
	}
	if f.District == nil || *f.District != "Thủ Đức" {
		t.Errorf("district = %v, muốn Thủ Đức", f.District)
	}
}

func TestIntentService_UnparseableQueryBecomesKeyword(t *testing.T) {
	svc := newTestService(t, nil)

	query := "view sông thoáng mát yên tĩnh"
	result, _, err := svc.Interpret(context.Background(), query, true)
	if err != nil {
		t.Fatalf("Interpret lỗi: %v", err)
	}

	if result.Filters.HasStructuredSignal() {
		t.Fatalf("truy vấn không có tiêu chí cấu trúc, filters = %+v", result.Filters)
	}
	if result.Filters.Keyword == nil || *result.Filters.Keyword != query {
		t.Errorf("keyword = %v, truy vấn không phân tích được phải giữ nguyên làm keyword", result.Filters.Keyword)
	}
}

func TestIntentService_ProvinceFromLookup(t *testing.T) {
	lookup := &fakeProvinceLookup{match: &gazetteer.Match{
		ProvinceName:     "Thành phố Đà Nẵng",
		RemainingKeyword: "can ho",
	}}
	detector, err := location.NewDetector(lookup, zap.NewNop())
	if err != nil {
		t.Fatalf("không tạo được detector: %v", err)
	}
	svc := NewIntentService(detector, nil, nil, zap.NewNop())

	result, _, err := svc.Interpret(context.Background(), "can ho da nang", true)
	if err != nil {
		t.Fatalf("Interpret lỗi: %v", err)
	}
	if result.Filters.Province == nil || *result.Filters.Province != "Đà Nẵng" {
		t.Errorf("province = %v, định danh Thành phố phải bị bỏ", result.Filters.Province)
	}
}

func TestIntentService_CacheRoundTrip(t *testing.T) {
	cache := newMemoryCache()
	svc := newTestService(t, cache)

	query := "can ho 2pn q7 tam 5 ty"

	first, cached, err := svc.Interpret(context.Background(), query, true)
	if err != nil {
		t.Fatalf("Interpret lỗi: %v", err)
	}
	if cached {
		t.Error("lần gọi đầu phải là cache miss")
	}
	if cache.setCalls != 1 {
		t.Errorf("setCalls = %d, muốn 1", cache.setCalls)
	}

	second, cached, err := svc.Interpret(context.Background(), query, true)
	if err != nil {
		t.Fatalf("Interpret lỗi: %v", err)
	}
	if !cached {
		t.Error("lần gọi thứ hai phải là cache hit")
	}
	if second.Filters != first.Filters {
		t.Error("kết quả cache phải trùng kết quả gốc")
	}
}

func TestIntentService_CacheKeyFoldsCaseAndDiacritics(t *testing.T) {
	if queryFingerprint("Căn hộ Q7") != queryFingerprint("can ho q7") {
		t.Error("fingerprint phải bất biến với hoa thường và dấu")
	}
	if queryFingerprint("can ho q7") == queryFingerprint("nha rieng q7") {
		t.Error("truy vấn khác nhau phải có fingerprint khác nhau")
	}
}

func TestIntentService_CacheErrorsAbsorbed(t *testing.T) {
	cache := newMemoryCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	svc := newTestService(t, cache)

	result, _, err := svc.Interpret(context.Background(), "can ho q7", true)
	if err != nil {
		t.Fatalf("lỗi cache không được thoát ra ngoài: %v", err)
	}
	if result.Filters.Category == nil {
		t.Error("kết quả vẫn phải được tính khi cache hỏng")
	}
}

func TestIntentService_QueryCappedAt400Runes(t *testing.T) {
	long := make([]rune, 0, 600)
	for i := 0; i < 600; i++ {
		long = append(long, 'à')
	}

	capped := capQuery(string(long), maxQueryRunes)
	if n := len([]rune(capped)); n != maxQueryRunes {
		t.Errorf("độ dài sau cap = %d rune, muốn %d", n, maxQueryRunes)
	}
}
