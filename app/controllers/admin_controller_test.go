package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/intent-parser/app/models"
	"github.com/intent-parser/app/services"
)

// fakeCacheService ghi lại lời gọi invalidate/clear cho assertion
type fakeCacheService struct {
	clearCalls      int
	invalidateCalls []string
}

func (f *fakeCacheService) Get(ctx context.Context, key string) (*models.Interpretation, bool, error) {
	return nil, false, nil
}

func (f *fakeCacheService) Set(ctx context.Context, key, rawQuery string, result *models.Interpretation) error {
	return nil
}

func (f *fakeCacheService) Delete(ctx context.Context, key string) error { return nil }

func (f *fakeCacheService) Clear(ctx context.Context) error {
	f.clearCalls++
	return nil
}

func (f *fakeCacheService) InvalidateByRulesetVersion(ctx context.Context, rulesetVersion string) error {
	f.invalidateCalls = append(f.invalidateCalls, rulesetVersion)
	return nil
}

func (f *fakeCacheService) GetStats(ctx context.Context) (*services.CacheStats, error) {
	return &services.CacheStats{}, nil
}

func (f *fakeCacheService) Exists(ctx context.Context, key string) (bool, error) { return false, nil }

func (f *fakeCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return 0, nil
}

func (f *fakeCacheService) Close() error { return nil }

func postInvalidate(t *testing.T, ac *AdminController, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/admin/cache/invalidate", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	ac.InvalidateCache(c)
	return w
}

func TestAdminController_InvalidateCacheByRulesetVersion(t *testing.T) {
	cache := &fakeCacheService{}
	ac := NewAdminController(cache, nil, zap.NewNop())

	w := postInvalidate(t, ac, `{"ruleset_version": "2.0.0"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(cache.invalidateCalls) != 1 || cache.invalidateCalls[0] != "2.0.0" {
		t.Errorf("invalidateCalls = %v, want [2.0.0]", cache.invalidateCalls)
	}
	if cache.clearCalls != 0 {
		t.Errorf("clearCalls = %d, có version thì không được clear toàn bộ", cache.clearCalls)
	}

	var resp struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	auditID, _ := resp.Data["audit_id"].(string)
	if auditID == "" {
		t.Error("response thiếu audit_id để truy vết thao tác invalidate")
	}
}

func TestAdminController_InvalidateCacheEmptyBodyClearsAll(t *testing.T) {
	cache := &fakeCacheService{}
	ac := NewAdminController(cache, nil, zap.NewNop())

	w := postInvalidate(t, ac, "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if cache.clearCalls != 1 {
		t.Errorf("clearCalls = %d, body rỗng phải clear toàn bộ cache", cache.clearCalls)
	}
	if len(cache.invalidateCalls) != 0 {
		t.Errorf("invalidateCalls = %v, want rỗng", cache.invalidateCalls)
	}
}
