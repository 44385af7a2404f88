package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/intent-parser/app/requests"
	"github.com/intent-parser/app/responses"
	"github.com/intent-parser/app/services"
	"github.com/intent-parser/helpers/utils"
)

// GazetteerReloader kiểm tra lại dịch vụ gazetteer bên ngoài (Meilisearch)
type GazetteerReloader interface {
	Reload(ctx context.Context) error
}

// AdminController controller xử lý các request admin
type AdminController struct {
	cacheService services.ICacheService
	reloader     GazetteerReloader // nil khi chỉ dùng gazetteer tĩnh
	logger       *zap.Logger
}

// NewAdminController tạo mới AdminController
func NewAdminController(cacheService services.ICacheService, reloader GazetteerReloader, logger *zap.Logger) *AdminController {
	return &AdminController{
		cacheService: cacheService,
		reloader:     reloader,
		logger:       logger,
	}
}

// GetCacheStats lấy thống kê cache
func (ac *AdminController) GetCacheStats(c *gin.Context) {
	stats, err := ac.cacheService.GetStats(c.Request.Context())
	if err != nil {
		ac.logger.Error("Lỗi lấy cache stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "STATS_ERROR",
			Message: "Lỗi lấy cache stats: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.CacheStatsResponse{
		HitRate:    stats.HitRate,
		TotalHits:  stats.TotalHits,
		TotalMiss:  stats.TotalMiss,
		TotalItems: stats.TotalItems,
	})
}

// InvalidateCache xóa cache theo phiên bản bộ luật, hoặc toàn bộ nếu không chỉ định
func (ac *AdminController) InvalidateCache(c *gin.Context) {
	var req requests.InvalidateCacheRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Request không hợp lệ: " + err.Error(),
		})
		return
	}

	startTime := time.Now()
	auditID := utils.GenerateUUID()

	var err error
	if req.RulesetVersion != "" {
		err = ac.cacheService.InvalidateByRulesetVersion(c.Request.Context(), req.RulesetVersion)
	} else {
		err = ac.cacheService.Clear(c.Request.Context())
	}
	if err != nil {
		ac.logger.Error("Lỗi invalidate cache", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "INVALIDATE_ERROR",
			Message: "Lỗi invalidate cache: " + err.Error(),
		})
		return
	}

	processingTime := time.Since(startTime)
	ac.logger.Info("Invalidate cache thành công",
		zap.String("audit_id", auditID),
		zap.String("ruleset_version", req.RulesetVersion),
		zap.Duration("duration", processingTime))

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success: true,
		Message: "Invalidate cache thành công",
		Data: map[string]interface{}{
			"audit_id":           auditID,
			"ruleset_version":    req.RulesetVersion,
			"processing_time_ms": processingTime.Milliseconds(),
		},
	})
}

// ReloadGazetteer kiểm tra lại kết nối tới dịch vụ gazetteer
func (ac *AdminController) ReloadGazetteer(c *gin.Context) {
	if ac.reloader == nil {
		c.JSON(http.StatusOK, responses.SuccessResponse{
			Success: true,
			Message: "Đang dùng gazetteer tĩnh nhúng sẵn, không cần reload",
		})
		return
	}

	if err := ac.reloader.Reload(c.Request.Context()); err != nil {
		ac.logger.Error("Lỗi reload gazetteer", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, responses.ErrorResponse{
			Error:   "GAZETTEER_UNAVAILABLE",
			Message: "Dịch vụ gazetteer không sẵn sàng: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success: true,
		Message: "Reload gazetteer thành công",
	})
}
