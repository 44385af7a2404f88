package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/intent-parser/app/requests"
	"github.com/intent-parser/app/responses"
	"github.com/intent-parser/app/services"
)

// IntentController controller xử lý các request phân tích truy vấn
type IntentController struct {
	intentService *services.IntentService
	logger        *zap.Logger
}

// NewIntentController tạo mới IntentController
func NewIntentController(intentService *services.IntentService, logger *zap.Logger) *IntentController {
	return &IntentController{
		intentService: intentService,
		logger:        logger,
	}
}

// ParseIntent phân tích một truy vấn tìm kiếm thành bộ lọc
func (ic *IntentController) ParseIntent(c *gin.Context) {
	var req requests.ParseIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Request không hợp lệ: " + err.Error(),
		})
		return
	}

	startTime := time.Now()

	result, cached, err := ic.intentService.Interpret(c.Request.Context(), req.Query, req.SkipModel)
	if err != nil {
		// Lỗi duy nhất thoát ra từ Interpret là truy vấn rỗng
		if errors.Is(err, services.ErrEmptyQuery) {
			c.JSON(http.StatusBadRequest, responses.ErrorResponse{
				Error:   "EMPTY_QUERY",
				Message: "Truy vấn không được để trống",
			})
			return
		}
		ic.logger.Error("Lỗi phân tích truy vấn", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "PARSE_ERROR",
			Message: "Lỗi phân tích truy vấn",
		})
		return
	}

	c.JSON(http.StatusOK, responses.ParseIntentResponse{
		Filters:          result.Filters,
		Explanation:      result.Explanation,
		Source:           result.Source,
		Cached:           cached,
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
	})
}

// HealthCheck kiểm tra sức khỏe service
func (ic *IntentController) HealthCheck(c *gin.Context) {
	uptime := time.Since(ic.intentService.GetStartTime())

	c.JSON(http.StatusOK, responses.HealthCheckResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    uptime.String(),
		Version:   "1.0.0",
		Services: map[string]string{
			"intent_parser": "healthy",
			"cache":         "healthy",
		},
	})
}
