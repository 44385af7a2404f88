package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/intent-parser/app/controllers"
	"github.com/intent-parser/app/responses"
	"github.com/intent-parser/helpers/utils"
)

// SetupAPIRoutes thiết lập tất cả API routes
func SetupAPIRoutes(router *gin.Engine, intentController *controllers.IntentController, adminController *controllers.AdminController, adminToken string) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Intent parsing routes
		intent := v1.Group("/intent")
		{
			intent.POST("/parse", intentController.ParseIntent)
		}

		// Admin routes, bảo vệ bằng token tĩnh từ config
		admin := v1.Group("/admin")
		admin.Use(adminAuth(adminToken))
		{
			admin.GET("/cache/stats", adminController.GetCacheStats)
			admin.POST("/cache/invalidate", adminController.InvalidateCache)
			admin.POST("/gazetteer/reload", adminController.ReloadGazetteer)
		}

		// Health check route
		v1.GET("/health", intentController.HealthCheck)
	}
}

// SetupHealthRoutes thiết lập health check routes
func SetupHealthRoutes(router *gin.Engine, intentController *controllers.IntentController) {
	// Root health check
	router.GET("/health", intentController.HealthCheck)

	// Readiness check
	router.GET("/ready", intentController.HealthCheck)

	// Liveness check
	router.GET("/live", intentController.HealthCheck)
}

// SetupAllRoutes thiết lập tất cả routes
func SetupAllRoutes(router *gin.Engine, intentController *controllers.IntentController, adminController *controllers.AdminController, adminToken string) {
	// Thiết lập middleware
	setupMiddleware(router)

	// Thiết lập các loại routes
	SetupWebRoutes(router)
	SetupHealthRoutes(router, intentController)
	SetupAPIRoutes(router, intentController, adminController, adminToken)

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}

// setupMiddleware thiết lập middleware cho router
func setupMiddleware(router *gin.Engine) {
	// Recovery middleware
	router.Use(gin.Recovery())

	// Logger middleware
	router.Use(gin.Logger())

	// Gắn request ID cho mỗi request, giữ ID client gửi lên nếu có
	router.Use(func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = utils.GenerateShortID()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	})
}

// adminAuth chặn request admin không mang token hợp lệ.
// Token rỗng nghĩa là admin surface bị khóa hoàn toàn.
func adminAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" || c.GetHeader("X-Admin-Token") != token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Error:   "UNAUTHORIZED",
				Message: "Token admin không hợp lệ",
			})
			return
		}
		c.Next()
	}
}
