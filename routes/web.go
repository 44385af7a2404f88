package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupWebRoutes thiết lập web routes (nếu cần trong tương lai)
func SetupWebRoutes(router *gin.Engine) {
	// Web routes group
	web := router.Group("/")
	{
		// Home page
		web.GET("/", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"message": "Search Intent Parser Service",
				"version": "1.0.0",
				"docs":    "/docs",
			})
		})

		// API documentation
		web.GET("/docs", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"api": "Search Intent Parser API v1",
				"endpoints": map[string]string{
					"parse":            "POST /api/v1/intent/parse",
					"health":           "GET /api/v1/health",
					"cache_stats":      "GET /api/v1/admin/cache/stats",
					"cache_invalidate": "POST /api/v1/admin/cache/invalidate",
					"gazetteer_reload": "POST /api/v1/admin/gazetteer/reload",
				},
			})
		})
	}
}
