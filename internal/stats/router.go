package stats

import (
	"github.com/gin-gonic/gin"
)

// SetupStatsRoutes configures the admin dashboard routes
func SetupStatsRoutes(admin *gin.RouterGroup, controller *Controller) {
	admin.GET("/stats", controller.Summary) // GET /api/v1/admin/stats
}
