package booking

import (
	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures the booking session routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	sessions := rg.Group("/sessions")
	{
		sessions.POST("", controller.CreateSession)      // POST   /api/v1/sessions
		sessions.GET("/:id", controller.GetSession)      // GET    /api/v1/sessions/:id
		sessions.DELETE("/:id", controller.DeleteSession)

		sessions.PUT("/:id/travelers", controller.ResizeTravelers)
		sessions.PUT("/:id/passengers/:index", controller.UpdatePassenger)
		sessions.PUT("/:id/passengers/:index/seat", controller.AssignSeat)
		sessions.DELETE("/:id/passengers/:index/seat", controller.ClearSeat)

		sessions.GET("/:id/seatmap", controller.GetSeatMap)
		sessions.POST("/:id/seatmap/refresh", controller.RefreshSeatMap)

		sessions.POST("/:id/submit", controller.Submit)
	}
}
