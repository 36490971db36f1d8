package flights

import (
	"github.com/gin-gonic/gin"
)

// SetupFlightRoutes configures the public flight views and the admin CRUD
// proxy. Authentication is handled upstream; the admin group only exists to
// carry a stricter rate limit.
func SetupFlightRoutes(rg *gin.RouterGroup, admin *gin.RouterGroup, controller *Controller) {
	public := rg.Group("/flights")
	{
		// Static paths before the :id wildcard
		public.GET("/airlines", controller.Airlines)       // GET /api/v1/flights/airlines
		public.GET("/price-range", controller.PriceRange)  // GET /api/v1/flights/price-range?travelers=2
		public.GET("", controller.Search)                  // GET /api/v1/flights?departure_city=...
		public.GET("/:id", controller.Get)                 // GET /api/v1/flights/:id
	}

	flights := admin.Group("/flights")
	{
		flights.POST("", controller.Create)       // POST   /api/v1/admin/flights
		flights.PUT("/:id", controller.Update)    // PUT    /api/v1/admin/flights/:id
		flights.DELETE("/:id", controller.Delete) // DELETE /api/v1/admin/flights/:id
	}
}
