// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"skybook/internal/airline"
	"skybook/internal/booking"
	"skybook/internal/events"
	"skybook/internal/flights"
	"skybook/internal/shared/config"
	"skybook/internal/stats"
	"skybook/pkg/cache"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	backend   airline.Client
	cache     cache.Service
	redis     *redis.Client
	publisher events.Publisher
	sessions  *booking.Store
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, backend airline.Client, redisClient *redis.Client, publisher events.Publisher) *Router {
	return &Router{
		config:    cfg,
		backend:   backend,
		cache:     cache.NewService(redisClient),
		redis:     redisClient,
		publisher: publisher,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	admin := api.Group("/admin")
	{
		r.setupFlightRoutes(api, admin)
		r.setupBookingRoutes(api)
		r.setupStatsRoutes(admin)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		// The backend owns all durable state; unreachable backend means we
		// can't serve anything useful.
		if _, err := r.backend.GetAirlines(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "skybook",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "skybook",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"cache":       r.redis != nil,
			"sessions":    r.sessionCount(),
			"timestamp":   time.Now(),
		})
	})
}

// setupFlightRoutes configures the flight search and admin CRUD routes
func (r *Router) setupFlightRoutes(api, admin *gin.RouterGroup) {
	flightService := flights.NewService(r.backend, r.cache, r.config.Redis)
	flightController := flights.NewController(flightService)

	flights.SetupFlightRoutes(api, admin, flightController)
}

// setupBookingRoutes configures the booking session routes
func (r *Router) setupBookingRoutes(api *gin.RouterGroup) {
	r.sessions = booking.NewStore(
		r.backend,
		r.publisher,
		r.config.Booking.SessionTTL,
		r.config.Booking.DefaultUserID,
		r.config.Booking.MaxTravelers,
	)
	bookingController := booking.NewController(r.sessions)

	booking.SetupBookingRoutes(api, bookingController)
}

// setupStatsRoutes configures the admin dashboard routes
func (r *Router) setupStatsRoutes(admin *gin.RouterGroup) {
	statsService := stats.NewService(r.backend, r.cache, r.config.Redis.StatsTTL)
	statsController := stats.NewController(statsService)

	stats.SetupStatsRoutes(admin, statsController)
}

func (r *Router) sessionCount() int {
	if r.sessions == nil {
		return 0
	}
	return r.sessions.Len()
}
