package flights

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skybook/internal/airline"
	"skybook/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// Search handles GET /api/v1/flights
func (c *Controller) Search(ctx *gin.Context) {
	params := airline.SearchParams{
		DepartureCity: ctx.Query("departure_city"),
		ArrivalCity:   ctx.Query("arrival_city"),
		Date:          ctx.Query("date"),
		Skip:          intQuery(ctx, "skip", 0),
		Limit:         intQuery(ctx, "limit", 100),
	}

	flights, err := c.service.Search(ctx.Request.Context(), params)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadGateway, "Could not fetch flights", nil, err.Error())
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Flights retrieved", flights, nil)
}

// Get handles GET /api/v1/flights/:id
func (c *Controller) Get(ctx *gin.Context) {
	id, ok := flightID(ctx)
	if !ok {
		return
	}

	flight, err := c.service.Get(ctx.Request.Context(), id)
	if err != nil {
		c.respondError(ctx, err, "Could not fetch flight")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Flight retrieved", flight, nil)
}

// Airlines handles GET /api/v1/flights/airlines
func (c *Controller) Airlines(ctx *gin.Context) {
	airlines, err := c.service.Airlines(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadGateway, "Could not fetch airlines", nil, err.Error())
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Airlines retrieved", airlines, nil)
}

// PriceRange handles GET /api/v1/flights/price-range
func (c *Controller) PriceRange(ctx *gin.Context) {
	travelers := intQuery(ctx, "travelers", 1)

	pr, err := c.service.PriceRange(ctx.Request.Context(), travelers)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadGateway, "Could not fetch price range", nil, err.Error())
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Price range retrieved", pr, nil)
}

// Create handles POST /api/v1/admin/flights
func (c *Controller) Create(ctx *gin.Context) {
	var input airline.FlightInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	flight, err := c.service.Create(ctx.Request.Context(), input)
	if err != nil {
		c.respondError(ctx, err, "Could not create flight")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusCreated, "Flight created", flight, nil)
}

// Update handles PUT /api/v1/admin/flights/:id
func (c *Controller) Update(ctx *gin.Context) {
	id, ok := flightID(ctx)
	if !ok {
		return
	}

	var input airline.FlightInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	flight, err := c.service.Update(ctx.Request.Context(), id, input)
	if err != nil {
		c.respondError(ctx, err, "Could not update flight")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Flight updated", flight, nil)
}

// Delete handles DELETE /api/v1/admin/flights/:id
func (c *Controller) Delete(ctx *gin.Context) {
	id, ok := flightID(ctx)
	if !ok {
		return
	}

	if err := c.service.Delete(ctx.Request.Context(), id); err != nil {
		c.respondError(ctx, err, "Could not delete flight")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Flight deleted", nil, nil)
}

func (c *Controller) respondError(ctx *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, airline.ErrNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Flight not found", nil, nil)
	case airline.IsValidation(err):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, message, nil, err.Error())
	default:
		response.RespondJSON(ctx, "error", http.StatusBadGateway, message, nil, err.Error())
	}
}

func flightID(ctx *gin.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid flight ID", nil, nil)
		return 0, false
	}
	return id, true
}

func intQuery(ctx *gin.Context, key string, fallback int) int {
	if raw := ctx.Query(key); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value >= 0 {
			return value
		}
	}
	return fallback
}
