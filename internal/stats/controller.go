package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skybook/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// Summary handles GET /api/v1/admin/stats
func (c *Controller) Summary(ctx *gin.Context) {
	stats, err := c.service.Summary(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadGateway, "Could not fetch stats", nil, err.Error())
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Stats retrieved", stats, nil)
}
