package handler

import (
	"context"
	"net/http"

	"realty/internal/model"

	"github.com/gin-gonic/gin"
)

// AnalyticsService builds the dashboard for a sector
type AnalyticsService interface {
	Build(ctx context.Context, sector string) (*model.AnalyticsResponse, error)
}

// AnalyticsHandler handles analytics dashboard requests
type AnalyticsHandler struct {
	analyticsService AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// Get handles GET and POST /api/v1/analytics. The sector comes from the
// query string or a posted form.
func (h *AnalyticsHandler) Get(c *gin.Context) {
	sector := c.Query("sector")
	if sector == "" && c.Request.Method == http.MethodPost {
		sector = c.PostForm("sector")
	}

	response, err := h.analyticsService.Build(c.Request.Context(), sector)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analytics failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}
