package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/supertask-api/internal/dto"
	apierrors "github.com/yukikurage/supertask-api/internal/errors"
	"github.com/yukikurage/supertask-api/internal/middleware"
	"github.com/yukikurage/supertask-api/internal/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
	quotes           services.QuoteProvider
}

func NewDashboardHandler(dashboardService *services.DashboardService, quotes services.QuoteProvider) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		quotes:           quotes,
	}
}

// Stats returns the dashboard counters of the current user
func (h *DashboardHandler) Stats(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	stats, err := h.dashboardService.Stats(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardStatsDTO(*stats))
}

// Quote returns a motivational quote. It always succeeds.
func (h *DashboardHandler) Quote(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToQuoteDTO(h.quotes.Fetch(c.Request.Context())))
}
