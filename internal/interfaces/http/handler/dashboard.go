package handler

import "github.com/gin-gonic/gin"

// DashboardHandler serves the dashboard summary
type DashboardHandler struct {
	BaseHandler
	statsService StatsService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(statsService StatsService) *DashboardHandler {
	return &DashboardHandler{statsService: statsService}
}

// Get returns totals, revenue change and chart series for the owner
//
//	@ID			dashboard
//	@Summary		Dashboard summary
//	@Tags			dashboard
//	@Produce		json
//	@Success		200		{object}	dto.Response{data=billingapp.Dashboard}
//	@Security		BearerAuth
//	@Router			/dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	dashboard, err := h.statsService.Dashboard(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dashboard)
}
