package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/leondli/npsboard/internal/usecase/dashboard"
	"github.com/leondli/npsboard/pkg/response"
)

// DashboardHandler serves the whole dashboard in one read
type DashboardHandler struct {
	dash *dashboard.Controller
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dash *dashboard.Controller) *DashboardHandler {
	return &DashboardHandler{dash: dash}
}

// Snapshot returns tags, widgets, filter, surveys, respondents and the NPS overview
func (h *DashboardHandler) Snapshot(c *gin.Context) {
	snap, err := h.dash.Snapshot(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, snap)
}
