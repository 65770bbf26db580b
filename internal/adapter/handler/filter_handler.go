package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/leondli/npsboard/internal/domain/entity"
	"github.com/leondli/npsboard/internal/usecase/dashboard"
	"github.com/leondli/npsboard/pkg/response"
)

// FilterState is the active tag selection with the widgets it lets through
type FilterState struct {
	ActiveTags entity.TagSet   `json:"activeTags"`
	Widgets    []entity.Widget `json:"widgets"`
}

// FilterHandler handles the dashboard tag filter
type FilterHandler struct {
	dash *dashboard.Controller
}

// NewFilterHandler creates a new filter handler
func NewFilterHandler(dash *dashboard.Controller) *FilterHandler {
	return &FilterHandler{dash: dash}
}

func (h *FilterHandler) state(c *gin.Context, active entity.TagSet) {
	widgets, err := h.dash.FilteredWidgets(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, FilterState{ActiveTags: active, Widgets: widgets})
}

// Get returns the active tags and the filtered widgets
func (h *FilterHandler) Get(c *gin.Context) {
	active, err := h.dash.ActiveTags(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	h.state(c, active)
}

// Toggle godoc
// @Summary Switch a tag in or out of the filter
// @Tags filters
// @Produce json
// @Param tag_id path string true "Tag ID"
// @Success 200 {object} response.Response{data=FilterState}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/filters/toggle/{tag_id} [post]
func (h *FilterHandler) Toggle(c *gin.Context) {
	active, err := h.dash.ToggleTagFilter(c.Request.Context(), c.Param("tag_id"))
	if err != nil {
		handleError(c, err)
		return
	}
	h.state(c, active)
}

// Clear empties the filter
func (h *FilterHandler) Clear(c *gin.Context) {
	if err := h.dash.ClearTagFilters(c.Request.Context()); err != nil {
		handleError(c, err)
		return
	}
	h.state(c, entity.TagSet{})
}
