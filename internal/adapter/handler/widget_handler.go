package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/leondli/npsboard/internal/domain/entity"
	"github.com/leondli/npsboard/internal/usecase/dashboard"
	"github.com/leondli/npsboard/pkg/response"
)

// WidgetHandler handles widget requests
type WidgetHandler struct {
	dash *dashboard.Controller
}

// NewWidgetHandler creates a new widget handler
func NewWidgetHandler(dash *dashboard.Controller) *WidgetHandler {
	return &WidgetHandler{dash: dash}
}

// Create godoc
// @Summary Create a widget; the data payload is stored as sent
// @Tags widgets
// @Accept json
// @Produce json
// @Param request body entity.WidgetCreate true "Widget input"
// @Success 201 {object} response.Response{data=entity.Widget}
// @Router /api/v1/widgets [post]
func (h *WidgetHandler) Create(c *gin.Context) {
	var input entity.WidgetCreate
	if !bindJSON(c, &input) {
		return
	}

	w, err := h.dash.AddWidget(c.Request.Context(), &input)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, w)
}

// List returns every widget, ignoring the tag filter
func (h *WidgetHandler) List(c *gin.Context) {
	widgets, err := h.dash.ListWidgets(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, widgets)
}

// Filtered returns the widgets matching the active tag filter
func (h *WidgetHandler) Filtered(c *gin.Context) {
	widgets, err := h.dash.FilteredWidgets(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, widgets)
}

func (h *WidgetHandler) GetByID(c *gin.Context) {
	w, err := h.dash.GetWidget(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, w)
}

// Update godoc
// @Summary Update a widget; omitted fields are kept
// @Tags widgets
// @Accept json
// @Produce json
// @Param id path string true "Widget ID"
// @Param request body entity.WidgetUpdate true "Fields to change"
// @Success 200 {object} response.Response{data=entity.Widget}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/widgets/{id} [patch]
func (h *WidgetHandler) Update(c *gin.Context) {
	var input entity.WidgetUpdate
	if !bindJSON(c, &input) {
		return
	}

	w, err := h.dash.UpdateWidget(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, w)
}

func (h *WidgetHandler) Delete(c *gin.Context) {
	if err := h.dash.RemoveWidget(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}

// Render godoc
// @Summary Resolve a widget's tags and decode its payload for display
// @Tags widgets
// @Produce json
// @Param id path string true "Widget ID"
// @Success 200 {object} response.Response{data=widget.Rendered}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/widgets/{id}/render [get]
func (h *WidgetHandler) Render(c *gin.Context) {
	r, err := h.dash.RenderWidget(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, r)
}

// Data godoc
// @Summary Decode a widget's payload against its type
// @Tags widgets
// @Produce json
// @Param id path string true "Widget ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /api/v1/widgets/{id}/data [get]
func (h *WidgetHandler) Data(c *gin.Context) {
	data, err := h.dash.WidgetData(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, data)
}
