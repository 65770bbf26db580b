package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/leondli/npsboard/internal/domain/entity"
	"github.com/leondli/npsboard/internal/usecase/dashboard"
	"github.com/leondli/npsboard/pkg/response"
)

// TagHandler handles tag requests
type TagHandler struct {
	dash *dashboard.Controller
}

// NewTagHandler creates a new tag handler
func NewTagHandler(dash *dashboard.Controller) *TagHandler {
	return &TagHandler{dash: dash}
}

// Create godoc
// @Summary Create a new tag
// @Tags tags
// @Accept json
// @Produce json
// @Param request body entity.TagCreate true "Tag input"
// @Success 201 {object} response.Response{data=entity.Tag}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/tags [post]
func (h *TagHandler) Create(c *gin.Context) {
	var input entity.TagCreate
	if !bindJSON(c, &input) {
		return
	}

	t, err := h.dash.AddTag(c.Request.Context(), &input)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, t)
}

// List godoc
// @Summary List tags, optionally of one category
// @Tags tags
// @Produce json
// @Param category query string false "survey or user"
// @Success 200 {object} response.Response{data=[]entity.Tag}
// @Router /api/v1/tags [get]
func (h *TagHandler) List(c *gin.Context) {
	category := entity.TagCategory(c.Query("category"))
	if category != "" && !category.Valid() {
		response.ValidationError(c, "unknown tag category "+string(category))
		return
	}

	tags, err := h.dash.ListTags(c.Request.Context(), category)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, tags)
}

// GetByID godoc
// @Summary Get a tag
// @Tags tags
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} response.Response{data=entity.Tag}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/tags/{id} [get]
func (h *TagHandler) GetByID(c *gin.Context) {
	t, err := h.dash.GetTag(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, t)
}

// Update godoc
// @Summary Update a tag; omitted fields are kept
// @Tags tags
// @Accept json
// @Produce json
// @Param id path string true "Tag ID"
// @Param request body entity.TagUpdate true "Fields to change"
// @Success 200 {object} response.Response{data=entity.Tag}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/tags/{id} [patch]
func (h *TagHandler) Update(c *gin.Context) {
	var input entity.TagUpdate
	if !bindJSON(c, &input) {
		return
	}

	t, err := h.dash.UpdateTag(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, t)
}

// Delete godoc
// @Summary Delete a tag and remove it from every widget, survey, respondent and the filter
// @Tags tags
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} response.Response{data=tag.DeleteResult}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/tags/{id} [delete]
func (h *TagHandler) Delete(c *gin.Context) {
	res, err := h.dash.RemoveTag(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, res)
}
