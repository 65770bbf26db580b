package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/leondli/npsboard/internal/domain/entity"
	"github.com/leondli/npsboard/internal/usecase/dashboard"
	"github.com/leondli/npsboard/pkg/response"
)

// SurveyHandler handles survey and response requests
type SurveyHandler struct {
	dash *dashboard.Controller
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(dash *dashboard.Controller) *SurveyHandler {
	return &SurveyHandler{dash: dash}
}

// Create godoc
// @Summary Create a survey, optionally with responses
// @Tags surveys
// @Accept json
// @Produce json
// @Param request body entity.SurveyCreate true "Survey input"
// @Success 201 {object} response.Response{data=entity.Survey}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/surveys [post]
func (h *SurveyHandler) Create(c *gin.Context) {
	var input entity.SurveyCreate
	if !bindJSON(c, &input) {
		return
	}

	s, err := h.dash.AddSurvey(c.Request.Context(), &input)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, s)
}

// List returns surveys newest first
func (h *SurveyHandler) List(c *gin.Context) {
	surveys, err := h.dash.ListSurveys(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, surveys)
}

func (h *SurveyHandler) GetByID(c *gin.Context) {
	s, err := h.dash.GetSurvey(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, s)
}

// Update godoc
// @Summary Update a survey; sending responses replaces them and clears the cached score
// @Tags surveys
// @Accept json
// @Produce json
// @Param id path string true "Survey ID"
// @Param request body entity.SurveyUpdate true "Fields to change"
// @Success 200 {object} response.Response{data=entity.Survey}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/surveys/{id} [patch]
func (h *SurveyHandler) Update(c *gin.Context) {
	var input entity.SurveyUpdate
	if !bindJSON(c, &input) {
		return
	}

	s, err := h.dash.UpdateSurvey(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, s)
}

func (h *SurveyHandler) Delete(c *gin.Context) {
	if err := h.dash.RemoveSurvey(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}

// Score returns the survey's NPS, cached or derived
func (h *SurveyHandler) Score(c *gin.Context) {
	sum, err := h.dash.SurveyScore(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, sum)
}

// RecomputeScore fills the cached NPS from the current responses
func (h *SurveyHandler) RecomputeScore(c *gin.Context) {
	s, err := h.dash.RecomputeScore(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, s)
}

// AddResponse godoc
// @Summary Record a response to a survey
// @Tags surveys
// @Accept json
// @Produce json
// @Param id path string true "Survey ID"
// @Param request body entity.ResponseCreate true "Response input"
// @Success 201 {object} response.Response{data=entity.SurveyResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/surveys/{id}/responses [post]
func (h *SurveyHandler) AddResponse(c *gin.Context) {
	var input entity.ResponseCreate
	if !bindJSON(c, &input) {
		return
	}

	r, err := h.dash.AddResponse(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, r)
}

func (h *SurveyHandler) RemoveResponse(c *gin.Context) {
	if err := h.dash.RemoveResponse(c.Request.Context(), c.Param("id"), c.Param("response_id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}
