package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/leondli/npsboard/internal/domain/entity"
	"github.com/leondli/npsboard/internal/usecase/dashboard"
	"github.com/leondli/npsboard/pkg/response"
)

// RespondentHandler handles respondent requests
type RespondentHandler struct {
	dash *dashboard.Controller
}

// NewRespondentHandler creates a new respondent handler
func NewRespondentHandler(dash *dashboard.Controller) *RespondentHandler {
	return &RespondentHandler{dash: dash}
}

func (h *RespondentHandler) Create(c *gin.Context) {
	var input entity.RespondentCreate
	if !bindJSON(c, &input) {
		return
	}

	r, err := h.dash.AddRespondent(c.Request.Context(), &input)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, r)
}

func (h *RespondentHandler) List(c *gin.Context) {
	respondents, err := h.dash.ListRespondents(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, respondents)
}

func (h *RespondentHandler) GetByID(c *gin.Context) {
	r, err := h.dash.GetRespondent(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, r)
}

func (h *RespondentHandler) Update(c *gin.Context) {
	var input entity.RespondentUpdate
	if !bindJSON(c, &input) {
		return
	}

	r, err := h.dash.UpdateRespondent(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, r)
}

// Delete removes the respondent; their responses are kept
func (h *RespondentHandler) Delete(c *gin.Context) {
	if err := h.dash.RemoveRespondent(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}
