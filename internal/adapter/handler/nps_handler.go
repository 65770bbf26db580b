package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/leondli/npsboard/internal/domain/entity"
	"github.com/leondli/npsboard/internal/usecase/dashboard"
	"github.com/leondli/npsboard/pkg/response"
)

// ScoreRequest carries ad-hoc ratings to score
type ScoreRequest struct {
	Scores []int `json:"scores"`
}

// DistributionBucket is the number of responses with one score
type DistributionBucket struct {
	Score string `json:"score"`
	Count int    `json:"count"`
}

// NpsHandler serves the dashboard-wide NPS views
type NpsHandler struct {
	dash *dashboard.Controller
}

// NewNpsHandler creates a new NPS handler
func NewNpsHandler(dash *dashboard.Controller) *NpsHandler {
	return &NpsHandler{dash: dash}
}

// Overview godoc
// @Summary Pooled NPS overall, per survey tag and per user tag
// @Tags nps
// @Produce json
// @Success 200 {object} response.Response{data=survey.Overview}
// @Router /api/v1/nps/overview [get]
func (h *NpsHandler) Overview(c *gin.Context) {
	ov, err := h.dash.Overview(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, ov)
}

// Feedback lists responses newest first, for one survey when survey_id is given
func (h *NpsHandler) Feedback(c *gin.Context) {
	entries, err := h.dash.Feedback(c.Request.Context(), c.Query("survey_id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, entries)
}

// Distribution returns the number of responses for every score 0..10
func (h *NpsHandler) Distribution(c *gin.Context) {
	hist, err := h.dash.Distribution(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	buckets := make([]DistributionBucket, 0, len(hist))
	for score := entity.MinScore; score <= entity.MaxScore; score++ {
		buckets = append(buckets, DistributionBucket{Score: strconv.Itoa(score), Count: hist[score]})
	}
	response.Success(c, buckets)
}

// Score godoc
// @Summary Score a list of 0..10 ratings without storing them
// @Tags nps
// @Accept json
// @Produce json
// @Param request body ScoreRequest true "Ratings"
// @Success 200 {object} response.Response{data=survey.Summary}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/nps/score [post]
func (h *NpsHandler) Score(c *gin.Context) {
	var req ScoreRequest
	if !bindJSON(c, &req) {
		return
	}

	sum, err := h.dash.CalculateNpsScore(req.Scores)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, sum)
}
