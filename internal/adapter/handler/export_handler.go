package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/leondli/npsboard/internal/adapter/export"
	"github.com/leondli/npsboard/internal/usecase/dashboard"
	"github.com/leondli/npsboard/pkg/response"
)

// ExportHandler serves spreadsheet downloads
type ExportHandler struct {
	dash *dashboard.Controller
}

// NewExportHandler creates a new export handler
func NewExportHandler(dash *dashboard.Controller) *ExportHandler {
	return &ExportHandler{dash: dash}
}

// NPSReport streams an XLSX workbook with one sheet of surveys and one of responses
func (h *ExportHandler) NPSReport(c *gin.Context) {
	snap, err := h.dash.Snapshot(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	var buf bytes.Buffer
	report := export.Report{Surveys: snap.Surveys, Respondents: snap.Respondents, Tags: snap.Tags}
	if err := export.WriteNPSReport(&buf, report); err != nil {
		log.Error().Err(err).Msg("Failed to build NPS report")
		response.InternalError(c, "failed to build report")
		return
	}

	filename := fmt.Sprintf("nps-report-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}
