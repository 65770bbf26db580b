// Package export writes NPS reports as spreadsheets.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/leondli/npsboard/internal/domain/entity"
	"github.com/leondli/npsboard/internal/usecase/nps"
)

const (
	SheetSurveys   = "Surveys"
	SheetResponses = "Responses"

	// ContentType is the MIME type of the written workbook
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	surveyHeader   = []interface{}{"Survey ID", "Title", "Created", "Tags", "Responses", "Promoters", "Passives", "Detractors", "NPS", "Band"}
	responseHeader = []interface{}{"Survey", "Response ID", "Created", "Respondent", "Score", "Class", "Feedback"}
)

// Report is the data exported to the workbook
type Report struct {
	Surveys     []entity.Survey
	Respondents []entity.Respondent
	Tags        []entity.Tag
}

// WriteNPSReport writes one row per survey, a pooled total row, and one row per response.
func WriteNPSReport(w io.Writer, report Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSurveys); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetResponses); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	tagNames := make(map[string]string, len(report.Tags))
	for _, t := range report.Tags {
		tagNames[t.ID] = t.Name
	}
	names := make(map[string]string, len(report.Respondents))
	for _, r := range report.Respondents {
		names[r.ID] = r.Name
	}

	surveyRows := [][]interface{}{surveyHeader}
	responseRows := [][]interface{}{responseHeader}
	var total nps.Breakdown
	for _, s := range report.Surveys {
		b := nps.Tally(s.Responses)
		total = total.Add(b)
		score := b.Score()
		surveyRows = append(surveyRows, []interface{}{
			s.ID, s.Title, s.CreatedAt.Format(time.DateOnly), joinTags(s.Tags, tagNames),
			s.ResponseCount(), b.Promoters, b.Passives, b.Detractors, score, nps.Band(score),
		})

		for _, r := range s.Responses {
			name, ok := names[r.RespondentID]
			if !ok {
				name = entity.UnknownRespondent
			}
			responseRows = append(responseRows, []interface{}{
				s.Title, r.ID, r.CreatedAt.Format(time.RFC3339), name, r.Score, string(nps.Classify(r.Score)), r.Feedback,
			})
		}
	}
	score := total.Score()
	surveyRows = append(surveyRows, []interface{}{
		"", "All surveys", "", "", total.Total, total.Promoters, total.Passives, total.Detractors, score, nps.Band(score),
	})

	if err := writeRows(f, SheetSurveys, surveyRows); err != nil {
		return err
	}
	if err := writeRows(f, SheetResponses, responseRows); err != nil {
		return err
	}
	for _, sheet := range []string{SheetSurveys, SheetResponses} {
		if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
			return fmt.Errorf("style header: %w", err)
		}
	}
	last := len(surveyRows)
	if err := f.SetRowStyle(SheetSurveys, last, last, bold); err != nil {
		return fmt.Errorf("style total: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func joinTags(ids entity.TagSet, names map[string]string) string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if n, ok := names[id]; ok {
			out = append(out, n)
		}
	}
	return strings.Join(out, ", ")
}
