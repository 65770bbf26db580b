package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/leondli/npsboard/internal/domain/entity"
)

func TestWriteNPSReport(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	report := Report{
		Tags:        []entity.Tag{{ID: "tag-1", Name: "Finance"}},
		Respondents: []entity.Respondent{{ID: "respondent-1", Name: "John Doe"}},
		Surveys: []entity.Survey{
			{
				ID: "survey-1", Title: "Q1", CreatedAt: created, Tags: entity.TagSet{"tag-1", "tag-gone"},
				Responses: []entity.SurveyResponse{
					{ID: "response-1", Score: 9, RespondentID: "respondent-1", CreatedAt: created, Feedback: "great"},
					{ID: "response-2", Score: 8, RespondentID: "respondent-x", CreatedAt: created},
					{ID: "response-3", Score: 3, RespondentID: "respondent-1", CreatedAt: created},
				},
			},
			{
				ID: "survey-2", Title: "Q2", CreatedAt: created,
				Responses: []entity.SurveyResponse{
					{ID: "response-4", Score: 10, CreatedAt: created},
					{ID: "response-5", Score: 9, CreatedAt: created},
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := WriteNPSReport(&buf, report); err != nil {
		t.Fatalf("WriteNPSReport: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetSurveys)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("survey rows = %d, want header + 2 + total", len(rows))
	}
	if rows[1][3] != "Finance" {
		t.Errorf("tags cell = %q, want dangling id skipped", rows[1][3])
	}
	if rows[1][4] != "3" || rows[2][4] != "2" {
		t.Errorf("response counts = %q, %q", rows[1][4], rows[2][4])
	}
	if rows[1][8] != "0" {
		t.Errorf("Q1 NPS = %q, want 0", rows[1][8])
	}
	total := rows[3]
	if total[1] != "All surveys" || total[4] != "5" || total[8] != "40" || total[9] != "Good" {
		t.Errorf("total row = %v", total)
	}

	resp, err := f.GetRows(SheetResponses)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(resp) != 6 {
		t.Fatalf("response rows = %d", len(resp))
	}
	if resp[1][3] != "John Doe" || resp[2][3] != entity.UnknownRespondent {
		t.Errorf("respondent names = %q, %q", resp[1][3], resp[2][3])
	}
	if resp[1][5] != "promoter" {
		t.Errorf("class = %q", resp[1][5])
	}
}
