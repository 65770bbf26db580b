package survey

import (
	"context"
	"sort"
	"time"

	"github.com/leondli/npsboard/internal/domain/entity"
	"github.com/leondli/npsboard/internal/usecase/nps"
	apperrors "github.com/leondli/npsboard/pkg/errors"
)

// Summary is a breakdown together with its score and band
type Summary struct {
	nps.Breakdown
	Score  int    `json:"score"`
	Band   string `json:"band"`
	Cached bool   `json:"cached,omitempty"`
}

// TagSummary is the pooled NPS of everything carrying one tag
type TagSummary struct {
	Tag entity.Tag `json:"tag"`
	Summary
}

// Overview is the dashboard-wide NPS picture
type Overview struct {
	Overall     Summary      `json:"overall"`
	BySurveyTag []TagSummary `json:"bySurveyTag"`
	ByUserTag   []TagSummary `json:"byUserTag"`
}

// FeedbackEntry is one response with its survey and respondent resolved
type FeedbackEntry struct {
	ResponseID     string    `json:"responseId"`
	SurveyID       string    `json:"surveyId"`
	SurveyTitle    string    `json:"surveyTitle"`
	RespondentID   string    `json:"respondentId"`
	RespondentName string    `json:"respondentName"`
	Score          int       `json:"score"`
	Class          nps.Class `json:"class"`
	Feedback       string    `json:"feedback,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

func summarize(b nps.Breakdown) Summary {
	score := b.Score()
	return Summary{Breakdown: b, Score: score, Band: nps.Band(score)}
}

// Overview pools responses overall, per survey tag and per user tag.
// Tags without any matching response are left out.
func (u *surveyUseCase) Overview(ctx context.Context) (*Overview, error) {
	surveys, err := u.surveyRepo.List(ctx)
	if err != nil {
		return nil, apperrors.InternalError("failed to list surveys", err)
	}
	tags, err := u.tagRepo.List(ctx, "")
	if err != nil {
		return nil, apperrors.InternalError("failed to list tags", err)
	}
	respondents, err := u.respondentRepo.List(ctx)
	if err != nil {
		return nil, apperrors.InternalError("failed to list respondents", err)
	}

	respondentTags := make(map[string]entity.TagSet, len(respondents))
	for _, r := range respondents {
		respondentTags[r.ID] = r.Tags
	}

	out := &Overview{
		Overall:     summarize(nps.Aggregate(surveys)),
		BySurveyTag: []TagSummary{},
		ByUserTag:   []TagSummary{},
	}

	for _, tag := range tags {
		var b nps.Breakdown
		switch tag.Category {
		case entity.TagCategorySurvey:
			for i := range surveys {
				if surveys[i].Tags.Contains(tag.ID) {
					b = b.Add(nps.Tally(surveys[i].Responses))
				}
			}
		case entity.TagCategoryUser:
			var scores []int
			for i := range surveys {
				for _, r := range surveys[i].Responses {
					if respondentTags[r.RespondentID].Contains(tag.ID) {
						scores = append(scores, r.Score)
					}
				}
			}
			b = nps.TallyScores(scores)
		}
		if b.Total == 0 {
			continue
		}

		entry := TagSummary{Tag: tag, Summary: summarize(b)}
		if tag.Category == entity.TagCategorySurvey {
			out.BySurveyTag = append(out.BySurveyTag, entry)
		} else {
			out.ByUserTag = append(out.ByUserTag, entry)
		}
	}

	return out, nil
}

// Feedback lists responses newest first. An empty surveyID lists every
// survey. Responses whose respondent was removed keep their place and are
// attributed to entity.UnknownRespondent.
func (u *surveyUseCase) Feedback(ctx context.Context, surveyID string) ([]FeedbackEntry, error) {
	var surveys []entity.Survey
	if surveyID != "" {
		s, err := u.GetByID(ctx, surveyID)
		if err != nil {
			return nil, err
		}
		surveys = []entity.Survey{*s}
	} else {
		all, err := u.surveyRepo.List(ctx)
		if err != nil {
			return nil, apperrors.InternalError("failed to list surveys", err)
		}
		surveys = all
	}

	respondents, err := u.respondentRepo.List(ctx)
	if err != nil {
		return nil, apperrors.InternalError("failed to list respondents", err)
	}
	names := make(map[string]string, len(respondents))
	for _, r := range respondents {
		names[r.ID] = r.Name
	}

	entries := make([]FeedbackEntry, 0)
	for _, s := range surveys {
		for _, r := range s.Responses {
			name, ok := names[r.RespondentID]
			if !ok {
				name = entity.UnknownRespondent
			}
			entries = append(entries, FeedbackEntry{
				ResponseID:     r.ID,
				SurveyID:       s.ID,
				SurveyTitle:    s.Title,
				RespondentID:   r.RespondentID,
				RespondentName: name,
				Score:          r.Score,
				Class:          nps.Classify(r.Score),
				Feedback:       r.Feedback,
				CreatedAt:      r.CreatedAt,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

// Distribution is the score histogram across every survey
func (u *surveyUseCase) Distribution(ctx context.Context) ([entity.MaxScore + 1]int, error) {
	var hist [entity.MaxScore + 1]int
	surveys, err := u.surveyRepo.List(ctx)
	if err != nil {
		return hist, apperrors.InternalError("failed to list surveys", err)
	}
	for i := range surveys {
		h := nps.Distribution(surveys[i].Responses)
		for score, n := range h {
			hist[score] += n
		}
	}
	return hist, nil
}
