package survey

import (
	"context"
	"testing"
	"time"

	"github.com/leondli/npsboard/internal/adapter/repository"
	"github.com/leondli/npsboard/internal/domain/entity"
	domainrepo "github.com/leondli/npsboard/internal/domain/repository"
	apperrors "github.com/leondli/npsboard/pkg/errors"
)

type fixture struct {
	uc          UseCase
	tags        domainrepo.TagRepository
	respondents domainrepo.RespondentRepository
	ctx         context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		tags:        repository.NewTagRepository(),
		respondents: repository.NewRespondentRepository(),
		ctx:         context.Background(),
	}
	f.uc = NewUseCase(repository.NewSurveyRepository(), f.tags, f.respondents)
	return f
}

func scores(s ...int) []entity.ResponseCreate {
	out := make([]entity.ResponseCreate, len(s))
	for i, v := range s {
		out[i] = entity.ResponseCreate{Score: v, RespondentID: "respondent-x"}
	}
	return out
}

func day(d int) time.Time {
	return time.Date(2023, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestCreate_AssignsResponseIDs(t *testing.T) {
	f := newFixture(t)
	s, err := f.uc.Create(f.ctx, &entity.SurveyCreate{Title: "Q1", Responses: scores(9, 7, 5)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(s.Responses) != 3 {
		t.Fatalf("responses = %d", len(s.Responses))
	}
	seen := map[string]bool{}
	for _, r := range s.Responses {
		if r.ID == "" || seen[r.ID] {
			t.Fatalf("bad response id %q", r.ID)
		}
		seen[r.ID] = true
		if r.SurveyID != s.ID {
			t.Fatalf("response survey id = %q, want %q", r.SurveyID, s.ID)
		}
	}
	if s.NpsScore != nil {
		t.Fatalf("new survey has a cached score")
	}
	if s.CreatedAt.IsZero() {
		t.Fatalf("createdAt not defaulted")
	}
}

func TestCreate_RejectsOutOfRangeScore(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(f.ctx, &entity.SurveyCreate{Title: "Q1", Responses: scores(9, 11)})
	if !apperrors.IsInvalidInput(err) {
		t.Fatalf("Create error = %v, want invalid input", err)
	}
	list, _ := f.uc.List(f.ctx)
	if len(list) != 0 {
		t.Fatalf("survey stored despite invalid input")
	}
}

func TestList_NewestFirst(t *testing.T) {
	f := newFixture(t)
	_, _ = f.uc.Create(f.ctx, &entity.SurveyCreate{Title: "old", CreatedAt: day(1)})
	_, _ = f.uc.Create(f.ctx, &entity.SurveyCreate{Title: "new", CreatedAt: day(20)})
	_, _ = f.uc.Create(f.ctx, &entity.SurveyCreate{Title: "mid", CreatedAt: day(10)})

	list, err := f.uc.List(f.ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if list[0].Title != "new" || list[1].Title != "mid" || list[2].Title != "old" {
		t.Fatalf("List order = %s, %s, %s", list[0].Title, list[1].Title, list[2].Title)
	}
}

func TestScoreCache_NeverDiverges(t *testing.T) {
	f := newFixture(t)
	s, _ := f.uc.Create(f.ctx, &entity.SurveyCreate{Title: "Q1", Responses: scores(9, 9, 3)})

	sum, err := f.uc.Score(f.ctx, s.ID)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if sum.Score != 33 || sum.Cached {
		t.Fatalf("derived Score = %+v", sum)
	}

	s, err = f.uc.RecomputeScore(f.ctx, s.ID)
	if err != nil {
		t.Fatalf("RecomputeScore: %v", err)
	}
	if s.NpsScore == nil || *s.NpsScore != 33 {
		t.Fatalf("cache = %v, want 33", s.NpsScore)
	}
	sum, _ = f.uc.Score(f.ctx, s.ID)
	if !sum.Cached || sum.Score != 33 {
		t.Fatalf("cached Score = %+v", sum)
	}

	// a new response invalidates the cache
	if _, err := f.uc.AddResponse(f.ctx, s.ID, &entity.ResponseCreate{Score: 10}); err != nil {
		t.Fatalf("AddResponse: %v", err)
	}
	sum, _ = f.uc.Score(f.ctx, s.ID)
	if sum.Cached || sum.Score != 50 {
		t.Fatalf("Score after AddResponse = %+v, want derived 50", sum)
	}

	// replacing responses through Update invalidates it as well
	_, _ = f.uc.RecomputeScore(f.ctx, s.ID)
	replacement := scores(0, 0)
	if _, err := f.uc.Update(f.ctx, s.ID, &entity.SurveyUpdate{Responses: &replacement}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	sum, _ = f.uc.Score(f.ctx, s.ID)
	if sum.Cached || sum.Score != -100 {
		t.Fatalf("Score after Update = %+v, want derived -100", sum)
	}
}

func TestUpdate_TitleOnlyKeepsResponses(t *testing.T) {
	f := newFixture(t)
	s, _ := f.uc.Create(f.ctx, &entity.SurveyCreate{Title: "Q1", Description: "d", Tags: []string{"tag-1"}, Responses: scores(9)})
	_, _ = f.uc.RecomputeScore(f.ctx, s.ID)

	title := "Q1 renamed"
	got, err := f.uc.Update(f.ctx, s.ID, &entity.SurveyUpdate{Title: &title})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Description != "d" || len(got.Tags) != 1 || len(got.Responses) != 1 {
		t.Fatalf("Update dropped fields: %+v", got)
	}
	if got.NpsScore == nil {
		t.Fatalf("title change cleared the score cache")
	}
}

func TestRemoveResponse(t *testing.T) {
	f := newFixture(t)
	s, _ := f.uc.Create(f.ctx, &entity.SurveyCreate{Title: "Q1", Responses: scores(9, 3)})

	if err := f.uc.RemoveResponse(f.ctx, s.ID, s.Responses[1].ID); err != nil {
		t.Fatalf("RemoveResponse: %v", err)
	}
	sum, _ := f.uc.Score(f.ctx, s.ID)
	if sum.Total != 1 || sum.Score != 100 {
		t.Fatalf("Score after removal = %+v", sum)
	}
	if err := f.uc.RemoveResponse(f.ctx, s.ID, "response-missing"); !apperrors.IsNotFound(err) {
		t.Fatalf("RemoveResponse(missing) = %v", err)
	}
	if err := f.uc.RemoveResponse(f.ctx, "survey-missing", s.Responses[0].ID); !apperrors.IsNotFound(err) {
		t.Fatalf("RemoveResponse(missing survey) = %v", err)
	}
}

func TestOverview_PoolsByTag(t *testing.T) {
	f := newFixture(t)
	ctx := f.ctx
	_ = f.tags.Create(ctx, &entity.Tag{ID: "finance", Name: "Finance", Color: entity.TagColorGreen, Category: entity.TagCategorySurvey})
	_ = f.tags.Create(ctx, &entity.Tag{ID: "empty", Name: "Empty", Color: entity.TagColorRed, Category: entity.TagCategorySurvey})
	_ = f.tags.Create(ctx, &entity.Tag{ID: "manager", Name: "Manager", Color: entity.TagColorRed, Category: entity.TagCategoryUser})
	_ = f.respondents.Create(ctx, &entity.Respondent{ID: "r1", Name: "Jane", Tags: entity.TagSet{"manager"}})
	_ = f.respondents.Create(ctx, &entity.Respondent{ID: "r2", Name: "Bob"})

	_, _ = f.uc.Create(ctx, &entity.SurveyCreate{Title: "A", Tags: []string{"finance"}, Responses: []entity.ResponseCreate{
		{Score: 9, RespondentID: "r1"}, {Score: 8, RespondentID: "r2"}, {Score: 3, RespondentID: "r2"},
	}})
	_, _ = f.uc.Create(ctx, &entity.SurveyCreate{Title: "B", Tags: []string{"finance"}, Responses: []entity.ResponseCreate{
		{Score: 10, RespondentID: "r1"}, {Score: 9, RespondentID: "r2"},
	}})
	_, _ = f.uc.Create(ctx, &entity.SurveyCreate{Title: "C", Tags: []string{"empty"}})

	ov, err := f.uc.Overview(ctx)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if ov.Overall.Total != 5 || ov.Overall.Score != 40 {
		t.Fatalf("Overall = %+v, want 5 responses at 40", ov.Overall)
	}
	if len(ov.BySurveyTag) != 1 || ov.BySurveyTag[0].Tag.ID != "finance" || ov.BySurveyTag[0].Score != 40 {
		t.Fatalf("BySurveyTag = %+v", ov.BySurveyTag)
	}
	if len(ov.ByUserTag) != 1 || ov.ByUserTag[0].Total != 2 || ov.ByUserTag[0].Score != 100 {
		t.Fatalf("ByUserTag = %+v", ov.ByUserTag)
	}
	if ov.Overall.Band != "Good" {
		t.Fatalf("Overall band = %q", ov.Overall.Band)
	}
}

func TestFeedback_UnknownRespondent(t *testing.T) {
	f := newFixture(t)
	_ = f.respondents.Create(f.ctx, &entity.Respondent{ID: "r1", Name: "Jane"})
	s, _ := f.uc.Create(f.ctx, &entity.SurveyCreate{Title: "Q1", Responses: []entity.ResponseCreate{
		{Score: 9, RespondentID: "r1", Feedback: "great", CreatedAt: day(2)},
		{Score: 4, RespondentID: "r-gone", Feedback: "slow", CreatedAt: day(5)},
	}})

	entries, err := f.uc.Feedback(f.ctx, s.ID)
	if err != nil {
		t.Fatalf("Feedback: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d", len(entries))
	}
	if entries[0].RespondentName != entity.UnknownRespondent || entries[0].Feedback != "slow" {
		t.Fatalf("first entry = %+v, want newest with unknown respondent", entries[0])
	}
	if entries[1].RespondentName != "Jane" {
		t.Fatalf("second entry = %+v", entries[1])
	}

	if _, err := f.uc.Feedback(f.ctx, "survey-missing"); !apperrors.IsNotFound(err) {
		t.Fatalf("Feedback(missing) = %v", err)
	}
}

func TestDistribution_AcrossSurveys(t *testing.T) {
	f := newFixture(t)
	_, _ = f.uc.Create(f.ctx, &entity.SurveyCreate{Title: "A", Responses: scores(9, 7, 5)})
	_, _ = f.uc.Create(f.ctx, &entity.SurveyCreate{Title: "B", Responses: scores(9, 10)})

	hist, err := f.uc.Distribution(f.ctx)
	if err != nil {
		t.Fatalf("Distribution: %v", err)
	}
	if hist[9] != 2 || hist[10] != 1 || hist[5] != 1 || hist[7] != 1 || hist[0] != 0 {
		t.Fatalf("Distribution = %v", hist)
	}
}
