package tag

import (
	"context"
	"testing"

	"github.com/leondli/npsboard/internal/adapter/repository"
	"github.com/leondli/npsboard/internal/domain/entity"
	domainrepo "github.com/leondli/npsboard/internal/domain/repository"
	apperrors "github.com/leondli/npsboard/pkg/errors"
)

type fixture struct {
	uc          UseCase
	tags        domainrepo.TagRepository
	widgets     domainrepo.WidgetRepository
	surveys     domainrepo.SurveyRepository
	respondents domainrepo.RespondentRepository
	filters     domainrepo.FilterRepository
}

func newFixture() *fixture {
	f := &fixture{
		tags:        repository.NewTagRepository(),
		widgets:     repository.NewWidgetRepository(),
		surveys:     repository.NewSurveyRepository(),
		respondents: repository.NewRespondentRepository(),
		filters:     repository.NewFilterRepository(),
	}
	f.uc = NewUseCase(f.tags, f.widgets, f.surveys, f.respondents, f.filters)
	return f
}

func TestCreate_AllocatesIDAndAllowsDuplicateNames(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	in := &entity.TagCreate{Name: "Finance", Color: entity.TagColorGreen, Category: entity.TagCategorySurvey}
	a, err := f.uc.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := f.uc.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create duplicate name: %v", err)
	}
	if a.ID == b.ID || a.ID == "" {
		t.Fatalf("ids not fresh: %q %q", a.ID, b.ID)
	}
}

func TestCreate_RejectsUnknownColor(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), &entity.TagCreate{Name: "x", Color: "teal", Category: entity.TagCategoryUser})
	if !apperrors.IsInvalidInput(err) {
		t.Fatalf("Create error = %v, want invalid input", err)
	}
}

func TestUpdate_MergesFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	tag, _ := f.uc.Create(ctx, &entity.TagCreate{Name: "Sales", Color: entity.TagColorBlue, Category: entity.TagCategorySurvey})

	color := entity.TagColorRed
	got, err := f.uc.Update(ctx, tag.ID, &entity.TagUpdate{Color: &color})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Name != "Sales" || got.Category != entity.TagCategorySurvey || got.Color != entity.TagColorRed {
		t.Fatalf("Update result = %+v", got)
	}

	if _, err := f.uc.Update(ctx, "tag-missing", &entity.TagUpdate{Color: &color}); !apperrors.IsNotFound(err) {
		t.Fatalf("Update(missing) error = %v, want not found", err)
	}
}

func TestDelete_Cascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	keep, _ := f.uc.Create(ctx, &entity.TagCreate{Name: "Keep", Color: entity.TagColorBlue, Category: entity.TagCategorySurvey})
	gone, _ := f.uc.Create(ctx, &entity.TagCreate{Name: "Gone", Color: entity.TagColorPink, Category: entity.TagCategoryUser})

	_ = f.widgets.Create(ctx, &entity.Widget{ID: "w1", Tags: entity.TagSet{keep.ID, gone.ID}})
	_ = f.widgets.Create(ctx, &entity.Widget{ID: "w2", Tags: entity.TagSet{gone.ID}})
	_ = f.surveys.Create(ctx, &entity.Survey{ID: "s1", Tags: entity.TagSet{gone.ID}})
	_ = f.respondents.Create(ctx, &entity.Respondent{ID: "r1", Tags: entity.TagSet{gone.ID, keep.ID}})
	_ = f.filters.Save(ctx, entity.TagSet{gone.ID})

	result, err := f.uc.Delete(ctx, gone.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if result.Widgets != 2 || result.Surveys != 1 || result.Respondents != 1 || !result.WasActive {
		t.Fatalf("DeleteResult = %+v", result)
	}

	widgets, _ := f.widgets.List(ctx)
	for _, w := range widgets {
		if w.Tags.Contains(gone.ID) {
			t.Errorf("widget %s still references deleted tag", w.ID)
		}
	}
	surveys, _ := f.surveys.List(ctx)
	for _, s := range surveys {
		if s.Tags.Contains(gone.ID) {
			t.Errorf("survey %s still references deleted tag", s.ID)
		}
	}
	respondents, _ := f.respondents.List(ctx)
	for _, r := range respondents {
		if r.Tags.Contains(gone.ID) {
			t.Errorf("respondent %s still references deleted tag", r.ID)
		}
		if !r.Tags.Contains(keep.ID) {
			t.Errorf("respondent %s lost an unrelated tag", r.ID)
		}
	}
	active, _ := f.filters.Active(ctx)
	if active.Contains(gone.ID) {
		t.Errorf("active filter still contains deleted tag")
	}
	if _, err := f.uc.GetByID(ctx, gone.ID); !apperrors.IsNotFound(err) {
		t.Errorf("deleted tag still retrievable: %v", err)
	}
}

func TestDelete_MissingLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	tag, _ := f.uc.Create(ctx, &entity.TagCreate{Name: "A", Color: entity.TagColorBlue, Category: entity.TagCategorySurvey})
	_ = f.widgets.Create(ctx, &entity.Widget{ID: "w1", Tags: entity.TagSet{tag.ID}})

	if _, err := f.uc.Delete(ctx, "tag-missing"); !apperrors.IsNotFound(err) {
		t.Fatalf("Delete(missing) error = %v, want not found", err)
	}
	w, _ := f.widgets.GetByID(ctx, "w1")
	if !w.Tags.Contains(tag.ID) {
		t.Fatalf("widget tags changed: %v", w.Tags)
	}
}

func TestResolve_SkipsDanglingIDs(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	tag, _ := f.uc.Create(ctx, &entity.TagCreate{Name: "A", Color: entity.TagColorBlue, Category: entity.TagCategorySurvey})

	tags, err := f.uc.Resolve(ctx, entity.TagSet{"tag-ghost", tag.ID})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(tags) != 1 || tags[0].ID != tag.ID {
		t.Fatalf("Resolve() = %+v", tags)
	}
}
