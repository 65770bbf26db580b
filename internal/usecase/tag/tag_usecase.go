package tag

import (
	"context"

	"github.com/leondli/npsboard/internal/domain/entity"
	"github.com/leondli/npsboard/internal/domain/repository"
	apperrors "github.com/leondli/npsboard/pkg/errors"
	"github.com/leondli/npsboard/pkg/idgen"
)

// UseCase defines the tag use case interface
type UseCase interface {
	Create(ctx context.Context, input *entity.TagCreate) (*entity.Tag, error)
	GetByID(ctx context.Context, id string) (*entity.Tag, error)
	List(ctx context.Context, category entity.TagCategory) ([]entity.Tag, error)
	Update(ctx context.Context, id string, input *entity.TagUpdate) (*entity.Tag, error)
	Delete(ctx context.Context, id string) (*DeleteResult, error)
	Resolve(ctx context.Context, ids entity.TagSet) ([]entity.Tag, error)
}

// DeleteResult reports how many records lost the deleted tag
type DeleteResult struct {
	Widgets     int  `json:"widgets"`
	Surveys     int  `json:"surveys"`
	Respondents int  `json:"respondents"`
	WasActive   bool `json:"wasActive"`
}

type tagUseCase struct {
	tagRepo        repository.TagRepository
	widgetRepo     repository.WidgetRepository
	surveyRepo     repository.SurveyRepository
	respondentRepo repository.RespondentRepository
	filterRepo     repository.FilterRepository
}

// NewUseCase creates a new tag use case
func NewUseCase(
	tagRepo repository.TagRepository,
	widgetRepo repository.WidgetRepository,
	surveyRepo repository.SurveyRepository,
	respondentRepo repository.RespondentRepository,
	filterRepo repository.FilterRepository,
) UseCase {
	return &tagUseCase{
		tagRepo:        tagRepo,
		widgetRepo:     widgetRepo,
		surveyRepo:     surveyRepo,
		respondentRepo: respondentRepo,
		filterRepo:     filterRepo,
	}
}

func (u *tagUseCase) Create(ctx context.Context, input *entity.TagCreate) (*entity.Tag, error) {
	// Names are not unique; two tags may share one
	if err := input.Validate(); err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}

	id, err := idgen.New(idgen.PrefixTag)
	if err != nil {
		return nil, apperrors.InternalError("failed to allocate tag id", err)
	}

	tag := &entity.Tag{
		ID:       id,
		Name:     input.Name,
		Color:    input.Color,
		Category: input.Category,
	}

	if err := u.tagRepo.Create(ctx, tag); err != nil {
		return nil, apperrors.InternalError("failed to create tag", err)
	}

	return tag, nil
}

func (u *tagUseCase) GetByID(ctx context.Context, id string) (*entity.Tag, error) {
	tag, err := u.tagRepo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFoundError("tag")
		}
		return nil, apperrors.InternalError("failed to get tag", err)
	}
	return tag, nil
}

func (u *tagUseCase) List(ctx context.Context, category entity.TagCategory) ([]entity.Tag, error) {
	if category != "" && !category.Valid() {
		return nil, apperrors.ValidationError("unknown tag category")
	}
	tags, err := u.tagRepo.List(ctx, category)
	if err != nil {
		return nil, apperrors.InternalError("failed to list tags", err)
	}
	return tags, nil
}

func (u *tagUseCase) Update(ctx context.Context, id string, input *entity.TagUpdate) (*entity.Tag, error) {
	tag, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}

	input.Apply(tag)
	if err := u.tagRepo.Update(ctx, tag); err != nil {
		return nil, apperrors.InternalError("failed to update tag", err)
	}
	return tag, nil
}

// Delete removes the tag and every reference to it from widgets, surveys,
// respondents and the active filter.
func (u *tagUseCase) Delete(ctx context.Context, id string) (*DeleteResult, error) {
	// Check if tag exists
	if _, err := u.GetByID(ctx, id); err != nil {
		return nil, err
	}

	var (
		result DeleteResult
		err    error
	)
	if result.Widgets, err = u.widgetRepo.RemoveTag(ctx, id); err != nil {
		return nil, apperrors.InternalError("failed to untag widgets", err)
	}
	if result.Surveys, err = u.surveyRepo.RemoveTag(ctx, id); err != nil {
		return nil, apperrors.InternalError("failed to untag surveys", err)
	}
	if result.Respondents, err = u.respondentRepo.RemoveTag(ctx, id); err != nil {
		return nil, apperrors.InternalError("failed to untag respondents", err)
	}
	active, err := u.filterRepo.RemoveTag(ctx, id)
	if err != nil {
		return nil, apperrors.InternalError("failed to update filter", err)
	}
	result.WasActive = active > 0

	if err := u.tagRepo.Delete(ctx, id); err != nil {
		return nil, apperrors.InternalError("failed to delete tag", err)
	}

	return &result, nil
}

// Resolve maps ids to tags, skipping ids that no longer exist
func (u *tagUseCase) Resolve(ctx context.Context, ids entity.TagSet) ([]entity.Tag, error) {
	tags := make([]entity.Tag, 0, len(ids))
	for _, id := range ids {
		tag, err := u.tagRepo.GetByID(ctx, id)
		if err != nil {
			if apperrors.IsNotFound(err) {
				continue
			}
			return nil, apperrors.InternalError("failed to get tag", err)
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}
