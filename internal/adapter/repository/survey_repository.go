package repository

import (
	"context"

	"github.com/leondli/npsboard/internal/domain/entity"
	"github.com/leondli/npsboard/internal/domain/repository"
	apperrors "github.com/leondli/npsboard/pkg/errors"
)

// surveyRepository implements repository.SurveyRepository in memory
type surveyRepository struct {
	table *memoryTable[entity.Survey]
}

// NewSurveyRepository creates a new survey repository
func NewSurveyRepository() repository.SurveyRepository {
	return &surveyRepository{
		table: newMemoryTable((*entity.Survey).Clone),
	}
}

func (r *surveyRepository) Create(ctx context.Context, survey *entity.Survey) error {
	return r.table.insert(survey.ID, survey)
}

func (r *surveyRepository) GetByID(ctx context.Context, id string) (*entity.Survey, error) {
	s, ok := r.table.get(id)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return s, nil
}

func (r *surveyRepository) Update(ctx context.Context, survey *entity.Survey) error {
	if !r.table.replace(survey.ID, survey) {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *surveyRepository) Delete(ctx context.Context, id string) error {
	if !r.table.remove(id) {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *surveyRepository) List(ctx context.Context) ([]entity.Survey, error) {
	return r.table.list(), nil
}

func (r *surveyRepository) RemoveTag(ctx context.Context, tagID string) (int, error) {
	return r.table.mutateAll(func(s *entity.Survey) bool {
		if !s.Tags.Contains(tagID) {
			return false
		}
		s.Tags = s.Tags.Without(tagID)
		return true
	}), nil
}
