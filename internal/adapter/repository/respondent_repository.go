package repository

import (
	"context"

	"github.com/leondli/npsboard/internal/domain/entity"
	"github.com/leondli/npsboard/internal/domain/repository"
	apperrors "github.com/leondli/npsboard/pkg/errors"
)

// respondentRepository implements repository.RespondentRepository in memory
type respondentRepository struct {
	table *memoryTable[entity.Respondent]
}

// NewRespondentRepository creates a new respondent repository
func NewRespondentRepository() repository.RespondentRepository {
	return &respondentRepository{
		table: newMemoryTable((*entity.Respondent).Clone),
	}
}

func (r *respondentRepository) Create(ctx context.Context, respondent *entity.Respondent) error {
	return r.table.insert(respondent.ID, respondent)
}

func (r *respondentRepository) GetByID(ctx context.Context, id string) (*entity.Respondent, error) {
	resp, ok := r.table.get(id)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return resp, nil
}

func (r *respondentRepository) Update(ctx context.Context, respondent *entity.Respondent) error {
	if !r.table.replace(respondent.ID, respondent) {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *respondentRepository) Delete(ctx context.Context, id string) error {
	if !r.table.remove(id) {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *respondentRepository) List(ctx context.Context) ([]entity.Respondent, error) {
	return r.table.list(), nil
}

func (r *respondentRepository) RemoveTag(ctx context.Context, tagID string) (int, error) {
	return r.table.mutateAll(func(resp *entity.Respondent) bool {
		if !resp.Tags.Contains(tagID) {
			return false
		}
		resp.Tags = resp.Tags.Without(tagID)
		return true
	}), nil
}
