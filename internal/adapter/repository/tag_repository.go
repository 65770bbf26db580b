package repository

import (
	"context"

	"github.com/leondli/npsboard/internal/domain/entity"
	"github.com/leondli/npsboard/internal/domain/repository"
	apperrors "github.com/leondli/npsboard/pkg/errors"
)

// tagRepository implements repository.TagRepository in memory
type tagRepository struct {
	table *memoryTable[entity.Tag]
}

// NewTagRepository creates a new tag repository
func NewTagRepository() repository.TagRepository {
	return &tagRepository{
		table: newMemoryTable(func(t *entity.Tag) *entity.Tag {
			c := *t
			return &c
		}),
	}
}

func (r *tagRepository) Create(ctx context.Context, tag *entity.Tag) error {
	return r.table.insert(tag.ID, tag)
}

func (r *tagRepository) GetByID(ctx context.Context, id string) (*entity.Tag, error) {
	tag, ok := r.table.get(id)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return tag, nil
}

func (r *tagRepository) Update(ctx context.Context, tag *entity.Tag) error {
	if !r.table.replace(tag.ID, tag) {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *tagRepository) Delete(ctx context.Context, id string) error {
	if !r.table.remove(id) {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *tagRepository) List(ctx context.Context, category entity.TagCategory) ([]entity.Tag, error) {
	all := r.table.list()
	if category == "" {
		return all, nil
	}

	tags := make([]entity.Tag, 0, len(all))
	for _, t := range all {
		if t.Category == category {
			tags = append(tags, t)
		}
	}
	return tags, nil
}
