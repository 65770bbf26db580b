package repository

import (
	"context"

	"github.com/leondli/npsboard/internal/domain/entity"
	"github.com/leondli/npsboard/internal/domain/repository"
	apperrors "github.com/leondli/npsboard/pkg/errors"
)

// widgetRepository implements repository.WidgetRepository in memory
type widgetRepository struct {
	table *memoryTable[entity.Widget]
}

// NewWidgetRepository creates a new widget repository
func NewWidgetRepository() repository.WidgetRepository {
	return &widgetRepository{
		table: newMemoryTable((*entity.Widget).Clone),
	}
}

func (r *widgetRepository) Create(ctx context.Context, widget *entity.Widget) error {
	return r.table.insert(widget.ID, widget)
}

func (r *widgetRepository) GetByID(ctx context.Context, id string) (*entity.Widget, error) {
	w, ok := r.table.get(id)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return w, nil
}

func (r *widgetRepository) Update(ctx context.Context, widget *entity.Widget) error {
	if !r.table.replace(widget.ID, widget) {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *widgetRepository) Delete(ctx context.Context, id string) error {
	if !r.table.remove(id) {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *widgetRepository) List(ctx context.Context) ([]entity.Widget, error) {
	return r.table.list(), nil
}

func (r *widgetRepository) RemoveTag(ctx context.Context, tagID string) (int, error) {
	return r.table.mutateAll(func(w *entity.Widget) bool {
		if !w.Tags.Contains(tagID) {
			return false
		}
		w.Tags = w.Tags.Without(tagID)
		return true
	}), nil
}
