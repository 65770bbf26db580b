package filter

import (
	"context"

	"github.com/leondli/npsboard/internal/domain/entity"
	"github.com/leondli/npsboard/internal/domain/repository"
	apperrors "github.com/leondli/npsboard/pkg/errors"
)

// UseCase defines the tag filter use case interface
type UseCase interface {
	Active(ctx context.Context) (entity.TagSet, error)
	Toggle(ctx context.Context, tagID string) (entity.TagSet, error)
	Clear(ctx context.Context) error
	Filtered(ctx context.Context) ([]entity.Widget, error)
}

type filterUseCase struct {
	filterRepo repository.FilterRepository
	tagRepo    repository.TagRepository
	widgetRepo repository.WidgetRepository
}

// NewUseCase creates a new filter use case
func NewUseCase(
	filterRepo repository.FilterRepository,
	tagRepo repository.TagRepository,
	widgetRepo repository.WidgetRepository,
) UseCase {
	return &filterUseCase{
		filterRepo: filterRepo,
		tagRepo:    tagRepo,
		widgetRepo: widgetRepo,
	}
}

// ComputeFilteredWidgets returns every widget when active is empty, and
// otherwise the widgets carrying at least one active tag.
func ComputeFilteredWidgets(widgets []entity.Widget, active entity.TagSet) []entity.Widget {
	if len(active) == 0 {
		return widgets
	}

	out := make([]entity.Widget, 0, len(widgets))
	for _, w := range widgets {
		if w.Tags.Intersects(active) {
			out = append(out, w)
		}
	}
	return out
}

func (u *filterUseCase) Active(ctx context.Context) (entity.TagSet, error) {
	active, err := u.filterRepo.Active(ctx)
	if err != nil {
		return nil, apperrors.InternalError("failed to read filter", err)
	}
	return active, nil
}

func (u *filterUseCase) Toggle(ctx context.Context, tagID string) (entity.TagSet, error) {
	active, err := u.filterRepo.Active(ctx)
	if err != nil {
		return nil, apperrors.InternalError("failed to read filter", err)
	}

	// Only existing tags can be switched on; a stale id can always be switched off
	if !active.Contains(tagID) {
		if _, err := u.tagRepo.GetByID(ctx, tagID); err != nil {
			if apperrors.IsNotFound(err) {
				return active, apperrors.NotFoundError("tag")
			}
			return nil, apperrors.InternalError("failed to get tag", err)
		}
	}

	next := active.Toggle(tagID)
	if err := u.filterRepo.Save(ctx, next); err != nil {
		return nil, apperrors.InternalError("failed to save filter", err)
	}
	return next, nil
}

func (u *filterUseCase) Clear(ctx context.Context) error {
	if err := u.filterRepo.Save(ctx, entity.TagSet{}); err != nil {
		return apperrors.InternalError("failed to clear filter", err)
	}
	return nil
}

func (u *filterUseCase) Filtered(ctx context.Context) ([]entity.Widget, error) {
	widgets, err := u.widgetRepo.List(ctx)
	if err != nil {
		return nil, apperrors.InternalError("failed to list widgets", err)
	}
	active, err := u.filterRepo.Active(ctx)
	if err != nil {
		return nil, apperrors.InternalError("failed to read filter", err)
	}
	return ComputeFilteredWidgets(widgets, active), nil
}
