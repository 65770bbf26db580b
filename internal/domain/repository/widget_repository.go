package repository

import (
	"context"

	"github.com/leondli/npsboard/internal/domain/entity"
)

// WidgetRepository defines the interface for widget data access
type WidgetRepository interface {
	TagReferenceCleaner

	Create(ctx context.Context, widget *entity.Widget) error
	GetByID(ctx context.Context, id string) (*entity.Widget, error)
	Update(ctx context.Context, widget *entity.Widget) error
	Delete(ctx context.Context, id string) error

	// List returns widgets in insertion order
	List(ctx context.Context) ([]entity.Widget, error)
}
