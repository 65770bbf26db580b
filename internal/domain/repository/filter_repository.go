package repository

import (
	"context"

	"github.com/leondli/npsboard/internal/domain/entity"
)

// FilterRepository holds the active tag selection of the dashboard
type FilterRepository interface {
	TagReferenceCleaner

	// Active returns a copy of the selected tag ids
	Active(ctx context.Context) (entity.TagSet, error)

	// Save replaces the selection
	Save(ctx context.Context, active entity.TagSet) error
}
