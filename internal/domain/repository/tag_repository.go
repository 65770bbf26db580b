package repository

import (
	"context"

	"github.com/leondli/npsboard/internal/domain/entity"
)

// TagRepository defines the interface for tag data access
type TagRepository interface {
	// Create stores a new tag; the ID must already be set
	Create(ctx context.Context, tag *entity.Tag) error

	// GetByID retrieves a tag by ID
	GetByID(ctx context.Context, id string) (*entity.Tag, error)

	// Update replaces a stored tag
	Update(ctx context.Context, tag *entity.Tag) error

	// Delete deletes a tag
	Delete(ctx context.Context, id string) error

	// List lists tags in insertion order; an empty category lists all
	List(ctx context.Context, category entity.TagCategory) ([]entity.Tag, error)
}

// TagReferenceCleaner is implemented by stores that hold tag ids
type TagReferenceCleaner interface {
	// RemoveTag drops tagID from every record and returns how many changed
	RemoveTag(ctx context.Context, tagID string) (int, error)
}
