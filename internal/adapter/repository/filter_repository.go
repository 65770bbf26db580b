package repository

import (
	"context"
	"sync"

	"github.com/leondli/npsboard/internal/domain/entity"
	"github.com/leondli/npsboard/internal/domain/repository"
)

// filterRepository keeps the active tag selection in memory
type filterRepository struct {
	mu     sync.RWMutex
	active entity.TagSet
}

// NewFilterRepository creates an empty selection
func NewFilterRepository() repository.FilterRepository {
	return &filterRepository{active: entity.TagSet{}}
}

func (r *filterRepository) Active(ctx context.Context) (entity.TagSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active.Clone(), nil
}

func (r *filterRepository) Save(ctx context.Context, active entity.TagSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = entity.NewTagSet(active...)
	return nil
}

func (r *filterRepository) RemoveTag(ctx context.Context, tagID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active.Contains(tagID) {
		return 0, nil
	}
	r.active = r.active.Without(tagID)
	return 1, nil
}
