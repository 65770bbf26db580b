package repository

import (
	"context"

	"github.com/leondli/npsboard/internal/domain/entity"
)

// SurveyRepository defines the interface for survey data access.
// Responses are stored inside their survey.
type SurveyRepository interface {
	TagReferenceCleaner

	Create(ctx context.Context, survey *entity.Survey) error
	GetByID(ctx context.Context, id string) (*entity.Survey, error)
	Update(ctx context.Context, survey *entity.Survey) error
	Delete(ctx context.Context, id string) error

	// List returns surveys in insertion order
	List(ctx context.Context) ([]entity.Survey, error)
}
