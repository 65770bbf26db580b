package repository

import (
	"context"

	"github.com/leondli/npsboard/internal/domain/entity"
)

// RespondentRepository defines the interface for respondent data access
type RespondentRepository interface {
	TagReferenceCleaner

	Create(ctx context.Context, respondent *entity.Respondent) error
	GetByID(ctx context.Context, id string) (*entity.Respondent, error)
	Update(ctx context.Context, respondent *entity.Respondent) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]entity.Respondent, error)
}
