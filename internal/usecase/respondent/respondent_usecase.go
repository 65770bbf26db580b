package respondent

import (
	"context"

	"github.com/leondli/npsboard/internal/domain/entity"
	"github.com/leondli/npsboard/internal/domain/repository"
	apperrors "github.com/leondli/npsboard/pkg/errors"
	"github.com/leondli/npsboard/pkg/idgen"
)

// UseCase defines the respondent use case interface
type UseCase interface {
	Create(ctx context.Context, input *entity.RespondentCreate) (*entity.Respondent, error)
	GetByID(ctx context.Context, id string) (*entity.Respondent, error)
	List(ctx context.Context) ([]entity.Respondent, error)
	Update(ctx context.Context, id string, input *entity.RespondentUpdate) (*entity.Respondent, error)
	Delete(ctx context.Context, id string) error
}

type respondentUseCase struct {
	respondentRepo repository.RespondentRepository
}

// NewUseCase creates a new respondent use case
func NewUseCase(respondentRepo repository.RespondentRepository) UseCase {
	return &respondentUseCase{respondentRepo: respondentRepo}
}

func (u *respondentUseCase) Create(ctx context.Context, input *entity.RespondentCreate) (*entity.Respondent, error) {
	if err := input.Validate(); err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}

	id, err := idgen.New(idgen.PrefixRespondent)
	if err != nil {
		return nil, apperrors.InternalError("failed to allocate respondent id", err)
	}

	r := &entity.Respondent{
		ID:    id,
		Name:  input.Name,
		Email: input.Email,
		Tags:  entity.NewTagSet(input.Tags...),
	}
	if err := u.respondentRepo.Create(ctx, r); err != nil {
		return nil, apperrors.InternalError("failed to create respondent", err)
	}
	return r, nil
}

func (u *respondentUseCase) GetByID(ctx context.Context, id string) (*entity.Respondent, error) {
	r, err := u.respondentRepo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFoundError("respondent")
		}
		return nil, apperrors.InternalError("failed to get respondent", err)
	}
	return r, nil
}

func (u *respondentUseCase) List(ctx context.Context) ([]entity.Respondent, error) {
	respondents, err := u.respondentRepo.List(ctx)
	if err != nil {
		return nil, apperrors.InternalError("failed to list respondents", err)
	}
	return respondents, nil
}

func (u *respondentUseCase) Update(ctx context.Context, id string, input *entity.RespondentUpdate) (*entity.Respondent, error) {
	r, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}

	input.Apply(r)
	if err := u.respondentRepo.Update(ctx, r); err != nil {
		return nil, apperrors.InternalError("failed to update respondent", err)
	}
	return r, nil
}

// Delete removes the respondent only. Responses keep their respondent id
// and are reported as coming from an unknown respondent.
func (u *respondentUseCase) Delete(ctx context.Context, id string) error {
	if err := u.respondentRepo.Delete(ctx, id); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NotFoundError("respondent")
		}
		return apperrors.InternalError("failed to delete respondent", err)
	}
	return nil
}
