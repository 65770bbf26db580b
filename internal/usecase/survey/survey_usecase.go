package survey

import (
	"context"
	"sort"
	"time"

	"github.com/leondli/npsboard/internal/domain/entity"
	"github.com/leondli/npsboard/internal/domain/repository"
	"github.com/leondli/npsboard/internal/usecase/nps"
	apperrors "github.com/leondli/npsboard/pkg/errors"
	"github.com/leondli/npsboard/pkg/idgen"
)

// UseCase defines the survey use case interface
type UseCase interface {
	Create(ctx context.Context, input *entity.SurveyCreate) (*entity.Survey, error)
	GetByID(ctx context.Context, id string) (*entity.Survey, error)
	List(ctx context.Context) ([]entity.Survey, error)
	Update(ctx context.Context, id string, input *entity.SurveyUpdate) (*entity.Survey, error)
	Delete(ctx context.Context, id string) error

	AddResponse(ctx context.Context, surveyID string, input *entity.ResponseCreate) (*entity.SurveyResponse, error)
	RemoveResponse(ctx context.Context, surveyID, responseID string) error

	Score(ctx context.Context, id string) (*Summary, error)
	RecomputeScore(ctx context.Context, id string) (*entity.Survey, error)

	Overview(ctx context.Context) (*Overview, error)
	Feedback(ctx context.Context, surveyID string) ([]FeedbackEntry, error)
	Distribution(ctx context.Context) ([entity.MaxScore + 1]int, error)
}

type surveyUseCase struct {
	surveyRepo     repository.SurveyRepository
	tagRepo        repository.TagRepository
	respondentRepo repository.RespondentRepository
	now            func() time.Time
}

// NewUseCase creates a new survey use case
func NewUseCase(
	surveyRepo repository.SurveyRepository,
	tagRepo repository.TagRepository,
	respondentRepo repository.RespondentRepository,
) UseCase {
	return &surveyUseCase{
		surveyRepo:     surveyRepo,
		tagRepo:        tagRepo,
		respondentRepo: respondentRepo,
		now:            time.Now,
	}
}

func (u *surveyUseCase) newResponse(surveyID string, in *entity.ResponseCreate) (entity.SurveyResponse, error) {
	id, err := idgen.New(idgen.PrefixResponse)
	if err != nil {
		return entity.SurveyResponse{}, err
	}
	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		createdAt = u.now().UTC()
	}
	return entity.SurveyResponse{
		ID:           id,
		SurveyID:     surveyID,
		Score:        in.Score,
		Feedback:     in.Feedback,
		RespondentID: in.RespondentID,
		CreatedAt:    createdAt,
	}, nil
}

func (u *surveyUseCase) buildResponses(surveyID string, inputs []entity.ResponseCreate) ([]entity.SurveyResponse, error) {
	out := make([]entity.SurveyResponse, 0, len(inputs))
	for i := range inputs {
		r, err := u.newResponse(surveyID, &inputs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (u *surveyUseCase) Create(ctx context.Context, input *entity.SurveyCreate) (*entity.Survey, error) {
	if err := input.Validate(); err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}

	id, err := idgen.New(idgen.PrefixSurvey)
	if err != nil {
		return nil, apperrors.InternalError("failed to allocate survey id", err)
	}
	responses, err := u.buildResponses(id, input.Responses)
	if err != nil {
		return nil, apperrors.InternalError("failed to allocate response id", err)
	}

	createdAt := input.CreatedAt
	if createdAt.IsZero() {
		createdAt = u.now().UTC()
	}

	s := &entity.Survey{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		CreatedAt:   createdAt,
		Tags:        entity.NewTagSet(input.Tags...),
		Responses:   responses,
	}
	if err := u.surveyRepo.Create(ctx, s); err != nil {
		return nil, apperrors.InternalError("failed to create survey", err)
	}
	return s, nil
}

func (u *surveyUseCase) GetByID(ctx context.Context, id string) (*entity.Survey, error) {
	s, err := u.surveyRepo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFoundError("survey")
		}
		return nil, apperrors.InternalError("failed to get survey", err)
	}
	return s, nil
}

// List returns surveys newest first
func (u *surveyUseCase) List(ctx context.Context) ([]entity.Survey, error) {
	surveys, err := u.surveyRepo.List(ctx)
	if err != nil {
		return nil, apperrors.InternalError("failed to list surveys", err)
	}
	sort.SliceStable(surveys, func(i, j int) bool {
		return surveys[i].CreatedAt.After(surveys[j].CreatedAt)
	})
	return surveys, nil
}

func (u *surveyUseCase) Update(ctx context.Context, id string, input *entity.SurveyUpdate) (*entity.Survey, error) {
	s, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}

	if input.Title != nil {
		s.Title = *input.Title
	}
	if input.Description != nil {
		s.Description = *input.Description
	}
	if input.CreatedAt != nil {
		s.CreatedAt = *input.CreatedAt
	}
	if input.Tags != nil {
		s.Tags = entity.NewTagSet(*input.Tags...)
	}
	if input.Responses != nil {
		responses, err := u.buildResponses(s.ID, *input.Responses)
		if err != nil {
			return nil, apperrors.InternalError("failed to allocate response id", err)
		}
		s.Responses = responses
		s.NpsScore = nil
	}

	if err := u.surveyRepo.Update(ctx, s); err != nil {
		return nil, apperrors.InternalError("failed to update survey", err)
	}
	return s, nil
}

func (u *surveyUseCase) Delete(ctx context.Context, id string) error {
	if err := u.surveyRepo.Delete(ctx, id); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NotFoundError("survey")
		}
		return apperrors.InternalError("failed to delete survey", err)
	}
	return nil
}

func (u *surveyUseCase) AddResponse(ctx context.Context, surveyID string, input *entity.ResponseCreate) (*entity.SurveyResponse, error) {
	s, err := u.GetByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}

	r, err := u.newResponse(s.ID, input)
	if err != nil {
		return nil, apperrors.InternalError("failed to allocate response id", err)
	}
	s.Responses = append(s.Responses, r)
	s.NpsScore = nil

	if err := u.surveyRepo.Update(ctx, s); err != nil {
		return nil, apperrors.InternalError("failed to add response", err)
	}
	return &r, nil
}

func (u *surveyUseCase) RemoveResponse(ctx context.Context, surveyID, responseID string) error {
	s, err := u.GetByID(ctx, surveyID)
	if err != nil {
		return err
	}

	idx := -1
	for i, r := range s.Responses {
		if r.ID == responseID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperrors.NotFoundError("response")
	}

	s.Responses = append(s.Responses[:idx], s.Responses[idx+1:]...)
	s.NpsScore = nil
	if err := u.surveyRepo.Update(ctx, s); err != nil {
		return apperrors.InternalError("failed to remove response", err)
	}
	return nil
}

// Score returns the cached score when present and derives it otherwise
func (u *surveyUseCase) Score(ctx context.Context, id string) (*Summary, error) {
	s, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sum := summarize(nps.Tally(s.Responses))
	if s.NpsScore != nil {
		sum.Score = *s.NpsScore
		sum.Band = nps.Band(sum.Score)
		sum.Cached = true
	}
	return &sum, nil
}

// RecomputeScore fills the survey's score cache from its current responses
func (u *surveyUseCase) RecomputeScore(ctx context.Context, id string) (*entity.Survey, error) {
	s, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	score := nps.Score(s.Responses)
	s.NpsScore = &score
	if err := u.surveyRepo.Update(ctx, s); err != nil {
		return nil, apperrors.InternalError("failed to store score", err)
	}
	return s, nil
}
