package widget

import (
	"context"

	"github.com/leondli/npsboard/internal/domain/entity"
	"github.com/leondli/npsboard/internal/domain/repository"
	apperrors "github.com/leondli/npsboard/pkg/errors"
	"github.com/leondli/npsboard/pkg/idgen"
)

// NoDataMessage is shown in place of a payload that cannot be rendered
const NoDataMessage = "No data available"

// UseCase defines the widget use case interface
type UseCase interface {
	Create(ctx context.Context, input *entity.WidgetCreate) (*entity.Widget, error)
	GetByID(ctx context.Context, id string) (*entity.Widget, error)
	List(ctx context.Context) ([]entity.Widget, error)
	Update(ctx context.Context, id string, input *entity.WidgetUpdate) (*entity.Widget, error)
	Delete(ctx context.Context, id string) error
	Render(ctx context.Context, id string) (*Rendered, error)
	Data(ctx context.Context, id string) (any, error)
}

// Rendered is a widget prepared for display: tags resolved and the payload
// decoded, or flagged unavailable when it does not fit the widget type.
type Rendered struct {
	Widget    *entity.Widget `json:"widget"`
	Tags      []entity.Tag   `json:"tags"`
	Available bool           `json:"available"`
	Message   string         `json:"message,omitempty"`
	Data      any            `json:"data,omitempty"`
}

type widgetUseCase struct {
	widgetRepo repository.WidgetRepository
	tagRepo    repository.TagRepository
}

// NewUseCase creates a new widget use case
func NewUseCase(widgetRepo repository.WidgetRepository, tagRepo repository.TagRepository) UseCase {
	return &widgetUseCase{
		widgetRepo: widgetRepo,
		tagRepo:    tagRepo,
	}
}

func (u *widgetUseCase) Create(ctx context.Context, input *entity.WidgetCreate) (*entity.Widget, error) {
	if err := input.Validate(); err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}

	id, err := idgen.New(idgen.PrefixWidget)
	if err != nil {
		return nil, apperrors.InternalError("failed to allocate widget id", err)
	}

	w := &entity.Widget{
		ID:    id,
		Title: input.Title,
		Type:  input.Type,
		Tags:  entity.NewTagSet(input.Tags...),
		Data:  input.Data,
		Size:  input.Size,
	}
	if input.Position != nil {
		p := *input.Position
		w.Position = &p
	}

	if err := u.widgetRepo.Create(ctx, w); err != nil {
		return nil, apperrors.InternalError("failed to create widget", err)
	}
	return w.Clone(), nil
}

func (u *widgetUseCase) GetByID(ctx context.Context, id string) (*entity.Widget, error) {
	w, err := u.widgetRepo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFoundError("widget")
		}
		return nil, apperrors.InternalError("failed to get widget", err)
	}
	return w, nil
}

func (u *widgetUseCase) List(ctx context.Context) ([]entity.Widget, error) {
	widgets, err := u.widgetRepo.List(ctx)
	if err != nil {
		return nil, apperrors.InternalError("failed to list widgets", err)
	}
	return widgets, nil
}

func (u *widgetUseCase) Update(ctx context.Context, id string, input *entity.WidgetUpdate) (*entity.Widget, error) {
	w, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}

	input.Apply(w)
	if err := u.widgetRepo.Update(ctx, w); err != nil {
		return nil, apperrors.InternalError("failed to update widget", err)
	}
	return w, nil
}

func (u *widgetUseCase) Delete(ctx context.Context, id string) error {
	if err := u.widgetRepo.Delete(ctx, id); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NotFoundError("widget")
		}
		return apperrors.InternalError("failed to delete widget", err)
	}
	return nil
}

func (u *widgetUseCase) Render(ctx context.Context, id string) (*Rendered, error) {
	w, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	out := &Rendered{Widget: w, Tags: make([]entity.Tag, 0, len(w.Tags))}
	for _, tagID := range w.Tags {
		tag, err := u.tagRepo.GetByID(ctx, tagID)
		if err != nil {
			// dangling references render as no tag
			continue
		}
		out.Tags = append(out.Tags, *tag)
	}

	data, err := entity.DecodeWidgetData(w.Type, w.Data)
	if err != nil {
		out.Message = NoDataMessage
		return out, nil
	}
	out.Available = true
	out.Data = data
	return out, nil
}

// Data is the strict form of Render: a payload that does not fit the widget
// type is an error instead of a placeholder.
func (u *widgetUseCase) Data(ctx context.Context, id string) (any, error) {
	w, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := entity.DecodeWidgetData(w.Type, w.Data)
	if err != nil {
		return nil, apperrors.NoDataError(NoDataMessage, err)
	}
	return data, nil
}
