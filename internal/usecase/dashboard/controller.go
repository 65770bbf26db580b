// Package dashboard is the single entry point for reading and changing the
// dashboard. Every mutation runs under one write lock, so a tag delete and
// its cascade are observed as one step by concurrent readers.
package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/leondli/npsboard/internal/domain/entity"
	"github.com/leondli/npsboard/internal/domain/repository"
	"github.com/leondli/npsboard/internal/infrastructure/events"
	"github.com/leondli/npsboard/internal/infrastructure/logger"
	"github.com/leondli/npsboard/internal/usecase/filter"
	"github.com/leondli/npsboard/internal/usecase/nps"
	"github.com/leondli/npsboard/internal/usecase/respondent"
	"github.com/leondli/npsboard/internal/usecase/survey"
	"github.com/leondli/npsboard/internal/usecase/tag"
	"github.com/leondli/npsboard/internal/usecase/widget"
	apperrors "github.com/leondli/npsboard/pkg/errors"
)

// Controller composes the tag, widget, survey, respondent and filter use cases
type Controller struct {
	mu sync.RWMutex

	tags        tag.UseCase
	widgets     widget.UseCase
	surveys     survey.UseCase
	respondents respondent.UseCase
	filters     filter.UseCase

	publisher events.Publisher
	log       zerolog.Logger
	now       func() time.Time
}

// New wires the use cases on top of repos. A nil publisher disables events.
func New(repos repository.Repositories, publisher events.Publisher) *Controller {
	if publisher == nil {
		publisher = &events.NoopPublisher{}
	}
	return &Controller{
		tags:        tag.NewUseCase(repos.Tags, repos.Widgets, repos.Surveys, repos.Respondents, repos.Filter),
		widgets:     widget.NewUseCase(repos.Widgets, repos.Tags),
		surveys:     survey.NewUseCase(repos.Surveys, repos.Tags, repos.Respondents),
		respondents: respondent.NewUseCase(repos.Respondents),
		filters:     filter.NewUseCase(repos.Filter, repos.Tags, repos.Widgets),
		publisher:   publisher,
		log:         logger.NewLogger("dashboard"),
		now:         time.Now,
	}
}

// Close releases the event publisher
func (c *Controller) Close() error {
	return c.publisher.Close()
}

// fail logs err at a level matching its kind and hands it back.
func (c *Controller) fail(op, id string, err error) error {
	switch {
	case apperrors.IsNotFound(err):
		c.log.Warn().Str("op", op).Str("id", id).Msg(err.Error())
	case apperrors.IsInvalidInput(err):
		c.log.Debug().Str("op", op).Str("id", id).Err(err).Msg("Rejected input")
	case apperrors.IsNoData(err):
		c.log.Debug().Str("op", op).Str("id", id).Err(err).Msg("Widget payload unusable")
	default:
		c.log.Error().Str("op", op).Str("id", id).Err(err).Msg("Dashboard operation failed")
	}
	return err
}

// emit publishes a change event. Delivery failures are logged, never returned.
func (c *Controller) emit(ctx context.Context, kind, action, id string, data any) {
	ev := events.Event{Kind: kind, Action: action, ID: id, Data: data, At: c.now().UTC()}
	if err := c.publisher.Publish(ctx, ev.Topic(), ev); err != nil {
		c.log.Error().Err(err).Str("topic", ev.Topic()).Msg("Failed to publish event")
	}
}

// Tags

func (c *Controller) AddTag(ctx context.Context, input *entity.TagCreate) (*entity.Tag, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, err := c.tags.Create(ctx, input)
	if err != nil {
		return nil, c.fail("add_tag", "", err)
	}
	c.emit(ctx, events.KindTag, events.ActionCreated, t.ID, t)
	return t, nil
}

func (c *Controller) UpdateTag(ctx context.Context, id string, input *entity.TagUpdate) (*entity.Tag, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, err := c.tags.Update(ctx, id, input)
	if err != nil {
		return nil, c.fail("update_tag", id, err)
	}
	c.emit(ctx, events.KindTag, events.ActionUpdated, t.ID, t)
	return t, nil
}

// RemoveTag deletes the tag and strips it from every widget, survey,
// respondent and the active filter before returning.
func (c *Controller) RemoveTag(ctx context.Context, id string) (*tag.DeleteResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, err := c.tags.Delete(ctx, id)
	if err != nil {
		return nil, c.fail("remove_tag", id, err)
	}
	c.log.Info().
		Str("id", id).
		Int("widgets", res.Widgets).
		Int("surveys", res.Surveys).
		Int("respondents", res.Respondents).
		Bool("was_active", res.WasActive).
		Msg("Tag removed")
	c.emit(ctx, events.KindTag, events.ActionDeleted, id, res)
	return res, nil
}

func (c *Controller) GetTag(ctx context.Context, id string) (*entity.Tag, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, err := c.tags.GetByID(ctx, id)
	if err != nil {
		return nil, c.fail("get_tag", id, err)
	}
	return t, nil
}

// ListTags returns all tags, or only those of category when it is set
func (c *Controller) ListTags(ctx context.Context, category entity.TagCategory) ([]entity.Tag, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tags.List(ctx, category)
}

// ResolveTags maps ids to tags, skipping ids that no longer exist
func (c *Controller) ResolveTags(ctx context.Context, ids entity.TagSet) ([]entity.Tag, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tags.Resolve(ctx, ids)
}

// Widgets

func (c *Controller) AddWidget(ctx context.Context, input *entity.WidgetCreate) (*entity.Widget, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, err := c.widgets.Create(ctx, input)
	if err != nil {
		return nil, c.fail("add_widget", "", err)
	}
	c.emit(ctx, events.KindWidget, events.ActionCreated, w.ID, w)
	return w, nil
}

func (c *Controller) UpdateWidget(ctx context.Context, id string, input *entity.WidgetUpdate) (*entity.Widget, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, err := c.widgets.Update(ctx, id, input)
	if err != nil {
		return nil, c.fail("update_widget", id, err)
	}
	c.emit(ctx, events.KindWidget, events.ActionUpdated, w.ID, w)
	return w, nil
}

func (c *Controller) RemoveWidget(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.widgets.Delete(ctx, id); err != nil {
		return c.fail("remove_widget", id, err)
	}
	c.emit(ctx, events.KindWidget, events.ActionDeleted, id, nil)
	return nil
}

func (c *Controller) GetWidget(ctx context.Context, id string) (*entity.Widget, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	w, err := c.widgets.GetByID(ctx, id)
	if err != nil {
		return nil, c.fail("get_widget", id, err)
	}
	return w, nil
}

func (c *Controller) ListWidgets(ctx context.Context) ([]entity.Widget, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.widgets.List(ctx)
}

// RenderWidget resolves the widget's tags and decodes its payload
func (c *Controller) RenderWidget(ctx context.Context, id string) (*widget.Rendered, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, err := c.widgets.Render(ctx, id)
	if err != nil {
		return nil, c.fail("render_widget", id, err)
	}
	return r, nil
}

// WidgetData returns the decoded payload, or a no-data error when it does
// not fit the widget type
func (c *Controller) WidgetData(ctx context.Context, id string) (any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := c.widgets.Data(ctx, id)
	if err != nil {
		return nil, c.fail("widget_data", id, err)
	}
	return data, nil
}

// FilteredWidgets is recomputed from the current widgets and active tags on every call
func (c *Controller) FilteredWidgets(ctx context.Context) ([]entity.Widget, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filters.Filtered(ctx)
}

// Filters

func (c *Controller) ActiveTags(ctx context.Context) (entity.TagSet, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filters.Active(ctx)
}

// ToggleTagFilter adds tagID to the active set, or removes it if present
func (c *Controller) ToggleTagFilter(ctx context.Context, tagID string) (entity.TagSet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	active, err := c.filters.Toggle(ctx, tagID)
	if err != nil {
		return nil, c.fail("toggle_tag_filter", tagID, err)
	}
	c.emit(ctx, events.KindFilter, events.ActionToggled, tagID, active)
	return active, nil
}

func (c *Controller) ClearTagFilters(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.filters.Clear(ctx); err != nil {
		return c.fail("clear_tag_filters", "", err)
	}
	c.emit(ctx, events.KindFilter, events.ActionCleared, "", nil)
	return nil
}

// Surveys

func (c *Controller) AddSurvey(ctx context.Context, input *entity.SurveyCreate) (*entity.Survey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.surveys.Create(ctx, input)
	if err != nil {
		return nil, c.fail("add_survey", "", err)
	}
	c.emit(ctx, events.KindSurvey, events.ActionCreated, s.ID, s)
	return s, nil
}

func (c *Controller) UpdateSurvey(ctx context.Context, id string, input *entity.SurveyUpdate) (*entity.Survey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.surveys.Update(ctx, id, input)
	if err != nil {
		return nil, c.fail("update_survey", id, err)
	}
	c.emit(ctx, events.KindSurvey, events.ActionUpdated, s.ID, s)
	return s, nil
}

func (c *Controller) RemoveSurvey(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.surveys.Delete(ctx, id); err != nil {
		return c.fail("remove_survey", id, err)
	}
	c.emit(ctx, events.KindSurvey, events.ActionDeleted, id, nil)
	return nil
}

func (c *Controller) GetSurvey(ctx context.Context, id string) (*entity.Survey, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, err := c.surveys.GetByID(ctx, id)
	if err != nil {
		return nil, c.fail("get_survey", id, err)
	}
	return s, nil
}

// ListSurveys returns surveys newest first
func (c *Controller) ListSurveys(ctx context.Context) ([]entity.Survey, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.surveys.List(ctx)
}

func (c *Controller) AddResponse(ctx context.Context, surveyID string, input *entity.ResponseCreate) (*entity.SurveyResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, err := c.surveys.AddResponse(ctx, surveyID, input)
	if err != nil {
		return nil, c.fail("add_response", surveyID, err)
	}
	c.emit(ctx, events.KindResponse, events.ActionCreated, r.ID, r)
	return r, nil
}

func (c *Controller) RemoveResponse(ctx context.Context, surveyID, responseID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.surveys.RemoveResponse(ctx, surveyID, responseID); err != nil {
		return c.fail("remove_response", responseID, err)
	}
	c.emit(ctx, events.KindResponse, events.ActionDeleted, responseID, map[string]string{"surveyId": surveyID})
	return nil
}

// SurveyScore returns the cached score when present, otherwise derives it
func (c *Controller) SurveyScore(ctx context.Context, id string) (*survey.Summary, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	sum, err := c.surveys.Score(ctx, id)
	if err != nil {
		return nil, c.fail("survey_score", id, err)
	}
	return sum, nil
}

// RecomputeScore fills the survey's cached score from its responses
func (c *Controller) RecomputeScore(ctx context.Context, id string) (*entity.Survey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.surveys.RecomputeScore(ctx, id)
	if err != nil {
		return nil, c.fail("recompute_score", id, err)
	}
	c.emit(ctx, events.KindSurvey, events.ActionRecomputed, s.ID, s.NpsScore)
	return s, nil
}

// CalculateNpsScore scores an ad-hoc list of 0..10 ratings
func (c *Controller) CalculateNpsScore(scores []int) (*survey.Summary, error) {
	for _, s := range scores {
		if s < entity.MinScore || s > entity.MaxScore {
			return nil, c.fail("calculate_nps", "", apperrors.ValidationError("scores must be between 0 and 10"))
		}
	}
	b := nps.TallyScores(scores)
	score := b.Score()
	return &survey.Summary{Breakdown: b, Score: score, Band: nps.Band(score)}, nil
}

func (c *Controller) Overview(ctx context.Context) (*survey.Overview, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.surveys.Overview(ctx)
}

// Feedback lists responses newest first; an empty surveyID means every survey
func (c *Controller) Feedback(ctx context.Context, surveyID string) ([]survey.FeedbackEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries, err := c.surveys.Feedback(ctx, surveyID)
	if err != nil {
		return nil, c.fail("feedback", surveyID, err)
	}
	return entries, nil
}

func (c *Controller) Distribution(ctx context.Context) ([entity.MaxScore + 1]int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.surveys.Distribution(ctx)
}

// Respondents

func (c *Controller) AddRespondent(ctx context.Context, input *entity.RespondentCreate) (*entity.Respondent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, err := c.respondents.Create(ctx, input)
	if err != nil {
		return nil, c.fail("add_respondent", "", err)
	}
	c.emit(ctx, events.KindRespondent, events.ActionCreated, r.ID, r)
	return r, nil
}

func (c *Controller) UpdateRespondent(ctx context.Context, id string, input *entity.RespondentUpdate) (*entity.Respondent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, err := c.respondents.Update(ctx, id, input)
	if err != nil {
		return nil, c.fail("update_respondent", id, err)
	}
	c.emit(ctx, events.KindRespondent, events.ActionUpdated, r.ID, r)
	return r, nil
}

// RemoveRespondent leaves the respondent's responses in place
func (c *Controller) RemoveRespondent(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.respondents.Delete(ctx, id); err != nil {
		return c.fail("remove_respondent", id, err)
	}
	c.emit(ctx, events.KindRespondent, events.ActionDeleted, id, nil)
	return nil
}

func (c *Controller) GetRespondent(ctx context.Context, id string) (*entity.Respondent, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, err := c.respondents.GetByID(ctx, id)
	if err != nil {
		return nil, c.fail("get_respondent", id, err)
	}
	return r, nil
}

func (c *Controller) ListRespondents(ctx context.Context) ([]entity.Respondent, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.respondents.List(ctx)
}
