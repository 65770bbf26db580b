package dashboard

import (
	"context"

	"github.com/leondli/npsboard/internal/domain/entity"
	"github.com/leondli/npsboard/internal/usecase/survey"
)

// Snapshot is a consistent view of the whole dashboard
type Snapshot struct {
	Tags            []entity.Tag        `json:"tags"`
	Widgets         []entity.Widget     `json:"widgets"`
	FilteredWidgets []entity.Widget     `json:"filteredWidgets"`
	ActiveTags      entity.TagSet       `json:"activeTags"`
	Surveys         []entity.Survey     `json:"surveys"`
	Respondents     []entity.Respondent `json:"respondents"`
	Overview        *survey.Overview    `json:"overview"`
}

// Snapshot reads everything under one read lock
func (c *Controller) Snapshot(ctx context.Context) (*Snapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var (
		snap Snapshot
		err  error
	)
	if snap.Tags, err = c.tags.List(ctx, ""); err != nil {
		return nil, err
	}
	if snap.Widgets, err = c.widgets.List(ctx); err != nil {
		return nil, err
	}
	if snap.ActiveTags, err = c.filters.Active(ctx); err != nil {
		return nil, err
	}
	if snap.FilteredWidgets, err = c.filters.Filtered(ctx); err != nil {
		return nil, err
	}
	if snap.Surveys, err = c.surveys.List(ctx); err != nil {
		return nil, err
	}
	if snap.Respondents, err = c.respondents.List(ctx); err != nil {
		return nil, err
	}
	if snap.Overview, err = c.surveys.Overview(ctx); err != nil {
		return nil, err
	}
	return &snap, nil
}
