package repository

import "github.com/leondli/npsboard/internal/domain/repository"

// NewMemory returns an empty in-memory dashboard
func NewMemory() repository.Repositories {
	return repository.Repositories{
		Tags:        NewTagRepository(),
		Widgets:     NewWidgetRepository(),
		Surveys:     NewSurveyRepository(),
		Respondents: NewRespondentRepository(),
		Filter:      NewFilterRepository(),
	}
}
