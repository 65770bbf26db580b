package repository

// Repositories bundles every store the dashboard needs
type Repositories struct {
	Tags        TagRepository
	Widgets     WidgetRepository
	Surveys     SurveyRepository
	Respondents RespondentRepository
	Filter      FilterRepository
}
