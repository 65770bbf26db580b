package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/leondli/npsboard/internal/infrastructure/events"
	"github.com/leondli/npsboard/internal/usecase/dashboard"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Tag        *TagHandler
	Widget     *WidgetHandler
	Survey     *SurveyHandler
	Respondent *RespondentHandler
	Filter     *FilterHandler
	Nps        *NpsHandler
	Export     *ExportHandler
	Dashboard  *DashboardHandler

	// Hub serves the change feed; nil disables /ws
	Hub *events.Hub
}

// NewHandlers builds every handler on top of one dashboard
func NewHandlers(dash *dashboard.Controller, hub *events.Hub) *Handlers {
	return &Handlers{
		Tag:        NewTagHandler(dash),
		Widget:     NewWidgetHandler(dash),
		Survey:     NewSurveyHandler(dash),
		Respondent: NewRespondentHandler(dash),
		Filter:     NewFilterHandler(dash),
		Nps:        NewNpsHandler(dash),
		Export:     NewExportHandler(dash),
		Dashboard:  NewDashboardHandler(dash),
		Hub:        hub,
	}
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, handlers *Handlers) {
	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	v1.GET("/dashboard", handlers.Dashboard.Snapshot)

	tags := v1.Group("/tags")
	{
		tags.GET("", handlers.Tag.List)
		tags.POST("", handlers.Tag.Create)
		tags.GET("/:id", handlers.Tag.GetByID)
		tags.PATCH("/:id", handlers.Tag.Update)
		tags.DELETE("/:id", handlers.Tag.Delete)
	}

	widgets := v1.Group("/widgets")
	{
		widgets.GET("", handlers.Widget.List)
		widgets.GET("/filtered", handlers.Widget.Filtered)
		widgets.POST("", handlers.Widget.Create)
		widgets.GET("/:id", handlers.Widget.GetByID)
		widgets.PATCH("/:id", handlers.Widget.Update)
		widgets.DELETE("/:id", handlers.Widget.Delete)
		widgets.GET("/:id/render", handlers.Widget.Render)
		widgets.GET("/:id/data", handlers.Widget.Data)
	}

	surveys := v1.Group("/surveys")
	{
		surveys.GET("", handlers.Survey.List)
		surveys.POST("", handlers.Survey.Create)
		surveys.GET("/:id", handlers.Survey.GetByID)
		surveys.PATCH("/:id", handlers.Survey.Update)
		surveys.DELETE("/:id", handlers.Survey.Delete)
		surveys.GET("/:id/nps", handlers.Survey.Score)
		surveys.POST("/:id/nps/recompute", handlers.Survey.RecomputeScore)
		surveys.POST("/:id/responses", handlers.Survey.AddResponse)
		surveys.DELETE("/:id/responses/:response_id", handlers.Survey.RemoveResponse)
	}

	respondents := v1.Group("/respondents")
	{
		respondents.GET("", handlers.Respondent.List)
		respondents.POST("", handlers.Respondent.Create)
		respondents.GET("/:id", handlers.Respondent.GetByID)
		respondents.PATCH("/:id", handlers.Respondent.Update)
		respondents.DELETE("/:id", handlers.Respondent.Delete)
	}

	filters := v1.Group("/filters")
	{
		filters.GET("", handlers.Filter.Get)
		filters.POST("/toggle/:tag_id", handlers.Filter.Toggle)
		filters.DELETE("", handlers.Filter.Clear)
	}

	npsGroup := v1.Group("/nps")
	{
		npsGroup.GET("/overview", handlers.Nps.Overview)
		npsGroup.GET("/feedback", handlers.Nps.Feedback)
		npsGroup.GET("/distribution", handlers.Nps.Distribution)
		npsGroup.POST("/score", handlers.Nps.Score)
	}

	v1.GET("/export/nps.xlsx", handlers.Export.NPSReport)

	if handlers.Hub != nil {
		v1.GET("/ws", gin.WrapH(handlers.Hub))
	}
}
