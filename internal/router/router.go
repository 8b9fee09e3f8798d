// Package router assembles the gin engine: middleware, operational routes and
// the versioned API.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"habithero/internal/handlers"
	"habithero/internal/metrics"
	"habithero/internal/middleware"
)

// Handlers are the handlers mounted under /api/v1.
type Handlers struct {
	Habits     *handlers.HabitHandler
	CheckIns   *handlers.CheckInHandler
	Analytics  *handlers.AnalyticsHandler
	Categories *handlers.CategoryHandler
	Reports    *handlers.ReportHandler
	AI         *handlers.AIHandler
}

// Options configures the ambient parts of the router. A nil Gatherer leaves
// out /metrics and a nil AILimiter leaves /ai unthrottled.
type Options struct {
	CORSOrigins []string
	Metrics     metrics.Recorder
	Gatherer    prometheus.Gatherer
	AILimiter   *middleware.RateLimiter
}

// New builds the application router.
func New(h Handlers, opts Options) *gin.Engine {
	if opts.Metrics == nil {
		opts.Metrics = metrics.Nop{}
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Metrics(opts.Metrics))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(opts.CORSOrigins))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if opts.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler(opts.Gatherer)))
	}

	v1 := router.Group("/api/v1")

	habits := v1.Group("/habits")
	habits.POST("", h.Habits.CreateHabit)
	habits.GET("", h.Habits.GetHabits)
	habits.GET("/:id", h.Habits.GetHabit)
	habits.PUT("/:id", h.Habits.UpdateHabit)
	habits.DELETE("/:id", h.Habits.DeleteHabit)
	habits.POST("/:id/checkins", h.CheckIns.RecordCheckIn)
	habits.GET("/:id/checkins", h.CheckIns.GetCheckIns)
	habits.GET("/:id/streak", h.Analytics.GetStreak)
	habits.GET("/:id/stats", h.Analytics.GetStats)
	habits.GET("/:id/calendar", h.Analytics.GetCalendar)

	checkIns := v1.Group("/checkins")
	checkIns.PUT("/:id", h.CheckIns.UpdateCheckIn)
	checkIns.DELETE("/:id", h.CheckIns.DeleteCheckIn)

	v1.GET("/analytics/overview", h.Analytics.GetOverview)

	categories := v1.Group("/categories")
	categories.POST("", h.Categories.CreateCategory)
	categories.GET("", h.Categories.GetCategories)
	categories.POST("/populate", h.Categories.PopulateCategories)
	categories.GET("/:id", h.Categories.GetCategory)
	categories.PUT("/:id", h.Categories.UpdateCategory)
	categories.DELETE("/:id", h.Categories.DeleteCategory)

	reports := v1.Group("/reports")
	reports.GET("/analytics", h.Reports.GetReportAnalytics)
	reports.GET("/pdf", h.Reports.DownloadPDF)

	aiGroup := v1.Group("/ai")
	if opts.AILimiter != nil {
		aiGroup.Use(opts.AILimiter.Middleware())
	}
	aiGroup.GET("/suggestions", h.AI.GetSuggestions)
	aiGroup.POST("/suggestions", h.AI.PostSuggestions)
	aiGroup.GET("/analysis", h.AI.GetAnalysis)
	aiGroup.GET("/categories", h.AI.GetCategories)
	aiGroup.GET("/health", h.AI.GetHealth)

	return router
}
