package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"habithero/internal/ai"
	"habithero/internal/config"
	"habithero/internal/database"
	"habithero/internal/dates"
	"habithero/internal/handlers"
	"habithero/internal/logger"
	"habithero/internal/metrics"
	"habithero/internal/middleware"
	"habithero/internal/router"
	"habithero/internal/services"
	"habithero/internal/validator"

	_ "habithero/internal/docs" // Import swagger docs
)

// @title           Habit Hero API
// @version         1.0
// @description     Habit Hero tracks daily and weekly habits, their check-ins, streaks and statistics, and offers AI-assisted habit suggestions.

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	logger.Init(os.Getenv("ENV"), os.Getenv("LOG_FILE"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	for _, w := range cfg.Warnings {
		log.Warn(w)
	}

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnw("failed to close database", "error", err)
		}
	}()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	reg := metrics.NewRegistry()
	collector := metrics.NewCollector(reg)
	today := func() dates.Date { return dates.Today(cfg.Timezone) }

	advisor, closeCache, err := newAdvisor(cfg, collector)
	if err != nil {
		return err
	}
	defer closeCache()

	// Initialize services
	db := dbManager.DB()
	habitService := services.NewHabitService(db, today)
	checkInService := services.NewCheckInService(db, today, collector)
	categoryService := services.NewCategoryService(db)
	analyticsService := services.NewAnalyticsService(db, today)
	reportService := services.NewReportService(db, today)
	suggestionService := services.NewSuggestionService(db, advisor, today)
	auditService := services.NewAuditService(db)

	aiLimiter := middleware.NewRateLimiter(middleware.PerMinute(cfg.AIRatePerMinute, cfg.AIRateBurst))
	defer aiLimiter.Stop()

	r := router.New(router.Handlers{
		Habits:     handlers.NewHabitHandler(habitService, auditService),
		CheckIns:   handlers.NewCheckInHandler(checkInService, auditService),
		Analytics:  handlers.NewAnalyticsHandler(analyticsService),
		Categories: handlers.NewCategoryHandler(categoryService, auditService),
		Reports:    handlers.NewReportHandler(reportService),
		AI:         handlers.NewAIHandler(suggestionService),
	}, router.Options{
		CORSOrigins: cfg.CORSOrigins,
		Metrics:     collector,
		Gatherer:    reg,
		AILimiter:   aiLimiter,
	})

	log.Infow("Starting Habit Hero backend server",
		"port", cfg.Port,
		"db_driver", cfg.DBDriver,
		"timezone", cfg.Timezone.String(),
		"ai", advisor.Health().Status,
	)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", cfg.Port)
	return r.Run(":" + cfg.Port)
}

// newAdvisor wires the optional Gemini provider and Redis cache. Without an
// API key the advisor serves fallback answers; an unreachable Redis only
// disables caching.
func newAdvisor(cfg *config.Config, rec metrics.Recorder) (*ai.Advisor, func(), error) {
	log := logger.Get()
	closeCache := func() {}

	var provider ai.Provider
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiProvider(cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, closeCache, fmt.Errorf("failed to create AI provider: %w", err)
		}
		provider = gemini
	} else {
		log.Warn("GEMINI_API_KEY is not set; AI endpoints will serve fallback answers")
	}

	var cache ai.Cache
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		redisCache, err := ai.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			log.Warnw("suggestion cache disabled", "error", err)
		} else {
			cache = redisCache
			closeCache = func() { _ = redisCache.Close() }
		}
	}

	advisor := ai.NewAdvisor(ai.AdvisorConfig{
		Provider: provider,
		Model:    cfg.GeminiModel,
		Retry: ai.RetryPolicy{
			MaxAttempts: cfg.AIMaxAttempts,
			BaseDelay:   cfg.AIBaseDelay,
			MaxDelay:    cfg.AIMaxDelay,
			Jitter:      cfg.AIJitter,
		},
		Timeout:        cfg.AITimeout,
		MaxSuggestions: cfg.AIMaxSuggestions,
		Cache:          cache,
		CacheTTL:       cfg.AICacheTTL,
		Metrics:        rec,
	})
	return advisor, closeCache, nil
}
