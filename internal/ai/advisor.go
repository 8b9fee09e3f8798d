package ai

import (
	"context"
	"encoding/json"
	"time"

	"habithero/internal/logger"
	"habithero/internal/metrics"
)

// AdvisorConfig configures an Advisor. A nil Provider makes every answer a
// fallback; a nil Cache disables caching.
type AdvisorConfig struct {
	Provider       Provider
	Model          string
	Retry          RetryPolicy
	Timeout        time.Duration
	MaxSuggestions int
	Cache          Cache
	CacheTTL       time.Duration
	Metrics        metrics.Recorder
}

// Advisor produces suggestions, analyses and category lists. None of its
// methods fail: provider errors degrade to static answers.
type Advisor struct {
	cfg AdvisorConfig
}

// NewAdvisor creates an Advisor.
func NewAdvisor(cfg AdvisorConfig) *Advisor {
	if cfg.MaxSuggestions <= 0 {
		cfg.MaxSuggestions = 5
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = DefaultRetryPolicy()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.Nop{}
	}
	return &Advisor{cfg: cfg}
}

// complete sends prompt to the provider with retries. Each attempt is bounded
// by the configured timeout.
func (a *Advisor) complete(ctx context.Context, system, prompt string) (string, error) {
	req := NewRequest(prompt)
	req.System = system
	req.Model = a.cfg.Model

	var content string
	err := Retry(ctx, a.cfg.Retry, func(ctx context.Context) error {
		if a.cfg.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
			defer cancel()
		}
		resp, err := a.cfg.Provider.Complete(ctx, req)
		if err != nil {
			return err
		}
		content = resp.Content
		return nil
	})
	if err != nil {
		a.cfg.Metrics.ProviderFailure(a.cfg.Provider.Name())
		return "", err
	}
	return content, nil
}

// Suggest returns up to MaxSuggestions new habits complementing habits.
func (a *Advisor) Suggest(ctx context.Context, habits []HabitSummary, goals string) ([]Suggestion, Source) {
	log := logger.Get()

	if a.cfg.Provider == nil {
		return a.fallbackSuggestions()
	}

	key := SuggestionCacheKey(habits, goals, a.cfg.MaxSuggestions)
	if cached, ok := a.cachedSuggestions(ctx, key); ok {
		a.cfg.Metrics.SuggestionServed(string(SourceCache))
		return cached, SourceCache
	}

	text, err := a.complete(ctx, suggestionSystem, BuildSuggestionPrompt(habits, goals, a.cfg.MaxSuggestions))
	if err != nil {
		log.Warnw("AI suggestion request failed, using fallback", "error", err)
		return a.fallbackSuggestions()
	}

	suggestions, err := ParseSuggestions(text, a.cfg.MaxSuggestions)
	if err != nil {
		log.Warnw("could not parse AI suggestions, using fallback", "error", err)
		return a.fallbackSuggestions()
	}

	a.storeSuggestions(ctx, key, suggestions)
	a.cfg.Metrics.SuggestionServed(string(SourceProvider))
	log.Infow("generated habit suggestions", "count", len(suggestions))
	return suggestions, SourceProvider
}

func (a *Advisor) fallbackSuggestions() ([]Suggestion, Source) {
	a.cfg.Metrics.SuggestionServed(string(SourceFallback))
	return FallbackSuggestions(), SourceFallback
}

func (a *Advisor) cachedSuggestions(ctx context.Context, key string) ([]Suggestion, bool) {
	if a.cfg.Cache == nil {
		return nil, false
	}
	data, ok, err := a.cfg.Cache.Get(ctx, key)
	if err != nil {
		logger.Get().Warnw("suggestion cache read failed", "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var suggestions []Suggestion
	if err := json.Unmarshal(data, &suggestions); err != nil || len(suggestions) == 0 {
		logger.Get().Warnw("discarding unreadable cached suggestions", "error", err)
		return nil, false
	}
	return suggestions, true
}

func (a *Advisor) storeSuggestions(ctx context.Context, key string, suggestions []Suggestion) {
	if a.cfg.Cache == nil {
		return
	}
	data, err := json.Marshal(suggestions)
	if err != nil {
		return
	}
	if err := a.cfg.Cache.Set(ctx, key, data, a.cfg.CacheTTL); err != nil {
		logger.Get().Warnw("suggestion cache write failed", "error", err)
	}
}

// Analyze assesses the given habits.
func (a *Advisor) Analyze(ctx context.Context, habits []HabitSummary) (*Analysis, Source) {
	if a.cfg.Provider == nil {
		return FallbackAnalysis(), SourceFallback
	}

	text, err := a.complete(ctx, analysisSystem, BuildAnalysisPrompt(habits))
	if err != nil {
		logger.Get().Warnw("AI analysis request failed, using fallback", "error", err)
		return FallbackAnalysis(), SourceFallback
	}
	analysis, err := ParseAnalysis(text)
	if err != nil {
		logger.Get().Warnw("could not parse AI analysis, using fallback", "error", err)
		return FallbackAnalysis(), SourceFallback
	}
	return analysis, SourceProvider
}

// Categories returns up to MaxCategories habit categories.
func (a *Advisor) Categories(ctx context.Context) ([]string, Source) {
	fallback := append([]string(nil), FallbackCategories...)
	if a.cfg.Provider == nil {
		return fallback, SourceFallback
	}

	text, err := a.complete(ctx, "", categoriesPrompt)
	if err != nil {
		logger.Get().Warnw("AI category request failed, using fallback", "error", err)
		return fallback, SourceFallback
	}
	return padCategories(ParseCategories(text), MaxCategories), SourceProvider
}

// Health describes the configuration without calling the provider.
func (a *Advisor) Health() Health {
	h := Health{CacheEnabled: a.cfg.Cache != nil}
	if a.cfg.Provider == nil {
		h.Status = "degraded"
		h.Message = "AI provider not configured; serving fallback answers"
		return h
	}
	h.Status = "healthy"
	h.Message = "AI provider configured"
	h.APIConfigured = true
	h.Provider = a.cfg.Provider.Name()
	h.Model = a.cfg.Model
	return h
}
