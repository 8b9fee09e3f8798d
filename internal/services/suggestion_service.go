package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"habithero/internal/ai"
	"habithero/internal/analytics"
	"habithero/internal/dates"
	"habithero/internal/models"
)

// suggestionService feeds habit summaries from the store into the AI advisor.
type suggestionService struct {
	db      *gorm.DB
	advisor *ai.Advisor
	today   Clock
}

// NewSuggestionService creates a new SuggestionServicer.
func NewSuggestionService(db *gorm.DB, advisor *ai.Advisor, today Clock) SuggestionServicer {
	return &suggestionService{db: db, advisor: advisor, today: today}
}

// Suggest returns new habit suggestions. Habits in excludeCategories are left
// out of the context sent to the model.
func (s *suggestionService) Suggest(ctx context.Context, goals string, excludeCategories []string) (*SuggestionResult, error) {
	summaries, err := s.summaries(excludeCategories)
	if err != nil {
		return nil, err
	}
	suggestions, source := s.advisor.Suggest(ctx, summaries, goals)
	return &SuggestionResult{Suggestions: suggestions, Source: source}, nil
}

// Analyze returns an assessment of every habit.
func (s *suggestionService) Analyze(ctx context.Context) (*ai.Analysis, error) {
	summaries, err := s.summaries(nil)
	if err != nil {
		return nil, err
	}
	analysis, _ := s.advisor.Analyze(ctx, summaries)
	return analysis, nil
}

// Categories returns suggested habit categories.
func (s *suggestionService) Categories(ctx context.Context) ([]string, error) {
	categories, _ := s.advisor.Categories(ctx)
	return categories, nil
}

// Health reports the advisor configuration.
func (s *suggestionService) Health() ai.Health {
	return s.advisor.Health()
}

// summaries describes each habit with figures from the analytics engine.
func (s *suggestionService) summaries(excludeCategories []string) ([]ai.HabitSummary, error) {
	habits, byHabit, err := loadAllHabitsWithCheckIns(s.db)
	if err != nil {
		return nil, err
	}

	excluded := make(map[string]bool, len(excludeCategories))
	for _, c := range excludeCategories {
		excluded[strings.ToLower(strings.TrimSpace(c))] = true
	}

	today := s.today()
	out := make([]ai.HabitSummary, 0, len(habits))
	for i := range habits {
		h := &habits[i]
		if excluded[strings.ToLower(h.Category)] {
			continue
		}
		out = append(out, summarize(h, byHabit[h.ID], today))
	}
	return out, nil
}

func summarize(h *models.Habit, checkIns []models.CheckIn, today dates.Date) ai.HabitSummary {
	stats := analytics.ComputeHabitStats(h, checkIns, today)
	streaks := analytics.ComputeStreaks(h, checkIns, today)
	return ai.HabitSummary{
		Name:          h.Name,
		Frequency:     string(h.Frequency),
		Category:      h.Category,
		SuccessRate:   stats.SuccessRate,
		CurrentStreak: streaks.CurrentStreak,
		TotalCheckins: stats.TotalCheckins,
	}
}
