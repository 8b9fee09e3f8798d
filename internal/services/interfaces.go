package services

import (
	"context"
	"io"

	"habithero/internal/ai"
	"habithero/internal/analytics"
	"habithero/internal/dates"
	"habithero/internal/models"
	"habithero/internal/pagination"
	"habithero/internal/report"
)

// Clock returns the current local calendar date.
type Clock func() dates.Date

// HabitInput holds the fields of a new habit.
type HabitInput struct {
	Name        string
	Description string
	Frequency   models.Frequency
	Category    string
	StartDate   dates.Date
}

// HabitUpdate holds optional habit changes. Nil fields are left untouched.
type HabitUpdate struct {
	Name        *string
	Description *string
	Frequency   *models.Frequency
	Category    *string
	StartDate   *dates.Date
}

// HabitFilter holds optional filter parameters for listing habits.
type HabitFilter struct {
	Category  *string
	Frequency *models.Frequency
}

// HabitServicer defines the contract for habit-related business logic.
type HabitServicer interface {
	CreateHabit(in HabitInput) (*models.Habit, error)
	ListHabits(page pagination.PageRequest, filter HabitFilter) (*pagination.PageResponse[models.Habit], error)
	GetHabitByID(habitID string) (*models.Habit, error)
	UpdateHabit(habitID string, upd HabitUpdate) (*models.Habit, error)
	DeleteHabit(habitID string) error
}

// CheckInInput holds a check-in submission. A nil Date means today and a nil
// Completed means true.
type CheckInInput struct {
	Date      *dates.Date
	Completed *bool
	Notes     string
}

// CheckInResult reports the stored check-in and whether it was newly created.
type CheckInResult struct {
	CheckIn    *models.CheckIn
	Created    bool
	Applicable bool
}

// CheckInFilter holds optional date bounds for listing check-ins.
type CheckInFilter struct {
	From *dates.Date
	To   *dates.Date
}

// CheckInServicer defines the contract for check-in-related business logic.
type CheckInServicer interface {
	RecordCheckIn(habitID string, in CheckInInput) (*CheckInResult, error)
	ListCheckIns(habitID string, page pagination.PageRequest, filter CheckInFilter) (*pagination.PageResponse[models.CheckIn], error)
	GetCheckInByID(checkInID string) (*models.CheckIn, error)
	UpdateCheckIn(checkInID string, completed *bool, notes *string) (*models.CheckIn, error)
	DeleteCheckIn(checkInID string) error
}

// CategoryUpdate holds optional category changes.
type CategoryUpdate struct {
	Name        *string
	Description *string
	Color       *string
	Icon        *string
}

// CategoryServicer defines the contract for the managed category list.
type CategoryServicer interface {
	CreateCategory(name, description, color, icon string) (*models.Category, error)
	ListCategories(page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(categoryID string) (*models.Category, error)
	UpdateCategory(categoryID string, upd CategoryUpdate) (*models.Category, error)
	DeleteCategory(categoryID string) error
	PopulateDefaults() ([]models.Category, error)
}

// HabitStreak is the streak of one habit with its identity.
type HabitStreak struct {
	HabitID   string `json:"habit_id"`
	HabitName string `json:"habit_name"`
	analytics.StreakResult
}

// CalendarQuery selects a calendar range. From/To take precedence over Days,
// which counts back from today.
type CalendarQuery struct {
	From  *dates.Date
	To    *dates.Date
	Days  int
	Order analytics.Order
}

// HabitCalendar is a projected calendar for one habit.
type HabitCalendar struct {
	HabitID   string                  `json:"habit_id"`
	HabitName string                  `json:"habit_name"`
	Frequency models.Frequency        `json:"frequency"`
	From      dates.Date              `json:"from"`
	To        dates.Date              `json:"to"`
	Days      []analytics.CalendarDay `json:"calendar"`
}

// AnalyticsServicer defines the contract for derived habit statistics.
type AnalyticsServicer interface {
	GetHabitStreak(habitID string) (*HabitStreak, error)
	GetHabitStats(habitID string) (*analytics.HabitStats, error)
	GetHabitCalendar(habitID string, q CalendarQuery) (*HabitCalendar, error)
	GetOverview() (*analytics.OverallStats, error)
}

// ReportServicer defines the contract for analytics reports and PDF export.
type ReportServicer interface {
	BuildReport(rng report.Range) (*report.Analytics, error)
	WritePDF(w io.Writer, rng report.Range) error
}

// SuggestionResult carries AI suggestions and where they came from.
type SuggestionResult struct {
	Suggestions []ai.Suggestion `json:"suggestions"`
	Source      ai.Source       `json:"source"`
}

// SuggestionServicer defines the contract for AI-assisted features. Every
// method degrades to a static answer instead of failing on provider errors.
type SuggestionServicer interface {
	Suggest(ctx context.Context, goals string, excludeCategories []string) (*SuggestionResult, error)
	Analyze(ctx context.Context) (*ai.Analysis, error)
	Categories(ctx context.Context) ([]string, error)
	Health() ai.Health
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
