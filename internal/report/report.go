// Package report builds the progress report: an analytics summary over an
// optional date range and its PDF rendering.
package report

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"habithero/internal/analytics"
	"habithero/internal/dates"
	"habithero/internal/models"
)

// RecentActivityLimit is the number of check-ins listed under recent activity.
const RecentActivityLimit = 20

// ErrInvalidRange is returned for a half-open or inverted date range.
var ErrInvalidRange = errors.New("invalid report range")

// Range limits which check-ins count towards rates and totals. Both ends are
// inclusive; a zero Range covers all history.
type Range struct {
	Start *dates.Date `json:"start_date"`
	End   *dates.Date `json:"end_date"`
}

// Validate requires both ends or neither, with Start not after End.
func (r Range) Validate() error {
	if (r.Start == nil) != (r.End == nil) {
		return fmt.Errorf("%w: start_date and end_date must be given together", ErrInvalidRange)
	}
	if r.Start != nil && r.Start.After(*r.End) {
		return fmt.Errorf("%w: start_date %s is after end_date %s", ErrInvalidRange, r.Start, r.End)
	}
	return nil
}

// IsAll reports whether r covers all history.
func (r Range) IsAll() bool { return r.Start == nil }

// Contains reports whether d falls inside r.
func (r Range) Contains(d dates.Date) bool {
	if r.IsAll() {
		return true
	}
	return !d.Before(*r.Start) && !d.After(*r.End)
}

// HabitPerformance is one row of the performance table.
type HabitPerformance struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Category      string           `json:"category"`
	Frequency     models.Frequency `json:"frequency"`
	SuccessRate   float64          `json:"success_rate"`
	CurrentStreak int              `json:"current_streak"`
	LongestStreak int              `json:"longest_streak"`
}

// Activity is a single check-in listed under recent activity.
type Activity struct {
	HabitID   string     `json:"habit_id"`
	HabitName string     `json:"habit_name"`
	Date      dates.Date `json:"date"`
	Completed bool       `json:"completed"`
	Notes     string     `json:"notes"`
}

// Analytics is the report preview and the data behind the PDF.
type Analytics struct {
	TotalHabits        int                `json:"total_habits"`
	TotalCheckins      int                `json:"total_checkins"`
	TotalCompleted     int                `json:"total_completed"`
	OverallSuccessRate float64            `json:"overall_success_rate"`
	CurrentStreak      int                `json:"current_streak"`
	Categories         map[string]int     `json:"categories"`
	HabitPerformance   []HabitPerformance `json:"habit_performance"`
	RecentActivity     []Activity         `json:"recent_activity"`
	DateRange          Range              `json:"date_range"`
	GeneratedAt        time.Time          `json:"generated_at"`
}

// Build computes the report. Totals and success rates only count check-ins
// inside rng; streaks always use the full history.
func Build(habits []models.Habit, checkinsByHabit map[string][]models.CheckIn, rng Range, today dates.Date, now time.Time) *Analytics {
	a := &Analytics{
		TotalHabits:      len(habits),
		Categories:       make(map[string]int),
		HabitPerformance: make([]HabitPerformance, 0, len(habits)),
		RecentActivity:   []Activity{},
		DateRange:        rng,
		GeneratedAt:      now,
	}

	for i := range habits {
		h := &habits[i]
		all := checkinsByHabit[h.ID]

		category := h.Category
		if category == "" {
			category = "Uncategorized"
		}
		a.Categories[category]++

		var total, completed int
		for _, c := range all {
			if !c.Date.IsValid() || !rng.Contains(c.Date) {
				continue
			}
			total++
			if c.Completed {
				completed++
			}
			a.RecentActivity = append(a.RecentActivity, Activity{
				HabitID:   h.ID,
				HabitName: h.Name,
				Date:      c.Date,
				Completed: c.Completed,
				Notes:     c.Notes,
			})
		}
		a.TotalCheckins += total
		a.TotalCompleted += completed

		streaks := analytics.ComputeStreaks(h, all, today)
		a.HabitPerformance = append(a.HabitPerformance, HabitPerformance{
			ID:            h.ID,
			Name:          h.Name,
			Category:      h.Category,
			Frequency:     h.Frequency,
			SuccessRate:   analytics.SuccessRate(completed, total),
			CurrentStreak: streaks.CurrentStreak,
			LongestStreak: streaks.LongestStreak,
		})
	}

	a.OverallSuccessRate = analytics.SuccessRate(a.TotalCompleted, a.TotalCheckins)
	a.CurrentStreak = analytics.ComputeActivityStreak(habits, checkinsByHabit, today).CurrentStreak

	sort.SliceStable(a.RecentActivity, func(i, j int) bool {
		return a.RecentActivity[i].Date.After(a.RecentActivity[j].Date)
	})
	if len(a.RecentActivity) > RecentActivityLimit {
		a.RecentActivity = a.RecentActivity[:RecentActivityLimit]
	}
	return a
}

// StreakStatus labels a habit by its streaks.
func StreakStatus(p HabitPerformance) string {
	switch {
	case p.LongestStreak == 0:
		return "New Habit"
	case p.CurrentStreak >= 7:
		return "On Fire"
	case p.CurrentStreak >= 3:
		return "Building"
	case p.CurrentStreak > 0:
		return "Starting"
	default:
		return "Needs Attention"
	}
}

// Filename returns the download name of a report generated at now.
func Filename(now time.Time) string {
	return "habit_hero_report_" + now.Format("20060102_150405") + ".pdf"
}
