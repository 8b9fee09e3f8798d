package analytics

import (
	"math"
	"time"

	"habithero/internal/dates"
	"habithero/internal/models"
)

// HabitStats summarises the check-ins of a single habit.
type HabitStats struct {
	HabitID           string         `json:"habit_id"`
	HabitName         string         `json:"habit_name"`
	StartDate         dates.Date     `json:"start_date"`
	TotalCheckins     int            `json:"total_checkins"`
	TotalCompleted    int            `json:"total_completed"`
	SuccessRate       float64        `json:"success_rate"`
	DaysSinceStart    int            `json:"days_since_start"`
	CheckinsByWeekday map[string]int `json:"checkins_by_weekday"`
}

// CategoryStats aggregates the habits sharing a category name.
type CategoryStats struct {
	Count     int `json:"count"`
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// OverallStats aggregates every habit.
type OverallStats struct {
	TotalHabits        int                      `json:"total_habits"`
	TotalCheckins      int                      `json:"total_checkins"`
	TotalCompleted     int                      `json:"total_completed"`
	OverallSuccessRate float64                  `json:"overall_success_rate"`
	HabitsWithStreaks  int                      `json:"habits_with_streaks"`
	CategoryStats      map[string]CategoryStats `json:"category_stats"`
}

// SuccessRate returns completed/total as a percentage rounded to one decimal.
// It is 0 when total is 0.
func SuccessRate(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return Round1(float64(completed) / float64(total) * 100)
}

// Round1 rounds x to one decimal place.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// ComputeHabitStats counts every readable check-in regardless of applicability.
func ComputeHabitStats(h *models.Habit, checkins []models.CheckIn, today dates.Date) HabitStats {
	stats := HabitStats{
		HabitID:           h.ID,
		HabitName:         h.Name,
		StartDate:         h.StartDate,
		CheckinsByWeekday: make(map[string]int, 7),
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		stats.CheckinsByWeekday[wd.String()] = 0
	}

	for _, c := range validCheckIns(h, checkins) {
		stats.TotalCheckins++
		if c.Completed {
			stats.TotalCompleted++
			stats.CheckinsByWeekday[c.Date.Weekday().String()]++
		}
	}
	stats.SuccessRate = SuccessRate(stats.TotalCompleted, stats.TotalCheckins)
	if h.StartDate.IsValid() {
		stats.DaysSinceStart = max(today.DaysSince(h.StartDate), 0)
	}
	return stats
}

// ComputeOverallStats sums per-habit totals and groups them by category.
// A habit counts towards HabitsWithStreaks when its current streak is positive.
func ComputeOverallStats(habits []models.Habit, checkinsByHabit map[string][]models.CheckIn, today dates.Date) OverallStats {
	overall := OverallStats{
		TotalHabits:   len(habits),
		CategoryStats: make(map[string]CategoryStats),
	}

	for i := range habits {
		h := &habits[i]
		checkins := validCheckIns(h, checkinsByHabit[h.ID])
		hs := ComputeHabitStats(h, checkins, today)

		overall.TotalCheckins += hs.TotalCheckins
		overall.TotalCompleted += hs.TotalCompleted
		if ComputeStreaks(h, checkins, today).CurrentStreak > 0 {
			overall.HabitsWithStreaks++
		}

		cs := overall.CategoryStats[h.Category]
		cs.Count++
		cs.Completed += hs.TotalCompleted
		cs.Total += hs.TotalCheckins
		overall.CategoryStats[h.Category] = cs
	}

	overall.OverallSuccessRate = SuccessRate(overall.TotalCompleted, overall.TotalCheckins)
	return overall
}
