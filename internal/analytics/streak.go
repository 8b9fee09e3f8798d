package analytics

import (
	"habithero/internal/dates"
	"habithero/internal/models"
)

// StreakResult holds the current and longest run of completed applicable dates.
type StreakResult struct {
	CurrentStreak   int         `json:"current_streak"`
	LongestStreak   int         `json:"longest_streak"`
	LastCheckinDate *dates.Date `json:"last_checkin_date"`
}

// ComputeStreaks returns the habit's streaks as of today.
//
// Only completed check-ins on applicable dates up to today count. Runs are
// measured over the applicable-date sequence, so consecutive weeks of a weekly
// habit are consecutive. An open slot for today does not break the current
// streak; any earlier applicable date without a completed check-in does.
// LastCheckinDate is the latest completed check-in of any kind.
func ComputeStreaks(h *models.Habit, checkins []models.CheckIn, today dates.Date) StreakResult {
	var result StreakResult
	if h == nil || !h.StartDate.IsValid() || h.StartDate.After(today) {
		return result
	}

	completed := make(map[dates.Date]bool)
	for _, c := range validCheckIns(h, checkins) {
		if !c.Completed {
			continue
		}
		if result.LastCheckinDate == nil || c.Date.After(*result.LastCheckinDate) {
			d := c.Date
			result.LastCheckinDate = &d
		}
		if !c.Date.After(today) && IsApplicable(h, c.Date) {
			completed[c.Date] = true
		}
	}
	if len(completed) == 0 {
		return result
	}

	run := 0
	for _, d := range ApplicableDates(h, h.StartDate, today) {
		if completed[d] {
			run++
			result.LongestStreak = max(result.LongestStreak, run)
		} else {
			run = 0
		}
	}

	last, ok := lastApplicableOnOrBefore(h, today)
	if !ok {
		return result
	}
	d := last
	if d.Equal(today) && !completed[d] {
		d = d.AddDays(-step(h))
	}
	for !d.Before(h.StartDate) && completed[d] {
		result.CurrentStreak++
		d = d.AddDays(-step(h))
	}
	return result
}

// ComputeActivityStreak returns the streak of days on which at least one habit
// was completed on one of its applicable dates. It runs ComputeStreaks over a
// virtual daily habit starting at the earliest habit start date.
func ComputeActivityStreak(habits []models.Habit, checkinsByHabit map[string][]models.CheckIn, today dates.Date) StreakResult {
	var start dates.Date
	var days []models.CheckIn
	seen := make(map[dates.Date]bool)

	for i := range habits {
		h := &habits[i]
		if !h.StartDate.IsValid() {
			continue
		}
		if start.IsZero() || h.StartDate.Before(start) {
			start = h.StartDate
		}
		for _, c := range validCheckIns(h, checkinsByHabit[h.ID]) {
			if !c.Completed || seen[c.Date] || !IsApplicable(h, c.Date) {
				continue
			}
			seen[c.Date] = true
			days = append(days, models.CheckIn{Date: c.Date, Completed: true})
		}
	}
	if start.IsZero() {
		return StreakResult{}
	}

	virtual := &models.Habit{
		Base:      models.Base{ID: "activity"},
		Frequency: models.FrequencyDaily,
		StartDate: start,
	}
	return ComputeStreaks(virtual, days, today)
}
