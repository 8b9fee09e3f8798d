package analytics

import (
	"fmt"

	"habithero/internal/dates"
	"habithero/internal/models"
)

// IsApplicable reports whether the habit's schedule expects an action on d.
// Daily habits apply to every date from the start date on; weekly habits
// only to dates sharing the start date's weekday.
func IsApplicable(h *models.Habit, d dates.Date) bool {
	if h == nil || !h.StartDate.IsValid() || !d.IsValid() {
		return false
	}
	if d.Before(h.StartDate) {
		return false
	}
	switch h.Frequency {
	case models.FrequencyDaily:
		return true
	case models.FrequencyWeekly:
		return d.Weekday() == h.StartDate.Weekday()
	default:
		return false
	}
}

// CheckApplicability returns an error wrapping ErrInapplicableCheckIn when d
// is not an applicable date for h.
func CheckApplicability(h *models.Habit, d dates.Date) error {
	if IsApplicable(h, d) {
		return nil
	}
	if d.Before(h.StartDate) {
		return fmt.Errorf("%w: %s is before start date %s", ErrInapplicableCheckIn, d, h.StartDate)
	}
	return fmt.Errorf("%w: %s is not a scheduled %s date", ErrInapplicableCheckIn, d, h.Frequency)
}

// step is the distance in days between two consecutive applicable dates.
func step(h *models.Habit) int {
	if h.Frequency == models.FrequencyWeekly {
		return 7
	}
	return 1
}

// firstApplicableOnOrAfter returns the earliest applicable date >= d.
func firstApplicableOnOrAfter(h *models.Habit, d dates.Date) (dates.Date, bool) {
	if !h.Frequency.IsValid() || !h.StartDate.IsValid() {
		return dates.Date{}, false
	}
	if !d.After(h.StartDate) {
		return h.StartDate, true
	}
	s := step(h)
	offset := d.DaysSince(h.StartDate)
	if rem := offset % s; rem != 0 {
		offset += s - rem
	}
	return h.StartDate.AddDays(offset), true
}

// lastApplicableOnOrBefore returns the latest applicable date <= d.
func lastApplicableOnOrBefore(h *models.Habit, d dates.Date) (dates.Date, bool) {
	if !h.Frequency.IsValid() || !h.StartDate.IsValid() || d.Before(h.StartDate) {
		return dates.Date{}, false
	}
	offset := d.DaysSince(h.StartDate)
	offset -= offset % step(h)
	return h.StartDate.AddDays(offset), true
}

// ApplicableDates lists the applicable dates of h within [from, to] in
// ascending order.
func ApplicableDates(h *models.Habit, from, to dates.Date) []dates.Date {
	first, ok := firstApplicableOnOrAfter(h, from)
	if !ok {
		return nil
	}
	var out []dates.Date
	for d := first; !d.After(to); d = d.AddDays(step(h)) {
		out = append(out, d)
	}
	return out
}
