package analytics

import (
	"fmt"
	"slices"
	"strings"

	"habithero/internal/dates"
	"habithero/internal/models"
)

// MaxCalendarDays bounds the length of a projected range.
const MaxCalendarDays = 732

// DayStatus is the state of one calendar day for a habit.
type DayStatus string

const (
	StatusCompleted     DayStatus = "completed"
	StatusMissed        DayStatus = "missed"
	StatusNotApplicable DayStatus = "not_applicable"
	StatusFuture        DayStatus = "future"
)

// Order selects the direction of a projected calendar.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// ParseOrder accepts "asc", "desc" or an empty string (ascending).
func ParseOrder(s string) (Order, error) {
	switch Order(strings.ToLower(s)) {
	case "", OrderAsc:
		return OrderAsc, nil
	case OrderDesc:
		return OrderDesc, nil
	}
	return "", fmt.Errorf("%w: order must be asc or desc", ErrInvalidRange)
}

// CalendarDay is a single projected date.
type CalendarDay struct {
	Date      dates.Date `json:"date"`
	Status    DayStatus  `json:"status"`
	CheckInID string     `json:"checkin_id,omitempty"`
	Notes     string     `json:"notes,omitempty"`
}

// ProjectCalendar returns one entry per date in [from, to].
//
// Dates after today are future. Otherwise a date the schedule does not cover
// is not applicable, and an applicable date is completed only if a completed
// check-in exists; anything else, including no record at all, is missed.
func ProjectCalendar(h *models.Habit, checkins []models.CheckIn, from, to, today dates.Date, order Order) ([]CalendarDay, error) {
	if !from.IsValid() || !to.IsValid() {
		return nil, fmt.Errorf("%w: from and to are required", ErrInvalidRange)
	}
	if from.After(to) {
		return nil, fmt.Errorf("%w: from %s is after to %s", ErrInvalidRange, from, to)
	}
	if n := to.DaysSince(from) + 1; n > MaxCalendarDays {
		return nil, fmt.Errorf("%w: %d days exceeds the limit of %d", ErrInvalidRange, n, MaxCalendarDays)
	}

	byDate := indexByDate(validCheckIns(h, checkins))
	days := make([]CalendarDay, 0, to.DaysSince(from)+1)
	for d := from; !d.After(to); d = d.AddDays(1) {
		day := CalendarDay{Date: d}
		c, hasRecord := byDate[d]
		switch {
		case d.After(today):
			day.Status = StatusFuture
		case !IsApplicable(h, d):
			day.Status = StatusNotApplicable
		case hasRecord && c.Completed:
			day.Status = StatusCompleted
		default:
			day.Status = StatusMissed
		}
		if hasRecord {
			day.CheckInID = c.ID
			day.Notes = c.Notes
		}
		days = append(days, day)
	}

	if order == OrderDesc {
		slices.Reverse(days)
	}
	return days, nil
}
