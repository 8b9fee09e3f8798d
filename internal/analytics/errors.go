package analytics

import "errors"

var (
	// ErrInapplicableCheckIn marks a check-in dated before the habit's start
	// date or on a day its schedule does not cover. Such check-ins are kept
	// in storage but ignored for streaks.
	ErrInapplicableCheckIn = errors.New("check-in date is not applicable to the habit's schedule")

	// ErrInvalidRange is returned for calendar ranges that are reversed,
	// unbounded or too long.
	ErrInvalidRange = errors.New("invalid date range")
)
