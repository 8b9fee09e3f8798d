package services

import (
	"habithero/internal/dates"
	"habithero/internal/uuid"
)

// fixedClock returns a Clock stuck on day.
func fixedClock(day string) Clock {
	d := dates.MustParse(day)
	return func() dates.Date { return d }
}

func datePtr(s string) *dates.Date {
	d := dates.MustParse(s)
	return &d
}

func ptr[T any](v T) *T { return &v }

func missingID() string { return uuid.New() }
