package models

import "habithero/internal/dates"

// CheckIn records whether a habit was done on one calendar date.
// There is at most one check-in per (habit_id, date).
type CheckIn struct {
	Base
	HabitID   string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_checkins_habit_date" json:"habit_id"`
	Date      dates.Date `gorm:"not null;uniqueIndex:idx_checkins_habit_date" json:"date"`
	Completed bool       `gorm:"not null" json:"completed"`
	Notes     string     `json:"notes"`
}

// TableName pins the table name used by the SQL migrations.
func (CheckIn) TableName() string {
	return "checkins"
}
