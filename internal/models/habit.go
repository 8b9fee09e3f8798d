package models

import "habithero/internal/dates"

// Frequency is how often a habit is scheduled.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// IsValid reports whether f is a known frequency.
func (f Frequency) IsValid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

// Habit is a recurring activity. Category is a plain name snapshot, not a
// reference to the managed Category table.
type Habit struct {
	Base
	Name        string     `gorm:"size:100;not null" json:"name"`
	Description string     `json:"description"`
	Frequency   Frequency  `gorm:"size:10;not null" json:"frequency"`
	Category    string     `gorm:"size:50;not null;index" json:"category"`
	StartDate   dates.Date `gorm:"not null" json:"start_date"`

	CheckIns []CheckIn `gorm:"foreignKey:HabitID;constraint:OnDelete:CASCADE" json:"-"`
}
