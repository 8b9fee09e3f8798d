package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"habithero/internal/dates"
	"habithero/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestHabit creates a daily habit starting on startDate.
func CreateTestHabit(t *testing.T, db *gorm.DB, startDate string) *models.Habit {
	t.Helper()
	return CreateTestHabitWith(t, db, models.FrequencyDaily, "Health", startDate)
}

// CreateTestHabitWith creates a habit with the given frequency and category.
func CreateTestHabitWith(t *testing.T, db *gorm.DB, frequency models.Frequency, category, startDate string) *models.Habit {
	t.Helper()

	habit := &models.Habit{
		Name:        fmt.Sprintf("Habit %d", nextID()),
		Description: "test habit",
		Frequency:   frequency,
		Category:    category,
		StartDate:   dates.MustParse(startDate),
	}
	if err := db.Create(habit).Error; err != nil {
		t.Fatalf("failed to create test habit: %v", err)
	}
	return habit
}

// CreateTestCheckIn records a check-in for habitID on date.
func CreateTestCheckIn(t *testing.T, db *gorm.DB, habitID, date string, completed bool) *models.CheckIn {
	t.Helper()

	checkIn := &models.CheckIn{
		HabitID:   habitID,
		Date:      dates.MustParse(date),
		Completed: completed,
	}
	if err := db.Create(checkIn).Error; err != nil {
		t.Fatalf("failed to create test check-in: %v", err)
	}
	return checkIn
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()
	return CreateTestCategoryWithName(t, db, fmt.Sprintf("Category %d", nextID()))
}

// CreateTestCategoryWithName creates a category with the given name.
func CreateTestCategoryWithName(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:  name,
		Color: "#3B82F6",
		Icon:  "star",
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}
