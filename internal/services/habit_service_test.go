package services

import (
	"testing"

	"habithero/internal/dates"
	"habithero/internal/models"
	"habithero/internal/pagination"
	"habithero/internal/testutil"
)

func TestCreateHabit(t *testing.T) {
	valid := HabitInput{
		Name:        "  Read  ",
		Description: "Read 10 pages",
		Frequency:   models.FrequencyDaily,
		Category:    "Learning",
		StartDate:   dates.MustParse("2024-03-01"),
	}

	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db, fixedClock("2024-03-10"))

		habit, err := svc.CreateHabit(valid)
		testutil.AssertNoError(t, err)

		if habit.ID == "" {
			t.Fatal("expected an ID")
		}
		testutil.AssertEqual(t, habit.Name, "Read", "name")
		testutil.AssertEqual(t, habit.StartDate, dates.MustParse("2024-03-01"), "start date")

		stored, err := svc.GetHabitByID(habit.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, stored.StartDate, habit.StartDate, "stored start date")
		testutil.AssertEqual(t, stored.Frequency, models.FrequencyDaily, "stored frequency")
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db, fixedClock("2024-03-10"))

		in := valid
		in.Name = "   "
		_, err := svc.CreateHabit(in)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("empty_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db, fixedClock("2024-03-10"))

		in := valid
		in.Category = ""
		_, err := svc.CreateHabit(in)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_frequency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db, fixedClock("2024-03-10"))

		in := valid
		in.Frequency = "monthly"
		_, err := svc.CreateHabit(in)
		testutil.AssertAppError(t, err, "INVALID_FREQUENCY")
	})

	t.Run("start_date_defaults_to_today", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db, fixedClock("2024-03-10"))

		in := valid
		in.StartDate = dates.Date{}
		habit, err := svc.CreateHabit(in)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, habit.StartDate, dates.MustParse("2024-03-10"), "start date")
	})
}

func TestListHabits(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewHabitService(db, fixedClock("2024-03-10"))

	testutil.CreateTestHabitWith(t, db, models.FrequencyDaily, "Health", "2024-03-01")
	testutil.CreateTestHabitWith(t, db, models.FrequencyWeekly, "Health", "2024-03-01")
	testutil.CreateTestHabitWith(t, db, models.FrequencyDaily, "Learning", "2024-03-01")

	t.Run("all", func(t *testing.T) {
		result, err := svc.ListHabits(pagination.PageRequest{}, HabitFilter{})
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, result.TotalItems, int64(3), "total items")
		testutil.AssertEqual(t, result.Page, 1, "page")
		testutil.AssertEqual(t, result.PageSize, 20, "page size")
	})

	t.Run("by_category", func(t *testing.T) {
		category := "Health"
		result, err := svc.ListHabits(pagination.PageRequest{}, HabitFilter{Category: &category})
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, len(result.Data), 2, "habits")
	})

	t.Run("by_frequency", func(t *testing.T) {
		freq := models.FrequencyWeekly
		result, err := svc.ListHabits(pagination.PageRequest{}, HabitFilter{Frequency: &freq})
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, len(result.Data), 1, "habits")
	})

	t.Run("paginated", func(t *testing.T) {
		result, err := svc.ListHabits(pagination.PageRequest{Page: 2, PageSize: 2}, HabitFilter{})
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, len(result.Data), 1, "habits on page 2")
		testutil.AssertEqual(t, result.TotalPages, 2, "total pages")
	})
}

func TestGetHabitByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewHabitService(db, fixedClock("2024-03-10"))

	_, err := svc.GetHabitByID(missingID())
	testutil.AssertAppError(t, err, "HABIT_NOT_FOUND")
}

func TestUpdateHabit(t *testing.T) {
	t.Run("updates_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db, fixedClock("2024-03-10"))
		habit := testutil.CreateTestHabit(t, db, "2024-03-01")

		updated, err := svc.UpdateHabit(habit.ID, HabitUpdate{
			Name:      ptr("Evening Run"),
			Category:  ptr("Fitness"),
			StartDate: datePtr("2024-02-15"),
		})
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, updated.Name, "Evening Run", "name")
		testutil.AssertEqual(t, updated.Category, "Fitness", "category")
		testutil.AssertEqual(t, updated.StartDate, dates.MustParse("2024-02-15"), "start date")
	})

	t.Run("same_frequency_is_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db, fixedClock("2024-03-10"))
		habit := testutil.CreateTestHabit(t, db, "2024-03-01")

		_, err := svc.UpdateHabit(habit.ID, HabitUpdate{Frequency: ptr(models.FrequencyDaily)})
		testutil.AssertNoError(t, err)
	})

	t.Run("frequency_change_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db, fixedClock("2024-03-10"))
		habit := testutil.CreateTestHabit(t, db, "2024-03-01")

		_, err := svc.UpdateHabit(habit.ID, HabitUpdate{Frequency: ptr(models.FrequencyWeekly)})
		testutil.AssertAppError(t, err, "FREQUENCY_IMMUTABLE")
	})

	t.Run("invalid_frequency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db, fixedClock("2024-03-10"))
		habit := testutil.CreateTestHabit(t, db, "2024-03-01")

		_, err := svc.UpdateHabit(habit.ID, HabitUpdate{Frequency: ptr(models.Frequency("yearly"))})
		testutil.AssertAppError(t, err, "INVALID_FREQUENCY")
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db, fixedClock("2024-03-10"))
		habit := testutil.CreateTestHabit(t, db, "2024-03-01")

		_, err := svc.UpdateHabit(habit.ID, HabitUpdate{Name: ptr("")})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db, fixedClock("2024-03-10"))

		_, err := svc.UpdateHabit(missingID(), HabitUpdate{Name: ptr("x")})
		testutil.AssertAppError(t, err, "HABIT_NOT_FOUND")
	})
}

func TestDeleteHabit(t *testing.T) {
	t.Run("removes_checkins", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db, fixedClock("2024-03-10"))
		habit := testutil.CreateTestHabit(t, db, "2024-03-01")
		other := testutil.CreateTestHabit(t, db, "2024-03-01")
		testutil.CreateTestCheckIn(t, db, habit.ID, "2024-03-01", true)
		testutil.CreateTestCheckIn(t, db, habit.ID, "2024-03-02", false)
		testutil.CreateTestCheckIn(t, db, other.ID, "2024-03-01", true)

		testutil.AssertNoError(t, svc.DeleteHabit(habit.ID))

		_, err := svc.GetHabitByID(habit.ID)
		testutil.AssertAppError(t, err, "HABIT_NOT_FOUND")

		var remaining int64
		db.Model(&models.CheckIn{}).Count(&remaining)
		testutil.AssertEqual(t, remaining, int64(1), "remaining check-ins")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db, fixedClock("2024-03-10"))

		testutil.AssertAppError(t, svc.DeleteHabit(missingID()), "HABIT_NOT_FOUND")
	})
}
