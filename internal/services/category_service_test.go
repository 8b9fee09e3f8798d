package services

import (
	"testing"

	"habithero/internal/models"
	"habithero/internal/pagination"
	"habithero/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		cat, err := svc.CreateCategory("Reading", "Books", "#FF0000", "book")
		testutil.AssertNoError(t, err)

		if cat.ID == "" {
			t.Fatal("expected category ID")
		}
		testutil.AssertEqual(t, cat.Name, "Reading", "name")
		testutil.AssertEqual(t, cat.Color, "#FF0000", "color")
	})

	t.Run("defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		cat, err := svc.CreateCategory("Sleep", "", "", "")
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, cat.Color, "#3B82F6", "color")
		testutil.AssertEqual(t, cat.Icon, "star", "icon")
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("Health", "", "", "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory("Health", "", "", "")
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory(" ", "", "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListCategories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCategoryService(db)

	testutil.CreateTestCategoryWithName(t, db, "Work")
	testutil.CreateTestCategoryWithName(t, db, "Fitness")
	testutil.CreateTestCategoryWithName(t, db, "Learning")

	result, err := svc.ListCategories(pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, result.TotalItems, int64(3), "total items")
	testutil.AssertEqual(t, result.Data[0].Name, "Fitness", "first by name")
	testutil.AssertEqual(t, result.Data[2].Name, "Work", "last by name")
}

func TestUpdateCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		cat := testutil.CreateTestCategory(t, db)

		updated, err := svc.UpdateCategory(cat.ID, CategoryUpdate{Name: ptr("Renamed"), Icon: ptr("sun")})
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, updated.Name, "Renamed", "name")
		testutil.AssertEqual(t, updated.Icon, "sun", "icon")
		testutil.AssertEqual(t, updated.Color, cat.Color, "color")
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		testutil.CreateTestCategoryWithName(t, db, "Taken")
		cat := testutil.CreateTestCategory(t, db)

		_, err := svc.UpdateCategory(cat.ID, CategoryUpdate{Name: ptr("Taken")})
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.UpdateCategory(missingID(), CategoryUpdate{Name: ptr("x")})
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("keeps_habits", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		cat := testutil.CreateTestCategoryWithName(t, db, "Health")
		habit := testutil.CreateTestHabitWith(t, db, models.FrequencyDaily, "Health", "2024-03-01")

		testutil.AssertNoError(t, svc.DeleteCategory(cat.ID))

		var stored models.Habit
		if err := db.First(&stored, "id = ?", habit.ID).Error; err != nil {
			t.Fatalf("habit should survive category deletion: %v", err)
		}
		testutil.AssertEqual(t, stored.Category, "Health", "habit category")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		testutil.AssertAppError(t, svc.DeleteCategory(missingID()), "CATEGORY_NOT_FOUND")
	})
}

func TestPopulateDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCategoryService(db)
	testutil.CreateTestCategoryWithName(t, db, "Health")

	created, err := svc.PopulateDefaults()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(created), len(DefaultCategories)-1, "created categories")

	again, err := svc.PopulateDefaults()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(again), 0, "second run")

	var total int64
	db.Model(&models.Category{}).Count(&total)
	testutil.AssertEqual(t, total, int64(len(DefaultCategories)), "stored categories")
}
