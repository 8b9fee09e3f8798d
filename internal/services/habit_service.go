package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "habithero/internal/errors"
	"habithero/internal/models"
	"habithero/internal/pagination"
)

// habitService handles habit-related business logic.
type habitService struct {
	db    *gorm.DB
	today Clock
}

// NewHabitService creates a new HabitServicer.
func NewHabitService(db *gorm.DB, today Clock) HabitServicer {
	return &habitService{db: db, today: today}
}

// CreateHabit creates a new habit. A zero start date means today.
func (s *habitService) CreateHabit(in HabitInput) (*models.Habit, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "habit name is required")
	}
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "habit category is required")
	}
	if !in.Frequency.IsValid() {
		return nil, apperrors.ErrInvalidFrequency
	}
	if in.StartDate.IsZero() {
		in.StartDate = s.today()
	}
	if !in.StartDate.IsValid() {
		return nil, apperrors.ErrInvalidDate
	}

	habit := &models.Habit{
		Name:        name,
		Description: in.Description,
		Frequency:   in.Frequency,
		Category:    category,
		StartDate:   in.StartDate,
	}
	if err := s.db.Create(habit).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return habit, nil
}

// ListHabits retrieves a paginated list of habits, newest first.
func (s *habitService) ListHabits(page pagination.PageRequest, filter HabitFilter) (*pagination.PageResponse[models.Habit], error) {
	page.Defaults()

	base := s.db.Model(&models.Habit{})
	if filter.Category != nil {
		base = base.Where("category = ?", *filter.Category)
	}
	if filter.Frequency != nil {
		base = base.Where("frequency = ?", *filter.Frequency)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var habits []models.Habit
	if err := base.Order("created_at DESC, id DESC").Scopes(pagination.Paginate(page)).Find(&habits).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(habits, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetHabitByID retrieves a habit by ID
func (s *habitService) GetHabitByID(habitID string) (*models.Habit, error) {
	var habit models.Habit
	if err := s.db.Where("id = ?", habitID).First(&habit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrHabitNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &habit, nil
}

// UpdateHabit applies the non-nil fields of upd. Changing the frequency would
// silently re-interpret every past check-in, so it is rejected.
func (s *habitService) UpdateHabit(habitID string, upd HabitUpdate) (*models.Habit, error) {
	habit, err := s.GetHabitByID(habitID)
	if err != nil {
		return nil, err
	}

	if upd.Frequency != nil && *upd.Frequency != habit.Frequency {
		if !upd.Frequency.IsValid() {
			return nil, apperrors.ErrInvalidFrequency
		}
		return nil, apperrors.ErrFrequencyImmutable
	}

	updates := make(map[string]interface{})
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "habit name cannot be empty")
		}
		updates["name"] = name
	}
	if upd.Description != nil {
		updates["description"] = *upd.Description
	}
	if upd.Category != nil {
		category := strings.TrimSpace(*upd.Category)
		if category == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "habit category cannot be empty")
		}
		updates["category"] = category
	}
	if upd.StartDate != nil {
		if !upd.StartDate.IsValid() {
			return nil, apperrors.ErrInvalidDate
		}
		updates["start_date"] = *upd.StartDate
	}

	if len(updates) > 0 {
		if err := s.db.Model(habit).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetHabitByID(habitID)
}

// DeleteHabit deletes a habit together with its check-ins.
func (s *habitService) DeleteHabit(habitID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var habit models.Habit
		if err := tx.Where("id = ?", habitID).First(&habit).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrHabitNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Where("habit_id = ?", habitID).Delete(&models.CheckIn{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(&habit).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
