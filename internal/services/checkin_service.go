package services

import (
	"errors"

	"gorm.io/gorm"

	"habithero/internal/analytics"
	"habithero/internal/dates"
	apperrors "habithero/internal/errors"
	"habithero/internal/logger"
	"habithero/internal/metrics"
	"habithero/internal/models"
	"habithero/internal/pagination"
)

// checkInService handles check-in-related business logic.
type checkInService struct {
	db      *gorm.DB
	today   Clock
	metrics metrics.Recorder
}

// NewCheckInService creates a new CheckInServicer. A nil recorder disables metrics.
func NewCheckInService(db *gorm.DB, today Clock, recorder metrics.Recorder) CheckInServicer {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &checkInService{db: db, today: today, metrics: recorder}
}

// RecordCheckIn creates or updates the check-in for (habit, date). Check-ins
// on dates the habit does not cover are stored but flagged as not applicable.
func (s *checkInService) RecordCheckIn(habitID string, in CheckInInput) (*CheckInResult, error) {
	date := s.today()
	if in.Date != nil {
		if !in.Date.IsValid() {
			return nil, apperrors.ErrInvalidDate
		}
		date = *in.Date
	}
	completed := true
	if in.Completed != nil {
		completed = *in.Completed
	}

	var result CheckInResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var habit models.Habit
		if err := tx.Where("id = ?", habitID).First(&habit).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrHabitNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := analytics.CheckApplicability(&habit, date); err != nil {
			logger.Get().Warnw("check-in recorded on an inapplicable date",
				"habit_id", habitID,
				"date", date.String(),
				"reason", err.Error(),
			)
		} else {
			result.Applicable = true
		}

		checkIn, created, err := upsertCheckIn(tx, habitID, date, completed, in.Notes)
		if err != nil {
			return err
		}
		result.CheckIn = checkIn
		result.Created = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.CheckInRecorded(result.Created)
	return &result, nil
}

// upsertCheckIn keeps (habit_id, date) unique. If a concurrent request inserts
// the same key first, the unique index rejects ours and the row is updated instead.
func upsertCheckIn(tx *gorm.DB, habitID string, date dates.Date, completed bool, notes string) (*models.CheckIn, bool, error) {
	var existing models.CheckIn
	err := tx.Where("habit_id = ? AND date = ?", habitID, date).First(&existing).Error
	switch {
	case err == nil:
		return updateExisting(tx, &existing, completed, notes)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	checkIn := &models.CheckIn{
		HabitID:   habitID,
		Date:      date,
		Completed: completed,
		Notes:     notes,
	}
	// The savepoint keeps the outer transaction usable after a unique violation.
	err = tx.Transaction(func(sp *gorm.DB) error {
		return sp.Create(checkIn).Error
	})
	if err == nil {
		return checkIn, true, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := tx.Where("habit_id = ? AND date = ?", habitID, date).First(&existing).Error; err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return updateExisting(tx, &existing, completed, notes)
}

func updateExisting(tx *gorm.DB, checkIn *models.CheckIn, completed bool, notes string) (*models.CheckIn, bool, error) {
	if err := tx.Model(checkIn).Updates(map[string]interface{}{
		"completed": completed,
		"notes":     notes,
	}).Error; err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	checkIn.Completed = completed
	checkIn.Notes = notes
	return checkIn, false, nil
}

// ListCheckIns retrieves a habit's check-ins, newest date first.
func (s *checkInService) ListCheckIns(habitID string, page pagination.PageRequest, filter CheckInFilter) (*pagination.PageResponse[models.CheckIn], error) {
	page.Defaults()

	if err := ensureHabitExists(s.db, habitID); err != nil {
		return nil, err
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidDateRange, "from must not be after to")
	}

	base := s.db.Model(&models.CheckIn{}).Where("habit_id = ?", habitID)
	if filter.From != nil {
		base = base.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		base = base.Where("date <= ?", *filter.To)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var checkIns []models.CheckIn
	if err := base.Order("date DESC").Scopes(pagination.Paginate(page)).Find(&checkIns).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(checkIns, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCheckInByID retrieves a check-in by ID
func (s *checkInService) GetCheckInByID(checkInID string) (*models.CheckIn, error) {
	var checkIn models.CheckIn
	if err := s.db.Where("id = ?", checkInID).First(&checkIn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCheckInNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &checkIn, nil
}

// UpdateCheckIn changes the completion flag and/or notes. The date is fixed;
// moving a check-in means deleting it and recording a new one.
func (s *checkInService) UpdateCheckIn(checkInID string, completed *bool, notes *string) (*models.CheckIn, error) {
	checkIn, err := s.GetCheckInByID(checkInID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if completed != nil {
		updates["completed"] = *completed
	}
	if notes != nil {
		updates["notes"] = *notes
	}
	if len(updates) > 0 {
		if err := s.db.Model(checkIn).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return s.GetCheckInByID(checkInID)
}

// DeleteCheckIn deletes a check-in
func (s *checkInService) DeleteCheckIn(checkInID string) error {
	res := s.db.Where("id = ?", checkInID).Delete(&models.CheckIn{})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrCheckInNotFound
	}
	return nil
}

func ensureHabitExists(db *gorm.DB, habitID string) error {
	var count int64
	if err := db.Model(&models.Habit{}).Where("id = ?", habitID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrHabitNotFound
	}
	return nil
}
