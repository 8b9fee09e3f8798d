package services

import (
	"errors"

	"gorm.io/gorm"

	"habithero/internal/analytics"
	"habithero/internal/dates"
	apperrors "habithero/internal/errors"
	"habithero/internal/models"
)

// DefaultCalendarDays is the calendar length used when no range is given.
const DefaultCalendarDays = 30

// analyticsService loads snapshots from the store and hands them to the
// analytics engine.
type analyticsService struct {
	db    *gorm.DB
	today Clock
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(db *gorm.DB, today Clock) AnalyticsServicer {
	return &analyticsService{db: db, today: today}
}

// GetHabitStreak returns the current and longest streak of a habit.
func (s *analyticsService) GetHabitStreak(habitID string) (*HabitStreak, error) {
	habit, checkIns, err := loadHabitWithCheckIns(s.db, habitID)
	if err != nil {
		return nil, err
	}
	return &HabitStreak{
		HabitID:      habit.ID,
		HabitName:    habit.Name,
		StreakResult: analytics.ComputeStreaks(habit, checkIns, s.today()),
	}, nil
}

// GetHabitStats returns completion statistics for a habit.
func (s *analyticsService) GetHabitStats(habitID string) (*analytics.HabitStats, error) {
	habit, checkIns, err := loadHabitWithCheckIns(s.db, habitID)
	if err != nil {
		return nil, err
	}
	stats := analytics.ComputeHabitStats(habit, checkIns, s.today())
	return &stats, nil
}

// GetHabitCalendar projects a habit's calendar over the requested range.
func (s *analyticsService) GetHabitCalendar(habitID string, q CalendarQuery) (*HabitCalendar, error) {
	today := s.today()
	from, to, err := resolveCalendarRange(q, today)
	if err != nil {
		return nil, err
	}

	var habit models.Habit
	if err := s.db.Where("id = ?", habitID).First(&habit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrHabitNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var checkIns []models.CheckIn
	if err := s.db.Where("habit_id = ? AND date >= ? AND date <= ?", habitID, from, to).
		Find(&checkIns).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	days, err := analytics.ProjectCalendar(&habit, checkIns, from, to, today, q.Order)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidDateRange, err.Error())
	}

	return &HabitCalendar{
		HabitID:   habit.ID,
		HabitName: habit.Name,
		Frequency: habit.Frequency,
		From:      from,
		To:        to,
		Days:      days,
	}, nil
}

// GetOverview aggregates statistics across every habit.
func (s *analyticsService) GetOverview() (*analytics.OverallStats, error) {
	habits, byHabit, err := loadAllHabitsWithCheckIns(s.db)
	if err != nil {
		return nil, err
	}
	overall := analytics.ComputeOverallStats(habits, byHabit, s.today())
	return &overall, nil
}

func resolveCalendarRange(q CalendarQuery, today dates.Date) (dates.Date, dates.Date, error) {
	if q.From != nil || q.To != nil {
		if q.From == nil || q.To == nil {
			return dates.Date{}, dates.Date{}, apperrors.WithMessage(apperrors.ErrInvalidDateRange, "from and to must be given together")
		}
		return *q.From, *q.To, nil
	}

	days := q.Days
	if days == 0 {
		days = DefaultCalendarDays
	}
	if days < 1 || days > analytics.MaxCalendarDays {
		return dates.Date{}, dates.Date{}, apperrors.WithMessage(apperrors.ErrInvalidDateRange, "days is out of range")
	}
	return today.AddDays(-(days - 1)), today, nil
}

// loadHabitWithCheckIns reads a habit and all of its check-ins in one read
// transaction so the engine sees a consistent snapshot.
func loadHabitWithCheckIns(db *gorm.DB, habitID string) (*models.Habit, []models.CheckIn, error) {
	var habit models.Habit
	var checkIns []models.CheckIn
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", habitID).First(&habit).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrHabitNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("habit_id = ?", habitID).Find(&checkIns).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &habit, checkIns, nil
}

// loadAllHabitsWithCheckIns reads every habit and groups all check-ins by habit.
func loadAllHabitsWithCheckIns(db *gorm.DB) ([]models.Habit, map[string][]models.CheckIn, error) {
	var habits []models.Habit
	var checkIns []models.CheckIn
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("created_at ASC, id ASC").Find(&habits).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Find(&checkIns).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	byHabit := make(map[string][]models.CheckIn, len(habits))
	for _, c := range checkIns {
		byHabit[c.HabitID] = append(byHabit[c.HabitID], c)
	}
	return habits, byHabit, nil
}
