package services

import (
	"bytes"
	"io"
	"time"

	"gorm.io/gorm"

	apperrors "habithero/internal/errors"
	"habithero/internal/logger"
	"habithero/internal/report"
)

// reportService builds progress reports from a snapshot of the store.
type reportService struct {
	db    *gorm.DB
	today Clock
	now   func() time.Time
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB, today Clock) ReportServicer {
	return &reportService{db: db, today: today, now: time.Now}
}

// BuildReport computes report analytics over rng.
func (s *reportService) BuildReport(rng report.Range) (*report.Analytics, error) {
	if err := rng.Validate(); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidDateRange, err.Error())
	}

	habits, byHabit, err := loadAllHabitsWithCheckIns(s.db)
	if err != nil {
		return nil, err
	}
	return report.Build(habits, byHabit, rng, s.today(), s.now()), nil
}

// WritePDF renders the report over rng to w. Nothing is written when the
// report cannot be built or rendered.
func (s *reportService) WritePDF(w io.Writer, rng report.Range) error {
	data, err := s.BuildReport(rng)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, data); err != nil {
		logger.Get().Errorw("failed to render PDF report", "error", err)
		return apperrors.Wrap(apperrors.ErrReportFailed, err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return apperrors.Wrap(apperrors.ErrReportFailed, err)
	}
	return nil
}
