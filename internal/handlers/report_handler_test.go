package handlers

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"habithero/internal/dates"
	apperrors "habithero/internal/errors"
	"habithero/internal/report"
	"habithero/internal/services"
)

// --- mock report service ---

type mockReportService struct {
	buildReportFn func(rng report.Range) (*report.Analytics, error)
	writePDFFn    func(w io.Writer, rng report.Range) error
}

func (m *mockReportService) BuildReport(rng report.Range) (*report.Analytics, error) {
	if m.buildReportFn != nil {
		return m.buildReportFn(rng)
	}
	return &report.Analytics{}, nil
}

func (m *mockReportService) WritePDF(w io.Writer, rng report.Range) error {
	if m.writePDFFn != nil {
		return m.writePDFFn(w, rng)
	}
	_, err := io.WriteString(w, "%PDF-1.3")
	return err
}

var _ services.ReportServicer = (*mockReportService)(nil)

func setupReportRouter(handler *ReportHandler) *gin.Engine {
	r := gin.New()
	r.GET("/reports/analytics", handler.GetReportAnalytics)
	r.GET("/reports/pdf", handler.DownloadPDF)
	return r
}

func TestReportHandler_GetReportAnalytics(t *testing.T) {
	t.Run("passes the range to the service", func(t *testing.T) {
		var got report.Range
		svc := &mockReportService{buildReportFn: func(rng report.Range) (*report.Analytics, error) {
			got = rng
			return &report.Analytics{TotalHabits: 3, DateRange: rng}, nil
		}}
		r := setupReportRouter(NewReportHandler(svc))

		rec := doRequest(r, "GET", "/reports/analytics?start_date=2025-01-01&end_date=2025-01-31", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Start == nil || !got.Start.Equal(dates.MustParse("2025-01-01")) {
			t.Errorf("expected start 2025-01-01, got %v", got.Start)
		}
		if got.End == nil || !got.End.Equal(dates.MustParse("2025-01-31")) {
			t.Errorf("expected end 2025-01-31, got %v", got.End)
		}
		if parseJSON(t, rec)["total_habits"].(float64) != 3 {
			t.Error("expected total_habits 3")
		}
	})

	t.Run("returns 400 on malformed end date", func(t *testing.T) {
		r := setupReportRouter(NewReportHandler(&mockReportService{}))

		rec := doRequest(r, "GET", "/reports/analytics?start_date=2025-01-01&end_date=31-01-2025", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_DATE")
	})

	t.Run("returns 400 on half-open range from the service", func(t *testing.T) {
		svc := &mockReportService{buildReportFn: func(report.Range) (*report.Analytics, error) {
			return nil, apperrors.ErrInvalidDateRange
		}}
		r := setupReportRouter(NewReportHandler(svc))

		rec := doRequest(r, "GET", "/reports/analytics?start_date=2025-01-01", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_DATE_RANGE")
	})
}

func TestReportHandler_DownloadPDF(t *testing.T) {
	t.Run("returns an attachment", func(t *testing.T) {
		handler := NewReportHandler(&mockReportService{})
		handler.now = func() time.Time { return time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC) }
		r := setupReportRouter(handler)

		rec := doRequest(r, "GET", "/reports/pdf", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("expected application/pdf, got %q", ct)
		}
		want := `attachment; filename="habit_hero_report_20250304_050607.pdf"`
		if cd := rec.Header().Get("Content-Disposition"); cd != want {
			t.Errorf("expected %q, got %q", want, cd)
		}
		if !strings.HasPrefix(rec.Body.String(), "%PDF-") {
			t.Errorf("expected a PDF body, got %q", rec.Body.String())
		}
	})

	t.Run("returns a JSON error when rendering fails", func(t *testing.T) {
		svc := &mockReportService{writePDFFn: func(io.Writer, report.Range) error {
			return apperrors.ErrReportFailed
		}}
		r := setupReportRouter(NewReportHandler(svc))

		rec := doRequest(r, "GET", "/reports/pdf", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		if rec.Header().Get("Content-Disposition") != "" {
			t.Error("expected no attachment header on failure")
		}
		assertErrorCode(t, parseJSON(t, rec), "REPORT_FAILED")
	})
}
