package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"habithero/internal/report"
	"habithero/internal/services"
)

// ReportHandler serves report analytics and the PDF export.
type ReportHandler struct {
	reportService services.ReportServicer
	now           func() time.Time
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService, now: time.Now}
}

func parseReportRange(c *gin.Context) (report.Range, error) {
	var rng report.Range
	var err error
	if rng.Start, err = parseDateQuery(c, "start_date"); err != nil {
		return rng, err
	}
	if rng.End, err = parseDateQuery(c, "end_date"); err != nil {
		return rng, err
	}
	return rng, nil
}

// GetReportAnalytics returns the data shown in the PDF report.
// @Summary     Get report analytics
// @Description start_date and end_date must be given together. Streaks always use full history.
// @Tags        reports
// @Produce     json
// @Param       start_date query string false "Range start (YYYY-MM-DD)"
// @Param       end_date   query string false "Range end (YYYY-MM-DD)"
// @Success     200 {object} report.Analytics "Report analytics"
// @Failure     400 {object} ErrorResponse "Invalid date range"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/analytics [get]
func (h *ReportHandler) GetReportAnalytics(c *gin.Context) {
	rng, err := parseReportRange(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	analytics, err := h.reportService.BuildReport(rng)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, analytics)
}

// DownloadPDF exports the report as a PDF attachment.
// @Summary     Download PDF report
// @Tags        reports
// @Produce     application/pdf
// @Param       start_date query string false "Range start (YYYY-MM-DD)"
// @Param       end_date   query string false "Range end (YYYY-MM-DD)"
// @Success     200 {file} file "PDF report"
// @Failure     400 {object} ErrorResponse "Invalid date range"
// @Failure     500 {object} ErrorResponse "Report generation failed"
// @Router      /reports/pdf [get]
func (h *ReportHandler) DownloadPDF(c *gin.Context) {
	rng, err := parseReportRange(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.reportService.WritePDF(&buf, rng); err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+report.Filename(h.now())+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
