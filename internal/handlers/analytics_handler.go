package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"habithero/internal/analytics"
	"habithero/internal/dates"
	"habithero/internal/services"
)

// AnalyticsHandler serves streaks, statistics and calendars.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService services.AnalyticsServicer) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// CalendarParams are the query parameters of the calendar endpoint.
type CalendarParams struct {
	From  string `form:"from" binding:"omitempty,calendar_date"`
	To    string `form:"to" binding:"omitempty,calendar_date"`
	Days  int    `form:"days" binding:"omitempty,min=1,max=732"`
	Order string `form:"order" binding:"omitempty,sort_order"`
}

// GetStreak returns the current and longest streak of a habit.
// @Summary     Get habit streak
// @Tags        analytics
// @Produce     json
// @Param       id path string true "Habit ID"
// @Success     200 {object} services.HabitStreak "Streak"
// @Failure     400 {object} ErrorResponse "Invalid habit ID"
// @Failure     404 {object} ErrorResponse "Habit not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits/{id}/streak [get]
func (h *AnalyticsHandler) GetStreak(c *gin.Context) {
	habitID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	streak, err := h.analyticsService.GetHabitStreak(habitID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, streak)
}

// GetStats returns completion statistics of a habit.
// @Summary     Get habit statistics
// @Tags        analytics
// @Produce     json
// @Param       id path string true "Habit ID"
// @Success     200 {object} analytics.HabitStats "Statistics"
// @Failure     400 {object} ErrorResponse "Invalid habit ID"
// @Failure     404 {object} ErrorResponse "Habit not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits/{id}/stats [get]
func (h *AnalyticsHandler) GetStats(c *gin.Context) {
	habitID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.analyticsService.GetHabitStats(habitID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetCalendar projects a habit's calendar.
// @Summary     Get habit calendar
// @Description Either from and to, or days counting back from today (default 30).
// @Tags        analytics
// @Produce     json
// @Param       id    path  string true  "Habit ID"
// @Param       from  query string false "First date (YYYY-MM-DD)"
// @Param       to    query string false "Last date (YYYY-MM-DD)"
// @Param       days  query int    false "Number of days ending today"
// @Param       order query string false "asc or desc"
// @Success     200 {object} services.HabitCalendar "Calendar"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Habit not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits/{id}/calendar [get]
func (h *AnalyticsHandler) GetCalendar(c *gin.Context) {
	habitID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var params CalendarParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	q := services.CalendarQuery{Days: params.Days}
	if params.From != "" {
		from := dates.MustParse(params.From)
		q.From = &from
	}
	if params.To != "" {
		to := dates.MustParse(params.To)
		q.To = &to
	}
	if q.Order, err = analytics.ParseOrder(params.Order); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	calendar, err := h.analyticsService.GetHabitCalendar(habitID, q)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, calendar)
}

// GetOverview returns statistics across all habits.
// @Summary     Get overall analytics
// @Tags        analytics
// @Produce     json
// @Success     200 {object} analytics.OverallStats "Overall statistics"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics/overview [get]
func (h *AnalyticsHandler) GetOverview(c *gin.Context) {
	overview, err := h.analyticsService.GetOverview()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}
