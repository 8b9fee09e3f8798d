package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"habithero/internal/dates"
	apperrors "habithero/internal/errors"
	"habithero/internal/models"
	"habithero/internal/pagination"
	"habithero/internal/services"
)

// CheckInHandler handles check-in requests.
type CheckInHandler struct {
	checkInService services.CheckInServicer
	auditService   services.AuditServicer
}

// NewCheckInHandler creates a new CheckInHandler.
func NewCheckInHandler(checkInService services.CheckInServicer, auditService services.AuditServicer) *CheckInHandler {
	return &CheckInHandler{checkInService: checkInService, auditService: auditService}
}

// CheckInRequest is the payload for recording a check-in. Date defaults to
// today and completed to true.
type CheckInRequest struct {
	Date      *dates.Date `json:"date" swaggertype:"string" example:"2025-01-06"`
	Completed *bool       `json:"completed"`
	Notes     string      `json:"notes" binding:"max=1000"`
}

// UpdateCheckInRequest is the payload for editing a check-in.
type UpdateCheckInRequest struct {
	Completed *bool   `json:"completed"`
	Notes     *string `json:"notes" binding:"omitempty,max=1000"`
}

// CheckInResponse is returned when a check-in is recorded.
type CheckInResponse struct {
	CheckIn    *models.CheckIn `json:"checkin"`
	Applicable bool            `json:"applicable"`
}

// RecordCheckIn creates or updates the check-in of a habit for one date.
// @Summary     Record a check-in
// @Description Upsert the check-in for (habit, date). Returns 201 when created and 200 when an existing record was updated.
// @Tags        checkins
// @Accept      json
// @Produce     json
// @Param       id      path string         true "Habit ID"
// @Param       request body CheckInRequest true "Check-in details"
// @Success     201 {object} CheckInResponse "Check-in created"
// @Success     200 {object} CheckInResponse "Check-in updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Habit not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits/{id}/checkins [post]
func (h *CheckInHandler) RecordCheckIn(c *gin.Context) {
	habitID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CheckInRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, bindError(err))
			return
		}
	}

	result, err := h.checkInService.RecordCheckIn(habitID, services.CheckInInput{
		Date:      req.Date,
		Completed: req.Completed,
		Notes:     req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	status, action := http.StatusOK, "UPDATE_CHECKIN"
	if result.Created {
		status, action = http.StatusCreated, "CREATE_CHECKIN"
	}
	h.auditService.Log(action, "checkin", result.CheckIn.ID, c.ClientIP(),
		map[string]interface{}{"habit_id": habitID, "date": result.CheckIn.Date.String(), "completed": result.CheckIn.Completed})

	c.JSON(status, CheckInResponse{CheckIn: result.CheckIn, Applicable: result.Applicable})
}

// GetCheckIns lists the check-ins of a habit.
// @Summary     List check-ins
// @Description Get a paginated list of a habit's check-ins, newest first
// @Tags        checkins
// @Produce     json
// @Param       id        path  string true  "Habit ID"
// @Param       from      query string false "Earliest date (YYYY-MM-DD)"
// @Param       to        query string false "Latest date (YYYY-MM-DD)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.CheckIn] "Paginated check-ins"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Habit not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits/{id}/checkins [get]
func (h *CheckInHandler) GetCheckIns(c *gin.Context) {
	habitID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.CheckInFilter
	if filter.From, err = parseDateQuery(c, "from"); err != nil {
		respondWithError(c, err)
		return
	}
	if filter.To, err = parseDateQuery(c, "to"); err != nil {
		respondWithError(c, err)
		return
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidDateRange, "from must not be after to"))
		return
	}

	result, err := h.checkInService.ListCheckIns(habitID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateCheckIn edits the completion flag or notes of a check-in.
// @Summary     Update a check-in
// @Tags        checkins
// @Accept      json
// @Produce     json
// @Param       id      path string               true "Check-in ID"
// @Param       request body UpdateCheckInRequest true "Fields to update"
// @Success     200 {object} models.CheckIn "Updated check-in"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Check-in not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /checkins/{id} [put]
func (h *CheckInHandler) UpdateCheckIn(c *gin.Context) {
	checkInID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	checkIn, err := h.checkInService.UpdateCheckIn(checkInID, req.Completed, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_CHECKIN", "checkin", checkIn.ID, c.ClientIP(),
		map[string]interface{}{"completed": checkIn.Completed})

	c.JSON(http.StatusOK, gin.H{"checkin": checkIn})
}

// DeleteCheckIn removes a check-in.
// @Summary     Delete a check-in
// @Tags        checkins
// @Produce     json
// @Param       id path string true "Check-in ID"
// @Success     200 {object} MessageResponse "Check-in deleted"
// @Failure     400 {object} ErrorResponse "Invalid check-in ID"
// @Failure     404 {object} ErrorResponse "Check-in not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /checkins/{id} [delete]
func (h *CheckInHandler) DeleteCheckIn(c *gin.Context) {
	checkInID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.checkInService.DeleteCheckIn(checkInID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_CHECKIN", "checkin", checkInID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Check-in deleted successfully"})
}
