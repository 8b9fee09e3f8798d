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

// HabitHandler handles habit-related requests.
type HabitHandler struct {
	habitService services.HabitServicer
	auditService services.AuditServicer
}

// NewHabitHandler creates a new HabitHandler.
func NewHabitHandler(habitService services.HabitServicer, auditService services.AuditServicer) *HabitHandler {
	return &HabitHandler{habitService: habitService, auditService: auditService}
}

// CreateHabitRequest represents the request payload for creating a habit.
// A missing start_date means today.
type CreateHabitRequest struct {
	Name        string           `json:"name" binding:"required,min=1,max=100"`
	Description string           `json:"description" binding:"max=500"`
	Frequency   models.Frequency `json:"frequency" binding:"required,frequency"`
	Category    string           `json:"category" binding:"required,min=1,max=50"`
	StartDate   *dates.Date      `json:"start_date" swaggertype:"string" example:"2025-01-06"`
}

// UpdateHabitRequest represents the request payload for updating a habit.
type UpdateHabitRequest struct {
	Name        *string           `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string           `json:"description" binding:"omitempty,max=500"`
	Frequency   *models.Frequency `json:"frequency" binding:"omitempty,frequency"`
	Category    *string           `json:"category" binding:"omitempty,min=1,max=50"`
	StartDate   *dates.Date       `json:"start_date" swaggertype:"string" example:"2025-01-06"`
}

// CreateHabit handles the creation of a new habit.
// @Summary     Create a habit
// @Description Create a daily or weekly habit. Weekly habits fall on the weekday of start_date.
// @Tags        habits
// @Accept      json
// @Produce     json
// @Param       request body CreateHabitRequest true "Habit details"
// @Success     201 {object} models.Habit "Habit created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits [post]
func (h *HabitHandler) CreateHabit(c *gin.Context) {
	var req CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	in := services.HabitInput{
		Name:        req.Name,
		Description: req.Description,
		Frequency:   req.Frequency,
		Category:    req.Category,
	}
	if req.StartDate != nil {
		in.StartDate = *req.StartDate
	}

	habit, err := h.habitService.CreateHabit(in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_HABIT", "habit", habit.ID, c.ClientIP(),
		map[string]interface{}{"name": habit.Name, "frequency": habit.Frequency, "start_date": habit.StartDate.String()})

	c.JSON(http.StatusCreated, gin.H{"habit": habit})
}

// GetHabits handles listing habits.
// @Summary     List habits
// @Description Get a paginated list of habits, newest first
// @Tags        habits
// @Produce     json
// @Param       category  query string false "Filter by category"
// @Param       frequency query string false "Filter by frequency (daily/weekly)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Habit] "Paginated habits"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits [get]
func (h *HabitHandler) GetHabits(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.HabitFilter
	if v := c.Query("category"); v != "" {
		filter.Category = &v
	}
	if v := c.Query("frequency"); v != "" {
		f := models.Frequency(v)
		if !f.IsValid() {
			respondWithError(c, apperrors.ErrInvalidFrequency)
			return
		}
		filter.Frequency = &f
	}

	result, err := h.habitService.ListHabits(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetHabit handles retrieving a single habit.
// @Summary     Get habit by ID
// @Tags        habits
// @Produce     json
// @Param       id path string true "Habit ID"
// @Success     200 {object} models.Habit "Habit details"
// @Failure     400 {object} ErrorResponse "Invalid habit ID"
// @Failure     404 {object} ErrorResponse "Habit not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits/{id} [get]
func (h *HabitHandler) GetHabit(c *gin.Context) {
	habitID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	habit, err := h.habitService.GetHabitByID(habitID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"habit": habit})
}

// UpdateHabit handles updating a habit.
// @Summary     Update a habit
// @Description Update name, description, category or start date. Frequency cannot change.
// @Tags        habits
// @Accept      json
// @Produce     json
// @Param       id      path string             true "Habit ID"
// @Param       request body UpdateHabitRequest true "Fields to update"
// @Success     200 {object} models.Habit "Updated habit"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Habit not found"
// @Failure     409 {object} ErrorResponse "Frequency is immutable"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits/{id} [put]
func (h *HabitHandler) UpdateHabit(c *gin.Context) {
	habitID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	habit, err := h.habitService.UpdateHabit(habitID, services.HabitUpdate{
		Name:        req.Name,
		Description: req.Description,
		Frequency:   req.Frequency,
		Category:    req.Category,
		StartDate:   req.StartDate,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_HABIT", "habit", habit.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"habit": habit})
}

// DeleteHabit handles deleting a habit and all of its check-ins.
// @Summary     Delete a habit
// @Tags        habits
// @Produce     json
// @Param       id path string true "Habit ID"
// @Success     200 {object} MessageResponse "Habit deleted"
// @Failure     400 {object} ErrorResponse "Invalid habit ID"
// @Failure     404 {object} ErrorResponse "Habit not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits/{id} [delete]
func (h *HabitHandler) DeleteHabit(c *gin.Context) {
	habitID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.habitService.DeleteHabit(habitID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_HABIT", "habit", habitID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Habit deleted successfully"})
}
