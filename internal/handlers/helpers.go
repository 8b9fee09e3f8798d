package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"habithero/internal/dates"
	apperrors "habithero/internal/errors"
	"habithero/internal/middleware"
	"habithero/internal/uuid"
)

// parsePathID reads a UUID path parameter.
// Returns ErrInvalidInput if the parameter is not a valid UUID.
//
//nolint:unparam // param is kept generic for handlers with other path params
func parsePathID(c *gin.Context, param string) (string, error) {
	id := c.Param(param)
	if !uuid.IsValid(id) {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter.
func parseDateQuery(c *gin.Context, key string) (*dates.Date, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	d, err := dates.Parse(v)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidDate, key+": "+err.Error())
	}
	return &d, nil
}

// bindError turns a binding failure into an AppError. Malformed dates keep
// their own code so clients can tell them apart from other invalid input.
func bindError(err error) error {
	if errors.Is(err, dates.ErrInvalidDate) {
		return apperrors.WithMessage(apperrors.ErrInvalidDate, err.Error())
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "calendar_date" {
				return apperrors.WithMessage(apperrors.ErrInvalidDate, fe.Field()+" must be a YYYY-MM-DD date")
			}
		}
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// respondWithError writes a consistent JSON error response.
func respondWithError(c *gin.Context, err error) {
	middleware.RespondError(c, err)
}

// ErrorDetail is the body of an error response.
type ErrorDetail struct {
	Code    string `json:"code" example:"HABIT_NOT_FOUND"`
	Message string `json:"message" example:"Habit not found"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"Habit deleted successfully"`
}
