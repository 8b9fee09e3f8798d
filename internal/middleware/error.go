package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"habithero/internal/dates"
	apperrors "habithero/internal/errors"
	"habithero/internal/logger"
)

// RespondError writes err as a JSON error body. AppErrors keep their code and
// status; malformed dates map to INVALID_DATE; anything else is logged and
// reported as INTERNAL_ERROR.
func RespondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
	case errors.Is(err, dates.ErrInvalidDate):
		appErr = apperrors.WithMessage(apperrors.ErrInvalidDate, err.Error())
	default:
		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"request_id", c.GetString(requestIDKey),
		)
		appErr = apperrors.ErrInternalServer
	}

	if appErr.Internal != nil {
		logger.Get().Errorw("app error",
			"code", appErr.Code,
			"internal", appErr.Internal.Error(),
			"path", c.Request.URL.Path,
			"request_id", c.GetString(requestIDKey),
		)
	}
	c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}

// ErrorHandler converts the last error attached to the context into a JSON
// error response, unless a handler already wrote one.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		RespondError(c, c.Errors.Last().Err)
	}
}
