package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"pennywise/internal/budget"
	apperrors "pennywise/internal/errors"
	"pennywise/internal/logger"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID, exists := c.Get("userID")
	if !exists {
		return "", apperrors.ErrUnauthorized
	}
	return userID.(string), nil
}

// parsePeriod parses the :year and :month path parameters. Range checks
// happen in the service so API and internal callers share one rule.
func parsePeriod(c *gin.Context) (budget.Period, error) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return budget.Period{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Year must be a valid integer (1900-3000).")
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		return budget.Period{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Month must be an integer between 1 and 12.")
	}
	return budget.Period{Year: year, Month: month}, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}
