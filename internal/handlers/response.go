package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"taskboard/internal/logger"
	"taskboard/internal/repositories"
	"taskboard/internal/services"
)

// respondError is the single error-to-status mapping for the API. Handlers
// never pick status codes themselves; they pass whatever the service layer
// returned.
func respondError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Validation failed",
			"errors":  verr.Fields,
		})
	case errors.Is(err, repositories.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidRefresh):
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
	default:
		// Store or infrastructure failure: log the detail, answer generically.
		logger.Error("internal error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

// bindError turns gin binding failures into the same {message, errors} shape
// the validation path uses.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]services.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, services.FieldError{
				Field: fe.Field(),
				Msg:   "Invalid value",
			})
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
}
