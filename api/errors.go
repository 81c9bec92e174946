package api

import (
	"errors"
	"net/http"

	"github.com/avelin/flightstore/internal/domain"
	"github.com/gin-gonic/gin"
)

// writeError maps a service error to an HTTP status and the common
// {"error": ...} body. Anything not recognized is an infrastructure failure
// and surfaces as a 500 without leaking internals.
func writeError(c *gin.Context, err error) {
	var insufficient *domain.InsufficientSeatsError
	switch {
	case errors.As(err, &insufficient):
		c.JSON(http.StatusBadRequest, gin.H{"error": insufficient.Error()})
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrReviewExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrFlightNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
