package api

import (
	"errors"
	"net/http"

	"flightdesk/internal/domain"
	"flightdesk/internal/service/users"

	"github.com/gin-gonic/gin"
)

// respondError maps domain error kinds to HTTP statuses. Storage faults are
// never surfaced verbatim to clients.
func respondError(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "field": vErr.Field})
	case errors.Is(err, users.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrNoSeats),
		errors.Is(err, domain.ErrDuplicateCode),
		errors.Is(err, domain.ErrActiveBookings):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
