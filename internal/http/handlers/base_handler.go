// README: Base handler utilities (JSON helpers, domain error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ridelink/internal/modules/registry"
	"ridelink/internal/modules/trip"
	"ridelink/internal/modules/user"
)

// timeLayout is the departure-time format accepted from and returned to clients.
const timeLayout = "2006-01-02 15:04"

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, registry.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, registry.ErrDuplicateID),
		errors.Is(err, trip.ErrTripFull),
		errors.Is(err, trip.ErrDuplicateRider),
		errors.Is(err, trip.ErrInvalidTransition):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, registry.ErrNotADriver),
		errors.Is(err, user.ErrInvalidRating):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
