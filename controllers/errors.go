package controllers

import (
	"errors"
	"net/http"

	"hotel-reservation-api/services"
	"hotel-reservation-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// handleServiceError converts service errors to the response
// conventions: field-keyed 400 for validation problems, 400 for
// availability conflicts and blocked room deletion, 404 for unknown
// records, 500 otherwise.
func handleServiceError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		utils.JSONFieldError(c, http.StatusBadRequest, vErr.Field, vErr.Message)
	case errors.Is(err, services.ErrNotAvailable):
		utils.JSONFieldError(c, http.StatusBadRequest, "", err.Error())
	case errors.Is(err, services.ErrRoomHasReservations):
		utils.JSONError(c, http.StatusBadRequest, "Cannot delete room that has reservations.")
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.JSONError(c, http.StatusNotFound, "not found")
	default:
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
	}
}
