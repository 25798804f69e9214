// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bistro/internal/modules/catalog"
	"bistro/internal/modules/order"
	"bistro/internal/modules/reservation"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeDomainError maps engine errors onto HTTP statuses. Validation
// errors carry the offending field through to the response.
func writeDomainError(c *gin.Context, err error) {
	var vErr *order.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, errorResponse{Error: vErr.Reason, Field: vErr.Field})
		return
	}
	var rvErr *reservation.ValidationError
	if errors.As(err, &rvErr) {
		c.JSON(http.StatusBadRequest, errorResponse{Error: rvErr.Reason, Field: rvErr.Field})
		return
	}

	switch {
	case errors.Is(err, order.ErrUnauthenticated), errors.Is(err, reservation.ErrUnauthenticated):
		writeError(c, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, order.ErrPermissionDenied):
		writeError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, order.ErrNotFound),
		errors.Is(err, order.ErrItemNotFound),
		errors.Is(err, catalog.ErrDishNotFound),
		errors.Is(err, catalog.ErrStopListNotFound),
		errors.Is(err, reservation.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrConflict),
		errors.Is(err, order.ErrDishStopListed):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, order.ErrBadRequest),
		errors.Is(err, catalog.ErrBadRequest),
		errors.Is(err, reservation.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
