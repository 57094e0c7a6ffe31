package api

import (
	"errors"
	"net/http"

	resdto "table-booking/internal/handler/dto/response"
	"table-booking/internal/handler/httperr"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const msgInternal = "Internal server error"

// abortWithUseCaseError maps the usecase error taxonomy onto HTTP statuses.
func abortWithUseCaseError(c *gin.Context, err error, detail any) {
	var conflict *commands.ConflictError
	if errors.As(err, &conflict) {
		httperr.AbortWithError(c, http.StatusConflict, err, "Time slot is already booked", resdto.FromReservation(conflict.Existing))
		return
	}

	status := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = msgInternal
	}
	httperr.AbortWithError(c, status, err, msg, detail)
}

func statusOf(err error) int {
	switch {
	case errs.Is(err, errs.ErrSlotConflict):
		return http.StatusConflict
	case errs.Is(err, errs.ErrProviderUnavailable):
		return http.StatusServiceUnavailable
	case errs.Is(err, errs.ErrInvalidSignature):
		return http.StatusUnauthorized
	case errs.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errs.Is(err, errs.ErrUnauthorized):
		return http.StatusForbidden
	case errs.Is(err, errs.ErrAlreadyCancelled),
		errs.Is(err, errs.ErrPaymentRequired),
		errs.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortBadRequest(c *gin.Context, err error, msg string) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, msg, nil)
}

func abortUnauthenticated(c *gin.Context) {
	httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("missing actor"), "Unauthorized", nil)
}
