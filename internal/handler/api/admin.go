package api

import (
	"net/http"

	reqdto "table-booking/internal/handler/dto/request"
	resdto "table-booking/internal/handler/dto/response"
	"table-booking/internal/usecase/commands"
	"table-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewAdminHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *AdminHandler {
	return &AdminHandler{cmds: cmds, q: q}
}

// @Summary Edit reservation time
// @Description Re-prices and re-checks conflicts, ignoring the reservation itself.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateReservationTimeRequest true "New interval"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/reservations/{id} [put]
func (h *AdminHandler) UpdateTime(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid reservation id")
		return
	}
	var req reqdto.UpdateReservationTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}

	res, err := h.cmds.UpdateTime(c.Request.Context(), id, req.ToInput())
	if err != nil {
		abortWithUseCaseError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservation(res))
}

// @Summary Delete reservation
// @Description Removes the record permanently. No refund is issued.
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /admin/reservations/{id} [delete]
func (h *AdminHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid reservation id")
		return
	}
	if err := h.cmds.HardDelete(c.Request.Context(), id); err != nil {
		abortWithUseCaseError(c, err, nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List reservations of a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param cursor query string false "Opaque cursor"
// @Param limit query int false "Page size (1-200)"
// @Success 200 {object} resdto.ReservationPageResponse
// @Router /admin/users/{userId}/reservations [get]
func (h *AdminHandler) ListByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		abortBadRequest(c, err, "Invalid user id")
		return
	}
	listByUser(c, h.q, userID)
}
