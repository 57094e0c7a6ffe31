package api

import (
	"net/http"

	reqdto "table-booking/internal/handler/dto/request"
	resdto "table-booking/internal/handler/dto/response"
	"table-booking/internal/handler/middleware"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/commands"
	"table-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	cmds   commands.ReservationCommands
	cancel commands.CancellationCommands
	q      queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, cancel commands.CancellationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, cancel: cancel, q: q}
}

// @Summary Create reservation
// @Description Admits a booking after verifying payment. Admins may book for any user or a manual customer and may skip payment (cash).
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response "detail holds the colliding reservation"
// @Failure 503 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}

	res, err := h.cmds.Admit(c.Request.Context(), req.ToInput(), actor)
	if err != nil {
		abortWithUseCaseError(c, err, nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromReservation(res))
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationDetailResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid reservation id")
		return
	}
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id, actor)
	if err != nil {
		abortWithUseCaseError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List own reservations
// @Description Newest first, keyset paginated.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param cursor query string false "Opaque cursor from a previous page"
// @Param limit query int false "Page size (1-200)"
// @Success 200 {object} resdto.ReservationPageResponse
// @Failure 400 {object} httperr.Response
// @Router /reservations/me [get]
func (h *ReservationHandler) ListMine(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}
	listByUser(c, h.q, actor.ID)
}

// @Summary Cancel reservation
// @Description Cancels and starts the refund. On 503 the cancellation is committed and returned in detail.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.CancellationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid reservation id")
		return
	}
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	result, err := h.cancel.Cancel(c.Request.Context(), id, actor)
	if err != nil {
		var detail any
		if result != nil && errs.Is(err, errs.ErrProviderUnavailable) {
			detail = resdto.FromCancellation(result)
		}
		abortWithUseCaseError(c, err, detail)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCancellation(result))
}

// @Summary Refetch refund status
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.RefundStatusResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /reservations/{id}/refund-status [get]
func (h *ReservationHandler) RefundStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid reservation id")
		return
	}
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	result, err := h.cancel.RefetchRefundStatus(c.Request.Context(), id, actor)
	if err != nil {
		abortWithUseCaseError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.RefundStatusResponse{
		RefundStatus: result.RefundStatus.String(),
		RefundAmount: result.RefundAmount.Amount(),
	})
}

func listByUser(c *gin.Context, q queries.ReservationQueries, userID uuid.UUID) {
	actor, _ := middleware.GetActor(c)
	var query reqdto.ListReservationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortBadRequest(c, err, "Invalid query")
		return
	}

	var cursor *queries.Cursor
	if query.Cursor != "" {
		cursor = &queries.Cursor{After: query.Cursor}
	}
	items, next, err := q.ListByUser(c.Request.Context(), userID, actor, cursor, query.Limit)
	if err != nil {
		abortWithUseCaseError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationPage(items, next))
}
