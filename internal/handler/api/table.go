package api

import (
	"net/http"

	reqdto "table-booking/internal/handler/dto/request"
	resdto "table-booking/internal/handler/dto/response"
	"table-booking/internal/handler/middleware"
	"table-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TableHandler struct {
	tables       queries.TableQueries
	availability queries.AvailabilityQueries
	reservations queries.ReservationQueries
}

func NewTableHandler(tables queries.TableQueries, availability queries.AvailabilityQueries, reservations queries.ReservationQueries) *TableHandler {
	return &TableHandler{
		tables:       tables,
		availability: availability,
		reservations: reservations,
	}
}

// @Summary List tables
// @Tags tables
// @Produce json
// @Success 200 {array} resdto.TableResponse
// @Router /tables [get]
func (h *TableHandler) List(c *gin.Context) {
	views, err := h.tables.List(c.Request.Context())
	if err != nil {
		abortWithUseCaseError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTableViews(views))
}

// @Summary Table availability
// @Description Start times for a day, or end times for a chosen start. mode=all (admin) lists every end candidate with its validity.
// @Tags tables
// @Produce json
// @Param id path string true "Table ID"
// @Param date query string true "Day (YYYY-MM-DD)"
// @Param start query string false "Chosen start (RFC 3339)"
// @Param mode query string false "all"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /tables/{id}/availability [get]
func (h *TableHandler) Availability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid table id")
		return
	}
	var q reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortBadRequest(c, err, "Invalid query")
		return
	}
	start, err := q.StartTime()
	if err != nil {
		abortBadRequest(c, err, "start must be an RFC 3339 timestamp")
		return
	}

	actor, _ := middleware.GetActor(c)
	view, err := h.availability.Availability(c.Request.Context(), queries.AvailabilityRequest{
		TableID: id,
		Date:    q.Date,
		Start:   start,
		All:     q.All(),
	}, actor.IsAdmin())
	if err != nil {
		abortWithUseCaseError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}

// @Summary Active reservations of a table for a day
// @Description Includes reservations within the buffer on both sides of the day. Used to seed live mirrors.
// @Tags tables
// @Produce json
// @Param id path string true "Table ID"
// @Param date query string true "Day (YYYY-MM-DD)"
// @Success 200 {array} resdto.ReservationListResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /tables/{id}/reservations [get]
func (h *TableHandler) DayReservations(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid table id")
		return
	}
	var q reqdto.DayQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortBadRequest(c, err, "date is required")
		return
	}

	items, err := h.reservations.ListActiveByTableDay(c.Request.Context(), id, q.Date)
	if err != nil {
		abortWithUseCaseError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationList(items))
}
