//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/domain/user"
	"table-booking/internal/handler/api"
	resdto "table-booking/internal/handler/dto/response"
	"table-booking/internal/handler/httperr"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/commands"
	"table-booking/internal/usecase/queries"
	"table-booking/tests/common/builder"
	"table-booking/tests/common/httptest"
	"table-booking/tests/common/testutil"
	commandsmock "table-booking/tests/mock/commands"
	queriesmock "table-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	mockCtrl   *gomock.Controller
	mockCmds   *commandsmock.MockReservationCommands
	mockCancel *commandsmock.MockCancellationCommands
	mockQuery  *queriesmock.MockReservationQueries
	userID     uuid.UUID
	role       user.Role
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCmds = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockCancel = commandsmock.NewMockCancellationCommands(s.mockCtrl)
	s.mockQuery = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.userID = uuid.New()
	s.role = user.RoleCustomer

	h := api.NewReservationHandler(s.mockCmds, s.mockCancel, s.mockQuery)

	// Stands in for RequireAuth
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			httperr.Abort(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", s.role)
		c.Next()
	}

	s.router.POST("/reservations", authMiddleware, h.Create)
	s.router.GET("/reservations/me", authMiddleware, h.ListMine)
	s.router.GET("/reservations/:id", authMiddleware, h.Get)
	s.router.DELETE("/reservations/:id", authMiddleware, h.Cancel)
	s.router.GET("/reservations/:id/refund-status", authMiddleware, h.RefundStatus)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

type testCaseReservation struct {
	name       string
	mutate     testutil.Mutation
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreate() {
	url := "/reservations"
	b := builder.NewReservationBuilder()
	reqBody := b.BuildCreateRequest()
	created := b.BuildDomain()

	s.Run("success: returns 201 with the admitted reservation", func() {
		s.mockCmds.EXPECT().Admit(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in commands.AdmitInput, actor user.Actor) (*reservation.Reservation, error) {
				s.Equal(s.userID, actor.ID)
				s.Equal(b.TableID, in.TableID)
				s.True(b.Start.Equal(in.Start))
				s.Require().NotNil(in.Payment)
				s.Equal("order_a1b2c3d4e5f6", in.Payment.OrderID)
				return created, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(created.ID(), body.ID)
		s.Equal(1000.0, body.TotalPrice)
		s.Equal("confirmed", body.Status)
		s.Equal("SUCCESS", body.PaymentStatus)
	})

	s.Run("error: 400 Bad Request on missing fields", func() {
		cases := []testCaseReservation{
			{name: "missing tableId", mutate: testutil.Field("tableId", nil), expectCode: http.StatusBadRequest},
			{name: "missing startTime", mutate: testutil.Field("startTime", nil), expectCode: http.StatusBadRequest},
			{name: "missing endTime", mutate: testutil.Field("endTime", nil), expectCode: http.StatusBadRequest},
			{name: "malformed startTime", mutate: testutil.Field("startTime", "tomorrow noon"), expectCode: http.StatusBadRequest},
			{name: "manual customer without email", mutate: testutil.Field("manualCustomer", map[string]any{"name": "walkin"}), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.RequestMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: 409 Conflict carries the colliding reservation", func() {
		existing := builder.NewReservationBuilder().BuildDomain()
		s.mockCmds.EXPECT().Admit(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, &commands.ConflictError{Existing: existing}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already booked")

		var body struct {
			Detail resdto.ReservationResponse `json:"detail"`
		}
		s.Require().NoError(httptest.DecodeResponseBody(s.T(), rec.Body, &body))
		s.Equal(existing.ID(), body.Detail.ID)
	})

	s.Run("error: usecase failures map to statuses", func() {
		cases := []struct {
			name string
			err  error
			code int
		}{
			{name: "payment required", err: errs.Mark(commands.ErrPaymentProofMissing, errs.ErrPaymentRequired), code: http.StatusBadRequest},
			{name: "validation", err: errs.Mark(reservation.ErrStartInPast, errs.ErrValidation), code: http.StatusBadRequest},
			{name: "table missing", err: errs.Mark(commands.ErrTableNotFound, errs.ErrNotFound), code: http.StatusNotFound},
			{name: "provider down", err: errs.Mark(errors.New("timeout"), errs.ErrProviderUnavailable), code: http.StatusServiceUnavailable},
			{name: "unexpected", err: errors.New("boom"), code: http.StatusInternalServerError},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCmds.EXPECT().Admit(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.code, "")
			})
		}
	})

	s.Run("error: 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGet() {
	id := uuid.New()
	view := &queries.ReservationView{ID: id, UserID: &s.userID, Status: "confirmed", TotalPriceCents: 45000, TableNumber: 3}

	s.Run("success", func() {
		s.mockQuery.EXPECT().GetByID(gomock.Any(), id, gomock.Any()).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+id.String(), nil, "bearer-token")

		var body resdto.ReservationDetailResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(id, body.ID)
		s.Equal(450.0, body.TotalPrice)
		s.Equal(3, body.TableNumber)
	})

	s.Run("error: 403 for someone else's reservation", func() {
		s.mockQuery.EXPECT().GetByID(gomock.Any(), id, gomock.Any()).
			Return(nil, errs.Mark(queries.ErrReservationAccess, errs.ErrUnauthorized)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+id.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: 400 for a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid reservation id")
	})
}

// ================================================================================
// TestListMine
// ================================================================================

func (s *ReservationHandlerTestSuite) TestListMine() {
	s.Run("success: passes cursor and limit through", func() {
		items := []*queries.ReservationListItem{builder.NewReservationBuilder().WithUser(s.userID).BuildListItem()}
		next := &queries.Cursor{After: "next-page"}
		s.mockQuery.EXPECT().ListByUser(gomock.Any(), s.userID, gomock.Any(), &queries.Cursor{After: "abc"}, 5).
			Return(items, next, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/me?cursor=abc&limit=5", nil, "bearer-token")

		var body resdto.ReservationPageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Items, 1)
		s.Equal("next-page", body.NextCursor)
	})

	s.Run("error: limit out of range", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/me?limit=500", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCancel() {
	res := builder.NewReservationBuilder().WithUser(s.userID).BuildDomain()
	s.Require().NoError(res.Cancel(reservation.RefundPolicy{Percent: 75}, res.CreatedAt()))
	result := &commands.CancellationResult{Reservation: res, RefundStatus: res.Refund().Status(), RefundAmount: res.Refund().Amount()}
	url := "/reservations/" + res.ID().String()

	s.Run("success", func() {
		s.mockCancel.EXPECT().Cancel(gomock.Any(), res.ID(), gomock.Any()).Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")

		var body resdto.CancellationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("pending", body.RefundStatus)
		s.Equal(750.0, body.RefundAmount)
		s.Equal("cancelled", body.Reservation.Status)
	})

	s.Run("error: 503 still reports the committed cancellation", func() {
		s.mockCancel.EXPECT().Cancel(gomock.Any(), res.ID(), gomock.Any()).
			Return(result, errs.Mark(errors.New("gateway timeout"), errs.ErrProviderUnavailable)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "")

		var body struct {
			Detail resdto.CancellationResponse `json:"detail"`
		}
		s.Require().NoError(httptest.DecodeResponseBody(s.T(), rec.Body, &body))
		s.Equal("cancelled", body.Detail.Reservation.Status)
		s.Equal("pending", body.Detail.RefundStatus)
	})

	s.Run("error: 400 when already cancelled", func() {
		s.mockCancel.EXPECT().Cancel(gomock.Any(), res.ID(), gomock.Any()).
			Return(nil, errs.Mark(reservation.ErrAlreadyCancelled, errs.ErrAlreadyCancelled)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 403 for another customer", func() {
		s.mockCancel.EXPECT().Cancel(gomock.Any(), res.ID(), gomock.Any()).
			Return(nil, errs.Mark(commands.ErrNotHolder, errs.ErrUnauthorized)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})
}

// ================================================================================
// TestRefundStatus
// ================================================================================

func (s *ReservationHandlerTestSuite) TestRefundStatus() {
	id := uuid.New()

	s.Run("success", func() {
		s.mockCancel.EXPECT().RefetchRefundStatus(gomock.Any(), id, gomock.Any()).
			Return(&commands.CancellationResult{RefundStatus: "SUCCESS", RefundAmount: reservation.NewMoney(33750)}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+id.String()+"/refund-status", nil, "bearer-token")

		var body resdto.RefundStatusResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("SUCCESS", body.RefundStatus)
		s.Equal(337.5, body.RefundAmount)
	})

	s.Run("error: provider unavailable", func() {
		s.mockCancel.EXPECT().RefetchRefundStatus(gomock.Any(), id, gomock.Any()).
			Return(nil, errs.Mark(errors.New("503"), errs.ErrProviderUnavailable)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+id.String()+"/refund-status", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "")
	})
}
