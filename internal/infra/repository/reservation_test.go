//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/domain/table"
	"table-booking/internal/infra"
	"table-booking/internal/infra/repository/converter"
	sqlc "table-booking/internal/infra/sqlc/generated"
	"table-booking/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReservationWriteQueries struct {
	mock.Mock
}

func (m *MockReservationWriteQueries) LockTable(ctx context.Context, db sqlc.DBTX, tableKey string) error {
	return m.Called(ctx, db, tableKey).Error(0)
}

func (m *MockReservationWriteQueries) CreateReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReservationParams) error {
	return m.Called(ctx, db, arg).Error(0)
}

func (m *MockReservationWriteQueries) UpdateReservationTime(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateReservationTimeParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReservationWriteQueries) CancelReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.CancelReservationParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReservationWriteQueries) UpdateRefundStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateRefundStatusParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReservationWriteQueries) AttachInvoice(ctx context.Context, db sqlc.DBTX, arg sqlc.AttachInvoiceParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReservationWriteQueries) DeleteReservation(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReservationWriteQueries) ClearExpiredInvoices(ctx context.Context, db sqlc.DBTX, now pgtype.Timestamptz) (int64, error) {
	args := m.Called(ctx, db, now)
	return args.Get(0).(int64), args.Error(1)
}

// sqlc.DBTX implementation so the mock can stand in for the transaction
func (m *MockReservationWriteQueries) Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *MockReservationWriteQueries) Query(context.Context, string, ...interface{}) (pgx.Rows, error) {
	return nil, nil
}

func (m *MockReservationWriteQueries) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	return nil
}

var ist = time.FixedZone("IST", 5*3600+1800)

func newConfirmed(t *testing.T, payment reservation.Payment) *reservation.Reservation {
	t.Helper()
	now := time.Date(2030, time.June, 1, 9, 0, 0, 0, ist)
	tbl, err := table.NewTable(uuid.New(), 3, 60000, true)
	require.NoError(t, err)
	holder, err := reservation.UserHolder(uuid.New())
	require.NoError(t, err)
	slot, err := reservation.NewTimeSlot(now.Add(24*time.Hour), now.Add(25*time.Hour+30*time.Minute))
	require.NoError(t, err)

	f := reservation.NewFactory(clock.NewMockClock(now), reservation.NewHourlyRateCalculator())
	res, err := f.CreateReservation(tbl, holder, slot, payment)
	require.NoError(t, err)
	return res
}

func TestCreate(t *testing.T) {
	res := newConfirmed(t, reservation.OnlinePayment("order_abc", "session_1"))

	tests := []struct {
		name     string
		mockErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success"},
		{name: "exclusion violation", mockErr: &pgconn.PgError{Code: "23P01"}, wantKind: infra.KindConflict},
		{name: "database error", mockErr: assert.AnError, wantKind: infra.KindDBFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := new(MockReservationWriteQueries)
			q.On("CreateReservation", mock.Anything, q, converter.ReservationToInfra(res)).Return(tt.mockErr)

			err := NewReservationRepository(q).Create(context.Background(), q, res)
			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
			}
			q.AssertExpectations(t)
		})
	}
}

func TestLockTable(t *testing.T) {
	tableID := uuid.New()
	q := new(MockReservationWriteQueries)
	q.On("LockTable", mock.Anything, q, tableID.String()).Return(nil)

	require.NoError(t, NewReservationRepository(q).LockTable(context.Background(), q, tableID))
	q.AssertExpectations(t)
}

func TestCancel(t *testing.T) {
	res := newConfirmed(t, reservation.CashPayment())
	require.NoError(t, res.Cancel(reservation.RefundPolicy{Percent: 75}, res.CreatedAt()))

	t.Run("writes the refund decision", func(t *testing.T) {
		q := new(MockReservationWriteQueries)
		q.On("CancelReservation", mock.Anything, q, mock.MatchedBy(func(p sqlc.CancelReservationParams) bool {
			return p.ID == res.ID() &&
				p.RefundStatus == "cash_refund" &&
				p.RefundAmountCents == res.Refund().Amount().Cents() &&
				!p.RefundID.Valid
		})).Return(int64(1), nil)

		require.NoError(t, NewReservationRepository(q).Cancel(context.Background(), q, res))
		q.AssertExpectations(t)
	})

	t.Run("no row updated is not found", func(t *testing.T) {
		q := new(MockReservationWriteQueries)
		q.On("CancelReservation", mock.Anything, q, mock.Anything).Return(int64(0), nil)

		err := NewReservationRepository(q).Cancel(context.Background(), q, res)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestDelete(t *testing.T) {
	id := uuid.New()

	q := new(MockReservationWriteQueries)
	q.On("DeleteReservation", mock.Anything, q, id).Return(int64(0), nil).Once()
	err := NewReservationRepository(q).Delete(context.Background(), q, id)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))

	q.On("DeleteReservation", mock.Anything, q, id).Return(int64(1), nil).Once()
	assert.NoError(t, NewReservationRepository(q).Delete(context.Background(), q, id))
}

func TestAttachInvoiceWithoutInvoiceIsNoop(t *testing.T) {
	res := newConfirmed(t, reservation.CashPayment())
	q := new(MockReservationWriteQueries)

	require.NoError(t, NewReservationRepository(q).AttachInvoice(context.Background(), q, res))
	q.AssertNotCalled(t, "AttachInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func TestRowRoundTrip(t *testing.T) {
	res := newConfirmed(t, reservation.OnlinePayment("order_abc", "session_1"))
	p := converter.ReservationToInfra(res)

	row := sqlc.Reservations{
		ID:                p.ID,
		TableID:           p.TableID,
		UserID:            p.UserID,
		StartTime:         p.StartTime,
		EndTime:           p.EndTime,
		DurationMinutes:   p.DurationMinutes,
		TotalPriceCents:   p.TotalPriceCents,
		Status:            p.Status,
		PaymentOrderID:    p.PaymentOrderID,
		PaymentSessionID:  p.PaymentSessionID,
		PaymentStatus:     p.PaymentStatus,
		RefundStatus:      p.RefundStatus,
		RefundAmountCents: p.RefundAmountCents,
		RefundID:          p.RefundID,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
	got := converter.ReservationFromRow(row)

	assert.Equal(t, res.ID(), got.ID())
	assert.Equal(t, *res.Holder().UserID(), *got.Holder().UserID())
	assert.True(t, res.TimeSlot().Start().Equal(got.TimeSlot().Start()))
	assert.Equal(t, 90, got.TimeSlot().DurationMinutes())
	assert.Equal(t, int64(90000), got.Price().Cents())
	assert.True(t, got.Payment().IsOnline())
	assert.Equal(t, reservation.RefundNone, got.Refund().Status())
	assert.Nil(t, got.Invoice())
}
