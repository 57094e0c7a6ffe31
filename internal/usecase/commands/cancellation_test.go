//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"table-booking/internal/domain/event"
	"table-booking/internal/domain/reservation"
	"table-booking/internal/domain/user"
	"table-booking/internal/infra"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/commands"
	"table-booking/internal/usecase/shared"
	"table-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func holderOf(res *reservation.Reservation) user.Actor {
	return user.Actor{ID: *res.Holder().UserID(), Role: user.RoleCustomer}
}

func TestCancel(t *testing.T) {
	t.Run("online booking frees the slot before the refund call", func(t *testing.T) {
		d := newDeps(t)
		res := builder.NewReservationBuilder().BuildDomain()

		d.reads.EXPECT().ReservationForUpdate(gomock.Any(), res.ID()).Return(res, nil).Times(2)
		d.repo.EXPECT().LockTable(gomock.Any(), nil, res.TableID()).Return(nil)
		d.repo.EXPECT().Cancel(gomock.Any(), nil, res).Return(nil)

		var refundReq shared.RefundRequest
		gomock.InOrder(
			d.publisher.EXPECT().Publish(gomock.Any(), gomock.Cond(func(e event.Event) bool {
				return e.Type == event.ReservationCancelled
			})).Return(nil),
			d.publisher.EXPECT().Publish(gomock.Any(), gomock.Cond(func(e event.Event) bool {
				return e.Type == event.MetricsChanged
			})).Return(nil),
			d.provider.EXPECT().CreateRefund(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, req shared.RefundRequest) (reservation.RefundStatus, error) {
					refundReq = req
					return "SUCCESS", nil
				}),
			d.repo.EXPECT().UpdateRefundStatus(gomock.Any(), nil, res).Return(nil),
		)

		result, err := d.cancellationCommands().Cancel(context.Background(), res.ID(), holderOf(res))
		require.NoError(t, err)

		assert.Equal(t, reservation.StatusCancelled, result.Reservation.Status())
		assert.Equal(t, reservation.RefundStatus("SUCCESS"), result.RefundStatus)
		assert.Equal(t, int64(75000), result.RefundAmount.Cents())
		assert.Equal(t, "order_a1b2c3d4e5f6", refundReq.OrderID)
		assert.Equal(t, 750.0, refundReq.Amount.Amount())
		assert.Regexp(t, `^rf_[0-9a-f]{32}$`, refundReq.RefundID)
		assert.Equal(t, res.Refund().ID(), refundReq.RefundID)
	})

	t.Run("webhook that lands first is not overwritten by the refund ack", func(t *testing.T) {
		d := newDeps(t)
		res := builder.NewReservationBuilder().BuildDomain()
		d.recordEvents()

		d.reads.EXPECT().ReservationForUpdate(gomock.Any(), res.ID()).Return(res, nil).Times(2)
		d.repo.EXPECT().LockTable(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		d.repo.EXPECT().Cancel(gomock.Any(), gomock.Any(), res).Return(nil)
		d.provider.EXPECT().CreateRefund(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, shared.RefundRequest) (reservation.RefundStatus, error) {
				// The settled webhook commits while the refund call is still in flight.
				require.True(t, res.ApplyRefundStatus("SUCCESS", now))
				return "PENDING", nil
			})
		d.repo.EXPECT().UpdateRefundStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		result, err := d.cancellationCommands().Cancel(context.Background(), res.ID(), holderOf(res))
		require.NoError(t, err)
		assert.Equal(t, reservation.RefundStatus("SUCCESS"), result.RefundStatus)
	})

	t.Run("provider failure keeps the committed cancellation", func(t *testing.T) {
		d := newDeps(t)
		res := builder.NewReservationBuilder().BuildDomain()
		events := d.recordEvents()

		d.reads.EXPECT().ReservationForUpdate(gomock.Any(), res.ID()).Return(res, nil)
		d.repo.EXPECT().LockTable(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		d.repo.EXPECT().Cancel(gomock.Any(), gomock.Any(), res).Return(nil)
		d.provider.EXPECT().CreateRefund(gomock.Any(), gomock.Any()).Return(reservation.RefundStatus(""), errors.New("gateway timeout"))
		d.repo.EXPECT().UpdateRefundStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		result, err := d.cancellationCommands().Cancel(context.Background(), res.ID(), holderOf(res))
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrProviderUnavailable))

		require.NotNil(t, result)
		assert.Equal(t, reservation.StatusCancelled, result.Reservation.Status())
		assert.Equal(t, reservation.RefundPending, result.RefundStatus)
		assert.Equal(t, int64(75000), result.RefundAmount.Cents())
		assert.Equal(t, []event.Type{event.ReservationCancelled, event.MetricsChanged}, *events)
	})

	t.Run("cash booking is refunded at the venue", func(t *testing.T) {
		d := newDeps(t)
		res := builder.NewReservationBuilder().AsCash().BuildDomain()
		d.recordEvents()

		d.reads.EXPECT().ReservationForUpdate(gomock.Any(), res.ID()).Return(res, nil)
		d.repo.EXPECT().LockTable(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		d.repo.EXPECT().Cancel(gomock.Any(), gomock.Any(), res).Return(nil)
		d.provider.EXPECT().CreateRefund(gomock.Any(), gomock.Any()).Times(0)

		result, err := d.cancellationCommands().Cancel(context.Background(), res.ID(), admin())
		require.NoError(t, err)
		assert.Equal(t, reservation.RefundCash, result.RefundStatus)
		assert.Equal(t, int64(75000), result.RefundAmount.Cents())
		assert.Empty(t, result.Reservation.Refund().ID())
	})

	t.Run("another customer may not cancel", func(t *testing.T) {
		d := newDeps(t)
		res := builder.NewReservationBuilder().BuildDomain()
		d.reads.EXPECT().ReservationForUpdate(gomock.Any(), res.ID()).Return(res, nil)
		d.repo.EXPECT().Cancel(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

		_, err := d.cancellationCommands().Cancel(context.Background(), res.ID(), customer())
		assert.True(t, errs.Is(err, errs.ErrUnauthorized))
		assert.True(t, errs.Is(err, commands.ErrNotHolder))
	})

	t.Run("second cancel is rejected", func(t *testing.T) {
		d := newDeps(t)
		res := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, res.Cancel(commands.DefaultOptions().RefundPolicy, now))

		d.reads.EXPECT().ReservationForUpdate(gomock.Any(), res.ID()).Return(res, nil)
		d.repo.EXPECT().LockTable(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		d.provider.EXPECT().CreateRefund(gomock.Any(), gomock.Any()).Times(0)

		_, err := d.cancellationCommands().Cancel(context.Background(), res.ID(), holderOf(res))
		assert.True(t, errs.Is(err, errs.ErrAlreadyCancelled))
	})

	t.Run("unknown reservation", func(t *testing.T) {
		d := newDeps(t)
		id := uuid.New()
		d.reads.EXPECT().ReservationForUpdate(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("reservation not found", errors.New("no rows"), infra.KindNotFound))

		_, err := d.cancellationCommands().Cancel(context.Background(), id, admin())
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})
}

func TestRefetchRefundStatus(t *testing.T) {
	cancelled := func(t *testing.T) *reservation.Reservation {
		res := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, res.Cancel(commands.DefaultOptions().RefundPolicy, now))
		return res
	}

	t.Run("stores and broadcasts a changed status", func(t *testing.T) {
		d := newDeps(t)
		res := cancelled(t)
		events := d.recordEvents()

		d.reads.EXPECT().ReservationByID(gomock.Any(), res.ID()).Return(res, nil)
		d.provider.EXPECT().RefundStatus(gomock.Any(), "order_a1b2c3d4e5f6", res.Refund().ID()).Return(reservation.RefundStatus("SUCCESS"), nil)
		d.reads.EXPECT().ReservationForUpdate(gomock.Any(), res.ID()).Return(res, nil)
		d.repo.EXPECT().UpdateRefundStatus(gomock.Any(), nil, res).Return(nil)

		result, err := d.cancellationCommands().RefetchRefundStatus(context.Background(), res.ID(), holderOf(res))
		require.NoError(t, err)
		assert.Equal(t, reservation.RefundStatus("SUCCESS"), result.RefundStatus)
		assert.Equal(t, []event.Type{event.ReservationUpdated}, *events)
	})

	t.Run("unchanged status writes nothing", func(t *testing.T) {
		d := newDeps(t)
		res := cancelled(t)

		d.reads.EXPECT().ReservationByID(gomock.Any(), res.ID()).Return(res, nil)
		d.provider.EXPECT().RefundStatus(gomock.Any(), gomock.Any(), gomock.Any()).Return(reservation.RefundPending, nil)
		d.repo.EXPECT().UpdateRefundStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

		result, err := d.cancellationCommands().RefetchRefundStatus(context.Background(), res.ID(), admin())
		require.NoError(t, err)
		assert.Equal(t, reservation.RefundPending, result.RefundStatus)
	})

	t.Run("status written meanwhile is kept", func(t *testing.T) {
		d := newDeps(t)
		res := cancelled(t)
		stored := *res
		require.True(t, stored.ApplyRefundStatus("SUCCESS", now))

		d.reads.EXPECT().ReservationByID(gomock.Any(), res.ID()).Return(res, nil)
		d.provider.EXPECT().RefundStatus(gomock.Any(), gomock.Any(), gomock.Any()).Return(reservation.RefundStatus("PENDING"), nil)
		d.reads.EXPECT().ReservationForUpdate(gomock.Any(), res.ID()).Return(&stored, nil)
		d.repo.EXPECT().UpdateRefundStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

		result, err := d.cancellationCommands().RefetchRefundStatus(context.Background(), res.ID(), holderOf(res))
		require.NoError(t, err)
		assert.Equal(t, reservation.RefundStatus("SUCCESS"), result.RefundStatus)
	})

	t.Run("bookings without a provider refund skip the lookup", func(t *testing.T) {
		d := newDeps(t)
		res := builder.NewReservationBuilder().BuildDomain()

		d.reads.EXPECT().ReservationByID(gomock.Any(), res.ID()).Return(res, nil)
		d.provider.EXPECT().RefundStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		result, err := d.cancellationCommands().RefetchRefundStatus(context.Background(), res.ID(), holderOf(res))
		require.NoError(t, err)
		assert.Equal(t, reservation.RefundNone, result.RefundStatus)
	})

	t.Run("provider failure", func(t *testing.T) {
		d := newDeps(t)
		res := cancelled(t)

		d.reads.EXPECT().ReservationByID(gomock.Any(), res.ID()).Return(res, nil)
		d.provider.EXPECT().RefundStatus(gomock.Any(), gomock.Any(), gomock.Any()).Return(reservation.RefundStatus(""), errors.New("503"))

		_, err := d.cancellationCommands().RefetchRefundStatus(context.Background(), res.ID(), holderOf(res))
		assert.True(t, errs.Is(err, errs.ErrProviderUnavailable))
	})
}

func TestHandleRefundWebhook(t *testing.T) {
	hook := shared.RefundWebhook{Body: []byte(`{}`), Signature: "sig", Timestamp: "1700000000"}

	t.Run("bad signature", func(t *testing.T) {
		d := newDeps(t)
		d.provider.EXPECT().ParseRefundWebhook(hook).Return(nil, errors.New("signature mismatch"))

		err := d.cancellationCommands().HandleRefundWebhook(context.Background(), hook)
		assert.True(t, errs.Is(err, errs.ErrInvalidSignature))
	})

	t.Run("other webhook types are acknowledged", func(t *testing.T) {
		d := newDeps(t)
		d.provider.EXPECT().ParseRefundWebhook(hook).Return(&shared.RefundNotification{Type: "PAYMENT_SUCCESS_WEBHOOK"}, nil)
		d.reads.EXPECT().ReservationByRefund(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		assert.NoError(t, d.cancellationCommands().HandleRefundWebhook(context.Background(), hook))
	})

	t.Run("redelivery is idempotent", func(t *testing.T) {
		d := newDeps(t)
		res := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, res.Cancel(commands.DefaultOptions().RefundPolicy, now))
		note := &shared.RefundNotification{
			Type:         "REFUND_STATUS_WEBHOOK",
			OrderID:      res.Payment().OrderID(),
			RefundID:     res.Refund().ID(),
			RefundStatus: "SUCCESS",
		}
		events := d.recordEvents()

		d.provider.EXPECT().ParseRefundWebhook(hook).Return(note, nil).Times(2)
		d.reads.EXPECT().ReservationByRefund(gomock.Any(), note.OrderID, note.RefundID).Return(res, nil).Times(2)
		d.repo.EXPECT().UpdateRefundStatus(gomock.Any(), nil, res).Return(nil).Times(1)

		cmds := d.cancellationCommands()
		require.NoError(t, cmds.HandleRefundWebhook(context.Background(), hook))
		require.NoError(t, cmds.HandleRefundWebhook(context.Background(), hook))

		assert.Equal(t, reservation.RefundStatus("SUCCESS"), res.Refund().Status())
		assert.Equal(t, []event.Type{event.ReservationUpdated}, *events)
	})

	t.Run("unknown refund is acknowledged", func(t *testing.T) {
		d := newDeps(t)
		d.provider.EXPECT().ParseRefundWebhook(hook).Return(&shared.RefundNotification{
			Type: "REFUND_STATUS_WEBHOOK", OrderID: "order_gone", RefundID: "rf_gone", RefundStatus: "SUCCESS",
		}, nil)
		d.reads.EXPECT().ReservationByRefund(gomock.Any(), "order_gone", "rf_gone").
			Return(nil, infra.WrapRepoErr("reservation not found", errors.New("no rows"), infra.KindNotFound))
		d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

		assert.NoError(t, d.cancellationCommands().HandleRefundWebhook(context.Background(), hook))
	})
}
