package commands

import (
	"context"
	"log/slog"

	"table-booking/internal/domain/event"
	"table-booking/internal/domain/reservation"
	"table-booking/internal/domain/user"
	"table-booking/internal/infra"
	"table-booking/internal/pkg/clock"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const refundWebhookType = "REFUND_STATUS_WEBHOOK"

type CancellationResult struct {
	Reservation  *reservation.Reservation
	RefundStatus reservation.RefundStatus
	RefundAmount reservation.Money
}

type CancellationCommands interface {
	// Cancel commits the cancellation before talking to the provider. When the refund call
	// fails the committed result is still returned alongside an ErrProviderUnavailable error.
	Cancel(ctx context.Context, id uuid.UUID, actor user.Actor) (*CancellationResult, error)
	RefetchRefundStatus(ctx context.Context, id uuid.UUID, actor user.Actor) (*CancellationResult, error)
	HandleRefundWebhook(ctx context.Context, hook shared.RefundWebhook) error
}

type cancellationCommandsImpl struct {
	uow       shared.UnitOfWork
	provider  shared.PaymentProvider
	publisher shared.EventPublisher
	clock     clock.Clock
	opts      Options
	logger    *slog.Logger
}

func NewCancellationCommands(
	uow shared.UnitOfWork,
	provider shared.PaymentProvider,
	publisher shared.EventPublisher,
	clk clock.Clock,
	opts Options,
	logger *slog.Logger,
) CancellationCommands {
	return &cancellationCommandsImpl{
		uow:       uow,
		provider:  provider,
		publisher: publisher,
		clock:     clk,
		opts:      opts,
		logger:    logger,
	}
}

func (uc *cancellationCommandsImpl) Cancel(ctx context.Context, id uuid.UUID, actor user.Actor) (*CancellationResult, error) {
	var cancelled *reservation.Reservation
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reads().ReservationForUpdate(ctx, id)
		if err != nil {
			return notFound(err, ErrReservationNotFound)
		}
		if !actor.CanManage(res.Holder().UserID()) {
			return errs.Mark(ErrNotHolder, errs.ErrUnauthorized)
		}
		if err := tx.Reservations().LockTable(ctx, tx.DB(), res.TableID()); err != nil {
			return err
		}
		if err := res.Cancel(uc.opts.RefundPolicy, uc.clock.Now()); err != nil {
			return markDomain(err)
		}
		if err := tx.Reservations().Cancel(ctx, tx.DB(), res); err != nil {
			return err
		}
		cancelled = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("reservation cancelled",
		"reservation_id", id.String(),
		"refund_status", cancelled.Refund().Status().String(),
		"refund_amount_cents", cancelled.Refund().Amount().Cents())

	// Subscribers see the freed slot before the provider round-trip.
	now := uc.clock.Now()
	publish(ctx, uc.publisher, uc.logger, event.New(event.ReservationCancelled, cancelled, now), event.Metrics(now))

	if !cancelled.NeedsProviderRefund() {
		return resultOf(cancelled), nil
	}

	refunded, err := uc.initiateRefund(ctx, cancelled)
	if err != nil {
		return resultOf(cancelled), err
	}
	return resultOf(refunded), nil
}

func (uc *cancellationCommandsImpl) initiateRefund(ctx context.Context, res *reservation.Reservation) (*reservation.Reservation, error) {
	pctx, cancel := context.WithTimeout(ctx, uc.opts.ProviderTimeout)
	defer cancel()

	status, err := uc.provider.CreateRefund(pctx, shared.RefundRequest{
		OrderID:  res.Payment().OrderID(),
		RefundID: res.Refund().ID(),
		Amount:   res.Refund().Amount(),
		Note:     "Reservation cancelled",
	})
	if err != nil {
		uc.logger.Error("refund initiation failed",
			"reservation_id", res.ID().String(),
			"refund_id", res.Refund().ID(),
			"error", err.Error())
		return nil, errs.Mark(errs.Wrap(err, "refund initiation failed"), errs.ErrProviderUnavailable)
	}

	if status == res.Refund().Status() {
		return res, nil
	}
	stored, _, err := uc.saveRefundStatus(ctx, res.ID(), res.Refund().Status(), status)
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (uc *cancellationCommandsImpl) RefetchRefundStatus(ctx context.Context, id uuid.UUID, actor user.Actor) (*CancellationResult, error) {
	res, err := uc.uow.CommandReads().ReservationByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrReservationNotFound)
	}
	if !actor.CanManage(res.Holder().UserID()) {
		return nil, errs.Mark(ErrNotHolder, errs.ErrUnauthorized)
	}
	if res.Refund().ID() == "" || !res.Payment().IsOnline() {
		return resultOf(res), nil
	}

	pctx, cancel := context.WithTimeout(ctx, uc.opts.ProviderTimeout)
	defer cancel()

	status, err := uc.provider.RefundStatus(pctx, res.Payment().OrderID(), res.Refund().ID())
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "refund status lookup failed"), errs.ErrProviderUnavailable)
	}

	if status == res.Refund().Status() {
		return resultOf(res), nil
	}
	stored, changed, err := uc.saveRefundStatus(ctx, res.ID(), res.Refund().Status(), status)
	if err != nil {
		return nil, err
	}
	if changed {
		publish(ctx, uc.publisher, uc.logger, event.New(event.ReservationUpdated, stored, uc.clock.Now()))
	}
	return resultOf(stored), nil
}

// HandleRefundWebhook applies a verified provider notification. Unknown refunds and repeated
// deliveries are acknowledged without changes.
func (uc *cancellationCommandsImpl) HandleRefundWebhook(ctx context.Context, hook shared.RefundWebhook) error {
	note, err := uc.provider.ParseRefundWebhook(hook)
	if err != nil {
		return errs.Mark(err, errs.ErrInvalidSignature)
	}
	if note.Type != refundWebhookType {
		uc.logger.Debug("ignoring webhook", "type", note.Type)
		return nil
	}

	var (
		updated *reservation.Reservation
		status  = reservation.RefundStatus(note.RefundStatus)
	)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reads().ReservationByRefund(ctx, note.OrderID, note.RefundID)
		if err != nil {
			return err
		}
		if !res.ApplyRefundStatus(status, uc.clock.Now()) {
			return nil
		}
		if err := tx.Reservations().UpdateRefundStatus(ctx, tx.DB(), res); err != nil {
			return err
		}
		updated = res
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			uc.logger.Warn("webhook for unknown refund", "order_id", note.OrderID, "refund_id", note.RefundID)
			return nil
		}
		return err
	}
	if updated == nil {
		return nil
	}

	uc.logger.Info("refund status updated",
		"reservation_id", updated.ID().String(),
		"refund_id", note.RefundID,
		"refund_status", note.RefundStatus)
	publish(ctx, uc.publisher, uc.logger, event.New(event.ReservationUpdated, updated, uc.clock.Now()))
	return nil
}

// saveRefundStatus writes status under the row lock, but only while the row still holds the
// status the caller saw before asking the provider. Anything else was written by a webhook in
// the meantime and is kept. The stored reservation is returned either way.
func (uc *cancellationCommandsImpl) saveRefundStatus(ctx context.Context, id uuid.UUID, seen, status reservation.RefundStatus) (*reservation.Reservation, bool, error) {
	var (
		stored  *reservation.Reservation
		changed bool
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reads().ReservationForUpdate(ctx, id)
		if err != nil {
			return notFound(err, ErrReservationNotFound)
		}
		stored = res
		if res.Refund().Status() != seen {
			uc.logger.Info("refund status already moved on",
				"reservation_id", id.String(),
				"stored", res.Refund().Status().String(),
				"discarded", status.String())
			return nil
		}
		if !res.ApplyRefundStatus(status, uc.clock.Now()) {
			return nil
		}
		if err := tx.Reservations().UpdateRefundStatus(ctx, tx.DB(), res); err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return stored, changed, nil
}

func resultOf(res *reservation.Reservation) *CancellationResult {
	return &CancellationResult{
		Reservation:  res,
		RefundStatus: res.Refund().Status(),
		RefundAmount: res.Refund().Amount(),
	}
}
