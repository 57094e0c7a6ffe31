package commands

import (
	"context"
	"log/slog"
	"time"

	"table-booking/internal/domain/availability"
	"table-booking/internal/domain/event"
	"table-booking/internal/domain/reservation"
	"table-booking/internal/domain/table"
	"table-booking/internal/domain/user"
	"table-booking/internal/infra"
	"table-booking/internal/pkg/clock"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type AdmitInput struct {
	TableID uuid.UUID
	// UserID and Manual are honoured for admins only; customers always book for themselves.
	UserID  *uuid.UUID
	Manual  *reservation.ManualCustomer
	Start   time.Time
	End     time.Time
	Payment *PaymentProof
}

type PaymentProof struct {
	OrderID   string
	SessionID string
}

type UpdateTimeInput struct {
	Start time.Time
	End   time.Time
}

type ReservationCommands interface {
	Admit(ctx context.Context, in AdmitInput, actor user.Actor) (*reservation.Reservation, error)
	UpdateTime(ctx context.Context, id uuid.UUID, in UpdateTimeInput) (*reservation.Reservation, error)
	HardDelete(ctx context.Context, id uuid.UUID) error
}

type reservationCommandsImpl struct {
	uow       shared.UnitOfWork
	factory   *reservation.Factory
	provider  shared.PaymentProvider
	publisher shared.EventPublisher
	receipts  shared.ReceiptQueue
	clock     clock.Clock
	policy    availability.Policy
	loc       *time.Location
	opts      Options
	logger    *slog.Logger
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	factory *reservation.Factory,
	provider shared.PaymentProvider,
	publisher shared.EventPublisher,
	receipts shared.ReceiptQueue,
	clk clock.Clock,
	policy availability.Policy,
	loc *time.Location,
	opts Options,
	logger *slog.Logger,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:       uow,
		factory:   factory,
		provider:  provider,
		publisher: publisher,
		receipts:  receipts,
		clock:     clk,
		policy:    policy,
		loc:       loc,
		opts:      opts,
		logger:    logger,
	}
}

// Admit is the only way a reservation comes into existence. The read-side pre-check gives a
// fast answer; the authoritative check runs again under the per-table lock, and the exclusion
// constraint backs both. A provider order backs at most one reservation, enforced by a unique
// index on the order id.
func (uc *reservationCommandsImpl) Admit(ctx context.Context, in AdmitInput, actor user.Actor) (*reservation.Reservation, error) {
	slot, err := reservation.NewTimeSlot(in.Start, in.End)
	if err != nil {
		return nil, markDomain(err)
	}
	if !actor.IsAdmin() {
		if slot.StartsBefore(uc.clock.Now()) {
			return nil, markDomain(reservation.ErrStartInPast)
		}
		if !uc.policy.OnGrid(slot.Start().In(uc.loc), slot.End()) {
			return nil, errs.Mark(ErrOffGrid, errs.ErrValidation)
		}
	}

	holder, err := resolveHolder(in, actor)
	if err != nil {
		return nil, err
	}

	tbl, err := loadTable(ctx, uc.uow.CommandReads(), in.TableID)
	if err != nil {
		return nil, err
	}
	if err := tbl.EnsureBookable(); err != nil {
		return nil, markDomain(err)
	}

	existing, err := uc.uow.CommandReads().OverlappingReservation(ctx, tbl.ID(), slot.Start(), slot.End(), nil)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &ConflictError{Existing: existing}
	}

	price, err := uc.factory.Price(tbl, slot)
	if err != nil {
		return nil, markDomain(err)
	}
	payment, err := uc.verifyPayment(ctx, in.Payment, actor, orderBinding{
		tableID:    tbl.ID(),
		slot:       slot,
		price:      price,
		customerID: actor.ID,
	})
	if err != nil {
		return nil, err
	}

	res, err := uc.factory.CreateReservation(tbl, holder, slot, payment)
	if err != nil {
		return nil, markDomain(err)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Reservations().LockTable(ctx, tx.DB(), tbl.ID()); err != nil {
			return err
		}
		existing, err := tx.Reads().OverlappingReservation(ctx, tbl.ID(), slot.Start(), slot.End(), nil)
		if err != nil {
			return err
		}
		if existing != nil {
			return &ConflictError{Existing: existing}
		}
		return tx.Reservations().Create(ctx, tx.DB(), res)
	})
	if infra.IsKind(err, infra.KindDuplicateKey) {
		return nil, errs.Mark(errs.Wrapf(ErrOrderAlreadyUsed, "order %s", payment.OrderID()), errs.ErrPaymentRequired)
	}
	if err != nil {
		return nil, uc.conflictOrErr(ctx, err, tbl.ID(), slot, nil)
	}

	uc.logger.Info("reservation admitted",
		"reservation_id", res.ID().String(),
		"table_id", tbl.ID().String(),
		"start", slot.Start(),
		"end", slot.End(),
		"payment_status", res.Payment().Status().String())

	now := uc.clock.Now()
	publish(ctx, uc.publisher, uc.logger, event.New(event.ReservationCreated, res, now), event.Metrics(now))
	uc.enqueueReceipt(res.ID())
	return res, nil
}

// UpdateTime is the admin correction path. Unlike a fresh admission it skips the payment
// step, but it re-runs the overlap check against every other active reservation.
func (uc *reservationCommandsImpl) UpdateTime(ctx context.Context, id uuid.UUID, in UpdateTimeInput) (*reservation.Reservation, error) {
	slot, err := reservation.NewTimeSlot(in.Start, in.End)
	if err != nil {
		return nil, markDomain(err)
	}

	current, err := uc.uow.CommandReads().ReservationByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrReservationNotFound)
	}
	if current.IsCancelled() {
		return nil, markDomain(reservation.ErrReservationCancelled)
	}

	tbl, err := loadTable(ctx, uc.uow.CommandReads(), current.TableID())
	if err != nil {
		return nil, err
	}
	price, err := uc.factory.Price(tbl, slot)
	if err != nil {
		return nil, markDomain(err)
	}

	var updated *reservation.Reservation
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Reservations().LockTable(ctx, tx.DB(), current.TableID()); err != nil {
			return err
		}
		res, err := tx.Reads().ReservationForUpdate(ctx, id)
		if err != nil {
			return notFound(err, ErrReservationNotFound)
		}
		existing, err := tx.Reads().OverlappingReservation(ctx, res.TableID(), slot.Start(), slot.End(), &id)
		if err != nil {
			return err
		}
		if existing != nil {
			return &ConflictError{Existing: existing}
		}
		if err := res.Reschedule(slot, price, uc.clock.Now()); err != nil {
			return markDomain(err)
		}
		if err := tx.Reservations().UpdateTime(ctx, tx.DB(), res); err != nil {
			return notFound(err, ErrReservationNotFound)
		}
		updated = res
		return nil
	})
	if err != nil {
		return nil, uc.conflictOrErr(ctx, err, current.TableID(), slot, &id)
	}

	now := uc.clock.Now()
	publish(ctx, uc.publisher, uc.logger, event.New(event.ReservationUpdated, updated, now), event.Metrics(now))
	return updated, nil
}

func (uc *reservationCommandsImpl) HardDelete(ctx context.Context, id uuid.UUID) error {
	var deleted *reservation.Reservation
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reads().ReservationForUpdate(ctx, id)
		if err != nil {
			return notFound(err, ErrReservationNotFound)
		}
		if err := tx.Reservations().Delete(ctx, tx.DB(), id); err != nil {
			return notFound(err, ErrReservationNotFound)
		}
		deleted = res
		return nil
	})
	if err != nil {
		return err
	}

	uc.logger.Warn("reservation hard-deleted", "reservation_id", id.String(), "table_id", deleted.TableID().String())

	now := uc.clock.Now()
	publish(ctx, uc.publisher, uc.logger, event.New(event.ReservationDeleted, deleted, now), event.Metrics(now))
	return nil
}

// verifyPayment accepts an order only when it has settled and was opened by the actor for
// exactly this table, interval and price.
func (uc *reservationCommandsImpl) verifyPayment(ctx context.Context, proof *PaymentProof, actor user.Actor, binding orderBinding) (reservation.Payment, error) {
	if proof == nil || proof.OrderID == "" {
		if actor.IsAdmin() {
			return reservation.CashPayment(), nil
		}
		return reservation.Payment{}, errs.Mark(ErrPaymentProofMissing, errs.ErrPaymentRequired)
	}

	ctx, cancel := context.WithTimeout(ctx, uc.opts.ProviderTimeout)
	defer cancel()

	status, err := uc.provider.OrderPaymentStatus(ctx, proof.OrderID)
	if err != nil {
		uc.logger.Warn("payment verification failed", "order_id", proof.OrderID, "error", err.Error())
		return reservation.Payment{}, errs.Mark(err, errs.ErrProviderUnavailable)
	}
	if status != shared.PaymentStatusSuccess {
		return reservation.Payment{}, errs.Mark(errs.Wrapf(ErrPaymentNotConfirmed, "order %s is %s", proof.OrderID, status), errs.ErrPaymentRequired)
	}

	order, err := uc.provider.LookupOrder(ctx, proof.OrderID)
	if err != nil {
		uc.logger.Warn("order lookup failed", "order_id", proof.OrderID, "error", err.Error())
		return reservation.Payment{}, errs.Mark(err, errs.ErrProviderUnavailable)
	}
	if err := binding.check(order); err != nil {
		uc.logger.Warn("payment order rejected", "order_id", proof.OrderID, "error", err.Error())
		return reservation.Payment{}, errs.Mark(err, errs.ErrPaymentRequired)
	}
	return reservation.OnlinePayment(proof.OrderID, proof.SessionID), nil
}

// conflictOrErr turns an exclusion-constraint violation into a ConflictError, reading back the
// reservation that won the race when possible.
func (uc *reservationCommandsImpl) conflictOrErr(ctx context.Context, err error, tableID uuid.UUID, slot reservation.TimeSlot, excludeID *uuid.UUID) error {
	if !infra.IsKind(err, infra.KindConflict) {
		return err
	}
	existing, readErr := uc.uow.CommandReads().OverlappingReservation(ctx, tableID, slot.Start(), slot.End(), excludeID)
	if readErr != nil {
		uc.logger.Warn("failed to read conflicting reservation", "table_id", tableID.String(), "error", readErr.Error())
	}
	return &ConflictError{Existing: existing}
}

// enqueueReceipt is fire-and-forget: the reservation is already committed.
func (uc *reservationCommandsImpl) enqueueReceipt(id uuid.UUID) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), uc.opts.ReceiptTimeout)
		defer cancel()
		if err := uc.receipts.Enqueue(ctx, shared.ReceiptJob{ReservationID: id}); err != nil {
			uc.logger.Error("failed to enqueue receipt", "reservation_id", id.String(), "error", err.Error())
		}
	}()
}

func resolveHolder(in AdmitInput, actor user.Actor) (reservation.Holder, error) {
	if !actor.IsAdmin() {
		h, err := reservation.UserHolder(actor.ID)
		return h, markDomain(err)
	}
	switch {
	case in.Manual != nil:
		h, err := reservation.ManualHolder(*in.Manual)
		return h, markDomain(err)
	case in.UserID != nil:
		h, err := reservation.UserHolder(*in.UserID)
		return h, markDomain(err)
	default:
		return reservation.Holder{}, errs.Mark(ErrHolderRequired, errs.ErrValidation)
	}
}

func loadTable(ctx context.Context, reads shared.CommandReads, id uuid.UUID) (*table.Table, error) {
	snap, err := reads.TableByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrTableNotFound)
	}
	return table.ReconstructTable(snap.ID, snap.Number, snap.HourlyRateCents, snap.IsAvailable, time.Time{}, time.Time{}), nil
}

func publish(ctx context.Context, publisher shared.EventPublisher, logger *slog.Logger, events ...event.Event) {
	for _, e := range events {
		if err := publisher.Publish(ctx, e); err != nil {
			logger.Warn("failed to publish event", "type", e.Type.String(), "error", err.Error())
		}
	}
}
