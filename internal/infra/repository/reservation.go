package repository

import (
	"context"
	"time"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/infra"
	"table-booking/internal/infra/repository/converter"
	sqlc "table-booking/internal/infra/sqlc/generated"
	"table-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationWriteQueries interface {
	LockTable(ctx context.Context, db sqlc.DBTX, tableKey string) error
	CreateReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReservationParams) error
	UpdateReservationTime(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateReservationTimeParams) (int64, error)
	CancelReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.CancelReservationParams) (int64, error)
	UpdateRefundStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateRefundStatusParams) (int64, error)
	AttachInvoice(ctx context.Context, db sqlc.DBTX, arg sqlc.AttachInvoiceParams) (int64, error)
	DeleteReservation(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int64, error)
	ClearExpiredInvoices(ctx context.Context, db sqlc.DBTX, now pgtype.Timestamptz) (int64, error)
}

type ReservationRepository struct {
	queries ReservationWriteQueries
}

func NewReservationRepository(queries ReservationWriteQueries) *ReservationRepository {
	return &ReservationRepository{
		queries: queries,
	}
}

// LockTable serialises writers per table until the surrounding transaction ends.
func (r *ReservationRepository) LockTable(ctx context.Context, tx sqlc.DBTX, tableID uuid.UUID) error {
	if err := r.queries.LockTable(ctx, tx, tableID.String()); err != nil {
		return infra.WrapRepoErr("failed to lock table", err)
	}
	return nil
}

func (r *ReservationRepository) Create(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) error {
	if err := r.queries.CreateReservation(ctx, tx, converter.ReservationToInfra(res)); err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) UpdateTime(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) error {
	slot := res.TimeSlot()
	n, err := r.queries.UpdateReservationTime(ctx, tx, sqlc.UpdateReservationTimeParams{
		ID:              res.ID(),
		StartTime:       pgconv.TimeToPgtype(slot.Start()),
		EndTime:         pgconv.TimeToPgtype(slot.End()),
		DurationMinutes: int32(slot.DurationMinutes()), // #nosec G115 -- bounded by the day grid
		TotalPriceCents: res.Price().Cents(),
		UpdatedAt:       pgconv.TimeToPgtype(res.UpdatedAt()),
	})
	return affected("failed to update reservation time", n, err)
}

func (r *ReservationRepository) Cancel(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) error {
	n, err := r.queries.CancelReservation(ctx, tx, sqlc.CancelReservationParams{
		ID:                res.ID(),
		RefundStatus:      res.Refund().Status().String(),
		RefundAmountCents: res.Refund().Amount().Cents(),
		RefundID:          pgconv.NullableText(res.Refund().ID()),
		UpdatedAt:         pgconv.TimeToPgtype(res.UpdatedAt()),
	})
	return affected("failed to cancel reservation", n, err)
}

func (r *ReservationRepository) UpdateRefundStatus(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) error {
	n, err := r.queries.UpdateRefundStatus(ctx, tx, sqlc.UpdateRefundStatusParams{
		ID:           res.ID(),
		RefundStatus: res.Refund().Status().String(),
		UpdatedAt:    pgconv.TimeToPgtype(res.UpdatedAt()),
	})
	return affected("failed to update refund status", n, err)
}

func (r *ReservationRepository) AttachInvoice(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) error {
	inv := res.Invoice()
	if inv == nil {
		return nil
	}
	n, err := r.queries.AttachInvoice(ctx, tx, sqlc.AttachInvoiceParams{
		ID:               res.ID(),
		InvoiceLink:      pgconv.StringToPgtype(inv.Link),
		InvoiceExpiresAt: pgconv.TimeToPgtype(inv.ExpiresAt),
		UpdatedAt:        pgconv.TimeToPgtype(res.UpdatedAt()),
	})
	return affected("failed to attach invoice", n, err)
}

func (r *ReservationRepository) Delete(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) error {
	n, err := r.queries.DeleteReservation(ctx, tx, id)
	return affected("failed to delete reservation", n, err)
}

func (r *ReservationRepository) ClearExpiredInvoices(ctx context.Context, tx sqlc.DBTX, now time.Time) (int64, error) {
	n, err := r.queries.ClearExpiredInvoices(ctx, tx, pgconv.TimeToPgtype(now))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to clear expired invoices", err)
	}
	return n, nil
}

func affected(msg string, n int64, err error) error {
	if err != nil {
		return infra.WrapRepoErr(msg, err)
	}
	if n == 0 {
		return infra.WrapRepoErr(msg+": no matching row", nil, infra.KindNotFound)
	}
	return nil
}
