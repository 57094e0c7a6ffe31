package readstore

import (
	"context"
	"time"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/infra"
	"table-booking/internal/infra/repository/converter"
	sqlc "table-booking/internal/infra/sqlc/generated"
	"table-booking/internal/pkg/pgconv"
	"table-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationReadQueries interface {
	GetTableByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Tables, error)
	GetReservationByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Reservations, error)
	GetReservationByIDForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Reservations, error)
	GetReservationByRefund(ctx context.Context, db sqlc.DBTX, arg sqlc.GetReservationByRefundParams) (sqlc.Reservations, error)
	GetReservationDetail(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetReservationDetailRow, error)
	FindOverlappingReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.FindOverlappingReservationParams) (sqlc.Reservations, error)
	ListActiveReservationsByTableInRange(ctx context.Context, db sqlc.DBTX, arg sqlc.ListActiveReservationsByTableInRangeParams) ([]sqlc.Reservations, error)
	ListReservationsByUserFirstPage(ctx context.Context, db sqlc.DBTX, arg sqlc.ListReservationsByUserFirstPageParams) ([]sqlc.ListReservationsByUserFirstPageRow, error)
	ListReservationsByUserKeyset(ctx context.Context, db sqlc.DBTX, arg sqlc.ListReservationsByUserKeysetParams) ([]sqlc.ListReservationsByUserKeysetRow, error)
}

type ReservationReadStore struct {
	queries ReservationReadQueries
	db      sqlc.DBTX
}

func NewReservationReadStore(queries ReservationReadQueries, db sqlc.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
	}
}

// Read-side views

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row, err := r.queries.GetReservationDetail(ctx, r.db, id)
	if err != nil {
		return nil, notFoundOr("reservation", "failed to find reservation detail", err)
	}
	return toReservationView(row), nil
}

func (r *ReservationReadStore) FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.ReservationListItem, error) {
	rows, err := r.queries.ListReservationsByUserFirstPage(ctx, r.db, sqlc.ListReservationsByUserFirstPageParams{
		UserID: pgconv.UUIDToPgtype(userID),
		Limit:  limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations first page", err)
	}

	result := make([]*queries.ReservationListItem, len(rows))
	for i, row := range rows {
		result[i] = pageRowToItem(row)
	}
	return result, nil
}

func (r *ReservationReadStore) FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.ReservationListItem, error) {
	rows, err := r.queries.ListReservationsByUserKeyset(ctx, r.db, sqlc.ListReservationsByUserKeysetParams{
		UserID:        pgconv.UUIDToPgtype(userID),
		LastCreatedAt: pgconv.TimeToPgtype(lastCreatedAt),
		LastID:        lastID,
		PageLimit:     limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations keyset", err)
	}

	result := make([]*queries.ReservationListItem, len(rows))
	for i, row := range rows {
		result[i] = pageRowToItem(sqlc.ListReservationsByUserFirstPageRow(row))
	}
	return result, nil
}

func (r *ReservationReadStore) FindActiveByTable(ctx context.Context, tableID uuid.UUID, from, to time.Time) ([]*queries.ReservationListItem, error) {
	rows, err := r.listActive(ctx, tableID, from, to)
	if err != nil {
		return nil, err
	}

	result := make([]*queries.ReservationListItem, len(rows))
	for i, row := range rows {
		result[i] = toListItem(row)
	}
	return result, nil
}

func (r *ReservationReadStore) TableExists(ctx context.Context, tableID uuid.UUID) (bool, error) {
	if _, err := r.queries.GetTableByID(ctx, r.db, tableID); err != nil {
		if pgconv.IsNoRows(err) {
			return false, nil
		}
		return false, infra.WrapRepoErr("failed to find table by ID", err)
	}
	return true, nil
}

// Write-side aggregate loads

func (r *ReservationReadStore) Aggregate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservationByID(ctx, r.db, id)
	if err != nil {
		return nil, notFoundOr("reservation", "failed to find reservation by ID", err)
	}
	return converter.ReservationFromRow(row), nil
}

func (r *ReservationReadStore) AggregateForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservationByIDForUpdate(ctx, r.db, id)
	if err != nil {
		return nil, notFoundOr("reservation", "failed to lock reservation", err)
	}
	return converter.ReservationFromRow(row), nil
}

func (r *ReservationReadStore) AggregateByRefund(ctx context.Context, orderID, refundID string) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservationByRefund(ctx, r.db, sqlc.GetReservationByRefundParams{
		PaymentOrderID: pgconv.StringToPgtype(orderID),
		RefundID:       pgconv.StringToPgtype(refundID),
	})
	if err != nil {
		return nil, notFoundOr("refund", "failed to find reservation by refund", err)
	}
	return converter.ReservationFromRow(row), nil
}

// Overlapping returns nil without error when [start, end) is free on the table.
func (r *ReservationReadStore) Overlapping(ctx context.Context, tableID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.FindOverlappingReservation(ctx, r.db, sqlc.FindOverlappingReservationParams{
		TableID:   tableID,
		StartTime: pgconv.TimeToPgtype(start),
		EndTime:   pgconv.TimeToPgtype(end),
		ExcludeID: pgconv.UUIDPtrToPgtype(excludeID),
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to check overlapping reservations", err)
	}
	return converter.ReservationFromRow(row), nil
}

func (r *ReservationReadStore) listActive(ctx context.Context, tableID uuid.UUID, from, to time.Time) ([]sqlc.Reservations, error) {
	rows, err := r.queries.ListActiveReservationsByTableInRange(ctx, r.db, sqlc.ListActiveReservationsByTableInRangeParams{
		TableID:    tableID,
		RangeStart: pgconv.TimeToPgtype(from),
		RangeEnd:   pgconv.TimeToPgtype(to),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active reservations", err)
	}
	return rows, nil
}

func notFoundOr(what, msg string, err error) error {
	if pgconv.IsNoRows(err) {
		return infra.WrapRepoErr(what+" not found", err, infra.KindNotFound)
	}
	return infra.WrapRepoErr(msg, err)
}

func toListItem(row sqlc.Reservations) *queries.ReservationListItem {
	return &queries.ReservationListItem{
		ID:              row.ID,
		TableID:         row.TableID,
		UserID:          pgconv.UUIDPtrFromPgtype(row.UserID),
		ManualCustomer:  manualView(row.ManualName, row.ManualEmail, row.ManualPhone),
		Start:           pgconv.TimeFromPgtype(row.StartTime),
		End:             pgconv.TimeFromPgtype(row.EndTime),
		DurationMinutes: int(row.DurationMinutes),
		TotalPriceCents: row.TotalPriceCents,
		Status:          row.Status,
		PaymentStatus:   row.PaymentStatus,
		RefundStatus:    row.RefundStatus,
		CreatedAt:       pgconv.TimeFromPgtype(row.CreatedAt),
	}
}

func pageRowToItem(row sqlc.ListReservationsByUserFirstPageRow) *queries.ReservationListItem {
	return &queries.ReservationListItem{
		ID:              row.ID,
		TableID:         row.TableID,
		TableNumber:     int(row.TableNumber),
		UserID:          pgconv.UUIDPtrFromPgtype(row.UserID),
		ManualCustomer:  manualView(row.ManualName, row.ManualEmail, row.ManualPhone),
		Start:           pgconv.TimeFromPgtype(row.StartTime),
		End:             pgconv.TimeFromPgtype(row.EndTime),
		DurationMinutes: int(row.DurationMinutes),
		TotalPriceCents: row.TotalPriceCents,
		Status:          row.Status,
		PaymentStatus:   row.PaymentStatus,
		RefundStatus:    row.RefundStatus,
		CreatedAt:       pgconv.TimeFromPgtype(row.CreatedAt),
	}
}

func toReservationView(row sqlc.GetReservationDetailRow) *queries.ReservationView {
	return &queries.ReservationView{
		ID:                row.ID,
		TableID:           row.TableID,
		TableNumber:       int(row.TableNumber),
		UserID:            pgconv.UUIDPtrFromPgtype(row.UserID),
		UserName:          pgconv.StringPtrFromPgtype(row.UserName),
		UserEmail:         pgconv.StringPtrFromPgtype(row.UserEmail),
		UserPhone:         pgconv.StringPtrFromPgtype(row.UserPhone),
		ManualCustomer:    manualView(row.ManualName, row.ManualEmail, row.ManualPhone),
		Start:             pgconv.TimeFromPgtype(row.StartTime),
		End:               pgconv.TimeFromPgtype(row.EndTime),
		DurationMinutes:   int(row.DurationMinutes),
		TotalPriceCents:   row.TotalPriceCents,
		Status:            row.Status,
		PaymentOrderID:    pgconv.StringPtrFromPgtype(row.PaymentOrderID),
		PaymentStatus:     row.PaymentStatus,
		RefundStatus:      row.RefundStatus,
		RefundAmountCents: row.RefundAmountCents,
		RefundID:          pgconv.StringPtrFromPgtype(row.RefundID),
		InvoiceLink:       pgconv.StringPtrFromPgtype(row.InvoiceLink),
		InvoiceExpiresAt:  pgconv.TimePtrFromPgtype(row.InvoiceExpiresAt),
		CreatedAt:         pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:         pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}

func manualView(name, email, phone pgtype.Text) *queries.ManualCustomerView {
	if !name.Valid {
		return nil
	}
	return &queries.ManualCustomerView{
		Name:  name.String,
		Email: pgconv.StringFromPgtype(email),
		Phone: pgconv.StringFromPgtype(phone),
	}
}
