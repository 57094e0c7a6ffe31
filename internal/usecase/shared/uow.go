package shared

import (
	"context"
	"time"

	"table-booking/internal/domain/reservation"
	sqlc "table-booking/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Reservations() ReservationRepository
	Reads() CommandReads
	DB() sqlc.DBTX
}

// CommandReads load write-side state. Reservation lookups return reconstructed aggregates so
// commands can run domain transitions on them.
type CommandReads interface {
	TableByID(ctx context.Context, id uuid.UUID) (*TableSnapshot, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// ReservationForUpdate row-locks the reservation until the transaction ends.
	ReservationForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	ReservationByRefund(ctx context.Context, orderID, refundID string) (*reservation.Reservation, error)
	// OverlappingReservation returns the first active reservation on the table intersecting
	// [start, end), or nil when the slot is free. excludeID skips the reservation being edited.
	OverlappingReservation(ctx context.Context, tableID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (*reservation.Reservation, error)
	UserContact(ctx context.Context, userID uuid.UUID) (*Contact, error)
}

type ReservationRepository interface {
	// LockTable takes the per-table advisory lock for the rest of the transaction.
	LockTable(ctx context.Context, tx sqlc.DBTX, tableID uuid.UUID) error
	Create(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) error
	UpdateTime(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) error
	Cancel(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) error
	UpdateRefundStatus(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) error
	AttachInvoice(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) error
	Delete(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) error
	ClearExpiredInvoices(ctx context.Context, tx sqlc.DBTX, now time.Time) (int64, error)
}
