package uow

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/infra/readstore"
	"table-booking/internal/infra/repository"
	sqlc "table-booking/internal/infra/sqlc/generated"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Codes that mean "try the whole transaction again": concurrent admissions on the same table
// can deadlock on the advisory lock and the overlap check, or time out waiting for it.
var retryableCodes = map[string]bool{
	"40001": true, // serialization_failure
	"40P01": true, // deadlock_detected
	"55P03": true, // lock_not_available
}

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type retryPolicy struct {
	attempts int
	base     time.Duration
}

// wait doubles per attempt with up to 20% jitter so contending admissions spread out.
func (p retryPolicy) wait(attempt int) time.Duration {
	d := p.base << attempt
	return d + rand.N(d/5+1)
}

type PostgresUoW struct {
	pool  *pgxpool.Pool
	q     *sqlc.Queries
	retry retryPolicy
}

func NewPostgresUoW(pool *pgxpool.Pool, q *sqlc.Queries) shared.UnitOfWork {
	return &PostgresUoW{
		pool:  pool,
		q:     q,
		retry: retryPolicy{attempts: 4, base: 50 * time.Millisecond},
	}
}

// Within runs fn at ReadCommitted. Overlap safety comes from the table lock and the
// exclusion constraint, not from the isolation level.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	var lastErr error
	for attempt := 0; attempt < u.retry.attempts; attempt++ {
		lastErr = u.attempt(ctx, fn)
		if lastErr == nil || !isRetryable(lastErr) {
			return lastErr
		}

		wait := u.retry.wait(attempt)
		slog.Warn("retrying reservation transaction",
			"attempt", attempt+1,
			"wait_ms", wait.Milliseconds(),
			"error", lastErr.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	slog.Error("transaction failed after max retries", "attempts", u.retry.attempts, "error", lastErr.Error())
	return errs.Mark(lastErr, errMaxRetriesExceeded)
}

func (u *PostgresUoW) attempt(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	if err := fn(ctx, &pgTx{dbtx: pgxTx, uow: u}); err != nil {
		rollback(ctx, pgxTx)
		return err
	}
	if err := pgxTx.Commit(ctx); err != nil {
		rollback(ctx, pgxTx)
		return errs.Mark(err, errTransactionCommit)
	}
	return nil
}

// WithinReadOnly gives availability queries one snapshot across tables and reservations.
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer rollback(ctx, pgxTx)

	if err := fn(ctx, pgxTx); err != nil {
		return err
	}
	return pgxTx.Commit(ctx)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	return fn(ctx, u.pool)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{uow: u, dbtx: u.pool}
}

func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		slog.Warn("rollback failed", "error", err.Error())
	}
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && retryableCodes[pgErr.Code]
}

type pgTx struct {
	dbtx sqlc.DBTX
	uow  *PostgresUoW

	// Lazy-initialized
	reservationRepo shared.ReservationRepository
	commandReads    shared.CommandReads
}

func (t *pgTx) DB() sqlc.DBTX {
	return t.dbtx
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	if t.reservationRepo == nil {
		t.reservationRepo = repository.NewReservationRepository(t.uow.q)
	}
	return t.reservationRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{
			uow:  t.uow,
			dbtx: t.dbtx,
		}
	}
	return t.commandReads
}

type commandReads struct {
	uow  *PostgresUoW
	dbtx sqlc.DBTX

	// Lazy-initialized readstores
	tableStore       *readstore.TableReadStore
	reservationStore *readstore.ReservationReadStore
	userStore        *readstore.UserReadStore
}

func (r *commandReads) tables() *readstore.TableReadStore {
	if r.tableStore == nil {
		r.tableStore = readstore.NewTableReadStore(r.uow.q, r.dbtx)
	}
	return r.tableStore
}

func (r *commandReads) reservations() *readstore.ReservationReadStore {
	if r.reservationStore == nil {
		r.reservationStore = readstore.NewReservationReadStore(r.uow.q, r.dbtx)
	}
	return r.reservationStore
}

func (r *commandReads) TableByID(ctx context.Context, id uuid.UUID) (*shared.TableSnapshot, error) {
	tbl, err := r.tables().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	snapshot := &shared.TableSnapshot{
		ID:              tbl.ID,
		Number:          tbl.Number,
		HourlyRateCents: tbl.HourlyRateCents,
		IsAvailable:     tbl.IsAvailable,
	}
	return snapshot, nil
}

func (r *commandReads) ReservationByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return r.reservations().Aggregate(ctx, id)
}

func (r *commandReads) ReservationForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return r.reservations().AggregateForUpdate(ctx, id)
}

func (r *commandReads) ReservationByRefund(ctx context.Context, orderID, refundID string) (*reservation.Reservation, error) {
	return r.reservations().AggregateByRefund(ctx, orderID, refundID)
}

func (r *commandReads) OverlappingReservation(ctx context.Context, tableID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (*reservation.Reservation, error) {
	return r.reservations().Overlapping(ctx, tableID, start, end, excludeID)
}

func (r *commandReads) UserContact(ctx context.Context, userID uuid.UUID) (*shared.Contact, error) {
	if r.userStore == nil {
		r.userStore = readstore.NewUserReadStore(r.uow.q, r.dbtx)
	}
	return r.userStore.FindContact(ctx, userID)
}
