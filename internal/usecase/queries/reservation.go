package queries

import (
	"context"
	"time"

	"table-booking/internal/domain/availability"
	"table-booking/internal/domain/user"
	"table-booking/internal/infra"
	"table-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrReservationAccess   = errs.New("reservation access denied")
	ErrTableNotFound       = errs.New("table not found")
	ErrInvalidDate         = errs.New("date must be YYYY-MM-DD")
)

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*ReservationListItem, error)
	FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*ReservationListItem, error)
	// FindActiveByTable returns confirmed reservations on the table intersecting [from, to).
	FindActiveByTable(ctx context.Context, tableID uuid.UUID, from, to time.Time) ([]*ReservationListItem, error)
	TableExists(ctx context.Context, tableID uuid.UUID) (bool, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID, actor user.Actor) (*ReservationView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, actor user.Actor, cursor *Cursor, limit int) ([]*ReservationListItem, *Cursor, error)
	// ListActiveByTableDay is the mirror fetch: every active reservation touching the day,
	// including the buffer on both sides.
	ListActiveByTableDay(ctx context.Context, tableID uuid.UUID, date string) ([]*ReservationListItem, error)
}

type reservationQueriesImpl struct {
	repo   ReservationReadStore
	policy availability.Policy
	loc    *time.Location
}

func NewReservationQueries(repo ReservationReadStore, policy availability.Policy, loc *time.Location) ReservationQueries {
	return &reservationQueriesImpl{repo: repo, policy: policy, loc: loc}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, actor user.Actor) (*ReservationView, error) {
	rv, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(ErrReservationNotFound, errs.ErrNotFound)
		}
		return nil, err
	}
	if !actor.CanManage(rv.UserID) {
		return nil, errs.Mark(ErrReservationAccess, errs.ErrUnauthorized)
	}
	return rv, nil
}

func (q *reservationQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, actor user.Actor, cursor *Cursor, limit int) ([]*ReservationListItem, *Cursor, error) {
	if !actor.CanManage(&userID) {
		return nil, nil, errs.Mark(ErrReservationAccess, errs.ErrUnauthorized)
	}

	limit = ValidateLimit(limit)
	var (
		rows []*ReservationListItem
		err  error
	)
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindByUserFirstPage(ctx, userID, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, errs.Mark(derr, errs.ErrValidation)
		}
		rows, err = q.repo.FindByUserKeyset(ctx, userID, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}

func (q *reservationQueriesImpl) ListActiveByTableDay(ctx context.Context, tableID uuid.UUID, date string) ([]*ReservationListItem, error) {
	day, ok := availability.ParseDay(date, q.loc)
	if !ok {
		return nil, errs.Mark(ErrInvalidDate, errs.ErrValidation)
	}
	if err := ensureTable(ctx, q.repo, tableID); err != nil {
		return nil, err
	}
	from, to := dayWindow(day, q.policy)
	return q.repo.FindActiveByTable(ctx, tableID, from, to)
}

// dayWindow widens the calendar day by the buffer so reservations just outside it still
// shape the day's first and last slots.
func dayWindow(day time.Time, policy availability.Policy) (time.Time, time.Time) {
	return day.Add(-policy.Buffer), day.AddDate(0, 0, 1).Add(policy.Buffer)
}

func ensureTable(ctx context.Context, repo ReservationReadStore, tableID uuid.UUID) error {
	ok, err := repo.TableExists(ctx, tableID)
	if err != nil {
		return err
	}
	if !ok {
		return errs.Mark(ErrTableNotFound, errs.ErrNotFound)
	}
	return nil
}
