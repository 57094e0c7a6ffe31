package queries

import (
	"context"
	"time"

	"table-booking/internal/domain/availability"
	"table-booking/internal/pkg/clock"
	"table-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrAllModeForbidden = errs.New("mode=all is restricted to admins")

type AvailabilityRequest struct {
	TableID uuid.UUID
	Date    string
	// Start selects an end-time query; nil asks for the day's start times.
	Start *time.Time
	// All asks for every end candidate with its validity flag.
	All bool
}

type AvailabilityQueries interface {
	Availability(ctx context.Context, req AvailabilityRequest, isAdmin bool) (*AvailabilityView, error)
}

type availabilityQueriesImpl struct {
	repo   ReservationReadStore
	policy availability.Policy
	clock  clock.Clock
	loc    *time.Location
}

func NewAvailabilityQueries(repo ReservationReadStore, policy availability.Policy, clk clock.Clock, loc *time.Location) AvailabilityQueries {
	return &availabilityQueriesImpl{repo: repo, policy: policy, clock: clk, loc: loc}
}

func (q *availabilityQueriesImpl) Availability(ctx context.Context, req AvailabilityRequest, isAdmin bool) (*AvailabilityView, error) {
	if req.All && !isAdmin {
		return nil, errs.Mark(ErrAllModeForbidden, errs.ErrUnauthorized)
	}
	day, ok := availability.ParseDay(req.Date, q.loc)
	if !ok {
		return nil, errs.Mark(ErrInvalidDate, errs.ErrValidation)
	}
	if err := ensureTable(ctx, q.repo, req.TableID); err != nil {
		return nil, err
	}

	from, to := dayWindow(day, q.policy)
	rows, err := q.repo.FindActiveByTable(ctx, req.TableID, from, to)
	if err != nil {
		return nil, err
	}
	active := make([]availability.Interval, len(rows))
	for i, r := range rows {
		active[i] = availability.Interval{Start: r.Start, End: r.End}
	}

	now := q.clock.Now()
	view := &AvailabilityView{
		TableID:     req.TableID,
		Date:        availability.FormatDay(day),
		FullyBooked: q.policy.IsFullyBooked(day, now, active),
		Starts:      q.policy.AvailableStarts(day, now, active),
	}
	if req.Start == nil {
		return view, nil
	}

	start := req.Start.In(q.loc)
	view.Start = &start
	if req.All {
		for _, c := range q.policy.EndCandidates(start, active) {
			view.EndOptions = append(view.EndOptions, EndOption{End: c.End, Valid: c.Valid})
		}
		return view, nil
	}
	if q.policy.IsStartAvailable(start, now, active) {
		view.Ends = q.policy.ValidEndInstants(start, active)
	}
	return view, nil
}
