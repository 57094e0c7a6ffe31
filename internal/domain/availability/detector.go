package availability

import (
	"slices"
	"time"
)

// Interval is the half-open span [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && i.End.After(o.Start)
}

func (i Interval) Widen(d time.Duration) Interval {
	return Interval{Start: i.Start.Add(-d), End: i.End.Add(d)}
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Candidate is an end instant together with whether it can be booked.
type Candidate struct {
	End   time.Time
	Valid bool
}

// IsStartAvailable reports whether a booking may start at instant: it must not be in the past
// and must not fall inside any buffered reservation window.
func (p Policy) IsStartAvailable(instant, now time.Time, active []Interval) bool {
	if instant.Before(now) {
		return false
	}
	for _, r := range active {
		if r.Widen(p.Buffer).Contains(instant) {
			return false
		}
	}
	return true
}

// AvailableStarts filters the day's grid with IsStartAvailable.
func (p Policy) AvailableStarts(day, now time.Time, active []Interval) []time.Time {
	var starts []time.Time
	for _, slot := range p.Grid(day) {
		if p.IsStartAvailable(slot, now, active) {
			starts = append(starts, slot)
		}
	}
	return starts
}

// ValidEndInstants returns the contiguous run of end instants bookable from start.
func (p Policy) ValidEndInstants(start time.Time, active []Interval) []time.Time {
	var ends []time.Time
	for _, c := range p.EndCandidates(start, active) {
		if !c.Valid {
			break
		}
		ends = append(ends, c.End)
	}
	return ends
}

// EndCandidates returns every end instant after start that satisfies the minimum duration,
// flagged valid up to the first blocking point. Once a candidate is blocked every later one
// is blocked too: the bookable range never resumes past a reservation.
func (p Policy) EndCandidates(start time.Time, active []Interval) []Candidate {
	if start.IsZero() {
		return nil
	}

	buffered := p.buffered(active)
	next, hasNext := firstStartingAfter(buffered, start)

	var (
		candidates []Candidate
		blocked    bool
	)
	for _, slot := range p.Grid(start) {
		if !start.Before(slot) || slot.Sub(start) < p.MinDuration {
			continue
		}
		if !blocked && hasNext && slot.After(next.Start) {
			blocked = true
		}
		if !blocked && hitsAnyBuffer(start, slot, buffered) {
			blocked = true
		}
		candidates = append(candidates, Candidate{End: slot, Valid: !blocked})
	}
	return candidates
}

// IsFullyBooked reports whether no (start, end) pair survives anywhere on the day's grid.
func (p Policy) IsFullyBooked(day, now time.Time, active []Interval) bool {
	for _, start := range p.Grid(day) {
		if !p.IsStartAvailable(start, now, active) {
			continue
		}
		if len(p.ValidEndInstants(start, active)) > 0 {
			return false
		}
	}
	return true
}

// FindOverlap is the commit-time check: plain interval overlap, no buffer.
// It returns the index in active of the first colliding interval.
func FindOverlap(candidate Interval, active []Interval) (int, bool) {
	for i, r := range active {
		if candidate.Overlaps(r) {
			return i, true
		}
	}
	return -1, false
}

func (p Policy) buffered(active []Interval) []Interval {
	out := make([]Interval, len(active))
	for i, r := range active {
		out[i] = r.Widen(p.Buffer)
	}
	slices.SortFunc(out, func(a, b Interval) int { return a.Start.Compare(b.Start) })
	return out
}

func firstStartingAfter(sorted []Interval, t time.Time) (Interval, bool) {
	for _, b := range sorted {
		if b.Start.After(t) {
			return b, true
		}
	}
	return Interval{}, false
}

func hitsAnyBuffer(start, end time.Time, buffered []Interval) bool {
	for _, b := range buffered {
		startInside := !start.Before(b.Start) && start.Before(b.End)
		endInside := end.After(b.Start) && !end.After(b.End)
		encloses := !start.After(b.Start) && !end.Before(b.End)
		if startInside || endInside || encloses {
			return true
		}
	}
	return false
}
