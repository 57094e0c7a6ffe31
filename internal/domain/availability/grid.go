// Package availability holds the slot grid and the buffer-aware conflict rules for a single
// table. Everything here is pure: no I/O, no clock access. Callers pass "now" explicitly.
// Both the server (availability queries, admission) and the client mirror use this package.
package availability

import (
	"slices"
	"time"
)

const (
	DefaultStep        = 30 * time.Minute
	DefaultBuffer      = 30 * time.Minute
	DefaultMinDuration = 30 * time.Minute

	defaultOpenMinute  = 8 * 60
	defaultCloseMinute = 23*60 + 30

	dayLayout = "2006-01-02"
)

// Policy describes the operating hours and spacing rules of a table.
// OpenMinute and CloseMinute are minutes after local midnight; CloseMinute is inclusive.
type Policy struct {
	Step        time.Duration
	Buffer      time.Duration
	MinDuration time.Duration
	OpenMinute  int
	CloseMinute int
}

func DefaultPolicy() Policy {
	return Policy{
		Step:        DefaultStep,
		Buffer:      DefaultBuffer,
		MinDuration: DefaultMinDuration,
		OpenMinute:  defaultOpenMinute,
		CloseMinute: defaultCloseMinute,
	}
}

// ParseDay parses YYYY-MM-DD in loc. The boolean is false for anything unparsable.
func ParseDay(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	day, err := time.ParseInLocation(dayLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

// FormatDay is the inverse of ParseDay.
func FormatDay(day time.Time) string {
	return day.Format(dayLayout)
}

// Grid returns the ordered, deduplicated bookable instants of the calendar day containing
// day, evaluated in day's location. The closing instant is always the last element.
// A zero day or an unusable policy yields nil.
func (p Policy) Grid(day time.Time) []time.Time {
	stepMinutes := int(p.Step / time.Minute)
	if day.IsZero() || stepMinutes <= 0 || p.OpenMinute < 0 || p.CloseMinute < p.OpenMinute {
		return nil
	}

	y, m, d := day.Date()
	loc := day.Location()

	// Wall-clock construction keeps every instant on the grid even across DST shifts.
	slots := make([]time.Time, 0, (p.CloseMinute-p.OpenMinute)/stepMinutes+2)
	for minute := p.OpenMinute; minute <= p.CloseMinute; minute += stepMinutes {
		slots = appendAscending(slots, time.Date(y, m, d, 0, minute, 0, 0, loc))
	}

	closing := time.Date(y, m, d, 0, p.CloseMinute, 0, 0, loc)
	if len(slots) == 0 || !slots[len(slots)-1].Equal(closing) {
		slots = appendAscending(slots, closing)
	}
	return slots
}

// OnGrid reports whether start and end are both bookable instants of start's day, evaluated in
// start's location.
func (p Policy) OnGrid(start, end time.Time) bool {
	grid := p.Grid(start)
	return hasInstant(grid, start) && hasInstant(grid, end)
}

func hasInstant(grid []time.Time, t time.Time) bool {
	_, ok := slices.BinarySearchFunc(grid, t, time.Time.Compare)
	return ok
}

func appendAscending(slots []time.Time, t time.Time) []time.Time {
	if n := len(slots); n > 0 && !t.After(slots[n-1]) {
		return slots
	}
	return append(slots, t)
}
