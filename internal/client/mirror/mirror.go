// Package mirror keeps a viewer-side copy of the active reservations and applies lifecycle
// events to it. Applying the same event twice leaves the mirror unchanged.
package mirror

import (
	"slices"
	"sync"
	"time"

	"table-booking/internal/domain/availability"
	"table-booking/internal/domain/event"
	"table-booking/internal/domain/reservation"
	"table-booking/internal/pkg/ptr"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type Option func(*Mirror)

// WithTable limits the mirror to a single table. Events for other tables are ignored.
func WithTable(id uuid.UUID) Option {
	return func(m *Mirror) { m.tableID = &id }
}

// WithMetricsCallback registers fn to run on every metrics.changed event.
func WithMetricsCallback(fn func()) Option {
	return func(m *Mirror) { m.onMetrics = fn }
}

type Mirror struct {
	mu        sync.RWMutex
	entries   []event.ReservationPayload
	tableID   *uuid.UUID
	onMetrics func()
}

func New(opts ...Option) *Mirror {
	m := &Mirror{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Apply folds e into the mirror and reports whether the mirrored rows changed.
func (m *Mirror) Apply(e event.Event) bool {
	if e.Type == event.MetricsChanged {
		if m.onMetrics != nil {
			m.onMetrics()
		}
		return false
	}
	p := e.Reservation
	if p == nil || p.ID == uuid.Nil || !m.wants(p) {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch e.Type {
	case event.ReservationCreated:
		return m.create(*p)
	case event.ReservationCancelled:
		return m.cancel(*p)
	case event.ReservationUpdated:
		return m.merge(*p)
	case event.ReservationDeleted:
		return m.remove(p.ID)
	default:
		return false
	}
}

// Replace discards the mirrored rows and installs items. It is the full re-fetch performed
// after a reconnect, since events missed while disconnected are never replayed.
func (m *Mirror) Replace(items []event.ReservationPayload) {
	entries := make([]event.ReservationPayload, 0, len(items))
	for _, it := range items {
		if it.ID == uuid.Nil || !m.wants(&it) {
			continue
		}
		entries = append(entries, cloneRow(it))
	}

	m.mu.Lock()
	m.entries = entries
	m.mu.Unlock()
}

// Snapshot returns a copy of the mirrored rows in arrival order.
func (m *Mirror) Snapshot() []event.ReservationPayload {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.entries)
}

func (m *Mirror) Get(id uuid.UUID) (event.ReservationPayload, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.indexOf(id); i >= 0 {
		return m.entries[i], true
	}
	return event.ReservationPayload{}, false
}

// ActiveIntervals returns the slots still held on tableID, ready for the availability detector.
func (m *Mirror) ActiveIntervals(tableID uuid.UUID) []availability.Interval {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []availability.Interval
	for _, e := range m.entries {
		if e.TableID != tableID || !e.IsActive() || e.Start == nil || e.End == nil {
			continue
		}
		out = append(out, availability.Interval{Start: *e.Start, End: *e.End})
	}
	return out
}

func (m *Mirror) wants(p *event.ReservationPayload) bool {
	return m.tableID == nil || p.TableID == *m.tableID
}

func (m *Mirror) create(p event.ReservationPayload) bool {
	if m.indexOf(p.ID) >= 0 {
		return false
	}
	m.entries = append(m.entries, cloneRow(p))
	return true
}

func (m *Mirror) cancel(p event.ReservationPayload) bool {
	i := m.indexOf(p.ID)
	if i < 0 {
		return false
	}
	cur := &m.entries[i]
	before := *cur

	cur.Status = reservation.StatusCancelled.String()
	if p.RefundStatus != "" {
		cur.RefundStatus = p.RefundStatus
	}
	if p.RefundAmount != 0 {
		cur.RefundAmount = p.RefundAmount
	}
	if p.RefundID != "" {
		cur.RefundID = p.RefundID
	}
	return !sameRow(before, *cur)
}

func (m *Mirror) merge(p event.ReservationPayload) bool {
	i := m.indexOf(p.ID)
	if i < 0 {
		return false
	}
	before := m.entries[i]
	merged := cloneRow(before)
	if err := copier.CopyWithOption(&merged, &p, copier.Option{IgnoreEmpty: true}); err != nil {
		return false
	}
	m.entries[i] = merged
	return !sameRow(before, merged)
}

func (m *Mirror) remove(id uuid.UUID) bool {
	i := m.indexOf(id)
	if i < 0 {
		return false
	}
	m.entries = slices.Delete(m.entries, i, i+1)
	return true
}

func (m *Mirror) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(m.entries, func(e event.ReservationPayload) bool { return e.ID == id })
}

// cloneRow detaches the pointer fields so merges never write through to caller-owned values.
func cloneRow(p event.ReservationPayload) event.ReservationPayload {
	if p.Start != nil {
		p.Start = ptr.To(*p.Start)
	}
	if p.End != nil {
		p.End = ptr.To(*p.End)
	}
	if p.UserID != nil {
		p.UserID = ptr.To(*p.UserID)
	}
	if p.ManualCustomer != nil {
		p.ManualCustomer = ptr.To(*p.ManualCustomer)
	}
	return p
}

func sameRow(a, b event.ReservationPayload) bool {
	return a.Status == b.Status &&
		a.PaymentStatus == b.PaymentStatus &&
		a.RefundStatus == b.RefundStatus &&
		a.RefundAmount == b.RefundAmount &&
		a.RefundID == b.RefundID &&
		a.TotalPrice == b.TotalPrice &&
		a.DurationMinutes == b.DurationMinutes &&
		sameInstant(a.Start, b.Start) &&
		sameInstant(a.End, b.End)
}

func sameInstant(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
