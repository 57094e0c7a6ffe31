// Package event defines the lifecycle notifications broadcast to every connected viewer.
// Delivery is at-most-once: there is no acknowledgement and no replay, so consumers that
// reconnect must re-fetch the reservations they mirror.
package event

import (
	"time"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/pkg/ptr"

	"github.com/google/uuid"
)

type Type string

const (
	ReservationCreated   Type = "reservation.created"
	ReservationCancelled Type = "reservation.cancelled"
	ReservationUpdated   Type = "reservation.updated"
	ReservationDeleted   Type = "reservation.deleted"
	MetricsChanged       Type = "metrics.changed"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case ReservationCreated, ReservationCancelled, ReservationUpdated, ReservationDeleted, MetricsChanged:
		return true
	default:
		return false
	}
}

// Event is the wire envelope. Reservation is nil for metrics.changed.
type Event struct {
	Type        Type                `json:"type"`
	Reservation *ReservationPayload `json:"reservation,omitempty"`
	OccurredAt  time.Time           `json:"occurredAt"`
}

// ReservationPayload carries the reservation fields a viewer needs to recompute availability.
// Empty fields mean "unchanged" when merged into an existing mirror entry.
type ReservationPayload struct {
	ID              uuid.UUID       `json:"id"`
	TableID         uuid.UUID       `json:"tableId"`
	UserID          *uuid.UUID      `json:"userId,omitempty"`
	ManualCustomer  *ManualCustomer `json:"manualCustomer,omitempty"`
	Start           *time.Time      `json:"startTime,omitempty"`
	End             *time.Time      `json:"endTime,omitempty"`
	DurationMinutes int             `json:"durationMinutes,omitempty"`
	TotalPrice      float64         `json:"totalPrice,omitempty"`
	Status          string          `json:"status,omitempty"`
	PaymentStatus   string          `json:"paymentStatus,omitempty"`
	RefundStatus    string          `json:"refundStatus,omitempty"`
	RefundAmount    float64         `json:"refundAmount,omitempty"`
	RefundID        string          `json:"refundId,omitempty"`
}

type ManualCustomer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

func New(t Type, r *reservation.Reservation, now time.Time) Event {
	e := Event{Type: t, OccurredAt: now}
	if r == nil {
		return e
	}
	if t == ReservationDeleted {
		e.Reservation = &ReservationPayload{ID: r.ID(), TableID: r.TableID()}
		return e
	}
	e.Reservation = PayloadOf(r)
	return e
}

func Metrics(now time.Time) Event {
	return Event{Type: MetricsChanged, OccurredAt: now}
}

func PayloadOf(r *reservation.Reservation) *ReservationPayload {
	p := &ReservationPayload{
		ID:              r.ID(),
		TableID:         r.TableID(),
		UserID:          r.Holder().UserID(),
		Start:           ptr.To(r.TimeSlot().Start()),
		End:             ptr.To(r.TimeSlot().End()),
		DurationMinutes: r.TimeSlot().DurationMinutes(),
		TotalPrice:      r.Price().Amount(),
		Status:          r.Status().String(),
		PaymentStatus:   r.Payment().Status().String(),
		RefundStatus:    r.Refund().Status().String(),
		RefundAmount:    r.Refund().Amount().Amount(),
		RefundID:        r.Refund().ID(),
	}
	if m := r.Holder().Manual(); m != nil {
		p.ManualCustomer = &ManualCustomer{Name: m.Name, Email: m.Email, Phone: m.Phone}
	}
	return p
}

// IsActive reports whether the payload describes a reservation that still blocks its slot.
func (p *ReservationPayload) IsActive() bool {
	return p.Status == "" || p.Status == reservation.StatusConfirmed.String()
}
