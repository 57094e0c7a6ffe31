package reservation

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeSlot      = errors.New("start must be before end")
	ErrDurationTooShort     = errors.New("reservation must last at least 30 minutes")
	ErrStartInPast          = errors.New("start time cannot be in the past")
	ErrInvalidHolder        = errors.New("reservation needs a registered user or a manual customer with name and email")
	ErrNegativePrice        = errors.New("price cannot be negative")
	ErrAlreadyCancelled     = errors.New("reservation is already cancelled")
	ErrReservationCancelled = errors.New("cancelled reservation cannot be modified")
	ErrInvalidRefundPercent = errors.New("refund percent must be between 0 and 100")
)

type Reservation struct {
	id        uuid.UUID
	tableID   uuid.UUID
	holder    Holder
	timeSlot  TimeSlot
	price     Money
	status    Status
	payment   Payment
	refund    Refund
	invoice   *Invoice
	createdAt time.Time
	updatedAt time.Time
}

func ReconstructReservation(
	id, tableID uuid.UUID,
	holder Holder,
	timeSlot TimeSlot,
	price Money,
	status Status,
	payment Payment,
	refund Refund,
	invoice *Invoice,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:        id,
		tableID:   tableID,
		holder:    holder,
		timeSlot:  timeSlot,
		price:     price,
		status:    status,
		payment:   payment,
		refund:    refund,
		invoice:   invoice,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (r *Reservation) IsActive() bool {
	return r.status == StatusConfirmed
}

func (r *Reservation) IsCancelled() bool {
	return r.status == StatusCancelled
}

// Cancel moves the reservation to its terminal state and decides the refund route:
// cash bookings are settled out of band, online bookings get a fresh refund id and wait for
// the provider, anything else has nothing to refund.
func (r *Reservation) Cancel(policy RefundPolicy, now time.Time) error {
	if r.IsCancelled() {
		return ErrAlreadyCancelled
	}

	amount := policy.AmountFor(r.price)
	switch {
	case r.payment.IsCash():
		r.refund = Refund{status: RefundCash, amount: amount}
	case r.payment.IsOnline():
		r.refund = Refund{status: RefundPending, amount: amount, id: NewRefundID()}
	default:
		r.refund = Refund{status: RefundNone}
	}
	r.status = StatusCancelled
	r.updatedAt = now
	return nil
}

// NeedsProviderRefund reports whether a refund still has to be initiated with the provider.
func (r *Reservation) NeedsProviderRefund() bool {
	return r.IsCancelled() && r.payment.IsOnline() && r.refund.id != ""
}

// ApplyRefundStatus overwrites the stored refund status and reports whether anything changed.
// Applying the same status twice is a no-op.
func (r *Reservation) ApplyRefundStatus(status RefundStatus, now time.Time) bool {
	if status == "" || r.refund.status == status {
		return false
	}
	r.refund.status = status
	r.updatedAt = now
	return true
}

// Reschedule replaces the interval and price. Conflict checks happen before this is called.
func (r *Reservation) Reschedule(slot TimeSlot, price Money, now time.Time) error {
	if r.IsCancelled() {
		return ErrReservationCancelled
	}
	if price.Cents() < 0 {
		return ErrNegativePrice
	}
	r.timeSlot = slot
	r.price = price
	r.updatedAt = now
	return nil
}

func (r *Reservation) AttachInvoice(inv Invoice, now time.Time) {
	r.invoice = &inv
	r.updatedAt = now
}

func (r *Reservation) ID() uuid.UUID        { return r.id }
func (r *Reservation) TableID() uuid.UUID   { return r.tableID }
func (r *Reservation) Holder() Holder       { return r.holder }
func (r *Reservation) TimeSlot() TimeSlot   { return r.timeSlot }
func (r *Reservation) Price() Money         { return r.price }
func (r *Reservation) Status() Status       { return r.status }
func (r *Reservation) Payment() Payment     { return r.payment }
func (r *Reservation) Refund() Refund       { return r.refund }
func (r *Reservation) Invoice() *Invoice    { return r.invoice }
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }

// NewRefundID returns a provider refund id of the form rf_<32 hex>.
func NewRefundID() string {
	return "rf_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
