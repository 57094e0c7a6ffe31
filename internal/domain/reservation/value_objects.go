package reservation

import (
	"strings"
	"time"

	"table-booking/internal/domain/availability"
	"table-booking/internal/domain/user"

	"github.com/google/uuid"
)

type TimeSlot struct {
	start time.Time
	end   time.Time
}

// NewTimeSlot validates the half-open interval [start, end). Whether start lies in the past
// depends on who books, so it is checked by the caller.
func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if start.IsZero() || end.IsZero() || !start.Before(end) {
		return TimeSlot{}, ErrInvalidTimeSlot
	}
	if end.Sub(start) < availability.DefaultMinDuration {
		return TimeSlot{}, ErrDurationTooShort
	}
	return TimeSlot{start: start, end: end}, nil
}

// ReconstructTimeSlot rebuilds a persisted slot without re-validating it.
func ReconstructTimeSlot(start, end time.Time) TimeSlot {
	return TimeSlot{start: start, end: end}
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

func (ts TimeSlot) DurationMinutes() int {
	return int(ts.Duration() / time.Minute)
}

func (ts TimeSlot) Hours() float64 {
	return ts.Duration().Hours()
}

func (ts TimeSlot) StartsBefore(t time.Time) bool {
	return ts.start.Before(t)
}

func (ts TimeSlot) Interval() availability.Interval {
	return availability.Interval{Start: ts.start, End: ts.end}
}

// Money is an amount in minor currency units (paise for INR).
type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func (m Money) Cents() int64 {
	return m.cents
}

// Amount is the value in major units with two decimals, as exchanged with the provider.
func (m Money) Amount() float64 {
	return float64(m.cents) / 100.0
}

// Percent returns p percent of m rounded half-up to the nearest minor unit.
func (m Money) Percent(p int64) Money {
	return Money{cents: divRoundHalfUp(m.cents*p, 100)}
}

func divRoundHalfUp(n, d int64) int64 {
	if n < 0 {
		return -divRoundHalfUp(-n, d)
	}
	return (n + d/2) / d
}

// ManualCustomer is a holder entered by an admin on behalf of a walk-in customer.
type ManualCustomer struct {
	Name  string
	Email string
	Phone string
}

// Holder is exactly one of a registered user or a manual customer.
type Holder struct {
	userID *uuid.UUID
	manual *ManualCustomer
}

func UserHolder(id uuid.UUID) (Holder, error) {
	if id == uuid.Nil {
		return Holder{}, ErrInvalidHolder
	}
	return Holder{userID: &id}, nil
}

func ManualHolder(c ManualCustomer) (Holder, error) {
	name, err := user.NewUsername(c.Name)
	if err != nil {
		return Holder{}, ErrInvalidHolder
	}
	email, err := user.NewEmail(c.Email)
	if err != nil {
		return Holder{}, ErrInvalidHolder
	}
	phone := strings.TrimSpace(c.Phone)
	if phone != "" {
		p, err := user.NewPhone(phone)
		if err != nil {
			return Holder{}, ErrInvalidHolder
		}
		phone = p.Value()
	}
	return Holder{manual: &ManualCustomer{Name: name, Email: email.Value(), Phone: phone}}, nil
}

func ReconstructHolder(userID *uuid.UUID, manual *ManualCustomer) Holder {
	return Holder{userID: userID, manual: manual}
}

func (h Holder) UserID() *uuid.UUID {
	return h.userID
}

func (h Holder) Manual() *ManualCustomer {
	return h.manual
}

func (h Holder) IsManual() bool {
	return h.manual != nil
}

func (h Holder) IsZero() bool {
	return h.userID == nil && h.manual == nil
}

type Payment struct {
	orderID   string
	sessionID string
	status    PaymentStatus
}

// OnlinePayment records a provider order whose payment was verified as successful.
func OnlinePayment(orderID, sessionID string) Payment {
	return Payment{orderID: orderID, sessionID: sessionID, status: PaymentSuccess}
}

func CashPayment() Payment {
	return Payment{status: PaymentCash}
}

func ReconstructPayment(orderID, sessionID string, status PaymentStatus) Payment {
	return Payment{orderID: orderID, sessionID: sessionID, status: status}
}

func (p Payment) OrderID() string       { return p.orderID }
func (p Payment) SessionID() string     { return p.sessionID }
func (p Payment) Status() PaymentStatus { return p.status }
func (p Payment) IsCash() bool          { return p.status == PaymentCash }
func (p Payment) IsOnline() bool        { return p.orderID != "" }

type Refund struct {
	status RefundStatus
	amount Money
	id     string
}

func ReconstructRefund(status RefundStatus, amount Money, id string) Refund {
	if status == "" {
		status = RefundNone
	}
	return Refund{status: status, amount: amount, id: id}
}

func (r Refund) Status() RefundStatus { return r.status }
func (r Refund) Amount() Money        { return r.amount }
func (r Refund) ID() string           { return r.id }

// Invoice is a time-limited link to the receipt document.
type Invoice struct {
	Link      string
	ExpiresAt time.Time
}

func (i Invoice) ExpiredAt(now time.Time) bool {
	return !i.ExpiresAt.After(now)
}
