package reservation

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// PaymentStatus mirrors the provider's order state. CASH marks an admin-entered booking
// settled outside the provider.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
	PaymentCash    PaymentStatus = "CASH"
)

func (s PaymentStatus) String() string {
	return string(s)
}

// RefundStatus is either one of the local states below or whatever status string the
// payment provider reports (SUCCESS, PENDING, CANCELLED, ONHOLD ...).
type RefundStatus string

const (
	RefundNone    RefundStatus = "none"
	RefundPending RefundStatus = "pending"
	RefundCash    RefundStatus = "cash_refund"
)

func (s RefundStatus) String() string {
	return string(s)
}
