package shared

import (
	"context"

	"table-booking/internal/domain/event"
	"table-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

// EventPublisher broadcasts lifecycle events. Implementations must not block on slow
// subscribers; a returned error is logged by the caller and never fails the operation.
type EventPublisher interface {
	Publish(ctx context.Context, e event.Event) error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, event.Event) error { return nil }

// AggregatedPaymentStatus summarises every payment attempt on a provider order.
type AggregatedPaymentStatus string

const (
	PaymentStatusSuccess      AggregatedPaymentStatus = "SUCCESS"
	PaymentStatusPending      AggregatedPaymentStatus = "PENDING"
	PaymentStatusFailed       AggregatedPaymentStatus = "FAILED"
	PaymentStatusNotAttempted AggregatedPaymentStatus = "NOT_ATTEMPTED"
)

type OrderRequest struct {
	OrderID  string
	Amount   reservation.Money
	Currency string
	Customer OrderCustomer
	// Tags are stored on the order by the provider and returned by LookupOrder.
	Tags map[string]string
}

type OrderCustomer struct {
	ID    string
	Name  string
	Email string
	Phone string
}

type Order struct {
	OrderID   string
	SessionID string
	Status    string
}

// OrderDetails is what the provider recorded when the order was opened.
type OrderDetails struct {
	OrderID    string
	Amount     reservation.Money
	CustomerID string
	Tags       map[string]string
}

type RefundRequest struct {
	OrderID  string
	RefundID string
	Amount   reservation.Money
	Note     string
}

type RefundWebhook struct {
	Body      []byte
	Signature string
	Timestamp string
}

// RefundNotification is the verified content of a provider refund webhook.
type RefundNotification struct {
	Type         string
	OrderID      string
	RefundID     string
	RefundStatus string
}

// PaymentProvider is the external payment and refund gateway. Every call is expected to be
// bounded by the caller's context.
type PaymentProvider interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
	OrderPaymentStatus(ctx context.Context, orderID string) (AggregatedPaymentStatus, error)
	LookupOrder(ctx context.Context, orderID string) (*OrderDetails, error)
	CreateRefund(ctx context.Context, req RefundRequest) (reservation.RefundStatus, error)
	RefundStatus(ctx context.Context, orderID, refundID string) (reservation.RefundStatus, error)
	ParseRefundWebhook(hook RefundWebhook) (*RefundNotification, error)
}

type ReceiptJob struct {
	ReservationID uuid.UUID `json:"reservationId"`
}

// ReceiptQueue hands receipt generation to a background worker.
type ReceiptQueue interface {
	Enqueue(ctx context.Context, job ReceiptJob) error
}

type Receipt struct {
	To      Contact
	Subject string
	Body    string
}

type ReceiptSender interface {
	Send(ctx context.Context, receipt Receipt) error
}
