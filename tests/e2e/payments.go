//go:build e2e

package e2e

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"sync"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/infra/payment"
	"table-booking/internal/pkg/config"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/shared"
)

var (
	ErrGatewayDown  = errs.New("payment gateway unavailable")
	ErrUnknownOrder = errs.New("order not found at the gateway")
)

type stubOrder struct {
	details shared.OrderDetails
	status  shared.AggregatedPaymentStatus
}

// PaymentStub stands in for the gateway's HTTP API. Webhook verification still runs through
// the real Cashfree client so signatures are checked against the test webhook secret.
type PaymentStub struct {
	mu          sync.Mutex
	orders      map[string]*stubOrder
	refunds     map[string]reservation.RefundStatus
	refundsDown bool
	webhooks    *payment.Cashfree
}

func NewPaymentStub() *PaymentStub {
	s := &PaymentStub{
		webhooks: payment.NewCashfree(config.NewTestConfig().Payment, http.DefaultClient, slog.Default()),
	}
	s.Reset()
	return s
}

func (s *PaymentStub) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = map[string]*stubOrder{}
	s.refunds = map[string]reservation.RefundStatus{}
	s.refundsDown = false
}

// MarkPaid makes OrderPaymentStatus report orderID as settled. Orders never opened through
// CreateOrder carry no amount, customer or tags.
func (s *PaymentStub) MarkPaid(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		o = &stubOrder{details: shared.OrderDetails{OrderID: orderID}}
		s.orders[orderID] = o
	}
	o.status = shared.PaymentStatusSuccess
}

func (s *PaymentStub) FailRefunds() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refundsDown = true
}

func (s *PaymentStub) RefundRequested(refundID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.refunds[refundID]
	return ok
}

func (s *PaymentStub) CreateOrder(_ context.Context, req shared.OrderRequest) (*shared.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[req.OrderID] = &stubOrder{
		details: shared.OrderDetails{
			OrderID:    req.OrderID,
			Amount:     req.Amount,
			CustomerID: req.Customer.ID,
			Tags:       req.Tags,
		},
		status: shared.PaymentStatusNotAttempted,
	}
	return &shared.Order{OrderID: req.OrderID, SessionID: "session_" + req.OrderID, Status: "ACTIVE"}, nil
}

func (s *PaymentStub) OrderPaymentStatus(_ context.Context, orderID string) (shared.AggregatedPaymentStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orders[orderID]; ok {
		return o.status, nil
	}
	return shared.PaymentStatusNotAttempted, nil
}

func (s *PaymentStub) LookupOrder(_ context.Context, orderID string) (*shared.OrderDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return nil, ErrUnknownOrder
	}
	details := o.details
	return &details, nil
}

func (s *PaymentStub) CreateRefund(_ context.Context, req shared.RefundRequest) (reservation.RefundStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refundsDown {
		return "", ErrGatewayDown
	}
	s.refunds[req.RefundID] = "PENDING"
	return "PENDING", nil
}

func (s *PaymentStub) RefundStatus(_ context.Context, _, refundID string) (reservation.RefundStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refundsDown {
		return "", ErrGatewayDown
	}
	return s.refunds[refundID], nil
}

func (s *PaymentStub) ParseRefundWebhook(hook shared.RefundWebhook) (*shared.RefundNotification, error) {
	return s.webhooks.ParseRefundWebhook(hook)
}

// SignWebhook returns the signature header value the gateway would send for body.
func SignWebhook(timestamp string, body []byte) string {
	return base64.StdEncoding.EncodeToString(payment.Sign(config.NewTestConfig().Payment.WebhookSecret, timestamp, body))
}
