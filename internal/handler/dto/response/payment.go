package response

import (
	"table-booking/internal/usecase/commands"
	"table-booking/internal/usecase/shared"
)

type OrderResponse struct {
	OrderID          string  `json:"orderId"`
	PaymentSessionID string  `json:"paymentSessionId"`
	Amount           float64 `json:"amount"`
	Currency         string  `json:"currency"`
}

func FromOrderResult(r *commands.OrderResult) *OrderResponse {
	return &OrderResponse{
		OrderID:          r.OrderID,
		PaymentSessionID: r.SessionID,
		Amount:           r.Amount.Amount(),
		Currency:         r.Currency,
	}
}

type PaymentStatusResponse struct {
	PaymentStatus shared.AggregatedPaymentStatus `json:"paymentStatus"`
}

type RefundStatusResponse struct {
	RefundStatus string  `json:"refundStatus"`
	RefundAmount float64 `json:"refundAmount"`
}
