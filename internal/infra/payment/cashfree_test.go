//go:build unit

package payment

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/pkg/config"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCashfree(t *testing.T, handler http.HandlerFunc) *Cashfree {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.NewTestConfig().Payment
	cfg.BaseURL = srv.URL
	return NewCashfree(cfg, srv.Client(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateOrder(t *testing.T) {
	var got createOrderRequest
	c := newTestCashfree(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "test-client", r.Header.Get("x-client-id"))
		assert.Equal(t, "2023-08-01", r.Header.Get("x-api-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_ = json.NewEncoder(w).Encode(orderResponse{
			OrderID:          got.OrderID,
			PaymentSessionID: "session_abc",
			OrderStatus:      "ACTIVE",
		})
	})

	order, err := c.CreateOrder(context.Background(), shared.OrderRequest{
		OrderID:  "order_1234",
		Amount:   reservation.NewMoney(90000),
		Currency: "INR",
		Customer: shared.OrderCustomer{ID: "u1", Name: "Asha", Email: "asha@example.com", Phone: "9812345678"},
		Tags:     map[string]string{"table_id": "t1"},
	})

	require.NoError(t, err)
	assert.Equal(t, "order_1234", order.OrderID)
	assert.Equal(t, "session_abc", order.SessionID)
	assert.InDelta(t, 900.0, got.OrderAmount, 0.0001)
	assert.Equal(t, "9812345678", got.CustomerDetails.CustomerPhone)
	assert.Equal(t, map[string]string{"table_id": "t1"}, got.OrderTags)
}

func TestLookupOrder(t *testing.T) {
	t.Run("amount, customer and tags are read back", func(t *testing.T) {
		c := newTestCashfree(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/orders/order_1234", r.URL.Path)
			_, _ = w.Write([]byte(`{
				"order_id": "order_1234",
				"order_amount": 1234.57,
				"order_status": "PAID",
				"customer_details": {"customer_id": "u1", "customer_phone": "9812345678"},
				"order_tags": {"table_id": "t1", "start": "2030-06-10T06:30:00Z"}
			}`))
		})

		order, err := c.LookupOrder(context.Background(), "order_1234")

		require.NoError(t, err)
		assert.Equal(t, "order_1234", order.OrderID)
		assert.Equal(t, int64(123457), order.Amount.Cents())
		assert.Equal(t, "u1", order.CustomerID)
		assert.Equal(t, "2030-06-10T06:30:00Z", order.Tags["start"])
	})

	t.Run("unknown order is a provider error", func(t *testing.T) {
		c := newTestCashfree(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := c.LookupOrder(context.Background(), "order_missing")
		assert.True(t, errs.Is(err, ErrProviderStatus))
	})
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name     string
		attempts []string
		want     shared.AggregatedPaymentStatus
	}{
		{name: "no attempts", want: shared.PaymentStatusNotAttempted},
		{name: "any success wins", attempts: []string{"FAILED", "PENDING", "SUCCESS"}, want: shared.PaymentStatusSuccess},
		{name: "pending beats failed", attempts: []string{"FAILED", "PENDING"}, want: shared.PaymentStatusPending},
		{name: "only failures", attempts: []string{"FAILED", "USER_DROPPED"}, want: shared.PaymentStatusFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := make([]paymentAttempt, len(tt.attempts))
			for i, s := range tt.attempts {
				attempts[i] = paymentAttempt{PaymentStatus: s}
			}
			assert.Equal(t, tt.want, aggregate(attempts))
		})
	}
}

func TestOrderPaymentStatus(t *testing.T) {
	c := newTestCashfree(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/order_1234/payments", r.URL.Path)
		_, _ = w.Write([]byte(`[{"payment_status":"FAILED"},{"payment_status":"SUCCESS"}]`))
	})

	status, err := c.OrderPaymentStatus(context.Background(), "order_1234")

	require.NoError(t, err)
	assert.Equal(t, shared.PaymentStatusSuccess, status)
}

func TestCreateRefund(t *testing.T) {
	t.Run("acknowledged", func(t *testing.T) {
		c := newTestCashfree(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/orders/order_1234/refunds", r.URL.Path)
			var body createRefundRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "rf_1", body.RefundID)
			assert.InDelta(t, 675.0, body.RefundAmount, 0.0001)
			_, _ = w.Write([]byte(`{"refund_id":"rf_1","refund_status":"PENDING"}`))
		})

		status, err := c.CreateRefund(context.Background(), shared.RefundRequest{
			OrderID:  "order_1234",
			RefundID: "rf_1",
			Amount:   reservation.NewMoney(67500),
		})

		require.NoError(t, err)
		assert.Equal(t, reservation.RefundStatus("PENDING"), status)
	})

	t.Run("non-2xx is a provider error", func(t *testing.T) {
		c := newTestCashfree(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := c.CreateRefund(context.Background(), shared.RefundRequest{OrderID: "o", RefundID: "rf"})

		require.Error(t, err)
		assert.True(t, errs.Is(err, ErrProviderStatus))
	})

	t.Run("context deadline", func(t *testing.T) {
		c := newTestCashfree(t, func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		})
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := c.RefundStatus(ctx, "o", "rf")

		assert.Error(t, err)
	})
}

func TestParseRefundWebhook(t *testing.T) {
	c := newTestCashfree(t, func(http.ResponseWriter, *http.Request) {})
	body := []byte(`{"type":"REFUND_STATUS_WEBHOOK","data":{"refund":{"order_id":"order_1234","refund_id":"rf_1","refund_status":"SUCCESS"}}}`)
	ts := "1718000000"
	sig := base64.StdEncoding.EncodeToString(Sign("test-webhook-secret", ts, body))

	t.Run("valid signature", func(t *testing.T) {
		n, err := c.ParseRefundWebhook(shared.RefundWebhook{Body: body, Signature: sig, Timestamp: ts})

		require.NoError(t, err)
		assert.Equal(t, &shared.RefundNotification{
			Type:         "REFUND_STATUS_WEBHOOK",
			OrderID:      "order_1234",
			RefundID:     "rf_1",
			RefundStatus: "SUCCESS",
		}, n)
	})

	t.Run("tampered body", func(t *testing.T) {
		tampered := append([]byte{}, body...)
		tampered[len(tampered)-3] = 'X'

		_, err := c.ParseRefundWebhook(shared.RefundWebhook{Body: tampered, Signature: sig, Timestamp: ts})

		assert.True(t, errs.Is(err, ErrBadSignature))
	})

	t.Run("missing headers", func(t *testing.T) {
		_, err := c.ParseRefundWebhook(shared.RefundWebhook{Body: body})
		assert.True(t, errs.Is(err, ErrBadSignature))
	})

	t.Run("other webhook type", func(t *testing.T) {
		other := []byte(`{"type":"PAYMENT_SUCCESS_WEBHOOK","data":{}}`)
		otherSig := base64.StdEncoding.EncodeToString(Sign("test-webhook-secret", ts, other))

		n, err := c.ParseRefundWebhook(shared.RefundWebhook{Body: other, Signature: otherSig, Timestamp: ts})

		require.NoError(t, err)
		assert.Equal(t, "PAYMENT_SUCCESS_WEBHOOK", n.Type)
		assert.Empty(t, n.RefundID)
	})
}
