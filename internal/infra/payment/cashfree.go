// Package payment adapts the Cashfree PG REST API to shared.PaymentProvider.
package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/pkg/config"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/shared"
)

const (
	SignatureHeader = "x-webhook-signature"
	TimestampHeader = "x-webhook-timestamp"

	maxResponseBytes = 1 << 20
)

var (
	ErrProviderStatus   = errs.New("unexpected provider response")
	ErrBadSignature     = errs.New("webhook signature mismatch")
	ErrMalformedWebhook = errs.New("malformed webhook payload")
)

type Cashfree struct {
	baseURL       string
	clientID      string
	clientSecret  string
	apiVersion    string
	webhookSecret string
	httpClient    *http.Client
	logger        *slog.Logger
}

// NewCashfree builds the adapter. Timeouts come from the caller's context, so the client itself
// carries none.
func NewCashfree(cfg config.PaymentConfig, httpClient *http.Client, logger *slog.Logger) *Cashfree {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Cashfree{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		clientID:      cfg.ClientID,
		clientSecret:  cfg.ClientSecret,
		apiVersion:    cfg.APIVersion,
		webhookSecret: cfg.WebhookSecret,
		httpClient:    httpClient,
		logger:        logger,
	}
}

type customerDetails struct {
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
	CustomerPhone string `json:"customer_phone"`
}

type createOrderRequest struct {
	OrderID         string            `json:"order_id"`
	OrderAmount     float64           `json:"order_amount"`
	OrderCurrency   string            `json:"order_currency"`
	CustomerDetails customerDetails   `json:"customer_details"`
	OrderTags       map[string]string `json:"order_tags,omitempty"`
}

type orderResponse struct {
	OrderID          string            `json:"order_id"`
	PaymentSessionID string            `json:"payment_session_id"`
	OrderStatus      string            `json:"order_status"`
	OrderAmount      float64           `json:"order_amount"`
	CustomerDetails  customerDetails   `json:"customer_details"`
	OrderTags        map[string]string `json:"order_tags"`
}

type paymentAttempt struct {
	PaymentStatus string `json:"payment_status"`
}

type createRefundRequest struct {
	RefundAmount float64 `json:"refund_amount"`
	RefundID     string  `json:"refund_id"`
	RefundNote   string  `json:"refund_note,omitempty"`
}

type refundResponse struct {
	RefundID     string `json:"refund_id"`
	RefundStatus string `json:"refund_status"`
}

type webhookEnvelope struct {
	Type string `json:"type"`
	Data struct {
		Refund *struct {
			OrderID      string `json:"order_id"`
			RefundID     string `json:"refund_id"`
			RefundStatus string `json:"refund_status"`
		} `json:"refund"`
	} `json:"data"`
}

func (c *Cashfree) CreateOrder(ctx context.Context, req shared.OrderRequest) (*shared.Order, error) {
	body := createOrderRequest{
		OrderID:       req.OrderID,
		OrderAmount:   req.Amount.Amount(),
		OrderCurrency: req.Currency,
		CustomerDetails: customerDetails{
			CustomerID:    req.Customer.ID,
			CustomerName:  req.Customer.Name,
			CustomerEmail: req.Customer.Email,
			CustomerPhone: req.Customer.Phone,
		},
		OrderTags: req.Tags,
	}

	var resp orderResponse
	if err := c.do(ctx, http.MethodPost, "/orders", body, &resp); err != nil {
		return nil, err
	}
	c.logger.Info("Payment order created", "order_id", resp.OrderID, "status", resp.OrderStatus)

	return &shared.Order{
		OrderID:   resp.OrderID,
		SessionID: resp.PaymentSessionID,
		Status:    resp.OrderStatus,
	}, nil
}

func (c *Cashfree) LookupOrder(ctx context.Context, orderID string) (*shared.OrderDetails, error) {
	var resp orderResponse
	if err := c.do(ctx, http.MethodGet, "/orders/"+orderID, nil, &resp); err != nil {
		return nil, err
	}
	return &shared.OrderDetails{
		OrderID:    resp.OrderID,
		Amount:     reservation.NewMoney(int64(math.Round(resp.OrderAmount * 100))),
		CustomerID: resp.CustomerDetails.CustomerID,
		Tags:       resp.OrderTags,
	}, nil
}

func (c *Cashfree) OrderPaymentStatus(ctx context.Context, orderID string) (shared.AggregatedPaymentStatus, error) {
	var attempts []paymentAttempt
	if err := c.do(ctx, http.MethodGet, "/orders/"+orderID+"/payments", nil, &attempts); err != nil {
		return "", err
	}
	return aggregate(attempts), nil
}

// aggregate folds every attempt on an order into one status: any success wins, then any
// pending, otherwise failed. An order without attempts was never paid.
func aggregate(attempts []paymentAttempt) shared.AggregatedPaymentStatus {
	if len(attempts) == 0 {
		return shared.PaymentStatusNotAttempted
	}
	pending := false
	for _, a := range attempts {
		switch shared.AggregatedPaymentStatus(a.PaymentStatus) {
		case shared.PaymentStatusSuccess:
			return shared.PaymentStatusSuccess
		case shared.PaymentStatusPending:
			pending = true
		}
	}
	if pending {
		return shared.PaymentStatusPending
	}
	return shared.PaymentStatusFailed
}

func (c *Cashfree) CreateRefund(ctx context.Context, req shared.RefundRequest) (reservation.RefundStatus, error) {
	body := createRefundRequest{
		RefundAmount: req.Amount.Amount(),
		RefundID:     req.RefundID,
		RefundNote:   req.Note,
	}

	var resp refundResponse
	if err := c.do(ctx, http.MethodPost, "/orders/"+req.OrderID+"/refunds", body, &resp); err != nil {
		return "", err
	}
	c.logger.Info("Refund requested",
		"order_id", req.OrderID,
		"refund_id", req.RefundID,
		"status", resp.RefundStatus)

	return reservation.RefundStatus(resp.RefundStatus), nil
}

func (c *Cashfree) RefundStatus(ctx context.Context, orderID, refundID string) (reservation.RefundStatus, error) {
	var resp refundResponse
	if err := c.do(ctx, http.MethodGet, "/orders/"+orderID+"/refunds/"+refundID, nil, &resp); err != nil {
		return "", err
	}
	return reservation.RefundStatus(resp.RefundStatus), nil
}

// ParseRefundWebhook verifies base64(HMAC-SHA256(secret, timestamp + rawBody)) before decoding.
func (c *Cashfree) ParseRefundWebhook(hook shared.RefundWebhook) (*shared.RefundNotification, error) {
	if !c.validSignature(hook) {
		return nil, ErrBadSignature
	}

	var env webhookEnvelope
	if err := json.Unmarshal(hook.Body, &env); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to decode webhook"), ErrMalformedWebhook)
	}

	n := &shared.RefundNotification{Type: env.Type}
	if r := env.Data.Refund; r != nil {
		n.OrderID = r.OrderID
		n.RefundID = r.RefundID
		n.RefundStatus = r.RefundStatus
	}
	return n, nil
}

func (c *Cashfree) validSignature(hook shared.RefundWebhook) bool {
	if hook.Signature == "" || hook.Timestamp == "" {
		return false
	}
	got, err := base64.StdEncoding.DecodeString(hook.Signature)
	if err != nil {
		return false
	}
	return hmac.Equal(got, Sign(c.webhookSecret, hook.Timestamp, hook.Body))
}

// Sign computes the raw webhook MAC. Exported for tests and local tooling.
func Sign(secret, timestamp string, body []byte) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write(body)
	return mac.Sum(nil)
}

func (c *Cashfree) do(ctx context.Context, method, path string, in, out any) error {
	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return errs.Wrap(err, "failed to encode provider request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errs.Wrap(err, "failed to build provider request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-version", c.apiVersion)
	req.Header.Set("x-client-id", c.clientID)
	req.Header.Set("x-client-secret", c.clientSecret)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errs.Wrap(err, "failed to read provider response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Provider returned error",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"body", string(raw))
		return errs.Mark(errs.Newf("%s %s: status %d", method, path, resp.StatusCode), ErrProviderStatus)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errs.Wrap(err, fmt.Sprintf("failed to decode %s %s", method, path))
	}
	return nil
}
