package api

import (
	"io"
	"net/http"

	reqdto "table-booking/internal/handler/dto/request"
	resdto "table-booking/internal/handler/dto/response"
	"table-booking/internal/handler/middleware"
	"table-booking/internal/infra/payment"
	"table-booking/internal/usecase/commands"
	"table-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

const maxWebhookBytes = 64 << 10

type PaymentHandler struct {
	payments commands.PaymentCommands
	cancel   commands.CancellationCommands
}

func NewPaymentHandler(payments commands.PaymentCommands, cancel commands.CancellationCommands) *PaymentHandler {
	return &PaymentHandler{payments: payments, cancel: cancel}
}

// @Summary Create payment order
// @Description Prices the interval server-side and opens a provider order for checkout.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateOrderRequest true "Order request"
// @Success 201 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /payments/orders [post]
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}
	var req reqdto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}

	result, err := h.payments.CreateOrder(c.Request.Context(), req.ToInput(), actor)
	if err != nil {
		abortWithUseCaseError(c, err, nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromOrderResult(result))
}

// @Summary Aggregated payment status
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param orderId path string true "Provider order ID"
// @Success 200 {object} resdto.PaymentStatusResponse
// @Failure 503 {object} httperr.Response
// @Router /payments/orders/{orderId}/status [get]
func (h *PaymentHandler) OrderStatus(c *gin.Context) {
	status, err := h.payments.OrderStatus(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		abortWithUseCaseError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.PaymentStatusResponse{PaymentStatus: status})
}

// @Summary Provider refund webhook
// @Description Signature is base64(HMAC-SHA256(secret, timestamp + raw body)).
// @Tags payments
// @Accept json
// @Param x-webhook-signature header string true "Signature"
// @Param x-webhook-timestamp header string true "Timestamp"
// @Success 200 "acknowledged"
// @Failure 401 {object} httperr.Response
// @Router /webhooks/cashfree [post]
func (h *PaymentHandler) RefundWebhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBytes))
	if err != nil {
		abortBadRequest(c, err, "Unreadable body")
		return
	}

	err = h.cancel.HandleRefundWebhook(c.Request.Context(), shared.RefundWebhook{
		Body:      body,
		Signature: c.GetHeader(payment.SignatureHeader),
		Timestamp: c.GetHeader(payment.TimestampHeader),
	})
	if err != nil {
		abortWithUseCaseError(c, err, nil)
		return
	}
	c.String(http.StatusOK, "Webhook received")
}
