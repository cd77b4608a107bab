package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"

	"checkout/internal/core/domain"
	"checkout/internal/core/port"
)

type PaymentHandler struct {
	Handler
	service port.PaymentService
}

func NewPaymentHandler(service port.PaymentService, logger *zap.Logger) (*PaymentHandler, error) {
	return &PaymentHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type paymentRequest struct {
	OrderID  uint64  `json:"order_id"`
	CardType string  `json:"card_type"`
	CardNo   string  `json:"card_no"`
	Amount   float64 `json:"amount"`
}

type paymentResponse struct {
	TransactionKey string          `json:"transaction_key,omitempty"`
	OrderID        uint64          `json:"order_id"`
	Status         string          `json:"status"`
	Amount         decimal.Decimal `json:"amount"`
	FailureReason  string          `json:"failure_reason,omitempty"`
	RequestedAt    time.Time       `json:"requested_at"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
}

func (ph *PaymentHandler) ProcessPayment(ctx *gin.Context) {
	payload := getAuthPayload(ctx)

	req := paymentRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	amount, err := decimal.NewFromFloat64(req.Amount)
	if err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	payment, err := ph.service.ProcessPayment(ctx, port.PaymentCommand{
		Username: payload.Login,
		OrderID:  req.OrderID,
		CardType: req.CardType,
		CardNo:   req.CardNo,
		Amount:   amount,
	})
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccessWithStatus(ctx, newPaymentResponse(payment), http.StatusAccepted)
}

func (ph *PaymentHandler) GetPayment(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	payment, err := ph.service.GetPayment(ctx, userID, ctx.Param("key"))
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, newPaymentResponse(payment))
}

func (ph *PaymentHandler) CancelPayment(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	payment, err := ph.service.CancelPayment(ctx, userID, ctx.Param("key"))
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, newPaymentResponse(payment))
}

func (ph *PaymentHandler) RefundPayment(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	payment, err := ph.service.RefundPayment(ctx, userID, ctx.Param("key"))
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, newPaymentResponse(payment))
}

type callbackRequest struct {
	TransactionKey string `json:"transactionKey"`
	OrderID        uint64 `json:"orderId"`
	Status         string `json:"status"`
	Amount         string `json:"amount"`
	Reason         string `json:"reason"`
}

// Callback receives the gateway's asynchronous result. Duplicate and
// late callbacks are acknowledged with 200 so the gateway stops
// redelivering; mismatches are rejected so it retries or alerts.
func (ph *PaymentHandler) Callback(ctx *gin.Context) {
	req := callbackRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	amount, err := decimal.Parse(req.Amount)
	if err != nil {
		ph.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	err = ph.service.HandleCallback(ctx, port.CallbackCommand{
		TransactionKey: req.TransactionKey,
		OrderID:        req.OrderID,
		Status:         req.Status,
		Amount:         amount,
		Reason:         req.Reason,
	})
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccessWithStatus(ctx, nil, http.StatusOK)
}

func newPaymentResponse(payment *domain.Payment) *paymentResponse {
	return &paymentResponse{
		TransactionKey: payment.TransactionKey,
		OrderID:        payment.OrderID,
		Status:         string(payment.Status),
		Amount:         payment.Amount,
		FailureReason:  payment.FailureReason,
		RequestedAt:    payment.RequestedAt,
		CompletedAt:    payment.CompletedAt,
	}
}
