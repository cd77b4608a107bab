package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"

	"checkout/internal/core/domain"
	"checkout/internal/core/port"
)

type OrderHandler struct {
	Handler
	service port.OrderService
}

func NewOrderHandler(service port.OrderService, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type orderItemRequest struct {
	ProductID uint64  `json:"product_id"`
	CouponID  *uint64 `json:"coupon_id,omitempty"`
	Quantity  int     `json:"quantity"`
}

type createOrderRequest struct {
	PaymentMethod string             `json:"payment_method"`
	Items         []orderItemRequest `json:"items"`
}

type orderItemResponse struct {
	ProductID uint64          `json:"product_id"`
	CouponID  *uint64         `json:"coupon_id,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
}

type orderResponse struct {
	ID            uint64              `json:"id"`
	Status        string              `json:"status"`
	PaymentMethod string              `json:"payment_method"`
	OriginalTotal decimal.Decimal     `json:"original_total"`
	DiscountTotal decimal.Decimal     `json:"discount_total"`
	FinalTotal    decimal.Decimal     `json:"final_total"`
	CancelReason  string              `json:"cancel_reason,omitempty"`
	OrderedAt     time.Time           `json:"ordered_at"`
	Items         []orderItemResponse `json:"items,omitempty"`
}

func (oh *OrderHandler) CreateOrder(ctx *gin.Context) {
	payload := getAuthPayload(ctx)

	req := createOrderRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	cmd := port.CreateOrderCommand{
		Username:      payload.Login,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
	}
	for _, it := range req.Items {
		cmd.Items = append(cmd.Items, port.OrderItemCommand{
			ProductID: it.ProductID,
			CouponID:  it.CouponID,
			Quantity:  it.Quantity,
		})
	}

	order, items, err := oh.service.CreateOrder(ctx, cmd)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccessWithStatus(ctx, newOrderResponse(order, items), http.StatusCreated)
}

func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	orderID, err := strconv.ParseUint(ctx.Param("order"), 10, 64)
	if err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	order, items, err := oh.service.GetOrder(ctx, userID, orderID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResponse(order, items))
}

func (oh *OrderHandler) ListOrdersByUser(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	list, err := oh.service.ListOrdersByUser(ctx, userID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := make([]orderResponse, 0, len(list))
	for _, o := range list {
		result = append(result, *newOrderResponse(o, nil))
	}

	oh.handleSuccess(ctx, result)
}

type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

func (oh *OrderHandler) CancelOrder(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	orderID, err := strconv.ParseUint(ctx.Param("order"), 10, 64)
	if err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	// body is optional on cancellation
	req := cancelOrderRequest{}
	_ = ctx.ShouldBindBodyWithJSON(&req)
	if req.Reason == "" {
		req.Reason = "cancelled by user"
	}

	if err := oh.service.CancelOrder(ctx, userID, orderID, req.Reason); err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccessWithStatus(ctx, nil, http.StatusOK)
}

func newOrderResponse(order *domain.Order, items []*domain.OrderItem) *orderResponse {
	resp := orderResponse{
		ID:            order.ID,
		Status:        string(order.Status),
		PaymentMethod: string(order.PaymentMethod),
		OriginalTotal: order.OriginalTotal,
		DiscountTotal: order.DiscountTotal,
		FinalTotal:    order.FinalTotal,
		CancelReason:  order.CancelReason,
		OrderedAt:     order.OrderedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, orderItemResponse{
			ProductID: item.ProductID,
			CouponID:  item.CouponID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Discount:  item.Discount,
			Total:     item.Total,
		})
	}
	return &resp
}
