package http

import (
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"

	"checkout/internal/core/domain"
	"checkout/internal/core/port"
)

type UserHandler struct {
	Handler
	service port.UserService
}

type UserRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func NewUserHandler(service port.UserService, logger *zap.Logger) (*UserHandler, error) {
	return &UserHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

func (uh *UserHandler) RegisterUser(ctx *gin.Context) {
	userReq := UserRequest{}
	err := ctx.ShouldBindBodyWithJSON(&userReq)
	if err != nil {
		uh.handleValidationError(ctx, err)
		return
	}
	if userReq.Login == "" || userReq.Password == "" {
		uh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	user := &domain.User{
		Login:    userReq.Login,
		Password: userReq.Password,
	}

	_, err = uh.service.RegisterUser(ctx, user)
	if err != nil {
		uh.handleError(ctx, err)
		return
	}

	// Token return
	uh.LoginUser(ctx)
}

func (uh *UserHandler) LoginUser(ctx *gin.Context) {
	userReq := UserRequest{}
	err := ctx.ShouldBindBodyWithJSON(&userReq)
	if err != nil {
		uh.handleValidationError(ctx, err)
		return
	}

	token, err := uh.service.LoginUser(ctx, userReq.Login, userReq.Password)
	if err != nil {
		uh.handleError(ctx, err)
		return
	}

	uh.handleSuccess(ctx, struct {
		Token string `json:"token"`
	}{Token: token})
}

type pointBalanceResponse struct {
	Amount decimal.Decimal `json:"amount"`
}

func (uh *UserHandler) PointBalance(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	balance, err := uh.service.GetPointBalance(ctx, userID)
	if err != nil {
		uh.handleError(ctx, err)
		return
	}

	uh.handleSuccess(ctx, pointBalanceResponse{Amount: balance.Amount})
}

type chargePointsRequest struct {
	Amount float64 `json:"amount"`
}

func (uh *UserHandler) ChargePoints(ctx *gin.Context) {
	req := chargePointsRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		uh.handleValidationError(ctx, err)
		return
	}

	amount, err := decimal.NewFromFloat64(req.Amount)
	if err != nil || amount.Sign() <= 0 {
		uh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	userID := getAuthPayload(ctx).UserID

	balance, err := uh.service.ChargePoints(ctx, userID, amount)
	if err != nil {
		uh.handleError(ctx, err)
		return
	}

	uh.handleSuccess(ctx, pointBalanceResponse{Amount: balance.Amount})
}
