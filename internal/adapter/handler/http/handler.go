package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"checkout/internal/core/domain"
)

var errorStatusMap = map[error]int{
	domain.ErrInternal:        http.StatusInternalServerError,
	domain.ErrDataNotFound:    http.StatusNotFound,
	domain.ErrConflictingData: http.StatusConflict,

	domain.ErrInvalidCredentials:         http.StatusUnauthorized,
	domain.ErrUnauthorized:               http.StatusUnauthorized,
	domain.ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationType:   http.StatusUnauthorized,
	domain.ErrInvalidToken:               http.StatusUnauthorized,
	domain.ErrExpiredToken:               http.StatusUnauthorized,
	domain.ErrForbidden:                  http.StatusForbidden,

	domain.ErrBadRequest:        http.StatusBadRequest,
	domain.ErrUserNotFound:      http.StatusBadRequest,
	domain.ErrInvalidOrderItems: http.StatusBadRequest,

	domain.ErrInsufficientStock:        http.StatusConflict,
	domain.ErrInsufficientPoints:       http.StatusPaymentRequired,
	domain.ErrCouponAlreadyUsed:        http.StatusConflict,
	domain.ErrCouponNotOwned:           http.StatusForbidden,
	domain.ErrInvalidOrderStatus:       http.StatusConflict,
	domain.ErrInvalidPaymentTransition: http.StatusConflict,
	domain.ErrOrderNotPayable:          http.StatusUnprocessableEntity,

	domain.ErrPaymentNotFound:          http.StatusNotFound,
	domain.ErrPaymentDataMismatch:      http.StatusUnprocessableEntity,
	domain.ErrAmountMismatch:           http.StatusUnprocessableEntity,
	domain.ErrInvalidCompensationState: http.StatusConflict,

	domain.ErrGatewayUnavailable: http.StatusServiceUnavailable,
}

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// statusForError matches through wrapped errors so services may add
// context with fmt.Errorf without losing the mapping.
func statusForError(err error) (int, bool) {
	if code, ok := errorStatusMap[err]; ok {
		return code, true
	}
	for key, code := range errorStatusMap {
		if errors.Is(err, key) {
			return code, true
		}
	}
	return http.StatusInternalServerError, false
}

// handleValidationError sends an error response for some specific request validation error
func (h *Handler) handleValidationError(ctx *gin.Context, err error) {
	ctx.Status(http.StatusBadRequest)
}

// handleAbort sends an error response and aborts the request with the specified status code and error message
func (h *Handler) handleAbort(ctx *gin.Context, err error) {
	statusCode, ok := statusForError(err)
	if !ok {
		h.logger.Error("aborting request", zap.Error(err))
	}
	_ = ctx.AbortWithError(statusCode, err)
}

func (h *Handler) handleError(ctx *gin.Context, err error) {
	statusCode, ok := statusForError(err)
	if !ok {
		h.logger.Error("error processing request", zap.Error(err))
	}
	ctx.Status(statusCode)
}

// handleSuccess sends a success response with the specified status code and optional data
func (h *Handler) handleSuccessWithStatus(ctx *gin.Context, data any, status int) {
	if data != nil {
		ctx.JSON(status, data)
	} else {
		ctx.Status(status)
	}
}

func (h *Handler) handleSuccess(ctx *gin.Context, data any) {
	h.handleSuccessWithStatus(ctx, data, http.StatusOK)
}
