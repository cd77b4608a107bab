package domain

import (
	"errors"
	"fmt"

	"github.com/govalues/decimal"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound    = errors.New("data not found")
	ErrConflictingData = errors.New("data conflicts with existing data in unique column")

	// * Communication errors.
	ErrBadRequest = errors.New("error parsing request")

	// * Authority errors.
	ErrTokenCreation              = errors.New("error creating token")
	ErrExpiredToken               = errors.New("access token has expired")
	ErrInvalidToken               = errors.New("access token is invalid")
	ErrInvalidCredentials         = errors.New("invalid login or password")
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not provided")
	ErrInvalidAuthorizationHeader = errors.New("authorization header format is invalid")
	ErrInvalidAuthorizationType   = errors.New("authorization type is not supported")
	ErrUnauthorized               = errors.New("user is unauthorized to access the resource")
	ErrForbidden                  = errors.New("user is forbidden to access the resource")

	// * Input errors: rejected before any side effect.
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidOrderItems = errors.New("order items are invalid")

	// * Business-conflict errors: rejected synchronously, nothing committed.
	ErrInsufficientStock        = errors.New("product stock is not enough")
	ErrInsufficientPoints       = errors.New("point balance is not enough")
	ErrCouponAlreadyUsed        = errors.New("coupon is already used")
	ErrCouponNotOwned           = errors.New("coupon belongs to another user")
	ErrInvalidOrderStatus       = errors.New("order status does not allow this transition")
	ErrInvalidPaymentTransition = errors.New("payment status does not allow this transition")
	ErrOrderNotPayable          = errors.New("order is not payable")

	// * Data-integrity errors: the affected payment/order is left for manual review.
	ErrPaymentNotFound          = errors.New("payment not found")
	ErrPaymentDataMismatch      = errors.New("callback data does not match payment gateway state")
	ErrAmountMismatch           = errors.New("payment amount does not match order total")
	ErrInvalidCompensationState = errors.New("compensation would revert an unused coupon")

	// * Transient infrastructure errors.
	ErrGatewayUnavailable = errors.New("payment gateway is unavailable")
)

// InsufficientStockError carries enough context for the caller to react.
// errors.Is(err, ErrInsufficientStock) holds for values of this type.
type InsufficientStockError struct {
	ProductID uint64
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// InsufficientPointsError reports the shortfall on a point-funded order.
type InsufficientPointsError struct {
	UserID    uint64
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("insufficient points for user %d: requested %s, available %s",
		e.UserID, e.Requested, e.Available)
}

func (e *InsufficientPointsError) Is(target error) bool {
	return target == ErrInsufficientPoints
}
