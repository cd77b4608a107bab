package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"checkout/internal/core/domain"
	"checkout/internal/core/port"
	"checkout/internal/core/port/mock"
	"checkout/internal/core/service"
)

// expectTx routes WithinTransaction back into the same mock so the
// closure's calls register on it.
func expectTx(repo *mock.MockRepository) {
	repo.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, port.Repository) error) error {
			return fn(ctx, repo)
		}).AnyTimes()
}

func TestOrderService_CreateOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	couponID := uint64(5)

	tests := []struct {
		name     string
		cmd      port.CreateOrderCommand
		mock     func(repo *mock.MockRepository)
		expError error
		check    func(t *testing.T, order *domain.Order, items []*domain.OrderItem)
	}{
		{
			name: "point order with percentage coupon",
			cmd: port.CreateOrderCommand{
				Username:      "alice",
				PaymentMethod: domain.PaymentMethodPoint,
				Items: []port.OrderItemCommand{
					{ProductID: 10, CouponID: &couponID, Quantity: 2},
				},
			},
			mock: func(repo *mock.MockRepository) {
				expectTx(repo)
				repo.EXPECT().GetUserForUpdate(gomock.Any(), "alice").
					Return(&domain.User{ID: 1, Login: "alice"}, nil)
				repo.EXPECT().GetProductForUpdate(gomock.Any(), uint64(10)).
					Return(&domain.Product{ID: 10, Price: decimal.MustParse("1000"), Stock: 5}, nil)
				repo.EXPECT().GetCouponForUpdate(gomock.Any(), couponID).
					Return(&domain.Coupon{ID: couponID, UserID: 1,
						Type: domain.CouponTypePercentage, Percentage: 30,
						Status: domain.CouponStatusUnused}, nil)
				repo.EXPECT().UpdateCouponStatus(gomock.Any(), couponID, domain.CouponStatusUsed).
					Return(nil)
				repo.EXPECT().UpdateProductStock(gomock.Any(), uint64(10), 3).Return(nil)
				repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, order *domain.Order) (*domain.Order, error) {
						order.ID = 100
						return order, nil
					})
				repo.EXPECT().CreateOrderItems(gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().GetPointBalanceForUpdate(gomock.Any(), uint64(1)).
					Return(&domain.PointBalance{UserID: 1, Amount: decimal.MustParse("10000")}, nil)
				repo.EXPECT().UpdatePointBalance(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, balance *domain.PointBalance) error {
						assert.Equal(t, 0, balance.Amount.Cmp(decimal.MustParse("8600")))
						return nil
					})
				repo.EXPECT().EnqueueEvent(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, order *domain.Order, items []*domain.OrderItem) {
				assert.Equal(t, 0, order.OriginalTotal.Cmp(decimal.MustParse("2000")))
				assert.Equal(t, 0, order.DiscountTotal.Cmp(decimal.MustParse("600")))
				assert.Equal(t, 0, order.FinalTotal.Cmp(decimal.MustParse("1400")))
				assert.Len(t, items, 1)
				assert.Equal(t, uint64(100), items[0].OrderID)
			},
		},
		{
			name: "insufficient stock rolls everything back",
			cmd: port.CreateOrderCommand{
				Username:      "alice",
				PaymentMethod: domain.PaymentMethodCard,
				Items: []port.OrderItemCommand{
					{ProductID: 10, Quantity: 3},
				},
			},
			mock: func(repo *mock.MockRepository) {
				expectTx(repo)
				repo.EXPECT().GetUserForUpdate(gomock.Any(), "alice").
					Return(&domain.User{ID: 1, Login: "alice"}, nil)
				repo.EXPECT().GetProductForUpdate(gomock.Any(), uint64(10)).
					Return(&domain.Product{ID: 10, Price: decimal.MustParse("1000"), Stock: 2}, nil)
			},
			expError: domain.ErrInsufficientStock,
		},
		{
			name: "insufficient points",
			cmd: port.CreateOrderCommand{
				Username:      "alice",
				PaymentMethod: domain.PaymentMethodPoint,
				Items: []port.OrderItemCommand{
					{ProductID: 10, Quantity: 1},
				},
			},
			mock: func(repo *mock.MockRepository) {
				expectTx(repo)
				repo.EXPECT().GetUserForUpdate(gomock.Any(), "alice").
					Return(&domain.User{ID: 1, Login: "alice"}, nil)
				repo.EXPECT().GetProductForUpdate(gomock.Any(), uint64(10)).
					Return(&domain.Product{ID: 10, Price: decimal.MustParse("1000"), Stock: 2}, nil)
				repo.EXPECT().UpdateProductStock(gomock.Any(), uint64(10), 1).Return(nil)
				repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, order *domain.Order) (*domain.Order, error) {
						order.ID = 101
						return order, nil
					})
				repo.EXPECT().CreateOrderItems(gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().GetPointBalanceForUpdate(gomock.Any(), uint64(1)).
					Return(&domain.PointBalance{UserID: 1, Amount: decimal.MustParse("500")}, nil)
			},
			expError: domain.ErrInsufficientPoints,
		},
		{
			name: "coupon of another user",
			cmd: port.CreateOrderCommand{
				Username:      "alice",
				PaymentMethod: domain.PaymentMethodCard,
				Items: []port.OrderItemCommand{
					{ProductID: 10, CouponID: &couponID, Quantity: 1},
				},
			},
			mock: func(repo *mock.MockRepository) {
				expectTx(repo)
				repo.EXPECT().GetUserForUpdate(gomock.Any(), "alice").
					Return(&domain.User{ID: 1, Login: "alice"}, nil)
				repo.EXPECT().GetProductForUpdate(gomock.Any(), uint64(10)).
					Return(&domain.Product{ID: 10, Price: decimal.MustParse("1000"), Stock: 2}, nil)
				repo.EXPECT().GetCouponForUpdate(gomock.Any(), couponID).
					Return(&domain.Coupon{ID: couponID, UserID: 2,
						Type: domain.CouponTypeFixedAmount, Status: domain.CouponStatusUnused}, nil)
			},
			expError: domain.ErrCouponNotOwned,
		},
		{
			name: "duplicate product ids rejected before any lock",
			cmd: port.CreateOrderCommand{
				Username:      "alice",
				PaymentMethod: domain.PaymentMethodCard,
				Items: []port.OrderItemCommand{
					{ProductID: 10, Quantity: 1},
					{ProductID: 10, Quantity: 2},
				},
			},
			mock:     func(repo *mock.MockRepository) {},
			expError: domain.ErrInvalidOrderItems,
		},
		{
			name: "empty order",
			cmd: port.CreateOrderCommand{
				Username:      "alice",
				PaymentMethod: domain.PaymentMethodCard,
			},
			mock:     func(repo *mock.MockRepository) {},
			expError: domain.ErrInvalidOrderItems,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			test.mock(repo)

			s, err := service.NewOrderService(repo, logger)
			assert.NoError(t, err)

			order, items, err := s.CreateOrder(context.Background(), test.cmd)
			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				assert.Nil(t, order)
				return
			}
			assert.NoError(t, err)
			test.check(t, order, items)
		})
	}
}

func TestOrderService_CancelOrderByPaymentFailure(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	couponID := uint64(5)

	t.Run("compensation restores stock and coupon", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		expectTx(repo)

		order := &domain.Order{ID: 100, UserID: 1, Status: domain.OrderStatusPending,
			PaymentMethod: domain.PaymentMethodCard,
			FinalTotal:    decimal.MustParse("1400")}

		repo.EXPECT().GetOrderForUpdate(gomock.Any(), uint64(100)).Return(order, nil)
		repo.EXPECT().ListOrderItems(gomock.Any(), uint64(100)).
			Return([]*domain.OrderItem{
				{OrderID: 100, ProductID: 10, CouponID: &couponID, Quantity: 2},
			}, nil)
		repo.EXPECT().GetProductForUpdate(gomock.Any(), uint64(10)).
			Return(&domain.Product{ID: 10, Stock: 3}, nil)
		repo.EXPECT().UpdateProductStock(gomock.Any(), uint64(10), 5).Return(nil)
		repo.EXPECT().GetCouponForUpdate(gomock.Any(), couponID).
			Return(&domain.Coupon{ID: couponID, UserID: 1, Status: domain.CouponStatusUsed}, nil)
		repo.EXPECT().UpdateCouponStatus(gomock.Any(), couponID, domain.CouponStatusUnused).Return(nil)
		repo.EXPECT().UpdateOrder(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o *domain.Order) error {
				assert.Equal(t, domain.OrderStatusCancelled, o.Status)
				assert.Equal(t, "card declined", o.CancelReason)
				return nil
			})

		s, err := service.NewOrderService(repo, logger)
		assert.NoError(t, err)

		err = s.CancelOrderByPaymentFailure(context.Background(), 100, 1, "card declined")
		assert.NoError(t, err)
	})

	t.Run("already cancelled is a no-op", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		expectTx(repo)

		repo.EXPECT().GetOrderForUpdate(gomock.Any(), uint64(100)).
			Return(&domain.Order{ID: 100, UserID: 1, Status: domain.OrderStatusCancelled}, nil)

		s, err := service.NewOrderService(repo, logger)
		assert.NoError(t, err)

		err = s.CancelOrderByPaymentFailure(context.Background(), 100, 1, "timeout")
		assert.NoError(t, err)
	})

	t.Run("confirmed order is left alone", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		expectTx(repo)

		repo.EXPECT().GetOrderForUpdate(gomock.Any(), uint64(100)).
			Return(&domain.Order{ID: 100, UserID: 1, Status: domain.OrderStatusConfirmed}, nil)

		s, err := service.NewOrderService(repo, logger)
		assert.NoError(t, err)

		err = s.CancelOrderByPaymentFailure(context.Background(), 100, 1, "timeout")
		assert.NoError(t, err)
	})

	t.Run("unused coupon halts compensation", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		expectTx(repo)

		order := &domain.Order{ID: 100, UserID: 1, Status: domain.OrderStatusPending,
			PaymentMethod: domain.PaymentMethodCard}

		repo.EXPECT().GetOrderForUpdate(gomock.Any(), uint64(100)).Return(order, nil)
		repo.EXPECT().ListOrderItems(gomock.Any(), uint64(100)).
			Return([]*domain.OrderItem{
				{OrderID: 100, ProductID: 10, CouponID: &couponID, Quantity: 2},
			}, nil)
		repo.EXPECT().GetProductForUpdate(gomock.Any(), uint64(10)).
			Return(&domain.Product{ID: 10, Stock: 3}, nil)
		repo.EXPECT().UpdateProductStock(gomock.Any(), uint64(10), 5).Return(nil)
		repo.EXPECT().GetCouponForUpdate(gomock.Any(), couponID).
			Return(&domain.Coupon{ID: couponID, UserID: 1, Status: domain.CouponStatusUnused}, nil)

		s, err := service.NewOrderService(repo, logger)
		assert.NoError(t, err)

		err = s.CancelOrderByPaymentFailure(context.Background(), 100, 1, "timeout")
		assert.ErrorIs(t, err, domain.ErrInvalidCompensationState)
	})
}

func TestOrderService_ConfirmOrderByPayment(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	t.Run("pending order confirms", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		expectTx(repo)

		repo.EXPECT().GetOrderForUpdate(gomock.Any(), uint64(100)).
			Return(&domain.Order{ID: 100, UserID: 1, Status: domain.OrderStatusPending}, nil)
		repo.EXPECT().UpdateOrder(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o *domain.Order) error {
				assert.Equal(t, domain.OrderStatusConfirmed, o.Status)
				return nil
			})

		s, err := service.NewOrderService(repo, logger)
		assert.NoError(t, err)
		assert.NoError(t, s.ConfirmOrderByPayment(context.Background(), 100, 1))
	})

	t.Run("redelivered confirmation is a no-op", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		expectTx(repo)

		repo.EXPECT().GetOrderForUpdate(gomock.Any(), uint64(100)).
			Return(&domain.Order{ID: 100, UserID: 1, Status: domain.OrderStatusConfirmed}, nil)

		s, err := service.NewOrderService(repo, logger)
		assert.NoError(t, err)
		assert.NoError(t, s.ConfirmOrderByPayment(context.Background(), 100, 1))
	})
}

func TestPaymentService_ProcessPayment(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	user := &domain.User{ID: 1, Login: "alice"}
	order := func() *domain.Order {
		return &domain.Order{ID: 9, UserID: 1, Status: domain.OrderStatusPending,
			PaymentMethod: domain.PaymentMethodCard,
			FinalTotal:    decimal.MustParse("7000")}
	}

	cmd := port.PaymentCommand{
		Username: "alice",
		OrderID:  9,
		CardType: "CREDIT",
		CardNo:   "1234-5678",
		Amount:   decimal.MustParse("7000"),
	}

	t.Run("gateway accepts, key assigned, still pending", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		gateway := mock.NewMockPaymentGateway(mockCtrl)

		repo.EXPECT().GetUserByLogin(gomock.Any(), "alice").Return(user, nil)
		repo.EXPECT().GetOrderByIDAndUserID(gomock.Any(), uint64(9), uint64(1)).Return(order(), nil)
		repo.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
				p.ID = 55
				return p, nil
			})
		gateway.EXPECT().RequestPayment(gomock.Any(), "alice", gomock.Any()).
			Return(&port.GatewayPayment{TransactionKey: "tx-1", Status: port.GatewayStatusPending}, nil)
		repo.EXPECT().UpdatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p *domain.Payment) error {
				assert.Equal(t, "tx-1", p.TransactionKey)
				assert.Equal(t, domain.PaymentStatusPending, p.Status)
				return nil
			})

		s, err := service.NewPaymentService(repo, gateway, logger)
		assert.NoError(t, err)

		payment, err := s.ProcessPayment(context.Background(), cmd)
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPending, payment.Status)
		assert.Equal(t, "tx-1", payment.TransactionKey)
	})

	t.Run("transport failure writes failed payment instead of pending", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		gateway := mock.NewMockPaymentGateway(mockCtrl)
		expectTx(repo)

		repo.EXPECT().GetUserByLogin(gomock.Any(), "alice").Return(user, nil)
		repo.EXPECT().GetOrderByIDAndUserID(gomock.Any(), uint64(9), uint64(1)).Return(order(), nil)
		repo.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
				p.ID = 55
				return p, nil
			})
		gateway.EXPECT().RequestPayment(gomock.Any(), "alice", gomock.Any()).
			Return(nil, errors.New("connection refused"))
		repo.EXPECT().UpdatePayment(gomock.Any(), gomock.Any()).Return(nil)
		repo.EXPECT().EnqueueEvent(gomock.Any(), gomock.Any()).Return(nil)

		s, err := service.NewPaymentService(repo, gateway, logger)
		assert.NoError(t, err)

		payment, err := s.ProcessPayment(context.Background(), cmd)
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusFailed, payment.Status)
		assert.Equal(t, service.FallbackReason, payment.FailureReason)
	})

	t.Run("gateway rejection records the reason", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		gateway := mock.NewMockPaymentGateway(mockCtrl)
		expectTx(repo)

		repo.EXPECT().GetUserByLogin(gomock.Any(), "alice").Return(user, nil)
		repo.EXPECT().GetOrderByIDAndUserID(gomock.Any(), uint64(9), uint64(1)).Return(order(), nil)
		repo.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
				p.ID = 55
				return p, nil
			})
		gateway.EXPECT().RequestPayment(gomock.Any(), "alice", gomock.Any()).
			Return(&port.GatewayPayment{Status: port.GatewayStatusFailed, Reason: "limit exceeded"}, nil)
		repo.EXPECT().UpdatePayment(gomock.Any(), gomock.Any()).Return(nil)
		repo.EXPECT().EnqueueEvent(gomock.Any(), gomock.Any()).Return(nil)

		s, err := service.NewPaymentService(repo, gateway, logger)
		assert.NoError(t, err)

		payment, err := s.ProcessPayment(context.Background(), cmd)
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusFailed, payment.Status)
		assert.Equal(t, "limit exceeded", payment.FailureReason)
	})

	t.Run("amount mismatch rejected before gateway call", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		gateway := mock.NewMockPaymentGateway(mockCtrl)

		repo.EXPECT().GetUserByLogin(gomock.Any(), "alice").Return(user, nil)
		repo.EXPECT().GetOrderByIDAndUserID(gomock.Any(), uint64(9), uint64(1)).Return(order(), nil)

		s, err := service.NewPaymentService(repo, gateway, logger)
		assert.NoError(t, err)

		badCmd := cmd
		badCmd.Amount = decimal.MustParse("6000")
		_, err = s.ProcessPayment(context.Background(), badCmd)
		assert.ErrorIs(t, err, domain.ErrAmountMismatch)
	})

	t.Run("point order is not payable by card", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		gateway := mock.NewMockPaymentGateway(mockCtrl)

		pointOrder := order()
		pointOrder.PaymentMethod = domain.PaymentMethodPoint

		repo.EXPECT().GetUserByLogin(gomock.Any(), "alice").Return(user, nil)
		repo.EXPECT().GetOrderByIDAndUserID(gomock.Any(), uint64(9), uint64(1)).Return(pointOrder, nil)

		s, err := service.NewPaymentService(repo, gateway, logger)
		assert.NoError(t, err)

		_, err = s.ProcessPayment(context.Background(), cmd)
		assert.ErrorIs(t, err, domain.ErrOrderNotPayable)
	})
}

func TestPaymentService_HandleCallback(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	user := &domain.User{ID: 1, Login: "alice"}
	pending := func() *domain.Payment {
		return &domain.Payment{ID: 55, TransactionKey: "tx-1", OrderID: 9, UserID: 1,
			Amount: decimal.MustParse("7000"), Status: domain.PaymentStatusPending}
	}
	order := &domain.Order{ID: 9, UserID: 1, Status: domain.OrderStatusPending,
		PaymentMethod: domain.PaymentMethodCard, FinalTotal: decimal.MustParse("7000")}

	cb := port.CallbackCommand{
		TransactionKey: "tx-1",
		OrderID:        9,
		Status:         port.GatewayStatusSuccess,
		Amount:         decimal.MustParse("7000"),
	}

	t.Run("success completes payment and enqueues event", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		gateway := mock.NewMockPaymentGateway(mockCtrl)
		expectTx(repo)

		repo.EXPECT().GetPaymentByTransactionKey(gomock.Any(), "tx-1").Return(pending(), nil)
		repo.EXPECT().GetUserByID(gomock.Any(), uint64(1)).Return(user, nil)
		gateway.EXPECT().GetPayment(gomock.Any(), "alice", "tx-1").
			Return(&port.GatewayPayment{TransactionKey: "tx-1",
				Status: port.GatewayStatusSuccess, Amount: decimal.MustParse("7000")}, nil)
		repo.EXPECT().GetOrderByIDAndUserID(gomock.Any(), uint64(9), uint64(1)).Return(order, nil)
		repo.EXPECT().GetPaymentForUpdate(gomock.Any(), uint64(55)).Return(pending(), nil)
		repo.EXPECT().UpdatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p *domain.Payment) error {
				assert.Equal(t, domain.PaymentStatusCompleted, p.Status)
				assert.NotNil(t, p.CompletedAt)
				return nil
			})
		repo.EXPECT().EnqueueEvent(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, event *domain.EventEnvelope) error {
				assert.Equal(t, domain.EventPaymentCompleted, event.EventType)
				return nil
			})

		s, err := service.NewPaymentService(repo, gateway, logger)
		assert.NoError(t, err)
		assert.NoError(t, s.HandleCallback(context.Background(), cb))
	})

	t.Run("duplicate callback is acknowledged without side effects", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		gateway := mock.NewMockPaymentGateway(mockCtrl)

		done := pending()
		done.Status = domain.PaymentStatusCompleted

		repo.EXPECT().GetPaymentByTransactionKey(gomock.Any(), "tx-1").Return(done, nil)

		s, err := service.NewPaymentService(repo, gateway, logger)
		assert.NoError(t, err)
		assert.NoError(t, s.HandleCallback(context.Background(), cb))
	})

	t.Run("unknown transaction key", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		gateway := mock.NewMockPaymentGateway(mockCtrl)

		repo.EXPECT().GetPaymentByTransactionKey(gomock.Any(), "tx-1").
			Return(nil, domain.ErrDataNotFound)

		s, err := service.NewPaymentService(repo, gateway, logger)
		assert.NoError(t, err)
		assert.ErrorIs(t, s.HandleCallback(context.Background(), cb), domain.ErrPaymentNotFound)
	})

	t.Run("callback status disagrees with gateway", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		gateway := mock.NewMockPaymentGateway(mockCtrl)

		repo.EXPECT().GetPaymentByTransactionKey(gomock.Any(), "tx-1").Return(pending(), nil)
		repo.EXPECT().GetUserByID(gomock.Any(), uint64(1)).Return(user, nil)
		gateway.EXPECT().GetPayment(gomock.Any(), "alice", "tx-1").
			Return(&port.GatewayPayment{TransactionKey: "tx-1",
				Status: port.GatewayStatusFailed, Amount: decimal.MustParse("7000")}, nil)

		s, err := service.NewPaymentService(repo, gateway, logger)
		assert.NoError(t, err)
		assert.ErrorIs(t, s.HandleCallback(context.Background(), cb), domain.ErrPaymentDataMismatch)
	})

	t.Run("gateway amount disagrees with order total", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		gateway := mock.NewMockPaymentGateway(mockCtrl)

		repo.EXPECT().GetPaymentByTransactionKey(gomock.Any(), "tx-1").Return(pending(), nil)
		repo.EXPECT().GetUserByID(gomock.Any(), uint64(1)).Return(user, nil)
		gateway.EXPECT().GetPayment(gomock.Any(), "alice", "tx-1").
			Return(&port.GatewayPayment{TransactionKey: "tx-1",
				Status: port.GatewayStatusSuccess, Amount: decimal.MustParse("1")}, nil)
		repo.EXPECT().GetOrderByIDAndUserID(gomock.Any(), uint64(9), uint64(1)).Return(order, nil)

		s, err := service.NewPaymentService(repo, gateway, logger)
		assert.NoError(t, err)
		assert.ErrorIs(t, s.HandleCallback(context.Background(), cb), domain.ErrAmountMismatch)
	})

	t.Run("gateway unreachable propagates as unavailable", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		gateway := mock.NewMockPaymentGateway(mockCtrl)

		repo.EXPECT().GetPaymentByTransactionKey(gomock.Any(), "tx-1").Return(pending(), nil)
		repo.EXPECT().GetUserByID(gomock.Any(), uint64(1)).Return(user, nil)
		gateway.EXPECT().GetPayment(gomock.Any(), "alice", "tx-1").
			Return(nil, errors.New("timeout"))

		s, err := service.NewPaymentService(repo, gateway, logger)
		assert.NoError(t, err)
		assert.ErrorIs(t, s.HandleCallback(context.Background(), cb), domain.ErrGatewayUnavailable)
	})

	t.Run("race with reconciler leaves payment untouched", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		gateway := mock.NewMockPaymentGateway(mockCtrl)
		expectTx(repo)

		timedOut := pending()
		timedOut.Status = domain.PaymentStatusTimeout

		repo.EXPECT().GetPaymentByTransactionKey(gomock.Any(), "tx-1").Return(pending(), nil)
		repo.EXPECT().GetUserByID(gomock.Any(), uint64(1)).Return(user, nil)
		gateway.EXPECT().GetPayment(gomock.Any(), "alice", "tx-1").
			Return(&port.GatewayPayment{TransactionKey: "tx-1",
				Status: port.GatewayStatusSuccess, Amount: decimal.MustParse("7000")}, nil)
		repo.EXPECT().GetOrderByIDAndUserID(gomock.Any(), uint64(9), uint64(1)).Return(order, nil)
		repo.EXPECT().GetPaymentForUpdate(gomock.Any(), uint64(55)).Return(timedOut, nil)

		s, err := service.NewPaymentService(repo, gateway, logger)
		assert.NoError(t, err)
		assert.NoError(t, s.HandleCallback(context.Background(), cb))
	})
}

func TestTimeoutReconciler_Sweep(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	t.Run("stale payments become timeout", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		expectTx(repo)

		stale := []*domain.Payment{
			{ID: 1, TransactionKey: "tx-1", OrderID: 9, UserID: 1, Status: domain.PaymentStatusPending},
			{ID: 2, TransactionKey: "tx-2", OrderID: 10, UserID: 2, Status: domain.PaymentStatusPending},
		}

		repo.EXPECT().ListPendingPaymentsOlderThan(gomock.Any(), gomock.Any()).Return(stale, nil)

		repo.EXPECT().GetPaymentForUpdate(gomock.Any(), uint64(1)).
			Return(&domain.Payment{ID: 1, TransactionKey: "tx-1", OrderID: 9, UserID: 1,
				Status: domain.PaymentStatusPending}, nil)
		repo.EXPECT().UpdatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p *domain.Payment) error {
				assert.Equal(t, domain.PaymentStatusTimeout, p.Status)
				assert.Equal(t, domain.TimeoutReason, p.FailureReason)
				return nil
			})
		repo.EXPECT().EnqueueEvent(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, event *domain.EventEnvelope) error {
				assert.Equal(t, domain.EventPaymentTimeout, event.EventType)
				return nil
			})

		// second payment got its callback between the list and the lock
		repo.EXPECT().GetPaymentForUpdate(gomock.Any(), uint64(2)).
			Return(&domain.Payment{ID: 2, Status: domain.PaymentStatusCompleted}, nil)

		r := service.NewTimeoutReconciler(repo, time.Minute, 10*time.Minute, logger)
		succeeded, failed := r.Sweep(context.Background())
		assert.Equal(t, 2, succeeded)
		assert.Equal(t, 0, failed)
	})

	t.Run("one failure does not abort the sweep", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		expectTx(repo)

		stale := []*domain.Payment{
			{ID: 1, Status: domain.PaymentStatusPending},
			{ID: 2, Status: domain.PaymentStatusPending},
		}

		repo.EXPECT().ListPendingPaymentsOlderThan(gomock.Any(), gomock.Any()).Return(stale, nil)
		repo.EXPECT().GetPaymentForUpdate(gomock.Any(), uint64(1)).
			Return(nil, errors.New("connection reset"))
		repo.EXPECT().GetPaymentForUpdate(gomock.Any(), uint64(2)).
			Return(&domain.Payment{ID: 2, Status: domain.PaymentStatusPending}, nil)
		repo.EXPECT().UpdatePayment(gomock.Any(), gomock.Any()).Return(nil)
		repo.EXPECT().EnqueueEvent(gomock.Any(), gomock.Any()).Return(nil)

		r := service.NewTimeoutReconciler(repo, time.Minute, 10*time.Minute, logger)
		succeeded, failed := r.Sweep(context.Background())
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, 1, failed)
	})
}
