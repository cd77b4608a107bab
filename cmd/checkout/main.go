package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"checkout/internal/adapter/auth"
	"checkout/internal/adapter/client/pg"
	"checkout/internal/adapter/config"
	"checkout/internal/adapter/events"
	"checkout/internal/adapter/handler/http"
	"checkout/internal/adapter/logger"
	"checkout/internal/adapter/storage"
	"checkout/internal/adapter/storage/repository"
	"checkout/internal/core/service"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log := logger.NewLogger(conf.App)
	if log == nil {
		fmt.Printf("error creating log")
		return
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	ctx := context.Background()

	db, err := storage.NewDBStorage(ctx, conf.Database)
	if err != nil {
		log.Error("database error", zap.Error(err))
		return
	}
	err = db.RunMigrations()
	if err != nil {
		log.Error("database migration error", zap.Error(err))
		return
	}

	repo, err := repository.NewRepository(db)
	if err != nil {
		log.Error("repo creating error", zap.Error(err))
		return
	}
	tokenService, err := auth.New()
	if err != nil {
		log.Error("token service creating error", zap.Error(err))
		return
	}

	gateway, err := pg.NewClient(conf.Gateway, log.Named("Gateway"))
	if err != nil {
		log.Error("gateway client creating error", zap.Error(err))
		return
	}

	userService, err := service.NewUserService(repo, tokenService, log.Named("UserService"))
	if err != nil {
		log.Error("user service creating error", zap.Error(err))
		return
	}
	orderService, err := service.NewOrderService(repo, log.Named("OrderService"))
	if err != nil {
		log.Error("order service creating error", zap.Error(err))
		return
	}
	paymentService, err := service.NewPaymentService(repo, gateway, log.Named("PaymentService"))
	if err != nil {
		log.Error("payment service creating error", zap.Error(err))
		return
	}

	reconciler := service.NewTimeoutReconciler(repo,
		conf.Reconciler.Interval, conf.Reconciler.Threshold, log.Named("Reconciler"))
	reconciler.Start(ctx)

	publisher, err := events.NewPublisher(conf.Kafka, log.Named("Publisher"))
	if err != nil {
		log.Error("publisher creating error", zap.Error(err))
		return
	}
	dispatcher := events.NewDispatcher(repo, publisher, log.Named("Dispatcher"))
	dispatcher.Start(ctx)

	var rdb *redis.Client
	if conf.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: conf.Redis.Addr})
	}
	consumer, err := events.NewConsumer(conf.Kafka, rdb, orderService, log.Named("Consumer"))
	if err != nil {
		log.Error("consumer creating error", zap.Error(err))
		return
	}
	consumer.Start(ctx)

	userHandler, err := http.NewUserHandler(userService, log.Named("User handler"))
	if err != nil {
		log.Error("user handler creating error", zap.Error(err))
		return
	}
	orderHandler, err := http.NewOrderHandler(orderService, log.Named("Order handler"))
	if err != nil {
		log.Error("order handler creating error", zap.Error(err))
		return
	}
	paymentHandler, err := http.NewPaymentHandler(paymentService, log.Named("Payment handler"))
	if err != nil {
		log.Error("payment handler creating error", zap.Error(err))
		return
	}

	r, err := http.NewRouter(conf.HTTP, tokenService, log.Named("Router"),
		userHandler, orderHandler, paymentHandler)
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	err = r.Serve(conf.HTTP.HostString)
	if err != nil {
		log.Error("router serve error", zap.Error(err))
		return
	}
}
