package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"checkout/internal/adapter/config"
	"checkout/internal/core/port"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	conf *config.HTTP,
	tokenService port.TokenService,
	logger *zap.Logger,
	userHandler *UserHandler,
	orderHandler *OrderHandler,
	paymentHandler *PaymentHandler) (*Router, error) {

	router := gin.New()

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		user := api.Group("/user")
		{
			user.POST("/register", userHandler.RegisterUser)
			user.POST("/login", userHandler.LoginUser)
		}

		points := api.Group("/points")
		{
			points.Use(authCheck(tokenService, logger))
			points.GET("", userHandler.PointBalance)
			points.POST("/charge", userHandler.ChargePoints)
		}

		orders := api.Group("/orders")
		{
			orders.Use(authCheck(tokenService, logger))
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("", orderHandler.ListOrdersByUser)
			orders.GET("/:order", orderHandler.GetOrder)
			orders.DELETE("/:order", orderHandler.CancelOrder)
		}

		payments := api.Group("/payments")
		{
			// the gateway authenticates callbacks out of band, so this
			// route stays outside the token middleware
			payments.POST("/callback", paymentHandler.Callback)

			authed := payments.Group("")
			{
				authed.Use(authCheck(tokenService, logger))
				authed.POST("", paymentHandler.ProcessPayment)
				authed.GET("/:key", paymentHandler.GetPayment)
				authed.POST("/:key/cancel", paymentHandler.CancelPayment)
				authed.POST("/:key/refund", paymentHandler.RefundPayment)
			}
		}
	}

	return &Router{router}, nil
}

// Serve starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
