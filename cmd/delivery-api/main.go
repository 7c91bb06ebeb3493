package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/quickbites/delivery-api/docs"
	"github.com/quickbites/delivery-api/internal/catalog"
	"github.com/quickbites/delivery-api/internal/config"
	"github.com/quickbites/delivery-api/internal/customer"
	"github.com/quickbites/delivery-api/internal/httpx"
	"github.com/quickbites/delivery-api/internal/order"
	"github.com/quickbites/delivery-api/internal/payment"
	"github.com/quickbites/delivery-api/internal/rider"
)

// @title        Delivery API
// @version      1.0
// @description  Food-delivery marketplace backend: orders, rider assignment and payment reconciliation.
// @BasePath     /
func main() {
	cfg := config.Load()

	logger, err := httpx.NewLogger()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	pool, err := pgxpool.New(context.Background(), cfg.PostgresDSN)
	if err != nil {
		logger.Fatal("postgres connect", zap.Error(err))
	}
	defer pool.Close()

	catalogRepo := catalog.NewPGRepo(pool)
	riderRepo := rider.NewPGRepo(pool)
	orderRepo := order.NewPGRepo(pool)
	txnRepo := payment.NewPGRepo(pool)

	customers := customer.NewClient(cfg.CustomerSvcBaseURL)
	gateway := payment.NewSSLCommerz(cfg.GatewayStoreID, cfg.GatewayStorePassword, cfg.GatewayLive, cfg.GatewayBaseURL)

	orderSvc := order.NewService(orderRepo, catalogRepo, riderRepo, logger)
	paymentSvc := payment.NewService(txnRepo, orderRepo, riderRepo, customers, gateway, cfg.CallbackBaseURL, logger)

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(logger))

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/orders", createOrderHandler(orderSvc))
	r.GET("/orders", listOrdersHandler(orderRepo))
	r.GET("/orders/:id", getOrderHandler(orderRepo))
	r.GET("/orders/:id/transactions", listTransactionsByOrderHandler(txnRepo))
	r.PATCH("/orders/:id/status", updateOrderStatusHandler(orderSvc))
	r.GET("/customers/:customerId/orders", listOrdersByCustomerHandler(orderRepo))
	r.GET("/restaurants/:restaurantId/orders", listOrdersByRestaurantHandler(orderRepo))

	r.POST("/payment/initiate", initiatePaymentHandler(paymentSvc))
	r.POST("/payment/success", paymentSuccessHandler(paymentSvc))
	r.POST("/payment/fail", paymentFailHandler(paymentSvc, "Payment failed"))
	r.POST("/payment/cancel", paymentFailHandler(paymentSvc, "Payment cancelled"))
	// IPN is handled exactly like the synchronous success callback.
	r.POST("/payment/ipn", paymentSuccessHandler(paymentSvc))
	r.PATCH("/payment/verify-cash/:transactionId", verifyCashHandler(paymentSvc))
	r.GET("/payment/transactions", listTransactionsHandler(txnRepo))
	r.GET("/payment/transactions/:id", getTransactionHandler(txnRepo))

	logger.Info("delivery-api listening", zap.String("addr", cfg.HTTPAddr))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		logger.Fatal("http server", zap.Error(err))
	}
}
