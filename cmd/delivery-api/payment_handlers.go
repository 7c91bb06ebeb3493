package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quickbites/delivery-api/internal/order"
	"github.com/quickbites/delivery-api/internal/payment"
	"github.com/quickbites/delivery-api/internal/rider"
)

// callbackField reads a gateway callback parameter. The gateway posts
// form-encoded bodies; JSON is accepted too for manual testing.
func callbackField(c *gin.Context, key string) string {
	if v := c.PostForm(key); v != "" {
		return v
	}
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err == nil {
		if v, ok := body[key].(string); ok {
			return v
		}
	}
	return ""
}

// @Summary  Initiate a payment (online or cash)
// @Tags     payment
// @Accept   json
// @Produce  json
// @Param    request body payment.InitiatePaymentRequest true "payment payload"
// @Success  201 {object} map[string]interface{}
// @Failure  400 {object} map[string]interface{} "bad method/id or payment already initiated"
// @Failure  404 {object} map[string]interface{} "order not found"
// @Router   /payment/initiate [post]
func initiatePaymentHandler(svc *payment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req payment.InitiatePaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json body"})
			return
		}
		if req.OrderID == "" || req.PaymentMethod == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Order ID and payment method are required"})
			return
		}
		if _, err := uuid.Parse(req.OrderID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order ID"})
			return
		}

		res, err := svc.Initiate(c.Request.Context(), req.OrderID, req.PaymentMethod)
		switch {
		case err == nil:
		case errors.Is(err, payment.ErrInvalidMethod):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		case errors.Is(err, order.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		case errors.Is(err, payment.ErrAlreadyInitiated):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Payment already initiated for this order"})
			return
		case errors.Is(err, payment.ErrGateway):
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Payment gateway error", "error": err.Error()})
			return
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "error initiating payment", "error": err.Error()})
			return
		}

		if res.Transaction.Method == payment.MethodCash {
			c.JSON(http.StatusCreated, gin.H{
				"message":     "Cash payment initiated. Payment will be verified upon delivery.",
				"transaction": res.Transaction,
			})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message":        "Online payment initiated successfully",
			"payment_url":    res.PaymentURL,
			"transaction_id": res.Transaction.GatewayTranID,
			"transaction":    res.Transaction,
		})
	}
}

// paymentSuccessHandler serves both the success callback and the IPN; the
// val_id is revalidated server-side before anything is recorded.
//
// @Summary  Gateway success callback
// @Tags     payment
// @Produce  json
// @Success  200 {object} map[string]interface{}
// @Failure  400 {object} map[string]interface{} "missing fields or validation failed"
// @Failure  404 {object} map[string]interface{} "transaction not found"
// @Router   /payment/success [post]
func paymentSuccessHandler(svc *payment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tranID := callbackField(c, "tran_id")
		valID := callbackField(c, "val_id")
		if tranID == "" || valID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Missing transaction details"})
			return
		}

		t, err := svc.CompleteOnline(c.Request.Context(), tranID, valID)
		switch {
		case err == nil:
		case errors.Is(err, payment.ErrValidationFailed):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Payment validation failed"})
			return
		case errors.Is(err, payment.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Transaction not found"})
			return
		case errors.Is(err, payment.ErrGateway):
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Payment gateway error", "error": err.Error()})
			return
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "error processing successful payment", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment completed successfully", "transaction": t})
	}
}

// paymentFailHandler covers both the fail and cancel callbacks: mark the
// transaction Failed when it exists, ack either way.
//
// @Summary  Gateway fail/cancel callback
// @Tags     payment
// @Produce  json
// @Success  200 {object} map[string]interface{}
// @Router   /payment/fail [post]
func paymentFailHandler(svc *payment.Service, ack string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tranID := callbackField(c, "tran_id")
		if err := svc.FailOnline(c.Request.Context(), tranID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "error processing payment callback", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": ack})
	}
}

// @Summary  Verify a cash payment (rider endpoint)
// @Tags     payment
// @Accept   json
// @Produce  json
// @Param    transactionId path string true "transaction id"
// @Param    request body payment.VerifyCashRequest true "verifying rider"
// @Success  200 {object} map[string]interface{}
// @Failure  400 {object} map[string]interface{} "bad id, not cash, or already verified"
// @Failure  404 {object} map[string]interface{}
// @Router   /payment/verify-cash/{transactionId} [patch]
func verifyCashHandler(svc *payment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		transactionID := c.Param("transactionId")
		var req payment.VerifyCashRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json body"})
			return
		}
		if req.RiderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Rider ID is required"})
			return
		}
		if _, err := uuid.Parse(transactionID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid ID format"})
			return
		}
		if _, err := uuid.Parse(req.RiderID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid ID format"})
			return
		}

		t, err := svc.VerifyCash(c.Request.Context(), transactionID, req.RiderID)
		switch {
		case err == nil:
		case errors.Is(err, payment.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Transaction not found"})
			return
		case errors.Is(err, rider.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Rider not found"})
			return
		case errors.Is(err, payment.ErrNotCash):
			c.JSON(http.StatusBadRequest, gin.H{"message": "This transaction is not a cash payment"})
			return
		case errors.Is(err, payment.ErrAlreadyVerified):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Payment already verified"})
			return
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "error verifying cash payment", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cash payment verified successfully", "transaction": t})
	}
}

// @Summary  Get a transaction by id
// @Tags     payment
// @Produce  json
// @Param    id path string true "transaction id"
// @Success  200 {object} payment.Transaction
// @Failure  404 {object} map[string]interface{}
// @Router   /payment/transactions/{id} [get]
func getTransactionHandler(repo payment.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := uuid.Parse(id); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid transaction ID"})
			return
		}
		t, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, payment.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Transaction not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "error fetching transaction", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

// @Summary  List transactions for an order
// @Tags     payment
// @Produce  json
// @Param    id path string true "order id"
// @Success  200 {array} payment.Transaction
// @Router   /orders/{id}/transactions [get]
func listTransactionsByOrderHandler(repo payment.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("id")
		if _, err := uuid.Parse(orderID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order ID"})
			return
		}
		txns, err := repo.ListByOrder(c.Request.Context(), orderID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "error fetching transactions", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, txns)
	}
}

// @Summary  List all transactions
// @Tags     payment
// @Produce  json
// @Success  200 {array} payment.Transaction
// @Router   /payment/transactions [get]
func listTransactionsHandler(repo payment.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		txns, err := repo.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "error fetching transactions", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, txns)
	}
}
