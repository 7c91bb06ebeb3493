// Package payment keeps the transaction ledger, wraps the online-payment
// gateway and reconciles gateway/cash outcomes back into order status.
package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quickbites/delivery-api/internal/customer"
	"github.com/quickbites/delivery-api/internal/order"
	"github.com/quickbites/delivery-api/internal/rider"
)

var (
	ErrInvalidMethod    = errors.New(`invalid payment method, must be either "Online" or "Cash"`)
	ErrValidationFailed = errors.New("payment validation failed")
	ErrNotCash          = errors.New("this transaction is not a cash payment")
	ErrGateway          = errors.New("payment gateway error")
)

// OrderStore is the slice of the order repository the reconciliation paths
// need. order.Repository satisfies it.
type OrderStore interface {
	GetByID(ctx context.Context, id string) (*order.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// RiderStore resolves the rider confirming a cash payment.
type RiderStore interface {
	GetByID(ctx context.Context, id string) (*rider.Rider, error)
}

// Service orchestrates payment initiation, gateway callbacks and cash
// verification, keeping ledger and order status consistent.
type Service struct {
	txns         Repository
	orders       OrderStore
	riders       RiderStore
	customers    customer.Fetcher
	gateway      Gateway
	callbackBase string
	log          *zap.Logger
}

func NewService(txns Repository, orders OrderStore, riders RiderStore,
	customers customer.Fetcher, gw Gateway, callbackBase string, log *zap.Logger) *Service {
	return &Service{
		txns:         txns,
		orders:       orders,
		riders:       riders,
		customers:    customers,
		gateway:      gw,
		callbackBase: callbackBase,
		log:          log,
	}
}

// InitiateResult carries the new transaction and, for online payments, the
// hosted-checkout redirect URL.
type InitiateResult struct {
	Transaction *Transaction `json:"transaction"`
	PaymentURL  string       `json:"payment_url,omitempty"`
}

// Initiate starts a payment for an order. Cash records a Pending transaction
// and waits for rider verification; Online opens a gateway session and only
// persists the transaction once the gateway hands back a redirect URL.
func (s *Service) Initiate(ctx context.Context, orderID, method string) (*InitiateResult, error) {
	if !ValidMethod(method) {
		return nil, ErrInvalidMethod
	}

	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	existing, err := s.txns.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrAlreadyInitiated
	}

	if method == MethodCash {
		t := &Transaction{
			ID:         uuid.NewString(),
			OrderID:    o.ID,
			CustomerID: o.CustomerID,
			Amount:     o.TotalAmount,
			Method:     MethodCash,
			Status:     StatusPending,
		}
		if err := s.txns.Create(ctx, t); err != nil {
			return nil, err
		}
		return &InitiateResult{Transaction: t}, nil
	}

	cust, err := s.customers.FetchCustomer(ctx, o.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("fetch customer %s: %w", o.CustomerID, err)
	}

	tranID := fmt.Sprintf("TXN_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
	sess, err := s.gateway.CreateSession(ctx, SessionRequest{
		Amount:          o.TotalAmount,
		Currency:        "BDT",
		TranID:          tranID,
		SuccessURL:      s.callbackBase + "/payment/success",
		FailURL:         s.callbackBase + "/payment/fail",
		CancelURL:       s.callbackBase + "/payment/cancel",
		IPNURL:          s.callbackBase + "/payment/ipn",
		CustomerName:    cust.Name,
		CustomerEmail:   cust.Email,
		CustomerPhone:   cust.PhoneNo,
		Address:         o.DeliveryAddress,
		ProductName:     "Food Order",
		ProductCategory: "Food",
	})
	if err != nil {
		s.log.Error("gateway session init failed", zap.String("order_id", orderID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if sess.GatewayPageURL == "" {
		s.log.Warn("gateway returned no redirect URL",
			zap.String("order_id", orderID), zap.String("reason", sess.FailedReason))
		return nil, fmt.Errorf("%w: no redirect URL", ErrGateway)
	}

	t := &Transaction{
		ID:            uuid.NewString(),
		OrderID:       o.ID,
		CustomerID:    o.CustomerID,
		Amount:        o.TotalAmount,
		Method:        MethodOnline,
		Status:        StatusPending,
		GatewayTranID: tranID,
		SessionID:     sess.SessionKey,
		GatewayData:   sess.Raw,
	}
	if err := s.txns.Create(ctx, t); err != nil {
		return nil, err
	}
	return &InitiateResult{Transaction: t, PaymentURL: sess.GatewayPageURL}, nil
}

// CompleteOnline handles the gateway's success callback (and IPN). The
// callback body is never trusted on its own: the val_id is revalidated
// against the gateway before anything is written.
func (s *Service) CompleteOnline(ctx context.Context, gatewayTranID, valID string) (*Transaction, error) {
	val, err := s.gateway.ValidateTransaction(ctx, valID)
	if err != nil {
		s.log.Error("gateway validation call failed", zap.String("tran_id", gatewayTranID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if !val.Valid() {
		return nil, ErrValidationFailed
	}

	t, err := s.txns.MarkCompleted(ctx, gatewayTranID, val.Raw, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.orders.UpdateStatus(ctx, t.OrderID, order.StatusAccepted); err != nil {
		return nil, err
	}
	return t, nil
}

// FailOnline handles the gateway's fail and cancel callbacks. An unknown
// tran_id is a no-op: the gateway wants its ack regardless.
func (s *Service) FailOnline(ctx context.Context, gatewayTranID string) error {
	if gatewayTranID == "" {
		return nil
	}
	return s.txns.MarkFailed(ctx, gatewayTranID)
}

// VerifyCash records a rider's confirmation that cash changed hands, then
// moves the order to Delivered with its delivery time. The only path that
// takes an order all the way to Delivered.
func (s *Service) VerifyCash(ctx context.Context, transactionID, riderID string) (*Transaction, error) {
	if _, err := s.riders.GetByID(ctx, riderID); err != nil {
		return nil, err
	}

	t, err := s.txns.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if t.Method != MethodCash {
		return nil, ErrNotCash
	}
	if t.Status == StatusVerified {
		return nil, ErrAlreadyVerified
	}

	t, err = s.txns.Verify(ctx, transactionID, riderID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.orders.UpdateStatus(ctx, t.OrderID, order.StatusDelivered); err != nil {
		return nil, err
	}
	return t, nil
}
