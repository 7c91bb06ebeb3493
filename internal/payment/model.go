package payment

import (
	"encoding/json"
	"time"
)

// Payment methods.
const (
	MethodOnline = "Online"
	MethodCash   = "Cash"
)

// Payment statuses. Pending is the initial value for both methods; Completed
// is only reachable from Online transactions, Verified only from Cash.
// Completed, Verified and Failed are terminal.
const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
	StatusFailed    = "Failed"
	StatusVerified  = "Verified"
)

func ValidMethod(m string) bool {
	return m == MethodOnline || m == MethodCash
}

// Transaction is the ledger record for one payment attempt against an order.
// At most one exists per order at a time.
type Transaction struct {
	ID         string `json:"id"`
	OrderID    string `json:"order_id"`
	CustomerID string `json:"customer_id"`
	// Copied from the order's total at initiation time (NUMERIC -> string).
	Amount string `json:"amount"`
	Method string `json:"payment_method"`
	Status string `json:"payment_status"`
	// Online-only gateway fields.
	GatewayTranID string          `json:"transaction_id,omitempty"`
	SessionID     string          `json:"session_id,omitempty"`
	GatewayData   json.RawMessage `json:"gateway_data,omitempty"`
	// Cash verification fields; set once on successful verification. VerifiedAt
	// doubles as the completion time for online payments.
	VerifiedBy *string    `json:"verified_by,omitempty"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// InitiatePaymentRequest starts a payment for an order.
// swagger:model InitiatePaymentRequest
type InitiatePaymentRequest struct {
	OrderID       string `json:"order_id" example:"7b1d9e7a-3f2c-4d5e-8a9b-0c1d2e3f4a5b"`
	PaymentMethod string `json:"payment_method" example:"Cash"`
}

// VerifyCashRequest is the rider confirmation payload.
// swagger:model VerifyCashRequest
type VerifyCashRequest struct {
	RiderID string `json:"rider_id" example:"5f6e7d8c-9b0a-4c3d-8e2f-1a2b3c4d5e6f"`
}
