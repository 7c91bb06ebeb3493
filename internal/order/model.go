package order

import "time"

// Order status values. UpdateStatus accepts any of them over any current
// value (administrative override); the payment flows drive Accepted and
// Delivered through their own conditional updates.
const (
	StatusPending    = "Pending"
	StatusAccepted   = "Accepted"
	StatusInProgress = "In Progress"
	StatusDelivered  = "Delivered"
	StatusCancelled  = "Cancelled"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusInProgress, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID           string  `json:"id"`
	CustomerID   string  `json:"customer_id"`
	RestaurantID string  `json:"restaurant_id"`
	RiderID      *string `json:"rider_id,omitempty"`
	Items        []Item  `json:"items"`
	// NUMERIC -> string; frozen at creation time, never recomputed from the
	// catalog afterward.
	TotalAmount     string     `json:"total_amount"`
	Status          string     `json:"status"`
	DeliveryAddress string     `json:"delivery_address"`
	OrderedAt       time.Time  `json:"ordered_at"`
	DeliveredAt     *time.Time `json:"delivered_at,omitempty"`
}

// Item is an order line. Name and UnitPrice are copied from the catalog when
// the order is priced so later menu edits cannot change order history.
type Item struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id"`
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}
