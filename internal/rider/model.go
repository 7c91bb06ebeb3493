package rider

import "time"

// Rider is the delivery-side view of a rider account. Auth and profile fields
// live in the rider service; only what assignment and cash verification need
// is modeled here.
type Rider struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	PhoneNo       string    `json:"phone_no"`
	IsActive      bool      `json:"is_active"`
	DeliveryCount int       `json:"delivery_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
