package order

// CreateOrderItem is one requested line.
// swagger:model CreateOrderItem
type CreateOrderItem struct {
	ItemID   string `json:"item_id" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	Quantity int    `json:"quantity" example:"2"`
}

// CreateOrderRequest is the order-creation payload.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	CustomerID      string            `json:"customer_id" example:"b2f5ff47-2b1e-4f22-8a96-5f3c1f2f2e7b"`
	RestaurantID    string            `json:"restaurant_id" example:"0c9a1f3e-8e2d-4f7a-9b6c-2d1e3f4a5b6c"`
	Items           []CreateOrderItem `json:"items"`
	DeliveryAddress string            `json:"delivery_address" example:"12/3 Lake Road, Dhaka"`
}

// UpdateStatusRequest sets an order's status.
// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status string `json:"status" example:"Accepted"`
}
