package order

import "time"

const (
	EventOrderPlaced    = "OrderPlaced"
	EventOrderConfirmed = "OrderConfirmed"
	EventOrderShipped   = "OrderShipped"
	EventOrderDelivered = "OrderDelivered"
	EventOrderCancelled = "OrderCancelled"
)

// OrderItem snapshots the product at order time so catalog edits never
// rewrite order history.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	ImageURL  string `json:"image_url,omitempty"`
	Quantity  int    `json:"quantity"`
	Price     int    `json:"price"`
}

type OrderPlaced struct {
	OrderID      string      `json:"order_id"`
	CustomerName string      `json:"customer_name"`
	Phone        string      `json:"phone"`
	Items        []OrderItem `json:"items"`
	Total        int         `json:"total"`
	PlacedAt     time.Time   `json:"placed_at"`
}

type OrderConfirmed struct {
	OrderID     string    `json:"order_id"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

type OrderShipped struct {
	OrderID   string    `json:"order_id"`
	ShippedAt time.Time `json:"shipped_at"`
}

// OrderDelivered carries the delivery date that anchors warranty coverage.
type OrderDelivered struct {
	OrderID     string    `json:"order_id"`
	DeliveredAt time.Time `json:"delivered_at"`
}

type OrderCancelled struct {
	OrderID     string    `json:"order_id"`
	Reason      string    `json:"reason"`
	CancelledAt time.Time `json:"cancelled_at"`
}
