package readmodel

import "time"

// ProductReadModel is the read model for catalog products
type ProductReadModel struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Kind           string    `json:"kind"`
	Price          int       `json:"price"`
	WarrantyMonths int       `json:"warranty_months"`
	ImageURL       string    `json:"image_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// OrderItemReadModel represents an item in an order. Name, image and price
// are snapshots taken at order time so later catalog edits do not rewrite
// order history.
type OrderItemReadModel struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	ImageURL  string `json:"image_url,omitempty"`
	Quantity  int    `json:"quantity"`
	Price     int    `json:"price"`
}

// OrderReadModel is the read model for orders. DeliveredAt stays nil until
// the order is marked delivered; warranty coverage is anchored to it.
type OrderReadModel struct {
	ID           string               `json:"id"`
	CustomerName string               `json:"customer_name"`
	Phone        string               `json:"phone"`
	Items        []OrderItemReadModel `json:"items"`
	Total        int                  `json:"total"`
	Status       string               `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
	DeliveredAt  *time.Time           `json:"delivered_at,omitempty"`
	CancelReason string               `json:"cancel_reason,omitempty"`
}

// PostReadModel is the read model for blog posts
type PostReadModel struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	CoverURL    string     `json:"cover_url,omitempty"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
