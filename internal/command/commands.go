package command

import "github.com/tranphihao2k3/LapLap-sub001/internal/domain/product"

// Product Commands
type CreateProduct struct {
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	Kind           product.Kind `json:"kind"`
	Price          int          `json:"price"`
	WarrantyMonths int          `json:"warranty_months"`
	ImageURL       string       `json:"image_url"`
}

type UpdateProduct struct {
	ProductID      string       `json:"product_id"`
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	Kind           product.Kind `json:"kind"`
	WarrantyMonths int          `json:"warranty_months"`
}

type ChangeProductPrice struct {
	ProductID string `json:"product_id"`
	Price     int    `json:"price"`
}

type UpdateProductImage struct {
	ProductID string `json:"product_id"`
	ImageURL  string `json:"image_url"`
}

type DeleteProduct struct {
	ProductID string `json:"product_id"`
}

// Order Commands

// OrderLine references a catalog product; name, image and price are
// snapshotted from the read model when the order is placed.
type OrderLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type PlaceOrder struct {
	CustomerName string      `json:"customer_name"`
	Phone        string      `json:"phone"`
	Lines        []OrderLine `json:"items"`
}

type ConfirmOrder struct {
	OrderID string `json:"order_id"`
}

type ShipOrder struct {
	OrderID string `json:"order_id"`
}

type DeliverOrder struct {
	OrderID string `json:"order_id"`
}

type CancelOrder struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

// Post Commands
type CreatePost struct {
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
	CoverURL string `json:"cover_url"`
}

type UpdatePost struct {
	PostID   string `json:"post_id"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
	CoverURL string `json:"cover_url"`
}

type PublishPost struct {
	PostID string `json:"post_id"`
}

type DeletePost struct {
	PostID string `json:"post_id"`
}
