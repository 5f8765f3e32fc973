package product

import "time"

const (
	EventProductCreated      = "ProductCreated"
	EventProductUpdated      = "ProductUpdated"
	EventProductPriceChanged = "ProductPriceChanged"
	EventProductImageUpdated = "ProductImageUpdated"
	EventProductDeleted      = "ProductDeleted"
)

type ProductCreated struct {
	ProductID      string    `json:"product_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Kind           string    `json:"kind"`
	Price          int       `json:"price"`
	WarrantyMonths int       `json:"warranty_months"`
	ImageURL       string    `json:"image_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type ProductUpdated struct {
	ProductID      string    `json:"product_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Kind           string    `json:"kind"`
	WarrantyMonths int       `json:"warranty_months"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProductPriceChanged is a separate event so price history survives in the
// event log; installment quotes always read the current price.
type ProductPriceChanged struct {
	ProductID string    `json:"product_id"`
	Price     int       `json:"price"`
	ChangedAt time.Time `json:"changed_at"`
}

type ProductImageUpdated struct {
	ProductID string    `json:"product_id"`
	ImageURL  string    `json:"image_url"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProductDeleted struct {
	ProductID string    `json:"product_id"`
	DeletedAt time.Time `json:"deleted_at"`
}
