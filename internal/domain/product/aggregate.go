package product

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tranphihao2k3/LapLap-sub001/internal/infrastructure/store"
)

const AggregateType = "Product"

// Kind partitions the catalog into the storefront's three departments.
type Kind string

const (
	KindLaptop    Kind = "laptop"
	KindComponent Kind = "component"
	KindSoftware  Kind = "software"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidPrice    = errors.New("price must be positive")
	ErrInvalidName     = errors.New("name is required")
	ErrInvalidKind     = errors.New("unknown product kind")
	ErrInvalidWarranty = errors.New("warranty months must not be negative")
)

func validKind(k Kind) bool {
	switch k {
	case KindLaptop, KindComponent, KindSoftware:
		return true
	}
	return false
}

type Product struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Kind           Kind      `json:"kind"`
	Price          int       `json:"price"`
	WarrantyMonths int       `json:"warranty_months"`
	ImageURL       string    `json:"image_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Service struct {
	eventStore store.EventStoreInterface
}

func NewService(es store.EventStoreInterface) *Service {
	return &Service{eventStore: es}
}

func (s *Service) Create(ctx context.Context, name, description string, kind Kind, price, warrantyMonths int, imageURL string) (*Product, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	if !validKind(kind) {
		return nil, ErrInvalidKind
	}
	if price <= 0 {
		return nil, ErrInvalidPrice
	}
	if warrantyMonths < 0 {
		return nil, ErrInvalidWarranty
	}

	productID := uuid.New().String()
	now := time.Now()

	event := ProductCreated{
		ProductID:      productID,
		Name:           name,
		Description:    description,
		Kind:           string(kind),
		Price:          price,
		WarrantyMonths: warrantyMonths,
		ImageURL:       imageURL,
		CreatedAt:      now,
	}

	_, err := s.eventStore.Append(ctx, productID, AggregateType, EventProductCreated, event)
	if err != nil {
		return nil, err
	}

	return &Product{
		ID:             productID,
		Name:           name,
		Description:    description,
		Kind:           kind,
		Price:          price,
		WarrantyMonths: warrantyMonths,
		ImageURL:       imageURL,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func (s *Service) Update(ctx context.Context, productID, name, description string, kind Kind, warrantyMonths int) error {
	if name == "" {
		return ErrInvalidName
	}
	if !validKind(kind) {
		return ErrInvalidKind
	}
	if warrantyMonths < 0 {
		return ErrInvalidWarranty
	}

	if err := s.exists(productID); err != nil {
		return err
	}

	event := ProductUpdated{
		ProductID:      productID,
		Name:           name,
		Description:    description,
		Kind:           string(kind),
		WarrantyMonths: warrantyMonths,
		UpdatedAt:      time.Now(),
	}

	_, err := s.eventStore.Append(ctx, productID, AggregateType, EventProductUpdated, event)
	return err
}

func (s *Service) ChangePrice(ctx context.Context, productID string, price int) error {
	if price <= 0 {
		return ErrInvalidPrice
	}

	if err := s.exists(productID); err != nil {
		return err
	}

	event := ProductPriceChanged{
		ProductID: productID,
		Price:     price,
		ChangedAt: time.Now(),
	}

	_, err := s.eventStore.Append(ctx, productID, AggregateType, EventProductPriceChanged, event)
	return err
}

func (s *Service) UpdateImage(ctx context.Context, productID, imageURL string) error {
	if err := s.exists(productID); err != nil {
		return err
	}

	event := ProductImageUpdated{
		ProductID: productID,
		ImageURL:  imageURL,
		UpdatedAt: time.Now(),
	}

	_, err := s.eventStore.Append(ctx, productID, AggregateType, EventProductImageUpdated, event)
	return err
}

func (s *Service) Delete(ctx context.Context, productID string) error {
	if err := s.exists(productID); err != nil {
		return err
	}

	event := ProductDeleted{
		ProductID: productID,
		DeletedAt: time.Now(),
	}

	_, err := s.eventStore.Append(ctx, productID, AggregateType, EventProductDeleted, event)
	return err
}

func (s *Service) exists(productID string) error {
	if len(s.eventStore.GetEvents(productID)) == 0 {
		return ErrProductNotFound
	}
	return nil
}
