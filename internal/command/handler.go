package command

import (
	"context"
	"errors"

	"github.com/tranphihao2k3/LapLap-sub001/internal/domain/order"
	"github.com/tranphihao2k3/LapLap-sub001/internal/domain/post"
	"github.com/tranphihao2k3/LapLap-sub001/internal/domain/product"
	"github.com/tranphihao2k3/LapLap-sub001/internal/infrastructure/store"
	"github.com/tranphihao2k3/LapLap-sub001/internal/readmodel"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

type Handler struct {
	productSvc *product.Service
	orderSvc   *order.Service
	postSvc    *post.Service
	readStore  store.ReadStoreInterface
}

func NewHandler(
	productSvc *product.Service,
	orderSvc *order.Service,
	postSvc *post.Service,
	readStore store.ReadStoreInterface,
) *Handler {
	return &Handler{
		productSvc: productSvc,
		orderSvc:   orderSvc,
		postSvc:    postSvc,
		readStore:  readStore,
	}
}

// CreateProduct creates a new catalog product (async projection - updates via Kafka)
func (h *Handler) CreateProduct(ctx context.Context, cmd CreateProduct) (*product.Product, error) {
	return h.productSvc.Create(ctx, cmd.Name, cmd.Description, cmd.Kind, cmd.Price, cmd.WarrantyMonths, cmd.ImageURL)
}

func (h *Handler) UpdateProduct(ctx context.Context, cmd UpdateProduct) error {
	return h.productSvc.Update(ctx, cmd.ProductID, cmd.Name, cmd.Description, cmd.Kind, cmd.WarrantyMonths)
}

func (h *Handler) ChangeProductPrice(ctx context.Context, cmd ChangeProductPrice) error {
	return h.productSvc.ChangePrice(ctx, cmd.ProductID, cmd.Price)
}

func (h *Handler) UpdateProductImage(ctx context.Context, cmd UpdateProductImage) error {
	return h.productSvc.UpdateImage(ctx, cmd.ProductID, cmd.ImageURL)
}

func (h *Handler) DeleteProduct(ctx context.Context, cmd DeleteProduct) error {
	return h.productSvc.Delete(ctx, cmd.ProductID)
}

// PlaceOrder resolves each line against the catalog read models and snapshots
// name, image and current price into the order before placing it.
func (h *Handler) PlaceOrder(ctx context.Context, cmd PlaceOrder) (*order.Order, error) {
	items := make([]order.OrderItem, 0, len(cmd.Lines))
	for _, line := range cmd.Lines {
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}

		data, ok := h.readStore.Get(store.CollectionProducts, line.ProductID)
		if !ok {
			return nil, product.ErrProductNotFound
		}
		prod := data.(*readmodel.ProductReadModel)

		items = append(items, order.OrderItem{
			ProductID: prod.ID,
			Name:      prod.Name,
			ImageURL:  prod.ImageURL,
			Quantity:  line.Quantity,
			Price:     prod.Price,
		})
	}

	return h.orderSvc.Place(ctx, cmd.CustomerName, cmd.Phone, items)
}

func (h *Handler) ConfirmOrder(ctx context.Context, cmd ConfirmOrder) error {
	return h.orderSvc.Confirm(ctx, cmd.OrderID)
}

func (h *Handler) ShipOrder(ctx context.Context, cmd ShipOrder) error {
	return h.orderSvc.Ship(ctx, cmd.OrderID)
}

// DeliverOrder records the delivery date that warranty coverage counts from.
func (h *Handler) DeliverOrder(ctx context.Context, cmd DeliverOrder) error {
	return h.orderSvc.Deliver(ctx, cmd.OrderID)
}

func (h *Handler) CancelOrder(ctx context.Context, cmd CancelOrder) error {
	return h.orderSvc.Cancel(ctx, cmd.OrderID, cmd.Reason)
}

// CreatePost creates a new draft blog post
func (h *Handler) CreatePost(ctx context.Context, cmd CreatePost) (*post.Post, error) {
	return h.postSvc.Create(ctx, cmd.Title, cmd.Slug, cmd.Excerpt, cmd.Content, cmd.CoverURL)
}

func (h *Handler) UpdatePost(ctx context.Context, cmd UpdatePost) error {
	return h.postSvc.Update(ctx, cmd.PostID, cmd.Title, cmd.Excerpt, cmd.Content, cmd.CoverURL)
}

func (h *Handler) PublishPost(ctx context.Context, cmd PublishPost) error {
	return h.postSvc.Publish(ctx, cmd.PostID)
}

func (h *Handler) DeletePost(ctx context.Context, cmd DeletePost) error {
	return h.postSvc.Delete(ctx, cmd.PostID)
}
