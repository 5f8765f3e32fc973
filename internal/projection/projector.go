package projection

import (
	"context"
	"encoding/json"
	"log"

	"github.com/tranphihao2k3/LapLap-sub001/internal/domain/order"
	"github.com/tranphihao2k3/LapLap-sub001/internal/domain/post"
	"github.com/tranphihao2k3/LapLap-sub001/internal/domain/product"
	"github.com/tranphihao2k3/LapLap-sub001/internal/infrastructure/store"
	"github.com/tranphihao2k3/LapLap-sub001/internal/readmodel"
)

// Projector consumes domain events and maintains the read models the
// storefront queries: catalog products, orders and blog posts.
type Projector struct {
	readStore store.ReadStoreInterface
}

func NewProjector(readStore store.ReadStoreInterface) *Projector {
	return &Projector{readStore: readStore}
}

func (p *Projector) HandleEvent(ctx context.Context, key, value []byte) error {
	var event store.Event
	if err := json.Unmarshal(value, &event); err != nil {
		return err
	}

	log.Printf("[Projector] Received event: %s (aggregate: %s)", event.EventType, event.AggregateType)

	switch event.AggregateType {
	case product.AggregateType:
		return p.handleProductEvent(event)
	case order.AggregateType:
		return p.handleOrderEvent(event)
	case post.AggregateType:
		return p.handlePostEvent(event)
	}

	return nil
}

func (p *Projector) handleProductEvent(event store.Event) error {
	switch event.EventType {
	case product.EventProductCreated:
		var e product.ProductCreated
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		p.readStore.Set(store.CollectionProducts, e.ProductID, &readmodel.ProductReadModel{
			ID:             e.ProductID,
			Name:           e.Name,
			Description:    e.Description,
			Kind:           e.Kind,
			Price:          e.Price,
			WarrantyMonths: e.WarrantyMonths,
			ImageURL:       e.ImageURL,
			CreatedAt:      e.CreatedAt,
			UpdatedAt:      e.CreatedAt,
		})

	case product.EventProductUpdated:
		var e product.ProductUpdated
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		p.readStore.Update(store.CollectionProducts, e.ProductID, func(current any) any {
			prod := current.(*readmodel.ProductReadModel)
			prod.Name = e.Name
			prod.Description = e.Description
			prod.Kind = e.Kind
			prod.WarrantyMonths = e.WarrantyMonths
			prod.UpdatedAt = e.UpdatedAt
			return prod
		})

	case product.EventProductPriceChanged:
		var e product.ProductPriceChanged
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		p.readStore.Update(store.CollectionProducts, e.ProductID, func(current any) any {
			prod := current.(*readmodel.ProductReadModel)
			prod.Price = e.Price
			prod.UpdatedAt = e.ChangedAt
			return prod
		})

	case product.EventProductImageUpdated:
		var e product.ProductImageUpdated
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		p.readStore.Update(store.CollectionProducts, e.ProductID, func(current any) any {
			prod := current.(*readmodel.ProductReadModel)
			prod.ImageURL = e.ImageURL
			prod.UpdatedAt = e.UpdatedAt
			return prod
		})

	case product.EventProductDeleted:
		var e product.ProductDeleted
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		p.readStore.Delete(store.CollectionProducts, e.ProductID)
	}

	return nil
}

func (p *Projector) handleOrderEvent(event store.Event) error {
	switch event.EventType {
	case order.EventOrderPlaced:
		var e order.OrderPlaced
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		items := make([]readmodel.OrderItemReadModel, 0, len(e.Items))
		for _, item := range e.Items {
			items = append(items, readmodel.OrderItemReadModel{
				ProductID: item.ProductID,
				Name:      item.Name,
				ImageURL:  item.ImageURL,
				Quantity:  item.Quantity,
				Price:     item.Price,
			})
		}
		p.readStore.Set(store.CollectionOrders, e.OrderID, &readmodel.OrderReadModel{
			ID:           e.OrderID,
			CustomerName: e.CustomerName,
			Phone:        e.Phone,
			Items:        items,
			Total:        e.Total,
			Status:       string(order.StatusPending),
			CreatedAt:    e.PlacedAt,
			UpdatedAt:    e.PlacedAt,
		})

	case order.EventOrderConfirmed:
		var e order.OrderConfirmed
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		p.readStore.Update(store.CollectionOrders, e.OrderID, func(current any) any {
			o := current.(*readmodel.OrderReadModel)
			o.Status = string(order.StatusConfirmed)
			o.UpdatedAt = e.ConfirmedAt
			return o
		})

	case order.EventOrderShipped:
		var e order.OrderShipped
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		p.readStore.Update(store.CollectionOrders, e.OrderID, func(current any) any {
			o := current.(*readmodel.OrderReadModel)
			o.Status = string(order.StatusShipped)
			o.UpdatedAt = e.ShippedAt
			return o
		})

	case order.EventOrderDelivered:
		var e order.OrderDelivered
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		p.readStore.Update(store.CollectionOrders, e.OrderID, func(current any) any {
			o := current.(*readmodel.OrderReadModel)
			o.Status = string(order.StatusDelivered)
			deliveredAt := e.DeliveredAt
			o.DeliveredAt = &deliveredAt
			o.UpdatedAt = e.DeliveredAt
			return o
		})

	case order.EventOrderCancelled:
		var e order.OrderCancelled
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		p.readStore.Update(store.CollectionOrders, e.OrderID, func(current any) any {
			o := current.(*readmodel.OrderReadModel)
			o.Status = string(order.StatusCancelled)
			o.CancelReason = e.Reason
			o.UpdatedAt = e.CancelledAt
			return o
		})
	}

	return nil
}

func (p *Projector) handlePostEvent(event store.Event) error {
	switch event.EventType {
	case post.EventPostCreated:
		var e post.PostCreated
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		p.readStore.Set(store.CollectionPosts, e.PostID, &readmodel.PostReadModel{
			ID:        e.PostID,
			Title:     e.Title,
			Slug:      e.Slug,
			Excerpt:   e.Excerpt,
			Content:   e.Content,
			CoverURL:  e.CoverURL,
			CreatedAt: e.CreatedAt,
			UpdatedAt: e.CreatedAt,
		})

	case post.EventPostUpdated:
		var e post.PostUpdated
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		p.readStore.Update(store.CollectionPosts, e.PostID, func(current any) any {
			pm := current.(*readmodel.PostReadModel)
			pm.Title = e.Title
			pm.Excerpt = e.Excerpt
			pm.Content = e.Content
			pm.CoverURL = e.CoverURL
			pm.UpdatedAt = e.UpdatedAt
			return pm
		})

	case post.EventPostPublished:
		var e post.PostPublished
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		p.readStore.Update(store.CollectionPosts, e.PostID, func(current any) any {
			pm := current.(*readmodel.PostReadModel)
			pm.Published = true
			publishedAt := e.PublishedAt
			pm.PublishedAt = &publishedAt
			pm.UpdatedAt = e.PublishedAt
			return pm
		})

	case post.EventPostDeleted:
		var e post.PostDeleted
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		p.readStore.Delete(store.CollectionPosts, e.PostID)
	}

	return nil
}
