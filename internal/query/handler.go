package query

import (
	"sort"
	"strings"

	"github.com/tranphihao2k3/LapLap-sub001/internal/infrastructure/store"
)

type Handler struct {
	readStore store.ReadStoreInterface
}

func NewHandler(readStore store.ReadStoreInterface) *Handler {
	return &Handler{readStore: readStore}
}

// Products
func (h *Handler) GetProduct(id string) (*ProductReadModel, bool) {
	data, ok := h.readStore.Get(store.CollectionProducts, id)
	if !ok {
		return nil, false
	}
	return data.(*ProductReadModel), true
}

// ListProducts returns catalog products, optionally filtered by kind.
// Results are sorted by name for stable storefront pages.
func (h *Handler) ListProducts(kind string) []*ProductReadModel {
	items := h.readStore.GetAll(store.CollectionProducts)
	products := make([]*ProductReadModel, 0, len(items))
	for _, item := range items {
		p := item.(*ProductReadModel)
		if kind != "" && p.Kind != kind {
			continue
		}
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].Name < products[j].Name
	})
	return products
}

// Orders
func (h *Handler) GetOrder(id string) (*OrderReadModel, bool) {
	data, ok := h.readStore.Get(store.CollectionOrders, id)
	if !ok {
		return nil, false
	}
	return data.(*OrderReadModel), true
}

// ListOrders returns all orders, newest first.
func (h *Handler) ListOrders() []*OrderReadModel {
	items := h.readStore.GetAll(store.CollectionOrders)
	orders := make([]*OrderReadModel, 0, len(items))
	for _, item := range items {
		orders = append(orders, item.(*OrderReadModel))
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders
}

// FindOrders matches q against the order ID or the customer phone number.
// Warranty lookups use this to find the orders behind a query.
func (h *Handler) FindOrders(q string) []*OrderReadModel {
	q = strings.TrimSpace(q)
	if q == "" {
		return []*OrderReadModel{}
	}

	if data, ok := h.readStore.Get(store.CollectionOrders, q); ok {
		return []*OrderReadModel{data.(*OrderReadModel)}
	}

	items := h.readStore.GetAll(store.CollectionOrders)
	orders := make([]*OrderReadModel, 0)
	for _, item := range items {
		o := item.(*OrderReadModel)
		if o.Phone == q {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders
}

// Posts
func (h *Handler) GetPost(id string) (*PostReadModel, bool) {
	data, ok := h.readStore.Get(store.CollectionPosts, id)
	if !ok {
		return nil, false
	}
	return data.(*PostReadModel), true
}

// GetPostBySlug finds a post by its URL slug.
func (h *Handler) GetPostBySlug(slug string) (*PostReadModel, bool) {
	items := h.readStore.GetAll(store.CollectionPosts)
	for _, item := range items {
		p := item.(*PostReadModel)
		if p.Slug == slug {
			return p, true
		}
	}
	return nil, false
}

// ListPosts returns blog posts, newest first. When publishedOnly is set,
// drafts are filtered out (the storefront never shows drafts).
func (h *Handler) ListPosts(publishedOnly bool) []*PostReadModel {
	items := h.readStore.GetAll(store.CollectionPosts)
	posts := make([]*PostReadModel, 0, len(items))
	for _, item := range items {
		p := item.(*PostReadModel)
		if publishedOnly && !p.Published {
			continue
		}
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts
}
