package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/tranphihao2k3/LapLap-sub001/internal/command"
	"github.com/tranphihao2k3/LapLap-sub001/internal/domain/installment"
	"github.com/tranphihao2k3/LapLap-sub001/internal/domain/order"
	"github.com/tranphihao2k3/LapLap-sub001/internal/domain/post"
	"github.com/tranphihao2k3/LapLap-sub001/internal/domain/product"
	"github.com/tranphihao2k3/LapLap-sub001/internal/infrastructure/cache"
	"github.com/tranphihao2k3/LapLap-sub001/internal/query"
)

type Handlers struct {
	cmdHandler      *command.Handler
	queryHandler    *query.Handler
	cache           cache.Cache
	installmentOpts []installment.Option
}

// NewHandlers wires the HTTP layer. cache may be nil; warranty lookups then
// skip caching. installmentOpts lets deployments override the advertised
// monthly rate.
func NewHandlers(cmdHandler *command.Handler, queryHandler *query.Handler, c cache.Cache, installmentOpts ...installment.Option) *Handlers {
	return &Handlers{
		cmdHandler:      cmdHandler,
		queryHandler:    queryHandler,
		cache:           c,
		installmentOpts: installmentOpts,
	}
}

// Product Handlers

func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var cmd command.CreateProduct
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.cmdHandler.CreateProduct(r.Context(), cmd)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	h.invalidateProductList(r.Context())
	respondJSON(w, http.StatusCreated, p)
}

// productListCacheTTL bounds staleness of the cached catalog listing; the
// cache is also dropped eagerly whenever a catalog mutation goes through.
const productListCacheTTL = 5 * time.Minute

func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")

	// Only the unfiltered listing is cached: it is the storefront's hot
	// path, and a single key keeps invalidation trivial.
	if h.cache == nil || kind != "" {
		respondJSON(w, http.StatusOK, h.queryHandler.ListProducts(kind))
		return
	}

	key := h.cache.GenerateKey("products", "all")
	if cached, err := h.cache.Get(r.Context(), key); err != nil {
		log.Printf("[API] Product list cache read failed: %v", err)
	} else if cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	body, err := json.Marshal(h.queryHandler.ListProducts(""))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.cache.Set(r.Context(), key, string(body), productListCacheTTL); err != nil {
		log.Printf("[API] Product list cache write failed: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// invalidateProductList drops the cached catalog listing after a mutation;
// the next read repopulates it from the read models.
func (h *Handlers) invalidateProductList(ctx context.Context) {
	if h.cache == nil {
		return
	}
	key := h.cache.GenerateKey("products", "all")
	if err := h.cache.Delete(ctx, key); err != nil {
		log.Printf("[API] Product list cache invalidation failed: %v", err)
	}
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/products/")
	p, ok := h.queryHandler.GetProduct(id)
	if !ok {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/products/")

	var cmd command.UpdateProduct
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	cmd.ProductID = id

	if err := h.cmdHandler.UpdateProduct(r.Context(), cmd); err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	h.invalidateProductList(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"message": "Product updated"})
}

func (h *Handlers) ChangeProductPrice(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(extractPathParam(r.URL.Path, "/products/"), "/price")

	var req struct {
		Price int `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cmd := command.ChangeProductPrice{ProductID: id, Price: req.Price}
	if err := h.cmdHandler.ChangeProductPrice(r.Context(), cmd); err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	h.invalidateProductList(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"message": "Price updated"})
}

func (h *Handlers) UpdateProductImage(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(extractPathParam(r.URL.Path, "/products/"), "/image")

	var req struct {
		ImageURL string `json:"image_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cmd := command.UpdateProductImage{ProductID: id, ImageURL: req.ImageURL}
	if err := h.cmdHandler.UpdateProductImage(r.Context(), cmd); err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	h.invalidateProductList(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"message": "Image updated"})
}

func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/products/")

	cmd := command.DeleteProduct{ProductID: id}
	if err := h.cmdHandler.DeleteProduct(r.Context(), cmd); err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	h.invalidateProductList(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}

// Order Handlers

func (h *Handlers) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var cmd command.PlaceOrder
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	o, err := h.cmdHandler.PlaceOrder(r.Context(), cmd)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	respondJSON(w, http.StatusCreated, o)
}

func (h *Handlers) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders := h.queryHandler.ListOrders()
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/orders/")

	o, ok := h.queryHandler.GetOrder(id)
	if !ok {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	respondJSON(w, http.StatusOK, o)
}

func (h *Handlers) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	id := orderIDFromPath(r.URL.Path, "/confirm")
	if err := h.cmdHandler.ConfirmOrder(r.Context(), command.ConfirmOrder{OrderID: id}); err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Order confirmed"})
}

func (h *Handlers) ShipOrder(w http.ResponseWriter, r *http.Request) {
	id := orderIDFromPath(r.URL.Path, "/ship")
	if err := h.cmdHandler.ShipOrder(r.Context(), command.ShipOrder{OrderID: id}); err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Order shipped"})
}

func (h *Handlers) DeliverOrder(w http.ResponseWriter, r *http.Request) {
	id := orderIDFromPath(r.URL.Path, "/deliver")
	if err := h.cmdHandler.DeliverOrder(r.Context(), command.DeliverOrder{OrderID: id}); err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Order delivered"})
}

func (h *Handlers) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id := orderIDFromPath(r.URL.Path, "/cancel")

	var req struct {
		Reason string `json:"reason"`
	}
	json.NewDecoder(r.Body).Decode(&req)

	cmd := command.CancelOrder{OrderID: id, Reason: req.Reason}
	if err := h.cmdHandler.CancelOrder(r.Context(), cmd); err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Order cancelled"})
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func extractPathParam(path, prefix string) string {
	return strings.TrimPrefix(path, prefix)
}

func orderIDFromPath(path, action string) string {
	return strings.TrimSuffix(extractPathParam(path, "/orders/"), action)
}

// errorStatus maps domain errors onto HTTP status codes: validation failures
// are the client's fault, missing aggregates are 404, illegal lifecycle
// transitions are conflicts.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, post.ErrPostNotFound):
		return http.StatusNotFound
	case errors.Is(err, product.ErrInvalidName),
		errors.Is(err, product.ErrInvalidKind),
		errors.Is(err, product.ErrInvalidPrice),
		errors.Is(err, product.ErrInvalidWarranty),
		errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrInvalidCustomer),
		errors.Is(err, order.ErrInvalidPhone),
		errors.Is(err, command.ErrInvalidQuantity),
		errors.Is(err, post.ErrInvalidTitle),
		errors.Is(err, post.ErrInvalidSlug),
		errors.Is(err, installment.ErrInvalidPrice):
		return http.StatusBadRequest
	case errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrOrderConfirmed),
		errors.Is(err, order.ErrOrderNotConfirmed),
		errors.Is(err, order.ErrOrderNotShipped),
		errors.Is(err, order.ErrOrderShipped),
		errors.Is(err, order.ErrOrderDelivered),
		errors.Is(err, order.ErrOrderCancelled):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
