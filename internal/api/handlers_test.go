package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranphihao2k3/LapLap-sub001/internal/command"
	"github.com/tranphihao2k3/LapLap-sub001/internal/domain/order"
	"github.com/tranphihao2k3/LapLap-sub001/internal/domain/post"
	"github.com/tranphihao2k3/LapLap-sub001/internal/domain/product"
	"github.com/tranphihao2k3/LapLap-sub001/internal/domain/warranty"
	"github.com/tranphihao2k3/LapLap-sub001/internal/infrastructure/store/mocks"
	"github.com/tranphihao2k3/LapLap-sub001/internal/query"
	"github.com/tranphihao2k3/LapLap-sub001/internal/readmodel"
)

// memoryCache is a map-backed stand-in for the Redis cache.
type memoryCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string]string)}
}

func (c *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value.(string)
	return nil
}

func (c *memoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[key], nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memoryCache) GenerateKey(operation, key string) string {
	return "test:" + operation + ":" + key
}

func newTestServer(t *testing.T) (http.Handler, *mocks.MockReadStore) {
	t.Helper()

	eventStore := mocks.NewMockEventStore()
	readStore := mocks.NewMockReadStore()

	cmdHandler := command.NewHandler(
		product.NewService(eventStore),
		order.NewService(eventStore),
		post.NewService(eventStore),
		readStore,
	)
	handlers := NewHandlers(cmdHandler, query.NewHandler(readStore), nil)
	return NewRouter(handlers, ""), readStore
}

func newTestServerWithCache(t *testing.T) (http.Handler, *mocks.MockReadStore, *memoryCache) {
	t.Helper()

	eventStore := mocks.NewMockEventStore()
	readStore := mocks.NewMockReadStore()
	c := newMemoryCache()

	cmdHandler := command.NewHandler(
		product.NewService(eventStore),
		order.NewService(eventStore),
		post.NewService(eventStore),
		readStore,
	)
	handlers := NewHandlers(cmdHandler, query.NewHandler(readStore), c)
	return NewRouter(handlers, ""), readStore, c
}

func seedProduct(readStore *mocks.MockReadStore, id string, price, warrantyMonths int) {
	readStore.SetData("products", id, &readmodel.ProductReadModel{
		ID:             id,
		Name:           "Product " + id,
		Kind:           "laptop",
		Price:          price,
		WarrantyMonths: warrantyMonths,
	})
}

func TestAPI_GetProducts(t *testing.T) {
	router, readStore := newTestServer(t)

	seedProduct(readStore, "prod-1", 15_000_000, 12)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var products []readmodel.ProductReadModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "prod-1", products[0].ID)
}

func TestAPI_GetProduct_NotFound(t *testing.T) {
	router, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_CreateProduct(t *testing.T) {
	router, _ := newTestServer(t)

	body := `{"name":"Dell XPS 15","kind":"laptop","price":45000000,"warranty_months":24}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)

	var p product.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.NotEmpty(t, p.ID)
}

func TestAPI_CreateProduct_Invalid(t *testing.T) {
	router, _ := newTestServer(t)

	body := `{"name":"","kind":"laptop","price":45000000}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_ProductInstallments_Eligible(t *testing.T) {
	router, readStore := newTestServer(t)

	seedProduct(readStore, "prod-1", 15_000_000, 12)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/prod-1/installments?prepay_percent=30", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp InstallmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Eligible)
	require.NotNil(t, resp.Quote)
	assert.Equal(t, 4_500_000, resp.Quote.PrepayAmount)
	assert.Equal(t, 10_500_000, resp.Quote.LoanAmount)
	assert.Len(t, resp.Quote.Plans, 4)
}

func TestAPI_ProductInstallments_NotEligible(t *testing.T) {
	router, readStore := newTestServer(t)

	// Below the minimum financed price.
	seedProduct(readStore, "prod-1", 1_500_000, 12)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/prod-1/installments", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp InstallmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Eligible)
	assert.Nil(t, resp.Quote)
}

func TestAPI_QuoteInstallments(t *testing.T) {
	router, _ := newTestServer(t)

	body := `{"product_price":15000000,"prepay_percent":30}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/installments/quote", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp InstallmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Quote)
	assert.Equal(t, 10_500_000, resp.Quote.LoanAmount)
}

func TestAPI_QuoteInstallments_InvalidPrice(t *testing.T) {
	router, _ := newTestServer(t)

	body := `{"product_price":0,"prepay_percent":30}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/installments/quote", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_PlaceOrderAndLifecycle(t *testing.T) {
	router, readStore := newTestServer(t)

	seedProduct(readStore, "prod-1", 15_000_000, 12)

	body := `{"customer_name":"Nguyen Van A","phone":"0912345678","items":[{"product_id":"prod-1","quantity":1}]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)

	var o order.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &o))
	require.NotEmpty(t, o.ID)

	for _, action := range []string{"confirm", "ship", "deliver"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders/"+o.ID+"/"+action, nil))
		require.Equal(t, http.StatusOK, rec.Code, "action %s", action)
	}

	// Delivered orders cannot be cancelled.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders/"+o.ID+"/cancel", strings.NewReader(`{"reason":"late"}`)))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAPI_PlaceOrder_InvalidPhone(t *testing.T) {
	router, readStore := newTestServer(t)

	seedProduct(readStore, "prod-1", 15_000_000, 12)

	body := `{"customer_name":"Nguyen Van A","phone":"12345","items":[{"product_id":"prod-1","quantity":1}]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_WarrantyLookup(t *testing.T) {
	router, readStore := newTestServer(t)

	seedProduct(readStore, "prod-1", 15_000_000, 12)

	deliveredAt := time.Now().AddDate(0, -6, 0)
	readStore.SetData("orders", "order-1", &readmodel.OrderReadModel{
		ID:          "order-1",
		Phone:       "0912345678",
		Status:      "delivered",
		DeliveredAt: &deliveredAt,
		Items: []readmodel.OrderItemReadModel{
			{ProductID: "prod-1", Name: "Product prod-1", Quantity: 1},
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/warranty?q=0912345678", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp WarrantyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 1)
	require.Len(t, resp.Orders[0].Items, 1)
	assert.Equal(t, warranty.StatusActive, resp.Orders[0].Items[0].Status)
	assert.Positive(t, resp.Orders[0].Items[0].RemainingDays)
}

func TestAPI_WarrantyLookup_Undelivered(t *testing.T) {
	router, readStore := newTestServer(t)

	seedProduct(readStore, "prod-1", 15_000_000, 12)

	readStore.SetData("orders", "order-1", &readmodel.OrderReadModel{
		ID:     "order-1",
		Phone:  "0912345678",
		Status: "confirmed",
		Items: []readmodel.OrderItemReadModel{
			{ProductID: "prod-1", Quantity: 1},
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/warranty?q=order-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp WarrantyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, warranty.StatusPendingDelivery, resp.Orders[0].Items[0].Status)
}

func TestAPI_WarrantyLookup_MissingQuery(t *testing.T) {
	router, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/warranty", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_WarrantyLookup_Cached(t *testing.T) {
	router, readStore, _ := newTestServerWithCache(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/warranty?q=0912345678", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	// Second hit is served from cache even after the read model changes.
	readStore.SetData("orders", "order-1", &readmodel.OrderReadModel{ID: "order-1", Phone: "0912345678"})

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/warranty?q=0912345678", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp WarrantyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Orders)
}

func TestAPI_GetProducts_Cached(t *testing.T) {
	router, readStore, _ := newTestServerWithCache(t)

	seedProduct(readStore, "prod-1", 15_000_000, 12)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	// Second hit is served from cache even after the read model changes.
	seedProduct(readStore, "prod-2", 20_000_000, 24)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var products []readmodel.ProductReadModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, 1)

	// Kind-filtered listings bypass the cache and see the fresh state.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products?kind=laptop", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, 2)
}

func TestAPI_ProductMutation_InvalidatesListCache(t *testing.T) {
	router, readStore, _ := newTestServerWithCache(t)

	seedProduct(readStore, "prod-1", 15_000_000, 12)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	seedProduct(readStore, "prod-2", 20_000_000, 24)

	// A catalog mutation drops the cached listing.
	body := `{"name":"ThinkPad X1","kind":"laptop","price":38000000,"warranty_months":36}`
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var products []readmodel.ProductReadModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, 2)
}

func TestAPI_Posts(t *testing.T) {
	router, _ := newTestServer(t)

	body := `{"title":"Top 5 laptops","content":"..."}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)

	var p post.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "top-5-laptops", p.Slug)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/posts/"+p.ID+"/publish", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPI_GetPostBySlug_NotFound(t *testing.T) {
	router, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts/no-such-post", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_Healthz(t *testing.T) {
	router, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPI_MethodNotAllowed(t *testing.T) {
	router, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/orders", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
