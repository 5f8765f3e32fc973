package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/tranphihao2k3/LapLap-sub001/internal/domain/warranty"
)

// warrantyCacheTTL bounds staleness of cached lookups. Remaining days move
// once per day, so a short TTL only exists to pick up new deliveries.
const warrantyCacheTTL = 10 * time.Minute

// WarrantyOrderResponse is the warranty view of one matched order.
type WarrantyOrderResponse struct {
	OrderID     string          `json:"order_id"`
	Status      string          `json:"status"`
	PurchasedAt time.Time       `json:"purchased_at"`
	DeliveredAt *time.Time      `json:"delivered_at,omitempty"`
	Items       []warranty.Item `json:"items"`
}

// WarrantyResponse is the full answer to a warranty lookup.
type WarrantyResponse struct {
	Query  string                  `json:"query"`
	Orders []WarrantyOrderResponse `json:"orders"`
}

// WarrantyLookup resolves warranty status for every order matching q, which
// is either an order ID or the customer phone number used at checkout.
// GET /warranty?q=...
func (h *Handlers) WarrantyLookup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		http.Error(w, "query parameter q is required", http.StatusBadRequest)
		return
	}

	if h.cache != nil {
		key := h.cache.GenerateKey("warranty", q)
		if cached, err := h.cache.Get(r.Context(), key); err != nil {
			log.Printf("[API] Warranty cache read failed: %v", err)
		} else if cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
	}

	response := h.resolveWarranty(q, time.Now())

	body, err := json.Marshal(response)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if h.cache != nil {
		key := h.cache.GenerateKey("warranty", q)
		if err := h.cache.Set(r.Context(), key, string(body), warrantyCacheTTL); err != nil {
			log.Printf("[API] Warranty cache write failed: %v", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

func (h *Handlers) resolveWarranty(q string, now time.Time) WarrantyResponse {
	orders := h.queryHandler.FindOrders(q)

	// Warranty months come from the current catalog; deleted products
	// resolve as unknown.
	months := func(productID string) (int, bool) {
		p, ok := h.queryHandler.GetProduct(productID)
		if !ok {
			return 0, false
		}
		return p.WarrantyMonths, true
	}

	response := WarrantyResponse{
		Query:  q,
		Orders: make([]WarrantyOrderResponse, 0, len(orders)),
	}

	for _, o := range orders {
		info := warranty.OrderInfo{
			OrderID:     o.ID,
			Status:      o.Status,
			PurchasedAt: o.CreatedAt,
			DeliveredAt: o.DeliveredAt,
			Items:       make([]warranty.ItemInfo, 0, len(o.Items)),
		}
		for _, item := range o.Items {
			info.Items = append(info.Items, warranty.ItemInfo{
				ProductID: item.ProductID,
				Name:      item.Name,
				ImageURL:  item.ImageURL,
				Quantity:  item.Quantity,
			})
		}

		response.Orders = append(response.Orders, WarrantyOrderResponse{
			OrderID:     o.ID,
			Status:      o.Status,
			PurchasedAt: o.CreatedAt,
			DeliveredAt: o.DeliveredAt,
			Items:       warranty.Resolve(info, months, now),
		})
	}

	return response
}
