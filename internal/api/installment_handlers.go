package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/tranphihao2k3/LapLap-sub001/internal/domain/installment"
)

// InstallmentResponse wraps a quote with the storefront eligibility flag.
// Ineligible prices still answer 200; the flag tells the UI to hide the
// installment block instead of erroring.
type InstallmentResponse struct {
	Eligible bool               `json:"eligible"`
	Message  string             `json:"message,omitempty"`
	Quote    *installment.Quote `json:"quote,omitempty"`
}

// QuoteInstallments computes a quote for a raw price, without consulting the
// catalog. POST /installments/quote
func (h *Handlers) QuoteInstallments(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductPrice  int `json:"product_price"`
		PrepayPercent int `json:"prepay_percent"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	quote, err := installment.Compute(req.ProductPrice, req.PrepayPercent, h.installmentOpts...)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	respondJSON(w, http.StatusOK, InstallmentResponse{
		Eligible: installment.Eligible(req.ProductPrice),
		Quote:    quote,
	})
}

// ProductInstallments computes a quote from the catalog price of a product.
// GET /products/{id}/installments?prepay_percent=N
func (h *Handlers) ProductInstallments(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(extractPathParam(r.URL.Path, "/products/"), "/installments")

	p, ok := h.queryHandler.GetProduct(id)
	if !ok {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	prepayPercent := 0
	if raw := r.URL.Query().Get("prepay_percent"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid prepay_percent", http.StatusBadRequest)
			return
		}
		prepayPercent = v
	}

	if !installment.Eligible(p.Price) {
		respondJSON(w, http.StatusOK, InstallmentResponse{
			Eligible: false,
			Message:  "Installment payment is not available for this product",
		})
		return
	}

	quote, err := installment.Compute(p.Price, prepayPercent, h.installmentOpts...)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	respondJSON(w, http.StatusOK, InstallmentResponse{
		Eligible: true,
		Quote:    quote,
	})
}
