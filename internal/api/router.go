package api

import (
	"net/http"
	"strings"
)

func NewRouter(handlers *Handlers, webDir string) http.Handler {
	mux := http.NewServeMux()

	// Static files (web UI)
	if webDir != "" {
		fs := http.FileServer(http.Dir(webDir))
		mux.Handle("/", fs)
	}

	// Health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Products
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.GetProducts(w, r)
		case http.MethodPost:
			handlers.CreateProduct(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/products/", func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		switch {
		case strings.HasSuffix(path, "/installments") && r.Method == http.MethodGet:
			handlers.ProductInstallments(w, r)
		case strings.HasSuffix(path, "/price") && r.Method == http.MethodPost:
			handlers.ChangeProductPrice(w, r)
		case strings.HasSuffix(path, "/image") && r.Method == http.MethodPost:
			handlers.UpdateProductImage(w, r)
		case r.Method == http.MethodGet:
			handlers.GetProduct(w, r)
		case r.Method == http.MethodPut:
			handlers.UpdateProduct(w, r)
		case r.Method == http.MethodDelete:
			handlers.DeleteProduct(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Installments
	mux.HandleFunc("/installments/quote", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			handlers.QuoteInstallments(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Orders
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.GetOrders(w, r)
		case http.MethodPost:
			handlers.PlaceOrder(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/orders/", func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		switch {
		case strings.HasSuffix(path, "/confirm") && r.Method == http.MethodPost:
			handlers.ConfirmOrder(w, r)
		case strings.HasSuffix(path, "/ship") && r.Method == http.MethodPost:
			handlers.ShipOrder(w, r)
		case strings.HasSuffix(path, "/deliver") && r.Method == http.MethodPost:
			handlers.DeliverOrder(w, r)
		case strings.HasSuffix(path, "/cancel") && r.Method == http.MethodPost:
			handlers.CancelOrder(w, r)
		case r.Method == http.MethodGet:
			handlers.GetOrder(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Warranty lookup
	mux.HandleFunc("/warranty", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.WarrantyLookup(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Blog posts
	mux.HandleFunc("/posts", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.GetPosts(w, r)
		case http.MethodPost:
			handlers.CreatePost(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/posts/", func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		switch {
		case strings.HasSuffix(path, "/publish") && r.Method == http.MethodPost:
			handlers.PublishPost(w, r)
		case r.Method == http.MethodGet:
			handlers.GetPostBySlug(w, r)
		case r.Method == http.MethodPut:
			handlers.UpdatePost(w, r)
		case r.Method == http.MethodDelete:
			handlers.DeletePost(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	return withLogging(mux)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		println("[API]", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
