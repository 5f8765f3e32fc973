package store

import (
	"database/sql"
	"encoding/json"
	"log"
	"sync"

	"github.com/tranphihao2k3/LapLap-sub001/internal/readmodel"
)

// PostgresReadStore implements ReadStoreInterface using PostgreSQL.
// Collections map to the read_products, read_orders and read_posts tables.
type PostgresReadStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewPostgresReadStore creates a new PostgreSQL-based read store
func NewPostgresReadStore(db *sql.DB) *PostgresReadStore {
	return &PostgresReadStore{db: db}
}

// Set stores a read model
func (rs *PostgresReadStore) Set(collection, id string, data any) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	switch collection {
	case CollectionProducts:
		rs.setProduct(data.(*readmodel.ProductReadModel))
	case CollectionOrders:
		rs.setOrder(data.(*readmodel.OrderReadModel))
	case CollectionPosts:
		rs.setPost(data.(*readmodel.PostReadModel))
	}
}

// Get retrieves a read model by id
func (rs *PostgresReadStore) Get(collection, id string) (any, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	switch collection {
	case CollectionProducts:
		return rs.getProduct(id)
	case CollectionOrders:
		return rs.getOrder(id)
	case CollectionPosts:
		return rs.getPost(id)
	}
	return nil, false
}

// GetAll retrieves all items in a collection
func (rs *PostgresReadStore) GetAll(collection string) []any {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	switch collection {
	case CollectionProducts:
		return rs.getAllProducts()
	case CollectionOrders:
		return rs.getAllOrders()
	case CollectionPosts:
		return rs.getAllPosts()
	}
	return nil
}

// Delete removes a read model
func (rs *PostgresReadStore) Delete(collection, id string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	var tableName string
	switch collection {
	case CollectionProducts:
		tableName = "read_products"
	case CollectionOrders:
		tableName = "read_orders"
	case CollectionPosts:
		tableName = "read_posts"
	default:
		return
	}

	_, err := rs.db.Exec("DELETE FROM "+tableName+" WHERE id = $1", id)
	if err != nil {
		log.Printf("[PostgresReadStore] Error deleting from %s: %v", collection, err)
	}
}

// Update modifies a read model using an update function
func (rs *PostgresReadStore) Update(collection, id string, updateFn func(current any) any) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	var current any
	var found bool

	switch collection {
	case CollectionProducts:
		current, found = rs.getProduct(id)
	case CollectionOrders:
		current, found = rs.getOrder(id)
	case CollectionPosts:
		current, found = rs.getPost(id)
	}

	if !found {
		return false
	}

	updated := updateFn(current)

	switch collection {
	case CollectionProducts:
		rs.setProduct(updated.(*readmodel.ProductReadModel))
	case CollectionOrders:
		rs.setOrder(updated.(*readmodel.OrderReadModel))
	case CollectionPosts:
		rs.setPost(updated.(*readmodel.PostReadModel))
	}

	return true
}

// Product operations

func (rs *PostgresReadStore) setProduct(p *readmodel.ProductReadModel) {
	_, err := rs.db.Exec(`
		INSERT INTO read_products (id, name, description, kind, price, warranty_months, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			kind = EXCLUDED.kind,
			price = EXCLUDED.price,
			warranty_months = EXCLUDED.warranty_months,
			image_url = EXCLUDED.image_url,
			updated_at = EXCLUDED.updated_at
	`, p.ID, p.Name, p.Description, p.Kind, p.Price, p.WarrantyMonths, p.ImageURL, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		log.Printf("[PostgresReadStore] Error setting product: %v", err)
	}
}

func (rs *PostgresReadStore) getProduct(id string) (*readmodel.ProductReadModel, bool) {
	var p readmodel.ProductReadModel
	err := rs.db.QueryRow(`
		SELECT id, name, description, kind, price, warranty_months, image_url, created_at, updated_at
		FROM read_products WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Description, &p.Kind, &p.Price, &p.WarrantyMonths, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("[PostgresReadStore] Error getting product: %v", err)
		}
		return nil, false
	}
	return &p, true
}

func (rs *PostgresReadStore) getAllProducts() []any {
	rows, err := rs.db.Query(`
		SELECT id, name, description, kind, price, warranty_months, image_url, created_at, updated_at
		FROM read_products ORDER BY created_at DESC
	`)
	if err != nil {
		log.Printf("[PostgresReadStore] Error getting all products: %v", err)
		return nil
	}
	defer rows.Close()

	var products []any
	for rows.Next() {
		var p readmodel.ProductReadModel
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Kind, &p.Price, &p.WarrantyMonths, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			log.Printf("[PostgresReadStore] Error scanning product: %v", err)
			continue
		}
		products = append(products, &p)
	}
	return products
}

// Order operations

func (rs *PostgresReadStore) setOrder(o *readmodel.OrderReadModel) {
	itemsJSON, _ := json.Marshal(o.Items)
	_, err := rs.db.Exec(`
		INSERT INTO read_orders (id, customer_name, phone, items, total, status, cancel_reason, created_at, updated_at, delivered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			customer_name = EXCLUDED.customer_name,
			phone = EXCLUDED.phone,
			items = EXCLUDED.items,
			total = EXCLUDED.total,
			status = EXCLUDED.status,
			cancel_reason = EXCLUDED.cancel_reason,
			updated_at = EXCLUDED.updated_at,
			delivered_at = EXCLUDED.delivered_at
	`, o.ID, o.CustomerName, o.Phone, itemsJSON, o.Total, o.Status, o.CancelReason, o.CreatedAt, o.UpdatedAt, o.DeliveredAt)
	if err != nil {
		log.Printf("[PostgresReadStore] Error setting order: %v", err)
	}
}

func (rs *PostgresReadStore) getOrder(id string) (*readmodel.OrderReadModel, bool) {
	var o readmodel.OrderReadModel
	var itemsJSON []byte
	err := rs.db.QueryRow(`
		SELECT id, customer_name, phone, items, total, status, cancel_reason, created_at, updated_at, delivered_at
		FROM read_orders WHERE id = $1
	`, id).Scan(&o.ID, &o.CustomerName, &o.Phone, &itemsJSON, &o.Total, &o.Status, &o.CancelReason, &o.CreatedAt, &o.UpdatedAt, &o.DeliveredAt)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("[PostgresReadStore] Error getting order: %v", err)
		}
		return nil, false
	}
	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		log.Printf("[PostgresReadStore] Error decoding order items: %v", err)
	}
	return &o, true
}

func (rs *PostgresReadStore) getAllOrders() []any {
	rows, err := rs.db.Query(`
		SELECT id, customer_name, phone, items, total, status, cancel_reason, created_at, updated_at, delivered_at
		FROM read_orders ORDER BY created_at DESC
	`)
	if err != nil {
		log.Printf("[PostgresReadStore] Error getting all orders: %v", err)
		return nil
	}
	defer rows.Close()

	var orders []any
	for rows.Next() {
		var o readmodel.OrderReadModel
		var itemsJSON []byte
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.Phone, &itemsJSON, &o.Total, &o.Status, &o.CancelReason, &o.CreatedAt, &o.UpdatedAt, &o.DeliveredAt); err != nil {
			log.Printf("[PostgresReadStore] Error scanning order: %v", err)
			continue
		}
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			log.Printf("[PostgresReadStore] Error decoding order items: %v", err)
		}
		orders = append(orders, &o)
	}
	return orders
}

// Post operations

func (rs *PostgresReadStore) setPost(p *readmodel.PostReadModel) {
	_, err := rs.db.Exec(`
		INSERT INTO read_posts (id, title, slug, excerpt, content, cover_url, published, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			slug = EXCLUDED.slug,
			excerpt = EXCLUDED.excerpt,
			content = EXCLUDED.content,
			cover_url = EXCLUDED.cover_url,
			published = EXCLUDED.published,
			published_at = EXCLUDED.published_at,
			updated_at = EXCLUDED.updated_at
	`, p.ID, p.Title, p.Slug, p.Excerpt, p.Content, p.CoverURL, p.Published, p.PublishedAt, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		log.Printf("[PostgresReadStore] Error setting post: %v", err)
	}
}

func (rs *PostgresReadStore) getPost(id string) (*readmodel.PostReadModel, bool) {
	var p readmodel.PostReadModel
	err := rs.db.QueryRow(`
		SELECT id, title, slug, excerpt, content, cover_url, published, published_at, created_at, updated_at
		FROM read_posts WHERE id = $1
	`, id).Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.CoverURL, &p.Published, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("[PostgresReadStore] Error getting post: %v", err)
		}
		return nil, false
	}
	return &p, true
}

func (rs *PostgresReadStore) getAllPosts() []any {
	rows, err := rs.db.Query(`
		SELECT id, title, slug, excerpt, content, cover_url, published, published_at, created_at, updated_at
		FROM read_posts ORDER BY created_at DESC
	`)
	if err != nil {
		log.Printf("[PostgresReadStore] Error getting all posts: %v", err)
		return nil
	}
	defer rows.Close()

	var posts []any
	for rows.Next() {
		var p readmodel.PostReadModel
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.CoverURL, &p.Published, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
			log.Printf("[PostgresReadStore] Error scanning post: %v", err)
			continue
		}
		posts = append(posts, &p)
	}
	return posts
}
