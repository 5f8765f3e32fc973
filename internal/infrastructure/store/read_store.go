package store

import "sync"

// Read model collections maintained by the projector. Every consumer of a
// ReadStoreInterface addresses read models through these names.
const (
	CollectionProducts = "products"
	CollectionOrders   = "orders"
	CollectionPosts    = "posts"
)

// ReadStore keeps read models in process memory. It backs dev mode and the
// DynamoDB configuration, where catalog, order and post read models are
// rebuilt from a full event replay at boot instead of living in Postgres.
type ReadStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]any
}

func NewReadStore() *ReadStore {
	return &ReadStore{
		collections: make(map[string]map[string]any),
	}
}

func (rs *ReadStore) collection(name string) map[string]any {
	if rs.collections[name] == nil {
		rs.collections[name] = make(map[string]any)
	}
	return rs.collections[name]
}

// Set stores a read model under its collection
func (rs *ReadStore) Set(collection, id string, data any) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.collection(collection)[id] = data
}

// Get retrieves a read model by id
func (rs *ReadStore) Get(collection, id string) (any, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	data, ok := rs.collections[collection][id]
	return data, ok
}

// GetAll retrieves every read model in a collection
func (rs *ReadStore) GetAll(collection string) []any {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	models := rs.collections[collection]
	if len(models) == 0 {
		return nil
	}

	items := make([]any, 0, len(models))
	for _, item := range models {
		items = append(items, item)
	}
	return items
}

// Delete removes a read model
func (rs *ReadStore) Delete(collection, id string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	delete(rs.collections[collection], id)
}

// Update applies updateFn to an existing read model. It reports false when
// the id is not present; the projector treats that as a dropped event.
func (rs *ReadStore) Update(collection, id string, updateFn func(current any) any) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	current, ok := rs.collections[collection][id]
	if !ok {
		return false
	}
	rs.collections[collection][id] = updateFn(current)
	return true
}
