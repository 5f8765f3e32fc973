package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranphihao2k3/LapLap-sub001/internal/readmodel"
)

func TestReadStore_SetAndGet(t *testing.T) {
	rs := NewReadStore()

	rs.Set(CollectionProducts, "prod-1", &readmodel.ProductReadModel{ID: "prod-1", Name: "Dell XPS 15"})

	data, ok := rs.Get(CollectionProducts, "prod-1")
	require.True(t, ok)
	assert.Equal(t, "Dell XPS 15", data.(*readmodel.ProductReadModel).Name)

	// Collections are independent namespaces.
	_, ok = rs.Get(CollectionOrders, "prod-1")
	assert.False(t, ok)
}

func TestReadStore_GetAll(t *testing.T) {
	rs := NewReadStore()

	assert.Empty(t, rs.GetAll(CollectionPosts))

	rs.Set(CollectionPosts, "post-1", &readmodel.PostReadModel{ID: "post-1"})
	rs.Set(CollectionPosts, "post-2", &readmodel.PostReadModel{ID: "post-2"})

	assert.Len(t, rs.GetAll(CollectionPosts), 2)
}

func TestReadStore_Update(t *testing.T) {
	rs := NewReadStore()

	rs.Set(CollectionOrders, "order-1", &readmodel.OrderReadModel{ID: "order-1", Status: "pending"})

	ok := rs.Update(CollectionOrders, "order-1", func(current any) any {
		o := current.(*readmodel.OrderReadModel)
		o.Status = "confirmed"
		return o
	})
	require.True(t, ok)

	data, _ := rs.Get(CollectionOrders, "order-1")
	assert.Equal(t, "confirmed", data.(*readmodel.OrderReadModel).Status)

	// Updating an unknown id reports false and stores nothing.
	assert.False(t, rs.Update(CollectionOrders, "missing", func(current any) any { return current }))
	_, ok = rs.Get(CollectionOrders, "missing")
	assert.False(t, ok)
}

func TestReadStore_Delete(t *testing.T) {
	rs := NewReadStore()

	rs.Set(CollectionProducts, "prod-1", &readmodel.ProductReadModel{ID: "prod-1"})
	rs.Delete(CollectionProducts, "prod-1")

	_, ok := rs.Get(CollectionProducts, "prod-1")
	assert.False(t, ok)

	// Deleting from an empty collection is a no-op.
	rs.Delete(CollectionPosts, "missing")
}
