package post

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranphihao2k3/LapLap-sub001/internal/infrastructure/store/mocks"
)

func newTestPostService() (*Service, *mocks.MockEventStore) {
	eventStore := mocks.NewMockEventStore()
	service := NewService(eventStore)
	return service, eventStore
}

func TestService_Create_Success(t *testing.T) {
	service, eventStore := newTestPostService()
	ctx := context.Background()

	p, err := service.Create(ctx, "Top 5 laptops for students", "top-5-laptops", "Our picks", "Full article...", "")

	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "top-5-laptops", p.Slug)

	assert.Len(t, eventStore.AppendCalls, 1)
	assert.Equal(t, EventPostCreated, eventStore.AppendCalls[0].EventType)
}

func TestService_Create_GeneratesSlug(t *testing.T) {
	service, _ := newTestPostService()
	ctx := context.Background()

	p, err := service.Create(ctx, "RAM Upgrade Guide (2024)!", "", "", "", "")

	require.NoError(t, err)
	assert.Equal(t, "ram-upgrade-guide-2024", p.Slug)
}

func TestService_Create_MissingTitle(t *testing.T) {
	service, _ := newTestPostService()
	ctx := context.Background()

	p, err := service.Create(ctx, "", "slug", "", "", "")

	assert.ErrorIs(t, err, ErrInvalidTitle)
	assert.Nil(t, p)
}

func TestService_Create_InvalidSlug(t *testing.T) {
	service, _ := newTestPostService()
	ctx := context.Background()

	for _, slug := range []string{"Bad Slug", "UPPER", "trailing-", "-leading", "double--dash"} {
		p, err := service.Create(ctx, "Title", slug, "", "", "")
		assert.ErrorIs(t, err, ErrInvalidSlug, "slug %q", slug)
		assert.Nil(t, p)
	}
}

func TestService_Publish_Success(t *testing.T) {
	service, eventStore := newTestPostService()
	ctx := context.Background()

	_ = eventStore.AddEvent("post-1", AggregateType, EventPostCreated, PostCreated{PostID: "post-1"})

	require.NoError(t, service.Publish(ctx, "post-1"))
	assert.Equal(t, EventPostPublished, eventStore.AppendCalls[0].EventType)
}

func TestService_Publish_NotFound(t *testing.T) {
	service, _ := newTestPostService()
	ctx := context.Background()

	assert.ErrorIs(t, service.Publish(ctx, "missing"), ErrPostNotFound)
}

func TestService_Update_NotFound(t *testing.T) {
	service, _ := newTestPostService()
	ctx := context.Background()

	assert.ErrorIs(t, service.Update(ctx, "missing", "Title", "", "", ""), ErrPostNotFound)
}

func TestService_Delete_Success(t *testing.T) {
	service, eventStore := newTestPostService()
	ctx := context.Background()

	_ = eventStore.AddEvent("post-1", AggregateType, EventPostCreated, PostCreated{PostID: "post-1"})

	require.NoError(t, service.Delete(ctx, "post-1"))
	assert.Equal(t, EventPostDeleted, eventStore.AppendCalls[0].EventType)
}
