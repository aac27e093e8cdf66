package store

import (
	"context"
	"testing"

	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestListOptionsDefaults(t *testing.T) {
	opts := ListOptions{}.normalized()

	assert.Equal(t, int64(1), opts.Page)
	assert.Equal(t, int64(10), opts.Limit)
	assert.Equal(t, "createdAt", opts.SortBy)
	assert.Equal(t, "desc", opts.SortOrder)
}

func TestProductFilterBuild(t *testing.T) {
	min := 10.0
	max := 50.0
	vendorID := primitive.NewObjectID()

	filter := ProductFilter{
		ActiveOnly: true,
		Category:   "Books",
		Vendor:     &vendorID,
		MinPrice:   &min,
		MaxPrice:   &max,
	}.build()

	assert.Equal(t, true, filter["isActive"])
	assert.Equal(t, "Books", filter["category"])
	assert.Equal(t, vendorID, filter["vendor"])
	require.Contains(t, filter, "price")
}

func TestOrderFilterBuildEmpty(t *testing.T) {
	filter := OrderFilter{}.build()
	assert.Empty(t, filter)
}

func TestCreateAndCancelOrderRoundTrip(t *testing.T) {
	// Integration test - requires a MongoDB replica set for transactions.
	t.Skip("Integration test - requires mongodb")

	ctx := context.Background()

	s, err := NewStore(ctx, "mongodb://localhost:27017", "marketplace_test")
	require.NoError(t, err)
	defer s.Close(ctx)

	order := &models.Order{
		OrderNumber: "ORD-TEST-0001",
		Customer:    primitive.NewObjectID(),
		Items: []models.OrderItem{
			{
				Product:  primitive.NewObjectID(),
				Vendor:   primitive.NewObjectID(),
				Quantity: 2,
				Price:    25,
				Total:    50,
				Status:   models.OrderStatusPending,
			},
		},
		TotalAmount: 50,
		Status:      models.OrderStatusPending,
	}

	err = s.InsertOrder(ctx, order)
	require.NoError(t, err)
	assert.False(t, order.ID.IsZero())

	fetched, err := s.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, fetched.OrderNumber)
	assert.Len(t, fetched.Items, 1)
}
