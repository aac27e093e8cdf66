package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRatingAggregateMean(t *testing.T) {
	// ratings 4, 5, 5 -> mean 4.666... rounds to 4.7
	r := ratingAggregate(14, 3)

	assert.Equal(t, 4.7, r.Average)
	assert.Equal(t, 3, r.Count)
}

func TestRatingAggregateExact(t *testing.T) {
	r := ratingAggregate(9, 2)

	assert.Equal(t, 4.5, r.Average)
	assert.Equal(t, 2, r.Count)
}

func TestRatingAggregateEmpty(t *testing.T) {
	r := ratingAggregate(0, 0)

	assert.Equal(t, 0.0, r.Average)
	assert.Equal(t, 0, r.Count)
}

func TestReviewFilterBuild(t *testing.T) {
	productID := primitive.NewObjectID()

	filter := ReviewFilter{Product: &productID, ApprovedOnly: true, Rating: 5}.build()

	assert.Equal(t, productID, filter["product"])
	assert.Equal(t, true, filter["isApproved"])
	assert.Equal(t, 5, filter["rating"])
}

func TestReviewFilterBuildAll(t *testing.T) {
	filter := ReviewFilter{}.build()
	assert.Empty(t, filter)
}
