package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModerationFilterAll(t *testing.T) {
	f := moderationFilter("all", 0)

	assert.False(t, f.ApprovedOnly)
	assert.False(t, f.PendingOnly)
	assert.Equal(t, 0, f.Rating)
}

func TestModerationFilterApproved(t *testing.T) {
	f := moderationFilter("approved", 4)

	assert.True(t, f.ApprovedOnly)
	assert.False(t, f.PendingOnly)
	assert.Equal(t, 4, f.Rating)
}

func TestModerationFilterPending(t *testing.T) {
	f := moderationFilter("pending", 0)

	assert.False(t, f.ApprovedOnly)
	assert.True(t, f.PendingOnly)
}
