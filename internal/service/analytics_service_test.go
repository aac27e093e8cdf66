package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodCutoff(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, now.AddDate(0, 0, -7), periodCutoff("7d", now))
	assert.Equal(t, now.AddDate(0, 0, -30), periodCutoff("30d", now))
	assert.Equal(t, now.AddDate(0, 0, -90), periodCutoff("90d", now))
	assert.Equal(t, now.AddDate(-1, 0, 0), periodCutoff("1y", now))
	assert.Equal(t, now.AddDate(0, 0, -30), periodCutoff("bogus", now))
}

func TestGrowthPercent(t *testing.T) {
	assert.Equal(t, 50.0, growthPercent(150, 100))
	assert.Equal(t, -25.0, growthPercent(75, 100))
	assert.Equal(t, 0.0, growthPercent(0, 0))
	// A first sale over a zero baseline reads as 100% growth
	assert.Equal(t, 100.0, growthPercent(42, 0))
}
