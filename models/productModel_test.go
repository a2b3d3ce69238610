package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductAvailabilityPersists(t *testing.T) {
	db := newTestDB(t)

	product := Product{
		Name:        "Sold Out Soup",
		Slug:        "sold-out-soup",
		Price:       decimal.RequireFromString("4.00"),
		IsAvailable: false,
	}
	require.NoError(t, db.Create(&product).Error)

	var stored Product
	require.NoError(t, db.First(&stored, product.ID).Error)
	assert.False(t, stored.IsAvailable, "an unavailable product must be stored as unavailable")
}
