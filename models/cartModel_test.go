package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateCart(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "frank")

	cart, err := GetOrCreateCart(db, user.ID)
	require.NoError(t, err)
	assert.NotZero(t, cart.ID)

	again, err := GetOrCreateCart(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)
}

func TestSubtotalAndTotal(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "grace")
	cart, err := GetOrCreateCart(db, user.ID)
	require.NoError(t, err)

	soup := createProduct(t, db, "Soup", "soup", "2.50")
	bread := createProduct(t, db, "Bread", "bread", "3.00")
	require.NoError(t, db.Create(&CartItem{CartID: cart.ID, ProductID: soup.ID, Quantity: 2}).Error)
	require.NoError(t, db.Create(&CartItem{CartID: cart.ID, ProductID: bread.ID, Quantity: 1}).Error)

	subtotal, err := cart.Subtotal(db)
	require.NoError(t, err)
	assert.Equal(t, "8.00", subtotal.StringFixed(2))

	total, err := cart.Total(db)
	require.NoError(t, err)
	assert.Equal(t, "8.00", total.StringFixed(2))
}

func TestApplyPromoCode(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "heidi")
	cart, err := GetOrCreateCart(db, user.ID)
	require.NoError(t, err)

	product := createProduct(t, db, "Pizza", "pizza", "25.00")
	require.NoError(t, db.Create(&CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 4}).Error)

	promo := PromoCode{UserID: user.ID, Code: "FIFTEEN1", DiscountPercent: 15, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, db.Create(&promo).Error)

	applied, err := cart.ApplyPromoCode(db, &promo)
	require.NoError(t, err)
	assert.True(t, applied)

	// subtotal 100.00 at 15% -> discount 15.00, total 85.00
	assert.Equal(t, "15.00", cart.DiscountAmount.StringFixed(2))
	total, err := cart.Total(db)
	require.NoError(t, err)
	assert.Equal(t, "85.00", total.StringFixed(2))

	var stored Cart
	require.NoError(t, db.First(&stored, cart.ID).Error)
	require.NotNil(t, stored.PromoCodeID)
	assert.Equal(t, promo.ID, *stored.PromoCodeID)
	assert.True(t, stored.DiscountAmount.Equal(decimal.RequireFromString("15.00")))
}

func TestApplyPromoCodeRejectsUnusable(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "ivan")
	stranger := createUser(t, db, "judy")
	cart, err := GetOrCreateCart(db, user.ID)
	require.NoError(t, err)

	product := createProduct(t, db, "Salad", "salad", "10.00")
	require.NoError(t, db.Create(&CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 1}).Error)

	cases := []struct {
		name  string
		promo PromoCode
	}{
		{"belongs to another user", PromoCode{UserID: stranger.ID, Code: "OTHERS22", DiscountPercent: 10, ExpiresAt: time.Now().Add(time.Hour)}},
		{"already used", PromoCode{UserID: user.ID, Code: "USEDUP33", DiscountPercent: 10, IsUsed: true, ExpiresAt: time.Now().Add(time.Hour)}},
		{"expired", PromoCode{UserID: user.ID, Code: "EXPIRE44", DiscountPercent: 10, ExpiresAt: time.Now().Add(-time.Minute)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, db.Create(&tc.promo).Error)
			applied, err := cart.ApplyPromoCode(db, &tc.promo)
			require.NoError(t, err)
			assert.False(t, applied)

			var stored Cart
			require.NoError(t, db.First(&stored, cart.ID).Error)
			assert.Nil(t, stored.PromoCodeID, "a failed apply must leave the cart untouched")
			assert.True(t, stored.DiscountAmount.IsZero())
		})
	}
}

func TestApplyPromoCodeReplacesExistingPromo(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "mia")
	cart, err := GetOrCreateCart(db, user.ID)
	require.NoError(t, err)

	product := createProduct(t, db, "Tacos", "tacos", "20.00")
	require.NoError(t, db.Create(&CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 5}).Error)

	first := PromoCode{UserID: user.ID, Code: "FIRST555", DiscountPercent: 5, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, db.Create(&first).Error)
	applied, err := cart.ApplyPromoCode(db, &first)
	require.NoError(t, err)
	require.True(t, applied)

	// The cart now has a loaded promo association; applying another
	// code must still persist the new reference, not the old one.
	second := PromoCode{UserID: user.ID, Code: "SECOND10", DiscountPercent: 10, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, db.Create(&second).Error)
	applied, err = cart.ApplyPromoCode(db, &second)
	require.NoError(t, err)
	require.True(t, applied)

	var stored Cart
	require.NoError(t, db.First(&stored, cart.ID).Error)
	require.NotNil(t, stored.PromoCodeID)
	assert.Equal(t, second.ID, *stored.PromoCodeID)
	assert.Equal(t, "10.00", stored.DiscountAmount.StringFixed(2))
}

func TestCachedDiscountGoesStale(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "kate")
	cart, err := GetOrCreateCart(db, user.ID)
	require.NoError(t, err)

	pasta := createProduct(t, db, "Pasta", "pasta", "50.00")
	require.NoError(t, db.Create(&CartItem{CartID: cart.ID, ProductID: pasta.ID, Quantity: 2}).Error)

	promo := PromoCode{UserID: user.ID, Code: "STALE155", DiscountPercent: 15, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, db.Create(&promo).Error)
	applied, err := cart.ApplyPromoCode(db, &promo)
	require.NoError(t, err)
	require.True(t, applied)

	// Adding items afterwards must not touch the cached discount.
	wine := createProduct(t, db, "Wine", "wine", "50.00")
	require.NoError(t, db.Create(&CartItem{CartID: cart.ID, ProductID: wine.ID, Quantity: 1}).Error)

	var stored Cart
	require.NoError(t, db.First(&stored, cart.ID).Error)
	assert.Equal(t, "15.00", stored.DiscountAmount.StringFixed(2))

	total, err := stored.Total(db)
	require.NoError(t, err)
	assert.Equal(t, "135.00", total.StringFixed(2))
}

func TestClearPromoCode(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "liam")
	cart, err := GetOrCreateCart(db, user.ID)
	require.NoError(t, err)

	product := createProduct(t, db, "Burger", "burger", "12.00")
	require.NoError(t, db.Create(&CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 1}).Error)

	promo := PromoCode{UserID: user.ID, Code: "CLEARME5", DiscountPercent: 5, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, db.Create(&promo).Error)
	applied, err := cart.ApplyPromoCode(db, &promo)
	require.NoError(t, err)
	require.True(t, applied)

	require.NoError(t, cart.ClearPromoCode(db))

	var stored Cart
	require.NoError(t, db.First(&stored, cart.ID).Error)
	assert.Nil(t, stored.PromoCodeID)
	assert.True(t, stored.DiscountAmount.IsZero())

	// The promo itself stays usable.
	var storedPromo PromoCode
	require.NoError(t, db.First(&storedPromo, promo.ID).Error)
	assert.False(t, storedPromo.IsUsed)
}
