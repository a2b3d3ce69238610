package models

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Named in-memory database so every pooled connection sees the
	// same data, isolated per test.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&User{}, &Category{}, &Product{}, &ProductImage{},
		&PromoCode{}, &Cart{}, &CartItem{},
		&Order{}, &OrderItem{}, &Review{},
	)
	require.NoError(t, err)
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) User {
	t.Helper()
	user := User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "hashed",
		Role:      "user",
		FirstName: "Test",
		LastName:  "User",
		Address:   "1 Test Street",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createProduct(t *testing.T, db *gorm.DB, name, slug, price string) Product {
	t.Helper()
	product := Product{
		Name:        name,
		Slug:        slug,
		Price:       decimal.RequireFromString(price),
		IsAvailable: true,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}
