package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/arslan3804/food-project/controllers"
	"github.com/arslan3804/food-project/initializers"
	"github.com/arslan3804/food-project/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = testDB.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Product{}, &models.ProductImage{},
		&models.PromoCode{}, &models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{}, &models.Review{},
	)
	require.NoError(t, err)

	originalDB := initializers.DB
	initializers.DB = testDB
	t.Cleanup(func() {
		initializers.DB = originalDB
	})
	return testDB
}

// authAs stands in for the RequireAuth middleware and resolves the user
// fresh from the database on every request.
func authAs(db *gorm.DB, userID uint) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var user models.User
		if err := db.First(&user, userID).Error; err == nil {
			ctx.Set("currentUser", user)
		}
		ctx.Next()
	}
}

func newTestRouter(db *gorm.DB, userID uint) *gin.Engine {
	r := gin.New()
	auth := authAs(db, userID)

	cart := r.Group("/cart", auth)
	{
		cart.GET("", controllers.GetCart)
		cart.POST("/add", controllers.AddToCart)
		cart.POST("/decrease", controllers.DecreaseCartItem)
		cart.POST("/remove", controllers.RemoveCartItem)
		cart.POST("/clear", controllers.ClearCart)
		cart.POST("/apply-promo", controllers.ApplyPromoCode)
		cart.POST("/remove-promo", controllers.RemovePromoCode)
	}

	orders := r.Group("/orders", auth)
	{
		orders.GET("", controllers.GetOrders)
		orders.GET("/:orderId", controllers.GetOrderById)
		orders.POST("/create-from-cart", controllers.CreateOrderFromCart)
	}

	promos := r.Group("/promo-codes", auth)
	{
		promos.GET("", controllers.GetPromoCodes)
		promos.GET("/current", controllers.GetCurrentPromoCode)
		promos.GET("/has_attempt", controllers.HasAttempt)
	}

	r.GET("/products/:id/reviews", controllers.GetReviews)
	reviews := r.Group("/products", auth)
	{
		reviews.POST("/:id/reviews", controllers.CreateReview)
		reviews.PUT("/:id/reviews/:reviewId", controllers.UpdateReview)
		reviews.DELETE("/:id/reviews/:reviewId", controllers.DeleteReview)
	}

	return r
}

func performRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	return payload
}

func createTestUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
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

func createTestProduct(t *testing.T, db *gorm.DB, name, slug, price string, available bool) models.Product {
	t.Helper()
	product := models.Product{
		Name:        name,
		Slug:        slug,
		Price:       decimal.RequireFromString(price),
		IsAvailable: available,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func createTestPromo(t *testing.T, db *gorm.DB, userID uint, code string, percent int) models.PromoCode {
	t.Helper()
	promo := models.PromoCode{
		UserID:          userID,
		Code:            code,
		DiscountPercent: percent,
		ExpiresAt:       time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, db.Create(&promo).Error)
	return promo
}
