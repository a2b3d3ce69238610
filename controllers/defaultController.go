package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Food Project API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create user account
- POST "/auth/login" - Access user account

CATALOG
- GET "/categories" - List categories
- GET "/products" - List products (search, category and availability filters)
- GET "/products/{id}" - Get product by ID
- GET "/products/category/{slug}" - List products in a category
- GET "/products/{id}/reviews" - List product reviews
- GET "/products/{id}/images" - List product images

CART
- GET "/cart" - Get the cart
- POST "/cart/add" - Add a product to the cart
- POST "/cart/decrease" - Decrease a line's quantity
- POST "/cart/remove" - Remove a line
- POST "/cart/clear" - Clear the cart
- POST "/cart/apply-promo" - Apply a promo code
- POST "/cart/remove-promo" - Remove the applied promo code

ORDERS
- POST "/orders/create-from-cart" - Checkout the cart
- GET "/orders" - List your orders
- GET "/orders/{orderId}" - Get order by ID

PROMO CODES
- GET "/promo-codes/current" - Get today's promo code
- GET "/promo-codes/has_attempt" - Whether you may still draw today`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
