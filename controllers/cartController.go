package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/arslan3804/food-project/initializers"
	"github.com/arslan3804/food-project/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	msgFailedToFetchCart = "Failed to fetch cart"
	msgProductNotInCart  = "Product is not in the cart"
)

type cartItemInput struct {
	Product string `json:"product" binding:"required"`
}

type applyPromoInput struct {
	Code string `json:"code" binding:"required,max=20"`
}

func findProductBySlug(slug string) (models.Product, error) {
	var product models.Product
	result := initializers.DB.Where("slug = ?", slug).First(&product)
	return product, result.Error
}

// GetCart returns the user's cart, lazily creating it on first access.
func GetCart(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	cart, err := models.GetOrCreateCart(initializers.DB, user.ID)
	if err != nil {
		log.Println("Cart fetch error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToFetchCart)
		return
	}

	payload, err := serializeCart(initializers.DB, &cart)
	if err != nil {
		log.Println("Cart serialization error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToFetchCart)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, payload)
}

// AddToCart creates a line for the product or bumps its quantity by one.
func AddToCart(ctx *gin.Context) {
	user, _ := currentUser(ctx)

	var input cartItemInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	product, err := findProductBySlug(input.Product)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Product not found")
		return
	}

	cart, err := models.GetOrCreateCart(initializers.DB, user.ID)
	if err != nil {
		log.Println("Cart fetch error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToFetchCart)
		return
	}

	var cartItem models.CartItem
	err = initializers.DB.
		Where("cart_id = ? AND product_id = ?", cart.ID, product.ID).
		First(&cartItem).Error

	switch {
	case err == nil:
		cartItem.Quantity++
		if err := initializers.DB.Save(&cartItem).Error; err != nil {
			log.Println("Cart item update error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to update cart item quantity.")
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		cartItem = models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 1}
		if err := initializers.DB.Create(&cartItem).Error; err != nil {
			log.Println("Cart item create error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create cart item")
			return
		}
	default:
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch cart item")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"id":       cartItem.ID,
		"product":  product.Name,
		"quantity": cartItem.Quantity,
	})
}

func findCartLine(userID uint, slug string) (models.Cart, models.CartItem, models.Product, error) {
	product, err := findProductBySlug(slug)
	if err != nil {
		return models.Cart{}, models.CartItem{}, models.Product{}, err
	}

	var cart models.Cart
	if err := initializers.DB.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return models.Cart{}, models.CartItem{}, product, err
	}

	var cartItem models.CartItem
	err = initializers.DB.
		Where("cart_id = ? AND product_id = ?", cart.ID, product.ID).
		First(&cartItem).Error
	return cart, cartItem, product, err
}

// DecreaseCartItem lowers a line's quantity by one, never below one.
func DecreaseCartItem(ctx *gin.Context) {
	user, _ := currentUser(ctx)

	var input cartItemInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	_, cartItem, product, err := findCartLine(user.ID, input.Product)
	if err != nil {
		sendDetailResponse(ctx, http.StatusBadRequest, msgProductNotInCart)
		return
	}

	if cartItem.Quantity > 1 {
		cartItem.Quantity--
		if err := initializers.DB.Save(&cartItem).Error; err != nil {
			log.Println("Cart item update error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to update cart item quantity.")
			return
		}
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"id":       cartItem.ID,
		"product":  product.Name,
		"quantity": cartItem.Quantity,
	})
}

// RemoveCartItem deletes a line. When the last line goes, the applied
// promo code is cleared as well.
func RemoveCartItem(ctx *gin.Context) {
	user, _ := currentUser(ctx)

	var input cartItemInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	cart, cartItem, _, err := findCartLine(user.ID, input.Product)
	if err != nil {
		sendDetailResponse(ctx, http.StatusBadRequest, msgProductNotInCart)
		return
	}

	if err := initializers.DB.Unscoped().Delete(&cartItem).Error; err != nil {
		log.Println("Cart item delete error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to remove cart item")
		return
	}

	var remaining int64
	initializers.DB.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&remaining)
	if remaining == 0 {
		if err := cart.ClearPromoCode(initializers.DB); err != nil {
			log.Println("Promo clear error:", err)
		}
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"removed": true})
}

// ClearCart drops all lines and any applied promo code.
func ClearCart(ctx *gin.Context) {
	user, _ := currentUser(ctx)

	var cart models.Cart
	err := initializers.DB.Where("user_id = ?", user.ID).First(&cart).Error
	if err == nil {
		if err := initializers.DB.Unscoped().
			Where("cart_id = ?", cart.ID).
			Delete(&models.CartItem{}).Error; err != nil {
			log.Println("Cart clear error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to clear cart")
			return
		}
		if err := cart.ClearPromoCode(initializers.DB); err != nil {
			log.Println("Promo clear error:", err)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("Cart fetch error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToFetchCart)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"cleared": true})
}

// ApplyPromoCode validates a promo code and caches its discount on the
// cart. A failed apply leaves any previously applied code untouched.
func ApplyPromoCode(ctx *gin.Context) {
	user, _ := currentUser(ctx)

	var input applyPromoInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendDetailResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	cart, err := models.GetOrCreateCart(initializers.DB, user.ID)
	if err != nil {
		log.Println("Cart fetch error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToFetchCart)
		return
	}

	promo, err := models.ValidatePromoCode(initializers.DB, input.Code, user.ID)
	if err != nil {
		if errors.Is(err, models.ErrPromoNotFound) || errors.Is(err, models.ErrPromoNotUsable) {
			sendDetailResponse(ctx, http.StatusBadRequest, err.Error())
			return
		}
		log.Println("Promo validation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	applied, err := cart.ApplyPromoCode(initializers.DB, &promo)
	if err != nil {
		log.Println("Promo apply error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if !applied {
		sendDetailResponse(ctx, http.StatusBadRequest, "Failed to apply promo code")
		return
	}

	payload, err := serializeCart(initializers.DB, &cart)
	if err != nil {
		log.Println("Cart serialization error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToFetchCart)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, payload)
}

// RemovePromoCode detaches the applied promo code from the cart.
func RemovePromoCode(ctx *gin.Context) {
	user, _ := currentUser(ctx)

	cart, err := models.GetOrCreateCart(initializers.DB, user.ID)
	if err != nil {
		log.Println("Cart fetch error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToFetchCart)
		return
	}

	if err := cart.ClearPromoCode(initializers.DB); err != nil {
		log.Println("Promo clear error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	payload, err := serializeCart(initializers.DB, &cart)
	if err != nil {
		log.Println("Cart serialization error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToFetchCart)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, payload)
}
