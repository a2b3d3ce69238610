package controllers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"slices"
	"strconv"

	"github.com/arslan3804/food-project/initializers"
	"github.com/arslan3804/food-project/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	msgCartEmpty             = "Cart is empty"
	msgMissingCheckoutFields = "Delivery address, first name and last name are required"
	msgFailedToFetchOrders   = "Failed to fetch orders."
)

type createOrderInput struct {
	DeliveryAddress string `json:"delivery_address"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

func fallback(value, defaultValue string) string {
	if value != "" {
		return value
	}
	return defaultValue
}

// CreateOrderFromCart converts the user's cart into an order inside a
// single transaction: the order and its item snapshots are created, the
// applied promo code is consumed or none of it happens.
func CreateOrderFromCart(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input createOrderInput
	if err := ctx.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var cart models.Cart
	err := initializers.DB.
		Preload("Items.Product").
		Preload("PromoCode").
		Where("user_id = ?", user.ID).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		sendDetailResponse(ctx, http.StatusBadRequest, msgCartEmpty)
		return
	}
	if err != nil {
		log.Println("Cart fetch error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToFetchCart)
		return
	}
	if len(cart.Items) == 0 {
		sendDetailResponse(ctx, http.StatusBadRequest, msgCartEmpty)
		return
	}

	for _, item := range cart.Items {
		if !item.Product.IsAvailable {
			sendDetailResponse(ctx, http.StatusBadRequest,
				fmt.Sprintf("Product %s is not available", item.Product.Name))
			return
		}
	}

	deliveryAddress := fallback(input.DeliveryAddress, user.Address)
	firstName := fallback(input.FirstName, user.FirstName)
	lastName := fallback(input.LastName, user.LastName)
	if deliveryAddress == "" || firstName == "" || lastName == "" {
		sendDetailResponse(ctx, http.StatusBadRequest, msgMissingCheckoutFields)
		return
	}

	total, err := cart.Total(initializers.DB)
	if err != nil {
		log.Println("Cart total error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	tx := initializers.DB.Begin()
	if tx.Error != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to start transaction")
		return
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	order := models.Order{
		UserID:          user.ID,
		DeliveryAddress: deliveryAddress,
		TotalPrice:      total,
		PromoCodeID:     cart.PromoCodeID,
		Status:          models.OrderStatusPending,
	}
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		log.Println("Order creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create order")
		return
	}

	for _, item := range cart.Items {
		productID := item.ProductID
		orderItem := models.OrderItem{
			OrderID:      order.ID,
			ProductID:    &productID,
			Quantity:     item.Quantity,
			PricePerItem: item.Product.Price,
		}
		if err := tx.Create(&orderItem).Error; err != nil {
			tx.Rollback()
			log.Println("Order item creation error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create order items")
			return
		}
	}

	if cart.PromoCode != nil {
		if err := cart.PromoCode.MarkUsed(tx); err != nil {
			tx.Rollback()
			log.Println("Promo consume error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to consume promo code")
			return
		}
	}

	if err := tx.Unscoped().Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		tx.Rollback()
		log.Println("Cart reset error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to clear cart")
		return
	}
	// The loaded cart carries its Items and PromoCode associations;
	// updating through it would make gorm save them right back.
	if err := tx.Model(&models.Cart{Model: gorm.Model{ID: cart.ID}}).Updates(map[string]any{
		"promo_code_id":   nil,
		"discount_amount": 0,
	}).Error; err != nil {
		tx.Rollback()
		log.Println("Cart reset error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	if err := tx.Commit().Error; err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to save order")
		return
	}

	var created models.Order
	err = initializers.DB.
		Preload("Items.Product").
		Preload("PromoCode").
		Preload("User").
		First(&created, order.ID).Error
	if err != nil {
		log.Println("Order fetch error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToFetchOrders)
		return
	}

	ctx.JSON(http.StatusCreated, serializeOrder(&created))
}

// GetOrders lists the authenticated user's orders, newest first.
func GetOrders(ctx *gin.Context) {
	user, _ := currentUser(ctx)

	var orders []models.Order
	err := initializers.DB.
		Preload("Items.Product").
		Preload("PromoCode").
		Preload("User").
		Where("user_id = ?", user.ID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		log.Println("Order fetch error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToFetchOrders)
		return
	}

	payload := make([]orderResponse, 0, len(orders))
	for i := range orders {
		payload = append(payload, serializeOrder(&orders[i]))
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": payload})
}

// GetOrderById returns one of the user's own orders.
func GetOrderById(ctx *gin.Context) {
	user, _ := currentUser(ctx)

	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	var order models.Order
	err = initializers.DB.
		Preload("Items.Product").
		Preload("PromoCode").
		Preload("User").
		Where("id = ? AND user_id = ?", orderId, user.ID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		log.Println("Order fetch error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToFetchOrders)
		return
	}

	ctx.JSON(http.StatusOK, serializeOrder(&order))
}

// UpdateOrderStatus moves an order through its status lifecycle. Status
// changes happen only here, never in the checkout workflow.
func UpdateOrderStatus(ctx *gin.Context) {
	var orderStatusData struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&orderStatusData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}
	if !slices.Contains(models.OrderStatuses, orderStatusData.Status) {
		sendErrorResponse(ctx, http.StatusBadRequest, "Unknown order status")
		return
	}

	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	result := initializers.DB.Model(&models.Order{}).
		Where("id = ?", orderId).
		Update("status", orderStatusData.Status)
	if result.Error != nil {
		log.Println("Order status update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update order status")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order status updated successfully."})
}
