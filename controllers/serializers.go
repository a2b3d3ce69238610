package controllers

import (
	"time"

	"github.com/arslan3804/food-project/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type promoCodeResponse struct {
	Code            string    `json:"code"`
	DiscountPercent int       `json:"discount_percent"`
	ExpiresAt       time.Time `json:"expires_at"`
}

func serializePromoCode(promo *models.PromoCode) *promoCodeResponse {
	if promo == nil {
		return nil
	}
	return &promoCodeResponse{
		Code:            promo.Code,
		DiscountPercent: promo.DiscountPercent,
		ExpiresAt:       promo.ExpiresAt,
	}
}

// serializeCart builds the full cart payload. The discount shown here is
// recomputed from the promo percent over the current lines, independent
// of the amount cached at apply time.
func serializeCart(db *gorm.DB, cart *models.Cart) (gin.H, error) {
	var items []models.CartItem
	err := db.Preload("Product").Where("cart_id = ?", cart.ID).Find(&items).Error
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	itemsPayload := make([]gin.H, 0, len(items))
	for _, item := range items {
		subtotal = subtotal.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		itemsPayload = append(itemsPayload, gin.H{
			"id":             item.ID,
			"product":        item.Product.Name,
			"product_detail": item.Product,
			"quantity":       item.Quantity,
		})
	}

	discount := decimal.Zero
	if cart.PromoCode != nil {
		discount = subtotal.
			Mul(decimal.NewFromInt(int64(cart.PromoCode.DiscountPercent))).
			Div(decimal.NewFromInt(100)).
			Round(2)
	}
	total := subtotal.Sub(discount).Round(2)

	return gin.H{
		"id":              cart.ID,
		"items":           itemsPayload,
		"promo_code":      serializePromoCode(cart.PromoCode),
		"subtotal":        subtotal.StringFixed(2),
		"discount_amount": discount.StringFixed(2),
		"total":           total.StringFixed(2),
		"created_at":      cart.CreatedAt,
	}, nil
}

type orderItemResponse struct {
	ID           uint    `json:"id"`
	Product      *string `json:"product"`
	Quantity     int     `json:"quantity"`
	PricePerItem string  `json:"price_per_item"`
}

type orderResponse struct {
	ID              uint                `json:"id"`
	User            string              `json:"user"`
	DeliveryAddress string              `json:"delivery_address"`
	CreatedAt       time.Time           `json:"created_at"`
	TotalPrice      string              `json:"total_price"`
	Status          string              `json:"status"`
	Items           []orderItemResponse `json:"items"`
	PromoCode       *promoCodeResponse  `json:"promo_code"`
}

func serializeOrder(order *models.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		var productName *string
		if item.Product != nil {
			productName = &item.Product.Name
		}
		items = append(items, orderItemResponse{
			ID:           item.ID,
			Product:      productName,
			Quantity:     item.Quantity,
			PricePerItem: item.PricePerItem.StringFixed(2),
		})
	}
	return orderResponse{
		ID:              order.ID,
		User:            order.User.Username,
		DeliveryAddress: order.DeliveryAddress,
		CreatedAt:       order.CreatedAt,
		TotalPrice:      order.TotalPrice.StringFixed(2),
		Status:          order.Status,
		Items:           items,
		PromoCode:       serializePromoCode(order.PromoCode),
	}
}

type reviewResponse struct {
	ID        uint      `json:"id"`
	User      string    `json:"user"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func serializeReview(review *models.Review) reviewResponse {
	return reviewResponse{
		ID:        review.ID,
		User:      review.User.Username,
		Rating:    review.Rating,
		Text:      review.Text,
		CreatedAt: review.CreatedAt,
	}
}
