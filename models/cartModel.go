package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Cart struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"uniqueIndex"`
	Items       []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	PromoCodeID *uint      `json:"-"`
	PromoCode   *PromoCode `json:"promo_code" gorm:"constraint:OnDelete:SET NULL"`
	// DiscountAmount is cached at promo-application time and is not
	// recomputed when items change afterwards. Order totals use this
	// value as-is.
	DiscountAmount decimal.Decimal `json:"discount_amount" gorm:"type:decimal(10,2);default:0"`
}

type CartItem struct {
	gorm.Model
	CartID    uint    `json:"-" gorm:"uniqueIndex:idx_cart_item_cart_product"`
	ProductID uint    `json:"-" gorm:"uniqueIndex:idx_cart_item_cart_product"`
	Product   Product `json:"product"`
	Quantity  int     `json:"quantity"`
}

// GetOrCreateCart returns the user's cart, creating it on first access.
func GetOrCreateCart(db *gorm.DB, userID uint) (Cart, error) {
	var cart Cart
	err := db.Preload("PromoCode").Where(Cart{UserID: userID}).FirstOrCreate(&cart).Error
	return cart, err
}

// Subtotal sums price x quantity over the cart's current lines.
func (c *Cart) Subtotal(db *gorm.DB) (decimal.Decimal, error) {
	var items []CartItem
	if err := db.Preload("Product").Where("cart_id = ?", c.ID).Find(&items).Error; err != nil {
		return decimal.Zero, err
	}
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal, nil
}

// Total is subtotal minus the cached discount, rounded to cents.
func (c *Cart) Total(db *gorm.DB) (decimal.Decimal, error) {
	subtotal, err := c.Subtotal(db)
	if err != nil {
		return decimal.Zero, err
	}
	return subtotal.Sub(c.DiscountAmount).Round(2), nil
}

// ApplyPromoCode attaches a promo code to the cart and caches the
// discount computed over the current lines. It returns false without
// touching the cart when the code is not usable by the cart's owner.
func (c *Cart) ApplyPromoCode(db *gorm.DB, promo *PromoCode) (bool, error) {
	if !promo.IsUsableBy(c.UserID) {
		return false, nil
	}
	subtotal, err := c.Subtotal(db)
	if err != nil {
		return false, err
	}
	discount := subtotal.
		Mul(decimal.NewFromInt(int64(promo.DiscountPercent))).
		Div(decimal.NewFromInt(100))

	// Update through a bare model value: c may carry loaded
	// associations and gorm would save them over the new columns.
	updates := map[string]any{
		"promo_code_id":   promo.ID,
		"discount_amount": discount,
	}
	if err := db.Model(&Cart{Model: gorm.Model{ID: c.ID}}).Updates(updates).Error; err != nil {
		return false, err
	}
	c.PromoCodeID = &promo.ID
	c.PromoCode = promo
	c.DiscountAmount = discount
	return true, nil
}

// ClearPromoCode detaches the applied promo code and resets the cached
// discount. The promo code itself is left untouched.
func (c *Cart) ClearPromoCode(db *gorm.DB) error {
	updates := map[string]any{
		"promo_code_id":   nil,
		"discount_amount": decimal.Zero,
	}
	if err := db.Model(&Cart{Model: gorm.Model{ID: c.ID}}).Updates(updates).Error; err != nil {
		return err
	}
	c.PromoCodeID = nil
	c.PromoCode = nil
	c.DiscountAmount = decimal.Zero
	return nil
}
