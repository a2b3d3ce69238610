package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusInTransit = "in_transit"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusInTransit,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

type Order struct {
	gorm.Model
	UserID          uint            `json:"user_id"`
	User            User            `json:"-"`
	DeliveryAddress string          `json:"delivery_address" gorm:"size:500"`
	TotalPrice      decimal.Decimal `json:"total_price" gorm:"type:decimal(10,2)"`
	PromoCodeID     *uint           `json:"-"`
	PromoCode       *PromoCode      `json:"promo_code" gorm:"constraint:OnDelete:SET NULL"`
	Status          string          `json:"status" gorm:"size:20;default:pending"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderItem struct {
	gorm.Model
	OrderID   uint     `json:"-"`
	ProductID *uint    `json:"-"`
	Product   *Product `json:"product" gorm:"constraint:OnDelete:SET NULL"`
	Quantity  int      `json:"quantity"`
	// PricePerItem is the product price snapshotted at checkout and is
	// never updated when the catalog price changes.
	PricePerItem decimal.Decimal `json:"price_per_item" gorm:"type:decimal(10,2)"`
}
