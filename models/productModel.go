package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required" gorm:"size:100;uniqueIndex"`
}

type ProductImage struct {
	gorm.Model
	Url       string `json:"url" binding:"required"`
	ProductID uint   `json:"product_id" binding:"required"`
}

type Product struct {
	gorm.Model
	Name          string          `json:"name"`
	Slug          string          `json:"slug" gorm:"size:100;uniqueIndex"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	// No column default here: a default-tagged bool would make gorm
	// drop an explicit false on insert. Callers always set the flag.
	IsAvailable   bool            `json:"is_available"`
	CategoryID    *uint           `json:"category_id"`
	Category      *Category       `json:"category,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	AverageRating float64         `json:"average_rating" gorm:"default:0"`
	Ingredients   datatypes.JSON  `json:"ingredients,omitempty"`
	Images        []ProductImage  `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}
