package models

import (
	"database/sql"
	"math"

	"gorm.io/gorm"
)

type Review struct {
	gorm.Model
	UserID    uint   `json:"-" gorm:"uniqueIndex:idx_review_user_product"`
	User      User   `json:"-"`
	ProductID uint   `json:"-" gorm:"uniqueIndex:idx_review_user_product"`
	Rating    int    `json:"rating"`
	Text      string `json:"text"`
}

func (r *Review) AfterSave(tx *gorm.DB) error {
	return RecalculateProductRating(tx, r.ProductID)
}

func (r *Review) AfterDelete(tx *gorm.DB) error {
	return RecalculateProductRating(tx, r.ProductID)
}

// RecalculateProductRating rewrites the product's average rating from
// the review rows. The stored value is a materialized view over the
// reviews; it is 0 when none remain.
func RecalculateProductRating(db *gorm.DB, productID uint) error {
	var avg sql.NullFloat64
	err := db.Model(&Review{}).
		Where("product_id = ?", productID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return err
	}

	rating := 0.0
	if avg.Valid {
		rating = math.Round(avg.Float64*100) / 100
	}
	return db.Model(&Product{}).Where("id = ?", productID).Update("average_rating", rating).Error
}
