package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/arslan3804/food-project/initializers"
	"github.com/arslan3804/food-project/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type reviewInput struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Text   string `json:"text"`
}

func findProductByParam(ctx *gin.Context) (models.Product, bool) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse product id")
		return models.Product{}, false
	}

	var product models.Product
	if err := initializers.DB.First(&product, productId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		} else {
			log.Println("Product fetch error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return models.Product{}, false
	}
	return product, true
}

// GetReviews lists a product's reviews, newest first.
func GetReviews(ctx *gin.Context) {
	product, ok := findProductByParam(ctx)
	if !ok {
		return
	}

	var reviews []models.Review
	err := initializers.DB.
		Preload("User").
		Where("product_id = ?", product.ID).
		Order("created_at desc").
		Find(&reviews).Error
	if err != nil {
		log.Println("Review fetch error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}

	payload := make([]reviewResponse, 0, len(reviews))
	for i := range reviews {
		payload = append(payload, serializeReview(&reviews[i]))
	}
	ctx.JSON(http.StatusOK, payload)
}

// CreateReview adds the user's review for a product. One review per
// user and product; the product's average rating is recomputed in the
// review's AfterSave hook.
func CreateReview(ctx *gin.Context) {
	user, _ := currentUser(ctx)

	product, ok := findProductByParam(ctx)
	if !ok {
		return
	}

	var input reviewInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var existing int64
	initializers.DB.Model(&models.Review{}).
		Where("user_id = ? AND product_id = ?", user.ID, product.ID).
		Count(&existing)
	if existing > 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "You have already reviewed this product")
		return
	}

	review := models.Review{
		UserID:    user.ID,
		ProductID: product.ID,
		Rating:    input.Rating,
		Text:      input.Text,
	}
	if err := initializers.DB.Create(&review).Error; err != nil {
		log.Println("Review creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create review")
		return
	}

	review.User = user
	ctx.JSON(http.StatusCreated, serializeReview(&review))
}

func findOwnReview(ctx *gin.Context, userID uint) (models.Review, bool) {
	reviewId, err := strconv.Atoi(ctx.Param("reviewId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse review id")
		return models.Review{}, false
	}

	var review models.Review
	if err := initializers.DB.Preload("User").First(&review, reviewId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Review not found")
		} else {
			log.Println("Review fetch error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return models.Review{}, false
	}

	if review.UserID != userID {
		sendErrorResponse(ctx, http.StatusForbidden, "You can only modify your own reviews")
		return models.Review{}, false
	}
	return review, true
}

// UpdateReview edits the author's own review.
func UpdateReview(ctx *gin.Context) {
	user, _ := currentUser(ctx)

	review, ok := findOwnReview(ctx, user.ID)
	if !ok {
		return
	}

	var input reviewInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	review.Rating = input.Rating
	review.Text = input.Text
	if err := initializers.DB.Save(&review).Error; err != nil {
		log.Println("Review update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update review")
		return
	}

	ctx.JSON(http.StatusOK, serializeReview(&review))
}

// DeleteReview removes the author's own review.
func DeleteReview(ctx *gin.Context) {
	user, _ := currentUser(ctx)

	review, ok := findOwnReview(ctx, user.ID)
	if !ok {
		return
	}

	if err := initializers.DB.Unscoped().Delete(&review).Error; err != nil {
		log.Println("Review delete error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete review")
		return
	}

	ctx.Status(http.StatusNoContent)
}
