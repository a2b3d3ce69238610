package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/arslan3804/food-project/initializers"
	"github.com/arslan3804/food-project/models"
	"github.com/gin-gonic/gin"
)

const msgFailedToFetchPromos = "Failed to fetch promo codes"

// GetCurrentPromoCode returns today's promo code for the user, drawing a
// fresh one when they have not drawn today.
func GetCurrentPromoCode(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	promo, err := models.CreateDailyPromo(initializers.DB, user.ID)
	if err != nil {
		log.Println("Daily promo error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToFetchPromos)
		return
	}

	ctx.JSON(http.StatusOK, serializePromoCode(&promo))
}

// HasAttempt reports whether the user can still draw today.
func HasAttempt(ctx *gin.Context) {
	user, _ := currentUser(ctx)

	hasAttempt, err := models.HasAttempt(initializers.DB, user.ID)
	if err != nil {
		log.Println("Promo attempt check error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToFetchPromos)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"has_attempt": hasAttempt})
}

// GetPromoCodes lists the user's usable promo codes, newest first.
func GetPromoCodes(ctx *gin.Context) {
	user, _ := currentUser(ctx)

	var promos []models.PromoCode
	err := initializers.DB.
		Where("user_id = ? AND is_used = ? AND expires_at > ?", user.ID, false, time.Now()).
		Order("created_at desc").
		Find(&promos).Error
	if err != nil {
		log.Println("Promo fetch error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToFetchPromos)
		return
	}

	payload := make([]*promoCodeResponse, 0, len(promos))
	for i := range promos {
		payload = append(payload, serializePromoCode(&promos[i]))
	}
	ctx.JSON(http.StatusOK, payload)
}
