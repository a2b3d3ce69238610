package models

import (
	"errors"
	"math/rand"
	"time"

	"github.com/arslan3804/food-project/utils"
	"gorm.io/gorm"
)

const (
	promoCodeLength   = 8
	promoCodeLifetime = 24 * time.Hour

	// Probability that the daily draw is a losing one: a code with a
	// 0% discount that is created already used.
	dudPromoChance = 0.3

	promoCreateAttempts = 3
)

// Weighted distribution of the winning discount percentages.
var discountChoices = []struct {
	Percent int
	Weight  int
}{
	{5, 40},
	{7, 25},
	{8, 15},
	{10, 10},
	{12, 7},
	{15, 3},
}

var (
	ErrPromoNotFound  = errors.New("promo code not found")
	ErrPromoNotUsable = errors.New("promo code is invalid or already used")
)

type PromoCode struct {
	gorm.Model
	UserID          uint      `json:"-"`
	Code            string    `json:"code" gorm:"size:20;uniqueIndex"`
	DiscountPercent int       `json:"discount_percent"`
	IsUsed          bool      `json:"-"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// IsUsableBy reports whether the promo code can still be applied by the
// given user: it must belong to them, be unused and not yet expired.
func (p *PromoCode) IsUsableBy(userID uint) bool {
	return p.UserID == userID && !p.IsUsed && time.Now().Before(p.ExpiresAt)
}

// MarkUsed consumes the promo code. Callers are expected to have checked
// IsUsableBy first.
func (p *PromoCode) MarkUsed(db *gorm.DB) error {
	p.IsUsed = true
	return db.Model(p).Update("is_used", true).Error
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func drawDiscountPercent() int {
	total := 0
	for _, choice := range discountChoices {
		total += choice.Weight
	}
	r := rand.Intn(total)
	for _, choice := range discountChoices {
		if r < choice.Weight {
			return choice.Percent
		}
		r -= choice.Weight
	}
	return discountChoices[len(discountChoices)-1].Percent
}

// CreateDailyPromo returns the user's promo code for today, generating a
// new one if they have not drawn yet. A new draw is a dud with
// probability dudPromoChance, otherwise the discount percent comes from
// the weighted distribution above. Code collisions on the unique index
// are retried a few times before the error is surfaced.
func CreateDailyPromo(db *gorm.DB, userID uint) (PromoCode, error) {
	var last PromoCode
	err := db.Where("user_id = ?", userID).Order("created_at desc").First(&last).Error
	if err == nil && sameDay(last.CreatedAt, time.Now()) {
		return last, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return PromoCode{}, err
	}

	percent := 0
	used := true
	if rand.Float64() >= dudPromoChance {
		percent = drawDiscountPercent()
		used = false
	}

	var createErr error
	for attempt := 0; attempt < promoCreateAttempts; attempt++ {
		code, err := utils.GenerateCode(promoCodeLength)
		if err != nil {
			return PromoCode{}, err
		}
		promo := PromoCode{
			UserID:          userID,
			Code:            code,
			DiscountPercent: percent,
			IsUsed:          used,
			ExpiresAt:       time.Now().Add(promoCodeLifetime),
		}
		if createErr = db.Create(&promo).Error; createErr == nil {
			return promo, nil
		}
		// Only a code collision on the unique index is worth another
		// draw; anything else is a real storage failure.
		if !errors.Is(createErr, gorm.ErrDuplicatedKey) {
			return PromoCode{}, createErr
		}
	}
	return PromoCode{}, createErr
}

// HasAttempt reports whether the user may still draw a daily promo code:
// false once they hold a code created today that has not expired yet.
func HasAttempt(db *gorm.DB, userID uint) (bool, error) {
	var last PromoCode
	err := db.Where("user_id = ?", userID).Order("created_at desc").First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	now := time.Now()
	if sameDay(last.CreatedAt, now) && now.Before(last.ExpiresAt) {
		return false, nil
	}
	return true, nil
}

// ValidatePromoCode resolves a code string for the given user. It fails
// with ErrPromoNotFound when no such code exists and with
// ErrPromoNotUsable when the code belongs to someone else, is already
// used or has expired.
func ValidatePromoCode(db *gorm.DB, code string, userID uint) (PromoCode, error) {
	var promo PromoCode
	err := db.Where("code = ?", code).First(&promo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return PromoCode{}, ErrPromoNotFound
	}
	if err != nil {
		return PromoCode{}, err
	}
	if !promo.IsUsableBy(userID) {
		return PromoCode{}, ErrPromoNotUsable
	}
	return promo, nil
}
