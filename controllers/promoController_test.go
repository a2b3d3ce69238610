package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arslan3804/food-project/models"
)

func TestGetCurrentPromoCode(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	router := newTestRouter(db, user.ID)

	recorder := performRequest(router, http.MethodGet, "/promo-codes/current", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	code, ok := body["code"].(string)
	require.True(t, ok)
	assert.Len(t, code, 8)
	assert.Contains(t, body, "discount_percent")
	assert.Contains(t, body, "expires_at")

	t.Run("same code on a second draw the same day", func(t *testing.T) {
		recorder := performRequest(router, http.MethodGet, "/promo-codes/current", nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, code, decodeBody(t, recorder)["code"])
	})
}

func TestHasAttempt(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "bob")
	router := newTestRouter(db, user.ID)

	recorder := performRequest(router, http.MethodGet, "/promo-codes/has_attempt", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, true, decodeBody(t, recorder)["has_attempt"])

	performRequest(router, http.MethodGet, "/promo-codes/current", nil)

	recorder = performRequest(router, http.MethodGet, "/promo-codes/has_attempt", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, false, decodeBody(t, recorder)["has_attempt"])
}

func TestGetPromoCodes(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "carol")
	other := createTestUser(t, db, "dave")
	router := newTestRouter(db, user.ID)

	usable := createTestPromo(t, db, user.ID, "USABLE11", 10)
	used := createTestPromo(t, db, user.ID, "USEDUP22", 10)
	require.NoError(t, db.Model(&used).Update("is_used", true).Error)
	expired := createTestPromo(t, db, user.ID, "EXPIRE33", 10)
	require.NoError(t, db.Model(&expired).Update("expires_at", time.Now().Add(-time.Hour)).Error)
	createTestPromo(t, db, other.ID, "OTHERS44", 10)

	recorder := performRequest(router, http.MethodGet, "/promo-codes", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var payload []map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	require.Len(t, payload, 1)
	assert.Equal(t, usable.Code, payload[0]["code"])

	var count int64
	db.Model(&models.PromoCode{}).Count(&count)
	assert.EqualValues(t, 4, count)
}
