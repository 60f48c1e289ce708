package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"admin-gateway/internal/models"
	"admin-gateway/pkg/contract"
)

func webhookRouter(db *gorm.DB) *gin.Engine {
	h := NewWebhookHandler(db, nil)
	r := gin.New()
	r.GET("/api/webhook", h.GetWebhook)
	r.PUT("/api/webhook", h.UpdateWebhook)
	r.GET("/api/webhook/events", h.ListEvents)
	return r
}

func seedWebhookConfig(t *testing.T, db *gorm.DB) models.WebhookConfig {
	t.Helper()

	token := "EAABsbCS1234secret"
	phoneID := "1112223334"
	wh := models.WebhookConfig{
		Endpoint:      "https://gw.example.com/webhook",
		VerifyToken:   "verify-secret",
		PhoneNumberID: &phoneID,
		AccessToken:   &token,
	}
	require.NoError(t, db.Create(&wh).Error)
	return wh
}

func TestGetWebhook_NotConfigured(t *testing.T) {
	r := webhookRouter(openTestDB(t))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/webhook", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetWebhook_ProducesValidContractRecord(t *testing.T) {
	db := openTestDB(t)
	seedWebhookConfig(t, db)
	r := webhookRouter(db)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/webhook", nil))
	require.Equal(t, http.StatusOK, w.Code)

	// The response must satisfy its own contract.
	record, err := contract.ValidateWebhookDetails(w.Body.Bytes())
	require.NoError(t, err)

	assert.Equal(t, "https://gw.example.com/webhook", record.Endpoint)
	assert.Nil(t, record.AppID)
	assert.Nil(t, record.BusinessAccountID)
	require.NotNil(t, record.PhoneNumberID)
	assert.Nil(t, record.LastEventAt)

	// Token is masked, exposing only the last four characters.
	require.NotNil(t, record.AccessToken)
	assert.Equal(t, "****cret", *record.AccessToken)
}

func TestUpdateWebhook_RejectsInvalidRecord(t *testing.T) {
	db := openTestDB(t)
	seedWebhookConfig(t, db)
	r := webhookRouter(db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/webhook",
		strings.NewReader(`{"id": "1", "verifyToken": "t"}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "endpoint")
}

func TestUpdateWebhook_MaskedTokenKeepsStoredToken(t *testing.T) {
	db := openTestDB(t)
	seeded := seedWebhookConfig(t, db)
	r := webhookRouter(db)

	payload := `{
		"id": "1",
		"endpoint": "https://gw.example.com/hooks/in",
		"verifyToken": "rotated",
		"appId": "555000111",
		"businessAccountId": null,
		"phoneNumberId": "1112223334",
		"accessToken": "****cret",
		"createdAt": "2024-01-01T00:00:00Z",
		"updatedAt": "2024-01-01T00:00:00Z",
		"lastEventAt": null
	}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/webhook", strings.NewReader(payload)))
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.WebhookConfig
	require.NoError(t, db.First(&stored, seeded.ID).Error)
	assert.Equal(t, "https://gw.example.com/hooks/in", stored.Endpoint)
	assert.Equal(t, "rotated", stored.VerifyToken)
	require.NotNil(t, stored.AppID)
	assert.Equal(t, "555000111", *stored.AppID)
	assert.Nil(t, stored.BusinessAccountID)

	// Echoed masked token must not overwrite the real credential.
	require.NotNil(t, stored.AccessToken)
	assert.Equal(t, *seeded.AccessToken, *stored.AccessToken)
}

func TestListEvents_NewestFirstWithLimit(t *testing.T) {
	db := openTestDB(t)
	wh := seedWebhookConfig(t, db)
	r := webhookRouter(db)

	messages := "messages"
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		event := models.WebhookEvent{
			WebhookID:  wh.ID,
			Payload:    `{"object":"whatsapp_business_account"}`,
			ReceivedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if i%2 == 0 {
			event.EventType = &messages
		}
		require.NoError(t, db.Create(&event).Error)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/webhook/events?limit=3", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var summaries []contract.WebhookEventSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	require.Len(t, summaries, 3)

	assert.True(t, summaries[0].ReceivedAt >= summaries[1].ReceivedAt)
	assert.True(t, summaries[1].ReceivedAt >= summaries[2].ReceivedAt)
	for _, s := range summaries {
		assert.NotEmpty(t, s.Payload)
	}
}
