package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"admin-gateway/internal/models"
	"admin-gateway/pkg/contract"
)

type WebhookHandler struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewWebhookHandler(db *gorm.DB, log *zap.Logger) *WebhookHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &WebhookHandler{DB: db, Log: log}
}

func webhookDetails(wh models.WebhookConfig) contract.WebhookDetails {
	details := contract.WebhookDetails{
		ID:                strconv.FormatUint(uint64(wh.ID), 10),
		Endpoint:          wh.Endpoint,
		VerifyToken:       wh.VerifyToken,
		AppID:             wh.AppID,
		BusinessAccountID: wh.BusinessAccountID,
		PhoneNumberID:     wh.PhoneNumberID,
		CreatedAt:         rfc3339(wh.CreatedAt),
		UpdatedAt:         rfc3339(wh.UpdatedAt),
		LastEventAt:       rfc3339Ptr(wh.LastEventAt),
	}
	if wh.AccessToken != nil {
		masked := maskToken(*wh.AccessToken)
		details.AccessToken = &masked
	}
	return details
}

func eventSummary(e models.WebhookEvent) contract.WebhookEventSummary {
	return contract.WebhookEventSummary{
		ID:         int64(e.ID),
		EventType:  e.EventType,
		Payload:    e.Payload,
		ReceivedAt: rfc3339(e.ReceivedAt),
	}
}

// GetWebhook returns the webhook configuration with the access token masked.
func (h *WebhookHandler) GetWebhook(c *gin.Context) {
	var wh models.WebhookConfig
	if err := h.DB.Order("id").First(&wh).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "webhook not configured"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, webhookDetails(wh))
}

// UpdateWebhook validates the submitted record and persists it. A masked
// access token echoed back by the dashboard leaves the stored token intact.
func (h *WebhookHandler) UpdateWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := contract.ValidateWebhookDetails(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var wh models.WebhookConfig
	if err := h.DB.Order("id").First(&wh).Error; err != nil && err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	wh.Endpoint = record.Endpoint
	wh.VerifyToken = record.VerifyToken
	wh.AppID = record.AppID
	wh.BusinessAccountID = record.BusinessAccountID
	wh.PhoneNumberID = record.PhoneNumberID
	if record.AccessToken == nil {
		wh.AccessToken = nil
	} else if !isMaskedToken(*record.AccessToken) {
		wh.AccessToken = record.AccessToken
	}

	if err := h.DB.Save(&wh).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.Log.Info("webhook config updated", zap.Uint("id", wh.ID))
	c.JSON(http.StatusOK, webhookDetails(wh))
}

// ListEvents returns the most recent webhook deliveries, newest first.
func (h *WebhookHandler) ListEvents(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	var events []models.WebhookEvent
	if err := h.DB.Order("received_at DESC, id DESC").Limit(limit).Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	summaries := make([]contract.WebhookEventSummary, 0, len(events))
	for _, e := range events {
		summaries = append(summaries, eventSummary(e))
	}

	c.JSON(http.StatusOK, summaries)
}
