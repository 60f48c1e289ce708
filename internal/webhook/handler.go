package webhook

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"admin-gateway/internal/config"
	"admin-gateway/internal/models"
	"admin-gateway/internal/ws"
	"admin-gateway/pkg/contract"
)

type Handler struct {
	Config *config.Config
	DB     *gorm.DB
	Hub    *ws.Hub
	Log    *zap.Logger
}

func NewHandler(cfg *config.Config, db *gorm.DB, hub *ws.Hub, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		Config: cfg,
		DB:     db,
		Hub:    hub,
		Log:    log,
	}
}

// VerifyWebhook answers the Meta hub.challenge handshake.
func (h *Handler) VerifyWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode != "" && token != "" {
		if mode == "subscribe" && token == h.Config.VerifyToken {
			h.Log.Info("webhook verified successfully")
			c.String(http.StatusOK, challenge)
		} else {
			c.Status(http.StatusForbidden)
		}
	} else {
		c.Status(http.StatusBadRequest)
	}
}

// eventEnvelope is the minimal slice of the Meta notification needed to
// label the event; the full body is stored raw regardless.
type eventEnvelope struct {
	Object string `json:"object"`
	Entry  []struct {
		Changes []struct {
			Field string `json:"field"`
		} `json:"changes"`
	} `json:"entry"`
}

// HandleEvent stores the raw delivery, bumps the config's last-event
// timestamp and pushes a summary to connected dashboard clients. The raw
// payload is kept even when the event type cannot be determined.
func (h *Handler) HandleEvent(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	var eventType *string
	var envelope eventEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil {
		if len(envelope.Entry) > 0 && len(envelope.Entry[0].Changes) > 0 {
			field := envelope.Entry[0].Changes[0].Field
			if field != "" {
				eventType = &field
			}
		}
	} else {
		h.Log.Warn("unparseable webhook body, storing raw", zap.Error(err))
	}

	var wh models.WebhookConfig
	if err := h.DB.Order("id").First(&wh).Error; err != nil {
		h.Log.Error("loading webhook config", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}

	event := models.WebhookEvent{
		WebhookID: wh.ID,
		EventType: eventType,
		Payload:   string(body),
	}
	if err := h.DB.Create(&event).Error; err != nil {
		h.Log.Error("storing webhook event", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}

	now := time.Now().UTC()
	if err := h.DB.Model(&wh).Update("last_event_at", &now).Error; err != nil {
		h.Log.Error("updating last event timestamp", zap.Error(err))
	}

	if h.Hub != nil {
		h.Hub.NotifyWebhookEvent(contract.WebhookEventSummary{
			ID:         int64(event.ID),
			EventType:  event.EventType,
			Payload:    event.Payload,
			ReceivedAt: event.ReceivedAt.UTC().Format(time.RFC3339),
		})
	}

	c.Status(http.StatusOK)
}
