package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"admin-gateway/internal/models"
	"admin-gateway/pkg/contract"
)

type UserHandler struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewUserHandler(db *gorm.DB, log *zap.Logger) *UserHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserHandler{DB: db, Log: log}
}

// GetUsers lists all dashboard users with their live session counts and
// last session timestamps aggregated from user_sessions.
func (h *UserHandler) GetUsers(c *gin.Context) {
	var users []models.User
	if err := h.DB.Order("id").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var sessions []models.UserSession
	if err := h.DB.Find(&sessions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	activeByUser := make(map[uint]int64)
	lastByUser := make(map[uint]time.Time)
	for _, s := range sessions {
		if s.Active {
			activeByUser[s.UserID]++
		}
		if seen, ok := lastByUser[s.UserID]; !ok || s.LastSeenAt.After(seen) {
			lastByUser[s.UserID] = s.LastSeenAt
		}
	}

	summaries := make([]contract.UserSummary, 0, len(users))
	for _, u := range users {
		summary := contract.UserSummary{
			ID:             int64(u.ID),
			Name:           u.Name,
			Email:          u.Email,
			Role:           contract.Role(u.Role),
			Active:         u.Active,
			Balance:        u.Balance,
			WhatsAppNumber: u.WhatsAppNumber,
			AvatarURL:      u.AvatarURL,
			CreatedAt:      rfc3339(u.CreatedAt),
			UpdatedAt:      rfc3339(u.UpdatedAt),
			SessionCount:   activeByUser[u.ID],
		}
		if last, ok := lastByUser[u.ID]; ok {
			summary.LastSessionAt = rfc3339Ptr(&last)
		}
		summaries = append(summaries, summary)
	}

	c.JSON(http.StatusOK, summaries)
}

// GetMetrics returns the aggregate user counters for the dashboard home
// page. Inactive users are derived as total minus active so the produced
// record is always internally consistent.
func (h *UserHandler) GetMetrics(c *gin.Context) {
	var total, active, sessions int64

	if err := h.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := h.DB.Model(&models.User{}).Where("active = ?", true).Count(&active).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := h.DB.Model(&models.UserSession{}).Where("active = ?", true).Count(&sessions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, contract.UserMetrics{
		TotalUsers:     total,
		ActiveUsers:    active,
		InactiveUsers:  total - active,
		ActiveSessions: sessions,
	})
}
