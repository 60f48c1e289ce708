package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"admin-gateway/internal/models"
	"admin-gateway/internal/whatsapp"
	"admin-gateway/pkg/contract"
)

const defaultSiteName = "Admin Dashboard"

type SettingsHandler struct {
	DB     *gorm.DB
	Client whatsapp.Client
	Log    *zap.Logger
}

func NewSettingsHandler(db *gorm.DB, client whatsapp.Client, log *zap.Logger) *SettingsHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &SettingsHandler{DB: db, Client: client, Log: log}
}

func (h *SettingsHandler) siteSettings(row models.SiteSetting) contract.SiteSettings {
	settings := contract.SiteSettings{
		SiteName:       row.SiteName,
		Tagline:        row.Tagline,
		LogoURL:        row.LogoURL,
		FaviconURL:     row.FaviconURL,
		SEOTitle:       row.SEOTitle,
		SEODescription: row.SEODescription,
		SEOKeywords:    []string{},
		FooterText:     row.FooterText,
		FooterLinks:    []contract.FooterLink{},
		UpdatedAt:      rfc3339Ptr(row.UpdatedAt),
	}
	if row.SEOKeywords != "" {
		if err := json.Unmarshal([]byte(row.SEOKeywords), &settings.SEOKeywords); err != nil {
			h.Log.Warn("corrupt seo_keywords column", zap.Error(err))
			settings.SEOKeywords = []string{}
		}
	}
	if row.FooterLinks != "" {
		if err := json.Unmarshal([]byte(row.FooterLinks), &settings.FooterLinks); err != nil {
			h.Log.Warn("corrupt footer_links column", zap.Error(err))
			settings.FooterLinks = []contract.FooterLink{}
		}
	}
	if settings.SEOKeywords == nil {
		settings.SEOKeywords = []string{}
	}
	if settings.FooterLinks == nil {
		settings.FooterLinks = []contract.FooterLink{}
	}
	return settings
}

// GetSiteSettings returns the stored settings, or defaults with empty lists
// and a null updatedAt when nothing has been saved yet.
func (h *SettingsHandler) GetSiteSettings(c *gin.Context) {
	var row models.SiteSetting
	err := h.DB.Order("id").First(&row).Error
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusOK, contract.SiteSettings{
			SiteName:    defaultSiteName,
			SEOKeywords: []string{},
			FooterLinks: []contract.FooterLink{},
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.siteSettings(row))
}

// UpdateSiteSettings validates the submitted record and upserts the single
// settings row.
func (h *SettingsHandler) UpdateSiteSettings(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := contract.ValidateSiteSettings(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	keywords, err := json.Marshal(record.SEOKeywords)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	links, err := json.Marshal(record.FooterLinks)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var row models.SiteSetting
	if err := h.DB.Order("id").First(&row).Error; err != nil && err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	row.SiteName = record.SiteName
	row.Tagline = record.Tagline
	row.LogoURL = record.LogoURL
	row.FaviconURL = record.FaviconURL
	row.SEOTitle = record.SEOTitle
	row.SEODescription = record.SEODescription
	row.SEOKeywords = string(keywords)
	row.FooterText = record.FooterText
	row.FooterLinks = string(links)
	row.UpdatedAt = &now

	if err := h.DB.Save(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.Log.Info("site settings updated", zap.String("site_name", row.SiteName))
	c.JSON(http.StatusOK, h.siteSettings(row))
}

// GetBusinessProfile proxies the WhatsApp business profile from the Graph API.
func (h *SettingsHandler) GetBusinessProfile(c *gin.Context) {
	profile, err := h.Client.GetBusinessProfile(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateBusinessProfile validates the submitted record and pushes it to the
// Graph API.
func (h *SettingsHandler) UpdateBusinessProfile(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := contract.ValidateBusinessProfile(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Client.UpdateBusinessProfile(c.Request.Context(), record); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Profile updated"})
}
