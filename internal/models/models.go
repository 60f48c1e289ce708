package models

import (
	"time"
)

// WebhookConfig stores the WhatsApp webhook registration. The Cloud API
// linkage fields stay NULL until the webhook is connected to a Meta app.
type WebhookConfig struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	Endpoint          string     `gorm:"type:text;not null" json:"endpoint"`
	VerifyToken       string     `gorm:"type:varchar(255);not null" json:"verify_token"`
	AppID             *string    `gorm:"type:varchar(64)" json:"app_id"`
	BusinessAccountID *string    `gorm:"type:varchar(64)" json:"business_account_id"`
	PhoneNumberID     *string    `gorm:"type:varchar(64)" json:"phone_number_id"`
	AccessToken       *string    `gorm:"type:text" json:"access_token"`
	LastEventAt       *time.Time `json:"last_event_at"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (WebhookConfig) TableName() string {
	return "webhook_configs"
}

// WebhookEvent is one received webhook delivery, stored raw.
type WebhookEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	WebhookID  uint      `gorm:"index" json:"webhook_id"`
	EventType  *string   `gorm:"type:varchar(100)" json:"event_type"`
	Payload    string    `gorm:"type:text;not null" json:"payload"`
	ReceivedAt time.Time `gorm:"autoCreateTime;index" json:"received_at"`
}

func (WebhookEvent) TableName() string {
	return "webhook_events"
}

// User is a dashboard user account.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Email          string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Role           string    `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Active         bool      `json:"active"`
	Balance        float64   `gorm:"default:0" json:"balance"`
	WhatsAppNumber *string   `gorm:"type:varchar(50)" json:"whatsapp_number"`
	AvatarURL      *string   `gorm:"type:text" json:"avatar_url"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserSession tracks a dashboard login session for a user.
type UserSession struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	Active     bool      `gorm:"index" json:"active"`
	StartedAt  time.Time `gorm:"autoCreateTime" json:"started_at"`
	LastSeenAt time.Time `gorm:"autoUpdateTime" json:"last_seen_at"`
}

func (UserSession) TableName() string {
	return "user_sessions"
}

// SiteSetting is the single-row site branding/SEO configuration.
// SEOKeywords and FooterLinks are JSON-encoded text columns.
type SiteSetting struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	SiteName       string     `gorm:"type:varchar(255);not null" json:"site_name"`
	Tagline        *string    `gorm:"type:varchar(255)" json:"tagline"`
	LogoURL        *string    `gorm:"type:text" json:"logo_url"`
	FaviconURL     *string    `gorm:"type:text" json:"favicon_url"`
	SEOTitle       *string    `gorm:"type:varchar(255)" json:"seo_title"`
	SEODescription *string    `gorm:"type:text" json:"seo_description"`
	SEOKeywords    string     `gorm:"type:text;default:'[]'" json:"seo_keywords"` // JSON array
	FooterText     *string    `gorm:"type:text" json:"footer_text"`
	FooterLinks    string     `gorm:"type:text;default:'[]'" json:"footer_links"` // JSON array of {label,url}
	UpdatedAt      *time.Time `json:"updated_at"`
}

func (SiteSetting) TableName() string {
	return "site_settings"
}
