// Package contract defines the record shapes exchanged between the gateway
// API and the admin dashboard, plus validators for payloads crossing that
// boundary. All records are read-only snapshots produced by server-side
// aggregation; nullable fields are pointers, timestamps are RFC3339 strings.
package contract

// Role is the closed set of dashboard user roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// IsAdmin returns true if the role grants admin access.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// WebhookDetails describes the configured WhatsApp webhook endpoint.
// The four Cloud API linkage/credential fields are independently nullable:
// a webhook can be registered before it is linked to a Meta app.
type WebhookDetails struct {
	ID                string  `json:"id" validate:"required"`
	Endpoint          string  `json:"endpoint" validate:"required,url"`
	VerifyToken       string  `json:"verifyToken" validate:"required"`
	AppID             *string `json:"appId"`
	BusinessAccountID *string `json:"businessAccountId"`
	PhoneNumberID     *string `json:"phoneNumberId"`
	AccessToken       *string `json:"accessToken"`
	CreatedAt         string  `json:"createdAt" validate:"required"`
	UpdatedAt         string  `json:"updatedAt" validate:"required"`
	LastEventAt       *string `json:"lastEventAt"`
}

// WebhookEventSummary is a received webhook delivery as listed on the
// dashboard. Payload carries the raw JSON body even when the event type
// could not be determined.
type WebhookEventSummary struct {
	ID         int64   `json:"id" validate:"required"`
	EventType  *string `json:"eventType"`
	Payload    string  `json:"payload" validate:"required"`
	ReceivedAt string  `json:"receivedAt" validate:"required"`
}

// BusinessProfile mirrors the WhatsApp Business Profile as exposed by the
// Graph API. Every descriptive field may be null independently; Websites is
// never null but may be empty.
type BusinessProfile struct {
	About             *string  `json:"about"`
	Address           *string  `json:"address"`
	Description       *string  `json:"description"`
	Email             *string  `json:"email"`
	ProfilePictureURL *string  `json:"profilePictureUrl"`
	Vertical          *string  `json:"vertical"`
	Websites          []string `json:"websites" validate:"required"`
}

// FooterLink is a single navigation entry in the site footer.
type FooterLink struct {
	Label string `json:"label" validate:"required"`
	URL   string `json:"url" validate:"required"`
}

// SiteSettings holds the dashboard branding and SEO configuration.
// SEOKeywords and FooterLinks are always present, possibly empty.
// UpdatedAt is null until the settings have been saved at least once.
type SiteSettings struct {
	SiteName       string       `json:"siteName" validate:"required"`
	Tagline        *string      `json:"tagline"`
	LogoURL        *string      `json:"logoUrl"`
	FaviconURL     *string      `json:"faviconUrl"`
	SEOTitle       *string      `json:"seoTitle"`
	SEODescription *string      `json:"seoDescription"`
	SEOKeywords    []string     `json:"seoKeywords" validate:"required"`
	FooterText     *string      `json:"footerText"`
	FooterLinks    []FooterLink `json:"footerLinks" validate:"required,dive"`
	UpdatedAt      *string      `json:"updatedAt"`
}

// UserSummary is the per-user row shown on the dashboard user list,
// including the live session count aggregated server-side.
type UserSummary struct {
	ID             int64   `json:"id" validate:"required"`
	Name           string  `json:"name" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	Role           Role    `json:"role" validate:"required,oneof=admin user"`
	Active         bool    `json:"active"`
	Balance        float64 `json:"balance"`
	WhatsAppNumber *string `json:"whatsappNumber"`
	AvatarURL      *string `json:"avatarUrl"`
	CreatedAt      string  `json:"createdAt" validate:"required"`
	UpdatedAt      string  `json:"updatedAt" validate:"required"`
	SessionCount   int64   `json:"sessionCount" validate:"gte=0"`
	LastSessionAt  *string `json:"lastSessionAt"`
}

// UserMetrics are the aggregate counters on the dashboard home page. The
// counters are aggregated independently; no arithmetic relation between
// them is enforced here.
type UserMetrics struct {
	TotalUsers     int64 `json:"totalUsers" validate:"gte=0"`
	ActiveUsers    int64 `json:"activeUsers" validate:"gte=0"`
	InactiveUsers  int64 `json:"inactiveUsers" validate:"gte=0"`
	ActiveSessions int64 `json:"activeSessions" validate:"gte=0"`
}
