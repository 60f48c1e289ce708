package whatsapp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"admin-gateway/internal/config"
	"admin-gateway/pkg/contract"
)

const profileFields = "about,address,description,email,profile_picture_url,vertical,websites"

// Client exposes the WhatsApp Cloud API operations the dashboard needs.
type Client interface {
	GetBusinessProfile(ctx context.Context) (*contract.BusinessProfile, error)
	UpdateBusinessProfile(ctx context.Context, profile *contract.BusinessProfile) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient    *resty.Client
	phoneNumberID string
}

// NewClient builds a Graph API client from the loaded configuration.
func NewClient(cfg *config.Config) *APIClient {
	base := strings.TrimSuffix(cfg.GraphBaseURL, "/")

	restyClient := resty.New()
	restyClient.
		SetBaseURL(fmt.Sprintf("%s/%s", base, cfg.GraphAPIVersion)).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.WhatsAppToken)).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{
		httpClient:    restyClient,
		phoneNumberID: cfg.PhoneNumberID,
	}
}

// businessProfile mirrors one entry of the Graph API business profile
// response. Field names are the Graph wire names.
type businessProfile struct {
	About             *string  `json:"about"`
	Address           *string  `json:"address"`
	Description       *string  `json:"description"`
	Email             *string  `json:"email"`
	ProfilePictureURL *string  `json:"profile_picture_url"`
	Vertical          *string  `json:"vertical"`
	Websites          []string `json:"websites"`
}

type businessProfileResponse struct {
	Data []businessProfile `json:"data"`
}

// apiError represents a WhatsApp Cloud API error payload.
type apiError struct {
	Error struct {
		Message      string `json:"message"`
		Type         string `json:"type"`
		Code         int    `json:"code"`
		ErrorSubcode int    `json:"error_subcode"`
		FBTraceID    string `json:"fbtrace_id"`
	} `json:"error"`
}

// GetBusinessProfile fetches the WhatsApp business profile for the
// configured phone number. Websites is normalized to an empty slice so the
// result always satisfies the contract shape.
func (c *APIClient) GetBusinessProfile(ctx context.Context) (*contract.BusinessProfile, error) {
	result := new(businessProfileResponse)
	errPayload := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("fields", profileFields).
		SetResult(result).
		SetError(errPayload).
		Get(fmt.Sprintf("/%s/whatsapp_business_profile", c.phoneNumberID))
	if err != nil {
		return nil, fmt.Errorf("fetch business profile: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch business profile: %s (code %d)",
			errPayload.Error.Message, errPayload.Error.Code)
	}
	if len(result.Data) == 0 {
		return nil, fmt.Errorf("fetch business profile: empty response for phone number %s", c.phoneNumberID)
	}

	p := result.Data[0]
	profile := &contract.BusinessProfile{
		About:             p.About,
		Address:           p.Address,
		Description:       p.Description,
		Email:             p.Email,
		ProfilePictureURL: p.ProfilePictureURL,
		Vertical:          p.Vertical,
		Websites:          p.Websites,
	}
	if profile.Websites == nil {
		profile.Websites = []string{}
	}
	return profile, nil
}

// UpdateBusinessProfile pushes the given profile to the Graph API. Only
// non-null fields are sent; the Cloud API treats omitted fields as unchanged.
func (c *APIClient) UpdateBusinessProfile(ctx context.Context, profile *contract.BusinessProfile) error {
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"websites":          profile.Websites,
	}
	if profile.About != nil {
		payload["about"] = *profile.About
	}
	if profile.Address != nil {
		payload["address"] = *profile.Address
	}
	if profile.Description != nil {
		payload["description"] = *profile.Description
	}
	if profile.Email != nil {
		payload["email"] = *profile.Email
	}
	if profile.Vertical != nil {
		payload["vertical"] = *profile.Vertical
	}

	errPayload := new(apiError)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		SetError(errPayload).
		Post(fmt.Sprintf("/%s/whatsapp_business_profile", c.phoneNumberID))
	if err != nil {
		return fmt.Errorf("update business profile: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("update business profile: %s (code %d)",
			errPayload.Error.Message, errPayload.Error.Code)
	}
	return nil
}
