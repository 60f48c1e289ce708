package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared across calls; the instance is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report wire names, not Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateWebhookDetails decodes and checks a webhook configuration record.
func ValidateWebhookDetails(data []byte) (*WebhookDetails, error) {
	return validateRecord[WebhookDetails](data)
}

// ValidateWebhookEvent decodes and checks a received-event summary record.
func ValidateWebhookEvent(data []byte) (*WebhookEventSummary, error) {
	return validateRecord[WebhookEventSummary](data)
}

// ValidateBusinessProfile decodes and checks a WhatsApp business profile record.
func ValidateBusinessProfile(data []byte) (*BusinessProfile, error) {
	return validateRecord[BusinessProfile](data)
}

// ValidateSiteSettings decodes and checks a site settings record.
func ValidateSiteSettings(data []byte) (*SiteSettings, error) {
	return validateRecord[SiteSettings](data)
}

// ValidateUserSummary decodes and checks a dashboard user record.
func ValidateUserSummary(data []byte) (*UserSummary, error) {
	return validateRecord[UserSummary](data)
}

// ValidateUserMetrics decodes and checks an aggregate counters record.
func ValidateUserMetrics(data []byte) (*UserMetrics, error) {
	return validateRecord[UserMetrics](data)
}

// validateRecord decodes an arbitrary payload into T and runs the struct
// rules. It is pure: the same input always yields the same result, and
// failures are surfaced as *SchemaViolationError or *InvalidEnumValueError,
// never coerced away.
func validateRecord[T any](data []byte) (*T, error) {
	rec := new(T)
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, decodeError(err)
	}
	if err := validate.Struct(rec); err != nil {
		return nil, structError(err)
	}
	return rec, nil
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "(root)"
		}
		return &SchemaViolationError{
			Field:  field,
			Reason: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
		}
	}
	return &SchemaViolationError{Field: "(root)", Reason: "malformed JSON payload"}
}

func structError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	// Only the first offending field is reported.
	fe := verrs[0]
	field := fieldPath(fe.Namespace())

	if fe.Tag() == "oneof" {
		return &InvalidEnumValueError{
			Field:   field,
			Value:   fmt.Sprint(fe.Value()),
			Allowed: strings.Fields(fe.Param()),
		}
	}
	return &SchemaViolationError{Field: field, Reason: reasonFor(fe)}
}

// fieldPath strips the root struct name from a validator namespace, turning
// "SiteSettings.footerLinks[0].url" into "footerLinks[0].url".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required field is missing or null"
	case "url":
		return "must be a valid URL"
	case "email":
		return "must be a valid email address"
	case "gte":
		return "must be >= " + fe.Param()
	default:
		return fmt.Sprintf("violates %q constraint", fe.Tag())
	}
}
