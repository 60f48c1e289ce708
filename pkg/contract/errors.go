package contract

import (
	"fmt"
	"strings"
)

// SchemaViolationError reports the first field of a payload that is missing,
// mistyped, or a malformed list element.
type SchemaViolationError struct {
	Field  string
	Reason string
}

func (e *SchemaViolationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("schema violation at %q", e.Field)
	}
	return fmt.Sprintf("schema violation at %q: %s", e.Field, e.Reason)
}

// InvalidEnumValueError reports a value outside a closed enumeration.
type InvalidEnumValueError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("invalid value %q for %q, must be one of: %s",
		e.Value, e.Field, strings.Join(e.Allowed, ", "))
}
