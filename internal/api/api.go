// Package api implements the admin dashboard endpoints. Every response body
// is one of the contract record shapes; incoming writes are checked with the
// contract validators before they touch storage.
package api

import (
	"strings"
	"time"
)

func rfc3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func rfc3339Ptr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := rfc3339(*t)
	return &s
}

const tokenMaskPrefix = "****"

// maskToken hides all but the last four characters of a credential.
func maskToken(token string) string {
	if len(token) <= 4 {
		return tokenMaskPrefix
	}
	return tokenMaskPrefix + token[len(token)-4:]
}

// isMaskedToken reports whether the client echoed back a masked credential
// instead of supplying a new one.
func isMaskedToken(token string) bool {
	return strings.HasPrefix(token, tokenMaskPrefix)
}
