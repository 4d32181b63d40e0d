// Package schema defines the request and response shapes of the HTTP API
// and validates inbound data before it reaches persistence. Validation is
// explicit: each request type returns a list of per-field errors instead of
// failing on the first problem.
package schema

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"

	"crm-service/internal/model"
)

// FieldError describes a single invalid input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func validName(field, value string, errs []FieldError) []FieldError {
	n := utf8.RuneCountInString(value)
	if n < 1 || n > 100 {
		errs = append(errs, FieldError{Field: field, Message: "must be between 1 and 100 characters"})
	}
	return errs
}

// validEmail accepts a bare RFC 5322 address with a dotted domain part
func validEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}
	at := strings.LastIndex(value, "@")
	return strings.Contains(value[at+1:], ".")
}

func statusMessage() string {
	return fmt.Sprintf("must be one of: %s", strings.Join(model.LeadStatuses, ", "))
}

func interactionTypeMessage() string {
	return fmt.Sprintf("must be one of: %s", strings.Join(model.InteractionTypes, ", "))
}

// PageQuery holds validated pagination parameters
type PageQuery struct {
	Skip  int
	Limit int
}

// ParsePageQuery validates skip/limit query parameters, applying the
// defaults skip=0 and limit=100. Out-of-range values are rejected rather
// than clamped.
func ParsePageQuery(rawSkip, rawLimit string) (PageQuery, []FieldError) {
	page := PageQuery{Skip: 0, Limit: 100}
	var errs []FieldError

	if rawSkip != "" {
		skip, err := strconv.Atoi(rawSkip)
		if err != nil || skip < 0 {
			errs = append(errs, FieldError{Field: "skip", Message: "must be a non-negative integer"})
		} else {
			page.Skip = skip
		}
	}

	if rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil || limit < 1 || limit > 1000 {
			errs = append(errs, FieldError{Field: "limit", Message: "must be an integer between 1 and 1000"})
		} else {
			page.Limit = limit
		}
	}

	return page, errs
}
