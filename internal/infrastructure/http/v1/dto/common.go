// Package dto provides Data Transfer Objects for API requests/responses.
// All inputs are parsed and validated at the boundary; parse failures
// become 400 responses, never silent coercion.
package dto

import (
	"fmt"
	"strings"
	"time"

	"joinerpro/internal/core/apperror"
	"joinerpro/internal/core/id"
)

// DateLayout is the wire format for dates.
const DateLayout = "2006-01-02"

// Date is a calendar date ("2026-09-15") in JSON bodies.
type Date struct {
	time.Time
}

// UnmarshalJSON parses a quoted "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	d.Time = t
	return nil
}

// MarshalJSON renders the "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Time.Format(DateLayout) + `"`), nil
}

// ParseID validates a path/body entity id.
func ParseID(s string) (id.ID, error) {
	parsed, err := id.Parse(s)
	if err != nil {
		return id.Nil(), apperror.NewValidation("invalid id").WithDetail("id", s)
	}
	return parsed, nil
}

// ParseOptionalID validates an optional id reference from a body.
func ParseOptionalID(s *string) (*id.ID, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	parsed, err := ParseID(*s)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
