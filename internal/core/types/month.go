package types

import (
	"fmt"
	"time"
)

// Month identifies a calendar month, used to filter ledger entries by
// due date ("2026-08" style query parameter).
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses a "YYYY-MM" string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("parse month %q: %w", s, err)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// String returns the "YYYY-MM" representation.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Range returns the half-open UTC interval [start, end) covering the month.
func (m Month) Range() (time.Time, time.Time) {
	start := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// Contains reports whether t falls inside the month (UTC).
func (m Month) Contains(t time.Time) bool {
	start, end := m.Range()
	t = t.UTC()
	return !t.Before(start) && t.Before(end)
}
