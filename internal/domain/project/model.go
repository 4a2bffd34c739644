// Package project implements project tracking with bill-of-materials.
package project

import (
	"context"
	"math"
	"strings"
	"time"

	"joinerpro/internal/core/apperror"
	"joinerpro/internal/core/entity"
	"joinerpro/internal/core/id"
	"joinerpro/internal/core/types"
)

// Status is the project lifecycle state.
type Status string

const (
	StatusQuote        Status = "quote"
	StatusInProduction Status = "in_production"
	StatusCompleted    Status = "completed"
	StatusCancelled    Status = "cancelled"
)

var validStatuses = map[Status]struct{}{
	StatusQuote: {}, StatusInProduction: {}, StatusCompleted: {}, StatusCancelled: {},
}

// ParseStatus validates a project status string.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := validStatuses[st]; !ok {
		return "", apperror.NewValidation("invalid project status").WithDetail("status", s)
	}
	return st, nil
}

// DefaultDeliveryDays is the delivery window applied when none is given.
const DefaultDeliveryDays = 30

// Project is a manufacturing job for a client.
type Project struct {
	entity.Base
	Name        string      `db:"name" json:"name"`
	Description *string     `db:"description" json:"description,omitempty"`
	ClientID    id.ID       `db:"client_id" json:"clientId"`
	Status      Status      `db:"status" json:"status"`
	TotalValue  types.Money `db:"total_value" json:"totalValue"`
	DeliveryDays int        `db:"delivery_days" json:"deliveryDays"`

	// ProductionStartedAt is stamped exactly once, on the first
	// transition into in_production. Never overwritten.
	ProductionStartedAt *time.Time `db:"production_started_at" json:"productionStartedAt,omitempty"`
}

// Validate checks project invariants.
func (p *Project) Validate(_ context.Context) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperror.NewValidation("project name is required")
	}
	if id.IsNil(p.ClientID) {
		return apperror.NewValidation("client is required")
	}
	if _, ok := validStatuses[p.Status]; !ok {
		return apperror.NewValidation("invalid project status").WithDetail("status", string(p.Status))
	}
	if p.TotalValue.IsNegative() {
		return apperror.NewValidation("total value cannot be negative")
	}
	if p.DeliveryDays <= 0 {
		return apperror.NewValidation("delivery window must be positive")
	}
	return nil
}

// DeadlineState classifies a project's delivery countdown.
type DeadlineState string

const (
	DeadlineNotStarted DeadlineState = "not_started"
	DeadlineOnTrack    DeadlineState = "on_track"
	DeadlineWarning    DeadlineState = "warning"
	DeadlineOverdue    DeadlineState = "overdue"
)

// Deadline is the derived delivery countdown. Days is remaining days
// for on_track/warning, days late for overdue, zero for not_started.
type Deadline struct {
	State DeadlineState `json:"state"`
	Days  int           `json:"days"`
}

// deadlineWarningDays is the remaining-days band treated as a warning.
const deadlineWarningDays = 7

// DeadlineStatus computes the delivery countdown at the given instant.
// Only projects in production with a recorded start have a deadline;
// everything else reports not_started. Recomputed per read, never
// persisted.
func (p *Project) DeadlineStatus(now time.Time) Deadline {
	if p.Status != StatusInProduction || p.ProductionStartedAt == nil {
		return Deadline{State: DeadlineNotStarted}
	}

	due := p.ProductionStartedAt.AddDate(0, 0, p.DeliveryDays)
	days := int(math.Ceil(due.Sub(now).Hours() / 24))

	switch {
	case days < 0:
		return Deadline{State: DeadlineOverdue, Days: -days}
	case days <= deadlineWarningDays:
		return Deadline{State: DeadlineWarning, Days: days}
	default:
		return Deadline{State: DeadlineOnTrack, Days: days}
	}
}

// WithClient is a project row hydrated with its client's name.
type WithClient struct {
	Project
	ClientName string `db:"client_name" json:"clientName"`
}

// Detail is the fetch-one aggregate: project, client name and the
// derived deadline.
type Detail struct {
	WithClient
	Deadline Deadline `json:"deadline"`
}
