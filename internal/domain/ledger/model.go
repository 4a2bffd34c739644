// Package ledger implements the payable/receivable ledger with
// installment expansion and settlement.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"joinerpro/internal/core/apperror"
	"joinerpro/internal/core/entity"
	"joinerpro/internal/core/id"
	"joinerpro/internal/core/types"
)

// Kind distinguishes the two sides of the ledger.
type Kind string

const (
	KindPayable    Kind = "payable"
	KindReceivable Kind = "receivable"
)

// ParseKind validates a ledger kind string.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if k != KindPayable && k != KindReceivable {
		return "", apperror.NewValidation("invalid ledger kind").WithDetail("kind", s)
	}
	return k, nil
}

// Status is the persisted settlement state of an entry.
type Status string

const (
	StatusPending  Status = "pending"
	StatusPaid     Status = "paid"     // settled payable
	StatusReceived Status = "received" // settled receivable

	// StatusOverdue is derived at read time for pending entries past
	// their due date. Never persisted.
	StatusOverdue Status = "overdue"
)

// SettledStatus returns the kind-specific settled status.
func (k Kind) SettledStatus() Status {
	if k == KindPayable {
		return StatusPaid
	}
	return StatusReceived
}

// Entry is one ledger row. Payables and receivables share the shape;
// ProjectID is populated for receivables only.
type Entry struct {
	entity.Base
	Description string      `db:"description" json:"description"`
	Amount      types.Money `db:"amount" json:"amount"`
	DueDate     time.Time   `db:"due_date" json:"dueDate"`
	Status      Status      `db:"status" json:"status"`
	SettledAt   *time.Time  `db:"settled_at" json:"settledAt,omitempty"`
	ProjectID   *id.ID      `db:"-" json:"projectId,omitempty"`
}

// IsSettled reports whether the entry has been paid/received.
func (e *Entry) IsSettled() bool {
	return e.Status == StatusPaid || e.Status == StatusReceived
}

// DerivedStatus returns the read-time status: overdue for pending
// entries whose due date has passed, the persisted status otherwise.
func (e *Entry) DerivedStatus(now time.Time) Status {
	if e.Status == StatusPending && e.DueDate.Before(truncateToDay(now)) {
		return StatusOverdue
	}
	return e.Status
}

// truncateToDay drops the time-of-day component so an entry due today
// is not yet overdue.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ListItem is a ledger row hydrated with the referenced project's name
// (receivables only) and the derived status.
type ListItem struct {
	Entry
	ProjectName   *string `db:"project_name" json:"projectName,omitempty"`
	DerivedStatus Status  `db:"-" json:"derivedStatus"`
}

// CreateRequest carries input for ledger entry creation.
// Installments = 1 models instantaneous cash settlement; N > 1 expands
// into N pending rows.
type CreateRequest struct {
	Description   string
	Amount        types.Money
	DueDate       time.Time
	Installments  int
	PaymentMethod string
	ProjectID     *id.ID // receivable only
}

// MaxInstallments bounds expansion so a typo cannot generate an
// unbounded row set.
const MaxInstallments = 120

// Validate checks the creation request before any row is written.
func (r *CreateRequest) Validate(kind Kind) error {
	if strings.TrimSpace(r.Description) == "" {
		return apperror.NewValidation("description is required")
	}
	if !r.Amount.IsPositive() {
		return apperror.NewValidation("amount must be positive")
	}
	if r.DueDate.IsZero() {
		return apperror.NewValidation("due date is required")
	}
	if r.Installments < 1 {
		return apperror.NewValidation("installments must be at least 1").
			WithDetail("installments", r.Installments)
	}
	if r.Installments > MaxInstallments {
		return apperror.NewValidation(fmt.Sprintf("installments cannot exceed %d", MaxInstallments)).
			WithDetail("installments", r.Installments)
	}
	if kind == KindPayable && r.ProjectID != nil {
		return apperror.NewValidation("payable entries cannot reference a project")
	}
	return nil
}

// UpdateRequest carries partial-update input. Settlement state cannot
// be changed here; use Settle.
type UpdateRequest struct {
	Description *string
	Amount      *types.Money
	DueDate     *time.Time
	ProjectID   *id.ID
}
