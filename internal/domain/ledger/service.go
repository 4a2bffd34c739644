package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"joinerpro/internal/core/apperror"
	"joinerpro/internal/core/entity"
	"joinerpro/internal/core/id"
	"joinerpro/internal/core/tx"
	"joinerpro/internal/core/types"
	"joinerpro/pkg/logger"
)

// Service implements ledger business operations for both kinds.
type Service struct {
	repo     Repository
	projects ProjectDirectory
	txm      tx.Manager
	audit    Auditor

	now func() time.Time
}

// NewService creates a ledger service.
func NewService(repo Repository, projects ProjectDirectory, txm tx.Manager, audit Auditor) *Service {
	return &Service{
		repo:     repo,
		projects: projects,
		txm:      txm,
		audit:    audit,
		now:      time.Now,
	}
}

// Create expands a creation request into ledger rows.
//
// Installments = 1 models a cash transaction: one row, already settled,
// settlement stamped now, description annotated with the payment
// method. Installments = N > 1 produce N pending rows of amount
// total/N (rounded to cents, drift preserved), due dates advanced by
// one calendar month each, descriptions annotated "(i/N)".
//
// All rows are written in one transaction: a failure on any insert
// leaves nothing persisted.
func (s *Service) Create(ctx context.Context, kind Kind, req CreateRequest) ([]Entry, error) {
	if err := req.Validate(kind); err != nil {
		return nil, err
	}
	if req.ProjectID != nil {
		if err := s.ensureProjectExists(ctx, *req.ProjectID); err != nil {
			return nil, err
		}
	}

	entries := s.expand(kind, req)

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		for i := range entries {
			if err := s.repo.Create(ctx, kind, &entries[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "ledger entries created",
		"kind", kind, "count", len(entries), "amount", req.Amount)
	s.recordAudit(ctx, "ledger_created", kind, entries[0].ID, map[string]any{
		"installments": req.Installments,
		"amount":       req.Amount,
	})

	return entries, nil
}

// expand builds the row set for a creation request. Pure.
func (s *Service) expand(kind Kind, req CreateRequest) []Entry {
	desc := strings.TrimSpace(req.Description)

	if req.Installments == 1 {
		settled := s.now().UTC()
		annotated := desc + " (cash)"
		if m := strings.TrimSpace(req.PaymentMethod); m != "" {
			annotated = fmt.Sprintf("%s (cash - %s)", desc, m)
		}
		return []Entry{{
			Base:        entity.NewBase(),
			Description: annotated,
			Amount:      req.Amount,
			DueDate:     req.DueDate,
			Status:      kind.SettledStatus(),
			SettledAt:   &settled,
			ProjectID:   req.ProjectID,
		}}
	}

	n := req.Installments
	// total/N rounded to cents; later installments can accumulate
	// rounding drift, which callers accept (totals are reported as-is).
	amount := req.Amount.Div(types.NewMoney(float64(n))).Round(2)

	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, Entry{
			Base:        entity.NewBase(),
			Description: fmt.Sprintf("%s (%d/%d)", desc, i+1, n),
			Amount:      amount,
			DueDate:     req.DueDate.AddDate(0, i, 0),
			Status:      StatusPending,
			ProjectID:   req.ProjectID,
		})
	}
	return entries
}

// Settle marks a pending entry as paid/received and stamps the
// settlement time. Settling an already-settled entry is a conflict.
func (s *Service) Settle(ctx context.Context, kind Kind, entryID id.ID) (*Entry, error) {
	e, err := s.repo.GetByID(ctx, kind, entryID)
	if err != nil {
		return nil, err
	}
	if e.IsSettled() {
		return nil, apperror.NewConflict("entry is already settled").
			WithDetail("id", entryID.String()).
			WithDetail("settledAt", e.SettledAt)
	}

	settled := s.now().UTC()
	e.Status = kind.SettledStatus()
	e.SettledAt = &settled
	e.Touch()

	if err := s.repo.Update(ctx, kind, e); err != nil {
		return nil, err
	}

	logger.Info(ctx, "ledger entry settled", "kind", kind, "entry_id", entryID)
	s.recordAudit(ctx, "ledger_settled", kind, entryID, e)
	return e, nil
}

// Get returns a single entry.
func (s *Service) Get(ctx context.Context, kind Kind, entryID id.ID) (*Entry, error) {
	return s.repo.GetByID(ctx, kind, entryID)
}

// List returns entries ordered by due date, optionally filtered to a
// month, with derived statuses computed at read time.
func (s *Service) List(ctx context.Context, kind Kind, month *types.Month) ([]ListItem, error) {
	items, err := s.repo.ListForMonth(ctx, kind, month)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	for i := range items {
		items[i].DerivedStatus = items[i].Entry.DerivedStatus(now)
	}
	return items, nil
}

// Update applies a partial update. Settlement state is immutable here;
// use Settle for the pending -> settled transition.
func (s *Service) Update(ctx context.Context, kind Kind, entryID id.ID, req UpdateRequest) (*Entry, error) {
	e, err := s.repo.GetByID(ctx, kind, entryID)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, apperror.NewValidation("description is required")
		}
		e.Description = strings.TrimSpace(*req.Description)
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, apperror.NewValidation("amount must be positive")
		}
		e.Amount = *req.Amount
	}
	if req.DueDate != nil {
		if req.DueDate.IsZero() {
			return nil, apperror.NewValidation("due date is required")
		}
		e.DueDate = *req.DueDate
	}
	if req.ProjectID != nil {
		if kind == KindPayable {
			return nil, apperror.NewValidation("payable entries cannot reference a project")
		}
		if err := s.ensureProjectExists(ctx, *req.ProjectID); err != nil {
			return nil, err
		}
		e.ProjectID = req.ProjectID
	}

	e.Touch()
	if err := s.repo.Update(ctx, kind, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes an entry.
func (s *Service) Delete(ctx context.Context, kind Kind, entryID id.ID) error {
	e, err := s.repo.GetByID(ctx, kind, entryID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, kind, entryID); err != nil {
		return err
	}

	logger.Info(ctx, "ledger entry deleted", "kind", kind, "entry_id", entryID)
	s.recordAudit(ctx, "ledger_deleted", kind, entryID, e)
	return nil
}

func (s *Service) ensureProjectExists(ctx context.Context, projectID id.ID) error {
	ok, err := s.projects.Exists(ctx, projectID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewValidation("project does not exist").
			WithDetail("projectId", projectID.String())
	}
	return nil
}

// recordAudit logs but never fails the business operation.
func (s *Service) recordAudit(ctx context.Context, action string, kind Kind, entryID id.ID, payload any) {
	if err := s.audit.Record(ctx, action, string(kind), entryID.String(), payload); err != nil {
		logger.Warn(ctx, "audit record failed", "action", action, "error", err)
	}
}
