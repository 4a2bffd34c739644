package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"joinerpro/internal/core/apperror"
	"joinerpro/internal/core/entity"
	"joinerpro/internal/core/id"
	"joinerpro/internal/core/types"
	"joinerpro/internal/domain/ledger"
)

// Compile-time check.
var _ ledger.Repository = (*LedgerRepo)(nil)

// LedgerRepo persists payable and receivable entries. The kind selects
// the backing table; project_id exists only on receivables.
type LedgerRepo struct {
	txm *TxManager
}

// NewLedgerRepo creates a ledger repository.
func NewLedgerRepo(txm *TxManager) *LedgerRepo {
	return &LedgerRepo{txm: txm}
}

func (r *LedgerRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func tableFor(kind ledger.Kind) string {
	if kind == ledger.KindPayable {
		return "payable_entries"
	}
	return "receivable_entries"
}

func entityFor(kind ledger.Kind) string {
	if kind == ledger.KindPayable {
		return "payable entry"
	}
	return "receivable entry"
}

// entryRow is the scan target shared by both tables. ProjectID stays
// nil for payables; ProjectName is filled by the list join only.
type entryRow struct {
	ID          id.ID       `db:"id"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`
	Description string      `db:"description"`
	Amount      types.Money `db:"amount"`
	DueDate     time.Time   `db:"due_date"`
	Status      string      `db:"status"`
	SettledAt   *time.Time  `db:"settled_at"`
	ProjectID   *id.ID      `db:"project_id"`
	ProjectName *string     `db:"project_name"`
}

func (row *entryRow) toEntry() ledger.Entry {
	return ledger.Entry{
		Base: entity.Base{
			ID:        row.ID,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		},
		Description: row.Description,
		Amount:      row.Amount,
		DueDate:     row.DueDate,
		Status:      ledger.Status(row.Status),
		SettledAt:   row.SettledAt,
		ProjectID:   row.ProjectID,
	}
}

// columnMap builds the insert/update column set for an entry.
func columnMap(kind ledger.Kind, e *ledger.Entry) map[string]any {
	data := map[string]any{
		"id":          e.ID,
		"created_at":  e.CreatedAt,
		"updated_at":  e.UpdatedAt,
		"description": e.Description,
		"amount":      e.Amount,
		"due_date":    e.DueDate,
		"status":      string(e.Status),
		"settled_at":  e.SettledAt,
	}
	if kind == ledger.KindReceivable {
		data["project_id"] = e.ProjectID
	}
	return data
}

// Create inserts one entry. Joins the active transaction from context,
// so installment expansion commits all-or-nothing.
func (r *LedgerRepo) Create(ctx context.Context, kind ledger.Kind, e *ledger.Entry) error {
	q := r.builder().
		Insert(tableFor(kind)).
		SetMap(columnMap(kind, e))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build ledger insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return apperror.NewValidation("referenced record does not exist").
				WithDetail("entity", entityFor(kind)).
				WithCause(err)
		}
		return fmt.Errorf("insert %s: %w", tableFor(kind), err)
	}
	return nil
}

// Update rewrites a ledger entry by id.
func (r *LedgerRepo) Update(ctx context.Context, kind ledger.Kind, e *ledger.Entry) error {
	data := columnMap(kind, e)
	delete(data, "id")
	delete(data, "created_at")

	q := r.builder().
		Update(tableFor(kind)).
		SetMap(data).
		Where(squirrel.Eq{"id": e.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build ledger update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", tableFor(kind), err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(entityFor(kind), e.ID.String())
	}
	return nil
}

func selectColumns(kind ledger.Kind) []string {
	cols := []string{"id", "created_at", "updated_at", "description", "amount", "due_date", "status", "settled_at"}
	if kind == ledger.KindReceivable {
		cols = append(cols, "project_id")
	}
	return cols
}

// GetByID retrieves an entry by id.
func (r *LedgerRepo) GetByID(ctx context.Context, kind ledger.Kind, entryID id.ID) (*ledger.Entry, error) {
	q := r.builder().
		Select(selectColumns(kind)...).
		From(tableFor(kind)).
		Where(squirrel.Eq{"id": entryID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ledger get: %w", err)
	}

	var row entryRow
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(entityFor(kind), entryID.String())
		}
		return nil, fmt.Errorf("get %s: %w", tableFor(kind), err)
	}

	e := row.toEntry()
	return &e, nil
}

// Delete removes an entry by id.
func (r *LedgerRepo) Delete(ctx context.Context, kind ledger.Kind, entryID id.ID) error {
	q := r.builder().
		Delete(tableFor(kind)).
		Where(squirrel.Eq{"id": entryID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build ledger delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", tableFor(kind), err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(entityFor(kind), entryID.String())
	}
	return nil
}

// ListForMonth returns entries ordered by due date ascending,
// optionally restricted to the given month. Receivables are joined
// with projects to hydrate the project name.
func (r *LedgerRepo) ListForMonth(ctx context.Context, kind ledger.Kind, month *types.Month) ([]ledger.ListItem, error) {
	var q squirrel.SelectBuilder

	if kind == ledger.KindReceivable {
		cols := make([]string, 0, 10)
		for _, col := range selectColumns(kind) {
			cols = append(cols, "e."+col)
		}
		cols = append(cols, "p.name AS project_name")
		q = r.builder().
			Select(cols...).
			From("receivable_entries e").
			LeftJoin("projects p ON p.id = e.project_id")
	} else {
		cols := make([]string, 0, 9)
		for _, col := range selectColumns(kind) {
			cols = append(cols, "e."+col)
		}
		cols = append(cols, "NULL AS project_name")
		q = r.builder().
			Select(cols...).
			From("payable_entries e")
	}

	if month != nil {
		start, end := month.Range()
		q = q.Where("e.due_date >= ? AND e.due_date < ?", start, end)
	}
	q = q.OrderBy("e.due_date ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ledger list: %w", err)
	}

	var rows []entryRow
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", tableFor(kind), err)
	}

	items := make([]ledger.ListItem, 0, len(rows))
	for i := range rows {
		items = append(items, ledger.ListItem{
			Entry:       rows[i].toEntry(),
			ProjectName: rows[i].ProjectName,
		})
	}
	return items, nil
}
