package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"joinerpro/internal/core/apperror"
	"joinerpro/internal/core/id"
	"joinerpro/internal/domain/project"
)

// Compile-time checks.
var (
	_ project.Repository         = (*ProjectRepo)(nil)
	_ project.MaterialRepository = (*MaterialRepo)(nil)
)

// ProjectRepo is the PostgreSQL project repository.
type ProjectRepo struct {
	*BaseRepo[*project.Project]
}

// NewProjectRepo creates a project repository.
func NewProjectRepo(txm *TxManager) *ProjectRepo {
	return &ProjectRepo{
		BaseRepo: NewBaseRepo(txm, "projects", "project", func() *project.Project { return &project.Project{} }),
	}
}

// withClientSelect builds the hydrated select joining the client name.
func (r *ProjectRepo) withClientSelect() ([]string, string) {
	cols := make([]string, 0, len(r.Columns())+1)
	for _, col := range r.Columns() {
		cols = append(cols, "p."+col)
	}
	cols = append(cols, "c.name AS client_name")
	return cols, "clients c ON c.id = p.client_id"
}

// GetWithClient returns the project hydrated with its client name.
func (r *ProjectRepo) GetWithClient(ctx context.Context, projectID id.ID) (*project.WithClient, error) {
	cols, join := r.withClientSelect()
	q := r.Builder().
		Select(cols...).
		From("projects p").
		Join(join).
		Where("p.id = ?", projectID)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build project get: %w", err)
	}

	var item project.WithClient
	if err := pgxscan.Get(ctx, r.Querier(ctx), &item, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("project", projectID.String())
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &item, nil
}

// List returns all projects with client names, newest first.
func (r *ProjectRepo) List(ctx context.Context) ([]project.WithClient, error) {
	cols, join := r.withClientSelect()
	q := r.Builder().
		Select(cols...).
		From("projects p").
		Join(join).
		OrderBy("p.created_at DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build project list: %w", err)
	}

	var items []project.WithClient
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return items, nil
}

// MaterialRepo is the PostgreSQL BOM line repository.
type MaterialRepo struct {
	*BaseRepo[*project.Material]
}

// NewMaterialRepo creates a BOM line repository.
func NewMaterialRepo(txm *TxManager) *MaterialRepo {
	return &MaterialRepo{
		BaseRepo: NewBaseRepo(txm, "project_materials", "project material", func() *project.Material { return &project.Material{} }),
	}
}

// ListByProject returns the project's BOM hydrated with live stock
// item name, unit and unit cost.
func (r *MaterialRepo) ListByProject(ctx context.Context, projectID id.ID) ([]project.MaterialLine, error) {
	cols := make([]string, 0, len(r.Columns())+3)
	for _, col := range r.Columns() {
		cols = append(cols, "m."+col)
	}
	cols = append(cols,
		"s.name AS item_name",
		"s.unit AS item_unit",
		"s.unit_cost AS unit_cost",
	)

	q := r.Builder().
		Select(cols...).
		From("project_materials m").
		Join("stock_items s ON s.id = m.stock_item_id").
		Where("m.project_id = ?", projectID).
		OrderBy("m.created_at ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build material list: %w", err)
	}

	var items []project.MaterialLine
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	return items, nil
}
