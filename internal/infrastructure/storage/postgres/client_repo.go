package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"joinerpro/internal/core/id"
	"joinerpro/internal/domain/client"
)

// Compile-time check.
var _ client.Repository = (*ClientRepo)(nil)

// ClientRepo is the PostgreSQL client repository.
type ClientRepo struct {
	*BaseRepo[*client.Client]
}

// NewClientRepo creates a client repository.
func NewClientRepo(txm *TxManager) *ClientRepo {
	return &ClientRepo{
		BaseRepo: NewBaseRepo(txm, "clients", "client", func() *client.Client { return &client.Client{} }),
	}
}

// List returns all clients ordered by name with project counts.
func (r *ClientRepo) List(ctx context.Context) ([]client.ListItem, error) {
	cols := make([]string, 0, len(r.Columns())+1)
	for _, col := range r.Columns() {
		cols = append(cols, "c."+col)
	}
	cols = append(cols, "COUNT(p.id) AS project_count")

	q := r.Builder().
		Select(cols...).
		From("clients c").
		LeftJoin("projects p ON p.client_id = c.id").
		GroupBy("c.id").
		OrderBy("c.name ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build client list: %w", err)
	}

	var items []client.ListItem
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return items, nil
}

// GetProjects returns shallow summaries of the client's projects,
// newest first.
func (r *ClientRepo) GetProjects(ctx context.Context, clientID id.ID) ([]client.ProjectSummary, error) {
	q := r.Builder().
		Select("id", "name", "status", "total_value").
		From("projects").
		Where("client_id = ?", clientID).
		OrderBy("created_at DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build client projects: %w", err)
	}

	var items []client.ProjectSummary
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("client projects: %w", err)
	}
	return items, nil
}
