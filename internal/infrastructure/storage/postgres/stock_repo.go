package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"joinerpro/internal/domain/stock"
)

// Compile-time checks.
var (
	_ stock.CategoryRepository = (*StockCategoryRepo)(nil)
	_ stock.ItemRepository     = (*StockItemRepo)(nil)
)

// StockCategoryRepo is the PostgreSQL stock category repository.
type StockCategoryRepo struct {
	*BaseRepo[*stock.Category]
}

// NewStockCategoryRepo creates a stock category repository.
func NewStockCategoryRepo(txm *TxManager) *StockCategoryRepo {
	return &StockCategoryRepo{
		BaseRepo: NewBaseRepo(txm, "stock_categories", "stock category", func() *stock.Category { return &stock.Category{} }),
	}
}

// List returns all categories ordered by name.
func (r *StockCategoryRepo) List(ctx context.Context) ([]stock.Category, error) {
	q := r.BaseSelect().OrderBy("name ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build category list: %w", err)
	}

	var items []stock.Category
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return items, nil
}

// StockItemRepo is the PostgreSQL stock item repository.
type StockItemRepo struct {
	*BaseRepo[*stock.Item]
}

// NewStockItemRepo creates a stock item repository.
func NewStockItemRepo(txm *TxManager) *StockItemRepo {
	return &StockItemRepo{
		BaseRepo: NewBaseRepo(txm, "stock_items", "stock item", func() *stock.Item { return &stock.Item{} }),
	}
}

// List returns all items ordered by name, hydrated with category names.
func (r *StockItemRepo) List(ctx context.Context) ([]stock.ItemWithCategory, error) {
	cols := make([]string, 0, len(r.Columns())+1)
	for _, col := range r.Columns() {
		cols = append(cols, "i."+col)
	}
	cols = append(cols, "c.name AS category_name")

	q := r.Builder().
		Select(cols...).
		From("stock_items i").
		Join("stock_categories c ON c.id = i.category_id").
		OrderBy("i.name ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build item list: %w", err)
	}

	var items []stock.ItemWithCategory
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}
