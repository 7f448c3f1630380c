package repository

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/xenking/resto-billing/internal/domain/menu"
)

const (
	listMenuSQL = `SELECT id, name, category, price, tax_rate
		FROM menu ORDER BY category, name`

	insertMenuSQL = `INSERT INTO menu (name, category, price, tax_rate)
		VALUES ($1, $2, $3, $4) RETURNING id`

	deleteMenuSQL = `DELETE FROM menu WHERE id = $1`
)

// SQLSTATE for a unique constraint violation.
const pgerrUniqueViolation = "23505"

var _ menu.Repository = (*MenuRepository)(nil)

// MenuRepository implements menu.Repository backed by PostgreSQL.
type MenuRepository struct {
	pool *pgxpool.Pool
}

// NewMenuRepository returns a MenuRepository that uses the given pool.
func NewMenuRepository(pool *pgxpool.Pool) *MenuRepository {
	return &MenuRepository{pool: pool}
}

// List returns the full catalog ordered by category, then name.
func (r *MenuRepository) List(ctx context.Context) ([]menu.Item, error) {
	rows, err := r.pool.Query(ctx, listMenuSQL)
	if err != nil {
		return nil, errors.Wrap(err, "list menu")
	}
	return pgx.CollectRows(rows, scanMenuItem)
}

// Create inserts a new catalog item and fills in its assigned ID. A
// unique-constraint violation on the name surfaces as
// menu.ErrDuplicateName.
func (r *MenuRepository) Create(ctx context.Context, item *menu.Item) error {
	err := r.pool.QueryRow(ctx, insertMenuSQL,
		item.Name, item.Category, item.UnitPrice, item.TaxRate,
	).Scan(&item.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrUniqueViolation {
			return errors.Wrapf(menu.ErrDuplicateName, "item %q", item.Name)
		}
		return errors.Wrapf(err, "create menu item %q", item.Name)
	}
	return nil
}

// Delete removes a catalog item. Historical orders reference items by
// name and are unaffected.
func (r *MenuRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, deleteMenuSQL, id)
	if err != nil {
		return errors.Wrapf(err, "delete menu item %d", id)
	}
	if tag.RowsAffected() == 0 {
		return menu.ErrNotFound
	}
	return nil
}

func scanMenuItem(row pgx.CollectableRow) (menu.Item, error) {
	var (
		it    menu.Item
		price decimal.Decimal
		rate  decimal.Decimal
	)
	err := row.Scan(&it.ID, &it.Name, &it.Category, &price, &rate)
	if err != nil {
		return menu.Item{}, errors.Wrap(err, "scan menu item")
	}
	it.UnitPrice = price
	it.TaxRate = rate
	return it, nil
}
