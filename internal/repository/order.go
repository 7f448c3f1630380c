package repository

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/xenking/resto-billing/internal/domain/order"
)

const (
	insertOrderSQL = `INSERT INTO orders (order_type, total_amount, tax_amount, discount_amount, payment_method)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`

	insertOrderLineSQL = `INSERT INTO order_items (order_id, item_name, quantity, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5)`

	getOrderSQL = `SELECT id, order_type, total_amount, tax_amount, discount_amount, payment_method, created_at
		FROM orders WHERE id = $1`

	getOrderLinesSQL = `SELECT order_id, item_name, quantity, unit_price, line_total
		FROM order_items WHERE order_id = $1 ORDER BY id`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
// The orders.total_amount column stores the final, post-discount total;
// the subtotal is derived from the lines on read.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists the order header and every line in one transaction.
// Any failure rolls the whole order back: readers can never observe a
// header without its lines or vice versa. The write-time invariants
// (subtotal equals the sum of line totals, final total equals
// subtotal + tax - discount) are verified before touching the database.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	if err := checkInvariants(o); err != nil {
		return &order.IntegrityError{Op: "check invariants", Err: err}
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return mapOrderError("begin transaction", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after Commit

	err = tx.QueryRow(ctx, insertOrderSQL,
		o.Type, o.FinalTotal, o.TaxAmount, o.DiscountAmount, o.PaymentMethod,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return mapOrderError("insert order", err)
	}

	for i := range o.Lines {
		l := &o.Lines[i]
		l.OrderID = o.ID
		_, err = tx.Exec(ctx, insertOrderLineSQL,
			l.OrderID, l.ItemName, l.Quantity, l.UnitPrice, l.LineTotal,
		)
		if err != nil {
			return mapOrderError("insert order line", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return mapOrderError("commit transaction", err)
	}
	return nil
}

// Get returns the order with its lines, or order.ErrNotFound.
func (r *OrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	var o order.Order
	err := r.pool.QueryRow(ctx, getOrderSQL, id).Scan(
		&o.ID, &o.Type, &o.FinalTotal, &o.TaxAmount, &o.DiscountAmount,
		&o.PaymentMethod, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, mapOrderError("get order", err)
	}

	rows, err := r.pool.Query(ctx, getOrderLinesSQL, id)
	if err != nil {
		return nil, mapOrderError("get order lines", err)
	}
	o.Lines, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (order.Line, error) {
		var l order.Line
		err := row.Scan(&l.OrderID, &l.ItemName, &l.Quantity, &l.UnitPrice, &l.LineTotal)
		return l, err
	})
	if err != nil {
		return nil, mapOrderError("scan order lines", err)
	}

	// subtotal = sum of line totals, by the write-time invariant.
	for _, l := range o.Lines {
		o.Subtotal = o.Subtotal.Add(l.LineTotal)
	}
	return &o, nil
}

func checkInvariants(o *order.Order) error {
	sum := decimal.Zero
	for _, l := range o.Lines {
		sum = sum.Add(l.LineTotal)
	}
	if !sum.Equal(o.Subtotal) {
		return errors.Errorf("subtotal %s does not match line total sum %s", o.Subtotal, sum)
	}

	final := o.Subtotal.Add(o.TaxAmount).Sub(o.DiscountAmount)
	if !final.Equal(o.FinalTotal) {
		return errors.Errorf("final total %s does not match subtotal+tax-discount %s", o.FinalTotal, final)
	}
	return nil
}
