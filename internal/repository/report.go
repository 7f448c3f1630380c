package repository

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/resto-billing/internal/domain/report"
)

const (
	dailyRevenueSQL = `SELECT created_at::date AS date, COUNT(*) AS orders, SUM(total_amount) AS revenue
		FROM orders
		GROUP BY created_at::date
		ORDER BY date DESC
		LIMIT $1`

	popularItemsSQL = `SELECT item_name, SUM(quantity) AS total_quantity, SUM(line_total) AS total_revenue
		FROM order_items
		GROUP BY item_name
		ORDER BY total_quantity DESC, item_name
		LIMIT $1`
)

var _ report.Repository = (*ReportRepository)(nil)

// ReportRepository implements report.Repository backed by PostgreSQL.
// Every call re-aggregates from the raw rows; nothing is cached.
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository returns a ReportRepository that uses the given pool.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// DailyRevenue returns per-date order counts and revenue sums, newest
// date first, at most limitDays rows.
func (r *ReportRepository) DailyRevenue(ctx context.Context, limitDays int) ([]report.DailyRevenue, error) {
	rows, err := r.pool.Query(ctx, dailyRevenueSQL, limitDays)
	if err != nil {
		return nil, errors.Wrap(err, "query daily revenue")
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (report.DailyRevenue, error) {
		var d report.DailyRevenue
		err := row.Scan(&d.Date, &d.OrderCount, &d.Revenue)
		return d, err
	})
}

// PopularItems returns per-item quantity and revenue sums, highest
// quantity first with name as the stable tie-break, at most limitItems
// rows.
func (r *ReportRepository) PopularItems(ctx context.Context, limitItems int) ([]report.ItemSales, error) {
	rows, err := r.pool.Query(ctx, popularItemsSQL, limitItems)
	if err != nil {
		return nil, errors.Wrap(err, "query popular items")
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (report.ItemSales, error) {
		var s report.ItemSales
		err := row.Scan(&s.ItemName, &s.TotalQuantity, &s.TotalRevenue)
		return s, err
	})
}
