//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/xenking/resto-billing/internal/domain/report"
	"github.com/xenking/resto-billing/internal/repository"
)

// seedOrder inserts an order directly so the test can control created_at,
// which the repository always lets the database assign.
func seedOrder(t *testing.T, createdAt time.Time, total decimal.Decimal, items map[string]int) {
	t.Helper()
	ctx := context.Background()

	var id int64
	err := pool.QueryRow(ctx, `
		INSERT INTO orders (order_type, total_amount, tax_amount, discount_amount, payment_method, created_at)
		VALUES ('dine-in', $1, 0, 0, 'cash', $2)
		RETURNING id`, total, createdAt).Scan(&id)
	require.NoError(t, err)

	for name, qty := range items {
		_, err := pool.Exec(ctx, `
			INSERT INTO order_items (order_id, item_name, quantity, unit_price, line_total)
			VALUES ($1, $2, $3, 10, $4)`, id, name, qty, decimal.NewFromInt(int64(10*qty)))
		require.NoError(t, err)
	}
}

func TestDailyRevenueOrdering(t *testing.T) {
	day1 := time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)
	day2 := time.Date(2020, 1, 2, 12, 0, 0, 0, time.UTC)
	seedOrder(t, day1, dec("100"), nil)
	seedOrder(t, day1, dec("50"), nil)
	seedOrder(t, day2, dec("75"), nil)

	svc := report.NewService(repository.NewReportRepository(pool))
	rows, err := svc.DailyRevenue(context.Background(), 0)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	require.LessOrEqual(t, len(rows), report.DefaultRevenueDays)

	for i := 1; i < len(rows); i++ {
		require.True(t, rows[i].Date.Before(rows[i-1].Date), "dates must be newest first")
	}

	byDate := make(map[string]report.DailyRevenue, len(rows))
	for _, r := range rows {
		byDate[r.Date.Format("2006-01-02")] = r
	}
	require.Contains(t, byDate, "2020-01-01")
	require.Contains(t, byDate, "2020-01-02")
	require.Equal(t, int64(2), byDate["2020-01-01"].OrderCount)
	require.True(t, dec("150").Equal(byDate["2020-01-01"].Revenue))
	require.True(t, dec("75").Equal(byDate["2020-01-02"].Revenue))
}

func TestPopularItemsOrdering(t *testing.T) {
	day := time.Date(2020, 2, 1, 9, 0, 0, 0, time.UTC)
	seedOrder(t, day, dec("100"), map[string]int{"Rank Test Alpha": 7, "Rank Test Beta": 3})

	svc := report.NewService(repository.NewReportRepository(pool))
	rows, err := svc.PopularItems(context.Background(), 0)
	require.NoError(t, err)
	require.LessOrEqual(t, len(rows), report.DefaultPopularItems)

	for i := 1; i < len(rows); i++ {
		require.GreaterOrEqual(t, rows[i-1].TotalQuantity, rows[i].TotalQuantity,
			"items must rank by quantity sold")
	}

	alpha, beta := -1, -1
	for i, r := range rows {
		switch r.ItemName {
		case "Rank Test Alpha":
			alpha = i
			require.Equal(t, int64(7), r.TotalQuantity)
			require.True(t, dec("70").Equal(r.TotalRevenue))
		case "Rank Test Beta":
			beta = i
		}
	}
	require.NotEqual(t, -1, alpha, "seeded item missing from report")
	if beta != -1 {
		require.Less(t, alpha, beta)
	}
}
