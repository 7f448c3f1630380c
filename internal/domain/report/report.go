// Package report provides read-only aggregation over committed orders.
package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Defaults applied when a caller passes a non-positive limit.
const (
	DefaultRevenueDays  = 7
	DefaultPopularItems = 10
)

// DailyRevenue is one calendar date's order count and revenue sum.
type DailyRevenue struct {
	Date       time.Time
	OrderCount int64
	Revenue    decimal.Decimal
}

// ItemSales is the all-time sales aggregate for one item name.
type ItemSales struct {
	ItemName      string
	TotalQuantity int64
	TotalRevenue  decimal.Decimal
}

// Repository defines the aggregation queries. Both are pure reads that
// re-aggregate from raw rows on every call; results reflect exactly the
// orders visible when the query executes.
type Repository interface {
	// DailyRevenue groups orders by calendar date of creation, descending
	// by date, truncated to the most recent limitDays distinct dates.
	DailyRevenue(ctx context.Context, limitDays int) ([]DailyRevenue, error)
	// PopularItems groups order lines by item name, descending by total
	// quantity (ties broken by name, ascending), truncated to limitItems.
	PopularItems(ctx context.Context, limitItems int) ([]ItemSales, error)
}
