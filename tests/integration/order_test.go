//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/xenking/resto-billing/internal/domain/billing"
	"github.com/xenking/resto-billing/internal/domain/order"
	"github.com/xenking/resto-billing/internal/repository"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestOrderCommitRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewOrderRepository(pool)
	calc := billing.NewCalculator(dec("5"))
	svc := order.NewService(repo, calc)

	cart := billing.NewCart()
	require.NoError(t, cart.AddItem("Margherita Pizza", dec("299"), dec("5"), 2))
	require.NoError(t, cart.AddItem("Coca Cola", dec("49"), dec("5"), 2))

	receipt, err := svc.Commit(ctx, cart, order.TypeDineIn, order.PaymentCard, decimal.Zero)
	require.NoError(t, err)
	require.True(t, receipt.Committed)
	require.NotZero(t, receipt.OrderID)
	require.True(t, dec("696").Equal(receipt.Subtotal), "subtotal %s", receipt.Subtotal)
	require.True(t, dec("34.80").Equal(receipt.Tax), "tax %s", receipt.Tax)
	require.True(t, dec("730.80").Equal(receipt.FinalTotal), "final total %s", receipt.FinalTotal)

	got, err := svc.Get(ctx, receipt.OrderID)
	require.NoError(t, err)
	require.Equal(t, order.TypeDineIn, got.Type)
	require.Equal(t, order.PaymentCard, got.PaymentMethod)
	require.True(t, dec("696").Equal(got.Subtotal))
	require.True(t, dec("730.80").Equal(got.FinalTotal))
	require.Len(t, got.Lines, 2)
	require.Equal(t, "Margherita Pizza", got.Lines[0].ItemName)
	require.Equal(t, 2, got.Lines[0].Quantity)
}

func TestOrderCommitWithDiscount(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewOrderRepository(pool)
	calc := billing.NewCalculator(dec("5"))
	svc := order.NewService(repo, calc)

	cart := billing.NewCart()
	require.NoError(t, cart.AddItem("Paneer Tikka", dec("249"), dec("5"), 1))
	require.NoError(t, cart.AddItem("Masala Dosa", dec("128"), dec("5"), 1))

	receipt, err := svc.Commit(ctx, cart, order.TypeTakeaway, order.PaymentCash, dec("20"))
	require.NoError(t, err)
	require.True(t, dec("377").Equal(receipt.Subtotal))
	require.True(t, dec("18.85").Equal(receipt.Tax))
	require.True(t, dec("395.85").Equal(receipt.Total))
	require.True(t, dec("375.85").Equal(receipt.FinalTotal))

	got, err := svc.Get(ctx, receipt.OrderID)
	require.NoError(t, err)
	require.True(t, dec("20").Equal(got.DiscountAmount))
	require.True(t, dec("375.85").Equal(got.FinalTotal))
}

// Forcing a line insert to trip the quantity check after the order header
// has been written must leave no trace of the order.
func TestOrderCreateAtomicity(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewOrderRepository(pool)

	ordersBefore := countRows(t, "orders")
	itemsBefore := countRows(t, "order_items")

	o := &order.Order{
		Type:           order.TypeDineIn,
		Subtotal:       dec("100"),
		TaxAmount:      dec("5"),
		DiscountAmount: decimal.Zero,
		FinalTotal:     dec("105"),
		PaymentMethod:  order.PaymentCash,
		Lines: []order.Line{
			{ItemName: "Coffee", Quantity: 1, UnitPrice: dec("100"), LineTotal: dec("100")},
			{ItemName: "Phantom", Quantity: 0, UnitPrice: dec("1"), LineTotal: decimal.Zero},
		},
	}

	err := repo.Create(ctx, o)
	require.Error(t, err)
	var integrity *order.IntegrityError
	require.True(t, errors.As(err, &integrity), "expected integrity error, got %v", err)

	require.Equal(t, ordersBefore, countRows(t, "orders"))
	require.Equal(t, itemsBefore, countRows(t, "order_items"))

	if o.ID != 0 {
		_, getErr := repo.Get(ctx, o.ID)
		require.ErrorIs(t, getErr, order.ErrNotFound)
	}
}

func TestOrderGetMissing(t *testing.T) {
	repo := repository.NewOrderRepository(pool)
	_, err := repo.Get(context.Background(), 999999)
	require.ErrorIs(t, err, order.ErrNotFound)
}
