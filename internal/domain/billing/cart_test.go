package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var flatRate = decimal.NewFromInt(5)

func TestCart_AddItem_MergesSameName(t *testing.T) {
	c := NewCart()

	require.NoError(t, c.AddItem("Margherita Pizza", price("299.0"), flatRate, 2))
	require.NoError(t, c.AddItem("Coca Cola", price("49.0"), flatRate, 1))
	require.NoError(t, c.AddItem("Margherita Pizza", price("299.0"), flatRate, 3))

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "Margherita Pizza", lines[0].Name)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, "Coca Cola", lines[1].Name)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestCart_AddItem_KeepsCapturedPrice(t *testing.T) {
	c := NewCart()

	require.NoError(t, c.AddItem("Coffee", price("79.0"), flatRate, 1))
	// The price captured at first selection wins; a later add with a
	// different price only bumps the quantity.
	require.NoError(t, c.AddItem("Coffee", price("89.0"), flatRate, 1))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.True(t, price("79.0").Equal(lines[0].UnitPrice))
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestCart_AddItem_CapturesPriceRoundedToCents(t *testing.T) {
	c := NewCart()

	// Sub-cent prices are legal input but the captured price is cents;
	// every amount derived from the line then carries two decimals.
	require.NoError(t, c.AddItem("Bulk Candy", price("1.005"), flatRate, 3))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.True(t, price("1.01").Equal(lines[0].UnitPrice), "got %s", lines[0].UnitPrice)
	assert.True(t, price("3.03").Equal(lines[0].Total()))
}

func TestCart_AddItem_MergeSkipsIncomingPriceValidation(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.AddItem("Coffee", price("79.0"), flatRate, 1))

	// A merge only bumps the quantity, so a bad incoming price on an
	// existing line is ignored rather than rejected.
	require.NoError(t, c.AddItem("Coffee", price("-5"), flatRate, 2))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.True(t, price("79.0").Equal(lines[0].UnitPrice))
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestCart_AddItem_QuantitySumProperty(t *testing.T) {
	c := NewCart()
	adds := []int{1, 4, 2, 7, 1}

	want := 0
	for _, q := range adds {
		require.NoError(t, c.AddItem("French Fries", price("99.0"), flatRate, q))
		want += q
	}

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, want, lines[0].Quantity)
}

func TestCart_AddItem_RejectsNonPositiveQuantity(t *testing.T) {
	c := NewCart()

	err := c.AddItem("Veg Burger", price("149.0"), flatRate, 0)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	err = c.AddItem("Veg Burger", price("149.0"), flatRate, -2)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	assert.True(t, c.IsEmpty())
}

func TestCart_AddItem_RejectsEmptyNameAndNegativePrice(t *testing.T) {
	c := NewCart()

	require.ErrorIs(t, c.AddItem("", price("10"), flatRate, 1), ErrEmptyItemName)
	require.ErrorIs(t, c.AddItem("Salad", price("-1"), flatRate, 1), ErrNegativeUnitPrice)
	assert.True(t, c.IsEmpty())
}

func TestCart_RemoveItem(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.AddItem("Chicken Burger", price("199.0"), flatRate, 1))
	require.NoError(t, c.AddItem("French Fries", price("99.0"), flatRate, 1))
	require.NoError(t, c.AddItem("Coffee", price("79.0"), flatRate, 1))

	require.NoError(t, c.RemoveItem(1))

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "Chicken Burger", lines[0].Name)
	assert.Equal(t, "Coffee", lines[1].Name)
}

func TestCart_RemoveItem_OutOfRange(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.AddItem("Coffee", price("79.0"), flatRate, 1))

	require.ErrorIs(t, c.RemoveItem(-1), ErrIndexOutOfRange)
	require.ErrorIs(t, c.RemoveItem(1), ErrIndexOutOfRange)
	assert.Equal(t, 1, c.Len())
}

func TestCart_ClearAndIsEmpty(t *testing.T) {
	c := NewCart()
	assert.True(t, c.IsEmpty())

	require.NoError(t, c.AddItem("Pasta Carbonara", price("249.0"), flatRate, 2))
	assert.False(t, c.IsEmpty())

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Empty(t, c.Lines())
}

func TestCart_LinesIsASnapshot(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.AddItem("Coffee", price("79.0"), flatRate, 1))

	lines := c.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, c.Lines()[0].Quantity)
}
