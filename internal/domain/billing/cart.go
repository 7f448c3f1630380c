// Package billing holds the in-progress order cart and the pure bill
// calculation over its lines.
package billing

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Sentinel errors for cart mutation.
var (
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrIndexOutOfRange   = errors.New("line index out of range")
	ErrEmptyItemName     = errors.New("item name required")
	ErrNegativeUnitPrice = errors.New("unit price must not be negative")
)

// Line is a single (item, quantity) pairing in a cart. UnitPrice and
// TaxRate are captured at selection time and survive later catalog edits.
type Line struct {
	Name      string
	UnitPrice decimal.Decimal
	TaxRate   decimal.Decimal
	Quantity  int
}

// Total returns UnitPrice * Quantity, exact.
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart accumulates one customer's selections before commit. It is a plain
// value owned by the caller, one instance per active order, with no hidden
// global state. It is not safe for concurrent use.
type Cart struct {
	lines []Line
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// AddItem adds quantity units of the named item. If a line with the same
// name already exists its quantity increases and the originally captured
// unit price and tax rate are kept; the incoming price is then ignored
// and not re-validated. Otherwise a new line is appended, preserving
// insertion order, with the unit price captured rounded to cents so
// every amount derived from the line stays at two decimal places. At
// most one line exists per distinct name.
func (c *Cart) AddItem(name string, unitPrice, taxRate decimal.Decimal, quantity int) error {
	if name == "" {
		return ErrEmptyItemName
	}
	if quantity <= 0 {
		return errors.Wrapf(ErrInvalidQuantity, "item %q", name)
	}

	for i := range c.lines {
		if c.lines[i].Name == name {
			c.lines[i].Quantity += quantity
			return nil
		}
	}

	if unitPrice.IsNegative() {
		return errors.Wrapf(ErrNegativeUnitPrice, "item %q", name)
	}

	c.lines = append(c.lines, Line{
		Name:      name,
		UnitPrice: unitPrice.Round(2),
		TaxRate:   taxRate,
		Quantity:  quantity,
	})
	return nil
}

// RemoveItem removes the line at the given position in insertion order.
func (c *Cart) RemoveItem(index int) error {
	if index < 0 || index >= len(c.lines) {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d", index)
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return nil
}

// IsEmpty reports whether no lines remain.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Clear resets the cart to the empty state. Called after a successful
// commit.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a snapshot copy of the current lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}
