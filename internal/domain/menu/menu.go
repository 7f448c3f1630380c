package menu

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested menu item does not exist.
var ErrNotFound = errors.New("menu item not found")

// ErrDuplicateName is returned when creating an item whose name is
// already taken. Names are the stable reference orders use, so they are
// unique in the catalog.
var ErrDuplicateName = errors.New("menu item name already exists")

// Item represents a priced, categorized entry in the menu catalog.
//
// Orders reference items by name, not by ID, so renaming or deleting an
// item never affects historical orders.
type Item struct {
	ID        int64
	Name      string
	Category  string
	UnitPrice decimal.Decimal
	// TaxRate is the per-item rate recorded in the catalog. The bill
	// calculator applies a single flat rate by default; see
	// billing.WithPerItemRates for the opt-in per-item mode.
	TaxRate decimal.Decimal
}

// Repository defines persistence operations for the menu catalog.
type Repository interface {
	List(ctx context.Context) ([]Item, error)
	Create(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id int64) error
}
