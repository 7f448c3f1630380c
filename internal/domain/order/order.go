package order

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested order does not exist.
var ErrNotFound = errors.New("order not found")

// Type enumerates how an order is served.
type Type string

const (
	TypeDineIn   Type = "dine-in"
	TypeTakeaway Type = "takeaway"
)

// Valid reports whether t is a member of the enumeration.
func (t Type) Valid() bool {
	return t == TypeDineIn || t == TypeTakeaway
}

// ParseType converts a wire value into a Type.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.Valid() {
		return "", &ValidationError{Field: "orderType", Reason: fmt.Sprintf("unknown order type %q", s)}
	}
	return t, nil
}

// PaymentMethod enumerates how an order is paid.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentCard       PaymentMethod = "card"
	PaymentElectronic PaymentMethod = "electronic-transfer"
)

// Valid reports whether m is a member of the enumeration.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentCard || m == PaymentElectronic
}

// ParsePaymentMethod converts a wire value into a PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	if !m.Valid() {
		return "", &ValidationError{Field: "paymentMethod", Reason: fmt.Sprintf("unknown payment method %q", s)}
	}
	return m, nil
}

// Order is a committed, immutable order together with its lines.
// Subtotal is derived from the lines; FinalTotal is the amount charged.
type Order struct {
	ID             int64
	Type           Type
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalTotal     decimal.Decimal
	PaymentMethod  PaymentMethod
	CreatedAt      time.Time
	Lines          []Line
}

// Line is one item of a committed order. Lines are created only as part
// of an order commit and never change afterwards.
type Line struct {
	OrderID   int64
	ItemName  string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Repository defines transactional persistence for orders.
type Repository interface {
	// Create persists the order header and all its lines atomically and
	// fills in the assigned ID and CreatedAt. Either everything is
	// written or nothing is.
	Create(ctx context.Context, o *Order) error
	// Get returns the order with its lines, or ErrNotFound.
	Get(ctx context.Context, id int64) (*Order, error)
}

// ValidationError indicates input rejected before any mutation happened.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StorageError indicates an I/O, connectivity, or timeout failure in the
// storage layer. The order was not persisted and the cart is untouched,
// so the caller may retry.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IntegrityError indicates a constraint violation during commit. Given
// the service preconditions it should not occur; when it does, the commit
// attempt is abandoned and the cart is preserved.
type IntegrityError struct {
	Op  string
	Err error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity: %s: %v", e.Op, e.Err)
}

func (e *IntegrityError) Unwrap() error { return e.Err }
