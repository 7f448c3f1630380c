package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/resto-billing/internal/domain/billing"
)

// Receipt is the result of a commit attempt. Committed is false when the
// cart had no lines: committing an empty cart is a distinguished no-op,
// not an error.
type Receipt struct {
	Committed  bool
	OrderID    int64
	CreatedAt  time.Time
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Total      decimal.Decimal
	Discount   decimal.Decimal
	FinalTotal decimal.Decimal
}

// Service turns an in-progress cart into a durable order. It owns the
// business-rule validation the permissive calculator leaves to its
// callers, discount bounds included.
type Service struct {
	orders Repository
	calc   billing.Calculator
}

// NewService creates an order Service.
func NewService(orders Repository, calc billing.Calculator) *Service {
	return &Service{orders: orders, calc: calc}
}

// Commit computes the bill for the cart and persists the order header
// together with one line per cart line in a single transaction.
//
// On success the caller owns clearing the cart. On any error the cart is
// left untouched so the user can retry.
func (s *Service) Commit(
	ctx context.Context,
	cart *billing.Cart,
	typ Type,
	payment PaymentMethod,
	discount decimal.Decimal,
) (Receipt, error) {
	if cart.IsEmpty() {
		return Receipt{Committed: false}, nil
	}

	if !typ.Valid() {
		return Receipt{}, &ValidationError{Field: "orderType", Reason: "unknown order type"}
	}
	if !payment.Valid() {
		return Receipt{}, &ValidationError{Field: "paymentMethod", Reason: "unknown payment method"}
	}
	if discount.IsNegative() {
		return Receipt{}, &ValidationError{Field: "discount", Reason: "must not be negative"}
	}

	lines := cart.Lines()
	bill := s.calc.Bill(lines, discount)

	// The calculator allows discounts past the total; the store's caller
	// does not.
	if bill.Discount.GreaterThan(bill.Total) {
		return Receipt{}, &ValidationError{Field: "discount", Reason: "exceeds order total"}
	}

	o := &Order{
		Type:           typ,
		Subtotal:       bill.Subtotal,
		TaxAmount:      bill.Tax,
		DiscountAmount: bill.Discount,
		FinalTotal:     bill.FinalTotal,
		PaymentMethod:  payment,
		Lines:          make([]Line, len(lines)),
	}
	for i, l := range lines {
		o.Lines[i] = Line{
			ItemName:  l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.Round(2),
			LineTotal: l.Total().Round(2),
		}
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return Receipt{}, errors.Wrap(err, "create order")
	}

	return Receipt{
		Committed:  true,
		OrderID:    o.ID,
		CreatedAt:  o.CreatedAt,
		Subtotal:   bill.Subtotal,
		Tax:        bill.Tax,
		Total:      bill.Total,
		Discount:   bill.Discount,
		FinalTotal: bill.FinalTotal,
	}, nil
}

// Get returns a committed order with its lines.
func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	return s.orders.Get(ctx, id)
}
