package billing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Bill is the rounded breakdown of a cart at the persistence/display
// boundary. All amounts carry two decimal places.
type Bill struct {
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Total      decimal.Decimal
	Discount   decimal.Decimal
	FinalTotal decimal.Decimal
}

// CalculatorOption configures a Calculator.
type CalculatorOption func(*Calculator)

// WithPerItemRates switches the calculator from the single flat rate to
// the per-item rates captured on each cart line. The flat rate is the
// compatible default; per-item mode is a documented deviation.
func WithPerItemRates() CalculatorOption {
	return func(c *Calculator) {
		c.perItem = true
	}
}

// Calculator computes bill amounts from a snapshot of cart lines. It is
// pure and side-effect free: the same lines and discount always produce
// the same breakdown.
type Calculator struct {
	rate    decimal.Decimal // flat tax rate, percent
	perItem bool
}

// NewCalculator returns a Calculator using the given flat tax rate,
// expressed as a percentage (5 means 5%).
func NewCalculator(ratePercent decimal.Decimal, opts ...CalculatorOption) Calculator {
	c := Calculator{rate: ratePercent}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Subtotal returns the exact sum of unitPrice * quantity over all lines.
// No rounding happens here, so repeated additions cannot drift.
func (c Calculator) Subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Total())
	}
	return sum
}

// Tax returns subtotal * rate for the single flat rate, exact.
func (c Calculator) Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(c.rate).Div(hundred)
}

// TaxForLines returns the tax for the given lines. In the default flat
// mode the per-line rates are ignored and the whole-order rate applies;
// in per-item mode each line is taxed at its captured rate.
func (c Calculator) TaxForLines(lines []Line) decimal.Decimal {
	if !c.perItem {
		return c.Tax(c.Subtotal(lines))
	}
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Total().Mul(l.TaxRate).Div(hundred))
	}
	return sum
}

// Total returns subtotal + tax.
func (c Calculator) Total(subtotal, tax decimal.Decimal) decimal.Decimal {
	return subtotal.Add(tax)
}

// FinalTotal returns total - discount. The result is deliberately not
// clamped at zero: a discount larger than the total yields a negative
// final total, which callers must reject as an input-validation concern.
func (c Calculator) FinalTotal(total, discount decimal.Decimal) decimal.Decimal {
	return total.Sub(discount)
}

// Bill computes the full breakdown for the given lines and discount,
// rounding each amount once, to two decimal places, half-up. Total and
// FinalTotal are derived from the already-rounded subtotal and tax so the
// persisted invariants hold exactly.
func (c Calculator) Bill(lines []Line, discount decimal.Decimal) Bill {
	subtotal := c.Subtotal(lines).Round(2)
	tax := c.TaxForLines(lines).Round(2)
	total := c.Total(subtotal, tax)
	discount = discount.Round(2)

	return Bill{
		Subtotal:   subtotal,
		Tax:        tax,
		Total:      total,
		Discount:   discount,
		FinalTotal: c.FinalTotal(total, discount),
	}
}
