package pricing

import (
	"github.com/shopspring/decimal"
)

// Line is the minimal priced input the engine needs per cart line.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Summary holds the aggregated cart totals. Tax is rounded to cents,
// half away from zero. Total is always Subtotal + Shipping + Tax so the
// breakdown sums exactly to the headline figure.
type Summary struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Summarize computes the cart totals for the provided lines. An empty
// cart yields an all-zero summary: no shipping fee is charged when
// there is nothing to ship. Free shipping applies only when the
// subtotal strictly exceeds the threshold.
func (p Policy) Summarize(lines []Line) Summary {
	subtotal := decimal.Zero
	effective := 0
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		effective++
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	if effective == 0 {
		return Summary{
			Subtotal: decimal.Zero,
			Shipping: decimal.Zero,
			Tax:      decimal.Zero,
			Total:    decimal.Zero,
		}
	}

	shipping := p.FlatShippingFee
	if subtotal.GreaterThan(p.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	tax := subtotal.Mul(p.TaxRate).Round(2)
	total := subtotal.Add(shipping).Add(tax)

	return Summary{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    total,
	}
}
