package pricing

import (
	"math"

	"cart-service/internal/models"
)

// Default pricing rules, overridable through config.
const (
	DefaultFreeShippingThreshold = 50.00
	DefaultFlatShippingFee       = 5.00
	DefaultTaxRate               = 0.07
)

// Calculator derives monetary totals from cart lines. It holds no state
// beyond the configured rates; every value is recomputed from the lines on
// each call, so results can never go stale.
type Calculator struct {
	freeShippingThreshold float64
	flatShippingFee       float64
	taxRate               float64
}

// NewCalculator creates a calculator with the given pricing rules.
func NewCalculator(freeShippingThreshold, flatShippingFee, taxRate float64) *Calculator {
	return &Calculator{
		freeShippingThreshold: freeShippingThreshold,
		flatShippingFee:       flatShippingFee,
		taxRate:               taxRate,
	}
}

// NewDefaultCalculator creates a calculator with the default rules.
func NewDefaultCalculator() *Calculator {
	return NewCalculator(DefaultFreeShippingThreshold, DefaultFlatShippingFee, DefaultTaxRate)
}

// Snapshot is a derived pricing breakdown. It is never stored.
type Snapshot struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Subtotal returns the sum of unit price times quantity over all lines.
func (c *Calculator) Subtotal(lines []models.CartLine) float64 {
	var subtotal float64
	for _, line := range lines {
		subtotal += line.UnitPrice * float64(line.Quantity)
	}
	return subtotal
}

// ShippingCost returns 0 for an empty cart, 0 at or above the free-shipping
// threshold, and the flat fee otherwise.
func (c *Calculator) ShippingCost(lines []models.CartLine) float64 {
	subtotal := c.Subtotal(lines)
	if subtotal > 0 && subtotal < c.freeShippingThreshold {
		return c.flatShippingFee
	}
	return 0
}

// Tax applies the configured rate to the subtotal. Shipping is not taxed.
func (c *Calculator) Tax(lines []models.CartLine) float64 {
	return c.Subtotal(lines) * c.taxRate
}

// Total returns subtotal + shipping + tax at full precision. Rounding
// happens only at the presentation boundary, never here.
func (c *Calculator) Total(lines []models.CartLine) float64 {
	return c.Subtotal(lines) + c.ShippingCost(lines) + c.Tax(lines)
}

// Quote computes the full breakdown in one pass over the lines.
func (c *Calculator) Quote(lines []models.CartLine) Snapshot {
	subtotal := c.Subtotal(lines)

	var shipping float64
	if subtotal > 0 && subtotal < c.freeShippingThreshold {
		shipping = c.flatShippingFee
	}

	tax := subtotal * c.taxRate

	return Snapshot{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}

// RoundForDisplay rounds an amount to 2 decimal places. Display formatting
// only: rounded values must not feed back into further arithmetic.
func RoundForDisplay(amount float64) float64 {
	return math.Round(amount*100) / 100
}
