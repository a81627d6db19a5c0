package pricing

import (
	"testing"

	"cart-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func line(id string, price float64, quantity int) models.CartLine {
	return models.CartLine{ProductID: id, UnitPrice: price, Quantity: quantity}
}

func TestEmptyCartIsAllZero(t *testing.T) {
	calc := NewDefaultCalculator()

	assert.Zero(t, calc.Subtotal(nil))
	assert.Zero(t, calc.ShippingCost(nil))
	assert.Zero(t, calc.Tax(nil))
	assert.Zero(t, calc.Total(nil))

	snapshot := calc.Quote(nil)
	assert.Zero(t, snapshot.Subtotal)
	assert.Zero(t, snapshot.Shipping)
	assert.Zero(t, snapshot.Tax)
	assert.Zero(t, snapshot.Total)
}

func TestSubtotal(t *testing.T) {
	calc := NewDefaultCalculator()

	lines := []models.CartLine{
		line("1", 10.00, 2),
		line("2", 2.50, 3),
	}

	assert.InDelta(t, 27.50, calc.Subtotal(lines), 1e-9)
}

func TestShippingStepFunction(t *testing.T) {
	calc := NewDefaultCalculator()

	tests := []struct {
		name     string
		subtotal float64
		want     float64
	}{
		{"empty cart pays no shipping", 0, 0},
		{"just under threshold pays flat fee", 49.99, 5.00},
		{"at threshold ships free", 50.00, 0},
		{"well over threshold ships free", 200.00, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lines []models.CartLine
			if tt.subtotal > 0 {
				lines = []models.CartLine{line("1", tt.subtotal, 1)}
			}
			assert.InDelta(t, tt.want, calc.ShippingCost(lines), 1e-9)
		})
	}
}

func TestTaxAppliesToSubtotalOnly(t *testing.T) {
	calc := NewDefaultCalculator()

	// Subtotal 100.00 at 7% tax. Below-threshold shipping must not be taxed.
	lines := []models.CartLine{line("1", 25.00, 4)}
	assert.InDelta(t, 7.00, calc.Tax(lines), 1e-9)

	cheap := []models.CartLine{line("1", 10.00, 1)}
	snapshot := calc.Quote(cheap)
	assert.InDelta(t, 5.00, snapshot.Shipping, 1e-9)
	assert.InDelta(t, 0.70, snapshot.Tax, 1e-9)
}

func TestQuoteEndToEnd(t *testing.T) {
	calc := NewDefaultCalculator()

	lines := []models.CartLine{
		line("a", 29.50, 1),
		line("b", 45.99, 2),
	}

	snapshot := calc.Quote(lines)
	assert.InDelta(t, 121.48, snapshot.Subtotal, 1e-9)
	assert.InDelta(t, 0, snapshot.Shipping, 1e-9)
	assert.InDelta(t, 8.5036, snapshot.Tax, 1e-9)
	assert.InDelta(t, 129.9836, snapshot.Total, 1e-9)
}

func TestConfiguredRates(t *testing.T) {
	calc := NewCalculator(100.00, 9.99, 0.10)

	lines := []models.CartLine{line("1", 60.00, 1)}
	snapshot := calc.Quote(lines)
	assert.InDelta(t, 9.99, snapshot.Shipping, 1e-9)
	assert.InDelta(t, 6.00, snapshot.Tax, 1e-9)
	assert.InDelta(t, 75.99, snapshot.Total, 1e-9)
}

func TestRoundForDisplay(t *testing.T) {
	assert.InDelta(t, 8.50, RoundForDisplay(8.5036), 1e-9)
	assert.InDelta(t, 129.98, RoundForDisplay(129.9836), 1e-9)
	assert.InDelta(t, 1.01, RoundForDisplay(1.005000001), 1e-9)
	assert.Zero(t, RoundForDisplay(0))
}
