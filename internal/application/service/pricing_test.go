package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eltech/pos-terminal/internal/domain/entity"
)

func TestVATPortion(t *testing.T) {
	// 116.00 gross at 16% inclusive carries exactly 16.00 of tax.
	assert.InDelta(t, 16.0, VATPortion(116.0), 1e-9)
	assert.Equal(t, 0.0, VATPortion(0))
}

func TestTotalsForReconstructsGross(t *testing.T) {
	override := 99.99
	lines := []entity.CartLine{
		{CatalogPrice: 116.0, Quantity: 2},
		{CatalogPrice: 150.0, OverridePrice: &override, Quantity: 3},
		{CatalogPrice: 0.01, Quantity: 1},
	}

	totals := TotalsFor(lines)

	var gross float64
	for i := range lines {
		gross += lines[i].Total()
	}
	assert.InDelta(t, gross, totals.Gross, 1e-9)
	assert.InDelta(t, totals.Gross, totals.Net+totals.Tax, 1e-9)
	assert.InDelta(t, VATPortion(gross), totals.Tax, 1e-9)
}

func TestTotalsForUsesOverridePrice(t *testing.T) {
	override := 50.0
	lines := []entity.CartLine{
		{CatalogPrice: 100.0, OverridePrice: &override, Quantity: 2},
	}

	totals := TotalsFor(lines)
	assert.InDelta(t, 100.0, totals.Gross, 1e-9)
}

func TestTotalsForEmptyCart(t *testing.T) {
	totals := TotalsFor(nil)
	assert.Equal(t, 0.0, totals.Gross)
	assert.Equal(t, 0.0, totals.Net)
	assert.Equal(t, 0.0, totals.Tax)
}
