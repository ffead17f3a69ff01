package service

import "github.com/eltech/pos-terminal/internal/domain/entity"

// VATRate is the fixed inclusive VAT rate (16%). Displayed prices already
// contain it, so the tax portion is extracted, never added on top.
const VATRate = 0.16

// VATPortion extracts the tax component embedded in a tax-inclusive amount.
func VATPortion(grossInclusive float64) float64 {
	return grossInclusive * VATRate / (1 + VATRate)
}

// TotalsFor derives net, tax, and gross figures from cart lines. It is a pure
// computation over the lines it is given and keeps full float precision;
// rounding to two decimals happens only at render time.
func TotalsFor(lines []entity.CartLine) entity.Totals {
	var gross float64
	for i := range lines {
		gross += lines[i].Total()
	}
	tax := VATPortion(gross)
	return entity.Totals{
		Net:   gross - tax,
		Tax:   tax,
		Gross: gross,
	}
}
