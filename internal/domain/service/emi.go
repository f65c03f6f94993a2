package service

import (
	"math"

	"github.com/shopspring/decimal"
)

// MonthlyInstallment computes the fixed monthly payment that fully amortizes
// principal at the given annual percentage rate over tenureMonths.
//
// The calculation uses:
//
//	r   = annualRate / 1200  (monthly decimal rate)
//	emi = P * r * (1+r)^n / ((1+r)^n - 1)
//
// A zero rate degenerates to a straight-line split. The result keeps full
// precision; presentation rounding to 2 decimal places is the caller's
// concern, so corrected-rate recomputations never accumulate rounding error.
func MonthlyInstallment(principal decimal.Decimal, annualRate decimal.Decimal, tenureMonths int) decimal.Decimal {
	if annualRate.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(tenureMonths)))
	}

	// Float64 for the power term, as in any fixed-rate amortization; the
	// monetary value comes back into decimal.
	r := annualRate.InexactFloat64() / 1200.0
	n := float64(tenureMonths)
	factor := math.Pow(1+r, n)

	emi := principal.InexactFloat64() * r * factor / (factor - 1)
	return decimal.NewFromFloat(emi)
}
