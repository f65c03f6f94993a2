package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput signals a loan request that violates the engine's
// preconditions. The transport layer is expected to reject malformed input
// before the engine runs; this is the engine failing fast when it did not.
var ErrInvalidInput = errors.New("invalid loan request")

// LoanRequest is the proposed loan a decision is evaluated against.
type LoanRequest struct {
	CustomerID   int64
	Principal    decimal.Decimal
	AnnualRate   decimal.Decimal
	TenureMonths int
}

// Validate checks the engine preconditions: principal > 0, rate >= 0,
// tenure > 0.
func (r LoanRequest) Validate() error {
	if r.CustomerID <= 0 {
		return fmt.Errorf("%w: customer id must be positive", ErrInvalidInput)
	}
	if r.Principal.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: principal must be positive", ErrInvalidInput)
	}
	if r.AnnualRate.IsNegative() {
		return fmt.Errorf("%w: interest rate must not be negative", ErrInvalidInput)
	}
	if r.TenureMonths <= 0 {
		return fmt.Errorf("%w: tenure months must be positive", ErrInvalidInput)
	}
	return nil
}
