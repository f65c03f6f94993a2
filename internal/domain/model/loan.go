package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// loanDaysPerMonth is the day count used to derive a loan's end date.
// The end date is start + 30*tenure days rather than calendar-accurate
// month arithmetic; downstream consumers depend on this approximation.
const loanDaysPerMonth = 30

// ---------------------------------------------------------------------------
// Loan aggregate root
// ---------------------------------------------------------------------------

// Loan is an immutable aggregate. Once created, only emisPaidOnTime changes
// over its life, and that mutation belongs to an external repayment tracker.
type Loan struct {
	id                 int64
	customerID         int64
	principal          decimal.Decimal
	tenureMonths       int
	annualRate         decimal.Decimal
	monthlyInstallment decimal.Decimal
	emisPaidOnTime     int
	startDate          time.Time
	endDate            time.Time
}

// NewLoan creates a loan as materialized by the creation workflow: zero EMIs
// paid, started now, ending 30*tenure days later.
func NewLoan(
	id, customerID int64,
	principal decimal.Decimal,
	annualRate decimal.Decimal,
	tenureMonths int,
	monthlyInstallment decimal.Decimal,
	startDate time.Time,
) (Loan, error) {
	if id <= 0 {
		return Loan{}, errors.New("loan id must be positive")
	}
	if customerID <= 0 {
		return Loan{}, errors.New("customer id must be positive")
	}
	if principal.LessThanOrEqual(decimal.Zero) {
		return Loan{}, errors.New("principal must be positive")
	}
	if annualRate.IsNegative() {
		return Loan{}, errors.New("interest rate must not be negative")
	}
	if tenureMonths <= 0 {
		return Loan{}, errors.New("tenure months must be positive")
	}
	if monthlyInstallment.LessThanOrEqual(decimal.Zero) {
		return Loan{}, errors.New("monthly installment must be positive")
	}

	return Loan{
		id:                 id,
		customerID:         customerID,
		principal:          principal,
		tenureMonths:       tenureMonths,
		annualRate:         annualRate,
		monthlyInstallment: monthlyInstallment,
		emisPaidOnTime:     0,
		startDate:          startDate,
		endDate:            startDate.AddDate(0, 0, loanDaysPerMonth*tenureMonths),
	}, nil
}

// ReconstructLoan rebuilds a Loan from persistence or bulk import without
// validation. Imported histories may carry emisPaidOnTime > tenure; the
// aggregate tolerates that.
func ReconstructLoan(
	id, customerID int64,
	principal decimal.Decimal,
	annualRate decimal.Decimal,
	tenureMonths int,
	monthlyInstallment decimal.Decimal,
	emisPaidOnTime int,
	startDate, endDate time.Time,
) Loan {
	return Loan{
		id:                 id,
		customerID:         customerID,
		principal:          principal,
		tenureMonths:       tenureMonths,
		annualRate:         annualRate,
		monthlyInstallment: monthlyInstallment,
		emisPaidOnTime:     emisPaidOnTime,
		startDate:          startDate,
		endDate:            endDate,
	}
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (l Loan) ID() int64                           { return l.id }
func (l Loan) CustomerID() int64                   { return l.customerID }
func (l Loan) Principal() decimal.Decimal          { return l.principal }
func (l Loan) TenureMonths() int                   { return l.tenureMonths }
func (l Loan) AnnualRate() decimal.Decimal         { return l.annualRate }
func (l Loan) MonthlyInstallment() decimal.Decimal { return l.monthlyInstallment }
func (l Loan) EMIsPaidOnTime() int                 { return l.emisPaidOnTime }
func (l Loan) StartDate() time.Time                { return l.startDate }
func (l Loan) EndDate() time.Time                  { return l.endDate }
