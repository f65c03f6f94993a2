package model

import "github.com/shopspring/decimal"

// LoanHistory is an ephemeral read-only projection of a customer's loans at
// evaluation time. It is rebuilt from storage on every decision and never
// cached, so each evaluation sees a fresh snapshot.
type LoanHistory []Loan

// TotalPrincipal sums the principal across all loans in the history.
func (h LoanHistory) TotalPrincipal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range h {
		total = total.Add(l.Principal())
	}
	return total
}

// TotalMonthlyInstallment sums the monthly installments across all loans.
func (h LoanHistory) TotalMonthlyInstallment() decimal.Decimal {
	total := decimal.Zero
	for _, l := range h {
		total = total.Add(l.MonthlyInstallment())
	}
	return total
}
