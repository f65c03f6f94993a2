package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Monetary fields serialize as plain JSON numbers, not quoted strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// RegisterCustomerRequest carries the data for new customer registration.
type RegisterCustomerRequest struct {
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	PhoneNumber   string          `json:"phone_number"`
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
	Age           int             `json:"age"`
}

// LoanRequest carries a proposed loan for the inquiry and creation workflows.
type LoanRequest struct {
	LoanAmount   decimal.Decimal `json:"loan_amount"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	CustomerID   int64           `json:"customer_id"`
	Tenure       int             `json:"tenure"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// CustomerResponse is the external representation of a registered customer.
type CustomerResponse struct {
	Name          string          `json:"name"`
	PhoneNumber   string          `json:"phone_number"`
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
	ApprovedLimit decimal.Decimal `json:"approved_limit"`
	CustomerID    int64           `json:"customer_id"`
	Age           int             `json:"age"`
}

// EligibilityResponse is the external representation of an eligibility
// Decision. CorrectedInterestRate is null when no correction applies.
type EligibilityResponse struct {
	CorrectedInterestRate *decimal.Decimal `json:"corrected_interest_rate"`
	InterestRate          decimal.Decimal  `json:"interest_rate"`
	MonthlyInstallment    decimal.Decimal  `json:"monthly_installment"`
	CustomerID            int64            `json:"customer_id"`
	Tenure                int              `json:"tenure"`
	CreditScore           int              `json:"credit_score"`
	Approval              bool             `json:"approval"`
}

// CreateLoanResponse reports the outcome of the creation workflow. LoanID is
// null on rejection; Message carries the rejection reason.
type CreateLoanResponse struct {
	LoanID             *int64          `json:"loan_id"`
	Message            string          `json:"message"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	CustomerID         int64           `json:"customer_id"`
	LoanApproved       bool            `json:"loan_approved"`
}

// CustomerSummary is the embedded customer block of a loan detail.
type CustomerSummary struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	ID          int64  `json:"id"`
	Age         int    `json:"age"`
}

// LoanDetailResponse is the external representation of a single loan.
type LoanDetailResponse struct {
	Customer           CustomerSummary `json:"customer"`
	LoanAmount         decimal.Decimal `json:"loan_amount"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	StartDate          time.Time       `json:"start_date"`
	EndDate            time.Time       `json:"end_date"`
	LoanID             int64           `json:"loan_id"`
	Tenure             int             `json:"tenure"`
}

// LoanItemResponse is one element of a customer's loan listing.
// RepaymentsLeft is clamped at zero at this boundary; imported histories may
// record more on-time EMIs than the tenure.
type LoanItemResponse struct {
	LoanAmount         decimal.Decimal `json:"loan_amount"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	LoanID             int64           `json:"loan_id"`
	RepaymentsLeft     int             `json:"repayments_left"`
}
