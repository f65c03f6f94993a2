package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/model"
)

// Rejection reasons surfaced to callers. Business rejections are normal
// Decision outcomes, not errors.
const (
	ReasonLowCreditScore   = "credit score below minimum threshold"
	ReasonEMIBurdenTooHigh = "total EMI burden exceeds half of monthly salary"
)

// Decision is the single ephemeral output of an eligibility evaluation.
// An approved Decision carries the installment the caller must use; a
// corrected rate, when present, is what that installment was computed at.
type Decision struct {
	CorrectedRate      *decimal.Decimal
	RequestedRate      decimal.Decimal
	MonthlyInstallment decimal.Decimal
	RejectionReason    string
	CreditScore        int
	Approved           bool
}

// FinalRate returns the rate a materialized loan must carry.
func (d Decision) FinalRate() decimal.Decimal {
	if d.CorrectedRate != nil {
		return *d.CorrectedRate
	}
	return d.RequestedRate
}

// EvaluationInput is one customer snapshot plus one proposed loan.
type EvaluationInput struct {
	MonthlySalary decimal.Decimal
	ApprovedLimit decimal.Decimal
	History       model.LoanHistory
	Request       model.LoanRequest
	Now           time.Time
}

// ---------------------------------------------------------------------------
// EligibilityEngine – orchestrates scoring, EMI, guards, and the rate ladder
// ---------------------------------------------------------------------------

// EligibilityEngine produces a Decision for a (customer, requested loan)
// pair. It is stateless and pure: the inquiry and creation workflows share
// it identically, and re-evaluating an unchanged snapshot yields an
// identical Decision.
type EligibilityEngine struct {
	scorer *CreditScoreCalculator
	rules  *ApprovalRuleEngine
}

// NewEligibilityEngine wires the calculators.
func NewEligibilityEngine() *EligibilityEngine {
	return &EligibilityEngine{
		scorer: NewCreditScoreCalculator(),
		rules:  NewApprovalRuleEngine(),
	}
}

// Evaluate runs the full decision sequence. It fails fast with
// model.ErrInvalidInput on violated preconditions; every other outcome,
// including rejection, is a Decision.
func (e *EligibilityEngine) Evaluate(in EvaluationInput) (Decision, error) {
	if err := in.Request.Validate(); err != nil {
		return Decision{}, err
	}

	score := e.scorer.Compute(in.History, in.Now.Year())

	// Exposure guard: existing principal beyond the approved limit
	// collapses the score into the rejection tier, regardless of the
	// requested loan's size.
	if in.History.TotalPrincipal().GreaterThan(in.ApprovedLimit) {
		score = 0
	}

	requestedEMI := MonthlyInstallment(in.Request.Principal, in.Request.AnnualRate, in.Request.TenureMonths)

	// Affordability guard: takes precedence over the rate ladder, and a
	// rejection here carries no corrected rate.
	half := in.MonthlySalary.Div(decimal.NewFromInt(2))
	if in.History.TotalMonthlyInstallment().Add(requestedEMI).GreaterThan(half) {
		return Decision{
			Approved:           false,
			CreditScore:        score,
			RequestedRate:      in.Request.AnnualRate,
			MonthlyInstallment: requestedEMI,
			RejectionReason:    ReasonEMIBurdenTooHigh,
		}, nil
	}

	outcome := e.rules.Evaluate(score, in.Request.AnnualRate)
	if !outcome.Approved {
		return Decision{
			Approved:           false,
			CreditScore:        score,
			RequestedRate:      in.Request.AnnualRate,
			MonthlyInstallment: requestedEMI,
			RejectionReason:    ReasonLowCreditScore,
		}, nil
	}

	installment := requestedEMI
	if outcome.CorrectedRate != nil {
		installment = MonthlyInstallment(in.Request.Principal, *outcome.CorrectedRate, in.Request.TenureMonths)
	}

	return Decision{
		Approved:           true,
		CreditScore:        score,
		RequestedRate:      in.Request.AnnualRate,
		CorrectedRate:      outcome.CorrectedRate,
		MonthlyInstallment: installment,
	}, nil
}
