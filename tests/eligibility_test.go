package tests

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/model"
	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/service"
)

var evalNow = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

func newEvalInput(history model.LoanHistory) service.EvaluationInput {
	return service.EvaluationInput{
		MonthlySalary: decimal.NewFromInt(50_000),
		ApprovedLimit: decimal.NewFromInt(1_800_000),
		History:       history,
		Request: model.LoanRequest{
			CustomerID:   1,
			Principal:    decimal.NewFromInt(100_000),
			AnnualRate:   decimal.NewFromInt(8),
			TenureMonths: 12,
		},
		Now: evalNow,
	}
}

func TestEligibility_NewCustomerGetsCorrectedRate(t *testing.T) {
	engine := service.NewEligibilityEngine()

	// No history scores 25, which lands in the 16% floor tier.
	decision, err := engine.Evaluate(newEvalInput(nil))
	require.NoError(t, err)

	assert.True(t, decision.Approved)
	assert.Equal(t, service.BaseScoreNoHistory, decision.CreditScore)
	require.NotNil(t, decision.CorrectedRate)
	assert.True(t, decision.CorrectedRate.Equal(decimal.NewFromInt(16)))
	assert.True(t, decision.FinalRate().Equal(decimal.NewFromInt(16)))

	// The installment is recomputed at the corrected rate, not the
	// requested one.
	want := service.MonthlyInstallment(decimal.NewFromInt(100_000), decimal.NewFromInt(16), 12)
	assert.True(t, decision.MonthlyInstallment.Equal(want))
}

func TestEligibility_StrongHistoryKeepsRequestedRate(t *testing.T) {
	engine := service.NewEligibilityEngine()

	// Two fully repaid loans: on-time 40 + experience 10 + volume 2 = 52.
	// Their installments (8,333 each) plus the requested EMI must stay
	// under half the salary, so the affordability guard cannot mask the
	// ladder outcome under test.
	input := newEvalInput(model.LoanHistory{
		historyLoan(1, 100_000, 12, 12, 2023),
		historyLoan(2, 100_000, 12, 12, 2024),
	})
	input.MonthlySalary = decimal.NewFromInt(60_000)

	requestedEMI := service.MonthlyInstallment(input.Request.Principal, input.Request.AnnualRate, input.Request.TenureMonths)
	burden := input.History.TotalMonthlyInstallment().Add(requestedEMI)
	require.True(t, burden.LessThan(input.MonthlySalary.Div(decimal.NewFromInt(2))),
		"fixture must keep the EMI burden clear of the affordability guard")

	decision, err := engine.Evaluate(input)
	require.NoError(t, err)

	assert.True(t, decision.Approved)
	assert.Equal(t, 52, decision.CreditScore)
	assert.Nil(t, decision.CorrectedRate)
	assert.True(t, decision.FinalRate().Equal(decimal.NewFromInt(8)))

	want := service.MonthlyInstallment(decimal.NewFromInt(100_000), decimal.NewFromInt(8), 12)
	assert.True(t, decision.MonthlyInstallment.Equal(want))
}

func TestEligibility_EMIBurdenRejects(t *testing.T) {
	engine := service.NewEligibilityEngine()

	// Existing installments already consume most of the salary half.
	input := newEvalInput(model.LoanHistory{
		historyLoan(1, 240_000, 12, 12, 2025), // installment 20,000
	})
	decision, err := engine.Evaluate(input)
	require.NoError(t, err)

	assert.False(t, decision.Approved)
	assert.Equal(t, service.ReasonEMIBurdenTooHigh, decision.RejectionReason)
	assert.Nil(t, decision.CorrectedRate, "affordability rejection carries no corrected rate")
}

func TestEligibility_ExposureGuardZeroesScore(t *testing.T) {
	engine := service.NewEligibilityEngine()

	// Outstanding principal above the approved limit collapses the score
	// into the rejection tier even for a spotless history. Installments
	// are kept small so the affordability guard stays out of the way.
	input := newEvalInput(model.LoanHistory{
		historyLoan(1, 1_000_000, 240, 240, 2020),
		historyLoan(2, 1_000_000, 240, 240, 2021),
	})
	decision, err := engine.Evaluate(input)
	require.NoError(t, err)

	assert.False(t, decision.Approved)
	assert.Equal(t, 0, decision.CreditScore)
	assert.Equal(t, service.ReasonLowCreditScore, decision.RejectionReason)
}

func TestEligibility_AffordabilityBeatsLadder(t *testing.T) {
	engine := service.NewEligibilityEngine()

	// Both guards fire; the affordability reason wins.
	input := newEvalInput(model.LoanHistory{
		historyLoan(1, 2_000_000, 60, 12, 2025), // installment 33,333
	})
	decision, err := engine.Evaluate(input)
	require.NoError(t, err)

	assert.False(t, decision.Approved)
	assert.Equal(t, 0, decision.CreditScore)
	assert.Equal(t, service.ReasonEMIBurdenTooHigh, decision.RejectionReason)
}

func TestEligibility_InvalidRequest(t *testing.T) {
	engine := service.NewEligibilityEngine()

	input := newEvalInput(nil)
	input.Request.TenureMonths = 0

	_, err := engine.Evaluate(input)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestEligibility_Deterministic(t *testing.T) {
	engine := service.NewEligibilityEngine()

	input := newEvalInput(model.LoanHistory{
		historyLoan(1, 100_000, 12, 12, 2024),
	})

	first, err := engine.Evaluate(input)
	require.NoError(t, err)
	second, err := engine.Evaluate(input)
	require.NoError(t, err)

	assert.Equal(t, first.Approved, second.Approved)
	assert.Equal(t, first.CreditScore, second.CreditScore)
	assert.True(t, first.MonthlyInstallment.Equal(second.MonthlyInstallment))
}
