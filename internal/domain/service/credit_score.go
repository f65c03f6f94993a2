package service

import (
	"math"

	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/model"
)

// ---------------------------------------------------------------------------
// CreditScoreCalculator – pure scoring over a customer's loan history
// ---------------------------------------------------------------------------

// BaseScoreNoHistory is the fixed score for customers with no loan history:
// neutral trust for unproven applicants, neither zero nor high.
const BaseScoreNoHistory = 25

// Component weights. On-time repayment dominates; experience, recent
// engagement, and volume saturate at 20 points each.
const (
	onTimeWeight      = 40.0
	experiencePerLoan = 5.0
	recentPerLoan     = 4.0
	volumeUnit        = 100_000.0
	componentCap      = 20.0
	maxScore          = 100
)

// CreditScoreCalculator computes a 0-100 trust score from loan history.
// Deterministic and side-effect free.
type CreditScoreCalculator struct{}

// NewCreditScoreCalculator returns a new calculator instance.
func NewCreditScoreCalculator() *CreditScoreCalculator {
	return &CreditScoreCalculator{}
}

// Compute scores a history against the current calendar year.
//
// Components:
//
//	on-time ratio:   fraction of loans with emisPaidOnTime == tenure, x40
//	experience:      min(loanCount x 5, 20)
//	recent activity: min(loansStartedThisYear x 4, 20)
//	volume:          min(totalPrincipal / 100_000, 20)
//
// The sum is rounded to the nearest integer and clamped to [0,100].
func (c *CreditScoreCalculator) Compute(history model.LoanHistory, currentYear int) int {
	if len(history) == 0 {
		return BaseScoreNoHistory
	}

	fullyOnTime := 0
	startedThisYear := 0
	for _, loan := range history {
		// Strict equality: over-counted EMIs (paid > tenure) do not earn
		// the on-time component.
		if loan.EMIsPaidOnTime() == loan.TenureMonths() {
			fullyOnTime++
		}
		if loan.StartDate().Year() == currentYear {
			startedThisYear++
		}
	}

	onTime := onTimeWeight * float64(fullyOnTime) / float64(len(history))
	experience := math.Min(float64(len(history))*experiencePerLoan, componentCap)
	recent := math.Min(float64(startedThisYear)*recentPerLoan, componentCap)
	volume := math.Min(history.TotalPrincipal().InexactFloat64()/volumeUnit, componentCap)

	score := int(math.Round(onTime + experience + recent + volume))
	if score < 0 {
		return 0
	}
	if score > maxScore {
		return maxScore
	}
	return score
}
