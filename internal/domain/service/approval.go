package service

import "github.com/shopspring/decimal"

// ---------------------------------------------------------------------------
// ApprovalRuleEngine – score-tier rate ladder
// ---------------------------------------------------------------------------

// ApprovalOutcome is the result of evaluating the rate ladder.
type ApprovalOutcome struct {
	// CorrectedRate is set when the requested rate sits at or below the
	// tier's floor; the loan is still approved, at the floor rate.
	CorrectedRate *decimal.Decimal
	Approved      bool
}

// rateTier is one row of the ladder. Lower bounds are exclusive: a score of
// exactly 50 does not reach the top tier.
type rateTier struct {
	scoreAbove  int
	minimumRate decimal.Decimal // zero value means no floor
	hasFloor    bool
}

// ApprovalRuleEngine maps (credit score, requested rate) to a decision.
// Middle tiers price risk instead of refusing it: the requested rate is
// raised to the tier floor, never rejected for being too low. Only the
// bottom tier rejects outright.
type ApprovalRuleEngine struct {
	ladder []rateTier
}

// NewApprovalRuleEngine returns an engine with the standard three-tier ladder:
//
//	score > 50:      approve at the requested rate
//	30 < score <= 50: approve, floor 12%
//	10 < score <= 30: approve, floor 16%
//	score <= 10:     reject
func NewApprovalRuleEngine() *ApprovalRuleEngine {
	return &ApprovalRuleEngine{
		ladder: []rateTier{
			{scoreAbove: 50},
			{scoreAbove: 30, minimumRate: decimal.NewFromInt(12), hasFloor: true},
			{scoreAbove: 10, minimumRate: decimal.NewFromInt(16), hasFloor: true},
		},
	}
}

// Evaluate walks the ladder top-down; the first tier whose exclusive lower
// bound the score clears wins. A score clearing no tier is rejected.
func (e *ApprovalRuleEngine) Evaluate(creditScore int, requestedRate decimal.Decimal) ApprovalOutcome {
	for _, tier := range e.ladder {
		if creditScore <= tier.scoreAbove {
			continue
		}
		if tier.hasFloor && !requestedRate.GreaterThan(tier.minimumRate) {
			corrected := tier.minimumRate
			return ApprovalOutcome{Approved: true, CorrectedRate: &corrected}
		}
		return ApprovalOutcome{Approved: true}
	}
	return ApprovalOutcome{Approved: false}
}
