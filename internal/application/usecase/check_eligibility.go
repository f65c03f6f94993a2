package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/TechTyphoon/Credit-Approval-System/internal/application/dto"
	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/model"
	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/port"
	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/service"
)

// CheckEligibilityUseCase runs the read-only inquiry workflow: same decision
// sequence as loan creation, no mutation.
type CheckEligibilityUseCase struct {
	customerRepo port.CustomerRepository
	loanRepo     port.LoanRepository
	engine       *service.EligibilityEngine
	logger       *slog.Logger
}

// NewCheckEligibilityUseCase wires dependencies.
func NewCheckEligibilityUseCase(
	customerRepo port.CustomerRepository,
	loanRepo port.LoanRepository,
	engine *service.EligibilityEngine,
	logger *slog.Logger,
) *CheckEligibilityUseCase {
	return &CheckEligibilityUseCase{
		customerRepo: customerRepo,
		loanRepo:     loanRepo,
		engine:       engine,
		logger:       logger,
	}
}

// Execute evaluates a proposed loan against the customer's current snapshot.
func (uc *CheckEligibilityUseCase) Execute(
	ctx context.Context,
	req dto.LoanRequest,
) (dto.EligibilityResponse, error) {
	decision, err := evaluate(ctx, uc.customerRepo, uc.loanRepo, uc.engine, req, time.Now().UTC())
	if err != nil {
		return dto.EligibilityResponse{}, err
	}

	uc.logger.InfoContext(ctx, "eligibility evaluated",
		"customer_id", req.CustomerID,
		"credit_score", decision.CreditScore,
		"approved", decision.Approved,
		"reason", decision.RejectionReason,
	)
	recordDecision("check_eligibility", decision.Approved)

	return toEligibilityResponse(req, decision), nil
}

// evaluate is the shared load-then-decide sequence of the inquiry and
// creation workflows: fresh history snapshot, pure engine evaluation.
func evaluate(
	ctx context.Context,
	customerRepo port.CustomerRepository,
	loanRepo port.LoanRepository,
	engine *service.EligibilityEngine,
	req dto.LoanRequest,
	now time.Time,
) (service.Decision, error) {
	customer, err := customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return service.Decision{}, fmt.Errorf("find customer: %w", err)
	}

	history, err := loanRepo.FindByCustomerID(ctx, req.CustomerID)
	if err != nil {
		return service.Decision{}, fmt.Errorf("load loan history: %w", err)
	}

	decision, err := engine.Evaluate(service.EvaluationInput{
		MonthlySalary: customer.MonthlySalary(),
		ApprovedLimit: customer.ApprovedLimit(),
		History:       history,
		Request: model.LoanRequest{
			CustomerID:   req.CustomerID,
			Principal:    req.LoanAmount,
			AnnualRate:   req.InterestRate,
			TenureMonths: req.Tenure,
		},
		Now: now,
	})
	if err != nil {
		return service.Decision{}, fmt.Errorf("evaluate eligibility: %w", err)
	}
	return decision, nil
}

func toEligibilityResponse(req dto.LoanRequest, d service.Decision) dto.EligibilityResponse {
	return dto.EligibilityResponse{
		CustomerID:            req.CustomerID,
		Approval:              d.Approved,
		InterestRate:          d.RequestedRate,
		CorrectedInterestRate: d.CorrectedRate,
		Tenure:                req.Tenure,
		MonthlyInstallment:    d.MonthlyInstallment,
		CreditScore:           d.CreditScore,
	}
}
