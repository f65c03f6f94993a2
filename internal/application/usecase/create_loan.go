package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/TechTyphoon/Credit-Approval-System/internal/application/dto"
	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/event"
	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/model"
	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/port"
	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/service"
)

// CreateLoanUseCase runs the mutating creation workflow: evaluate, and on
// approval materialize the Decision as a new Loan. The whole read-decide-
// write sequence executes inside a per-customer transaction scope so two
// concurrent requests cannot both pass the affordability guard against a
// stale snapshot.
type CreateLoanUseCase struct {
	customerRepo port.CustomerRepository
	loanRepo     port.LoanRepository
	tx           port.TxManager
	publisher    port.EventPublisher
	engine       *service.EligibilityEngine
	logger       *slog.Logger
}

// NewCreateLoanUseCase wires dependencies.
func NewCreateLoanUseCase(
	customerRepo port.CustomerRepository,
	loanRepo port.LoanRepository,
	tx port.TxManager,
	publisher port.EventPublisher,
	engine *service.EligibilityEngine,
	logger *slog.Logger,
) *CreateLoanUseCase {
	return &CreateLoanUseCase{
		customerRepo: customerRepo,
		loanRepo:     loanRepo,
		tx:           tx,
		publisher:    publisher,
		engine:       engine,
		logger:       logger,
	}
}

// Execute evaluates the request and, if approved, persists the new loan with
// the decision's final rate and installment. Rejection performs no mutation.
func (uc *CreateLoanUseCase) Execute(
	ctx context.Context,
	req dto.LoanRequest,
) (dto.CreateLoanResponse, error) {
	var (
		decision service.Decision
		created  model.Loan
	)

	err := uc.tx.WithinCustomer(ctx, req.CustomerID, func(ctx context.Context) error {
		now := time.Now().UTC()

		var err error
		decision, err = evaluate(ctx, uc.customerRepo, uc.loanRepo, uc.engine, req, now)
		if err != nil {
			return err
		}
		if !decision.Approved {
			return nil
		}

		loanID, err := uc.loanRepo.NextID(ctx)
		if err != nil {
			return fmt.Errorf("allocate loan id: %w", err)
		}

		created, err = model.NewLoan(
			loanID, req.CustomerID,
			req.LoanAmount,
			decision.FinalRate(),
			req.Tenure,
			decision.MonthlyInstallment,
			now,
		)
		if err != nil {
			return fmt.Errorf("build loan: %w", err)
		}

		if err := uc.loanRepo.Save(ctx, created); err != nil {
			return fmt.Errorf("save loan: %w", err)
		}
		return nil
	})
	if err != nil {
		return dto.CreateLoanResponse{}, err
	}

	recordDecision("create_loan", decision.Approved)

	if !decision.Approved {
		uc.logger.InfoContext(ctx, "loan creation rejected",
			"customer_id", req.CustomerID,
			"credit_score", decision.CreditScore,
			"reason", decision.RejectionReason,
		)
		uc.publishEvents(ctx, event.NewLoanRejected(req.CustomerID, decision.CreditScore, decision.RejectionReason))
		return dto.CreateLoanResponse{
			CustomerID:         req.CustomerID,
			LoanApproved:       false,
			Message:            decision.RejectionReason,
			MonthlyInstallment: decision.MonthlyInstallment,
		}, nil
	}

	uc.logger.InfoContext(ctx, "loan created",
		"loan_id", created.ID(),
		"customer_id", req.CustomerID,
		"interest_rate", created.AnnualRate(),
		"monthly_installment", created.MonthlyInstallment(),
	)
	uc.publishEvents(ctx, event.NewLoanCreated(
		created.ID(), req.CustomerID,
		created.Principal(), created.AnnualRate(), created.MonthlyInstallment(),
		created.TenureMonths(),
	))

	loanID := created.ID()
	return dto.CreateLoanResponse{
		LoanID:             &loanID,
		CustomerID:         req.CustomerID,
		LoanApproved:       true,
		Message:            "loan approved",
		MonthlyInstallment: created.MonthlyInstallment(),
	}, nil
}

// publishEvents is best-effort: the loan is already durable, so a publish
// failure is logged rather than surfaced to the caller.
func (uc *CreateLoanUseCase) publishEvents(ctx context.Context, events ...event.DomainEvent) {
	if err := uc.publisher.Publish(ctx, events...); err != nil {
		uc.logger.WarnContext(ctx, "failed to publish domain events", "error", err)
	}
}
