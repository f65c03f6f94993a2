package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/TechTyphoon/Credit-Approval-System/internal/application/dto"
	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/event"
	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/model"
	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/port"
)

// approvedLimitMultiple: a new customer is pre-authorized for 36 months of
// salary, rounded to the nearest 100,000.
var (
	approvedLimitMultiple = decimal.NewFromInt(36)
	limitRoundingUnit     = decimal.NewFromInt(100_000)
)

// RegisterCustomerUseCase creates a new customer with a derived approved
// credit limit.
type RegisterCustomerUseCase struct {
	customerRepo port.CustomerRepository
	tx           port.TxManager
	publisher    port.EventPublisher
	logger       *slog.Logger
}

// NewRegisterCustomerUseCase wires dependencies.
func NewRegisterCustomerUseCase(
	customerRepo port.CustomerRepository,
	tx port.TxManager,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *RegisterCustomerUseCase {
	return &RegisterCustomerUseCase{
		customerRepo: customerRepo,
		tx:           tx,
		publisher:    publisher,
		logger:       logger,
	}
}

// Execute allocates a customer id, derives the approved limit, and persists
// the customer.
func (uc *RegisterCustomerUseCase) Execute(
	ctx context.Context,
	req dto.RegisterCustomerRequest,
) (dto.CustomerResponse, error) {
	approvedLimit := roundToNearest(req.MonthlyIncome.Mul(approvedLimitMultiple), limitRoundingUnit)

	var customer model.Customer
	err := uc.tx.Within(ctx, func(ctx context.Context) error {
		id, err := uc.customerRepo.NextID(ctx)
		if err != nil {
			return fmt.Errorf("allocate customer id: %w", err)
		}

		customer, err = model.NewCustomer(
			id,
			req.FirstName, req.LastName,
			req.Age,
			req.PhoneNumber,
			req.MonthlyIncome,
			approvedLimit,
		)
		if err != nil {
			return fmt.Errorf("%w: %w", model.ErrInvalidInput, err)
		}

		if err := uc.customerRepo.Save(ctx, customer); err != nil {
			return fmt.Errorf("save customer: %w", err)
		}
		return nil
	})
	if err != nil {
		return dto.CustomerResponse{}, err
	}

	uc.logger.InfoContext(ctx, "customer registered",
		"customer_id", customer.ID(),
		"approved_limit", customer.ApprovedLimit(),
	)
	if err := uc.publisher.Publish(ctx, event.NewCustomerRegistered(customer.ID(), customer.Name(), customer.ApprovedLimit())); err != nil {
		uc.logger.WarnContext(ctx, "failed to publish domain events", "error", err)
	}

	return dto.CustomerResponse{
		CustomerID:    customer.ID(),
		Name:          customer.Name(),
		Age:           customer.Age(),
		MonthlyIncome: customer.MonthlySalary(),
		ApprovedLimit: customer.ApprovedLimit(),
		PhoneNumber:   customer.PhoneNumber(),
	}, nil
}

// roundToNearest rounds amount to the nearest multiple of unit, halves up.
func roundToNearest(amount, unit decimal.Decimal) decimal.Decimal {
	return amount.Div(unit).Round(0).Mul(unit)
}
