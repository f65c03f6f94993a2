package usecase

import (
	"context"
	"fmt"

	"github.com/TechTyphoon/Credit-Approval-System/internal/application/dto"
	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/port"
)

// GetLoanUseCase retrieves a single loan with its customer block.
type GetLoanUseCase struct {
	loanRepo     port.LoanRepository
	customerRepo port.CustomerRepository
}

// NewGetLoanUseCase wires dependencies.
func NewGetLoanUseCase(loanRepo port.LoanRepository, customerRepo port.CustomerRepository) *GetLoanUseCase {
	return &GetLoanUseCase{loanRepo: loanRepo, customerRepo: customerRepo}
}

// Execute returns the loan detail for the given loan id.
func (uc *GetLoanUseCase) Execute(ctx context.Context, loanID int64) (dto.LoanDetailResponse, error) {
	loan, err := uc.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return dto.LoanDetailResponse{}, fmt.Errorf("find loan: %w", err)
	}

	customer, err := uc.customerRepo.FindByID(ctx, loan.CustomerID())
	if err != nil {
		return dto.LoanDetailResponse{}, fmt.Errorf("find customer: %w", err)
	}

	return dto.LoanDetailResponse{
		LoanID: loan.ID(),
		Customer: dto.CustomerSummary{
			ID:          customer.ID(),
			FirstName:   customer.FirstName(),
			LastName:    customer.LastName(),
			PhoneNumber: customer.PhoneNumber(),
			Age:         customer.Age(),
		},
		LoanAmount:         loan.Principal(),
		InterestRate:       loan.AnnualRate(),
		MonthlyInstallment: loan.MonthlyInstallment(),
		Tenure:             loan.TenureMonths(),
		StartDate:          loan.StartDate(),
		EndDate:            loan.EndDate(),
	}, nil
}

// ListCustomerLoansUseCase lists all loans of one customer.
type ListCustomerLoansUseCase struct {
	loanRepo     port.LoanRepository
	customerRepo port.CustomerRepository
}

// NewListCustomerLoansUseCase wires dependencies.
func NewListCustomerLoansUseCase(loanRepo port.LoanRepository, customerRepo port.CustomerRepository) *ListCustomerLoansUseCase {
	return &ListCustomerLoansUseCase{loanRepo: loanRepo, customerRepo: customerRepo}
}

// Execute returns the loan items for the given customer id. The customer
// must exist; an empty loan list is a valid result.
func (uc *ListCustomerLoansUseCase) Execute(ctx context.Context, customerID int64) ([]dto.LoanItemResponse, error) {
	if _, err := uc.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}

	history, err := uc.loanRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("load loan history: %w", err)
	}

	items := make([]dto.LoanItemResponse, 0, len(history))
	for _, loan := range history {
		// Clamp here, not in the scoring engine: imported records may show
		// more on-time EMIs than the tenure.
		left := loan.TenureMonths() - loan.EMIsPaidOnTime()
		if left < 0 {
			left = 0
		}
		items = append(items, dto.LoanItemResponse{
			LoanID:             loan.ID(),
			LoanAmount:         loan.Principal(),
			InterestRate:       loan.AnnualRate(),
			MonthlyInstallment: loan.MonthlyInstallment(),
			RepaymentsLeft:     left,
		})
	}
	return items, nil
}
