package usecase

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TechTyphoon/Credit-Approval-System/internal/application/dto"
	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/event"
	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/model"
	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/port"
	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/service"
)

type customerRepoMock struct {
	SaveFunc     func(ctx context.Context, customer model.Customer) error
	FindByIDFunc func(ctx context.Context, id int64) (model.Customer, error)
	NextIDFunc   func(ctx context.Context) (int64, error)
}

func (m *customerRepoMock) Save(ctx context.Context, customer model.Customer) error {
	return m.SaveFunc(ctx, customer)
}

func (m *customerRepoMock) FindByID(ctx context.Context, id int64) (model.Customer, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *customerRepoMock) NextID(ctx context.Context) (int64, error) {
	return m.NextIDFunc(ctx)
}

type loanRepoMock struct {
	SaveFunc             func(ctx context.Context, loan model.Loan) error
	FindByIDFunc         func(ctx context.Context, id int64) (model.Loan, error)
	FindByCustomerIDFunc func(ctx context.Context, customerID int64) (model.LoanHistory, error)
	NextIDFunc           func(ctx context.Context) (int64, error)
}

func (m *loanRepoMock) Save(ctx context.Context, loan model.Loan) error {
	return m.SaveFunc(ctx, loan)
}

func (m *loanRepoMock) FindByID(ctx context.Context, id int64) (model.Loan, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *loanRepoMock) FindByCustomerID(ctx context.Context, customerID int64) (model.LoanHistory, error) {
	return m.FindByCustomerIDFunc(ctx, customerID)
}

func (m *loanRepoMock) NextID(ctx context.Context) (int64, error) {
	return m.NextIDFunc(ctx)
}

type txManagerMock struct{}

func (txManagerMock) Within(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (txManagerMock) WithinCustomer(ctx context.Context, _ int64, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type publisherMock struct {
	PublishFunc func(ctx context.Context, events ...event.DomainEvent) error
}

func (m *publisherMock) Publish(ctx context.Context, events ...event.DomainEvent) error {
	if m.PublishFunc == nil {
		return nil
	}
	return m.PublishFunc(ctx, events...)
}

func testCustomer(id int64, salary, limit int64) model.Customer {
	return model.ReconstructCustomer(
		id, "Aarav", "Sharma", 28, "9876543210",
		decimal.NewFromInt(salary), decimal.NewFromInt(limit), decimal.Zero,
	)
}

// ---------------------------------------------------------------------------
// RegisterCustomerUseCase
// ---------------------------------------------------------------------------

func TestRegisterCustomer_DerivesApprovedLimit(t *testing.T) {
	var saved model.Customer
	customers := &customerRepoMock{
		NextIDFunc: func(context.Context) (int64, error) { return 301, nil },
		SaveFunc: func(_ context.Context, c model.Customer) error {
			saved = c
			return nil
		},
	}
	uc := NewRegisterCustomerUseCase(customers, txManagerMock{}, &publisherMock{}, slog.Default())

	resp, err := uc.Execute(context.Background(), dto.RegisterCustomerRequest{
		FirstName:     "Aarav",
		LastName:      "Sharma",
		Age:           28,
		PhoneNumber:   "9876543210",
		MonthlyIncome: decimal.NewFromInt(50_000),
	})
	require.NoError(t, err)

	// 36 x 50,000 = 1,800,000, already a multiple of 100,000.
	assert.True(t, resp.ApprovedLimit.Equal(decimal.NewFromInt(1_800_000)))
	assert.Equal(t, int64(301), resp.CustomerID)
	assert.Equal(t, "Aarav Sharma", resp.Name)
	assert.True(t, saved.ApprovedLimit().Equal(decimal.NewFromInt(1_800_000)))
}

func TestRegisterCustomer_RoundsLimitToNearestLakh(t *testing.T) {
	customers := &customerRepoMock{
		NextIDFunc: func(context.Context) (int64, error) { return 1, nil },
		SaveFunc:   func(context.Context, model.Customer) error { return nil },
	}
	uc := NewRegisterCustomerUseCase(customers, txManagerMock{}, &publisherMock{}, slog.Default())

	// 36 x 33,333 = 1,199,988 rounds up to 1,200,000.
	resp, err := uc.Execute(context.Background(), dto.RegisterCustomerRequest{
		FirstName:     "Ishita",
		LastName:      "Verma",
		Age:           34,
		PhoneNumber:   "9123456780",
		MonthlyIncome: decimal.NewFromInt(33_333),
	})
	require.NoError(t, err)

	assert.True(t, resp.ApprovedLimit.Equal(decimal.NewFromInt(1_200_000)), "got %s", resp.ApprovedLimit)
}

func TestRegisterCustomer_InvalidInput(t *testing.T) {
	customers := &customerRepoMock{
		NextIDFunc: func(context.Context) (int64, error) { return 1, nil },
	}
	uc := NewRegisterCustomerUseCase(customers, txManagerMock{}, &publisherMock{}, slog.Default())

	_, err := uc.Execute(context.Background(), dto.RegisterCustomerRequest{
		FirstName:     "Too",
		LastName:      "Young",
		Age:           17,
		PhoneNumber:   "9000000000",
		MonthlyIncome: decimal.NewFromInt(10_000),
	})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestRegisterCustomer_PublishFailureDoesNotFail(t *testing.T) {
	customers := &customerRepoMock{
		NextIDFunc: func(context.Context) (int64, error) { return 1, nil },
		SaveFunc:   func(context.Context, model.Customer) error { return nil },
	}
	publisher := &publisherMock{
		PublishFunc: func(context.Context, ...event.DomainEvent) error {
			return errors.New("broker down")
		},
	}
	uc := NewRegisterCustomerUseCase(customers, txManagerMock{}, publisher, slog.Default())

	_, err := uc.Execute(context.Background(), dto.RegisterCustomerRequest{
		FirstName:     "Aarav",
		LastName:      "Sharma",
		Age:           28,
		PhoneNumber:   "9876543210",
		MonthlyIncome: decimal.NewFromInt(50_000),
	})
	assert.NoError(t, err)
}

// ---------------------------------------------------------------------------
// CheckEligibilityUseCase
// ---------------------------------------------------------------------------

func TestCheckEligibility_CustomerNotFound(t *testing.T) {
	customers := &customerRepoMock{
		FindByIDFunc: func(context.Context, int64) (model.Customer, error) {
			return model.Customer{}, port.ErrCustomerNotFound
		},
	}
	uc := NewCheckEligibilityUseCase(customers, &loanRepoMock{}, service.NewEligibilityEngine(), slog.Default())

	_, err := uc.Execute(context.Background(), dto.LoanRequest{
		CustomerID:   99,
		LoanAmount:   decimal.NewFromInt(100_000),
		InterestRate: decimal.NewFromInt(10),
		Tenure:       12,
	})
	assert.ErrorIs(t, err, port.ErrCustomerNotFound)
}

func TestCheckEligibility_NewCustomerCorrectedRate(t *testing.T) {
	customers := &customerRepoMock{
		FindByIDFunc: func(_ context.Context, id int64) (model.Customer, error) {
			return testCustomer(id, 50_000, 1_800_000), nil
		},
	}
	loans := &loanRepoMock{
		FindByCustomerIDFunc: func(context.Context, int64) (model.LoanHistory, error) {
			return nil, nil
		},
	}
	uc := NewCheckEligibilityUseCase(customers, loans, service.NewEligibilityEngine(), slog.Default())

	resp, err := uc.Execute(context.Background(), dto.LoanRequest{
		CustomerID:   1,
		LoanAmount:   decimal.NewFromInt(100_000),
		InterestRate: decimal.NewFromInt(8),
		Tenure:       12,
	})
	require.NoError(t, err)

	assert.True(t, resp.Approval)
	assert.Equal(t, 25, resp.CreditScore)
	require.NotNil(t, resp.CorrectedInterestRate)
	assert.True(t, resp.CorrectedInterestRate.Equal(decimal.NewFromInt(16)))
	assert.True(t, resp.InterestRate.Equal(decimal.NewFromInt(8)))
}

// ---------------------------------------------------------------------------
// CreateLoanUseCase
// ---------------------------------------------------------------------------

func TestCreateLoan_Approved(t *testing.T) {
	customers := &customerRepoMock{
		FindByIDFunc: func(_ context.Context, id int64) (model.Customer, error) {
			return testCustomer(id, 50_000, 1_800_000), nil
		},
	}

	var saved model.Loan
	loans := &loanRepoMock{
		FindByCustomerIDFunc: func(context.Context, int64) (model.LoanHistory, error) {
			return nil, nil
		},
		NextIDFunc: func(context.Context) (int64, error) { return 501, nil },
		SaveFunc: func(_ context.Context, l model.Loan) error {
			saved = l
			return nil
		},
	}

	var published []event.DomainEvent
	publisher := &publisherMock{
		PublishFunc: func(_ context.Context, events ...event.DomainEvent) error {
			published = append(published, events...)
			return nil
		},
	}

	uc := NewCreateLoanUseCase(customers, loans, txManagerMock{}, publisher,
		service.NewEligibilityEngine(), slog.Default())

	resp, err := uc.Execute(context.Background(), dto.LoanRequest{
		CustomerID:   1,
		LoanAmount:   decimal.NewFromInt(100_000),
		InterestRate: decimal.NewFromInt(8),
		Tenure:       12,
	})
	require.NoError(t, err)

	assert.True(t, resp.LoanApproved)
	require.NotNil(t, resp.LoanID)
	assert.Equal(t, int64(501), *resp.LoanID)

	// New customer lands in the 16% floor tier; the materialized loan
	// carries the corrected rate and its installment.
	assert.True(t, saved.AnnualRate().Equal(decimal.NewFromInt(16)))
	assert.Equal(t, 0, saved.EMIsPaidOnTime())
	assert.Equal(t, saved.StartDate().AddDate(0, 0, 360), saved.EndDate())

	require.Len(t, published, 1)
	assert.Equal(t, "credit.loan.created", published[0].EventType())
}

func TestCreateLoan_RejectionPersistsNothing(t *testing.T) {
	customers := &customerRepoMock{
		FindByIDFunc: func(_ context.Context, id int64) (model.Customer, error) {
			// Salary too small for the requested installment.
			return testCustomer(id, 10_000, 1_800_000), nil
		},
	}
	loans := &loanRepoMock{
		FindByCustomerIDFunc: func(context.Context, int64) (model.LoanHistory, error) {
			return nil, nil
		},
		NextIDFunc: func(context.Context) (int64, error) {
			t.Fatal("rejected request must not allocate a loan id")
			return 0, nil
		},
		SaveFunc: func(context.Context, model.Loan) error {
			t.Fatal("rejected request must not persist a loan")
			return nil
		},
	}

	var published []event.DomainEvent
	publisher := &publisherMock{
		PublishFunc: func(_ context.Context, events ...event.DomainEvent) error {
			published = append(published, events...)
			return nil
		},
	}

	uc := NewCreateLoanUseCase(customers, loans, txManagerMock{}, publisher,
		service.NewEligibilityEngine(), slog.Default())

	resp, err := uc.Execute(context.Background(), dto.LoanRequest{
		CustomerID:   1,
		LoanAmount:   decimal.NewFromInt(1_000_000),
		InterestRate: decimal.NewFromInt(16),
		Tenure:       12,
	})
	require.NoError(t, err)

	assert.False(t, resp.LoanApproved)
	assert.Nil(t, resp.LoanID)
	assert.Equal(t, service.ReasonEMIBurdenTooHigh, resp.Message)

	require.Len(t, published, 1)
	assert.Equal(t, "credit.loan.rejected", published[0].EventType())
}

func TestCreateLoan_SaveFailurePropagates(t *testing.T) {
	customers := &customerRepoMock{
		FindByIDFunc: func(_ context.Context, id int64) (model.Customer, error) {
			return testCustomer(id, 50_000, 1_800_000), nil
		},
	}
	loans := &loanRepoMock{
		FindByCustomerIDFunc: func(context.Context, int64) (model.LoanHistory, error) {
			return nil, nil
		},
		NextIDFunc: func(context.Context) (int64, error) { return 501, nil },
		SaveFunc: func(context.Context, model.Loan) error {
			return errors.New("connection reset")
		},
	}

	uc := NewCreateLoanUseCase(customers, loans, txManagerMock{}, &publisherMock{},
		service.NewEligibilityEngine(), slog.Default())

	_, err := uc.Execute(context.Background(), dto.LoanRequest{
		CustomerID:   1,
		LoanAmount:   decimal.NewFromInt(100_000),
		InterestRate: decimal.NewFromInt(8),
		Tenure:       12,
	})
	assert.ErrorContains(t, err, "save loan")
}

// ---------------------------------------------------------------------------
// View use cases
// ---------------------------------------------------------------------------

func TestGetLoan(t *testing.T) {
	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	loans := &loanRepoMock{
		FindByIDFunc: func(_ context.Context, id int64) (model.Loan, error) {
			return model.ReconstructLoan(
				id, 1,
				decimal.NewFromInt(100_000), decimal.NewFromInt(16), 12,
				decimal.RequireFromString("9073.09"), 3,
				start, start.AddDate(0, 0, 360),
			), nil
		},
	}
	customers := &customerRepoMock{
		FindByIDFunc: func(_ context.Context, id int64) (model.Customer, error) {
			return testCustomer(id, 50_000, 1_800_000), nil
		},
	}

	uc := NewGetLoanUseCase(loans, customers)

	resp, err := uc.Execute(context.Background(), 501)
	require.NoError(t, err)

	assert.Equal(t, int64(501), resp.LoanID)
	assert.Equal(t, "Aarav", resp.Customer.FirstName)
	assert.Equal(t, 12, resp.Tenure)
	assert.Equal(t, start, resp.StartDate)
}

func TestGetLoan_NotFound(t *testing.T) {
	loans := &loanRepoMock{
		FindByIDFunc: func(context.Context, int64) (model.Loan, error) {
			return model.Loan{}, port.ErrLoanNotFound
		},
	}

	uc := NewGetLoanUseCase(loans, &customerRepoMock{})

	_, err := uc.Execute(context.Background(), 404)
	assert.ErrorIs(t, err, port.ErrLoanNotFound)
}

func TestListCustomerLoans_ClampsRepaymentsLeft(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	customers := &customerRepoMock{
		FindByIDFunc: func(_ context.Context, id int64) (model.Customer, error) {
			return testCustomer(id, 50_000, 1_800_000), nil
		},
	}
	loans := &loanRepoMock{
		FindByCustomerIDFunc: func(context.Context, int64) (model.LoanHistory, error) {
			return model.LoanHistory{
				// Imported record with more on-time EMIs than tenure.
				model.ReconstructLoan(1, 1,
					decimal.NewFromInt(100_000), decimal.NewFromInt(12), 12,
					decimal.NewFromInt(8884), 19,
					start, start.AddDate(0, 0, 360)),
				model.ReconstructLoan(2, 1,
					decimal.NewFromInt(200_000), decimal.NewFromInt(14), 24,
					decimal.NewFromInt(9602), 6,
					start, start.AddDate(0, 0, 720)),
			}, nil
		},
	}

	uc := NewListCustomerLoansUseCase(loans, customers)

	items, err := uc.Execute(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, 0, items[0].RepaymentsLeft)
	assert.Equal(t, 18, items[1].RepaymentsLeft)
}

func TestListCustomerLoans_CustomerMustExist(t *testing.T) {
	customers := &customerRepoMock{
		FindByIDFunc: func(context.Context, int64) (model.Customer, error) {
			return model.Customer{}, port.ErrCustomerNotFound
		},
	}

	uc := NewListCustomerLoansUseCase(&loanRepoMock{}, customers)

	_, err := uc.Execute(context.Background(), 99)
	assert.ErrorIs(t, err, port.ErrCustomerNotFound)
}
