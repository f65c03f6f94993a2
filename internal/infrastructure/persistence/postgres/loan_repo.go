package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/model"
	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/port"
)

// LoanRepo implements port.LoanRepository.
type LoanRepo struct {
	pool *pgxpool.Pool
}

// NewLoanRepo creates a new repository backed by PostgreSQL.
func NewLoanRepo(pool *pgxpool.Pool) *LoanRepo {
	return &LoanRepo{pool: pool}
}

const loanColumns = `loan_id, customer_id, loan_amount, tenure_months,
	interest_rate, monthly_installment, emis_paid_on_time, start_date, end_date`

// Save persists a loan, upserting by id for the bulk importer's
// update-or-create semantics. The creation workflow only ever inserts.
func (r *LoanRepo) Save(ctx context.Context, loan model.Loan) error {
	query := `
		INSERT INTO loans (
			loan_id, customer_id, loan_amount, tenure_months,
			interest_rate, monthly_installment, emis_paid_on_time,
			start_date, end_date
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (loan_id) DO UPDATE SET
			customer_id         = EXCLUDED.customer_id,
			loan_amount         = EXCLUDED.loan_amount,
			tenure_months       = EXCLUDED.tenure_months,
			interest_rate       = EXCLUDED.interest_rate,
			monthly_installment = EXCLUDED.monthly_installment,
			emis_paid_on_time   = EXCLUDED.emis_paid_on_time,
			start_date          = EXCLUDED.start_date,
			end_date            = EXCLUDED.end_date
	`
	_, err := querier(ctx, r.pool).Exec(ctx, query,
		loan.ID(), loan.CustomerID(), loan.Principal(), loan.TenureMonths(),
		loan.AnnualRate(), loan.MonthlyInstallment(), loan.EMIsPaidOnTime(),
		loan.StartDate(), loan.EndDate(),
	)
	if err != nil {
		return fmt.Errorf("save loan: %w", err)
	}
	return nil
}

// FindByID retrieves a single loan.
func (r *LoanRepo) FindByID(ctx context.Context, id int64) (model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1`
	loan, err := scanLoan(querier(ctx, r.pool).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Loan{}, port.ErrLoanNotFound
	}
	if err != nil {
		return model.Loan{}, err
	}
	return loan, nil
}

// FindByCustomerID retrieves a customer's loan history, newest first.
func (r *LoanRepo) FindByCustomerID(ctx context.Context, customerID int64) (model.LoanHistory, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE customer_id = $1 ORDER BY start_date DESC`
	rows, err := querier(ctx, r.pool).Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	var history model.LoanHistory
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		history = append(history, loan)
	}
	return history, rows.Err()
}

// NextID allocates the next loan id as highest-existing-plus-one.
func (r *LoanRepo) NextID(ctx context.Context) (int64, error) {
	var next int64
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT COALESCE(MAX(loan_id), 0) + 1 FROM loans`,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("allocate loan id: %w", err)
	}
	return next, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanLoan(s scannable) (model.Loan, error) {
	var (
		loanID, customerID                          int64
		principal, interestRate, monthlyInstallment decimal.Decimal
		tenureMonths, emisPaidOnTime                int
		startDate, endDate                          time.Time
	)
	err := s.Scan(
		&loanID, &customerID, &principal, &tenureMonths,
		&interestRate, &monthlyInstallment, &emisPaidOnTime,
		&startDate, &endDate,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Loan{}, err
	}
	if err != nil {
		return model.Loan{}, fmt.Errorf("scan loan: %w", err)
	}

	return model.ReconstructLoan(
		loanID, customerID, principal, interestRate, tenureMonths,
		monthlyInstallment, emisPaidOnTime, startDate, endDate,
	), nil
}
