package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/model"
	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/port"
)

// CustomerRepo implements port.CustomerRepository.
type CustomerRepo struct {
	pool *pgxpool.Pool
}

// NewCustomerRepo creates a new repository backed by PostgreSQL.
func NewCustomerRepo(pool *pgxpool.Pool) *CustomerRepo {
	return &CustomerRepo{pool: pool}
}

// Save persists a customer, upserting by id. Re-import overwrites every
// field, matching the bulk importer's update-or-create semantics.
func (r *CustomerRepo) Save(ctx context.Context, customer model.Customer) error {
	query := `
		INSERT INTO customers (
			customer_id, first_name, last_name, age, phone_number,
			monthly_salary, approved_limit, current_debt
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (customer_id) DO UPDATE SET
			first_name     = EXCLUDED.first_name,
			last_name      = EXCLUDED.last_name,
			age            = EXCLUDED.age,
			phone_number   = EXCLUDED.phone_number,
			monthly_salary = EXCLUDED.monthly_salary,
			approved_limit = EXCLUDED.approved_limit,
			current_debt   = EXCLUDED.current_debt
	`
	_, err := querier(ctx, r.pool).Exec(ctx, query,
		customer.ID(), customer.FirstName(), customer.LastName(),
		customer.Age(), customer.PhoneNumber(),
		customer.MonthlySalary(), customer.ApprovedLimit(), customer.CurrentDebt(),
	)
	if err != nil {
		return fmt.Errorf("save customer: %w", err)
	}
	return nil
}

// FindByID retrieves a single customer.
func (r *CustomerRepo) FindByID(ctx context.Context, id int64) (model.Customer, error) {
	query := `
		SELECT customer_id, first_name, last_name, age, phone_number,
		       monthly_salary, approved_limit, current_debt
		FROM customers
		WHERE customer_id = $1
	`
	row := querier(ctx, r.pool).QueryRow(ctx, query, id)

	var (
		customerID                                int64
		firstName, lastName, phoneNumber          string
		age                                       int
		monthlySalary, approvedLimit, currentDebt decimal.Decimal
	)
	err := row.Scan(
		&customerID, &firstName, &lastName, &age, &phoneNumber,
		&monthlySalary, &approvedLimit, &currentDebt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Customer{}, port.ErrCustomerNotFound
	}
	if err != nil {
		return model.Customer{}, fmt.Errorf("scan customer: %w", err)
	}

	return model.ReconstructCustomer(
		customerID, firstName, lastName, age, phoneNumber,
		monthlySalary, approvedLimit, currentDebt,
	), nil
}

// NextID allocates the next customer id as highest-existing-plus-one.
func (r *CustomerRepo) NextID(ctx context.Context) (int64, error) {
	var next int64
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT COALESCE(MAX(customer_id), 0) + 1 FROM customers`,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("allocate customer id: %w", err)
	}
	return next, nil
}
