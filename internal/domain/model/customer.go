package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Customer aggregate root
// ---------------------------------------------------------------------------

// Customer is an immutable aggregate. It is created by registration or by the
// bulk importer, and mutated only by re-import (upsert by id).
type Customer struct {
	id            int64
	firstName     string
	lastName      string
	age           int
	phoneNumber   string
	monthlySalary decimal.Decimal
	approvedLimit decimal.Decimal
	// currentDebt is a legacy informational attribute. Live loan summation
	// supersedes it; the eligibility engine never reads it.
	currentDebt decimal.Decimal
}

// NewCustomer creates a customer with a zero current debt.
func NewCustomer(
	id int64,
	firstName, lastName string,
	age int,
	phoneNumber string,
	monthlySalary, approvedLimit decimal.Decimal,
) (Customer, error) {
	if id <= 0 {
		return Customer{}, errors.New("customer id must be positive")
	}
	if firstName == "" {
		return Customer{}, errors.New("first name is required")
	}
	if age < 18 {
		return Customer{}, fmt.Errorf("age must be at least 18, got %d", age)
	}
	if monthlySalary.IsNegative() {
		return Customer{}, errors.New("monthly salary must not be negative")
	}
	if approvedLimit.IsNegative() {
		return Customer{}, errors.New("approved limit must not be negative")
	}

	return Customer{
		id:            id,
		firstName:     firstName,
		lastName:      lastName,
		age:           age,
		phoneNumber:   phoneNumber,
		monthlySalary: monthlySalary,
		approvedLimit: approvedLimit,
		currentDebt:   decimal.Zero,
	}, nil
}

// ReconstructCustomer rebuilds a Customer from persistence without validation.
func ReconstructCustomer(
	id int64,
	firstName, lastName string,
	age int,
	phoneNumber string,
	monthlySalary, approvedLimit, currentDebt decimal.Decimal,
) Customer {
	return Customer{
		id:            id,
		firstName:     firstName,
		lastName:      lastName,
		age:           age,
		phoneNumber:   phoneNumber,
		monthlySalary: monthlySalary,
		approvedLimit: approvedLimit,
		currentDebt:   currentDebt,
	}
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (c Customer) ID() int64                      { return c.id }
func (c Customer) FirstName() string              { return c.firstName }
func (c Customer) LastName() string               { return c.lastName }
func (c Customer) Age() int                       { return c.age }
func (c Customer) PhoneNumber() string            { return c.phoneNumber }
func (c Customer) MonthlySalary() decimal.Decimal { return c.monthlySalary }
func (c Customer) ApprovedLimit() decimal.Decimal { return c.approvedLimit }
func (c Customer) CurrentDebt() decimal.Decimal   { return c.currentDebt }

// Name returns the customer's full name for API responses.
func (c Customer) Name() string {
	return c.firstName + " " + c.lastName
}
