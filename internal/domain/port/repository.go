package port

import (
	"context"
	"errors"

	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/event"
	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/model"
)

// Storage sentinels. Not-found must propagate; the engine cannot guess a
// default customer.
var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrLoanNotFound     = errors.New("loan not found")
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// CustomerRepository persists and retrieves customers. Save is an upsert by
// customer id, which is what re-import relies on.
type CustomerRepository interface {
	Save(ctx context.Context, customer model.Customer) error
	FindByID(ctx context.Context, id int64) (model.Customer, error)
	NextID(ctx context.Context) (int64, error)
}

// LoanRepository persists and retrieves loans. Save is an upsert by loan id.
type LoanRepository interface {
	Save(ctx context.Context, loan model.Loan) error
	FindByID(ctx context.Context, id int64) (model.Loan, error)
	FindByCustomerID(ctx context.Context, customerID int64) (model.LoanHistory, error)
	NextID(ctx context.Context) (int64, error)
}

// ---------------------------------------------------------------------------
// Transaction port
// ---------------------------------------------------------------------------

// TxManager scopes repository calls to a single transaction. WithinCustomer
// additionally serializes concurrent evaluations for the same customer, the
// external contract the creation workflow requires: evaluate-then-create is
// atomic per customer.
type TxManager interface {
	Within(ctx context.Context, fn func(ctx context.Context) error) error
	WithinCustomer(ctx context.Context, customerID int64, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
