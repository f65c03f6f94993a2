package event

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DomainEvent is the interface all domain events implement.
type DomainEvent interface {
	EventID() string
	EventType() string
	AggregateID() string
	AggregateType() string
	OccurredAt() time.Time
}

// BaseEvent provides a default DomainEvent implementation with a generated
// UUID and the current UTC time.
type BaseEvent struct {
	ID        string    `json:"event_id"`
	Type      string    `json:"event_type"`
	Aggregate string    `json:"aggregate_id"`
	Kind      string    `json:"aggregate_type"`
	At        time.Time `json:"occurred_at"`
}

func newBaseEvent(eventType string, aggregateID int64, aggregateType string) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Aggregate: strconv.FormatInt(aggregateID, 10),
		Kind:      aggregateType,
		At:        time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() string       { return e.ID }
func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) AggregateID() string   { return e.Aggregate }
func (e BaseEvent) AggregateType() string { return e.Kind }
func (e BaseEvent) OccurredAt() time.Time { return e.At }

// ---------------------------------------------------------------------------
// Customer events
// ---------------------------------------------------------------------------

// CustomerRegistered is raised when a new customer completes registration.
type CustomerRegistered struct {
	BaseEvent
	Name          string          `json:"name"`
	ApprovedLimit decimal.Decimal `json:"approved_limit"`
	CustomerID    int64           `json:"customer_id"`
}

func NewCustomerRegistered(customerID int64, name string, approvedLimit decimal.Decimal) CustomerRegistered {
	return CustomerRegistered{
		BaseEvent:     newBaseEvent("credit.customer.registered", customerID, "Customer"),
		CustomerID:    customerID,
		Name:          name,
		ApprovedLimit: approvedLimit,
	}
}

// ---------------------------------------------------------------------------
// Loan events
// ---------------------------------------------------------------------------

// LoanCreated is raised when an approved decision is materialized as a loan.
type LoanCreated struct {
	BaseEvent
	Principal          decimal.Decimal `json:"principal"`
	AnnualRate         decimal.Decimal `json:"annual_rate"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	LoanID             int64           `json:"loan_id"`
	CustomerID         int64           `json:"customer_id"`
	TenureMonths       int             `json:"tenure_months"`
}

func NewLoanCreated(
	loanID, customerID int64,
	principal, annualRate, monthlyInstallment decimal.Decimal,
	tenureMonths int,
) LoanCreated {
	return LoanCreated{
		BaseEvent:          newBaseEvent("credit.loan.created", loanID, "Loan"),
		LoanID:             loanID,
		CustomerID:         customerID,
		Principal:          principal,
		AnnualRate:         annualRate,
		MonthlyInstallment: monthlyInstallment,
		TenureMonths:       tenureMonths,
	}
}

// LoanRejected is raised when the creation workflow ends in a business
// rejection. No loan record exists for it; the aggregate is the customer.
type LoanRejected struct {
	BaseEvent
	Reason      string `json:"reason"`
	CustomerID  int64  `json:"customer_id"`
	CreditScore int    `json:"credit_score"`
}

func NewLoanRejected(customerID int64, creditScore int, reason string) LoanRejected {
	return LoanRejected{
		BaseEvent:   newBaseEvent("credit.loan.rejected", customerID, "Customer"),
		CustomerID:  customerID,
		CreditScore: creditScore,
		Reason:      reason,
	}
}
