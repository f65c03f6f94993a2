package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/model"
	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/port"
)

// maxReportedErrors caps the row errors carried in a Summary; the full count
// is always reported, the messages are a sample for review.
const maxReportedErrors = 10

// Summary reports the outcome of one ingestion run.
type Summary struct {
	Errors         []string `json:"errors"`
	TotalProcessed int      `json:"total_processed"`
	Succeeded      int      `json:"success_count"`
	Failed         int      `json:"error_count"`
}

func (s *Summary) recordError(rowNum int, err error) {
	s.Failed++
	if len(s.Errors) < maxReportedErrors {
		s.Errors = append(s.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
	}
}

// Service ingests customer and loan records from spreadsheet files, upserting
// by id. Each file is applied inside a single transaction; bad rows are
// skipped and collected, they do not abort the run.
type Service struct {
	customerRepo port.CustomerRepository
	loanRepo     port.LoanRepository
	tx           port.TxManager
	logger       *slog.Logger
}

// NewService wires dependencies.
func NewService(
	customerRepo port.CustomerRepository,
	loanRepo port.LoanRepository,
	tx port.TxManager,
	logger *slog.Logger,
) *Service {
	return &Service{
		customerRepo: customerRepo,
		loanRepo:     loanRepo,
		tx:           tx,
		logger:       logger,
	}
}

// IngestCustomers imports customer records from an XLSX file.
func (s *Service) IngestCustomers(ctx context.Context, path string) (Summary, error) {
	sh, err := readSheet(path)
	if err != nil {
		return Summary{}, err
	}

	s.logger.InfoContext(ctx, "starting customer ingestion", "file", path, "rows", len(sh.rows))

	summary := Summary{TotalProcessed: len(sh.rows)}
	err = s.tx.Within(ctx, func(ctx context.Context) error {
		for i, row := range sh.rows {
			rowNum := i + 2 // 1-based, after the header row

			customer, err := parseCustomerRow(sh, row)
			if err != nil {
				summary.recordError(rowNum, err)
				continue
			}
			if err := s.customerRepo.Save(ctx, customer); err != nil {
				summary.recordError(rowNum, err)
				continue
			}
			summary.Succeeded++
		}
		return nil
	})
	if err != nil {
		return Summary{}, fmt.Errorf("ingest customers: %w", err)
	}

	s.logger.InfoContext(ctx, "customer ingestion completed",
		"succeeded", summary.Succeeded, "failed", summary.Failed)
	ingestedRows.WithLabelValues("customers").Add(float64(summary.Succeeded))
	return summary, nil
}

// IngestLoans imports loan records from an XLSX file. Rows referencing an
// unknown customer are row errors, not fatal ones: the original data set
// interleaves such records.
func (s *Service) IngestLoans(ctx context.Context, path string) (Summary, error) {
	sh, err := readSheet(path)
	if err != nil {
		return Summary{}, err
	}

	s.logger.InfoContext(ctx, "starting loan ingestion", "file", path, "rows", len(sh.rows))

	summary := Summary{TotalProcessed: len(sh.rows)}
	err = s.tx.Within(ctx, func(ctx context.Context) error {
		for i, row := range sh.rows {
			rowNum := i + 2

			loan, err := parseLoanRow(sh, row)
			if err != nil {
				summary.recordError(rowNum, err)
				continue
			}
			if _, err := s.customerRepo.FindByID(ctx, loan.CustomerID()); err != nil {
				summary.recordError(rowNum, fmt.Errorf("customer %d: %w", loan.CustomerID(), err))
				continue
			}
			if err := s.loanRepo.Save(ctx, loan); err != nil {
				summary.recordError(rowNum, err)
				continue
			}
			summary.Succeeded++
		}
		return nil
	})
	if err != nil {
		return Summary{}, fmt.Errorf("ingest loans: %w", err)
	}

	s.logger.InfoContext(ctx, "loan ingestion completed",
		"succeeded", summary.Succeeded, "failed", summary.Failed)
	ingestedRows.WithLabelValues("loans").Add(float64(summary.Succeeded))
	return summary, nil
}

// IngestAll imports customers first, then the loans that reference them.
func (s *Service) IngestAll(ctx context.Context, customersPath, loansPath string) (customers, loans Summary, err error) {
	customers, err = s.IngestCustomers(ctx, customersPath)
	if err != nil {
		return Summary{}, Summary{}, err
	}
	loans, err = s.IngestLoans(ctx, loansPath)
	if err != nil {
		return Summary{}, Summary{}, err
	}
	return customers, loans, nil
}

// ---------------------------------------------------------------------------
// row parsing
// ---------------------------------------------------------------------------

// Column headers as they appear in the source spreadsheets.
const (
	colCustomerID    = "Customer ID"
	colFirstName     = "First Name"
	colLastName      = "Last Name"
	colAge           = "Age"
	colPhoneNumber   = "Phone Number"
	colMonthlySalary = "Monthly Salary"
	colApprovedLimit = "Approved Limit"

	colLoanID         = "Loan ID"
	colLoanAmount     = "Loan Amount"
	colTenure         = "Tenure"
	colInterestRate   = "Interest Rate"
	colMonthlyPayment = "Monthly payment"
	colEMIsOnTime     = "EMIs paid on Time"
	colStartDate      = "Date of Approval"
	colEndDate        = "End Date"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/06",
	"01/02/2006",
}

func parseCustomerRow(sh *sheet, row []string) (model.Customer, error) {
	id, err := cellInt64(sh, row, colCustomerID)
	if err != nil {
		return model.Customer{}, err
	}
	firstName, err := sh.cell(row, colFirstName)
	if err != nil {
		return model.Customer{}, err
	}
	lastName, err := sh.cell(row, colLastName)
	if err != nil {
		return model.Customer{}, err
	}
	age, err := cellInt(sh, row, colAge)
	if err != nil {
		return model.Customer{}, err
	}
	phone, err := sh.cell(row, colPhoneNumber)
	if err != nil {
		return model.Customer{}, err
	}
	salary, err := cellDecimal(sh, row, colMonthlySalary)
	if err != nil {
		return model.Customer{}, err
	}
	limit, err := cellDecimal(sh, row, colApprovedLimit)
	if err != nil {
		return model.Customer{}, err
	}

	return model.NewCustomer(id, firstName, lastName, age, phone, salary, limit)
}

func parseLoanRow(sh *sheet, row []string) (model.Loan, error) {
	customerID, err := cellInt64(sh, row, colCustomerID)
	if err != nil {
		return model.Loan{}, err
	}
	loanID, err := cellInt64(sh, row, colLoanID)
	if err != nil {
		return model.Loan{}, err
	}
	amount, err := cellDecimal(sh, row, colLoanAmount)
	if err != nil {
		return model.Loan{}, err
	}
	tenure, err := cellInt(sh, row, colTenure)
	if err != nil {
		return model.Loan{}, err
	}
	rate, err := cellDecimal(sh, row, colInterestRate)
	if err != nil {
		return model.Loan{}, err
	}
	installment, err := cellDecimal(sh, row, colMonthlyPayment)
	if err != nil {
		return model.Loan{}, err
	}
	emisOnTime, err := cellInt(sh, row, colEMIsOnTime)
	if err != nil {
		return model.Loan{}, err
	}
	startDate, err := cellDate(sh, row, colStartDate)
	if err != nil {
		return model.Loan{}, err
	}
	endDate, err := cellDate(sh, row, colEndDate)
	if err != nil {
		return model.Loan{}, err
	}

	// Reconstruct, not NewLoan: imported records keep their own end dates
	// and EMI counters, including counters exceeding the tenure.
	return model.ReconstructLoan(
		loanID, customerID, amount, rate, tenure,
		installment, emisOnTime, startDate, endDate,
	), nil
}

func cellInt64(sh *sheet, row []string, column string) (int64, error) {
	v, err := sh.cell(row, column)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", column, err)
	}
	return n, nil
}

func cellInt(sh *sheet, row []string, column string) (int, error) {
	n, err := cellInt64(sh, row, column)
	return int(n), err
}

func cellDecimal(sh *sheet, row []string, column string) (decimal.Decimal, error) {
	v, err := sh.cell(row, column)
	if err != nil {
		return decimal.Decimal{}, err
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s: %w", column, err)
	}
	return d, nil
}

func cellDate(sh *sheet, row []string, column string) (time.Time, error) {
	v, err := sh.cell(row, column)
	if err != nil {
		return time.Time{}, err
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%s: unrecognized date %q", column, v)
}
