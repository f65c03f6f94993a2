package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TechTyphoon/Credit-Approval-System/internal/application/dto"
	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/model"
	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/port"
)

// Monetary amounts carry full precision internally and are rounded to two
// decimal places at this boundary only.
const moneyScale = 2

// CustomerRegistrar runs the registration workflow.
type CustomerRegistrar interface {
	Execute(ctx context.Context, req dto.RegisterCustomerRequest) (dto.CustomerResponse, error)
}

// EligibilityChecker runs the read-only loan inquiry workflow.
type EligibilityChecker interface {
	Execute(ctx context.Context, req dto.LoanRequest) (dto.EligibilityResponse, error)
}

// LoanCreator runs the loan creation workflow.
type LoanCreator interface {
	Execute(ctx context.Context, req dto.LoanRequest) (dto.CreateLoanResponse, error)
}

// LoanGetter retrieves one loan with its customer block.
type LoanGetter interface {
	Execute(ctx context.Context, loanID int64) (dto.LoanDetailResponse, error)
}

// LoanLister lists a customer's loans.
type LoanLister interface {
	Execute(ctx context.Context, customerID int64) ([]dto.LoanItemResponse, error)
}

// Handler exposes the credit workflows over HTTP.
type Handler struct {
	registrar   CustomerRegistrar
	eligibility EligibilityChecker
	creator     LoanCreator
	getter      LoanGetter
	lister      LoanLister
}

// NewHandler wires the workflow dependencies.
func NewHandler(
	registrar CustomerRegistrar,
	eligibility EligibilityChecker,
	creator LoanCreator,
	getter LoanGetter,
	lister LoanLister,
) *Handler {
	return &Handler{
		registrar:   registrar,
		eligibility: eligibility,
		creator:     creator,
		getter:      getter,
		lister:      lister,
	}
}

// Register handles POST /register.
func (h *Handler) Register(c *gin.Context) {
	var req dto.RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.registrar.Execute(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CheckEligibility handles POST /check-eligibility.
func (h *Handler) CheckEligibility(c *gin.Context) {
	var req dto.LoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.eligibility.Execute(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	resp.MonthlyInstallment = resp.MonthlyInstallment.Round(moneyScale)
	if resp.CorrectedInterestRate != nil {
		rounded := resp.CorrectedInterestRate.Round(moneyScale)
		resp.CorrectedInterestRate = &rounded
	}
	c.JSON(http.StatusOK, resp)
}

// CreateLoan handles POST /create-loan.
func (h *Handler) CreateLoan(c *gin.Context) {
	var req dto.LoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.creator.Execute(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	resp.MonthlyInstallment = resp.MonthlyInstallment.Round(moneyScale)
	status := http.StatusOK
	if resp.LoanApproved {
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}

// ViewLoan handles GET /view-loan/:loan_id.
func (h *Handler) ViewLoan(c *gin.Context) {
	loanID, err := pathID(c, "loan_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid loan id"})
		return
	}

	resp, err := h.getter.Execute(c.Request.Context(), loanID)
	if err != nil {
		writeError(c, err)
		return
	}

	resp.MonthlyInstallment = resp.MonthlyInstallment.Round(moneyScale)
	c.JSON(http.StatusOK, resp)
}

// ViewLoans handles GET /view-loans/:customer_id.
func (h *Handler) ViewLoans(c *gin.Context) {
	customerID, err := pathID(c, "customer_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}

	items, err := h.lister.Execute(c.Request.Context(), customerID)
	if err != nil {
		writeError(c, err)
		return
	}

	for i := range items {
		items[i].MonthlyInstallment = items[i].MonthlyInstallment.Round(moneyScale)
	}
	c.JSON(http.StatusOK, items)
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, port.ErrCustomerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
	case errors.Is(err, port.ErrLoanNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "loan not found"})
	case errors.Is(err, model.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
