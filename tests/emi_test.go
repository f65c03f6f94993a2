package tests

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/service"
)

func TestMonthlyInstallment_ZeroRate(t *testing.T) {
	emi := service.MonthlyInstallment(decimal.NewFromInt(120_000), decimal.Zero, 12)

	assert.True(t, emi.Equal(decimal.NewFromInt(10_000)), "got %s", emi)
}

func TestMonthlyInstallment_StandardAmortization(t *testing.T) {
	// 100,000 at 16% over 12 months.
	emi := service.MonthlyInstallment(decimal.NewFromInt(100_000), decimal.NewFromInt(16), 12)

	assert.InDelta(t, 9073.09, emi.InexactFloat64(), 0.01)
}

func TestMonthlyInstallment_LongTenure(t *testing.T) {
	// 500,000 at 12.5% over 60 months.
	emi := service.MonthlyInstallment(decimal.NewFromInt(500_000), decimal.RequireFromString("12.5"), 60)

	assert.InDelta(t, 11248.93, emi.InexactFloat64(), 0.5)
}

func TestMonthlyInstallment_IncreasesWithRate(t *testing.T) {
	principal := decimal.NewFromInt(100_000)

	low := service.MonthlyInstallment(principal, decimal.NewFromInt(8), 24)
	high := service.MonthlyInstallment(principal, decimal.NewFromInt(16), 24)

	assert.True(t, high.GreaterThan(low))
}

func TestMonthlyInstallment_DecreasesWithTenure(t *testing.T) {
	principal := decimal.NewFromInt(100_000)
	rate := decimal.NewFromInt(12)

	short := service.MonthlyInstallment(principal, rate, 12)
	long := service.MonthlyInstallment(principal, rate, 36)

	assert.True(t, short.GreaterThan(long))
}

func TestMonthlyInstallment_TotalRepaymentExceedsPrincipal(t *testing.T) {
	principal := decimal.NewFromInt(250_000)
	emi := service.MonthlyInstallment(principal, decimal.NewFromInt(10), 24)

	total := emi.Mul(decimal.NewFromInt(24))
	assert.True(t, total.GreaterThan(principal))
}
