package accounting_test

import (
	"testing"

	"github.com/SscSPs/clinic_cash_register/internal/core/domain"
	"github.com/SscSPs/clinic_cash_register/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mv(kind domain.MovementKind, amount string, pm domain.PaymentMethod) domain.Movement {
	return domain.Movement{Kind: kind, Concept: "test", Amount: dec(amount), PaymentMethod: pm}
}

func dayScenario() []domain.Movement {
	return []domain.Movement{
		mv(domain.MovementOpeningFloat, "200.00", domain.PaymentCash),
		mv(domain.MovementIncome, "65.00", domain.PaymentCash),
		mv(domain.MovementIncome, "120.00", domain.PaymentCard),
		mv(domain.MovementIncome, "85.00", domain.PaymentCash),
		mv(domain.MovementExpense, "35.00", domain.PaymentCash),
	}
}

func TestComputeTotals_DayScenario(t *testing.T) {
	totals := accounting.ComputeTotals(dec("200.00"), dayScenario())

	assert.True(t, totals.Income.Equal(dec("270.00")), "income: %s", totals.Income)
	assert.True(t, totals.Expense.Equal(dec("35.00")), "expense: %s", totals.Expense)
	assert.True(t, totals.TheoreticalBalance.Equal(dec("435.00")), "theoretical: %s", totals.TheoreticalBalance)
	assert.True(t, totals.ActualBalance.IsZero())
}

func TestComputeTotals_Empty(t *testing.T) {
	totals := accounting.ComputeTotals(decimal.Zero, nil)
	assert.True(t, totals.Income.IsZero())
	assert.True(t, totals.Expense.IsZero())
	assert.True(t, totals.TheoreticalBalance.IsZero())
}

func TestComputeTotals_BalanceConservation(t *testing.T) {
	movements := []domain.Movement{
		mv(domain.MovementIncome, "0.10", domain.PaymentCash),
		mv(domain.MovementIncome, "0.20", domain.PaymentCash),
		mv(domain.MovementExpense, "0.30", domain.PaymentCard),
		mv(domain.MovementIncome, "1999.99", domain.PaymentBankTransfer),
		mv(domain.MovementExpense, "0.01", domain.PaymentCheck),
	}
	totals := accounting.ComputeTotals(dec("50.05"), movements)

	expected := dec("50.05").Add(totals.Income).Sub(totals.Expense)
	assert.True(t, totals.TheoreticalBalance.Equal(expected))
	assert.Equal(t, "2050.04", totals.TheoreticalBalance.StringFixed(2))
}

func TestComputePaymentMethodTotals(t *testing.T) {
	movements := dayScenario()
	totals := accounting.ComputePaymentMethodTotals(movements)

	require.Len(t, totals, len(domain.PaymentMethods))
	assert.True(t, totals[domain.PaymentCash].Equal(dec("150.00")), "cash: %s", totals[domain.PaymentCash])
	assert.True(t, totals[domain.PaymentCard].Equal(dec("120.00")))
	assert.True(t, totals[domain.PaymentBankTransfer].IsZero())
	assert.True(t, totals[domain.PaymentCheck].IsZero())
	assert.True(t, totals[domain.PaymentMobilePay].IsZero())

	sum := decimal.Zero
	for _, v := range totals {
		sum = sum.Add(v)
	}
	income := accounting.ComputeTotals(dec("200.00"), movements).Income
	assert.True(t, sum.Equal(income), "per-method sum %s must equal income %s", sum, income)
}

func TestReconcile(t *testing.T) {
	t.Run("with count", func(t *testing.T) {
		count, err := domain.NewDenominationCount(map[domain.Nominal]int64{
			20000: 2, // 400
			2000:  1, // 20
			500:   2, // 10
		})
		require.NoError(t, err)

		actual, diff := accounting.Reconcile(dec("435.00"), &count)
		assert.True(t, actual.Equal(dec("430.00")))
		assert.True(t, diff.Equal(dec("-5.00")))
		assert.Equal(t, domain.DifferenceWarning, accounting.ClassifyDifference(diff, accounting.DefaultTolerance))
	})

	t.Run("without count", func(t *testing.T) {
		actual, diff := accounting.Reconcile(dec("435.00"), nil)
		assert.True(t, actual.Equal(dec("435.00")))
		assert.True(t, diff.IsZero())
	})
}

func TestClassifyDifference(t *testing.T) {
	tests := []struct {
		name       string
		difference string
		tolerance  string
		want       domain.DifferenceClass
	}{
		{"zero", "0", "5", domain.DifferenceBalanced},
		{"one cent over", "0.01", "5", domain.DifferenceWarning},
		{"one cent short", "-0.01", "5", domain.DifferenceWarning},
		{"at tolerance", "5.00", "5", domain.DifferenceWarning},
		{"at negative tolerance", "-5.00", "5", domain.DifferenceWarning},
		{"just above tolerance", "5.01", "5", domain.DifferenceDiscrepancy},
		{"just below negative tolerance", "-5.01", "5", domain.DifferenceDiscrepancy},
		{"zero tolerance", "0.01", "0", domain.DifferenceDiscrepancy},
		{"custom tolerance", "9.99", "10", domain.DifferenceWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.ClassifyDifference(dec(tt.difference), dec(tt.tolerance))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecomputeTotals(t *testing.T) {
	reg := &domain.CashRegister{
		State:     domain.RegisterOpen,
		Opening:   domain.Opening{InitialFloat: dec("200.00")},
		Movements: dayScenario(),
	}
	accounting.RecomputeTotals(reg)
	assert.True(t, reg.Totals.TheoreticalBalance.Equal(dec("435.00")))
	assert.True(t, reg.Totals.ActualBalance.IsZero())
	assert.True(t, reg.PaymentMethodTotals[domain.PaymentCash].Equal(dec("150.00")))

	reg.Closing = &domain.Closing{ActualBalance: dec("430.00")}
	accounting.RecomputeTotals(reg)
	assert.True(t, reg.Totals.ActualBalance.Equal(dec("430.00")))
}

func TestRunningBalances(t *testing.T) {
	balances := accounting.RunningBalances(dec("200.00"), dayScenario())
	want := []string{"200.00", "265.00", "385.00", "470.00", "435.00"}

	require.Len(t, balances, len(want))
	for i, w := range want {
		assert.Equal(t, w, balances[i].StringFixed(2), "movement %d", i)
	}
}
