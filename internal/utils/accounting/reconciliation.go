package accounting

import (
	"github.com/SscSPs/clinic_cash_register/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultTolerance is the difference, in currency units, still classified as a warning.
var DefaultTolerance = decimal.NewFromInt(5)

// ComputeTotals sums income and expense movements and derives the theoretical balance.
// The opening float is part of the balance but not of income; it is passed explicitly
// so the result does not depend on whether an OPENING_FLOAT movement was recorded.
func ComputeTotals(initialFloat decimal.Decimal, movements []domain.Movement) domain.Totals {
	income := decimal.Zero
	expense := decimal.Zero
	for _, m := range movements {
		switch m.Kind {
		case domain.MovementIncome:
			income = income.Add(m.Amount)
		case domain.MovementExpense:
			expense = expense.Add(m.Amount)
		}
	}
	return domain.Totals{
		Income:             income,
		Expense:            expense,
		TheoreticalBalance: initialFloat.Add(income).Sub(expense),
		ActualBalance:      decimal.Zero,
	}
}

// ComputePaymentMethodTotals sums income per payment method. Expenses and the opening
// float are deliberately left out of this breakdown. Every method is present in the result.
func ComputePaymentMethodTotals(movements []domain.Movement) map[domain.PaymentMethod]decimal.Decimal {
	totals := make(map[domain.PaymentMethod]decimal.Decimal, len(domain.PaymentMethods))
	for _, pm := range domain.PaymentMethods {
		totals[pm] = decimal.Zero
	}
	for _, m := range movements {
		if m.Kind != domain.MovementIncome {
			continue
		}
		totals[m.PaymentMethod] = totals[m.PaymentMethod].Add(m.Amount)
	}
	return totals
}

// Reconcile compares the counted cash with the theoretical balance.
// Without a count the drawer is assumed to match and the difference is zero.
func Reconcile(theoretical decimal.Decimal, count *domain.DenominationCount) (actual, difference decimal.Decimal) {
	if count == nil {
		return theoretical, decimal.Zero
	}
	actual = count.Total()
	return actual, actual.Sub(theoretical)
}

// ClassifyDifference buckets a difference: zero is balanced, up to and including
// tolerance (in absolute value) is a warning, anything larger is a discrepancy.
func ClassifyDifference(difference, tolerance decimal.Decimal) domain.DifferenceClass {
	abs := difference.Abs()
	switch {
	case abs.IsZero():
		return domain.DifferenceBalanced
	case abs.LessThanOrEqual(tolerance):
		return domain.DifferenceWarning
	default:
		return domain.DifferenceDiscrepancy
	}
}

// RecomputeTotals refreshes every derived field of reg from its movements and closing block.
// Persistence code calls it explicitly before writing.
func RecomputeTotals(reg *domain.CashRegister) {
	totals := ComputeTotals(reg.Opening.InitialFloat, reg.Movements)
	if reg.Closing != nil {
		totals.ActualBalance = reg.Closing.ActualBalance
	}
	reg.Totals = totals
	reg.PaymentMethodTotals = ComputePaymentMethodTotals(reg.Movements)
}

// RunningBalances returns the theoretical balance after each movement, in order.
// The OPENING_FLOAT movement, if present, carries the float itself; otherwise the
// series starts from initialFloat.
func RunningBalances(initialFloat decimal.Decimal, movements []domain.Movement) []decimal.Decimal {
	out := make([]decimal.Decimal, len(movements))
	balance := initialFloat
	for i, m := range movements {
		if m.Kind != domain.MovementOpeningFloat {
			balance = balance.Add(m.SignedAmount())
		}
		out[i] = balance
	}
	return out
}
