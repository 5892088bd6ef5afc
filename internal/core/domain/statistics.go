package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterStatistics aggregates persisted totals of registers that are no longer open.
type RegisterStatistics struct {
	From                time.Time                         `json:"from"`
	To                  time.Time                         `json:"to"`
	RegisterCount       int                               `json:"registerCount"`
	TotalIncome         decimal.Decimal                   `json:"totalIncome"`
	TotalExpense        decimal.Decimal                   `json:"totalExpense"`
	TotalTheoretical    decimal.Decimal                   `json:"totalTheoretical"`
	TotalActual         decimal.Decimal                   `json:"totalActual"`
	TotalDifference     decimal.Decimal                   `json:"totalDifference"`
	PaymentMethodTotals map[PaymentMethod]decimal.Decimal `json:"paymentMethodTotals"`
	Classifications     map[DifferenceClass]int           `json:"classifications"`
}
