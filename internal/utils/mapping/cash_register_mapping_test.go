package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/clinic_cash_register/internal/core/domain"
	"github.com/SscSPs/clinic_cash_register/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCashRegisterMapping_Closed(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	count, err := domain.NewDenominationCount(map[domain.Nominal]int64{20000: 2, 2000: 1, 500: 2})
	require.NoError(t, err)

	reg := domain.CashRegister{
		RegisterID: "reg-1",
		Date:       day,
		State:      domain.RegisterClosed,
		Opening:    domain.Opening{OpenedAt: day.Add(8 * time.Hour), OpenedBy: "u1", InitialFloat: decimal.RequireFromString("200.00")},
		Closing: &domain.Closing{
			ClosedAt:          day.Add(20 * time.Hour),
			ClosedBy:          "u2",
			Notes:             "short",
			DenominationCount: &count,
			ActualBalance:     decimal.RequireFromString("430.00"),
			Difference:        decimal.RequireFromString("-5.00"),
			Classification:    domain.DifferenceWarning,
		},
		PaymentMethodTotals: map[domain.PaymentMethod]decimal.Decimal{
			domain.PaymentCash: decimal.RequireFromString("150.00"),
			domain.PaymentCard: decimal.RequireFromString("120.00"),
		},
		Totals: domain.Totals{
			Income:             decimal.RequireFromString("270.00"),
			Expense:            decimal.RequireFromString("35.00"),
			TheoreticalBalance: decimal.RequireFromString("435.00"),
			ActualBalance:      decimal.RequireFromString("430.00"),
		},
		Version: 6,
	}

	m, err := ToModelCashRegister(reg)
	require.NoError(t, err)
	assert.Equal(t, "CLOSED", m.State)
	require.NotNil(t, m.Classification)
	assert.Equal(t, "WARNING", *m.Classification)
	assert.True(t, m.ActualBalance.Valid)

	back, err := ToDomainCashRegister(m, []models.Movement{{MovementID: "m1", Sequence: 1, Kind: "INCOME", Amount: decimal.NewFromInt(1), PaymentMethod: "CASH"}})
	require.NoError(t, err)
	assert.Equal(t, day, back.Date)
	require.NotNil(t, back.Closing)
	require.NotNil(t, back.Closing.DenominationCount)
	assert.Equal(t, "430.00", back.Closing.DenominationCount.Total().StringFixed(2))
	assert.True(t, back.Totals.ActualBalance.Equal(decimal.RequireFromString("430")))
	assert.True(t, back.PaymentMethodTotals[domain.PaymentCash].Equal(decimal.RequireFromString("150")))
	require.Len(t, back.Movements, 1)
	assert.Equal(t, domain.MovementIncome, back.Movements[0].Kind)
}

func TestCashRegisterMapping_Open(t *testing.T) {
	reg := domain.CashRegister{RegisterID: "reg-2", State: domain.RegisterOpen}
	m, err := ToModelCashRegister(reg)
	require.NoError(t, err)
	assert.Nil(t, m.ClosedAt)
	assert.False(t, m.ActualBalance.Valid)
	assert.Nil(t, m.DenominationCount)

	back, err := ToDomainCashRegister(m, nil)
	require.NoError(t, err)
	assert.Nil(t, back.Closing)
	assert.True(t, back.Totals.ActualBalance.IsZero())
	assert.Empty(t, back.Movements)
}

func TestToDomainCashRegister_BadJSON(t *testing.T) {
	_, err := ToDomainCashRegister(models.CashRegister{RegisterID: "x", PaymentMethodTotals: []byte("{")}, nil)
	assert.Error(t, err)
}
