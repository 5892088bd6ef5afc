package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/clinic_cash_register/internal/apperrors"
	"github.com/SscSPs/clinic_cash_register/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRegister() *domain.CashRegister {
	return &domain.CashRegister{
		RegisterID: "reg-1",
		Date:       time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		State:      domain.RegisterOpen,
		Opening: domain.Opening{
			OpenedAt: time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC),
			OpenedBy: "user-1",
		},
	}
}

func income(amount string) domain.Movement {
	return domain.Movement{
		MovementID:    "m",
		Kind:          domain.MovementIncome,
		Concept:       "Consulta",
		Amount:        decimal.RequireFromString(amount),
		PaymentMethod: domain.PaymentCash,
	}
}

func TestNormalizeDate(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	late := time.Date(2024, 1, 15, 23, 30, 0, 0, loc) // 04:30 UTC on the 16th
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), domain.NormalizeDate(late))
}

func TestCashRegister_AppendMovement(t *testing.T) {
	reg := openRegister()
	require.NoError(t, reg.AppendMovement(income("10.00")))
	require.NoError(t, reg.AppendMovement(income("20.00")))

	require.Len(t, reg.Movements, 2)
	assert.Equal(t, 1, reg.Movements[0].Sequence)
	assert.Equal(t, 2, reg.Movements[1].Sequence)
	assert.Equal(t, "reg-1", reg.Movements[1].RegisterID)

	err := reg.AppendMovement(income("0"))
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.Len(t, reg.Movements, 2)
}

func TestCashRegister_ClosedIsFrozen(t *testing.T) {
	reg := openRegister()
	require.NoError(t, reg.AppendMovement(income("10.00")))
	require.NoError(t, reg.MarkClosed(domain.Closing{ClosedAt: reg.Opening.OpenedAt.Add(9 * time.Hour)}))
	assert.False(t, reg.IsOpen())

	err := reg.AppendMovement(income("5.00"))
	assert.True(t, errors.Is(err, apperrors.ErrInvalidState))
	assert.Len(t, reg.Movements, 1)

	err = reg.MarkClosed(domain.Closing{})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidState))
	assert.Equal(t, 9*time.Hour, reg.OpenDuration(time.Now()))
}

func TestCashRegister_AuditedRejectsOperations(t *testing.T) {
	reg := openRegister()
	reg.State = domain.RegisterAudited
	assert.True(t, errors.Is(reg.AppendMovement(income("1.00")), apperrors.ErrInvalidState))
	assert.True(t, errors.Is(reg.MarkClosed(domain.Closing{}), apperrors.ErrInvalidState))
}

func TestCashRegister_Clone(t *testing.T) {
	reg := openRegister()
	require.NoError(t, reg.AppendMovement(income("10.00")))
	reg.PaymentMethodTotals = map[domain.PaymentMethod]decimal.Decimal{domain.PaymentCash: decimal.NewFromInt(10)}
	count, err := domain.NewDenominationCount(map[domain.Nominal]int64{1000: 1})
	require.NoError(t, err)
	reg.Closing = &domain.Closing{DenominationCount: &count}

	clone := reg.Clone()
	clone.Movements[0].Concept = "changed"
	clone.PaymentMethodTotals[domain.PaymentCash] = decimal.Zero
	clone.Closing.DenominationCount.Counts[1000] = 5
	require.NoError(t, clone.AppendMovement(income("1.00")))

	assert.Equal(t, "Consulta", reg.Movements[0].Concept)
	assert.Len(t, reg.Movements, 1)
	assert.True(t, reg.PaymentMethodTotals[domain.PaymentCash].Equal(decimal.NewFromInt(10)))
	assert.Equal(t, int64(1), reg.Closing.DenominationCount.Counts[1000])
}

func TestOpenDuration_StillOpen(t *testing.T) {
	reg := openRegister()
	now := reg.Opening.OpenedAt.Add(90 * time.Minute)
	assert.Equal(t, 90*time.Minute, reg.OpenDuration(now))
	assert.Equal(t, time.Duration(0), reg.OpenDuration(reg.Opening.OpenedAt.Add(-time.Hour)))
}
