package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/clinic_cash_register/internal/apperrors"
	"github.com/SscSPs/clinic_cash_register/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegister(id string, day time.Time) domain.CashRegister {
	return domain.CashRegister{
		RegisterID:          id,
		Date:                day,
		State:               domain.RegisterOpen,
		Opening:             domain.Opening{OpenedAt: day.Add(8 * time.Hour), OpenedBy: "user-1"},
		PaymentMethodTotals: map[domain.PaymentMethod]decimal.Decimal{},
	}
}

func income(amount string) domain.Movement {
	return domain.Movement{
		MovementID:    "mv-" + amount,
		Kind:          domain.MovementIncome,
		Concept:       "Consultation",
		Amount:        decimal.RequireFromString(amount),
		PaymentMethod: domain.PaymentCash,
	}
}

func TestCreateCashRegister_DuplicateDate(t *testing.T) {
	repo := NewCashRegisterRepository()
	ctx := context.Background()
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateCashRegister(ctx, newRegister("r1", day)))
	err := repo.CreateCashRegister(ctx, newRegister("r2", day))
	assert.True(t, errors.Is(err, apperrors.ErrDuplicate))

	found, err := repo.FindCashRegisterByDate(ctx, day.Add(13*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "r1", found.RegisterID)
}

func TestCreateCashRegister_ConcurrentSameDay(t *testing.T) {
	repo := NewCashRegisterRepository()
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	results := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = repo.CreateCashRegister(context.Background(), newRegister(string(rune('a'+i)), day))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, errors.Is(err, apperrors.ErrDuplicate))
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestFindCashRegister_NotFound(t *testing.T) {
	repo := NewCashRegisterRepository()
	_, err := repo.FindCashRegisterByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	_, err = repo.FindCashRegisterByDate(context.Background(), time.Now())
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestMutateCashRegister_ErrorLeavesStoreUntouched(t *testing.T) {
	repo := NewCashRegisterRepository()
	ctx := context.Background()
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.CreateCashRegister(ctx, newRegister("r1", day)))

	boom := errors.New("boom")
	_, err := repo.MutateCashRegister(ctx, "r1", func(reg *domain.CashRegister) error {
		require.NoError(t, reg.AppendMovement(income("10.00")))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	stored, err := repo.FindCashRegisterByID(ctx, "r1")
	require.NoError(t, err)
	assert.Empty(t, stored.Movements)
}

func TestMutateCashRegister_ConcurrentAppends(t *testing.T) {
	repo := NewCashRegisterRepository()
	ctx := context.Background()
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.CreateCashRegister(ctx, newRegister("r1", day)))

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.MutateCashRegister(ctx, "r1", func(reg *domain.CashRegister) error {
				return reg.AppendMovement(income("1.00"))
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := repo.FindCashRegisterByID(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, stored.Movements, n)
	for i, m := range stored.Movements {
		assert.Equal(t, i+1, m.Sequence)
	}
}

func TestMutateCashRegister_ReturnedCopyIsDetached(t *testing.T) {
	repo := NewCashRegisterRepository()
	ctx := context.Background()
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.CreateCashRegister(ctx, newRegister("r1", day)))

	out, err := repo.MutateCashRegister(ctx, "r1", func(reg *domain.CashRegister) error {
		return reg.AppendMovement(income("5.00"))
	})
	require.NoError(t, err)
	out.Movements[0].Concept = "tampered"

	stored, err := repo.FindCashRegisterByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Consultation", stored.Movements[0].Concept)
}

func TestListCashRegisters_Pagination(t *testing.T) {
	repo := NewCashRegisterRepository()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.CreateCashRegister(ctx, newRegister(string(rune('a'+i)), base.AddDate(0, 0, i))))
	}

	page, next, err := repo.ListCashRegisters(ctx, domain.RegisterFilter{}, 2, nil)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.NotNil(t, next)
	assert.Equal(t, base.AddDate(0, 0, 4), page[0].Date)
	assert.Equal(t, base.AddDate(0, 0, 3), page[1].Date)

	page, next, err = repo.ListCashRegisters(ctx, domain.RegisterFilter{}, 2, next)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, base.AddDate(0, 0, 2), page[0].Date)

	page, next, err = repo.ListCashRegisters(ctx, domain.RegisterFilter{}, 2, next)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Nil(t, next)

	bad := "not-a-token"
	_, _, err = repo.ListCashRegisters(ctx, domain.RegisterFilter{}, 2, &bad)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestSummarizeCashRegisters(t *testing.T) {
	repo := NewCashRegisterRepository()
	ctx := context.Background()
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	closed := newRegister("r1", day)
	closed.State = domain.RegisterClosed
	closed.Totals = domain.Totals{
		Income:             decimal.RequireFromString("270"),
		Expense:            decimal.RequireFromString("35"),
		TheoreticalBalance: decimal.RequireFromString("435"),
		ActualBalance:      decimal.RequireFromString("430"),
	}
	closed.PaymentMethodTotals = map[domain.PaymentMethod]decimal.Decimal{domain.PaymentCash: decimal.RequireFromString("150")}
	closed.Closing = &domain.Closing{
		ActualBalance:  decimal.RequireFromString("430"),
		Difference:     decimal.RequireFromString("-5"),
		Classification: domain.DifferenceWarning,
	}
	require.NoError(t, repo.CreateCashRegister(ctx, closed))
	require.NoError(t, repo.CreateCashRegister(ctx, newRegister("r2", day.AddDate(0, 0, 1))))

	stats, err := repo.SummarizeCashRegisters(ctx, domain.RegisterFilter{
		From:   day,
		To:     day.AddDate(0, 0, 1),
		States: []domain.RegisterState{domain.RegisterClosed, domain.RegisterAudited},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.RegisterCount)
	assert.True(t, stats.TotalDifference.Equal(decimal.RequireFromString("-5")))
	assert.Equal(t, 1, stats.Classifications[domain.DifferenceWarning])
	assert.True(t, stats.PaymentMethodTotals[domain.PaymentCash].Equal(decimal.RequireFromString("150")))
	assert.True(t, stats.PaymentMethodTotals[domain.PaymentCard].IsZero())
}
