package memory

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/clinic_cash_register/internal/apperrors"
	"github.com/SscSPs/clinic_cash_register/internal/core/domain"
	portsrepo "github.com/SscSPs/clinic_cash_register/internal/core/ports/repositories"
	"github.com/SscSPs/clinic_cash_register/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// CashRegisterRepository keeps registers in process memory. Every stored value is
// cloned on the way in and out so callers never share state with the store.
type CashRegisterRepository struct {
	mu        sync.RWMutex
	registers map[string]*domain.CashRegister
	byDate    map[time.Time]string
}

// NewCashRegisterRepository creates an empty in-memory register store.
func NewCashRegisterRepository() *CashRegisterRepository {
	return &CashRegisterRepository{
		registers: make(map[string]*domain.CashRegister),
		byDate:    make(map[time.Time]string),
	}
}

var _ portsrepo.CashRegisterRepositoryFacade = (*CashRegisterRepository)(nil)

func (r *CashRegisterRepository) CreateCashRegister(_ context.Context, reg domain.CashRegister) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := domain.NormalizeDate(reg.Date)
	if _, exists := r.byDate[day]; exists {
		return apperrors.NewDuplicateError("a cash register already exists for " + day.Format(time.DateOnly))
	}
	if _, exists := r.registers[reg.RegisterID]; exists {
		return apperrors.NewDuplicateError("cash register " + reg.RegisterID + " already exists")
	}
	reg.Date = day
	r.registers[reg.RegisterID] = reg.Clone()
	r.byDate[day] = reg.RegisterID
	return nil
}

func (r *CashRegisterRepository) FindCashRegisterByID(_ context.Context, registerID string) (*domain.CashRegister, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.registers[registerID]
	if !ok {
		return nil, apperrors.NewNotFoundError("cash register not found")
	}
	return reg.Clone(), nil
}

func (r *CashRegisterRepository) FindCashRegisterByDate(_ context.Context, date time.Time) (*domain.CashRegister, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byDate[domain.NormalizeDate(date)]
	if !ok {
		return nil, apperrors.NewNotFoundError("cash register not found")
	}
	return r.registers[id].Clone(), nil
}

// MutateCashRegister applies fn to a copy under the write lock and stores the copy only when fn succeeds.
func (r *CashRegisterRepository) MutateCashRegister(_ context.Context, registerID string, fn portsrepo.CashRegisterMutation) (*domain.CashRegister, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.registers[registerID]
	if !ok {
		return nil, apperrors.NewNotFoundError("cash register not found")
	}
	working := current.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	if len(working.Movements) < len(current.Movements) {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "movements of cash register "+registerID+" cannot be removed", nil)
	}
	r.registers[registerID] = working
	return working.Clone(), nil
}

func (r *CashRegisterRepository) ListCashRegisters(_ context.Context, filter domain.RegisterFilter, limit int, nextToken *string) ([]domain.CashRegister, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	var before time.Time
	if nextToken != nil && *nextToken != "" {
		d, err := pagination.DecodeDateBasedToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("nextToken", "is invalid")
		}
		before = d
	}

	r.mu.RLock()
	matched := make([]*domain.CashRegister, 0, len(r.registers))
	for _, reg := range r.registers {
		if !matches(reg, filter) {
			continue
		}
		if !before.IsZero() && !reg.Date.Before(before) {
			continue
		}
		matched = append(matched, reg.Clone())
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].Date.After(matched[j].Date) })

	var next *string
	if len(matched) > limit {
		matched = matched[:limit]
		token := pagination.EncodeDateBasedToken(matched[limit-1].Date)
		next = &token
	}
	out := make([]domain.CashRegister, len(matched))
	for i, reg := range matched {
		out[i] = *reg
	}
	return out, next, nil
}

func (r *CashRegisterRepository) SummarizeCashRegisters(_ context.Context, filter domain.RegisterFilter) (*domain.RegisterStatistics, error) {
	stats := &domain.RegisterStatistics{
		From:                filter.From,
		To:                  filter.To,
		PaymentMethodTotals: make(map[domain.PaymentMethod]decimal.Decimal, len(domain.PaymentMethods)),
		Classifications: map[domain.DifferenceClass]int{
			domain.DifferenceBalanced:    0,
			domain.DifferenceWarning:     0,
			domain.DifferenceDiscrepancy: 0,
		},
	}
	for _, pm := range domain.PaymentMethods {
		stats.PaymentMethodTotals[pm] = decimal.Zero
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, reg := range r.registers {
		if !matches(reg, filter) {
			continue
		}
		stats.RegisterCount++
		stats.TotalIncome = stats.TotalIncome.Add(reg.Totals.Income)
		stats.TotalExpense = stats.TotalExpense.Add(reg.Totals.Expense)
		stats.TotalTheoretical = stats.TotalTheoretical.Add(reg.Totals.TheoreticalBalance)
		for pm, v := range reg.PaymentMethodTotals {
			stats.PaymentMethodTotals[pm] = stats.PaymentMethodTotals[pm].Add(v)
		}
		if reg.Closing != nil {
			stats.TotalActual = stats.TotalActual.Add(reg.Closing.ActualBalance)
			stats.TotalDifference = stats.TotalDifference.Add(reg.Closing.Difference)
			stats.Classifications[reg.Closing.Classification]++
		}
	}
	return stats, nil
}

func matches(reg *domain.CashRegister, filter domain.RegisterFilter) bool {
	if !filter.From.IsZero() && reg.Date.Before(filter.From) {
		return false
	}
	if !filter.To.IsZero() && reg.Date.After(filter.To) {
		return false
	}
	if len(filter.States) == 0 {
		return true
	}
	for _, s := range filter.States {
		if reg.State == s {
			return true
		}
	}
	return false
}
