package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/clinic_cash_register/internal/core/domain"
)

// CashRegisterMutation changes a register in place. Returning an error aborts the
// mutation and nothing is persisted.
type CashRegisterMutation func(reg *domain.CashRegister) error

// CashRegisterReader defines read operations for cash register data
type CashRegisterReader interface {
	// FindCashRegisterByID retrieves a register with its movements.
	FindCashRegisterByID(ctx context.Context, registerID string) (*domain.CashRegister, error)

	// FindCashRegisterByDate retrieves the register of a normalized business day.
	FindCashRegisterByDate(ctx context.Context, date time.Time) (*domain.CashRegister, error)

	// ListCashRegisters returns registers in the filter range with their movements, newest day first.
	// It returns the registers, a token for the next page, and an error.
	ListCashRegisters(ctx context.Context, filter domain.RegisterFilter, limit int, nextToken *string) ([]domain.CashRegister, *string, error)

	// SummarizeCashRegisters aggregates the persisted totals of registers matching the filter.
	SummarizeCashRegisters(ctx context.Context, filter domain.RegisterFilter) (*domain.RegisterStatistics, error)
}

// CashRegisterWriter defines write operations for cash register data
type CashRegisterWriter interface {
	// CreateCashRegister inserts a new register and its initial movements.
	// It returns apperrors.ErrDuplicate when a register already exists for the date.
	CreateCashRegister(ctx context.Context, reg domain.CashRegister) error

	// MutateCashRegister loads the register exclusively, applies fn and persists the result.
	// Concurrent mutations of the same register are serialized. New movements must only be
	// appended by fn; existing ones are never rewritten.
	MutateCashRegister(ctx context.Context, registerID string, fn CashRegisterMutation) (*domain.CashRegister, error)
}

// CashRegisterRepositoryFacade combines all cash register repository interfaces
type CashRegisterRepositoryFacade interface {
	CashRegisterReader
	CashRegisterWriter
}
