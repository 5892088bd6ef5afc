package services

import (
	"context"
	"time"

	"github.com/SscSPs/clinic_cash_register/internal/core/domain"
	"github.com/SscSPs/clinic_cash_register/internal/dto"
	"github.com/shopspring/decimal"
)

// CashRegisterReaderSvc defines read operations for cash register data
type CashRegisterReaderSvc interface {
	// GetCashRegisterByID retrieves a register with its movements.
	GetCashRegisterByID(ctx context.Context, registerID string) (*domain.CashRegister, error)

	// GetCashRegisterForDate retrieves the register of a business day.
	GetCashRegisterForDate(ctx context.Context, date time.Time) (*domain.CashRegister, error)

	// ListCashRegisters retrieves a paginated list of registers, newest day first.
	ListCashRegisters(ctx context.Context, params dto.ListCashRegistersParams) (*dto.ListCashRegistersResponse, error)
}

// CashRegisterWriterSvc defines the lifecycle operations of a register
type CashRegisterWriterSvc interface {
	// OpenCashRegister opens the register of a business day. A zero date means today.
	OpenCashRegister(ctx context.Context, date time.Time, userID string, initialFloat decimal.Decimal, notes string) (*domain.CashRegister, error)

	// RecordMovement appends an income or expense to an open register.
	RecordMovement(ctx context.Context, registerID string, userID string, in domain.MovementInput) (*domain.CashRegister, error)

	// CloseCashRegister reconciles and closes an open register. count may be nil.
	CloseCashRegister(ctx context.Context, registerID string, userID string, count *domain.DenominationCount, notes string) (*domain.CashRegister, error)
}

// CashRegisterStatisticsSvc defines read-side aggregations over persisted totals
type CashRegisterStatisticsSvc interface {
	// GetStatistics aggregates the registers in [from, to] that are no longer open.
	GetStatistics(ctx context.Context, from, to time.Time) (*domain.RegisterStatistics, error)
}

// CashRegisterSvcFacade combines all cash register service interfaces
// This is a facade for clients that need access to all operations
type CashRegisterSvcFacade interface {
	CashRegisterReaderSvc
	CashRegisterWriterSvc
	CashRegisterStatisticsSvc
}
