package services

import (
	"context"

	"github.com/SscSPs/clinic_cash_register/internal/core/domain"
)

// SequenceSvcFacade issues gapless document numbers
type SequenceSvcFacade interface {
	// NextDocumentNumber reserves the next number of the series for the current year.
	NextDocumentNumber(ctx context.Context, series string, entityType domain.EntityType) (*domain.DocumentNumber, error)

	// PeekDocumentNumber returns the last issued number without reserving one.
	// A zero year means the current year. Sequence is 0 and Number empty when nothing was issued.
	PeekDocumentNumber(ctx context.Context, series string, entityType domain.EntityType, year int) (*domain.DocumentNumber, error)
}
