package repositories

import (
	"context"

	"github.com/SscSPs/clinic_cash_register/internal/core/domain"
)

// SequenceRepository is the single authoritative counter per (series, year, entity type).
type SequenceRepository interface {
	// GetLastIssued returns the last issued value of a counter, 0 if it was never used.
	GetLastIssued(ctx context.Context, key domain.SequenceKey) (int64, error)

	// CompareAndSwap sets the counter to next only if it still holds expected.
	// A counter that does not exist yet holds 0. It reports false, with a nil error,
	// when another writer got there first.
	CompareAndSwap(ctx context.Context, key domain.SequenceKey, expected, next int64) (bool, error)
}
