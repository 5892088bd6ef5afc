package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/clinic_cash_register/internal/core/domain"
	portsrepo "github.com/SscSPs/clinic_cash_register/internal/core/ports/repositories"
)

// SequenceRepository holds document counters in process memory.
type SequenceRepository struct {
	mu       sync.Mutex
	counters map[domain.SequenceKey]int64
}

// NewSequenceRepository creates an empty in-memory counter store.
func NewSequenceRepository() *SequenceRepository {
	return &SequenceRepository{counters: make(map[domain.SequenceKey]int64)}
}

var _ portsrepo.SequenceRepository = (*SequenceRepository)(nil)

func (r *SequenceRepository) GetLastIssued(_ context.Context, key domain.SequenceKey) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counters[key], nil
}

func (r *SequenceRepository) CompareAndSwap(_ context.Context, key domain.SequenceKey, expected, next int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.counters[key] != expected {
		return false, nil
	}
	r.counters[key] = next
	return true, nil
}
