package memory

import (
	"context"
	"testing"

	"github.com/SscSPs/clinic_cash_register/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceRepository_CompareAndSwap(t *testing.T) {
	repo := NewSequenceRepository()
	ctx := context.Background()
	key := domain.SequenceKey{Series: "A", Year: 2024, EntityType: domain.EntityInvoice}

	last, err := repo.GetLastIssued(ctx, key)
	require.NoError(t, err)
	assert.Zero(t, last)

	ok, err := repo.CompareAndSwap(ctx, key, 0, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.CompareAndSwap(ctx, key, 0, 1)
	require.NoError(t, err)
	assert.False(t, ok, "stale expectation must lose")

	other := domain.SequenceKey{Series: "A", Year: 2025, EntityType: domain.EntityInvoice}
	last, err = repo.GetLastIssued(ctx, other)
	require.NoError(t, err)
	assert.Zero(t, last, "counters are independent per key")
}
