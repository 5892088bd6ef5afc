package redis

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/clinic_cash_register/internal/apperrors"
	"github.com/SscSPs/clinic_cash_register/internal/core/domain"
	portsrepo "github.com/SscSPs/clinic_cash_register/internal/core/ports/repositories"
	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "ccr:seq"

// SequenceRepository stores document counters as plain integer keys. Compare-and-swap
// uses WATCH/MULTI so a concurrent writer aborts the transaction instead of overwriting.
type SequenceRepository struct {
	client goredis.UniversalClient
}

// NewSequenceRepository creates a counter store on top of an existing client.
func NewSequenceRepository(client goredis.UniversalClient) *SequenceRepository {
	return &SequenceRepository{client: client}
}

var _ portsrepo.SequenceRepository = (*SequenceRepository)(nil)

func counterKey(key domain.SequenceKey) string {
	return fmt.Sprintf("%s:%s:%d:%s", keyPrefix, key.Series, key.Year, key.EntityType)
}

func (r *SequenceRepository) GetLastIssued(ctx context.Context, key domain.SequenceKey) (int64, error) {
	last, err := r.client.Get(ctx, counterKey(key)).Int64()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return 0, nil
		}
		return 0, apperrors.NewAppError(http.StatusInternalServerError, "failed to read sequence "+key.String(), err)
	}
	return last, nil
}

func (r *SequenceRepository) CompareAndSwap(ctx context.Context, key domain.SequenceKey, expected, next int64) (bool, error) {
	k := counterKey(key)
	swapped := false

	err := r.client.Watch(ctx, func(tx *goredis.Tx) error {
		current, err := tx.Get(ctx, k).Int64()
		if err != nil && !errors.Is(err, goredis.Nil) {
			return err
		}
		if current != expected {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, k, next, 0)
			return nil
		})
		if err != nil {
			return err
		}
		swapped = true
		return nil
	}, k)

	if errors.Is(err, goredis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.NewAppError(http.StatusInternalServerError, "failed to advance sequence "+key.String(), err)
	}
	return swapped, nil
}
