package pgsql

import (
	"context"
	"errors"
	"net/http"

	"github.com/SscSPs/clinic_cash_register/internal/apperrors"
	"github.com/SscSPs/clinic_cash_register/internal/core/domain"
	portsrepo "github.com/SscSPs/clinic_cash_register/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSequenceRepository struct {
	BaseRepository
}

func newPgxSequenceRepository(pool *pgxpool.Pool) *PgxSequenceRepository {
	return &PgxSequenceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// GetLastIssued returns the counter value, 0 when the row does not exist yet.
func (r *PgxSequenceRepository) GetLastIssued(ctx context.Context, key domain.SequenceKey) (int64, error) {
	query := `
		SELECT last_issued
		FROM document_sequences
		WHERE series = $1 AND year = $2 AND entity_type = $3;`
	var last int64
	err := r.Pool.QueryRow(ctx, query, key.Series, key.Year, string(key.EntityType)).Scan(&last)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, apperrors.NewAppError(http.StatusInternalServerError, "failed to read sequence "+key.String(), err)
	}
	return last, nil
}

// CompareAndSwap creates the counter row on first use and otherwise updates it only
// while it still holds expected.
func (r *PgxSequenceRepository) CompareAndSwap(ctx context.Context, key domain.SequenceKey, expected, next int64) (bool, error) {
	if expected == 0 {
		query := `
			INSERT INTO document_sequences (series, year, entity_type, last_issued, updated_at)
			VALUES ($1, $2, $3, $4, NOW())
			ON CONFLICT (series, year, entity_type) DO NOTHING;`
		tag, err := r.Pool.Exec(ctx, query, key.Series, key.Year, string(key.EntityType), next)
		if err != nil {
			return false, apperrors.NewAppError(http.StatusInternalServerError, "failed to create sequence "+key.String(), err)
		}
		return tag.RowsAffected() == 1, nil
	}

	query := `
		UPDATE document_sequences
		SET last_issued = $4, updated_at = NOW()
		WHERE series = $1 AND year = $2 AND entity_type = $3 AND last_issued = $5;`
	tag, err := r.Pool.Exec(ctx, query, key.Series, key.Year, string(key.EntityType), next, expected)
	if err != nil {
		return false, apperrors.NewAppError(http.StatusInternalServerError, "failed to advance sequence "+key.String(), err)
	}
	return tag.RowsAffected() == 1, nil
}
