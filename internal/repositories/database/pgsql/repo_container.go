package pgsql

import (
	portsrepo "github.com/SscSPs/clinic_cash_register/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	cashRegisterRepo := newPgxCashRegisterRepository(dbPool)
	sequenceRepo := newPgxSequenceRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CashRegisterRepo: cashRegisterRepo,
		SequenceRepo:     sequenceRepo,
	}
}
