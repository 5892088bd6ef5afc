package memory

import (
	portsrepo "github.com/SscSPs/clinic_cash_register/internal/core/ports/repositories"
)

// NewRepositoryProvider wires process-local repositories. State is lost on restart.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CashRegisterRepo: NewCashRegisterRepository(),
		SequenceRepo:     NewSequenceRepository(),
	}
}
