package services

import (
	portsrepo "github.com/SscSPs/clinic_cash_register/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/clinic_cash_register/internal/core/ports/services"
	"github.com/SscSPs/clinic_cash_register/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.CashRegister = NewCashRegisterService(
		repos.CashRegisterRepo,
		WithLocation(cfg.ClinicLocation),
		WithTolerance(cfg.DifferenceTolerance),
		WithRequireNotesOnDiscrepancy(cfg.RequireNotesOnDiscrepancy),
	)

	container.Sequence = NewSequenceService(
		repos.SequenceRepo,
		WithSequenceLocation(cfg.ClinicLocation),
		WithMaxRetries(cfg.SequenceMaxRetries),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CashRegisterSvcFacade = (*cashRegisterService)(nil)
	_ portssvc.SequenceSvcFacade     = (*sequenceService)(nil)
)
