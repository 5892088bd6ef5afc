package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/clinic_cash_register/internal/apperrors"
	"github.com/SscSPs/clinic_cash_register/internal/core/domain"
	portsrepo "github.com/SscSPs/clinic_cash_register/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/clinic_cash_register/internal/core/ports/services"
	"github.com/SscSPs/clinic_cash_register/internal/dto"
	"github.com/SscSPs/clinic_cash_register/internal/platform/metrics"
	"github.com/SscSPs/clinic_cash_register/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	openingFloatConcept = "Opening float"
	defaultListLimit    = 20
)

// cashRegisterService runs the daily register lifecycle: open, record, close.
type cashRegisterService struct {
	BaseService
	registerRepo              portsrepo.CashRegisterRepositoryFacade
	now                       func() time.Time
	location                  *time.Location
	tolerance                 decimal.Decimal
	requireNotesOnDiscrepancy bool
}

// CashRegisterOption is a functional option for configuring the cash register service
type CashRegisterOption func(*cashRegisterService)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) CashRegisterOption {
	return func(s *cashRegisterService) {
		s.now = now
	}
}

// WithLocation sets the clinic timezone that decides which day "today" is.
func WithLocation(loc *time.Location) CashRegisterOption {
	return func(s *cashRegisterService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithTolerance sets the largest absolute difference still classified as a warning.
func WithTolerance(tolerance decimal.Decimal) CashRegisterOption {
	return func(s *cashRegisterService) {
		s.tolerance = tolerance
	}
}

// WithRequireNotesOnDiscrepancy rejects closes classified as DISCREPANCY that carry no notes.
func WithRequireNotesOnDiscrepancy(required bool) CashRegisterOption {
	return func(s *cashRegisterService) {
		s.requireNotesOnDiscrepancy = required
	}
}

// NewCashRegisterService creates a new cash register service with the provided options
func NewCashRegisterService(repo portsrepo.CashRegisterRepositoryFacade, options ...CashRegisterOption) portssvc.CashRegisterSvcFacade {
	svc := &cashRegisterService{
		registerRepo: repo,
		now:          time.Now,
		location:     time.UTC,
		tolerance:    accounting.DefaultTolerance,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure cashRegisterService implements the CashRegisterSvcFacade interface
var _ portssvc.CashRegisterSvcFacade = (*cashRegisterService)(nil)

func (s *cashRegisterService) today() time.Time {
	return domain.NormalizeDate(s.now().In(s.location))
}

func (s *cashRegisterService) OpenCashRegister(ctx context.Context, date time.Time, userID string, initialFloat decimal.Decimal, notes string) (*domain.CashRegister, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("userID", "is required")
	}
	if err := domain.ValidateAmount("initialFloat", initialFloat, true); err != nil {
		return nil, err
	}

	day := s.today()
	if !date.IsZero() {
		day = domain.NormalizeDate(date)
	}
	now := s.now()

	reg := &domain.CashRegister{
		RegisterID: uuid.NewString(),
		Date:       day,
		State:      domain.RegisterOpen,
		Opening: domain.Opening{
			OpenedAt:     now,
			OpenedBy:     userID,
			InitialFloat: initialFloat,
			Notes:        strings.TrimSpace(notes),
		},
		Movements:   []domain.Movement{},
		Version:     1,
		AuditFields: domain.NewAuditFields(userID, now),
	}

	if initialFloat.IsPositive() {
		err := reg.AppendMovement(domain.Movement{
			MovementID:    uuid.NewString(),
			Kind:          domain.MovementOpeningFloat,
			Concept:       openingFloatConcept,
			Amount:        initialFloat,
			PaymentMethod: domain.PaymentCash,
			Timestamp:     now,
			CreatedBy:     userID,
		})
		if err != nil {
			return nil, err
		}
	}
	accounting.RecomputeTotals(reg)

	if err := s.registerRepo.CreateCashRegister(ctx, *reg); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogWarn(ctx, "Cash register already exists for date", slog.String("date", day.Format(time.DateOnly)))
		} else {
			s.LogError(ctx, err, "Failed to create cash register", slog.String("date", day.Format(time.DateOnly)))
		}
		return nil, err
	}

	metrics.RecordRegisterOpened()
	s.LogInfo(ctx, "Cash register opened",
		slog.String("register_id", reg.RegisterID),
		slog.String("date", day.Format(time.DateOnly)),
		slog.String("initial_float", initialFloat.StringFixed(2)))
	return reg, nil
}

func (s *cashRegisterService) RecordMovement(ctx context.Context, registerID string, userID string, in domain.MovementInput) (*domain.CashRegister, error) {
	if registerID == "" {
		return nil, apperrors.NewValidationError("registerID", "is required")
	}
	if userID == "" {
		return nil, apperrors.NewValidationError("userID", "is required")
	}
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	movement := domain.Movement{
		MovementID:    uuid.NewString(),
		Kind:          in.Kind,
		Concept:       in.Concept,
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		ReceiptNumber: in.ReceiptNumber,
		InvoiceNumber: in.InvoiceNumber,
		PatientID:     in.PatientID,
		Timestamp:     now,
		CreatedBy:     userID,
	}

	reg, err := s.registerRepo.MutateCashRegister(ctx, registerID, func(reg *domain.CashRegister) error {
		if err := reg.AppendMovement(movement); err != nil {
			return err
		}
		accounting.RecomputeTotals(reg)
		reg.Version++
		reg.Touch(userID, now)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record movement",
			slog.String("register_id", registerID),
			slog.String("kind", string(in.Kind)))
		return nil, err
	}

	metrics.RecordMovement(string(movement.Kind), string(movement.PaymentMethod))
	s.LogDebug(ctx, "Movement recorded",
		slog.String("register_id", registerID),
		slog.String("kind", string(movement.Kind)),
		slog.String("amount", movement.Amount.StringFixed(2)),
		slog.String("theoretical_balance", reg.Totals.TheoreticalBalance.StringFixed(2)))
	return reg, nil
}

func (s *cashRegisterService) CloseCashRegister(ctx context.Context, registerID string, userID string, count *domain.DenominationCount, notes string) (*domain.CashRegister, error) {
	if registerID == "" {
		return nil, apperrors.NewValidationError("registerID", "is required")
	}
	if userID == "" {
		return nil, apperrors.NewValidationError("userID", "is required")
	}
	if count != nil {
		if err := count.Validate(); err != nil {
			return nil, err
		}
		c := count.Clone()
		count = &c
	}
	notes = strings.TrimSpace(notes)
	now := s.now()

	reg, err := s.registerRepo.MutateCashRegister(ctx, registerID, func(reg *domain.CashRegister) error {
		if err := reg.EnsureOpen("close"); err != nil {
			return err
		}
		accounting.RecomputeTotals(reg)
		actual, difference := accounting.Reconcile(reg.Totals.TheoreticalBalance, count)
		class := accounting.ClassifyDifference(difference, s.tolerance)
		if s.requireNotesOnDiscrepancy && class == domain.DifferenceDiscrepancy && notes == "" {
			return apperrors.NewValidationError("notes", "are required when the difference is a discrepancy")
		}

		err := reg.MarkClosed(domain.Closing{
			ClosedAt:          now,
			ClosedBy:          userID,
			Notes:             notes,
			DenominationCount: count,
			ActualBalance:     actual,
			Difference:        difference,
			Classification:    class,
		})
		if err != nil {
			return err
		}
		accounting.RecomputeTotals(reg)
		reg.Version++
		reg.Touch(userID, now)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to close cash register", slog.String("register_id", registerID))
		return nil, err
	}

	closing := reg.Closing
	metrics.RecordRegisterClosed(string(closing.Classification))
	attrs := []any{
		slog.String("register_id", reg.RegisterID),
		slog.String("date", reg.Date.Format(time.DateOnly)),
		slog.String("theoretical_balance", reg.Totals.TheoreticalBalance.StringFixed(2)),
		slog.String("actual_balance", closing.ActualBalance.StringFixed(2)),
		slog.String("difference", closing.Difference.StringFixed(2)),
		slog.String("classification", string(closing.Classification)),
	}
	if closing.Classification == domain.DifferenceDiscrepancy {
		s.LogWarn(ctx, "Cash register closed with discrepancy", attrs...)
	} else {
		s.LogInfo(ctx, "Cash register closed", attrs...)
	}
	return reg, nil
}

func (s *cashRegisterService) GetCashRegisterByID(ctx context.Context, registerID string) (*domain.CashRegister, error) {
	if registerID == "" {
		return nil, apperrors.NewValidationError("registerID", "is required")
	}
	reg, err := s.registerRepo.FindCashRegisterByID(ctx, registerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get cash register", slog.String("register_id", registerID))
		}
		return nil, err
	}
	return reg, nil
}

func (s *cashRegisterService) GetCashRegisterForDate(ctx context.Context, date time.Time) (*domain.CashRegister, error) {
	if date.IsZero() {
		return nil, apperrors.NewValidationError("date", "is required")
	}
	day := domain.NormalizeDate(date)
	reg, err := s.registerRepo.FindCashRegisterByDate(ctx, day)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get cash register for date", slog.String("date", day.Format(time.DateOnly)))
		}
		return nil, err
	}
	return reg, nil
}

func (s *cashRegisterService) ListCashRegisters(ctx context.Context, params dto.ListCashRegistersParams) (*dto.ListCashRegistersResponse, error) {
	filter := domain.RegisterFilter{}
	var err error
	if filter.From, err = parseOptionalDate("from", params.From); err != nil {
		return nil, err
	}
	if filter.To, err = parseOptionalDate("to", params.To); err != nil {
		return nil, err
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return nil, apperrors.NewValidationError("to", "must not be before from")
	}
	if params.State != "" {
		state := domain.RegisterState(strings.ToUpper(params.State))
		if !state.IsValid() {
			return nil, apperrors.NewValidationError("state", "unknown register state '"+params.State+"'")
		}
		filter.States = []domain.RegisterState{state}
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	regs, nextToken, err := s.registerRepo.ListCashRegisters(ctx, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list cash registers")
		return nil, err
	}

	return &dto.ListCashRegistersResponse{
		Registers: dto.ToListCashRegisterSummaryResponse(regs, s.now()),
		NextToken: nextToken,
	}, nil
}

func (s *cashRegisterService) GetStatistics(ctx context.Context, from, to time.Time) (*domain.RegisterStatistics, error) {
	if from.IsZero() {
		return nil, apperrors.NewValidationError("from", "is required")
	}
	if to.IsZero() {
		return nil, apperrors.NewValidationError("to", "is required")
	}
	from = domain.NormalizeDate(from)
	to = domain.NormalizeDate(to)
	if to.Before(from) {
		return nil, apperrors.NewValidationError("to", "must not be before from")
	}

	stats, err := s.registerRepo.SummarizeCashRegisters(ctx, domain.RegisterFilter{
		From:   from,
		To:     to,
		States: []domain.RegisterState{domain.RegisterClosed, domain.RegisterAudited},
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate cash registers",
			slog.String("from", from.Format(time.DateOnly)),
			slog.String("to", to.Format(time.DateOnly)))
		return nil, err
	}
	return stats, nil
}

func parseOptionalDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dto.DateFormat, value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(field, "must be a date in YYYY-MM-DD format")
	}
	return t, nil
}
