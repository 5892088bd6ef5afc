package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/clinic_cash_register/internal/apperrors"
	"github.com/SscSPs/clinic_cash_register/internal/core/domain"
	portsrepo "github.com/SscSPs/clinic_cash_register/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/clinic_cash_register/internal/core/ports/services"
	"github.com/SscSPs/clinic_cash_register/internal/platform/metrics"
)

// DefaultSequenceMaxRetries bounds the compare-and-swap loop of a single reservation.
const DefaultSequenceMaxRetries = 100

// sequenceService issues document numbers from a per-(series, year, entity) counter.
type sequenceService struct {
	BaseService
	sequenceRepo portsrepo.SequenceRepository
	now          func() time.Time
	location     *time.Location
	maxRetries   int
}

// SequenceOption is a functional option for configuring the sequence service
type SequenceOption func(*sequenceService)

// WithSequenceClock replaces time.Now, mostly for tests.
func WithSequenceClock(now func() time.Time) SequenceOption {
	return func(s *sequenceService) {
		s.now = now
	}
}

// WithSequenceLocation sets the timezone that decides the year of new numbers.
func WithSequenceLocation(loc *time.Location) SequenceOption {
	return func(s *sequenceService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithMaxRetries bounds the number of reservation attempts.
func WithMaxRetries(n int) SequenceOption {
	return func(s *sequenceService) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

// NewSequenceService creates a new document numbering service.
func NewSequenceService(repo portsrepo.SequenceRepository, options ...SequenceOption) portssvc.SequenceSvcFacade {
	svc := &sequenceService{
		sequenceRepo: repo,
		now:          time.Now,
		location:     time.UTC,
		maxRetries:   DefaultSequenceMaxRetries,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SequenceSvcFacade = (*sequenceService)(nil)

func (s *sequenceService) key(series string, entityType domain.EntityType, year int) (domain.SequenceKey, error) {
	normalized, err := domain.NormalizeSeries(series)
	if err != nil {
		return domain.SequenceKey{}, err
	}
	if year == 0 {
		year = s.now().In(s.location).Year()
	}
	key := domain.SequenceKey{Series: normalized, Year: year, EntityType: entityType}
	if err := key.Validate(); err != nil {
		return domain.SequenceKey{}, err
	}
	return key, nil
}

// NextDocumentNumber reserves last+1 with compare-and-swap, retrying while other writers win.
func (s *sequenceService) NextDocumentNumber(ctx context.Context, series string, entityType domain.EntityType) (*domain.DocumentNumber, error) {
	key, err := s.key(series, entityType, 0)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		last, err := s.sequenceRepo.GetLastIssued(ctx, key)
		if err != nil {
			s.LogError(ctx, err, "Failed to read sequence", slog.String("sequence", key.String()))
			return nil, err
		}
		next := last + 1

		swapped, err := s.sequenceRepo.CompareAndSwap(ctx, key, last, next)
		if err != nil {
			s.LogError(ctx, err, "Failed to advance sequence", slog.String("sequence", key.String()))
			return nil, err
		}
		if swapped {
			metrics.RecordDocumentNumberIssued(string(key.EntityType))
			number := &domain.DocumentNumber{
				Number:     domain.FormatDocumentNumber(key, next),
				Series:     key.Series,
				Year:       key.Year,
				EntityType: key.EntityType,
				Sequence:   next,
			}
			s.LogDebug(ctx, "Document number issued",
				slog.String("number", number.Number),
				slog.Int("attempt", attempt))
			return number, nil
		}
		metrics.RecordSequenceConflict(string(key.EntityType))
	}

	metrics.RecordSequenceExhausted(string(key.EntityType))
	err = apperrors.NewAppError(http.StatusServiceUnavailable,
		fmt.Sprintf("could not reserve a number for %s after %d attempts", key, s.maxRetries),
		apperrors.ErrSequenceExhausted)
	s.LogError(ctx, err, "Sequence exhausted", slog.String("sequence", key.String()))
	return nil, err
}

func (s *sequenceService) PeekDocumentNumber(ctx context.Context, series string, entityType domain.EntityType, year int) (*domain.DocumentNumber, error) {
	key, err := s.key(series, entityType, year)
	if err != nil {
		return nil, err
	}
	last, err := s.sequenceRepo.GetLastIssued(ctx, key)
	if err != nil {
		s.LogError(ctx, err, "Failed to read sequence", slog.String("sequence", key.String()))
		return nil, err
	}
	number := &domain.DocumentNumber{
		Series:     key.Series,
		Year:       key.Year,
		EntityType: key.EntityType,
		Sequence:   last,
	}
	if last > 0 {
		number.Number = domain.FormatDocumentNumber(key, last)
	}
	return number, nil
}
