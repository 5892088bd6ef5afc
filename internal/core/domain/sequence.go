package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/SscSPs/clinic_cash_register/internal/apperrors"
)

// EntityType is the kind of document a sequence numbers.
type EntityType string

const (
	EntityInvoice EntityType = "INVOICE"
	EntityReceipt EntityType = "RECEIPT"
)

// IsValid reports whether e is a known entity type.
func (e EntityType) IsValid() bool {
	return e == EntityInvoice || e == EntityReceipt
}

// Width is the zero-padding width of the sequential part of the identifier.
func (e EntityType) Width() int {
	if e == EntityReceipt {
		return 4
	}
	return 3
}

var seriesPattern = regexp.MustCompile(`^[A-Z0-9]{1,10}$`)

// NormalizeSeries trims and upper-cases a series prefix and checks its shape.
func NormalizeSeries(series string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(series))
	if s == "" {
		return "", apperrors.NewValidationError("series", "is required")
	}
	if !seriesPattern.MatchString(s) {
		return "", apperrors.NewValidationError("series", "must be 1-10 letters or digits")
	}
	return s, nil
}

// SequenceKey identifies one counter.
type SequenceKey struct {
	Series     string
	Year       int
	EntityType EntityType
}

func (k SequenceKey) String() string {
	return fmt.Sprintf("%s/%d/%s", k.Series, k.Year, k.EntityType)
}

// Validate checks that the key can address a counter.
func (k SequenceKey) Validate() error {
	if _, err := NormalizeSeries(k.Series); err != nil {
		return err
	}
	if !k.EntityType.IsValid() {
		return apperrors.NewValidationError("entityType", "unknown entity type '"+string(k.EntityType)+"'")
	}
	if k.Year < 1 || k.Year > 9999 {
		return apperrors.NewValidationError("year", "is out of range")
	}
	return nil
}

// FormatDocumentNumber renders {series}-{year}-{seq} with the entity-specific padding.
func FormatDocumentNumber(key SequenceKey, seq int64) string {
	return fmt.Sprintf("%s-%04d-%0*d", key.Series, key.Year, key.EntityType.Width(), seq)
}

// DocumentNumber is an issued identifier together with the counter value behind it.
type DocumentNumber struct {
	Number     string     `json:"number"`
	Series     string     `json:"series"`
	Year       int        `json:"year"`
	EntityType EntityType `json:"entityType"`
	Sequence   int64      `json:"sequence"`
}
