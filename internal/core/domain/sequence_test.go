package domain_test

import (
	"testing"

	"github.com/SscSPs/clinic_cash_register/internal/apperrors"
	"github.com/SscSPs/clinic_cash_register/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDocumentNumber(t *testing.T) {
	assert.Equal(t, "F-2024-001", domain.FormatDocumentNumber(domain.SequenceKey{Series: "F", Year: 2024, EntityType: domain.EntityInvoice}, 1))
	assert.Equal(t, "R-2024-0042", domain.FormatDocumentNumber(domain.SequenceKey{Series: "R", Year: 2024, EntityType: domain.EntityReceipt}, 42))
	// Overflowing the padding widens instead of truncating.
	assert.Equal(t, "F-2024-1234", domain.FormatDocumentNumber(domain.SequenceKey{Series: "F", Year: 2024, EntityType: domain.EntityInvoice}, 1234))
}

func TestNormalizeSeries(t *testing.T) {
	s, err := domain.NormalizeSeries(" fa1 ")
	require.NoError(t, err)
	assert.Equal(t, "FA1", s)

	for _, bad := range []string{"", "  ", "F-1", "ABCDEFGHIJK", "F 1"} {
		_, err := domain.NormalizeSeries(bad)
		assert.Error(t, err, bad)
		assert.Equal(t, "series", apperrors.FieldOf(err), bad)
	}
}

func TestSequenceKey_Validate(t *testing.T) {
	assert.NoError(t, domain.SequenceKey{Series: "F", Year: 2024, EntityType: domain.EntityInvoice}.Validate())
	err := domain.SequenceKey{Series: "F", Year: 2024, EntityType: "ORDER"}.Validate()
	assert.Equal(t, "entityType", apperrors.FieldOf(err))
	err = domain.SequenceKey{Series: "F", Year: 0, EntityType: domain.EntityReceipt}.Validate()
	assert.Equal(t, "year", apperrors.FieldOf(err))
}
