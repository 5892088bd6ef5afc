package domain_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/SscSPs/clinic_cash_register/internal/apperrors"
	"github.com/SscSPs/clinic_cash_register/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNominal(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.Nominal
		wantErr bool
	}{
		{"500", 50000, false},
		{"5", 500, false},
		{"2", 200, false},
		{"0.5", 50, false},
		{"0.50", 50, false},
		{"0.05", 5, false},
		{"0.01", 1, false},
		{"1000", 0, true},
		{"0.03", 0, true},
		{"0.001", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseNominal(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperrors.ErrValidation))
				assert.Equal(t, "denominationCount", apperrors.FieldOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNominal_String(t *testing.T) {
	assert.Equal(t, "500", domain.Nominal(50000).String())
	assert.Equal(t, "0.5", domain.Nominal(50).String())
	assert.Equal(t, "0.05", domain.Nominal(5).String())
	assert.True(t, domain.Nominal(500).IsNote())
	assert.False(t, domain.Nominal(200).IsNote())
}

func TestDenominationCount_Total(t *testing.T) {
	// Float arithmetic would drift on sums like these; cents must not.
	count, err := domain.NewDenominationCount(map[domain.Nominal]int64{
		50000: 1,
		1000:  3,
		10:    7,
		1:     3,
		20:    11,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(50000+3000+70+3+220), count.TotalCents())
	assert.Equal(t, "532.93", count.Total().StringFixed(2))
	assert.Equal(t, "530.00", count.NotesTotal().StringFixed(2))
	assert.Equal(t, "2.93", count.CoinsTotal().StringFixed(2))
}

func TestDenominationCount_EveryNominal(t *testing.T) {
	counts := map[domain.Nominal]int64{}
	var expected int64
	for i, n := range append(append([]domain.Nominal{}, domain.NoteNominals...), domain.CoinNominals...) {
		q := int64(i + 1)
		counts[n] = q
		expected += int64(n) * q
	}
	count, err := domain.NewDenominationCount(counts)
	require.NoError(t, err)
	assert.Equal(t, expected, count.TotalCents())
	assert.Len(t, count.Nominals(), 15)
	assert.Equal(t, domain.Nominal(50000), count.Nominals()[0])
}

func TestDenominationCount_Validation(t *testing.T) {
	_, err := domain.NewDenominationCount(map[domain.Nominal]int64{500: -1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	_, err = domain.NewDenominationCount(map[domain.Nominal]int64{300: 1})
	require.Error(t, err)
	assert.Equal(t, "denominationCount", apperrors.FieldOf(err))

	_, err = domain.NewDenominationCount(map[domain.Nominal]int64{100: domain.MaxDenominationQuantity + 1})
	require.Error(t, err)

	empty, err := domain.NewDenominationCount(nil)
	require.NoError(t, err)
	assert.True(t, empty.Total().IsZero())
}

func TestDenominationCount_JSON(t *testing.T) {
	var count domain.DenominationCount
	err := json.Unmarshal([]byte(`{"counts":{"20":3,"0.50":4,"0.05":1}}`), &count)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count.Counts[2000])
	assert.Equal(t, int64(4), count.Counts[50])
	assert.Equal(t, "62.05", count.Total().StringFixed(2))

	out, err := json.Marshal(count)
	require.NoError(t, err)
	assert.JSONEq(t, `{"counts":{"20":3,"0.5":4,"0.05":1}}`, string(out))

	err = json.Unmarshal([]byte(`{"counts":{"3":1}}`), &count)
	assert.Error(t, err)
}

func TestDenominationCount_Clone(t *testing.T) {
	count, err := domain.NewDenominationCount(map[domain.Nominal]int64{500: 1})
	require.NoError(t, err)
	clone := count.Clone()
	clone.Counts[500] = 9
	assert.Equal(t, int64(1), count.Counts[500])
}
