package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateBasedToken(t *testing.T) {
	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)

	token := EncodeDateBasedToken(day)
	assert.NotEmpty(t, token)

	decoded, err := DecodeDateBasedToken(token)
	require.NoError(t, err)
	assert.True(t, day.Equal(decoded))
}

func TestDecodeDateBasedToken_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"not base64", "%%%"},
		{"not a date", base64.URLEncoding.EncodeToString([]byte("yesterday"))},
		{"empty", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeDateBasedToken(tc.token)
			assert.Error(t, err)
		})
	}
}
