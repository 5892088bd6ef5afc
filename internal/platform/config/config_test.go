package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseViper() *viper.Viper {
	v := viper.New()
	v.Set("PORT", "9090")
	v.Set("STORAGE_BACKEND", "memory")
	v.Set("SEQUENCE_BACKEND", "memory")
	v.Set("CLINIC_TIMEZONE", "UTC")
	v.Set("DIFFERENCE_TOLERANCE", "5.00")
	v.Set("SEQUENCE_MAX_RETRIES", 100)
	v.Set("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	return v
}

func TestFromViper(t *testing.T) {
	cfg, err := fromViper(baseViper())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, BackendMemory, cfg.StorageBackend)
	assert.Equal(t, time.UTC, cfg.ClinicLocation)
	assert.Equal(t, "5", cfg.DifferenceTolerance.String())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
}

func TestFromViper_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"unknown storage", "STORAGE_BACKEND", "mongo"},
		{"unknown sequence backend", "SEQUENCE_BACKEND", "etcd"},
		{"bad timezone", "CLINIC_TIMEZONE", "Mars/Olympus"},
		{"negative tolerance", "DIFFERENCE_TOLERANCE", "-1"},
		{"non-numeric tolerance", "DIFFERENCE_TOLERANCE", "five"},
		{"zero retries", "SEQUENCE_MAX_RETRIES", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := baseViper()
			v.Set(tt.key, tt.value)
			_, err := fromViper(v)
			assert.Error(t, err)
		})
	}
}

func TestFromViper_Timezone(t *testing.T) {
	v := baseViper()
	v.Set("CLINIC_TIMEZONE", "America/Mexico_City")
	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "America/Mexico_City", cfg.ClinicLocation.String())
}
