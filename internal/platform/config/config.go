package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Storage and sequence backends.
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	JWTSecret      string
	LogLevel       string
	MigrationsPath string

	StorageBackend  string
	SequenceBackend string
	RedisURL        string

	// ClinicLocation decides which calendar day "today" is and the year of new document numbers.
	ClinicLocation            *time.Location
	DifferenceTolerance       decimal.Decimal
	RequireNotesOnDiscrepancy bool
	SequenceMaxRetries        int

	RateLimitDocumentNumbers string // ulule/limiter format, e.g. "600-M"
	CORSAllowedOrigins       []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("STORAGE_BACKEND", BackendPostgres)
	v.SetDefault("SEQUENCE_BACKEND", BackendPostgres)
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("CLINIC_TIMEZONE", "UTC")
	v.SetDefault("DIFFERENCE_TOLERANCE", "5.00")
	v.SetDefault("REQUIRE_NOTES_ON_DISCREPANCY", false)
	v.SetDefault("SEQUENCE_MAX_RETRIES", 100)
	v.SetDefault("RATE_LIMIT_DOCUMENT_NUMBERS", "600-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:               v.GetString("PGSQL_URL"),
		Port:                      v.GetString("PORT"),
		IsProduction:              v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:             v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:                 v.GetString("JWT_SECRET"),
		LogLevel:                  strings.ToLower(v.GetString("LOG_LEVEL")),
		MigrationsPath:            v.GetString("MIGRATIONS_PATH"),
		StorageBackend:            strings.ToLower(v.GetString("STORAGE_BACKEND")),
		SequenceBackend:           strings.ToLower(v.GetString("SEQUENCE_BACKEND")),
		RedisURL:                  v.GetString("REDIS_URL"),
		RequireNotesOnDiscrepancy: v.GetBool("REQUIRE_NOTES_ON_DISCREPANCY"),
		SequenceMaxRetries:        v.GetInt("SEQUENCE_MAX_RETRIES"),
		RateLimitDocumentNumbers:  v.GetString("RATE_LIMIT_DOCUMENT_NUMBERS"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageBackend {
	case BackendPostgres, BackendMemory:
	default:
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q: must be %s or %s", cfg.StorageBackend, BackendPostgres, BackendMemory)
	}
	switch cfg.SequenceBackend {
	case BackendPostgres, BackendRedis, BackendMemory:
	default:
		return nil, fmt.Errorf("invalid SEQUENCE_BACKEND %q: must be %s, %s or %s", cfg.SequenceBackend, BackendPostgres, BackendRedis, BackendMemory)
	}
	if cfg.SequenceBackend == BackendMemory && cfg.StorageBackend == BackendPostgres {
		log.Println("Warning: SEQUENCE_BACKEND=memory loses counters on restart; use postgres or redis in production.")
	}
	if cfg.DatabaseURL == "" && (cfg.StorageBackend == BackendPostgres || cfg.SequenceBackend == BackendPostgres) {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	loc, err := time.LoadLocation(v.GetString("CLINIC_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid CLINIC_TIMEZONE: %w", err)
	}
	cfg.ClinicLocation = loc

	tolerance, err := decimal.NewFromString(v.GetString("DIFFERENCE_TOLERANCE"))
	if err != nil || tolerance.IsNegative() {
		return nil, fmt.Errorf("invalid DIFFERENCE_TOLERANCE %q: must be a non-negative amount", v.GetString("DIFFERENCE_TOLERANCE"))
	}
	cfg.DifferenceTolerance = tolerance

	if cfg.SequenceMaxRetries < 1 {
		return nil, fmt.Errorf("invalid SEQUENCE_MAX_RETRIES %d: must be at least 1", cfg.SequenceMaxRetries)
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if o := strings.TrimSpace(origin); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	if cfg.IsProduction && cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET is the insecure default in production.")
	}

	return cfg, nil
}
