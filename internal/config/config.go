package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/fx"
)

// Config carries process configuration, read once from the environment.
type Config struct {
	Environment string
	HTTPAddr    string

	DatabaseDriver string
	DatabaseDSN    string

	// FollowUpInterval is how often the scheduler scans for overdue bills.
	FollowUpInterval time.Duration
	// FollowUpMinOverdueDays is the overdue age at which a follow-up opens.
	FollowUpMinOverdueDays int

	RateLimitPerMinute int

	OTLPEndpoint string
	OTLPProtocol string
}

var Module = fx.Module("config",
	fx.Provide(Load),
)

// Load reads configuration from the environment with local defaults.
func Load() Config {
	return Config{
		Environment:            getenv("CLAIMLEDGER_ENV", "development"),
		HTTPAddr:               getenv("CLAIMLEDGER_HTTP_ADDR", ":8080"),
		DatabaseDriver:         getenv("CLAIMLEDGER_DB_DRIVER", "sqlite"),
		DatabaseDSN:            getenv("CLAIMLEDGER_DB_DSN", "file:claimledger.db?cache=shared"),
		FollowUpInterval:       getduration("CLAIMLEDGER_FOLLOWUP_INTERVAL", time.Hour),
		FollowUpMinOverdueDays: getint("CLAIMLEDGER_FOLLOWUP_MIN_OVERDUE_DAYS", 7),
		RateLimitPerMinute:     getint("CLAIMLEDGER_RATE_LIMIT_PER_MINUTE", 300),
		OTLPEndpoint:           getenv("CLAIMLEDGER_OTLP_ENDPOINT", ""),
		OTLPProtocol:           getenv("CLAIMLEDGER_OTLP_PROTOCOL", "grpc"),
	}
}

// IsProduction reports whether the process runs with production hardening.
func (c Config) IsProduction() bool { return c.Environment == "production" }

func getenv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getint(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getduration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}
