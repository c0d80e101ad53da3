package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port              int
	LogLevel          string
	AnthropicAPIKey   string
	AnthropicModel    string
	OracleTimeout     time.Duration
	EnrichConcurrency int
	DataSeed          int64
	RegistryPath      string
	NatsURL           string
	NatsToken         string
	DatabaseURL       string
	APIToken          string
	SurveySchedule    string
	SurveyBasins      []string
}

func Load() Config {
	return Config{
		Port:              envInt("PETROSIGHT_PORT", 8760),
		LogLevel:          envStr("LOG_LEVEL", "info"),
		AnthropicAPIKey:   envStr("ANTHROPIC_API_KEY", ""),
		AnthropicModel:    envStr("PETROSIGHT_MODEL", "claude-sonnet-4-20250514"),
		OracleTimeout:     envDuration("ORACLE_TIMEOUT", 45*time.Second),
		EnrichConcurrency: envInt("ENRICH_CONCURRENCY", 4),
		DataSeed:          int64(envInt("DATA_SEED", 42)),
		RegistryPath:      envStr("PETROSIGHT_REGISTRY", ""),
		NatsURL:           envStr("NATS_URL", ""),
		NatsToken:         envStr("NATS_TOKEN", ""),
		DatabaseURL:       envStr("DATABASE_URL", ""),
		APIToken:          envStr("PETROSIGHT_API_TOKEN", ""),
		SurveySchedule:    envStr("SURVEY_SCHEDULE", ""),
		SurveyBasins:      envList("SURVEY_BASINS"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// envDuration accepts Go duration syntax ("30s") or a bare number of seconds.
func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return fallback
}

func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
