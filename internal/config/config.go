package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port                     string
	DatabaseURL              string
	DBDriver                 string
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeSeconds int
	DBConnMaxIdleTimeSeconds int
	AutoMigrate              bool
	MaxPageLimit             int
	CORSAllowedOrigins       []string
	WriteRatePerSecond       float64
	WriteRateBurst           int
	GinMode                  string
}

func Default() Config {
	return Config{
		Port:                     "8080",
		DBDriver:                 DriverPostgres,
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           10,
		DBConnMaxLifetimeSeconds: 300,
		DBConnMaxIdleTimeSeconds: 60,
		MaxPageLimit:             100,
		CORSAllowedOrigins:       []string{"*"},
		WriteRatePerSecond:       5,
		WriteRateBurst:           20,
		GinMode:                  "release",
	}
}

func Load() Config {
	cfg := Default()
	if raw := os.Getenv("PORT"); raw != "" {
		cfg.Port = raw
	}
	if raw := os.Getenv("DATABASE_URL"); raw != "" {
		cfg.DatabaseURL = raw
	}
	if raw := strings.ToLower(strings.TrimSpace(os.Getenv("DB_DRIVER"))); raw == DriverPostgres || raw == DriverSQLite {
		cfg.DBDriver = raw
	}
	if raw := os.Getenv("DB_MAX_OPEN_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxOpenConns = value
		}
	}
	if raw := os.Getenv("DB_MAX_IDLE_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxIdleConns = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_LIFETIME_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxLifetimeSeconds = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_IDLE_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxIdleTimeSeconds = value
		}
	}
	if raw := os.Getenv("AUTO_MIGRATE"); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			cfg.AutoMigrate = value
		}
	}
	if raw := os.Getenv("MAX_PAGE_LIMIT"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.MaxPageLimit = value
		}
	}
	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		if origins := splitList(raw); len(origins) > 0 {
			cfg.CORSAllowedOrigins = origins
		}
	}
	if raw := os.Getenv("WRITE_RATE_PER_SECOND"); raw != "" {
		if value, err := strconv.ParseFloat(raw, 64); err == nil && value >= 0 {
			cfg.WriteRatePerSecond = value
		}
	}
	if raw := os.Getenv("WRITE_RATE_BURST"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.WriteRateBurst = value
		}
	}
	switch raw := strings.ToLower(strings.TrimSpace(os.Getenv("GIN_MODE"))); raw {
	case "debug", "release", "test":
		cfg.GinMode = raw
	}
	return cfg
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
