package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultListenAddr   = ":8080"
	defaultDatabaseURL  = "stayhub.db"
	defaultJWTSecret    = "change-me-jwt-secret"
	defaultJWTTTL       = "24h"
	defaultSiteCurrency = "EUR"
)

type Config struct {
	AppEnv      string
	ListenAddr  string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	// SiteCurrency is the base currency every cached exchange rate is quoted
	// against. RateAPIKey authenticates against the external rate provider.
	SiteCurrency string
	RateAPIKey   string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.ListenAddr = getEnv("LISTEN_ADDR", defaultListenAddr)
	cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDatabaseURL)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.SiteCurrency = strings.ToUpper(strings.TrimSpace(getEnv("SITE_CURRENCY", defaultSiteCurrency)))
	cfg.RateAPIKey = strings.TrimSpace(os.Getenv("FCA_API_KEY"))

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if len(cfg.SiteCurrency) != 3 {
		return fmt.Errorf("SITE_CURRENCY must be a 3-letter ISO 4217 code, got %q", cfg.SiteCurrency)
	}

	if isProdLike(cfg.AppEnv) {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.RateAPIKey == "" {
			return fmt.Errorf("in prod/release FCA_API_KEY must be set")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
