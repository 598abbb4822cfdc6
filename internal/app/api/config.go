package api

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/shop-users-api/internal/shared/links"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port              string
	APIPrefix         string
	PublicBaseURL     string
	PostgresDSN       string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	LogLevel          slog.Level
	Environment       string
	ShutdownTimeout   time.Duration
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("api_prefix", links.DefaultPrefix)
	v.SetDefault("public_base_url", "http://localhost:8080")
	v.SetDefault("postgres_dsn", "")
	v.SetDefault("temporal_address", client.DefaultHostPort)
	v.SetDefault("temporal_namespace", client.DefaultNamespace)
	v.SetDefault("temporal_disabled", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("environment", "local")
	v.SetDefault("shutdown_timeout_seconds", 10)
	v.AutomaticEnv()

	cfg := Config{
		Port:              strings.TrimSpace(v.GetString("port")),
		APIPrefix:         strings.TrimSpace(v.GetString("api_prefix")),
		PublicBaseURL:     strings.TrimRight(strings.TrimSpace(v.GetString("public_base_url")), "/"),
		PostgresDSN:       strings.TrimSpace(v.GetString("postgres_dsn")),
		TemporalAddress:   strings.TrimSpace(v.GetString("temporal_address")),
		TemporalNamespace: strings.TrimSpace(v.GetString("temporal_namespace")),
		TemporalDisabled:  v.GetBool("temporal_disabled"),
		Environment:       strings.TrimSpace(v.GetString("environment")),
		ShutdownTimeout:   time.Duration(v.GetInt("shutdown_timeout_seconds")) * time.Second,
	}
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT must not be empty")
	}
	if !strings.HasPrefix(cfg.APIPrefix, "/") {
		return Config{}, fmt.Errorf("API_PREFIX must start with /, got %q", cfg.APIPrefix)
	}
	if u, err := url.Parse(cfg.PublicBaseURL); err != nil || !u.IsAbs() || u.Host == "" {
		return Config{}, fmt.Errorf("PUBLIC_BASE_URL must be an absolute URL, got %q", cfg.PublicBaseURL)
	}
	if cfg.ShutdownTimeout <= 0 {
		return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be a positive integer")
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("log_level"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return cfg, nil
}
