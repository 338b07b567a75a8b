// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// devSecret is the development-only JWT signing secret used when JWT_SECRET is
// unset. Load rejects the fallback when APP_ENV=production.
const devSecret = "8syncdev-dev-secret"

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// JWTSecret is the HMAC signing secret for session tokens. Required in production;
	// a development fallback is used otherwise.
	JWTSecret string `mapstructure:"JWT_SECRET"`
	// JWTIssuer is the iss claim; defaults to the platform slug.
	JWTIssuer string `mapstructure:"JWT_ISSUER"`
	// JWTAudience is the aud claim; defaults to the platform slug.
	JWTAudience string `mapstructure:"JWT_AUDIENCE"`
	// JWTAccessTTL is the access token lifetime (e.g. "720h" = 30 days).
	JWTAccessTTL string `mapstructure:"JWT_ACCESS_TTL"`
	// JWTRefreshTTL is the refresh token lifetime (e.g. "2160h" = 90 days).
	JWTRefreshTTL string `mapstructure:"JWT_REFRESH_TTL"`
	// AuthSchemes is the comma-separated allow-list of Authorization header schemes.
	AuthSchemes string `mapstructure:"AUTH_SCHEMES"`
	// PBKDF2Iterations is the PBKDF2 iteration count for password hashing.
	// Must match the value used for existing stored hashes.
	PBKDF2Iterations int `mapstructure:"PBKDF2_ITERATIONS"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`

	// OTLPEndpoint is the OTLP gRPC collector endpoint (e.g. http://localhost:4317).
	// Empty disables telemetry export.
	OTLPEndpoint string `mapstructure:"OTLP_ENDPOINT"`
	// OTLPInsecure forces plaintext OTLP export even for https endpoints.
	OTLPInsecure bool `mapstructure:"OTLP_INSECURE"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "8syncdev")
	v.SetDefault("JWT_AUDIENCE", "8syncdev")
	v.SetDefault("JWT_ACCESS_TTL", "720h")   // 30d
	v.SetDefault("JWT_REFRESH_TTL", "2160h") // 90d
	v.SetDefault("AUTH_SCHEMES", "Bearer,8syncdev,8syncdev-admin")
	v.SetDefault("PBKDF2_ITERATIONS", 310000)
	v.SetDefault("APP_ENV", "")
	v.SetDefault("OTLP_ENDPOINT", "")
	v.SetDefault("OTLP_INSECURE", false)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}

	if cfg.JWTSecret == "" {
		if cfg.Env == "production" {
			return nil, errors.New("config: JWT_SECRET must be set when APP_ENV=production")
		}
		cfg.JWTSecret = devSecret
	}

	if cfg.PBKDF2Iterations <= 0 {
		cfg.PBKDF2Iterations = 310000
	}
	if len(cfg.AuthSchemesList()) == 0 {
		return nil, errors.New("config: AUTH_SCHEMES must list at least one scheme")
	}

	return &cfg, nil
}

// AccessTTL parses JWTAccessTTL as a time.Duration. Returns 720h if unset or invalid.
func (c *Config) AccessTTL() time.Duration {
	d, err := time.ParseDuration(c.JWTAccessTTL)
	if err != nil || d <= 0 {
		return 720 * time.Hour
	}
	return d
}

// RefreshTTL parses JWTRefreshTTL as a time.Duration. Returns 2160h if unset or invalid.
func (c *Config) RefreshTTL() time.Duration {
	d, err := time.ParseDuration(c.JWTRefreshTTL)
	if err != nil || d <= 0 {
		return 2160 * time.Hour
	}
	return d
}

// AuthSchemesList returns the Authorization schemes from the comma-separated config.
func (c *Config) AuthSchemesList() []string {
	if c == nil || c.AuthSchemes == "" {
		return nil
	}
	parts := strings.Split(c.AuthSchemes, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
