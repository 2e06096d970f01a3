// Package config handles configuration for the server,
// including defaults, environment overlay, and command-line flags.
package config

import (
	"errors"
	"time"
)

// Config holds runtime settings for the roleplay API server.
//
// Fields:
//   - RunAddress: bind address for the HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx).
//   - RedisAddr / RedisDB: cache backend address and logical database.
//   - SecretKey: HMAC secret for signing JWTs. Required; no default.
//   - Algorithm: JWT signing algorithm identifier; only HS256 is supported.
//   - AccessTokenValidityDuration: access token (and session entry) lifetime.
//   - CacheTTL: expiry applied to read-through entity cache entries.
type Config struct {
	RunAddress                  string
	DatabaseDSN                 string
	RedisAddr                   string
	RedisDB                     int
	SecretKey                   string
	Algorithm                   string
	AccessTokenValidityDuration time.Duration
	CacheTTL                    time.Duration
}

// LoadDefaults populates Config with development defaults. Connection
// parameters and the signing secret stay empty on purpose: they must be
// supplied by the environment or flags, and Validate enforces that.
func (c *Config) LoadDefaults() {
	c.RunAddress = ":8080"
	c.Algorithm = "HS256"
	c.AccessTokenValidityDuration = 30 * time.Minute
	c.CacheTTL = 60 * time.Second
}

// Validate reports the first missing or unsupported required setting.
// A failure here is fatal at process start, never a per-request error.
func (c *Config) Validate() error {
	if c.DatabaseDSN == "" {
		return errors.New("config: DATABASE_DSN is required")
	}
	if c.RedisAddr == "" {
		return errors.New("config: REDIS_ADDR is required")
	}
	if c.SecretKey == "" {
		return errors.New("config: SECRET_KEY is required")
	}
	if c.Algorithm != "HS256" {
		return errors.New("config: unsupported ALGORITHM, only HS256 is supported")
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment and finally from command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)
	return cfg, nil
}
