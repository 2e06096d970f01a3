package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envOverlay mirrors Config with pointer fields so that only variables that
// are actually set in the environment override earlier values. Durations are
// accepted as plain integers (minutes/seconds) to match how deployments
// already configure them.
type envOverlay struct {
	RunAddress               *string `env:"RUN_ADDRESS"`
	DatabaseDSN              *string `env:"DATABASE_DSN"`
	RedisAddr                *string `env:"REDIS_ADDR"`
	RedisDB                  *int    `env:"REDIS_DB"`
	SecretKey                *string `env:"SECRET_KEY"`
	Algorithm                *string `env:"ALGORITHM"`
	AccessTokenExpireMinutes *int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES"`
	CacheTTLSeconds          *int    `env:"CACHE_TTL_SECONDS"`
}

func parseEnv(cfg *Config) error {
	var o envOverlay
	if err := env.Parse(&o); err != nil {
		return err
	}

	if o.RunAddress != nil {
		cfg.RunAddress = *o.RunAddress
	}
	if o.DatabaseDSN != nil {
		cfg.DatabaseDSN = *o.DatabaseDSN
	}
	if o.RedisAddr != nil {
		cfg.RedisAddr = *o.RedisAddr
	}
	if o.RedisDB != nil {
		cfg.RedisDB = *o.RedisDB
	}
	if o.SecretKey != nil {
		cfg.SecretKey = *o.SecretKey
	}
	if o.Algorithm != nil {
		cfg.Algorithm = *o.Algorithm
	}
	if o.AccessTokenExpireMinutes != nil {
		cfg.AccessTokenValidityDuration = time.Duration(*o.AccessTokenExpireMinutes) * time.Minute
	}
	if o.CacheTTLSeconds != nil {
		cfg.CacheTTL = time.Duration(*o.CacheTTLSeconds) * time.Second
	}

	return nil
}
