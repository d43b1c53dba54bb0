package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// EnvConfig lists the environment variables the server understands.
// PORT, DATABASE_URL and JWT_SECRET are the conventional names used by
// hosting platforms; the KANBORD_ variants win when both are set.
type EnvConfig struct {
	Port                        string        `env:"PORT"`
	EndpointAddrHTTP            string        `env:"KANBORD_HTTP_ADDR"`
	DatabaseURL                 string        `env:"DATABASE_URL"`
	DatabaseDSN                 string        `env:"KANBORD_DATABASE_DSN"`
	JWTSecret                   string        `env:"JWT_SECRET"`
	SecretKey                   string        `env:"KANBORD_SECRET_KEY"`
	AccessTokenValidityDuration time.Duration `env:"KANBORD_TOKEN_TTL"`
	AllowedOrigins              string        `env:"KANBORD_ALLOWED_ORIGINS"`
	LogLevel                    string        `env:"LOG_LEVEL"`
	RateLimitRPS                int           `env:"KANBORD_RATE_LIMIT_RPS"`
	RateLimitBurst              int           `env:"KANBORD_RATE_LIMIT_BURST"`
	ShutdownTimeout             time.Duration `env:"KANBORD_SHUTDOWN_TIMEOUT"`
	S3AccessKey                 string        `env:"KANBORD_S3_ACCESS_KEY"`
	S3SecretKey                 string        `env:"KANBORD_S3_SECRET_KEY"`
	S3Bucket                    string        `env:"KANBORD_S3_BUCKET"`
	S3Region                    string        `env:"KANBORD_S3_REGION"`
	S3BaseEndpoint              string        `env:"KANBORD_S3_BASE_ENDPOINT"`
}

// parseEnv loads config.EnvFile into the process environment (variables
// already set are kept) and overlays config with whatever is set. A missing
// .env file is not an error.
func parseEnv(config *Config) {
	if config.EnvFile != "" {
		if err := godotenv.Load(config.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	e := &EnvConfig{}
	if err := envdecode.Decode(e); err != nil {
		if errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
			return
		}
		panic(err)
	}

	e.apply(config)
}

func (e *EnvConfig) apply(config *Config) {
	if e.Port != "" {
		config.EndpointAddrHTTP = ":" + e.Port
	}
	setString(&config.EndpointAddrHTTP, e.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, e.DatabaseURL)
	setString(&config.DatabaseDSN, e.DatabaseDSN)
	setString(&config.SecretKey, e.JWTSecret)
	setString(&config.SecretKey, e.SecretKey)
	if e.AccessTokenValidityDuration > 0 {
		config.AccessTokenValidityDuration = e.AccessTokenValidityDuration
	}
	if origins := splitList(e.AllowedOrigins); len(origins) > 0 {
		config.AllowedOrigins = origins
	}
	setString(&config.LogLevel, e.LogLevel)
	if e.RateLimitRPS > 0 {
		config.RateLimitRPS = e.RateLimitRPS
	}
	if e.RateLimitBurst > 0 {
		config.RateLimitBurst = e.RateLimitBurst
	}
	if e.ShutdownTimeout > 0 {
		config.ShutdownTimeout = e.ShutdownTimeout
	}
	setString(&config.S3AccessKey, e.S3AccessKey)
	setString(&config.S3SecretKey, e.S3SecretKey)
	setString(&config.S3Bucket, e.S3Bucket)
	setString(&config.S3Region, e.S3Region)
	setString(&config.S3BaseEndpoint, e.S3BaseEndpoint)
}
