package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/kanbord/internal/flagx"
	"github.com/dmitrijs2005/kanbord/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the server config, readable as JSON or
// YAML. Durations use timex.Duration so "168h" and integer nanoseconds both
// work. Empty values leave the current setting untouched.
type FileConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	DatabaseDSN                 string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey                   string         `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	AllowedOrigins              []string       `json:"allowed_origins" yaml:"allowed_origins"`
	LogLevel                    string         `json:"log_level" yaml:"log_level"`
	RateLimitRPS                int            `json:"rate_limit_rps" yaml:"rate_limit_rps"`
	RateLimitBurst              int            `json:"rate_limit_burst" yaml:"rate_limit_burst"`
	ShutdownTimeout             timex.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	EnvFile                     string         `json:"env_file" yaml:"env_file"`
	S3AccessKey                 string         `json:"s3_access_key" yaml:"s3_access_key"`
	S3SecretKey                 string         `json:"s3_secret_key" yaml:"s3_secret_key"`
	S3Bucket                    string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region                    string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
}

// parseFile overlays config with the file named by -c/-config. The format
// follows the file extension. Read or decode errors panic, matching how
// flag errors are handled.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &FileConfig{}
	switch flagx.FormatOf(path) {
	case flagx.FormatYAML:
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *FileConfig) apply(config *Config) {
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if len(c.AllowedOrigins) > 0 {
		config.AllowedOrigins = c.AllowedOrigins
	}
	setString(&config.LogLevel, c.LogLevel)
	if c.RateLimitRPS > 0 {
		config.RateLimitRPS = c.RateLimitRPS
	}
	if c.RateLimitBurst > 0 {
		config.RateLimitBurst = c.RateLimitBurst
	}
	if c.ShutdownTimeout.Duration > 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	setString(&config.EnvFile, c.EnvFile)
	setString(&config.S3AccessKey, c.S3AccessKey)
	setString(&config.S3SecretKey, c.S3SecretKey)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
