package config

import "time"

// Config holds runtime settings for the Kanbord CLI.
//
// Fields:
//   - ServerURL: base URL of the REST API, including the /api prefix.
//   - SessionDB: path of the local SQLite file that keeps the session token.
//   - RequestTimeout: per-request HTTP timeout.
//   - Verbose: print debug diagnostics to stderr.
type Config struct {
	ServerURL      string
	SessionDB      string
	RequestTimeout time.Duration
	Verbose        bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:5000/api"
	c.SessionDB = "kanbord.db"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
