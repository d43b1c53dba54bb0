// Package config loads runtime configuration for the Kanbord CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected via -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the API (default "http://localhost:5000/api")
//	-s string   path of the local session database
//	-t int      request timeout (seconds)
//	-v          debug diagnostics on stderr
//
// # File schema
//
// Timeouts use timex.Duration, so values can be strings like "10s" or
// integer nanoseconds:
//
//	{
//	  "server_url": "http://localhost:5000/api",
//	  "session_db": "kanbord.db",
//	  "request_timeout": "10s"
//	}
package config
