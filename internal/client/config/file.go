package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/kanbord/internal/flagx"
	"github.com/dmitrijs2005/kanbord/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the CLI config. Empty values keep the
// current setting.
type FileConfig struct {
	ServerURL      string         `json:"server_url" yaml:"server_url"`
	SessionDB      string         `json:"session_db" yaml:"session_db"`
	RequestTimeout timex.Duration `json:"request_timeout" yaml:"request_timeout"`
}

func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch flagx.FormatOf(path) {
	case flagx.FormatYAML:
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	if fc.ServerURL != "" {
		cfg.ServerURL = fc.ServerURL
	}
	if fc.SessionDB != "" {
		cfg.SessionDB = fc.SessionDB
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
}
