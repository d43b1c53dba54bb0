package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd", "-a", "http://api.test/api", "-s", "/tmp/s.db", "-t", "3"},
			expected: &Config{ServerURL: "http://api.test/api", SessionDB: "/tmp/s.db", RequestTimeout: 3 * time.Second}},
		{name: "foreign flags ignored", args: []string{"cmd", "-x", "1", "-t", "5"},
			expected: &Config{RequestTimeout: 5 * time.Second}},
		{name: "verbose", args: []string{"cmd", "-t", "5", "-v"},
			expected: &Config{RequestTimeout: 5 * time.Second, Verbose: true}},
		{name: "bad timeout", args: []string{"cmd", "-t", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(config, tt.expected))
		})
	}
}
