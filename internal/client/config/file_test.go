package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "cli.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"server_url":"http://json/api","request_timeout":"4s"}`), 0o600))
	yamlPath := filepath.Join(dir, "cli.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("session_db: other.db\nrequest_timeout: 2s\n"), 0o600))
	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte(`{ nope`), 0o600))

	t.Run("json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", jsonPath}
		cfg := &Config{}
		cfg.LoadDefaults()
		parseFile(cfg)

		assert.Equal(t, "http://json/api", cfg.ServerURL)
		assert.Equal(t, "kanbord.db", cfg.SessionDB)
		assert.Equal(t, 4*time.Second, cfg.RequestTimeout)
	})

	t.Run("yaml", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", yamlPath}
		cfg := &Config{}
		cfg.LoadDefaults()
		parseFile(cfg)

		assert.Equal(t, "http://localhost:5000/api", cfg.ServerURL)
		assert.Equal(t, "other.db", cfg.SessionDB)
		assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	})

	t.Run("no file", func(t *testing.T) {
		os.Args = []string{"testbin"}
		cfg := &Config{ServerURL: "keep"}
		parseFile(cfg)
		assert.Equal(t, "keep", cfg.ServerURL)
	})

	t.Run("invalid", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", badPath}
		require.Panics(t, func() { parseFile(&Config{}) })
	})
}
