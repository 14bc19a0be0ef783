package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumarlokesh/morse-tree/internal/morse"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Table.Path)
	assert.False(t, cfg.Codec.Strict)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
table:
  path: letter.txt
  format: text
codec:
  strict: true
log:
  level: debug
server:
  addr: ":9090"
  shutdown_timeout: 2s
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	t.Setenv("MORSE_SERVER_ADDR", ":7070")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "letter.txt", cfg.Table.Path)
	assert.Equal(t, "text", cfg.Table.Format)
	assert.True(t, cfg.Codec.Strict)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "table format", mutate: func(c *Config) { c.Table.Format = "xml" }},
		{name: "log level", mutate: func(c *Config) { c.Log.Level = "loud" }},
		{name: "server addr", mutate: func(c *Config) { c.Server.Addr = "" }},
		{name: "shutdown timeout", mutate: func(c *Config) { c.Server.ShutdownTimeout = 0 }},
		{name: "body size", mutate: func(c *Config) { c.Server.MaxBodyBytes = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadTable(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	table, err := cfg.LoadTable()
	require.NoError(t, err)
	assert.Equal(t, morse.International().Len(), table.Len())
	assert.Equal(t, morse.SkipUnknown, cfg.Policy())

	path := filepath.Join(t.TempDir(), "letter.dat")
	require.NoError(t, os.WriteFile(path, []byte("s ...\no ---\n"), 0o644))
	cfg.Table.Path = path
	cfg.Table.Format = "text"
	cfg.Codec.Strict = true

	table, err = cfg.LoadTable()
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, morse.RejectUnknown, cfg.Policy())
}
