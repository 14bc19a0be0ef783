package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/kumarlokesh/morse-tree/internal/morse"
	"github.com/kumarlokesh/morse-tree/internal/tableio"
)

// Config holds all configuration for the application
type Config struct {
	Table  TableConfig  `mapstructure:"table"`
	Codec  CodecConfig  `mapstructure:"codec"`
	Log    LogConfig    `mapstructure:"log"`
	Server ServerConfig `mapstructure:"server"`
}

// TableConfig selects the code table. An empty path means the built-in
// international table.
type TableConfig struct {
	Path   string `mapstructure:"path"`
	Format string `mapstructure:"format"`
}

// CodecConfig holds encoding related configuration
type CodecConfig struct {
	// Strict rejects characters missing from the table instead of skipping them
	Strict bool `mapstructure:"strict"`
}

// LogConfig holds logging related configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// ServerConfig holds HTTP server related configuration
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// EnvPrefix is prepended to environment variable overrides, e.g. MORSE_TABLE_PATH
const EnvPrefix = "MORSE"

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("table.path", "")
	v.SetDefault("table.format", "")

	v.SetDefault("codec.strict", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", true)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", "5s")
	v.SetDefault("server.max_body_bytes", 1<<20)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Table.Format != "" {
		if _, err := tableio.ParseFormat(c.Table.Format); err != nil {
			return err
		}
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server addr cannot be empty")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid shutdown timeout: %s", c.Server.ShutdownTimeout)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid max body size: %d", c.Server.MaxBodyBytes)
	}
	return nil
}

// LoadTable returns the configured code table, or the international table
// when no path is set
func (c *Config) LoadTable() (*morse.CodeTable, error) {
	if c.Table.Path == "" {
		return morse.International(), nil
	}
	var format tableio.Format
	if c.Table.Format != "" {
		f, err := tableio.ParseFormat(c.Table.Format)
		if err != nil {
			return nil, err
		}
		format = f
	}
	return tableio.Load(c.Table.Path, format)
}

// Policy returns the unknown-character policy selected by codec.strict
func (c *Config) Policy() morse.UnknownPolicy {
	if c.Codec.Strict {
		return morse.RejectUnknown
	}
	return morse.SkipUnknown
}
