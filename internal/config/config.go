// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Scanner  ScannerConfig  `toml:"scanner"`
	TMDB     TMDBConfig     `toml:"tmdb"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type ScannerConfig struct {
	// Extensions is the file extension whitelist, without leading dots.
	Extensions []string `toml:"extensions"`
	// Schedule is a cron expression for automatic scans; empty disables them.
	Schedule string `toml:"schedule"`
}

type TMDBConfig struct {
	APIKey   string `toml:"api_key"`
	Language string `toml:"language"`
}

// Load reads the TOML file at path, expands ${VAR} references from the
// environment, and fills in defaults for anything left unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if _, err := toml.Decode(expandEnv(string(data)), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := func(field *string, value string) {
		if *field == "" {
			*field = value
		}
	}
	def(&c.Server.Host, "0.0.0.0")
	if c.Server.Port == 0 {
		c.Server.Port = 8585
	}
	def(&c.Server.LogLevel, "info")
	def(&c.Database.Path, "./data/scanarr.db")
	def(&c.TMDB.Language, "en-US")
}

// expandEnv substitutes ${VAR} with the environment value. References to
// unset variables are left intact so Validate can report them in context.
func expandEnv(content string) string {
	return os.Expand(content, func(name string) string {
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return "${" + name + "}"
	})
}
