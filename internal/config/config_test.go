package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_AllFields(t *testing.T) {
	path := writeConfig(t, `
[server]
host = "127.0.0.1"
port = 9090
log_level = "debug"

[database]
path = "/var/lib/scanarr/scanarr.db"

[scanner]
extensions = ["mkv", "mp4"]
schedule = "0 3 * * *"

[tmdb]
api_key = "test-key"
language = "de-DE"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "/var/lib/scanarr/scanarr.db", cfg.Database.Path)
	assert.Equal(t, []string{"mkv", "mp4"}, cfg.Scanner.Extensions)
	assert.Equal(t, "0 3 * * *", cfg.Scanner.Schedule)
	assert.Equal(t, "test-key", cfg.TMDB.APIKey)
	assert.Equal(t, "de-DE", cfg.TMDB.Language)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[tmdb]
api_key = "test-key"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8585, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "./data/scanarr.db", cfg.Database.Path)
	assert.Equal(t, "en-US", cfg.TMDB.Language)
	assert.Empty(t, cfg.Scanner.Extensions)
	assert.Empty(t, cfg.Scanner.Schedule)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := writeConfig(t, `[server`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("SCANARR_TEST_KEY", "from-env")
	path := writeConfig(t, `
[tmdb]
api_key = "${SCANARR_TEST_KEY}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.TMDB.APIKey)
}

func TestLoad_EnvSubstitutionMissingVarLeftIntact(t *testing.T) {
	path := writeConfig(t, `
[tmdb]
api_key = "${SCANARR_DEFINITELY_NOT_SET}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "${SCANARR_DEFINITELY_NOT_SET}", cfg.TMDB.APIKey)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Server.LogLevel = "verbose" },
			wantErr: "server.log_level",
		},
		{
			name:    "missing api key",
			mutate:  func(c *Config) { c.TMDB.APIKey = "" },
			wantErr: "tmdb.api_key",
		},
		{
			name:    "bad schedule",
			mutate:  func(c *Config) { c.Scanner.Schedule = "every tuesday" },
			wantErr: "scanner.schedule",
		},
		{
			name:    "empty extension",
			mutate:  func(c *Config) { c.Scanner.Extensions = []string{"mkv", ""} },
			wantErr: "scanner.extensions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Server: ServerConfig{Host: "0.0.0.0", Port: 8585, LogLevel: "info"},
				TMDB:   TMDBConfig{APIKey: "k"},
			}
			tt.mutate(cfg)

			errs := cfg.Validate()
			if tt.wantErr == "" {
				assert.Empty(t, errs)
				return
			}
			require.NotEmpty(t, errs)
			assert.Contains(t, errs[0], tt.wantErr)
		})
	}
}
