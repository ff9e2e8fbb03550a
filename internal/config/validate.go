package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	if c.TMDB.APIKey == "" {
		errs = append(errs, "tmdb.api_key: required")
	}

	for _, ext := range c.Scanner.Extensions {
		if ext == "" {
			errs = append(errs, "scanner.extensions: empty extension")
		}
	}
	if c.Scanner.Schedule != "" {
		if _, err := cron.ParseStandard(c.Scanner.Schedule); err != nil {
			errs = append(errs, fmt.Sprintf("scanner.schedule: invalid cron expression %q: %v", c.Scanner.Schedule, err))
		}
	}

	return errs
}
