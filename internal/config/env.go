// This file contains environment variable overrides.

package config

import (
	"os"
	"strings"
	"time"
)

// envOverride declares a single environment variable override. Each entry
// maps an env key (without the TRAPCALC_ prefix) to a function applying it.
type envOverride struct {
	envKey string
	apply  func(*AppConfig, string)
}

// envOverrides is the declarative table of all environment overrides.
// Unparseable values leave the default in place, except for the ones
// checked by Validate.
var envOverrides = []envOverride{
	// Duration overrides
	{"TIMEOUT", func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},
	{"METRICS_LINGER", func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.MetricsLinger = parsed
		}
	}},

	// String overrides
	{"LOG_LEVEL", func(c *AppConfig, v string) {
		c.LogLevel = v
	}},
	{"METRICS_ADDR", func(c *AppConfig, v string) {
		c.MetricsAddr = v
	}},

	// Boolean overrides
	{"HAZARD", func(c *AppConfig, v string) {
		c.Hazard = parseBoolEnv(v, c.Hazard)
	}},
	{"PROGRESS", func(c *AppConfig, v string) {
		c.Progress = parseBoolEnv(v, c.Progress)
	}},
	{"SUMMARY", func(c *AppConfig, v string) {
		c.Summary = parseBoolEnv(v, c.Summary)
	}},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies every TRAPCALC_* variable that is set.
//
// Supported environment variables (all prefixed with TRAPCALC_):
//   - TIMEOUT, METRICS_LINGER, LOG_LEVEL, METRICS_ADDR, HAZARD, PROGRESS, SUMMARY
func applyEnvOverrides(config *AppConfig) {
	for _, o := range envOverrides {
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
