// Package config holds the trapcalc run configuration: the worker count from
// the command line, the fixed integration constants, and the optional
// TRAPCALC_* environment overrides.
package config

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	apperrors "github.com/agbru/trapcalc/internal/errors"
	"github.com/agbru/trapcalc/internal/logging"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TRAPCALC_"

// Fixed run constants. They are not configurable.
const (
	DefaultA      = 0.0
	DefaultB      = 100.0
	DefaultNStart = 10
	DefaultNEnd   = 1000
	DefaultNStep  = 10
)

// DefaultTimeout bounds the whole sweep.
const DefaultTimeout = 5 * time.Minute

// AppConfig aggregates everything a run needs.
type AppConfig struct {
	// Workers is the team size for every reduction (the positional argument).
	Workers int

	// A and B are the integration bounds.
	A, B float64
	// NStart, NEnd and NStep describe the subdivision sweep.
	NStart, NEnd, NStep int

	// Hazard selects the unsynchronized reducer for the first pass. When
	// false both passes use the synchronized reducer.
	Hazard bool
	// Progress shows a spinner on stderr while sweeping.
	Progress bool
	// Summary prints a one-line summary after the sweep.
	Summary bool
	// LogLevel is the minimum zerolog level name.
	LogLevel string
	// MetricsAddr, when set, serves Prometheus metrics on that address.
	MetricsAddr string
	// MetricsLinger keeps the metrics endpoint up this long after a
	// completed sweep. Zero stops it with the sweep.
	MetricsLinger time.Duration
	// Timeout bounds the whole sweep.
	Timeout time.Duration
}

// Default returns the configuration used when only the worker count is known.
func Default() AppConfig {
	return AppConfig{
		A:        DefaultA,
		B:        DefaultB,
		NStart:   DefaultNStart,
		NEnd:     DefaultNEnd,
		NStep:    DefaultNStep,
		Hazard:   true,
		LogLevel: "warn",
		Timeout:  DefaultTimeout,
	}
}

// ParseConfig parses the command line (a single positional worker count)
// and applies environment overrides.
//
// Any usage problem, including -h, prints the usage text to errWriter and
// returns an apperrors.UsageError; callers exit 0 in that case.
//
// Parameters:
//   - programName: The name shown in the usage text.
//   - args: The command-line arguments, without the program name.
//   - errWriter: The writer that receives the usage text.
//
// Returns:
//   - AppConfig: The validated configuration.
//   - error: An apperrors.UsageError for a bad command line, or an
//     apperrors.ConfigError for an invalid TRAPCALC_* value.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := Default()

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		PrintUsage(errWriter, programName)
		return AppConfig{}, apperrors.UsageError{Cause: err}
	}
	if fs.NArg() != 1 {
		PrintUsage(errWriter, programName)
		return AppConfig{}, apperrors.UsageError{Cause: fmt.Errorf("expected 1 argument, got %d", fs.NArg())}
	}
	workers, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		PrintUsage(errWriter, programName)
		return AppConfig{}, apperrors.UsageError{Cause: err}
	}
	if workers < 1 {
		PrintUsage(errWriter, programName)
		return AppConfig{}, apperrors.UsageError{
			Cause: apperrors.ValidationError{Field: "number of threads", Message: fmt.Sprintf("must be positive, got %d", workers)},
		}
	}
	cfg.Workers = workers

	applyEnvOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// PrintUsage writes the usage text.
func PrintUsage(w io.Writer, programName string) {
	fmt.Fprintf(w, "usage: %s <number of threads>\n", programName)
	fmt.Fprintf(w, "   number of trapezoids must be evenly divisible by\n")
	fmt.Fprintf(w, "   number of threads\n")
}

// Validate checks the values that can come from the environment.
func (c AppConfig) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("invalid %sLOG_LEVEL %q: %v", EnvPrefix, c.LogLevel, err)
	}
	if c.MetricsLinger < 0 {
		return apperrors.NewConfigError("invalid %sMETRICS_LINGER %s: must not be negative", EnvPrefix, c.MetricsLinger)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("invalid %sTIMEOUT %s: must be positive", EnvPrefix, c.Timeout)
	}
	return nil
}
