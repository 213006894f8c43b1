package config

import (
	"bytes"
	"errors"
	"flag"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/trapcalc/internal/errors"
)

const wantUsage = "usage: trapcalc <number of threads>\n" +
	"   number of trapezoids must be evenly divisible by\n" +
	"   number of threads\n"

func TestParseConfig_Valid(t *testing.T) {
	var errBuf bytes.Buffer
	cfg, err := ParseConfig("trapcalc", []string{"4"}, &errBuf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.A != 0 || cfg.B != 100 {
		t.Errorf("bounds = [%v, %v], want [0, 100]", cfg.A, cfg.B)
	}
	if cfg.NStart != 10 || cfg.NEnd != 1000 || cfg.NStep != 10 {
		t.Errorf("sweep = %d..%d step %d, want 10..1000 step 10", cfg.NStart, cfg.NEnd, cfg.NStep)
	}
	if !cfg.Hazard {
		t.Error("hazard mode should be on by default")
	}
	if errBuf.Len() != 0 {
		t.Errorf("no usage expected, got %q", errBuf.String())
	}
}

func TestParseConfig_Usage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing argument", nil},
		{"too many arguments", []string{"2", "3"}},
		{"not a number", []string{"four"}},
		{"zero workers", []string{"0"}},
		{"help flag", []string{"-h"}},
		{"unknown flag", []string{"--threads", "2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errBuf bytes.Buffer
			_, err := ParseConfig("trapcalc", tt.args, &errBuf)
			var usageErr apperrors.UsageError
			if !errors.As(err, &usageErr) {
				t.Fatalf("expected UsageError, got %v", err)
			}
			if apperrors.ExitCodeFor(err) != apperrors.ExitSuccess {
				t.Errorf("usage errors must exit 0, got %d", apperrors.ExitCodeFor(err))
			}
			if errBuf.String() != wantUsage {
				t.Errorf("usage = %q, want %q", errBuf.String(), wantUsage)
			}
		})
	}
}

func TestParseConfig_HelpIsErrHelp(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := ParseConfig("trapcalc", []string{"--help"}, &errBuf)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("expected flag.ErrHelp in chain, got %v", err)
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv("TRAPCALC_HAZARD", "no")
	t.Setenv("TRAPCALC_PROGRESS", "1")
	t.Setenv("TRAPCALC_SUMMARY", "TRUE")
	t.Setenv("TRAPCALC_LOG_LEVEL", "debug")
	t.Setenv("TRAPCALC_METRICS_ADDR", "127.0.0.1:9464")
	t.Setenv("TRAPCALC_TIMEOUT", "30s")
	t.Setenv("TRAPCALC_METRICS_LINGER", "15s")

	cfg, err := ParseConfig("trapcalc", []string{"2"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Hazard || !cfg.Progress || !cfg.Summary {
		t.Errorf("booleans not applied: %+v", cfg)
	}
	if cfg.LogLevel != "debug" || cfg.MetricsAddr != "127.0.0.1:9464" {
		t.Errorf("strings not applied: %+v", cfg)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.MetricsLinger != 15*time.Second {
		t.Errorf("MetricsLinger = %v, want 15s", cfg.MetricsLinger)
	}
}

func TestParseConfig_InvalidEnvIgnoredOrRejected(t *testing.T) {
	t.Run("unparseable timeout keeps default", func(t *testing.T) {
		t.Setenv("TRAPCALC_TIMEOUT", "soon")
		cfg, err := ParseConfig("trapcalc", []string{"1"}, &bytes.Buffer{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Timeout != DefaultTimeout {
			t.Errorf("Timeout = %v, want default %v", cfg.Timeout, DefaultTimeout)
		}
	})

	t.Run("unknown log level is a config error", func(t *testing.T) {
		t.Setenv("TRAPCALC_LOG_LEVEL", "chatty")
		_, err := ParseConfig("trapcalc", []string{"1"}, &bytes.Buffer{})
		var configErr apperrors.ConfigError
		if !errors.As(err, &configErr) {
			t.Fatalf("expected ConfigError, got %v", err)
		}
		if !strings.Contains(err.Error(), "TRAPCALC_LOG_LEVEL") {
			t.Errorf("error should name the variable: %v", err)
		}
	})

	t.Run("negative metrics linger is a config error", func(t *testing.T) {
		t.Setenv("TRAPCALC_METRICS_LINGER", "-5s")
		_, err := ParseConfig("trapcalc", []string{"1"}, &bytes.Buffer{})
		if apperrors.ExitCodeFor(err) != apperrors.ExitErrorConfig {
			t.Errorf("expected config exit code, got %v", err)
		}
		if err == nil || !strings.Contains(err.Error(), "TRAPCALC_METRICS_LINGER") {
			t.Errorf("error should name the variable: %v", err)
		}
	})

	t.Run("negative timeout is a config error", func(t *testing.T) {
		t.Setenv("TRAPCALC_TIMEOUT", "-1s")
		_, err := ParseConfig("trapcalc", []string{"1"}, &bytes.Buffer{})
		if apperrors.ExitCodeFor(err) != apperrors.ExitErrorConfig {
			t.Errorf("expected config exit code, got %v", err)
		}
	})
}

func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		in   string
		def  bool
		want bool
	}{
		{"yes", false, true},
		{"0", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.in, tt.def); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.in, tt.def, got, tt.want)
		}
	}
}
