package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/agbru/trapcalc/internal/cli"
	"github.com/agbru/trapcalc/internal/config"
	apperrors "github.com/agbru/trapcalc/internal/errors"
	"github.com/agbru/trapcalc/internal/integrate"
	"github.com/agbru/trapcalc/internal/logging"
	"github.com/agbru/trapcalc/internal/metrics"
	"github.com/agbru/trapcalc/internal/orchestration"
	"github.com/agbru/trapcalc/internal/server"
	"github.com/agbru/trapcalc/internal/sysmon"
	"github.com/agbru/trapcalc/internal/ui"
)

// Application represents the trapcalc application instance.
type Application struct {
	Config    config.AppConfig
	Integrand integrate.Integrand
	ErrWriter io.Writer

	// isTerminal reports whether ErrWriter is attached to a terminal.
	isTerminal func(w io.Writer) bool
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithIntegrand replaces the default f(x) = x² integrand.
func WithIntegrand(f integrate.Integrand) AppOption {
	return func(a *Application) { a.Integrand = f }
}

// WithTerminalCheck overrides terminal detection for the progress spinner.
func WithTerminalCheck(fn func(w io.Writer) bool) AppOption {
	return func(a *Application) { a.isTerminal = fn }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name used in the usage text.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{
		ErrWriter:  errWriter,
		Integrand:  integrate.Square,
		isTerminal: isTerminalWriter,
	}
	for _, opt := range opts {
		opt(app)
	}

	programName := "trapcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		if !IsUsageError(err) {
			fmt.Fprintf(errWriter, "Error: %v\n", err)
		}
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the sweep and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	level, err := logging.ParseLevel(a.Config.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	logger := logging.NewLeveledLogger(
		zerolog.ConsoleWriter{Out: a.ErrWriter, NoColor: true, TimeFormat: "15:04:05"},
		"trapcalc", level)
	ui.InitTheme(false)

	// Setup lifecycle (signals for the whole run, timeout for the sweep only)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()
	sweepCtx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()

	opts := []orchestration.SweepOption{
		orchestration.WithPresenter(cli.CLIDiscrepancyPresenter{}, out),
		orchestration.WithLogger(logger),
	}
	if a.Config.Progress && a.isTerminal(a.ErrWriter) {
		opts = append(opts, orchestration.WithProgressReporter(cli.CLIProgressReporter{}, a.ErrWriter))
	}
	if a.Config.MetricsAddr != "" {
		m := metrics.NewSweepMetrics()
		opts = append(opts, orchestration.WithObserver(m))
		stopServer := a.startMetricsServer(ctx, m, logger)
		defer stopServer()
	}

	first, second := a.reducers()
	logger.Debug("starting sweep",
		logging.Int("workers", a.Config.Workers),
		logging.String("first", first.Name()),
		logging.String("second", second.Name()))

	cli.DisplayPrompt(out)
	res, err := orchestration.RunSweep(sweepCtx, a.sweepConfig(), first, second, opts...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = apperrors.TimeoutError{Operation: "sweep", Limit: a.Config.Timeout}
		}
		logger.Error("sweep aborted", err, logging.Int("iterations", res.Iterations))
		return apperrors.ExitCodeFor(err)
	}

	logger.Debug("sweep finished",
		logging.Int("iterations", res.Iterations),
		logging.Int("discrepancies", len(res.Discrepancies)),
		logging.Duration("duration", res.Duration))
	logger.Debug("host snapshot", sysmon.Sample(ctx).Fields()...)

	if a.Config.Summary {
		cli.DisplaySummary(out, cli.SummaryInfo{
			Result:  res,
			Workers: a.Config.Workers,
			Hazard:  a.Config.Hazard,
			NStart:  a.Config.NStart,
			NStep:   a.Config.NStep,
		})
	}
	a.lingerMetrics(ctx, logger)
	return apperrors.ExitSuccess
}

// lingerMetrics keeps the metrics endpoint up for MetricsLinger after a
// completed sweep so the final values can be scraped. A signal ends the wait.
func (a *Application) lingerMetrics(ctx context.Context, logger logging.Logger) {
	if a.Config.MetricsAddr == "" || a.Config.MetricsLinger <= 0 {
		return
	}
	logger.Info("sweep done, metrics endpoint stays up",
		logging.String("addr", a.Config.MetricsAddr),
		logging.Duration("linger", a.Config.MetricsLinger))
	timer := time.NewTimer(a.Config.MetricsLinger)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// reducers returns the pair compared by the sweep. Without hazard mode the
// synchronized reducer runs twice, which must never report a discrepancy.
func (a *Application) reducers() (first, second integrate.Reducer) {
	second = integrate.NewSynchronizedReducer(a.Integrand)
	if a.Config.Hazard {
		return integrate.NewUnsynchronizedReducer(a.Integrand), second
	}
	return integrate.NewSynchronizedReducer(a.Integrand), second
}

func (a *Application) sweepConfig() orchestration.SweepConfig {
	return orchestration.SweepConfig{
		Interval: integrate.Interval{A: a.Config.A, B: a.Config.B},
		NStart:   a.Config.NStart,
		NEnd:     a.Config.NEnd,
		NStep:    a.Config.NStep,
		Workers:  a.Config.Workers,
	}
}

// startMetricsServer serves m in the background. A server failure is logged
// and does not stop the sweep. The returned function shuts the server down
// and waits for it.
func (a *Application) startMetricsServer(ctx context.Context, m *metrics.SweepMetrics, logger logging.Logger) func() {
	srvCtx, cancel := context.WithCancel(ctx)
	srv := server.New(a.Config.MetricsAddr, m.Handler(), logger)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := srv.Run(srvCtx); err != nil {
			logger.Error("metrics server stopped", err, logging.String("addr", a.Config.MetricsAddr))
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

// IsUsageError reports whether err means the usage text was printed.
func IsUsageError(err error) bool {
	var usageErr apperrors.UsageError
	return errors.As(err, &usageErr)
}

func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
