// Command lending-demo plays the lending walkthrough against a fully wired Manager,
// prints the late fee table and the event journal, and exits non-zero on any deviation.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AntonStoeckl/lending-tracker-go/config"
	"github.com/AntonStoeckl/lending-tracker-go/journal"
	"github.com/AntonStoeckl/lending-tracker-go/lending"
	"github.com/AntonStoeckl/lending-tracker-go/notify"
	"github.com/AntonStoeckl/lending-tracker-go/notify/amqpnotifier"
	"github.com/AntonStoeckl/lending-tracker-go/readers"
	"github.com/AntonStoeckl/lending-tracker-go/readers/postgres"
)

const (
	exitOK        = 0
	exitDeviation = 1
	exitSetup     = 2

	defaultOTLPEndpoint = "localhost:4317"
)

// flags holds command-line overrides. Only flags given explicitly override the environment.
type flags struct {
	envFile       string
	logLevel      string
	logFormat     string
	observability bool
	strict        bool
	otlpEndpoint  string
	set           map[string]bool
}

func parseFlags(args []string) (flags, error) {
	fs := flag.NewFlagSet("lending-demo", flag.ContinueOnError)

	f := flags{set: make(map[string]bool)}
	fs.StringVar(&f.envFile, "env-file", ".env", "Optional .env file seeding the environment")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "", "Log format: text or json")
	fs.BoolVar(&f.observability, "observability-enabled", false, "Export traces and metrics via OTLP/gRPC")
	fs.BoolVar(&f.strict, "strict", false, "Reject invalid catalog additions")
	fs.StringVar(&f.otlpEndpoint, "otlp-endpoint", defaultOTLPEndpoint, "OTLP/gRPC collector endpoint")

	if err := fs.Parse(args); err != nil {
		return flags{}, err
	}

	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })

	return f, nil
}

func (f flags) applyTo(cfg config.Config) (config.Config, error) {
	if f.set["log-level"] {
		level, err := config.ParseLogLevel(f.logLevel)
		if err != nil {
			return cfg, err
		}
		cfg.LogLevel = level
	}

	if f.set["log-format"] {
		cfg.LogFormat = f.logFormat
	}

	if f.set["observability-enabled"] {
		cfg.ObservabilityEnabled = f.observability
	}

	if f.set["strict"] {
		cfg.StrictValidation = f.strict
	}

	return cfg, cfg.Validate()
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout io.Writer, stderr io.Writer) int {
	f, err := parseFlags(args)
	if err != nil {
		return exitSetup
	}

	cfg, err := config.Load(f.envFile)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "configuration: %v\n", err)
		return exitSetup
	}

	if cfg, err = f.applyTo(cfg); err != nil {
		_, _ = fmt.Fprintf(stderr, "configuration: %v\n", err)
		return exitSetup
	}

	logger := slog.New(cfg.NewLogHandler(stderr))

	registry := readers.NewRegistry()
	notifications := newNotificationLog()
	eventJournal := journal.NewJournal()

	wired, err := wire(ctx, cfg, f, logger, registry, notifications, eventJournal)
	if err != nil {
		logger.Error("wiring the lending manager failed", "error", err.Error())
		return exitSetup
	}
	defer wired.close(logger)

	outcomes, err := runScenario(ctx, wired.manager, registry, notifications)
	if err != nil {
		logger.Error("running the scenario failed", "error", err.Error())
		return exitSetup
	}

	deviations := printOutcomes(stdout, outcomes)
	printFeeTable(stdout, wired.manager)

	if err = printJournal(ctx, stdout, eventJournal); err != nil {
		logger.Error("printing the journal failed", "error", err.Error())
		return exitSetup
	}

	if deviations > 0 {
		_, _ = fmt.Fprintf(stderr, "%d scenario step(s) deviated\n", deviations)
		return exitDeviation
	}

	return exitOK
}

type wiring struct {
	manager   *lending.Manager
	closers   []func() error
	telemetry *telemetry
}

func (w wiring) close(logger *slog.Logger) {
	for _, closeFn := range w.closers {
		if err := closeFn(); err != nil {
			logger.Warn("closing a resource failed", "error", err.Error())
		}
	}

	if w.telemetry != nil {
		if err := w.telemetry.shutdown(); err != nil {
			logger.Warn("telemetry shutdown failed", "error", err.Error())
		}
	}
}

func wire(
	ctx context.Context,
	cfg config.Config,
	f flags,
	logger *slog.Logger,
	registry *readers.Registry,
	notifications *notificationLog,
	eventJournal *journal.Journal,
) (wiring, error) {

	w := wiring{}

	var oracle lending.UserStatusOracle = registry

	if cfg.PostgresEnabled() {
		pgOracle, closePool, err := newPostgresOracle(ctx, cfg, logger)
		if err != nil {
			return w, err
		}
		w.closers = append(w.closers, closePool)
		oracle = anyOracle{registry, pgOracle}
		logger.Info("reader status backed by postgres", "table", cfg.ReadersTable)
	}

	logNotifier, err := notify.NewLogNotifier(logger)
	if err != nil {
		return w, err
	}

	notifiers := []lending.Notifier{notifications, logNotifier}

	if cfg.AMQPEnabled() {
		amqpNotifier, dialErr := amqpnotifier.Dial(cfg.AMQPURL, cfg.AMQPExchange, amqpnotifier.WithContextualLogger(logger))
		if dialErr != nil {
			w.close(logger)
			return wiring{}, dialErr
		}
		w.closers = append(w.closers, amqpNotifier.Close)
		notifiers = append(notifiers, amqpNotifier)
		logger.Info("notifications published to amqp", "exchange", cfg.AMQPExchange)
	}

	options := []lending.Option{lending.WithEventRecorder(eventJournal)}

	if cfg.StrictValidation {
		options = append(options, lending.WithStrictValidation())
	}

	if cfg.ObservabilityEnabled {
		t, telemetryErr := newTelemetry(ctx, f.otlpEndpoint)
		if telemetryErr != nil {
			w.close(logger)
			return wiring{}, telemetryErr
		}
		w.telemetry = t
		options = append(options, t.managerOptions()...)
	} else {
		options = append(options, lending.WithContextualLogger(logger))
	}

	manager, err := lending.NewManager(oracle, notify.NewFanOut(notifiers...), options...)
	if err != nil {
		w.close(logger)
		return wiring{}, err
	}

	w.manager = manager

	return w, nil
}

func newPostgresOracle(ctx context.Context, cfg config.Config, logger *slog.Logger) (*postgres.Oracle, func() error, error) {
	poolConfig, err := cfg.PGXPoolConfig()
	if err != nil {
		return nil, nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to connect to readers database: %w", pingErr)
	}

	oracle, err := postgres.NewOracleFromPGXPool(
		pool,
		postgres.WithTableName(cfg.ReadersTable),
		postgres.WithContextualLogger(logger),
	)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	return oracle, func() error { pool.Close(); return nil }, nil
}

// anyOracle treats a reader as active if any of its oracles does.
type anyOracle []lending.UserStatusOracle

func (a anyOracle) IsUserActive(ctx context.Context, readerID lending.ReaderIDString) bool {
	for _, oracle := range a {
		if oracle.IsUserActive(ctx, readerID) {
			return true
		}
	}

	return false
}

func printOutcomes(w io.Writer, outcomes []stepOutcome) int {
	deviations := 0

	_, _ = fmt.Fprintln(w, "Scenario")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "STEP\tRESULT\tAVAILABLE\tCHECK")

	for _, outcome := range outcomes {
		check := "ok"
		if !outcome.ok() {
			deviations++
			check = fmt.Sprintf("DEVIATION: %v", outcome.deviations)
		}

		_, _ = fmt.Fprintf(tw, "%s\t%t\t%d\t%s\n", outcome.name, outcome.result, outcome.available, check)
	}

	_ = tw.Flush()
	_, _ = fmt.Fprintln(w)

	return deviations
}

func printFeeTable(w io.Writer, manager *lending.Manager) {
	_, _ = fmt.Fprintln(w, "Late fees")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "DAYS\tBESTSELLER\tPREMIUM\tFEE")

	for _, days := range []int{0, 1, 10, 30} {
		for _, bestseller := range []bool{false, true} {
			for _, premium := range []bool{false, true} {
				fee, err := manager.CalculateDynamicLateFee(days, bestseller, premium)
				if err != nil {
					_, _ = fmt.Fprintf(tw, "%d\t%t\t%t\t%v\n", days, bestseller, premium, err)
					continue
				}

				_, _ = fmt.Fprintf(tw, "%d\t%t\t%t\t%.2f\n", days, bestseller, premium, fee)
			}
		}
	}

	_, err := manager.CalculateDynamicLateFee(-1, false, false)
	_, _ = fmt.Fprintf(tw, "%d\t%t\t%t\t%v\n", -1, false, false, err)

	_ = tw.Flush()
	_, _ = fmt.Fprintln(w)
}

func printJournal(ctx context.Context, w io.Writer, eventJournal *journal.Journal) error {
	events, err := eventJournal.Query(ctx, journal.BuildFilter().MatchingAnyEvent())
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(w, "Journal")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "SEQ\tEVENT\tOCCURRED AT\tPAYLOAD")

	for _, event := range events {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", event.SequenceNumber, event.EventType, event.OccurredAt.Format("15:04:05.000000"), event.PayloadJSON)
	}

	_ = tw.Flush()

	loans, err := eventJournal.CurrentLoans(ctx)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "\nOpen loans: %v\n", loans)

	return nil
}
