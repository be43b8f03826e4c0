// Command chronostore is an interactive shell over a single in-memory
// engine. It loads the snapshot file on start when one exists and writes it
// back on EXIT, end of input or interrupt.
//
// Configuration comes from flags, each falling back to an environment
// variable:
//
//	-capacity      CHRONO_CAPACITY        (10000)
//	-snapshot      CHRONO_SNAPSHOT        (snapshot.bin)
//	-no-load       CHRONO_NO_LOAD         (false)
//	-sweep         CHRONO_SWEEP_INTERVAL  (500ms)
//	-metrics-addr  CHRONO_METRICS_ADDR    (disabled)
//	-log-level     CHRONO_LOG_LEVEL       (warn)
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	promadapter "github.com/codewandler/chronostore-go/adapters/prometheus"
	"github.com/codewandler/chronostore-go/core/engine"
	"github.com/codewandler/chronostore-go/core/expiry"
	"github.com/codewandler/chronostore-go/internal/env"
)

type config struct {
	Capacity      int
	SnapshotPath  string
	NoLoad        bool
	SweepInterval time.Duration
	MetricsAddr   string
	LogLevel      slog.Level
}

func parseConfig(args []string) (config, error) {
	var (
		cfg      config
		logLevel string
	)

	fs := flag.NewFlagSet("chronostore", flag.ContinueOnError)
	fs.IntVar(&cfg.Capacity, "capacity", env.Int("CHRONO_CAPACITY", 10_000), "maximum number of keys")
	fs.IntVar(&cfg.Capacity, "c", env.Int("CHRONO_CAPACITY", 10_000), "shorthand for -capacity")
	fs.StringVar(&cfg.SnapshotPath, "snapshot", env.String("CHRONO_SNAPSHOT", "snapshot.bin"), "snapshot file")
	fs.StringVar(&cfg.SnapshotPath, "s", env.String("CHRONO_SNAPSHOT", "snapshot.bin"), "shorthand for -snapshot")
	fs.BoolVar(&cfg.NoLoad, "no-load", env.Bool("CHRONO_NO_LOAD", false), "do not load the snapshot on start")
	fs.DurationVar(&cfg.SweepInterval, "sweep", env.Duration("CHRONO_SWEEP_INTERVAL", expiry.DefaultInterval), "expiry sweep interval")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", env.String("CHRONO_METRICS_ADDR", ""), "serve /metrics on this address")
	fs.StringVar(&logLevel, "log-level", env.String("CHRONO_LOG_LEVEL", "warn"), "debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.Capacity <= 0 {
		return cfg, fmt.Errorf("capacity must be positive, got %d", cfg.Capacity)
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return cfg, fmt.Errorf("log level: %w", err)
	}
	return cfg, nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := parseConfig(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(log)

	if err := run(ctx, log, cfg, os.Stdin, os.Stdout); err != nil {
		log.Error("chronostore failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger, cfg config, in io.Reader, out io.Writer) error {
	reg := prometheus.NewRegistry()
	metrics := promadapter.NewAllMetrics(reg)

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		go func() {
			log.Info("prometheus metrics server starting", slog.String("addr", cfg.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("prometheus server error", slog.Any("error", err))
			}
		}()
		defer srv.Shutdown(context.Background())
	}

	eng, err := engine.New(engine.Options{
		ID:            "chronostore",
		Capacity:      cfg.Capacity,
		SnapshotPath:  cfg.SnapshotPath,
		SweepInterval: cfg.SweepInterval,
		Log:           log,
		Metrics:       metrics.Engine,
		ExpiryMetrics: metrics.Expiry,
	})
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	defer eng.Close()

	r := &repl{store: eng, out: out, snapshot: cfg.SnapshotPath, log: log}

	if !cfg.NoLoad {
		if _, statErr := os.Stat(cfg.SnapshotPath); statErr == nil {
			if err := eng.Load(""); err != nil {
				log.Warn("could not load snapshot", slog.String("path", cfg.SnapshotPath), slog.Any("error", err))
				r.printf("  [WARN] Could not load snapshot: %v\n", err)
			} else {
				r.printf("  Loaded %d keys from %q\n", eng.Size(), cfg.SnapshotPath)
			}
		}
	}
	r.printf("  Capacity: %d keys  |  Snapshot: %s\n\n", cfg.Capacity, cfg.SnapshotPath)

	return r.serve(ctx, in)
}
