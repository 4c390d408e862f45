package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/iplstats/internal/adapters/chart"
	"github.com/okian/iplstats/internal/adapters/cli/menu"
	"github.com/okian/iplstats/internal/adapters/console"
	"github.com/okian/iplstats/internal/adapters/loader"
	"github.com/okian/iplstats/internal/adapters/repository"
	app "github.com/okian/iplstats/internal/app"
	"github.com/okian/iplstats/internal/config"
	"github.com/okian/iplstats/pkg/logger"
	"github.com/okian/iplstats/pkg/metrics"
)

func main() {
	// Initialize logging on stderr; stdout belongs to the menu.
	if err := logger.Init(); err != nil {
		_, _ = os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Stdin, os.Stdout)
	stop()
	_ = logger.Sync()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// run loads the configured data file and serves the menu until the user
// exits. Errors returned from run happen before the menu starts.
func run(ctx context.Context, in io.Reader, out io.Writer) error {
	loggerInstance := logger.Get()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Validate already rejected unknown levels.
	_ = logger.SetLevelString(cfg.LogLevel)

	var sink app.Sink = chart.New(
		chart.WithOutputDir(cfg.OutputDir),
		chart.WithSize(cfg.ChartWidth, cfg.ChartHeight),
	)
	if cfg.Console {
		sink = app.MultiSink{console.New(out), sink}
	}

	opts := []app.Option{
		app.WithLogger(loggerInstance),
		app.WithSink(sink),
		app.WithTableName(cfg.TableName),
		app.WithLoaderOptions(loader.WithDateColumn(cfg.DateColumn)),
	}
	if cfg.Persist {
		store, err := repository.Open(ctx, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		opts = append(opts, app.WithStore(store))
	}

	svc := app.New(opts...)
	defer func() {
		if err := svc.Close(); err != nil {
			loggerInstance.Warn(ctx, "closing store failed", logger.Error(err))
		}
	}()

	if err := svc.Bootstrap(ctx, cfg.DataPath); err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}

	shell := menu.New(svc,
		menu.WithInput(in),
		menu.WithOutput(out),
		menu.WithLogger(loggerInstance),
	)
	if err := shell.Run(ctx); err != nil {
		loggerInstance.Error(ctx, "menu stopped", logger.Error(err))
	}

	if cfg.MetricsFile != "" {
		metrics.UpdateSystemMetrics()
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			loggerInstance.Warn(ctx, "writing metrics failed", logger.Error(err))
		}
	}
	return nil
}
