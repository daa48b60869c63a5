package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/essaysim/internal/config"
	"github.com/kailas-cloud/essaysim/internal/repository/corpus"
	"github.com/kailas-cloud/essaysim/internal/version"
)

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Compare every pair of essays in a corpus and write the results",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "corpus", Usage: "Corpus CSV (overrides corpus.path)"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Result file, - for stdout (overrides output.path)"},
			&cli.StringFlag{Name: "format", Usage: "Result format: csv or sqlite (overrides output.format)"},
			&cli.StringSliceFlag{Name: "methods", Aliases: []string{"m"}, Usage: "Methods to run (overrides scoring.methods)"},
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "Worker count (overrides scoring.workers)"},
		},
		Action: runAction,
	}
}

// applyRunFlags overrides config values with run flags and revalidates.
func applyRunFlags(c *cli.Context, cfg *config.Config) error {
	if v := c.String("corpus"); v != "" {
		cfg.Corpus.Path = v
	}
	if v := c.String("format"); v != "" {
		if c.String("output") == "" && cfg.Output.Path == "results."+cfg.Output.Format {
			cfg.Output.Path = "results." + v
		}
		cfg.Output.Format = v
	}
	if v := c.String("output"); v != "" {
		cfg.Output.Path = v
	}
	if v := c.StringSlice("methods"); len(v) > 0 {
		var names []string
		for _, s := range v {
			names = append(names, strings.Split(s, ",")...)
		}
		cfg.Scoring.Methods = names
	}
	if v := c.Int("workers"); v > 0 {
		cfg.Scoring.Workers = v
	}
	if cfg.Corpus.Path == "" {
		return errors.New("corpus path is required (--corpus or corpus.path)")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func runAction(c *cli.Context) error {
	cfg, env, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := applyRunFlags(c, &cfg); err != nil {
		return err
	}

	logger, err := newLogger(env, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting essaysim run",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.String("corpus", cfg.Corpus.Path),
		zap.Strings("methods", cfg.Scoring.Methods),
		zap.Int("workers", cfg.Scoring.Workers),
	)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Port > 0 {
		shutdown := serveMetrics(cfg.Metrics.Port, logger)
		defer shutdown()
	}

	a, err := buildApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	essays, err := corpus.LoadEssays(cfg.Corpus.Path, cfg.Corpus.IDColumn, cfg.Corpus.TextColumn)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	logger.Info("Corpus loaded", zap.Int("essays", len(essays)))

	table, err := a.compare.Run(ctx, essays, a.methods)
	if err != nil {
		return err
	}

	if err := buildSink(cfg.Output).Write(ctx, table); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	logger.Info("Results written",
		zap.String("format", cfg.Output.Format),
		zap.String("path", cfg.Output.Path),
		zap.Int("failed", len(table.Failures())),
	)
	return nil
}

// serveMetrics exposes /metrics while a batch run is in progress.
func serveMetrics(port int, logger *zap.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("Starting metrics listener", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics listener error", zap.Error(err))
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
