package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/apalladino/bondscan/internal/batch"
	"github.com/apalladino/bondscan/internal/borsa"
	"github.com/apalladino/bondscan/internal/config"
	"github.com/apalladino/bondscan/internal/database"
	"github.com/apalladino/bondscan/internal/extract"
	"github.com/apalladino/bondscan/internal/instrument"
	"github.com/apalladino/bondscan/internal/rating"
	"github.com/apalladino/bondscan/internal/store"
	"github.com/apalladino/bondscan/internal/universe"
	"github.com/apalladino/bondscan/internal/version"
	"github.com/apalladino/bondscan/internal/volume"
)

func main() {
	configPath := flag.String("config", "", "path to config file (built-in defaults when empty)")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	// Set up structured logging
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	logger.Info("starting scanner",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	var cfg *config.ScannerConfig
	if *configPath == "" {
		cfg = config.Default()
	} else {
		loaded, err := config.LoadAndValidate(*configPath)
		if err != nil {
			logger.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load the ISIN universe
	loader := universe.NewLoader(cfg.Universe.Timeout)
	var isins []string
	var err error
	switch cfg.Universe.Format {
	case "plain":
		isins, err = loader.LoadPlain(ctx, cfg.Universe.Source)
	default:
		isins, err = loader.Load(ctx, cfg.Universe.Source, cfg.Universe.Currency)
	}
	if err != nil {
		logger.Error("failed to load universe", "error", err)
		os.Exit(1)
	}
	logger.Info("universe loaded",
		"isins", len(isins),
		"source", cfg.Universe.Source,
		"currency", cfg.Universe.Currency,
	)

	// Build the extraction pipeline
	opts := []borsa.ClientOption{
		borsa.WithLogger(logger),
		borsa.WithTimeout(cfg.Scraper.Timeout),
		borsa.WithHeaders(cfg.Scraper.Headers),
		borsa.WithCookies(cfg.Scraper.Cookies),
	}
	if cfg.Scraper.UserAgent != "" {
		opts = append(opts, borsa.WithUserAgent(cfg.Scraper.UserAgent))
	}
	client := borsa.NewClient(cfg.Scraper.PageBaseURL, cfg.Scraper.ChartURL, opts...)

	var fields extract.Extractor
	if cfg.Scraper.Extractor == "xpath" {
		fields = extract.NewXPathExtractor()
	} else {
		fields = extract.NewSpanExtractor()
	}

	fetcher := volume.NewFetcher(client, cfg.Scraper.Timeout, logger)
	extractor := instrument.New(client, fields, fetcher, logger)

	aggregator := batch.New(batch.Config{
		Concurrency:   cfg.Batch.Concurrency,
		DispatchDelay: cfg.Batch.DispatchDelay,
		Timeout:       cfg.Batch.Timeout,
	}, extractor, logger)

	// Run the batch and rate the table
	table, err := aggregator.Run(ctx, isins)
	if err != nil {
		logger.Error("batch aborted", "error", err)
		os.Exit(1)
	}
	rated := rating.Compute(table)

	// Persist
	if err := store.WriteTable(cfg.Output.CSVPath, rated); err != nil {
		logger.Error("failed to write csv", "error", err)
		os.Exit(1)
	}
	logger.Info("table written", "path", cfg.Output.CSVPath, "records", len(rated))

	if cfg.Database.Enabled {
		pool, err := database.Connect(ctx, cfg.Database.Postgres)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		runID, err := store.NewRunStore(pool, logger).InsertRun(ctx, rated)
		if err != nil {
			logger.Error("failed to persist run", "error", err)
			os.Exit(1)
		}
		logger.Info("run stored", "run_id", runID)
	}

	logger.Info("scanner finished")
}
