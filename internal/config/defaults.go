package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultPageBaseURL = "https://www.borsaitaliana.it/borsa/obbligazioni/mot/euro-obbligazioni/scheda"
	DefaultChartURL    = "https://charts.borsaitaliana.it/charts/services/ChartWService.asmx/GetCvals"

	DefaultScraperTimeout = 10 * time.Second
	DefaultExtractor      = "span"

	DefaultUniverseSource  = "https://www.simpletoolsforinvestors.eu/data/listino/listino.csv"
	DefaultUniverseFormat  = "listino"
	DefaultCurrency        = "EUR"
	DefaultUniverseTimeout = 30 * time.Second

	DefaultConcurrency   = 5
	DefaultDispatchDelay = 500 * time.Millisecond
	DefaultBatchTimeout  = 30 * time.Second

	DefaultCSVPath = "results/bond_info.csv"

	DefaultDBPort    = 5432
	DefaultDBSSLMode = "prefer"
	DefaultMaxConns  = 10
	DefaultMinConns  = 2
)

func (c *ScannerConfig) applyDefaults() {
	// Scraper defaults
	if c.Scraper.PageBaseURL == "" {
		c.Scraper.PageBaseURL = DefaultPageBaseURL
	}
	if c.Scraper.ChartURL == "" {
		c.Scraper.ChartURL = DefaultChartURL
	}
	if c.Scraper.Timeout == 0 {
		c.Scraper.Timeout = DefaultScraperTimeout
	}
	if c.Scraper.Extractor == "" {
		c.Scraper.Extractor = DefaultExtractor
	}

	// Universe defaults
	if c.Universe.Source == "" {
		c.Universe.Source = DefaultUniverseSource
	}
	if c.Universe.Format == "" {
		c.Universe.Format = DefaultUniverseFormat
	}
	if c.Universe.Currency == "" {
		c.Universe.Currency = DefaultCurrency
	}
	if c.Universe.Timeout == 0 {
		c.Universe.Timeout = DefaultUniverseTimeout
	}

	// Batch defaults
	if c.Batch.Concurrency == 0 {
		c.Batch.Concurrency = DefaultConcurrency
	}
	if c.Batch.DispatchDelay == 0 {
		c.Batch.DispatchDelay = DefaultDispatchDelay
	}
	if c.Batch.Timeout == 0 {
		c.Batch.Timeout = DefaultBatchTimeout
	}

	// Output defaults
	if c.Output.CSVPath == "" {
		c.Output.CSVPath = DefaultCSVPath
	}

	// Database defaults
	if c.Database.Enabled {
		applyDBDefaults(&c.Database.Postgres)
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
