package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
func (c *ScannerConfig) Validate() error {
	if c.Scraper.PageBaseURL == "" {
		return errors.New("scraper.page_base_url is required")
	}
	if c.Scraper.ChartURL == "" {
		return errors.New("scraper.chart_url is required")
	}
	if c.Scraper.Extractor != "span" && c.Scraper.Extractor != "xpath" {
		return fmt.Errorf("scraper.extractor must be \"span\" or \"xpath\", got %q", c.Scraper.Extractor)
	}

	if c.Universe.Source == "" {
		return errors.New("universe.source is required")
	}
	if c.Universe.Format != "listino" && c.Universe.Format != "plain" {
		return fmt.Errorf("universe.format must be \"listino\" or \"plain\", got %q", c.Universe.Format)
	}

	if c.Batch.Concurrency < 1 {
		return errors.New("batch.concurrency must be >= 1")
	}
	if c.Batch.DispatchDelay < 0 {
		return errors.New("batch.dispatch_delay must be >= 0")
	}

	if c.Output.CSVPath == "" {
		return errors.New("output.csv_path is required")
	}

	if c.Database.Enabled {
		if err := c.Database.Postgres.validate("database.postgres"); err != nil {
			return err
		}
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
