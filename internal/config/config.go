package config

import "time"

// ScannerConfig is the root configuration for a scanner run.
type ScannerConfig struct {
	Scraper  ScraperConfig  `yaml:"scraper"`
	Universe UniverseConfig `yaml:"universe"`
	Batch    BatchConfig    `yaml:"batch"`
	Output   OutputConfig   `yaml:"output"`
	Database DatabaseConfig `yaml:"database"`
}

// ScraperConfig holds the Borsa Italiana endpoints and the static request
// identity. Headers and cookies are loaded once per run and never mutated.
type ScraperConfig struct {
	PageBaseURL string            `yaml:"page_base_url"`
	ChartURL    string            `yaml:"chart_url"`
	UserAgent   string            `yaml:"user_agent"`
	Timeout     time.Duration     `yaml:"timeout"`
	Extractor   string            `yaml:"extractor"` // "span" or "xpath"
	Headers     map[string]string `yaml:"headers"`
	Cookies     map[string]string `yaml:"cookies"`
}

// UniverseConfig names the ISIN list source.
type UniverseConfig struct {
	Source   string        `yaml:"source"`   // listino path or URL
	Format   string        `yaml:"format"`   // "listino" or "plain"
	Currency string        `yaml:"currency"` // listino currency filter
	Timeout  time.Duration `yaml:"timeout"`
}

// BatchConfig holds aggregation settings.
type BatchConfig struct {
	Concurrency   int           `yaml:"concurrency"`
	DispatchDelay time.Duration `yaml:"dispatch_delay"`
	Timeout       time.Duration `yaml:"timeout"`
}

// OutputConfig holds the persisted table location.
type OutputConfig struct {
	CSVPath string `yaml:"csv_path"`
}

// DatabaseConfig holds the optional run-history sink.
type DatabaseConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Postgres DBConfig `yaml:"postgres"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}
