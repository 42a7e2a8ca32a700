package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Trip data sources
const (
	SourceCSV    = "csv"
	SourceSQLite = "sqlite"
)

// Config holds the application configuration
type Config struct {
	DataDir  string `yaml:"data_dir,omitempty"`  // Directory holding the city CSV files
	Database string `yaml:"database,omitempty"`  // SQLite file used by import and --source=sqlite
	Source   string `yaml:"source,omitempty"`    // "csv" or "sqlite"
	PageSize int    `yaml:"page_size,omitempty"` // Raw rows shown per page
	LogLevel string `yaml:"log_level,omitempty"` // debug, info, warn or error
}

// Load reads the config file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty config if file doesn't exist
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the config to file
func Save(configPath string, cfg *Config) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// DefaultConfigPath returns the default config file path (local directory)
func DefaultConfigPath() string {
	return "bikeshare.yaml"
}

// Effective returns a copy with every unset field replaced by its default
func (c *Config) Effective() *Config {
	return &Config{
		DataDir:  c.GetDataDir(),
		Database: c.GetDatabase(),
		Source:   c.GetSource(),
		PageSize: c.GetPageSize(),
		LogLevel: c.GetLogLevel(),
	}
}

// GetDataDir returns the CSV directory, defaulting to the working directory
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return "."
	}
	return c.DataDir
}

// GetDatabase returns the SQLite file path
func (c *Config) GetDatabase() string {
	if c.Database == "" {
		return "bikeshare.db"
	}
	return c.Database
}

// GetSource returns the configured trip source, csv unless set
func (c *Config) GetSource() string {
	if c.Source == "" {
		return SourceCSV
	}
	return c.Source
}

// GetPageSize returns the raw-row page size with a default of 5
func (c *Config) GetPageSize() int {
	if c.PageSize <= 0 {
		return 5
	}
	return c.PageSize
}

// GetLogLevel returns the log level, info unless set
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "info"
	}
	return c.LogLevel
}

// Validate rejects values the getters cannot default away
func (c *Config) Validate() error {
	switch c.GetSource() {
	case SourceCSV, SourceSQLite:
	default:
		return fmt.Errorf("unknown source: %s (available: %s, %s)", c.Source, SourceCSV, SourceSQLite)
	}
	return nil
}
