package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jgoulah/bikeshare/internal/config"
	"github.com/jgoulah/bikeshare/internal/database"
	"github.com/jgoulah/bikeshare/internal/logging"
	"github.com/jgoulah/bikeshare/internal/trips"
)

var (
	cfgFile  string
	dbPath   string
	dataDir  string
	source   string
	logLevel string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "bikeshare",
	Short: "Explore US bikeshare trip data",
	Long: `Bikeshare is a CLI tool to explore bike-share trip logs for Chicago, New York City and Washington.
Pick a city and optional month and day filters, then page through raw trips or view
statistics on popular times, stations, trip durations and riders.

Run without a subcommand to start the interactive explorer.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runExplore,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./bikeshare.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (default is ./bikeshare.db)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory containing the city CSV files (default is .)")
	rootCmd.PersistentFlags().StringVar(&source, "source", "", "trip source: csv or sqlite (default is csv)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error (default is info)")
}

// setup loads the config, applies flag overrides and installs the logger
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if dbPath != "" {
		loaded.Database = dbPath
	}
	if dataDir != "" {
		loaded.DataDir = dataDir
	}
	if source != "" {
		loaded.Source = source
	}
	if logLevel != "" {
		loaded.LogLevel = logLevel
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	cfg = loaded
	logger = logging.New(cfg.GetLogLevel(), os.Stderr)
	slog.SetDefault(logger)
	return nil
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

// loadConfig loads the configuration file
func loadConfig() (*config.Config, error) {
	return config.Load(getConfigPath())
}

// openDB opens the database connection
func openDB() (*database.DB, error) {
	path := cfg.GetDatabase()

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	return database.New(path)
}

// openSource returns the configured trip source and a func releasing it
func openSource() (trips.Source, func() error, error) {
	switch cfg.GetSource() {
	case config.SourceSQLite:
		db, err := openDB()
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		return db, db.Close, nil
	default:
		return trips.NewCSVSource(cfg.GetDataDir()), func() error { return nil }, nil
	}
}

// filterFlags are the --city, --month and --day flags shared by one-shot commands
type filterFlags struct {
	city  string
	month string
	day   string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.city, "city", "", "City to analyze (chicago, new_york_city, washington)")
	cmd.Flags().StringVar(&f.month, "month", "all", "Month to filter by (all, january ... june)")
	cmd.Flags().StringVar(&f.day, "day", "all", "Day of week to filter by (all, monday ... sunday)")
	cmd.MarkFlagRequired("city")
}

func (f *filterFlags) parse() (trips.Filters, error) {
	return trips.ParseFilters(f.city, f.month, f.day)
}
