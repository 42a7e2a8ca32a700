package main

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jgoulah/bikeshare/internal/trips"
	"github.com/jgoulah/bikeshare/pkg/models"
)

var importCmd = &cobra.Command{
	Use:   "import [city...]",
	Short: "Copy city CSV files into the SQLite database",
	Long: `Reads each city's CSV file and replaces that city's trips in the local SQLite
database, so later runs can use --source=sqlite.

Available cities: chicago, new_york_city, washington (default: all)`,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cities := models.Cities
	if len(args) > 0 {
		cities = nil
		for _, arg := range args {
			city, err := trips.ParseCity(arg)
			if err != nil {
				return err
			}
			cities = append(cities, city)
		}
	}

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	csv := trips.NewCSVSource(cfg.GetDataDir())
	for _, city := range cities {
		records, schema, err := csv.ReadTrips(cmd.Context(), city)
		if err != nil {
			return fmt.Errorf("reading %s: %w", city, err)
		}

		info, err := db.ImportCity(cmd.Context(), city, records, schema)
		if err != nil {
			return fmt.Errorf("importing %s: %w", city, err)
		}

		logger.Info("Imported trips",
			slog.String("city", city),
			slog.String("import_id", info.ImportID),
			slog.Int("trips", info.TripCount))
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %s trips for %s\n", humanize.Comma(int64(info.TripCount)), city)
	}

	return nil
}
