package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jgoulah/bikeshare/internal/trips"
	"github.com/jgoulah/bikeshare/pkg/models"
)

var citiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "List supported cities and their data files",
	RunE:  runCities,
}

func init() {
	rootCmd.AddCommand(citiesCmd)
}

func runCities(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	csv := trips.NewCSVSource(cfg.GetDataDir())

	fmt.Fprintln(out, "----------------------------------------")
	fmt.Fprintf(out, "%-15s  %-30s  %s\n", "City", "File", "Status")
	fmt.Fprintln(out, "----------------------------------------")

	for _, city := range models.Cities {
		path, err := csv.Path(city)
		if err != nil {
			return err
		}

		status := "missing"
		if info, err := os.Stat(path); err == nil {
			status = humanize.Bytes(uint64(info.Size()))
		}
		fmt.Fprintf(out, "%-15s  %-30s  %s\n", city, path, status)
	}

	if _, err := os.Stat(cfg.GetDatabase()); err != nil {
		return nil
	}

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	fmt.Fprintf(out, "\nImported into %s:\n", cfg.GetDatabase())
	for _, city := range models.Cities {
		info, err := db.GetImport(cmd.Context(), city)
		if err != nil {
			return fmt.Errorf("reading import for %s: %w", city, err)
		}
		if info == nil {
			fmt.Fprintf(out, "%-15s  not imported\n", city)
			continue
		}
		fmt.Fprintf(out, "%-15s  %s trips, %s\n", city, humanize.Comma(int64(info.TripCount)), humanize.Time(info.ImportedAt))
	}
	return nil
}
