package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jgoulah/bikeshare/internal/report"
	"github.com/jgoulah/bikeshare/internal/stats"
	"github.com/jgoulah/bikeshare/internal/trips"
)

var (
	statsFilters filterFlags
	statsFormat  string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print trip statistics for a city",
	Long: `Loads a city's trips, applies the month and day filters and prints the popular
times, popular stations, trip duration and user statistics.`,
	RunE: runStats,
}

func init() {
	statsFilters.register(statsCmd)
	statsCmd.Flags().StringVar(&statsFormat, "format", "text", "Output format (text or json)")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	if statsFormat != "text" && statsFormat != "json" {
		return fmt.Errorf("unknown format: %s (available: text, json)", statsFormat)
	}

	filters, err := statsFilters.parse()
	if err != nil {
		return err
	}

	src, closeSource, err := openSource()
	if err != nil {
		return err
	}
	defer closeSource()

	table, err := trips.Load(cmd.Context(), src, filters)
	if err != nil {
		return fmt.Errorf("loading trips: %w", err)
	}

	console := report.NewConsole(cmd.OutOrStdout())
	summary, err := stats.Compute(cmd.Context(), table)
	if errors.Is(err, stats.ErrEmptyTable) {
		if statsFormat == "json" {
			return report.NewJSON(cmd.OutOrStdout()).Error(err)
		}
		console.Error(err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("computing statistics: %w", err)
	}

	if statsFormat == "json" {
		return report.NewJSON(cmd.OutOrStdout()).Summary(summary)
	}
	return console.Summary(summary)
}
