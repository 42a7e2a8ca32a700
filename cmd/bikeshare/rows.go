package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jgoulah/bikeshare/internal/report"
	"github.com/jgoulah/bikeshare/internal/trips"
)

var (
	rowsFilters filterFlags
	rowsOffset  int
	rowsLimit   int
	rowsJSON    bool
)

var rowsCmd = &cobra.Command{
	Use:   "rows",
	Short: "Print raw trip rows for a city",
	Long:  `Loads a city's trips, applies the month and day filters and prints one page of raw rows.`,
	RunE:  runRows,
}

func init() {
	rowsFilters.register(rowsCmd)
	rowsCmd.Flags().IntVar(&rowsOffset, "offset", 0, "Index of the first row to print")
	rowsCmd.Flags().IntVar(&rowsLimit, "limit", 0, "Rows to print (default: page_size from config)")
	rowsCmd.Flags().BoolVar(&rowsJSON, "json", false, "Print rows as JSON")
	rootCmd.AddCommand(rowsCmd)
}

func runRows(cmd *cobra.Command, args []string) error {
	filters, err := rowsFilters.parse()
	if err != nil {
		return err
	}

	limit := rowsLimit
	if limit <= 0 {
		limit = cfg.GetPageSize()
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

	page := table.Page(rowsOffset, limit)
	if rowsJSON {
		return report.NewJSON(cmd.OutOrStdout()).Page(page)
	}

	if len(page) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No trips at offset %d (%s)\n", rowsOffset, table)
		return nil
	}
	report.NewConsole(cmd.OutOrStdout()).Page(page, rowsOffset)
	fmt.Fprintf(cmd.OutOrStdout(), "\nShowing rows %d-%d of %d\n", rowsOffset, rowsOffset+len(page)-1, table.Len())
	return nil
}
