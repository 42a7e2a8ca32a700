package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jgoulah/bikeshare/internal/session"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Interactively explore trip data",
	Long: `Prompts for a city, month and day, then offers raw trip rows in pages or the full
set of statistics. Repeats until you choose not to restart.`,
	RunE: runExplore,
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}

func runExplore(cmd *cobra.Command, args []string) error {
	src, closeSource, err := openSource()
	if err != nil {
		return err
	}
	defer closeSource()

	s := session.New(src, cmd.InOrStdin(), cmd.OutOrStdout(), cfg.GetPageSize(), logger)
	if err := s.Run(cmd.Context()); err != nil {
		return fmt.Errorf("exploring: %w", err)
	}
	return nil
}
