package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tessera/internal/driver"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the analysis report cache",
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove every cached report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cache, err := driver.OpenReportCache("tessera")
		if err != nil {
			return fmt.Errorf("failed to open report cache: %w", err)
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to clean report cache: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "report cache cleared")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheCleanCmd)
}
