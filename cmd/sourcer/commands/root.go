// Package commands implements the sourcer CLI.
package commands

import (
	"github.com/spf13/cobra"

	"go-lead-sourcer/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "sourcer",
	Short: "Source SDR and AE candidates from LinkedIn search results",
	Long: `Sourcer runs keyword searches for LinkedIn profiles, screens and classifies
the results, and keeps a Google Sheet (or Postgres table) plus a local CSV
of candidates up to date.

Examples:
  # How many candidates do we have?
  sourcer stats

  # Find 10 new candidates across both roles
  sourcer source --count 10 --type both

  # Run only the second batch of 8 AE queries
  sourcer source --type ae --batch 2

  # Preview the queries without searching
  sourcer dry-run --type sdr

  # Fill in years of experience from headlines
  sourcer update-experience`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "config file")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
