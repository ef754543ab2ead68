package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"go-lead-sourcer/internal/filter"
	"go-lead-sourcer/internal/persist"
)

var experienceCmd = &cobra.Command{
	Use:     "update-experience",
	Aliases: []string{"update_experience"},
	Short:   "Estimate years of experience for rows that lack it",
	Long: `Fill empty "Years of Experience" values from each candidate's headline,
in the remote store (when configured) and in the local CSV. Rows that
already have a value are never overwritten.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx, cancel := signalContext()
		defer cancel()

		out := cmd.OutOrStdout()
		b := persist.NewBackfiller()

		if st := a.openStore(ctx); st != nil {
			switch {
			case st.ws != nil:
				rep, err := b.Sheet(ctx, st.ws)
				if err != nil {
					return fmt.Errorf("sheet backfill failed: %w", err)
				}
				printBackfill(cmd, "Google Sheet", rep)
			case st.repo != nil:
				n, err := st.repo.BackfillExperience(ctx, func(headline string) string {
					return filter.EstimateExperience(headline, time.Now())
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "✅ Postgres: updated %d candidates\n", n)
			}
		}

		rep, err := b.Local(a.cfg.CSVPath)
		if err != nil {
			return fmt.Errorf("local backfill failed: %w", err)
		}
		printBackfill(cmd, a.cfg.CSVPath, rep)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(experienceCmd)
}

func printBackfill(cmd *cobra.Command, where string, rep persist.BackfillReport) {
	fmt.Fprintf(cmd.OutOrStdout(), "✅ %s: %d rows, %d filled, %d already set, %d unknown, %d failed\n",
		where, rep.Rows, rep.Filled, rep.Kept, rep.Unknown, rep.Failed)
}
