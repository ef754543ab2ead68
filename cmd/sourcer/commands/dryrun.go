package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-lead-sourcer/internal/models"
	"go-lead-sourcer/internal/queries"
)

var dryRunType string

var dryRunCmd = &cobra.Command{
	Use:   "dry-run",
	Short: "Preview the queries a sourcing pass would run",
	Long: `Print the queries for a role category, grouped into batches, without
touching the network. The dialect follows the configured search provider;
auto previews the Google form.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, ok := models.ParseRoleType(dryRunType)
		if !ok {
			return fmt.Errorf("invalid --type %q (want sdr, ae or both)", dryRunType)
		}
		a, err := loadApp()
		if err != nil {
			return err
		}

		qs := a.catalog.Select(a.dialect(), rt)
		size := a.cfg.BatchSize
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "🧪 Dry run: %d %s queries (%s), %d batches of %d\n",
			len(qs), rt, a.dialect(), queries.BatchCount(len(qs), size), size)
		for i, q := range qs {
			if i%size == 0 {
				fmt.Fprintf(out, "\n📦 Batch %d\n", i/size+1)
			}
			fmt.Fprintf(out, "  %3d. [%s] %s\n", i+1, q.Role, q.Text)
		}
		return nil
	},
}

func init() {
	dryRunCmd.Flags().StringVarP(&dryRunType, "type", "t", "both", "role category: sdr, ae or both")
	rootCmd.AddCommand(dryRunCmd)
}
