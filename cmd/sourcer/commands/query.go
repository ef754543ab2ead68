package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"go-lead-sourcer/internal/filter"
	"go-lead-sourcer/internal/queries"
)

var queryLimit int

var queryCmd = &cobra.Command{
	Use:   `query "<search text>"`,
	Short: "Run one custom search query through the pipeline",
	Long: `Run a single search string with the same screening, upload and backup
as a sourcing pass. The query counts as an AE search when it mentions
account executive, AE or SaaS, as an SDR search otherwise.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.TrimSpace(strings.Join(args, " "))
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx, cancel := signalContext()
		defer cancel()

		s, err := a.sourcer(ctx)
		if err != nil {
			return err
		}
		q := queries.Query{Text: text, Role: filter.RoleFromQuery(text)}
		return finish(ctx, cmd, s, []queries.Query{q}, queryLimit)
	},
}

func init() {
	queryCmd.Flags().IntVarP(&queryLimit, "count", "n", 0, "stop after this many accepted candidates (0 = no limit)")
	rootCmd.AddCommand(queryCmd)
}
