package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"go-lead-sourcer/internal/models"
	"go-lead-sourcer/internal/pipeline"
	"go-lead-sourcer/internal/queries"
	"go-lead-sourcer/internal/search"
)

var (
	sourceCount int
	sourceType  string
	sourceBatch int
)

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Run a sourcing pass",
	Long: `Run the query catalog for a role category, screen every LinkedIn
profile found, upload accepted candidates as they are found, and merge
them into the local CSV.

The pass stops once --count candidates were accepted (0 runs every query).
--batch K runs only the K-th group of batch_size queries.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, ok := models.ParseRoleType(sourceType)
		if !ok {
			return fmt.Errorf("invalid --type %q (want sdr, ae or both)", sourceType)
		}
		return runSource(cmd, sourceCount, rt, sourceBatch)
	},
}

var sourceSDRCmd = &cobra.Command{
	Use:   "source-sdr [count]",
	Short: "Source SDR candidates (default 10)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := countArg(args, 10)
		if err != nil {
			return err
		}
		return runSource(cmd, n, models.RoleTypeSDR, 0)
	},
}

var sourceAECmd = &cobra.Command{
	Use:   "source-ae [count]",
	Short: "Source AE candidates (default 5)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := countArg(args, 5)
		if err != nil {
			return err
		}
		return runSource(cmd, n, models.RoleTypeAE, 0)
	},
}

func init() {
	sourceCmd.Flags().IntVarP(&sourceCount, "count", "n", 10, "stop after this many accepted candidates (0 = no limit)")
	sourceCmd.Flags().StringVarP(&sourceType, "type", "t", "both", "role category: sdr, ae or both")
	sourceCmd.Flags().IntVar(&sourceBatch, "batch", 0, "run only this 1-based batch of queries")

	rootCmd.AddCommand(sourceCmd, sourceSDRCmd, sourceAECmd)
}

func countArg(args []string, def int) (int, error) {
	if len(args) == 0 {
		return def, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid count %q", args[0])
	}
	return n, nil
}

// signalContext is cancelled on Ctrl-C so a run can still write its backup
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runSource(cmd *cobra.Command, count int, rt models.RoleType, batch int) error {
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

	qs, err := a.selectQueries(s.Provider(), rt, batch)
	if err != nil {
		return err
	}
	if batch > 0 {
		total := queries.BatchCount(len(a.catalog.Select(search.Dialect(s.Provider()), rt)), a.cfg.BatchSize)
		log.Printf("📦 Running batch %d of %d (%d queries)", batch, total, len(qs))
	} else {
		log.Printf("🚀 Running %d queries, looking for %d candidates", len(qs), count)
	}

	return finish(ctx, cmd, s, qs, count)
}

func (a *app) selectQueries(p search.Provider, rt models.RoleType, batch int) ([]queries.Query, error) {
	qs := a.catalog.Select(search.Dialect(p), rt)
	if batch > 0 {
		return queries.Batch(qs, batch, a.cfg.BatchSize)
	}
	return qs, nil
}

// finish runs the pass and prints the summary
func finish(ctx context.Context, cmd *cobra.Command, s *pipeline.Sourcer, qs []queries.Query, limit int) error {
	stats, err := s.Run(ctx, qs, limit)
	fmt.Fprintln(cmd.OutOrStdout(), stats.Summary(s.Uploading()))
	if err != nil {
		return fmt.Errorf("sourcing interrupted: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✅ Search complete!")
	return nil
}
