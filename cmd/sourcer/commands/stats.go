package commands

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"go-lead-sourcer/internal/csvstore"
	"go-lead-sourcer/internal/models"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print candidate counts from the local CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		cs, err := csvstore.Load(a.cfg.CSVPath)
		if err != nil {
			return err
		}

		now := time.Now()
		s := csvstore.Summarize(cs, now.Format(models.DateLayout))
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "📊 Sourcing stats")
		fmt.Fprintf(out, "   Total candidates: %s\n", humanize.Comma(int64(s.Total)))
		fmt.Fprintf(out, "   📞 SDR: %s\n", humanize.Comma(int64(s.ByRole[models.RoleSDR])))
		fmt.Fprintf(out, "   🎯 AE:  %s\n", humanize.Comma(int64(s.ByRole[models.RoleAE])))
		fmt.Fprintf(out, "   🔄 Both: %s\n", humanize.Comma(int64(s.ByRole[models.RoleEither])))
		fmt.Fprintf(out, "   With experience: %s\n", humanize.Comma(int64(s.WithExperience)))
		fmt.Fprintf(out, "   With email: %s\n", humanize.Comma(int64(s.WithEmail)))
		fmt.Fprintf(out, "   Added today: %s\n", humanize.Comma(int64(s.AddedToday)))
		if last, ok := lastAdded(cs); ok {
			fmt.Fprintf(out, "   Last added: %s\n", humanize.RelTime(last, now, "ago", "from now"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

// lastAdded is the newest parseable Date Added stamp
func lastAdded(cs []models.Candidate) (time.Time, bool) {
	var last time.Time
	for _, c := range cs {
		t, err := time.ParseInLocation(models.DateLayout, c.DateAdded, time.Local)
		if err == nil && t.After(last) {
			last = t
		}
	}
	return last, !last.IsZero()
}
