package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"go-lead-sourcer/internal/csvstore"
	"go-lead-sourcer/internal/models"
)

var recentCmd = &cobra.Command{
	Use:   "recent [N]",
	Short: "Show the N most recently added candidates (default 10)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := countArg(args, 10)
		if err != nil {
			return err
		}
		a, err := loadApp()
		if err != nil {
			return err
		}
		cs, err := csvstore.Recent(a.cfg.CSVPath, n)
		if err != nil {
			return err
		}
		printRecent(cmd, cs)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recentCmd)
}

func printRecent(cmd *cobra.Command, cs []models.Candidate) {
	out := cmd.OutOrStdout()
	rule := strings.Repeat("=", 60)

	fmt.Fprintf(out, "\n%s\n📋 %d Most Recent Candidates\n%s\n", rule, len(cs), rule)
	for i, c := range cs {
		name := c.FullName
		if name == "" {
			name = "Unknown"
		}
		role := c.Role
		if role == models.RoleUnknown {
			role = models.RoleSDR
		}
		fmt.Fprintf(out, "\n%d. %s [%s]\n", i+1, clip(name, 25), role)
		fmt.Fprintf(out, "   %s...\n", clip(c.Headline, 40))
	}
	fmt.Fprintf(out, "\n%s\n", rule)
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
