package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-hoops-metrics/internal/report"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective milestone rule table and analysis options",
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

func runRules(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a := cfg.Analysis
	fmt.Fprintf(os.Stdout, "Runs >= %d pts  |  Streaks >= %d pts  |  Clutch window: final %g min\n\n",
		a.RunMinPoints, a.StreakMinPoints, a.ClutchMinutes)
	report.PrintRules(os.Stdout, cfg.MilestoneRules)
	return nil
}
