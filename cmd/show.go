package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-hoops-metrics/internal/aggregator"
	"github.com/pable/go-hoops-metrics/internal/model"
	"github.com/pable/go-hoops-metrics/internal/report"
	"github.com/pable/go-hoops-metrics/internal/storage"
)

var showPlayer string

var showCmd = &cobra.Command{
	Use:   "show <id-prefix>",
	Short: "Show a stored game's analysis by id prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showPlayer, "player", "", "highlight a player by name")
}

func runShow(cmd *cobra.Command, args []string) error {
	prefix := args[0]

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	return showByPrefix(db, prefix, showPlayer)
}

func showByPrefix(db *storage.DB, prefix, focus string) error {
	game, err := db.GetGameByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query game: %w", err)
	}
	if game == nil {
		fmt.Fprintf(os.Stderr, "No game found with id prefix %q\n", prefix)
		return nil
	}
	a, err := db.GetAnalysis(game.GameID)
	if err != nil {
		return fmt.Errorf("get analysis: %w", err)
	}
	if a == nil {
		return fmt.Errorf("game %s has no stored analysis", game.GameID)
	}
	a.Highlights = aggregator.Summarize(a)
	printGame(*game, a, focus)
	return nil
}

// printGame renders every table for one analysed game.
func printGame(sum model.GameSummary, a *model.GameAnalysis, focus string) {
	g := a.Context.Gender
	report.PrintGameSummary(os.Stdout, sum)
	if a.PlayCount > 0 {
		report.PrintHighlights(os.Stdout, a)
	}
	if len(a.Runs) > 0 {
		fmt.Fprintln(os.Stdout, "Team runs:")
		report.PrintRunTable(os.Stdout, a.Runs, g)
	}
	if len(a.Streaks) > 0 {
		fmt.Fprintln(os.Stdout, "\nPlayer streaks:")
		report.PrintStreakTable(os.Stdout, a.Streaks, g, focus)
	}
	if a.Comeback != nil {
		fmt.Fprintln(os.Stdout)
		report.PrintComeback(os.Stdout, a.Comeback, g)
	}
	if len(a.Clutch.Away)+len(a.Clutch.Home) > 0 {
		fmt.Fprintln(os.Stdout, "Clutch scoring:")
		report.PrintClutchTable(os.Stdout, a.Clutch, a.Context, focus)
	}
	if a.WinningShots.Decisive != nil || a.WinningShots.ClutchGoAhead != nil {
		fmt.Fprintln(os.Stdout, "\nWinning shots:")
		report.PrintWinningShots(os.Stdout, a.WinningShots, g)
	}
	if len(a.Milestones) > 0 {
		fmt.Fprintln(os.Stdout, "\nMilestones:")
		report.PrintMilestoneTable(os.Stdout, a.Milestones, focus)
	}
	if ev := a.Special; ev.Overtime || ev.Blowout || ev.CloseGame || ev.ComebackWin {
		fmt.Fprintln(os.Stdout, "\nSpecial events:")
		report.PrintSpecialEvents(os.Stdout, ev, a.Context)
	}
	fmt.Fprintln(os.Stdout)
}
