package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-hoops-metrics/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored games",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	games, err := db.ListGames()
	if err != nil {
		return fmt.Errorf("list games: %w", err)
	}
	if len(games) == 0 {
		fmt.Fprintln(os.Stdout, "No games stored yet. Run 'hoopmetrics parse <game.json>' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-14s  %-10s  %-3s  %-22s  %-22s  %7s  %s\n",
		"ID", "DATE", "G", "AWAY", "HOME", "SCORE", "EVENTS")
	fmt.Fprintf(os.Stdout, "%-14s  %-10s  %-3s  %-22s  %-22s  %7s  %s\n",
		"──────────────", "──────────", "───", "──────────────────────", "──────────────────────", "───────", "──────")
	for _, g := range games {
		score := fmt.Sprintf("%d-%d", g.AwayScore, g.HomeScore)
		fmt.Fprintf(os.Stdout, "%-14s  %-10s  %-3s  %-22s  %-22s  %7s  %s\n",
			truncate(g.GameID, 14), g.Date, g.Gender, truncate(g.AwayTeam, 22), truncate(g.HomeTeam, 22), score, g.Events)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
