package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-hoops-metrics/internal/report"
	"github.com/pable/go-hoops-metrics/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cHeader   = color.New(color.FgCyan, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the database. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(_ *cobra.Command, _ []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	cGreeting.Println("hoopmetrics shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("hoopmetrics")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		cmd, args := tokens[0], tokens[1:]

		switch cmd {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "list":
			shellList(db)
		case "show":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: show <id-prefix> [--player <name>]")
				continue
			}
			prefix := args[0]
			var focus string
			for i := 1; i+1 < len(args); i++ {
				if args[i] == "--player" {
					focus = strings.Join(args[i+1:], " ")
					break
				}
			}
			if err := showByPrefix(db, prefix, focus); err != nil {
				cError.Fprintf(os.Stderr, "error: %v\n", err)
			}
		case "milestones":
			shellMilestones(db, args)
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", cmd)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list", "list all stored games"},
		{"show <id-prefix>", "show a game's analysis"},
		{"show <id-prefix> --player <name>", "same, highlighting one player"},
		{"milestones", "entry counts per milestone category"},
		{"milestones <category> [limit]", "stored entries for one category"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-38s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func shellList(db *storage.DB) {
	games, err := db.ListGames()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(games) == 0 {
		cMuted.Println("No games stored yet.")
		return
	}
	cHeader.Fprintf(os.Stdout, "%-14s  %-10s  %-22s  %-22s  %7s\n",
		"ID", "DATE", "AWAY", "HOME", "SCORE")
	cMuted.Fprintf(os.Stdout, "%-14s  %-10s  %-22s  %-22s  %7s\n",
		"──────────────", "──────────", "──────────────────────", "──────────────────────", "───────")
	for _, g := range games {
		score := fmt.Sprintf("%d-%d", g.AwayScore, g.HomeScore)
		fmt.Fprintf(os.Stdout, "%-14s  %-10s  %-22s  %-22s  %7s\n",
			truncate(g.GameID, 14), g.Date, truncate(g.AwayTeam, 22), truncate(g.HomeTeam, 22), score)
	}
}

func shellMilestones(db *storage.DB, args []string) {
	if len(args) == 0 {
		counts, err := db.MilestoneCounts()
		if err != nil {
			cError.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}
		report.PrintCategoryCounts(os.Stdout, counts)
		return
	}
	limit := 20
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			cError.Fprintf(os.Stderr, "invalid limit %q\n", args[1])
			return
		}
		limit = n
	}
	rows, err := db.GetMilestonesByCategory(args[0], limit)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(rows) == 0 {
		cMuted.Printf("No entries for category %q.\n", args[0])
		return
	}
	report.PrintCategoryListing(os.Stdout, rows)
}
