package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/pable/go-hoops-metrics/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the games database",
	Long: `Run an arbitrary SQL query against the games database and print results as a table.

Schema overview:
  games(id, source_hash, date, gender, away_team, home_team, away_score, home_score,
    winner_side, play_count, events)
  team_runs(game_id, seq, team, side, points, start_time, end_time, start_period,
    end_period, start_score, end_score)
  player_streaks(game_id, seq, player, team, side, points, ...same span columns)
  comebacks(game_id, team, side, deficit, deficit_time, deficit_period, deficit_score,
    never_trailed, final_score)
  clutch_lines(game_id, side, seq, player, points, fg_makes, ft_makes, three_makes)
  winning_shots(game_id, kind, player, team, side, time, period, points, play_type, score, text)
  milestones(game_id, seq, category, player, player_id, team, opponent, side, detail,
    pts, trb, ast, stl, blk, fg, fga, fg3, fg3a, ft, fta, tov, minutes)
  special_events(game_id, overtime, overtime_periods, blowout, blowout_margin, ...)

Example: hoopmetrics sql "SELECT category, COUNT(*) FROM milestones GROUP BY category"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))

	colsAny := make([]any, len(cols))
	for i, c := range cols {
		colsAny[i] = c
	}
	table.Header(colsAny...)

	for _, row := range rows {
		rowAny := make([]any, len(row))
		for i, v := range row {
			rowAny[i] = v
		}
		table.Append(rowAny...)
	}
	table.Render()
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}

