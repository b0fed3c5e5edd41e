package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-hoops-metrics/internal/milestone"
	"github.com/pable/go-hoops-metrics/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

func marker(focus, name string) string {
	if focus != "" && focus == name {
		return ">"
	}
	return " "
}

// PrintGameSummary prints a one-line summary header for the game.
func PrintGameSummary(w io.Writer, s model.GameSummary) {
	events := s.Events
	if events == "" {
		events = "-"
	}
	fmt.Fprintf(w, "\n%s @ %s  |  Date: %s  |  Final: %d-%d  |  Gender: %s  |  Plays: %d  |  Events: %s  |  ID: %s\n\n",
		s.AwayTeam, s.HomeTeam, s.Date, s.AwayScore, s.HomeScore, s.Gender, s.PlayCount, events, s.GameID)
}

// PrintHighlights prints the headline items of a game, one per line.
func PrintHighlights(w io.Writer, a *model.GameAnalysis) {
	h := a.Highlights
	g := a.Context.Gender
	fmt.Fprintln(w, "Highlights:")
	if r := h.BestRun; r != nil {
		fmt.Fprintf(w, "  Best run:        %s %d-0 in %s (%s → %s)\n", r.Team, r.Points, g.PeriodLabel(r.EndPeriod), r.StartScore, r.EndScore)
	}
	if s := h.BestStreak; s != nil {
		fmt.Fprintf(w, "  Best streak:     %s (%s) %d straight points\n", s.Player, s.Team, s.Points)
	}
	if cb := h.Comeback; cb != nil {
		fmt.Fprintf(w, "  Comeback:        %s overcame %d down (%s, %s %s)\n", cb.Team, cb.Deficit, cb.DeficitScore, g.PeriodLabel(cb.DeficitPeriod), cb.DeficitTime)
	}
	if c := h.TopClutch; c != nil {
		fmt.Fprintf(w, "  Top clutch:      %s (%s) %d pts\n", c.Player, a.Context.TeamName(c.Side), c.Points)
	}
	if s := h.ClutchGoAhead; s != nil {
		fmt.Fprintf(w, "  Clutch go-ahead: %s %s with %s left (%s)\n", s.Player, s.PlayType, s.Time, s.Score)
	}
	if s := h.Decisive; s != nil {
		fmt.Fprintf(w, "  Decisive shot:   %s %s, %s %s (%s)\n", s.Player, s.PlayType, g.PeriodLabel(s.Period), s.Time, s.Score)
	}
	fmt.Fprintln(w)
}

// PrintRunTable prints team scoring runs.
func PrintRunTable(w io.Writer, runs []model.Run, g model.Gender) {
	table := newTable(w)
	table.Header("TEAM", "SIDE", "RUN", "FROM", "TO", "START", "END")
	for _, r := range runs {
		table.Append(
			r.Team,
			r.Side.String(),
			fmt.Sprintf("%d-0", r.Points),
			g.PeriodLabel(r.StartPeriod)+" "+r.StartTime,
			g.PeriodLabel(r.EndPeriod)+" "+r.EndTime,
			r.StartScore,
			r.EndScore,
		)
	}
	table.Render()
}

// PrintStreakTable prints player point streaks. If focus is non-empty, that
// player's rows are marked with ">".
func PrintStreakTable(w io.Writer, streaks []model.Streak, g model.Gender, focus string) {
	table := newTable(w)
	table.Header(" ", "PLAYER", "TEAM", "PTS", "FROM", "TO", "START", "END")
	for _, s := range streaks {
		table.Append(
			marker(focus, s.Player),
			s.Player,
			s.Team,
			strconv.Itoa(s.Points),
			g.PeriodLabel(s.StartPeriod)+" "+s.StartTime,
			g.PeriodLabel(s.EndPeriod)+" "+s.EndTime,
			s.StartScore,
			s.EndScore,
		)
	}
	table.Render()
}

// PrintComeback prints the winner's largest deficit.
func PrintComeback(w io.Writer, cb *model.ComebackResult, g model.Gender) {
	if cb == nil {
		return
	}
	if cb.NeverTrailed {
		fmt.Fprintf(w, "Comeback: %s never trailed (final %s)\n\n", cb.Team, cb.FinalScore)
		return
	}
	fmt.Fprintf(w, "Comeback: %s trailed by %d at %s %s (%s), won %s\n\n",
		cb.Team, cb.Deficit, g.PeriodLabel(cb.DeficitPeriod), cb.DeficitTime, cb.DeficitScore, cb.FinalScore)
}

// PrintClutchTable prints clutch-window scoring for both sides, away first.
func PrintClutchTable(w io.Writer, c model.ClutchScoring, ctx model.GameContext, focus string) {
	table := newTable(w)
	table.Header(" ", "PLAYER", "TEAM", "PTS", "FGM", "3PM", "FTM")
	for _, lines := range [][]model.ClutchLine{c.Away, c.Home} {
		for _, l := range lines {
			table.Append(
				marker(focus, l.Player),
				l.Player,
				ctx.TeamName(l.Side),
				strconv.Itoa(l.Points),
				strconv.Itoa(l.FGMakes),
				strconv.Itoa(l.ThreeMakes),
				strconv.Itoa(l.FTMakes),
			)
		}
	}
	table.Render()
}

// PrintWinningShots prints the decisive and clutch go-ahead shots.
func PrintWinningShots(w io.Writer, s model.WinningShots, g model.Gender) {
	table := newTable(w)
	table.Header("KIND", "PLAYER", "TEAM", "PTS", "TYPE", "WHEN", "SCORE")
	add := func(kind string, shot *model.WinningShot) {
		if shot == nil {
			return
		}
		table.Append(kind, shot.Player, shot.Team, strconv.Itoa(shot.Points), shot.PlayType,
			g.PeriodLabel(shot.Period)+" "+shot.Time, shot.Score)
	}
	add("decisive", s.Decisive)
	add("clutch go-ahead", s.ClutchGoAhead)
	table.Render()
}

// PrintMilestoneTable prints one game's milestone entries in order.
func PrintMilestoneTable(w io.Writer, entries []model.MilestoneEntry, focus string) {
	table := newTable(w)
	table.Header(" ", "CATEGORY", "PLAYER", "TEAM", "OPP", "DETAIL")
	for _, e := range entries {
		player := e.Player
		if player == "" {
			player = "-"
		}
		table.Append(marker(focus, e.Player), e.Category, player, e.Team, e.Opponent, e.Detail)
	}
	table.Render()
}

// PrintCategoryListing prints stored entries of one category across games.
func PrintCategoryListing(w io.Writer, rows []model.GameMilestone) {
	table := newTable(w)
	table.Header("DATE", "GAME", "PLAYER", "TEAM", "OPP", "PTS", "REB", "AST", "DETAIL")
	for _, r := range rows {
		table.Append(r.Date, r.GameID, r.Player, r.Team, r.Opponent,
			strconv.Itoa(r.Stats.PTS), strconv.Itoa(r.Stats.TRB), strconv.Itoa(r.Stats.AST), r.Detail)
	}
	table.Render()
}

// PrintCategoryCounts prints how many entries each stored category has.
func PrintCategoryCounts(w io.Writer, counts []model.CategoryCount) {
	table := newTable(w)
	table.Header("CATEGORY", "ENTRIES")
	for _, c := range counts {
		table.Append(c.Category, strconv.Itoa(c.Count))
	}
	table.Render()
}

// PrintSpecialEvents prints the game-level flags that are set.
func PrintSpecialEvents(w io.Writer, ev model.SpecialEvents, ctx model.GameContext) {
	table := newTable(w)
	table.Header("EVENT", "DETAIL")
	if ev.Overtime {
		table.Append("overtime", fmt.Sprintf("%d OT period(s)", ev.OvertimePeriods))
	}
	if ev.Blowout {
		table.Append("blowout", fmt.Sprintf("%s by %d", ctx.TeamName(ev.BlowoutWinner), ev.BlowoutMargin))
	}
	if ev.CloseGame {
		table.Append("close game", fmt.Sprintf("margin %d", ev.FinalMargin))
	}
	if ev.ComebackWin {
		table.Append("comeback win", fmt.Sprintf("%s from %d down at the half", ctx.TeamName(ev.ComebackSide), ev.ComebackDeficit))
	}
	table.Render()
}

// PrintRules prints a milestone rule table.
func PrintRules(w io.Writer, rules []milestone.Rule) {
	table := newTable(w)
	table.Header("KEY", "STAT", "MIN", "MAX", "DETAIL")
	for _, r := range rules {
		max := "-"
		if r.Max != nil {
			max = strconv.Itoa(*r.Max)
		}
		table.Append(r.Key, r.Stat, strconv.Itoa(r.Min), max, r.Detail)
	}
	table.Render()
}
