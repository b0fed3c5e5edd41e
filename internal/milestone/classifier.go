// Package milestone classifies finished box-score lines into achievement
// categories and turns play-by-play analysis into tiered game milestones.
package milestone

import (
	"fmt"
	"strings"

	"github.com/pable/go-hoops-metrics/internal/model"
)

type namedStat struct {
	label string
	value int
}

// fiveCategories returns the double-double categories in a fixed order.
func fiveCategories(b *model.PlayerBoxLine) []namedStat {
	return []namedStat{
		{"PTS", b.PTS}, {"REB", b.TRB}, {"AST", b.AST}, {"STL", b.STL}, {"BLK", b.BLK},
	}
}

func countAtLeast(stats []namedStat, n int) int {
	c := 0
	for _, s := range stats {
		if s.value >= n {
			c++
		}
	}
	return c
}

// IsDoubleDouble reports 10+ in at least two of pts/reb/ast/stl/blk.
func IsDoubleDouble(b *model.PlayerBoxLine) bool {
	return countAtLeast(fiveCategories(b), 10) >= 2
}

// IsTripleDouble reports 10+ in at least three of pts/reb/ast/stl/blk.
func IsTripleDouble(b *model.PlayerBoxLine) bool {
	return countAtLeast(fiveCategories(b), 10) >= 3
}

// IsNearDoubleDouble is a line that missed a double-double by one or two: one
// category at 10+ and another at 8 or 9.
func IsNearDoubleDouble(b *model.PlayerBoxLine) bool {
	if IsDoubleDouble(b) {
		return false
	}
	stats := fiveCategories(b)
	return countAtLeast(stats, 10) >= 1 && len(nearTen(stats)) >= 1
}

func nearTen(stats []namedStat) []namedStat {
	var out []namedStat
	for _, s := range stats {
		if s.value >= 8 && s.value < 10 {
			out = append(out, s)
		}
	}
	return out
}

// doubleCategoriesDetail renders "PTS:32 / REB:11".
func doubleCategoriesDetail(b *model.PlayerBoxLine) string {
	var parts []string
	for _, s := range fiveCategories(b) {
		if s.value >= 10 {
			parts = append(parts, fmt.Sprintf("%s:%d", s.label, s.value))
		}
	}
	return strings.Join(parts, " / ")
}

// nearMissDetail renders "15 pts, 8 reb (needed 2 more reb)". The closest miss
// is the first 8-9 category in pts/reb/ast/stl/blk order.
func nearMissDetail(b *model.PlayerBoxLine) string {
	stats := fiveCategories(b)
	near := nearTen(stats)
	var parts []string
	for _, s := range stats {
		if s.value >= 10 {
			parts = append(parts, fmt.Sprintf("%d %s", s.value, strings.ToLower(s.label)))
		}
	}
	for _, s := range near {
		parts = append(parts, fmt.Sprintf("%d %s", s.value, strings.ToLower(s.label)))
	}
	line := strings.Join(parts, ", ")
	if len(near) == 0 {
		return line
	}
	return fmt.Sprintf("%s (needed %d more %s)", line, 10-near[0].value, strings.ToLower(near[0].label))
}

func slashLine(b *model.PlayerBoxLine) string {
	return fmt.Sprintf("%dp/%dr/%da/%ds/%db", b.PTS, b.TRB, b.AST, b.STL, b.BLK)
}

// Classify returns every milestone the box line earns. The output order is
// fixed: multi-category feats, then rules in table order, then derived feats.
// Team/Opponent/Side are copied from the line.
func Classify(b *model.PlayerBoxLine, rules []Rule) []model.MilestoneEntry {
	var out []model.MilestoneEntry
	add := func(category, detail string) {
		out = append(out, model.MilestoneEntry{
			Category: category,
			Player:   b.Name,
			PlayerID: b.ID,
			Team:     b.Team,
			Opponent: b.Opponent,
			Side:     b.Side,
			Stats:    b.Snapshot(),
			Detail:   detail,
		})
	}

	stats := fiveCategories(b)
	c10 := countAtLeast(stats, 10)
	c8 := countAtLeast(stats, 8)
	c5 := countAtLeast(stats, 5)
	triple := IsTripleDouble(b)

	if c10 >= 4 {
		add(QuadrupleDoubles, doubleCategoriesDetail(b))
	}
	if triple {
		add(TripleDoubles, doubleCategoriesDetail(b))
	}
	if IsDoubleDouble(b) {
		add(DoubleDoubles, doubleCategoriesDetail(b))
	}
	if c10 == 2 && c8 >= 3 {
		add(NearTripleDoubles, nearMissDetail(b))
	}
	if IsNearDoubleDouble(b) {
		add(NearDoubleDoubles, nearMissDetail(b))
	}
	if c5 >= 5 {
		add(FiveByFive, slashLine(b))
	}
	if c5 >= 5 || (c8 >= 4 && !triple) {
		add(AllAroundGames, slashLine(b))
	}

	for _, r := range rules {
		v, ok := StatValue(b, r.Stat)
		if ok && r.Matches(v) {
			add(r.Key, r.FormatDetail(v))
		}
	}

	if b.BLK+b.STL >= 7 {
		add(DefensiveMonster, fmt.Sprintf("%d blocks, %d steals (%d combined)", b.BLK, b.STL, b.BLK+b.STL))
	}
	if b.FG3A >= 4 && b.FG3Pct() == 1 {
		add(PerfectFromThree, fmt.Sprintf("%d/%d 3PT (100%%)", b.FG3, b.FG3A))
	}
	if b.FGA >= 10 && b.FGPct() >= 0.50 {
		add(HotShootingGames, fmt.Sprintf("%d/%d FG (%.1f%%)", b.FG, b.FGA, b.FGPct()*100))
	}
	if b.FT >= 5 && b.FTPct() == 1 {
		add(PerfectFTGames, fmt.Sprintf("%d/%d FT (100%%)", b.FT, b.FTA))
	}
	if b.FGA >= 5 && b.FG == b.FGA {
		add(PerfectFGGames, fmt.Sprintf("%d/%d FG (100%%)", b.FG, b.FGA))
	}
	if ts := b.TSPct(); b.PTS >= 15 && ts >= 0.65 {
		add(EfficientScoring, fmt.Sprintf("%d pts on %.1f%% TS", b.PTS, ts*100))
	}
	if b.PTS >= 30 && b.TRB >= 10 {
		add(ThirtyTenGames, fmt.Sprintf("%d pts, %d reb", b.PTS, b.TRB))
	}
	if b.PTS >= 20 && b.TRB >= 10 && b.AST >= 5 {
		add(TwentyTenFiveGames, fmt.Sprintf("%d pts, %d reb, %d ast", b.PTS, b.TRB, b.AST))
	}
	if b.PTS >= 20 && b.TRB >= 10 {
		add(TwentyTenGames, fmt.Sprintf("%d pts, %d reb", b.PTS, b.TRB))
	}
	if b.PTS >= 10 && b.AST >= 10 {
		add(PointsAssistsDD, fmt.Sprintf("%d pts, %d ast", b.PTS, b.AST))
	}
	if b.TOV == 0 && b.Minutes >= 20 {
		add(ZeroTurnoverGames, fmt.Sprintf("%d min, 0 turnovers", int(b.Minutes)))
	}
	return out
}

// ClassifyGame classifies every box line of both teams, away first. Team and
// opponent names and the side are filled from ctx.
func ClassifyGame(ctx model.GameContext, away, home []model.PlayerBoxLine, rules []Rule) []model.MilestoneEntry {
	var out []model.MilestoneEntry
	for _, side := range []model.Side{model.SideAway, model.SideHome} {
		lines := away
		if side == model.SideHome {
			lines = home
		}
		for i := range lines {
			b := lines[i]
			b.Side = side
			b.Team = ctx.TeamName(side)
			b.Opponent = ctx.TeamName(side.Opponent())
			out = append(out, Classify(&b, rules)...)
		}
	}
	return out
}

// GroupByCategory indexes entries by category, preserving input order within each.
func GroupByCategory(entries []model.MilestoneEntry) map[string][]model.MilestoneEntry {
	out := make(map[string][]model.MilestoneEntry)
	for _, e := range entries {
		out[e.Category] = append(out[e.Category], e)
	}
	return out
}
