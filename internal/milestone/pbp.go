package milestone

import (
	"fmt"

	"github.com/pable/go-hoops-metrics/internal/model"
)

type tier struct {
	min      int
	category string
}

// Tiers are checked highest first; an event lands in at most one.
var (
	runTiers      = []tier{{15, FifteenPointTeamRun}, {12, TwelvePointTeamRun}, {10, TenPointTeamRun}}
	streakTiers   = []tier{{10, TenPointPlayerStreak}, {8, EightPointPlayerStreak}}
	comebackTiers = []tier{{20, TwentyPointComeback}, {15, FifteenPointComeback}, {10, TenPointComeback}}
	clutchTiers   = []tier{{15, ClutchFifteenPoints}, {10, ClutchTenPoints}}
)

func pickTier(tiers []tier, v int) (string, bool) {
	for _, t := range tiers {
		if v >= t.min {
			return t.category, true
		}
	}
	return "", false
}

// FromAnalysis derives the play-by-play milestones of an analysed game: big team
// runs, long player streaks, a comeback win, heavy clutch scoring and the
// go-ahead/decisive shots. clutchMinutes only labels the clutch detail.
func FromAnalysis(a *model.GameAnalysis, clutchMinutes float64) []model.MilestoneEntry {
	ctx := a.Context
	var out []model.MilestoneEntry
	add := func(category, player string, side model.Side, stats model.StatSnapshot, detail string) {
		out = append(out, model.MilestoneEntry{
			Category: category,
			Player:   player,
			Team:     ctx.TeamName(side),
			Opponent: ctx.TeamName(side.Opponent()),
			Side:     side,
			Stats:    stats,
			Detail:   detail,
		})
	}

	for _, r := range a.Runs {
		if cat, ok := pickTier(runTiers, r.Points); ok {
			add(cat, "", r.Side, model.StatSnapshot{PTS: r.Points},
				fmt.Sprintf("%d-0 run in %s", r.Points, ctx.Gender.PeriodLabel(r.EndPeriod)))
		}
	}
	for _, s := range a.Streaks {
		if cat, ok := pickTier(streakTiers, s.Points); ok {
			add(cat, s.Player, s.Side, model.StatSnapshot{PTS: s.Points},
				fmt.Sprintf("%d consecutive points", s.Points))
		}
	}
	if cb := a.Comeback; cb != nil && !cb.NeverTrailed {
		if cat, ok := pickTier(comebackTiers, cb.Deficit); ok {
			add(cat, "", cb.Side, model.StatSnapshot{},
				fmt.Sprintf("Overcame %d-point deficit to win", cb.Deficit))
		}
	}
	for _, lines := range [][]model.ClutchLine{a.Clutch.Away, a.Clutch.Home} {
		for _, l := range lines {
			if cat, ok := pickTier(clutchTiers, l.Points); ok {
				add(cat, l.Player, l.Side, model.StatSnapshot{PTS: l.Points, FG: l.FGMakes, FG3: l.ThreeMakes, FT: l.FTMakes},
					fmt.Sprintf("%d pts in final %g min", l.Points, clutchMinutes))
			}
		}
	}
	if s := a.WinningShots.ClutchGoAhead; s != nil {
		add(ClutchGoAheadShot, s.Player, s.Side, model.StatSnapshot{PTS: s.Points},
			fmt.Sprintf("Go-ahead %dpts with %s left", s.Points, s.Time))
	}
	if s := a.WinningShots.Decisive; s != nil {
		add(GameWinningShot, s.Player, s.Side, model.StatSnapshot{PTS: s.Points},
			fmt.Sprintf("Game-winning shot (%s)", s.Score))
	}
	return out
}
