package aggregator

import (
	"sort"
	"strings"

	"github.com/pable/go-hoops-metrics/internal/model"
)

// DefaultClutchMinutes is the length of the clutch window at the end of regulation.
const DefaultClutchMinutes = 5.0

// ClutchScoring totals each player's scoring inside the last finalMinutes of the
// final regulation period (2nd half for men, 4th quarter for women).
// Plays with an unparseable clock, no player, no side or no points are left out.
func ClutchScoring(plays []model.Play, ctx model.GameContext, finalMinutes float64) model.ClutchScoring {
	type key struct {
		side   model.Side
		player string
	}
	var (
		order    []key
		lines    = make(map[key]*model.ClutchLine)
		prevAway int
		prevHome int
	)
	finalPeriod := ctx.FinalPeriod()

	for _, p := range plays {
		pts := playPoints(p, prevAway, prevHome)
		prevAway, prevHome = p.AwayScore, p.HomeScore

		if !p.IsScoring || !inFinalMinutes(p, finalPeriod, finalMinutes) {
			continue
		}
		if p.Player == "" || p.Side == model.SideUnknown || pts <= 0 {
			continue
		}

		k := key{p.Side, p.Player}
		line := lines[k]
		if line == nil {
			line = &model.ClutchLine{Player: p.Player, Side: p.Side}
			lines[k] = line
			order = append(order, k)
		}
		line.Points += pts

		switch pt := strings.ToLower(p.PlayType); {
		case strings.Contains(pt, "ft"), strings.Contains(pt, "free_throw"):
			line.FTMakes++
		case strings.Contains(pt, "three"):
			line.FGMakes++
			line.ThreeMakes++
		case strings.Contains(pt, "made"):
			line.FGMakes++
		}
	}

	var out model.ClutchScoring
	for _, k := range order {
		switch k.side {
		case model.SideAway:
			out.Away = append(out.Away, *lines[k])
		case model.SideHome:
			out.Home = append(out.Home, *lines[k])
		}
	}
	byPoints := func(ls []model.ClutchLine) {
		sort.SliceStable(ls, func(i, j int) bool { return ls[i].Points > ls[j].Points })
	}
	byPoints(out.Away)
	byPoints(out.Home)
	return out
}
