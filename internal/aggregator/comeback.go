package aggregator

import "github.com/pable/go-hoops-metrics/internal/model"

// BiggestComeback returns the largest deficit the eventual winner overcame.
// Every game with plays gets exactly one result; a winner that never trailed
// gets NeverTrailed with zeroed deficit fields. Returns nil when there are no plays.
func BiggestComeback(plays []model.Play, ctx model.GameContext) *model.ComebackResult {
	if len(plays) == 0 {
		return nil
	}

	res := &model.ComebackResult{
		Team:       ctx.WinnerTeam(),
		Side:       ctx.Winner,
		FinalScore: ctx.FinalScore(),
	}

	for _, p := range plays {
		margin := p.AwayScore - p.HomeScore // positive = away ahead
		var deficit int
		if ctx.Winner == model.SideAway {
			deficit = -margin
		} else {
			deficit = margin
		}
		if deficit > res.Deficit {
			res.Deficit = deficit
			res.DeficitTime = p.Time
			res.DeficitPeriod = p.Period
			res.DeficitScore = p.Score()
		}
	}

	res.NeverTrailed = res.Deficit == 0
	return res
}
