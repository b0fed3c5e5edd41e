package aggregator

import "github.com/pable/go-hoops-metrics/internal/model"

// clutchGoAheadMinutes bounds the clutch go-ahead window at the end of regulation.
const clutchGoAheadMinutes = 2.0

// GameWinningShots walks the game tracking lead changes in the winner's favour.
//
// A scoring play by the winner is a go-ahead shot when it takes the winner from
// trailing or tied to leading. The last such play is the decisive shot; the last
// one inside the final two minutes of the final regulation period is the clutch
// go-ahead. Both are nil when the winner never needed to take the lead.
func GameWinningShots(plays []model.Play, ctx model.GameContext) model.WinningShots {
	var (
		out      model.WinningShots
		prevAway int
		prevHome int
	)
	finalPeriod := ctx.FinalPeriod()

	for _, p := range plays {
		if !p.IsScoring {
			prevAway, prevHome = p.AwayScore, p.HomeScore
			continue
		}

		prevMargin := prevAway - prevHome // positive = away ahead
		margin := p.AwayScore - p.HomeScore

		goAhead := false
		if p.Side == ctx.Winner {
			switch p.Side {
			case model.SideAway:
				goAhead = prevMargin <= 0 && margin > 0
			case model.SideHome:
				goAhead = prevMargin >= 0 && margin < 0
			}
		}

		if goAhead {
			shot := &model.WinningShot{
				Player:   p.Player,
				Team:     p.Team,
				Side:     p.Side,
				Time:     p.Time,
				Period:   p.Period,
				Points:   playPoints(p, prevAway, prevHome),
				PlayType: p.PlayType,
				Score:    p.Score(),
				Text:     p.Text,
			}
			out.Decisive = shot
			if inFinalMinutes(p, finalPeriod, clutchGoAheadMinutes) {
				out.ClutchGoAhead = shot
			}
		}

		prevAway, prevHome = p.AwayScore, p.HomeScore
	}
	return out
}
