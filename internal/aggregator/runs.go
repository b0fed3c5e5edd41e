package aggregator

import (
	"sort"

	"github.com/pable/go-hoops-metrics/internal/model"
)

// DefaultRunMinPoints is the smallest team run that gets reported.
const DefaultRunMinPoints = 8

// TeamRuns finds stretches where one team scored and the other did not.
//
// Non-scoring plays are ignored. A scoring play whose side is unknown, whose
// credited side did not actually gain points, or on which both sides gained
// points closes the open run and leaves no run open. Runs shorter than
// minPoints are dropped. Output is sorted by points desc, ties in detection order.
func TeamRuns(plays []model.Play, minPoints int) []model.Run {
	var (
		runs     []model.Run
		cur      model.Run
		open     bool
		prevAway int
		prevHome int
	)

	flush := func() {
		if open && cur.Points >= minPoints {
			runs = append(runs, cur)
		}
		cur = model.Run{}
		open = false
	}

	for _, p := range plays {
		if !p.IsScoring {
			continue
		}
		awayDelta := p.AwayScore - prevAway
		homeDelta := p.HomeScore - prevHome

		var side model.Side
		var pts int
		switch {
		case awayDelta > 0 && homeDelta > 0:
			// both moved on one play; can't attribute
		case p.Side == model.SideAway && awayDelta > 0:
			side, pts = model.SideAway, awayDelta
		case p.Side == model.SideHome && homeDelta > 0:
			side, pts = model.SideHome, homeDelta
		}

		if side == model.SideUnknown {
			flush()
			prevAway, prevHome = p.AwayScore, p.HomeScore
			continue
		}

		if open && cur.Side == side {
			cur.Points += pts
			cur.EndTime = p.Time
			cur.EndPeriod = p.Period
			cur.EndScore = p.Score()
		} else {
			flush()
			cur = model.Run{
				Team: p.Team,
				Side: side,
				ScoringSpan: model.ScoringSpan{
					Points:      pts,
					StartTime:   p.Time,
					EndTime:     p.Time,
					StartPeriod: p.Period,
					EndPeriod:   p.Period,
					StartScore:  model.FormatScore(prevAway, prevHome),
					EndScore:    p.Score(),
				},
			}
			open = true
		}
		prevAway, prevHome = p.AwayScore, p.HomeScore
	}
	flush()

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Points > runs[j].Points
	})
	return runs
}
