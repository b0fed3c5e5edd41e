package aggregator

import (
	"sort"

	"github.com/pable/go-hoops-metrics/internal/model"
)

// DefaultStreakMinPoints is the smallest player streak that gets reported.
const DefaultStreakMinPoints = 6

// PlayerStreaks finds stretches where one player scored every point scored by
// anyone. Any other player scoring, teammate or opponent, closes the streak.
//
// A scoring play with no player name or no positive points is a no-op: it
// neither extends nor closes the open streak.
func PlayerStreaks(plays []model.Play, minPoints int) []model.Streak {
	var (
		streaks  []model.Streak
		cur      model.Streak
		prevAway int
		prevHome int
	)

	flush := func() {
		if cur.Player != "" && cur.Points >= minPoints {
			streaks = append(streaks, cur)
		}
	}

	for _, p := range plays {
		if !p.IsScoring {
			continue
		}
		pts := playPoints(p, prevAway, prevHome)
		if p.Player == "" || pts <= 0 {
			prevAway, prevHome = p.AwayScore, p.HomeScore
			continue
		}

		if cur.Player == p.Player {
			cur.Points += pts
			cur.EndTime = p.Time
			cur.EndPeriod = p.Period
			cur.EndScore = p.Score()
		} else {
			flush()
			cur = model.Streak{
				Player: p.Player,
				Team:   p.Team,
				Side:   p.Side,
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
		}
		prevAway, prevHome = p.AwayScore, p.HomeScore
	}
	flush()

	sort.SliceStable(streaks, func(i, j int) bool {
		return streaks[i].Points > streaks[j].Points
	})
	return streaks
}

// playPoints prefers the feed's explicit score value and falls back to the
// combined score delta since the previous scoring play.
func playPoints(p model.Play, prevAway, prevHome int) int {
	if p.ScoreValue != 0 {
		return p.ScoreValue
	}
	return (p.AwayScore - prevAway) + (p.HomeScore - prevHome)
}
