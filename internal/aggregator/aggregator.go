// Package aggregator folds a game's play-by-play stream into narrative stats:
// scoring runs, player streaks, the winner's comeback, clutch scoring and
// go-ahead shots. Analyze runs every fold plus the box-score milestone and
// special-event passes and bundles the results.
package aggregator

import (
	"fmt"

	"github.com/pable/go-hoops-metrics/internal/milestone"
	"github.com/pable/go-hoops-metrics/internal/model"
	"github.com/pable/go-hoops-metrics/internal/special"
)

// Options tunes the thresholds of a single analysis.
type Options struct {
	RunMinPoints    int
	StreakMinPoints int
	ClutchMinutes   float64
	Rules           []milestone.Rule
}

// DefaultOptions returns the built-in thresholds and milestone rules.
func DefaultOptions() Options {
	return Options{
		RunMinPoints:    DefaultRunMinPoints,
		StreakMinPoints: DefaultStreakMinPoints,
		ClutchMinutes:   DefaultClutchMinutes,
		Rules:           milestone.DefaultRules(),
	}
}

// Analyze computes every narrative stat for one game. A game without plays
// still gets box-score milestones and special events.
func Analyze(raw *model.RawGame, opts Options) (*model.GameAnalysis, error) {
	if raw == nil {
		return nil, fmt.Errorf("nil RawGame")
	}
	ctx := raw.Context
	a := &model.GameAnalysis{
		Context:   ctx,
		PlayCount: len(raw.Plays),
	}

	// ---- Pass 1: play-by-play folds. ----

	if len(raw.Plays) > 0 {
		a.Runs = TeamRuns(raw.Plays, opts.RunMinPoints)
		a.Streaks = PlayerStreaks(raw.Plays, opts.StreakMinPoints)
		a.Comeback = BiggestComeback(raw.Plays, ctx)
		a.Clutch = ClutchScoring(raw.Plays, ctx, opts.ClutchMinutes)
		a.WinningShots = GameWinningShots(raw.Plays, ctx)
	}

	// ---- Pass 2: milestones (box score first, then play-by-play tiers). ----

	a.Milestones = milestone.ClassifyGame(ctx, raw.AwayBox, raw.HomeBox, opts.Rules)
	a.Milestones = append(a.Milestones, milestone.FromAnalysis(a, opts.ClutchMinutes)...)

	// ---- Pass 3: game-level flags and highlights. ----

	a.Special = special.Detect(ctx, raw.LineScore)
	a.Highlights = Summarize(a)
	return a, nil
}

// Summarize picks the headline items of an analysis: the biggest run and
// streak, the comeback when the winner actually trailed, the top clutch scorer
// across both sides and the two winning shots.
func Summarize(a *model.GameAnalysis) model.Highlights {
	var h model.Highlights
	if len(a.Runs) > 0 {
		r := a.Runs[0]
		h.BestRun = &r
	}
	if len(a.Streaks) > 0 {
		s := a.Streaks[0]
		h.BestStreak = &s
	}
	if a.Comeback != nil && !a.Comeback.NeverTrailed {
		cb := *a.Comeback
		h.Comeback = &cb
	}

	// Each side is already sorted; the leader is among the first two of each.
	var top *model.ClutchLine
	for _, lines := range [][]model.ClutchLine{a.Clutch.Away, a.Clutch.Home} {
		for i := 0; i < len(lines) && i < 2; i++ {
			if top == nil || lines[i].Points > top.Points {
				l := lines[i]
				top = &l
			}
		}
	}
	h.TopClutch = top

	h.ClutchGoAhead = a.WinningShots.ClutchGoAhead
	h.Decisive = a.WinningShots.Decisive
	return h
}
