// Package special flags per-game events that depend only on the final and
// period-by-period scores: overtime, blowouts, close games and halftime comebacks.
package special

import (
	"fmt"
	"strings"

	"github.com/pable/go-hoops-metrics/internal/model"
)

const (
	BlowoutMargin       = 20
	CloseGameMargin     = 5
	HalftimeComebackMin = 10
)

// Detect derives the special-event flags for one game. ls may be nil, in which
// case overtime and comeback detection are skipped.
func Detect(ctx model.GameContext, ls *model.LineScore) model.SpecialEvents {
	var ev model.SpecialEvents

	margin := ctx.Margin()
	ev.FinalMargin = margin
	if margin >= BlowoutMargin {
		ev.Blowout = true
		ev.BlowoutMargin = margin
		ev.BlowoutWinner = leader(ctx.FinalAway, ctx.FinalHome)
	}
	if margin <= CloseGameMargin {
		ev.CloseGame = true
	}

	if ls == nil {
		return ev
	}
	if n := max(len(ls.Away.OT), len(ls.Home.OT)); n > 0 {
		ev.Overtime = true
		ev.OvertimePeriods = n
	}

	awayHalf, okA := halftime(ls.Away, ctx.Gender)
	homeHalf, okH := halftime(ls.Home, ctx.Gender)
	if !okA || !okH {
		return ev
	}
	switch {
	case awayHalf < homeHalf && ctx.FinalAway > ctx.FinalHome:
		if d := homeHalf - awayHalf; d >= HalftimeComebackMin {
			ev.ComebackWin, ev.ComebackSide, ev.ComebackDeficit = true, model.SideAway, d
		}
	case homeHalf < awayHalf && ctx.FinalHome > ctx.FinalAway:
		if d := awayHalf - homeHalf; d >= HalftimeComebackMin {
			ev.ComebackWin, ev.ComebackSide, ev.ComebackDeficit = true, model.SideHome, d
		}
	}
	return ev
}

// halftime is the score at the break: the first half, or the first two quarters.
// Fewer than two recorded periods means it is unknown.
func halftime(t model.TeamLineScore, g model.Gender) (int, bool) {
	if len(t.Periods) < 2 {
		return 0, false
	}
	if g == model.GenderWomen {
		return t.Periods[0] + t.Periods[1], true
	}
	return t.Periods[0], true
}

func leader(away, home int) model.Side {
	if home > away {
		return model.SideHome
	}
	return model.SideAway
}

// Summary renders the flags as one line, e.g. "2OT, Close game". Empty when
// nothing was flagged.
func Summary(ev model.SpecialEvents) string {
	var parts []string
	if ev.Overtime {
		if ev.OvertimePeriods > 1 {
			parts = append(parts, fmt.Sprintf("%dOT", ev.OvertimePeriods))
		} else {
			parts = append(parts, "OT")
		}
	}
	if ev.Blowout {
		parts = append(parts, fmt.Sprintf("Blowout (+%d)", ev.BlowoutMargin))
	}
	if ev.CloseGame {
		parts = append(parts, "Close game")
	}
	if ev.ComebackWin {
		parts = append(parts, fmt.Sprintf("Comeback (%d-pt deficit)", ev.ComebackDeficit))
	}
	return strings.Join(parts, ", ")
}
