package aggregator

import (
	"regexp"
	"strconv"

	"github.com/pable/go-hoops-metrics/internal/model"
)

var clockRe = regexp.MustCompile(`^\s*(\d+):(\d+)`)

// ClockMinutes parses a "M:SS" game clock into decimal minutes remaining.
// ok is false for empty or unparseable strings.
func ClockMinutes(clock string) (minutes float64, ok bool) {
	m := clockRe.FindStringSubmatch(clock)
	if m == nil {
		return 0, false
	}
	mins, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	secs, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, false
	}
	return float64(mins) + float64(secs)/60.0, true
}

// inFinalMinutes reports whether a play happened in `period` with strictly less
// than `minutes` left on the clock. Unparseable clocks are never inside the window.
func inFinalMinutes(p model.Play, period int, minutes float64) bool {
	if p.Period != period {
		return false
	}
	left, ok := ClockMinutes(p.Time)
	return ok && left < minutes
}
