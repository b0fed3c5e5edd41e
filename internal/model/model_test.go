package model

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-3
}

func TestPlayerBoxLine_Ratios(t *testing.T) {
	b := &PlayerBoxLine{
		PTS: 20, FG: 8, FGA: 15, FG3: 2, FG3A: 5, FT: 3, FTA: 4,
		ORB: 2, DRB: 6, STL: 2, AST: 5, BLK: 1, PF: 3, TOV: 2,
	}
	cases := []struct {
		name string
		got  float64
		want float64
	}{
		{"FGPct", b.FGPct(), 8.0 / 15},
		{"FG3Pct", b.FG3Pct(), 0.4},
		{"FTPct", b.FTPct(), 0.75},
		{"EFGPct", b.EFGPct(), 0.6},
		{"TSPct", b.TSPct(), 20 / 33.52},
		{"GameScore", b.GameScore(), 18.5},
	}
	for _, c := range cases {
		if !approx(c.got, c.want) {
			t.Errorf("%s: got %.4f, want %.4f", c.name, c.got, c.want)
		}
	}
}

// Zero attempts give zero percentages instead of NaN.
func TestPlayerBoxLine_ZeroDenominators(t *testing.T) {
	b := &PlayerBoxLine{}
	for name, v := range map[string]float64{
		"FGPct": b.FGPct(), "FG3Pct": b.FG3Pct(), "FTPct": b.FTPct(),
		"EFGPct": b.EFGPct(), "TSPct": b.TSPct(), "GameScore": b.GameScore(),
	} {
		if v != 0 {
			t.Errorf("%s: got %v, want 0", name, v)
		}
	}
}

// A tied final goes to the away side; a 0-0 box score falls back to the last play.
func TestNewGameContext_Winner(t *testing.T) {
	if c := NewGameContext("g", "", GenderMen, "A", "H", 70, 70, nil); c.Winner != SideAway {
		t.Errorf("tie: got %v", c.Winner)
	}
	plays := []Play{{AwayScore: 60, HomeScore: 64}}
	c := NewGameContext("g", "", GenderWomen, "A", "H", 0, 0, plays)
	if c.Winner != SideHome || c.FinalScore() != "60-64" || c.Margin() != 4 {
		t.Errorf("fallback: %+v", c)
	}
}

func TestPeriodLabel(t *testing.T) {
	cases := []struct {
		g      Gender
		period int
		want   string
	}{
		{GenderMen, 2, "H2"},
		{GenderMen, 3, "OT1"},
		{GenderWomen, 4, "Q4"},
		{GenderWomen, 6, "OT2"},
	}
	for _, c := range cases {
		if got := c.g.PeriodLabel(c.period); got != c.want {
			t.Errorf("%s period %d: got %q, want %q", c.g, c.period, got, c.want)
		}
	}
}

func TestParseMinutesPlayed(t *testing.T) {
	for in, want := range map[string]float64{"32:30": 32.5, "18": 18, "--": 0, "": 0, "x:y": 0} {
		if got := ParseMinutesPlayed(in); !approx(got, want) {
			t.Errorf("%q: got %v, want %v", in, got, want)
		}
	}
}
