package milestone

import (
	"reflect"
	"strings"
	"testing"

	"github.com/pable/go-hoops-metrics/internal/model"
)

// categories collects the category keys of entries in order.
func categories(entries []model.MilestoneEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Category)
	}
	return out
}

func has(entries []model.MilestoneEntry, category string) (model.MilestoneEntry, bool) {
	for _, e := range entries {
		if e.Category == category {
			return e, true
		}
	}
	return model.MilestoneEntry{}, false
}

// 32 points and 11 rebounds lands in both the scoring bucket and the 30/10
// combo but is not a triple-double.
func TestClassify_ThirtyTen(t *testing.T) {
	b := &model.PlayerBoxLine{Name: "Jane Doe", PTS: 32, TRB: 11}
	got := Classify(b, DefaultRules())

	for _, want := range []string{ThirtyPointGames, ThirtyTenGames, DoubleDoubles, TenReboundGames, TwentyTenGames} {
		if _, ok := has(got, want); !ok {
			t.Errorf("missing %s in %v", want, categories(got))
		}
	}
	for _, bad := range []string{TripleDoubles, TwentyPointGames, FortyPointGames} {
		if _, ok := has(got, bad); ok {
			t.Errorf("unexpected %s in %v", bad, categories(got))
		}
	}
	if e, _ := has(got, DoubleDoubles); e.Detail != "PTS:32 / REB:11" {
		t.Errorf("double-double detail: got %q", e.Detail)
	}
	if e, _ := has(got, ThirtyTenGames); e.Detail != "32 pts, 11 reb" {
		t.Errorf("30/10 detail: got %q", e.Detail)
	}
}

// Classifying the same line twice yields identical output.
func TestClassify_Deterministic(t *testing.T) {
	b := &model.PlayerBoxLine{
		Name: "A", PTS: 27, TRB: 9, AST: 12, STL: 4, BLK: 3,
		FG: 10, FGA: 15, FG3: 4, FG3A: 4, FT: 3, FTA: 3, Minutes: 34.5,
	}
	first := Classify(b, DefaultRules())
	second := Classify(b, DefaultRules())
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("classification not deterministic:\n%v\n%v", categories(first), categories(second))
	}
	if len(first) == 0 {
		t.Fatal("expected milestones")
	}
}

// Two categories at 10+ and a third at 8-9 is a near triple-double.
func TestClassify_NearTripleDouble(t *testing.T) {
	b := &model.PlayerBoxLine{PTS: 18, TRB: 10, AST: 9}
	got := Classify(b, DefaultRules())
	e, ok := has(got, NearTripleDoubles)
	if !ok {
		t.Fatalf("expected near triple-double, got %v", categories(got))
	}
	if e.Detail != "18 pts, 10 reb, 9 ast (needed 1 more ast)" {
		t.Errorf("detail: got %q", e.Detail)
	}
	if _, ok := has(got, NearDoubleDoubles); ok {
		t.Error("a double-double is never a near double-double")
	}
}

func TestClassify_NearDoubleDouble(t *testing.T) {
	b := &model.PlayerBoxLine{PTS: 15, TRB: 8}
	got := Classify(b, DefaultRules())
	e, ok := has(got, NearDoubleDoubles)
	if !ok {
		t.Fatalf("expected near double-double, got %v", categories(got))
	}
	if e.Detail != "15 pts, 8 reb (needed 2 more reb)" {
		t.Errorf("detail: got %q", e.Detail)
	}
}

func TestIsDoubleAndTripleDouble(t *testing.T) {
	cases := []struct {
		name           string
		line           model.PlayerBoxLine
		double, triple bool
	}{
		{"points only", model.PlayerBoxLine{PTS: 30, TRB: 9}, false, false},
		{"pts/reb", model.PlayerBoxLine{PTS: 12, TRB: 10}, true, false},
		{"blk/stl count", model.PlayerBoxLine{PTS: 10, STL: 10, BLK: 10}, true, true},
		{"four categories", model.PlayerBoxLine{PTS: 20, TRB: 12, AST: 11, STL: 10}, true, true},
	}
	for _, c := range cases {
		if got := IsDoubleDouble(&c.line); got != c.double {
			t.Errorf("%s: IsDoubleDouble = %v, want %v", c.name, got, c.double)
		}
		if got := IsTripleDouble(&c.line); got != c.triple {
			t.Errorf("%s: IsTripleDouble = %v, want %v", c.name, got, c.triple)
		}
	}
}

func TestClassify_TripleAndQuadruple(t *testing.T) {
	b := &model.PlayerBoxLine{PTS: 20, TRB: 12, AST: 11, STL: 10}
	got := Classify(b, DefaultRules())
	for _, want := range []string{QuadrupleDoubles, TripleDoubles, DoubleDoubles} {
		if _, ok := has(got, want); !ok {
			t.Errorf("missing %s", want)
		}
	}
	if _, ok := has(got, NearTripleDoubles); ok {
		t.Error("triple-double must not also be a near triple-double")
	}
	if _, ok := has(got, AllAroundGames); ok {
		t.Error("all-around requires 5x5 or 8+ in four without a triple-double")
	}
}

func TestClassify_FiveByFive(t *testing.T) {
	b := &model.PlayerBoxLine{PTS: 12, TRB: 7, AST: 6, STL: 5, BLK: 5}
	got := Classify(b, DefaultRules())
	e, ok := has(got, FiveByFive)
	if !ok {
		t.Fatalf("expected 5x5, got %v", categories(got))
	}
	if e.Detail != "12p/7r/6a/5s/5b" {
		t.Errorf("detail: got %q", e.Detail)
	}
	if _, ok := has(got, AllAroundGames); !ok {
		t.Error("5x5 is always an all-around game")
	}
	if _, ok := has(got, FiveBlockGames); !ok {
		t.Error("expected five-block bucket")
	}
}

func TestClassify_DerivedRules(t *testing.T) {
	cases := []struct {
		name     string
		line     model.PlayerBoxLine
		category string
		detail   string
	}{
		{"defensive monster", model.PlayerBoxLine{BLK: 4, STL: 3}, DefensiveMonster, "4 blocks, 3 steals (7 combined)"},
		{"perfect three", model.PlayerBoxLine{FG3: 4, FG3A: 4, FG: 4, FGA: 6, PTS: 12}, PerfectFromThree, "4/4 3PT (100%)"},
		{"hot shooting", model.PlayerBoxLine{FG: 7, FGA: 12, PTS: 16}, HotShootingGames, "7/12 FG (58.3%)"},
		{"perfect ft", model.PlayerBoxLine{FT: 6, FTA: 6, PTS: 6}, PerfectFTGames, "6/6 FT (100%)"},
		{"perfect fg", model.PlayerBoxLine{FG: 5, FGA: 5, PTS: 10}, PerfectFGGames, "5/5 FG (100%)"},
		{"efficient", model.PlayerBoxLine{PTS: 20, FG: 8, FGA: 12, FT: 4, FTA: 4}, EfficientScoring, "20 pts on 72.7% TS"},
		{"20/10/5", model.PlayerBoxLine{PTS: 21, TRB: 10, AST: 5}, TwentyTenFiveGames, "21 pts, 10 reb, 5 ast"},
		{"pts/ast dd", model.PlayerBoxLine{PTS: 11, AST: 10}, PointsAssistsDD, "11 pts, 10 ast"},
		{"zero turnovers", model.PlayerBoxLine{Minutes: 31.7}, ZeroTurnoverGames, "31 min, 0 turnovers"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			line := tc.line
			e, ok := has(Classify(&line, DefaultRules()), tc.category)
			if !ok {
				t.Fatalf("expected %s", tc.category)
			}
			if e.Detail != tc.detail {
				t.Errorf("detail: got %q, want %q", e.Detail, tc.detail)
			}
		})
	}
}

// Misses just below each derived threshold.
func TestClassify_DerivedRulesBelowThreshold(t *testing.T) {
	cases := []struct {
		name     string
		line     model.PlayerBoxLine
		category string
	}{
		{"three attempts only", model.PlayerBoxLine{FG3: 3, FG3A: 3}, PerfectFromThree},
		{"nine attempts", model.PlayerBoxLine{FG: 9, FGA: 9}, HotShootingGames},
		{"four free throws", model.PlayerBoxLine{FT: 4, FTA: 4}, PerfectFTGames},
		{"missed a free throw", model.PlayerBoxLine{FT: 7, FTA: 8}, PerfectFTGames},
		{"14 points", model.PlayerBoxLine{PTS: 14, FG: 7, FGA: 7}, EfficientScoring},
		{"19 minutes", model.PlayerBoxLine{Minutes: 19.9}, ZeroTurnoverGames},
		{"one turnover", model.PlayerBoxLine{Minutes: 30, TOV: 1}, ZeroTurnoverGames},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			line := tc.line
			if _, ok := has(Classify(&line, DefaultRules()), tc.category); ok {
				t.Errorf("unexpected %s", tc.category)
			}
		})
	}
}

// Banded buckets place a value in exactly one bucket per stat.
func TestDefaultRules_BandsAreExclusive(t *testing.T) {
	rules := DefaultRules()
	for _, stat := range []string{"pts", "trb", "ast", "stl", "blk", "fg3"} {
		for v := 0; v <= 60; v++ {
			n := 0
			for _, r := range rules {
				if r.Stat == stat && r.Matches(v) {
					n++
				}
			}
			if n > 1 {
				t.Errorf("%s=%d matches %d buckets", stat, v, n)
			}
		}
	}
}

// DefaultRules hands out a fresh copy each call.
func TestDefaultRules_FreshCopy(t *testing.T) {
	a := DefaultRules()
	a[0].Min = 999
	if DefaultRules()[0].Min == 999 {
		t.Fatal("DefaultRules shares backing storage")
	}
	if err := Validate(DefaultRules()); err != nil {
		t.Fatalf("default rules invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	low := 3
	err := Validate([]Rule{
		{Key: "", Stat: "pts", Min: 1},
		{Key: "x", Stat: "dunks", Min: 1},
		{Key: "y", Stat: "pts", Min: 5, Max: &low},
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"empty key", "unknown stat", "max 3 below min 5"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

// A custom table replaces the built-in buckets entirely.
func TestClassify_CustomRules(t *testing.T) {
	rules := []Rule{{Key: "twelve_point_games", Stat: "pts", Min: 12, Detail: "{value} pts"}}
	got := Classify(&model.PlayerBoxLine{PTS: 22}, rules)
	e, ok := has(got, "twelve_point_games")
	if !ok || e.Detail != "22 pts" {
		t.Fatalf("custom rule: got %v", got)
	}
	if _, ok := has(got, TwentyPointGames); ok {
		t.Error("default buckets should not apply with a custom table")
	}
}

func TestClassifyGame_FillsTeams(t *testing.T) {
	ctx := model.GameContext{AwayTeam: "Duke", HomeTeam: "UNC"}
	away := []model.PlayerBoxLine{{Name: "A", PTS: 25}}
	home := []model.PlayerBoxLine{{Name: "H", PTS: 20}}
	got := ClassifyGame(ctx, away, home, DefaultRules())
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %v", categories(got))
	}
	if got[0].Team != "Duke" || got[0].Opponent != "UNC" || got[0].Side != model.SideAway {
		t.Errorf("away entry: %+v", got[0])
	}
	if got[1].Team != "UNC" || got[1].Opponent != "Duke" || got[1].Side != model.SideHome {
		t.Errorf("home entry: %+v", got[1])
	}
}

func TestFromAnalysis_Tiers(t *testing.T) {
	a := &model.GameAnalysis{
		Context: model.GameContext{Gender: model.GenderMen, AwayTeam: "Duke", HomeTeam: "UNC", Winner: model.SideAway},
		Runs: []model.Run{
			{Team: "Duke", Side: model.SideAway, ScoringSpan: model.ScoringSpan{Points: 16, EndPeriod: 2}},
			{Team: "UNC", Side: model.SideHome, ScoringSpan: model.ScoringSpan{Points: 9, EndPeriod: 1}},
		},
		Streaks: []model.Streak{
			{Player: "A", Side: model.SideAway, ScoringSpan: model.ScoringSpan{Points: 8}},
		},
		Comeback: &model.ComebackResult{Side: model.SideAway, Deficit: 12},
		Clutch: model.ClutchScoring{
			Away: []model.ClutchLine{{Player: "A", Side: model.SideAway, Points: 10}},
		},
		WinningShots: model.WinningShots{
			Decisive:      &model.WinningShot{Player: "A", Side: model.SideAway, Points: 3, Score: "75-73", Time: "0:04"},
			ClutchGoAhead: &model.WinningShot{Player: "A", Side: model.SideAway, Points: 3, Score: "75-73", Time: "0:04"},
		},
	}
	got := FromAnalysis(a, 5)
	want := []string{FifteenPointTeamRun, EightPointPlayerStreak, TenPointComeback, ClutchTenPoints, ClutchGoAheadShot, GameWinningShot}
	if !reflect.DeepEqual(categories(got), want) {
		t.Fatalf("categories: got %v, want %v", categories(got), want)
	}
	details := []string{
		"16-0 run in H2",
		"8 consecutive points",
		"Overcame 12-point deficit to win",
		"10 pts in final 5 min",
		"Go-ahead 3pts with 0:04 left",
		"Game-winning shot (75-73)",
	}
	for i, d := range details {
		if got[i].Detail != d {
			t.Errorf("entry %d detail: got %q, want %q", i, got[i].Detail, d)
		}
	}
	if got[0].Opponent != "UNC" {
		t.Errorf("run opponent: got %q", got[0].Opponent)
	}
}

// A winner that never trailed produces no comeback milestone.
func TestFromAnalysis_NeverTrailed(t *testing.T) {
	a := &model.GameAnalysis{Comeback: &model.ComebackResult{NeverTrailed: true}}
	if got := FromAnalysis(a, 5); len(got) != 0 {
		t.Fatalf("expected no milestones, got %v", categories(got))
	}
}

func TestGroupByCategory(t *testing.T) {
	ctx := model.GameContext{AwayTeam: "Duke", HomeTeam: "UNC"}
	away := []model.PlayerBoxLine{{Name: "A", PTS: 25}, {Name: "B", PTS: 26}}
	home := []model.PlayerBoxLine{{Name: "H", PTS: 31, TRB: 10}}
	groups := GroupByCategory(ClassifyGame(ctx, away, home, DefaultRules()))

	if got := groups[TwentyFivePointGames]; len(got) != 2 || got[0].Player != "A" || got[1].Player != "B" {
		t.Errorf("%s: %+v", TwentyFivePointGames, got)
	}
	if got := groups[ThirtyTenGames]; len(got) != 1 || got[0].Player != "H" {
		t.Errorf("%s: %+v", ThirtyTenGames, got)
	}
	if _, ok := groups[TripleDoubles]; ok {
		t.Error("no entries should mean no group")
	}
}
