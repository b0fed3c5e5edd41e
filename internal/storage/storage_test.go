package storage

import (
	"reflect"
	"testing"

	"github.com/pable/go-hoops-metrics/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// makeAnalysis builds a small but complete analysis for one game.
func makeAnalysis(id, date string) *model.GameAnalysis {
	shot := &model.WinningShot{Player: "Jane Doe", Team: "Duke", Side: model.SideAway, Time: "0:04",
		Period: 2, Points: 3, PlayType: "made_three", Score: "75-73", Text: "Jane Doe made Three Point Jumper"}
	return &model.GameAnalysis{
		Context: model.GameContext{GameID: id, Date: date, Gender: model.GenderMen,
			AwayTeam: "Duke", HomeTeam: "UNC", FinalAway: 75, FinalHome: 73, Winner: model.SideAway},
		PlayCount: 312,
		Runs: []model.Run{
			{Team: "Duke", Side: model.SideAway, ScoringSpan: model.ScoringSpan{Points: 12, StartTime: "8:00", EndTime: "5:10",
				StartPeriod: 2, EndPeriod: 2, StartScore: "50-60", EndScore: "62-60"}},
			{Team: "UNC", Side: model.SideHome, ScoringSpan: model.ScoringSpan{Points: 9, StartTime: "15:00", EndTime: "12:00",
				StartPeriod: 1, EndPeriod: 1, StartScore: "10-10", EndScore: "10-19"}},
		},
		Streaks: []model.Streak{
			{Player: "Jane Doe", Team: "Duke", Side: model.SideAway, ScoringSpan: model.ScoringSpan{Points: 8, StartScore: "50-60", EndScore: "58-60"}},
		},
		Comeback: &model.ComebackResult{Team: "Duke", Side: model.SideAway, Deficit: 14, DeficitTime: "9:00",
			DeficitPeriod: 2, DeficitScore: "46-60", FinalScore: "75-73"},
		Clutch: model.ClutchScoring{
			Away: []model.ClutchLine{{Player: "Jane Doe", Side: model.SideAway, Points: 7, FGMakes: 2, FTMakes: 1, ThreeMakes: 1}},
			Home: []model.ClutchLine{{Player: "Mary Major", Side: model.SideHome, Points: 5, FGMakes: 2, FTMakes: 1}},
		},
		WinningShots: model.WinningShots{Decisive: shot, ClutchGoAhead: shot},
		Milestones: []model.MilestoneEntry{
			{Category: "thirty_point_games", Player: "Jane Doe", PlayerID: "doe01", Team: "Duke", Opponent: "UNC",
				Side: model.SideAway, Detail: "31 points", Stats: model.StatSnapshot{PTS: 31, TRB: 6, FG: 11, FGA: 20, Minutes: 35.5}},
			{Category: "ten_point_comeback", Team: "Duke", Opponent: "UNC", Side: model.SideAway, Detail: "Overcame 14-point deficit to win"},
		},
		Special: model.SpecialEvents{CloseGame: true, FinalMargin: 2, ComebackWin: true, ComebackSide: model.SideAway, ComebackDeficit: 11},
	}
}

func store(t *testing.T, db *DB, a *model.GameAnalysis, hash, events string) {
	t.Helper()
	if err := db.InsertAnalysis(a.Summary(hash, events), a); err != nil {
		t.Fatalf("InsertAnalysis: %v", err)
	}
}

func TestInsertAndGetAnalysis(t *testing.T) {
	db := openMemDB(t)
	a := makeAnalysis("g-duke-unc", "2024-03-09")
	store(t, db, a, "hash1", "Close game, Comeback (11-pt deficit)")

	exists, err := db.GameExists("g-duke-unc")
	if err != nil || !exists {
		t.Fatalf("GameExists: %v, %v", exists, err)
	}
	if stored, _ := db.SourceStored("hash1"); !stored {
		t.Error("expected source hash to be stored")
	}

	got, err := db.GetAnalysis("g-duke-unc")
	if err != nil {
		t.Fatalf("GetAnalysis: %v", err)
	}
	if got == nil {
		t.Fatal("expected analysis")
	}
	if !reflect.DeepEqual(got.Context, a.Context) || got.PlayCount != a.PlayCount {
		t.Errorf("context: got %+v", got.Context)
	}
	if !reflect.DeepEqual(got.Runs, a.Runs) {
		t.Errorf("runs: got %+v", got.Runs)
	}
	if !reflect.DeepEqual(got.Streaks, a.Streaks) {
		t.Errorf("streaks: got %+v", got.Streaks)
	}
	if !reflect.DeepEqual(got.Comeback, a.Comeback) {
		t.Errorf("comeback: got %+v", got.Comeback)
	}
	if !reflect.DeepEqual(got.Clutch, a.Clutch) {
		t.Errorf("clutch: got %+v", got.Clutch)
	}
	if !reflect.DeepEqual(got.WinningShots.Decisive, a.WinningShots.Decisive) || got.WinningShots.ClutchGoAhead == nil {
		t.Errorf("shots: got %+v", got.WinningShots)
	}
	if !reflect.DeepEqual(got.Milestones, a.Milestones) {
		t.Errorf("milestones: got %+v", got.Milestones)
	}
	if !reflect.DeepEqual(got.Special, a.Special) {
		t.Errorf("special: got %+v", got.Special)
	}
}

// Re-inserting a game replaces its child rows instead of duplicating them.
func TestInsertAnalysis_Idempotent(t *testing.T) {
	db := openMemDB(t)
	a := makeAnalysis("g1", "2024-03-09")
	store(t, db, a, "h", "")
	a.Runs = a.Runs[:1]
	a.WinningShots.ClutchGoAhead = nil
	store(t, db, a, "h", "")

	got, err := db.GetAnalysis("g1")
	if err != nil {
		t.Fatalf("GetAnalysis: %v", err)
	}
	if len(got.Runs) != 1 {
		t.Errorf("runs after re-insert: got %d", len(got.Runs))
	}
	if got.WinningShots.ClutchGoAhead != nil {
		t.Error("stale clutch go-ahead shot kept")
	}
	games, _ := db.ListGames()
	if len(games) != 1 {
		t.Errorf("games: got %d", len(games))
	}
}

func TestGetAnalysis_Unknown(t *testing.T) {
	db := openMemDB(t)
	got, err := db.GetAnalysis("nope")
	if err != nil || got != nil {
		t.Fatalf("expected nil, nil; got %v, %v", got, err)
	}
	g, err := db.GetGameByPrefix("nope")
	if err != nil || g != nil {
		t.Fatalf("expected nil, nil; got %v, %v", g, err)
	}
}

// A box-score-only game has no comeback row and no shots.
func TestGetAnalysis_NoPlayByPlay(t *testing.T) {
	db := openMemDB(t)
	a := &model.GameAnalysis{Context: model.GameContext{GameID: "box", Gender: model.GenderWomen, Winner: model.SideHome}}
	store(t, db, a, "h", "")
	got, err := db.GetAnalysis("box")
	if err != nil {
		t.Fatalf("GetAnalysis: %v", err)
	}
	if got.Comeback != nil || got.WinningShots.Decisive != nil || len(got.Runs) != 0 {
		t.Errorf("got %+v", got)
	}
	if got.Context.Gender != model.GenderWomen || got.Context.Winner != model.SideHome {
		t.Errorf("context: %+v", got.Context)
	}
}

func TestListGamesAndPrefix(t *testing.T) {
	db := openMemDB(t)
	store(t, db, makeAnalysis("401-older", "2024-01-01"), "h1", "")
	store(t, db, makeAnalysis("402-newer", "2024-02-01"), "h2", "Close game")

	games, err := db.ListGames()
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if len(games) != 2 || games[0].GameID != "402-newer" {
		t.Fatalf("order: %+v", games)
	}
	if games[0].Events != "Close game" || games[0].Winner != model.SideAway || games[0].AwayScore != 75 {
		t.Errorf("summary: %+v", games[0])
	}

	g, err := db.GetGameByPrefix("401")
	if err != nil || g == nil || g.GameID != "401-older" {
		t.Fatalf("GetGameByPrefix: %+v, %v", g, err)
	}
}

func TestMilestonesByCategory(t *testing.T) {
	db := openMemDB(t)
	store(t, db, makeAnalysis("g1", "2024-01-01"), "h1", "")
	store(t, db, makeAnalysis("g2", "2024-02-01"), "h2", "")

	got, err := db.GetMilestonesByCategory("thirty_point_games", 0)
	if err != nil {
		t.Fatalf("GetMilestonesByCategory: %v", err)
	}
	if len(got) != 2 || got[0].GameID != "g2" || got[0].Date != "2024-02-01" || got[0].Stats.PTS != 31 {
		t.Fatalf("got %+v", got)
	}
	limited, _ := db.GetMilestonesByCategory("thirty_point_games", 1)
	if len(limited) != 1 {
		t.Errorf("limit: got %d", len(limited))
	}

	counts, err := db.MilestoneCounts()
	if err != nil {
		t.Fatalf("MilestoneCounts: %v", err)
	}
	if len(counts) != 2 || counts[0].Count != 2 {
		t.Errorf("counts: %+v", counts)
	}
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)
	store(t, db, makeAnalysis("g1", "2024-01-01"), "h1", "")
	cols, rows, err := db.QueryRaw("SELECT id, away_score, play_count FROM games")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if len(cols) != 3 || len(rows) != 1 || rows[0][0] != "g1" || rows[0][1] != "75" {
		t.Errorf("got %v %v", cols, rows)
	}
	if _, _, err := db.QueryRaw("SELECT nope FROM nowhere"); err == nil {
		t.Error("expected error")
	}
}
