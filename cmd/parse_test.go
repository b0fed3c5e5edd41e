package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pable/go-hoops-metrics/internal/aggregator"
	"github.com/pable/go-hoops-metrics/internal/parser"
)

const blowoutGame = `{
  "game_id": "g-blowout",
  "date": "2024-01-10",
  "gender": "M",
  "away_team": "Away U",
  "home_team": "Home St",
  "away_score": 90,
  "home_score": 65,
  "plays": [
    {"time": "19:30", "period": 1, "team_side": "away", "player": "Alice Archer", "team": "Away U",
     "score_value": 3, "play_type": "made_three", "scoring_play": true, "away_score": 3, "home_score": 0}
  ],
  "linescore": {"away": {"halves": [45, 45]}, "home": {"halves": [30, 35]}}
}`

const emptyGame = `{"game_id": "g-empty", "away_team": "A", "home_team": "H"}`

func writeGame(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// A file with neither plays nor a box score is skipped without dropping the
// valid games around it.
func TestAnalyseFiles_SkipsEmptyGame(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeGame(t, dir, "empty.json", emptyGame),
		writeGame(t, dir, "good.json", blowoutGame),
	}
	games, err := analyseFiles(paths, batchOptions{
		format:  parser.FormatNormalized,
		workers: 2,
		opts:    aggregator.DefaultOptions(),
	})
	if err != nil {
		t.Fatalf("analyseFiles: %v", err)
	}
	if len(games) != 2 || games[0] != nil {
		t.Fatalf("expected the empty file to be skipped, got %+v", games)
	}
	g := games[1]
	if g == nil || g.result == nil || g.gameID != "g-blowout" {
		t.Fatalf("good game: %+v", g)
	}
	if !g.result.Special.Blowout || g.summary.Events == "" {
		t.Errorf("expected a blowout summary, got %+v / %q", g.result.Special, g.summary.Events)
	}
}

// Other load errors still abort the batch.
func TestAnalyseFiles_BadFileAborts(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeGame(t, dir, "good.json", blowoutGame),
		writeGame(t, dir, "bad.json", `not json`),
	}
	if _, err := analyseFiles(paths, batchOptions{format: parser.FormatNormalized, workers: 1,
		opts: aggregator.DefaultOptions()}); err == nil {
		t.Fatal("expected an error for invalid JSON")
	}
}

// Already-stored sources are flagged before analysis runs.
func TestAnalyseFiles_StoredSourceNotAnalysed(t *testing.T) {
	dir := t.TempDir()
	path := writeGame(t, dir, "good.json", blowoutGame)
	var checked []string
	stored := func(hash string) (bool, error) {
		checked = append(checked, hash)
		return true, nil
	}
	games, err := analyseFiles([]string{path}, batchOptions{
		format:   parser.FormatNormalized,
		workers:  1,
		opts:     aggregator.DefaultOptions(),
		isStored: stored,
	})
	if err != nil {
		t.Fatalf("analyseFiles: %v", err)
	}
	if len(checked) != 1 || len(checked[0]) != 64 {
		t.Errorf("isStored calls: %v", checked)
	}
	g := games[0]
	if g == nil || !g.stored || g.result != nil || g.gameID != "g-blowout" {
		t.Errorf("stored game: %+v", g)
	}
}
