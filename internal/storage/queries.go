package storage

import (
	"database/sql"
	"fmt"

	"github.com/pable/go-hoops-metrics/internal/model"
)

// Winning-shot kinds stored in winning_shots.kind.
const (
	ShotDecisive      = "decisive"
	ShotClutchGoAhead = "clutch_go_ahead"
)

// childTables hold per-game rows that are replaced wholesale on re-insert.
var childTables = []string{
	"team_runs", "player_streaks", "comebacks", "clutch_lines",
	"winning_shots", "milestones", "special_events",
}

// GameExists returns true if a game with the given id is already stored.
func (db *DB) GameExists(id string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM games WHERE id = ?", id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SourceStored reports whether a game parsed from a file with this hash is stored.
func (db *DB) SourceStored(hash string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM games WHERE source_hash = ?", hash).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertAnalysis stores a full game analysis in one transaction. Any rows
// previously stored for the same game id are replaced.
func (db *DB) InsertAnalysis(sum model.GameSummary, a *model.GameAnalysis) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	id := sum.GameID
	for _, t := range childTables {
		if _, err := tx.Exec("DELETE FROM "+t+" WHERE game_id = ?", id); err != nil {
			return fmt.Errorf("clear %s: %w", t, err)
		}
	}

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO games(id, source_hash, date, gender, away_team, home_team,
			away_score, home_score, winner_side, play_count, events)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, sum.SourceHash, sum.Date, string(sum.Gender), sum.AwayTeam, sum.HomeTeam,
		sum.AwayScore, sum.HomeScore, sum.Winner.String(), sum.PlayCount, sum.Events,
	)
	if err != nil {
		return fmt.Errorf("insert game %s: %w", id, err)
	}

	if err := insertSpans(tx, id, a.Runs, a.Streaks); err != nil {
		return err
	}
	if err := insertClutch(tx, id, a.Clutch); err != nil {
		return err
	}
	if err := insertMilestones(tx, id, a.Milestones); err != nil {
		return err
	}

	if cb := a.Comeback; cb != nil {
		_, err = tx.Exec(`
			INSERT INTO comebacks(game_id, team, side, deficit, deficit_time, deficit_period,
				deficit_score, never_trailed, final_score)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, cb.Team, cb.Side.String(), cb.Deficit, cb.DeficitTime, cb.DeficitPeriod,
			cb.DeficitScore, boolInt(cb.NeverTrailed), cb.FinalScore,
		)
		if err != nil {
			return fmt.Errorf("insert comeback: %w", err)
		}
	}

	for kind, s := range map[string]*model.WinningShot{
		ShotDecisive:      a.WinningShots.Decisive,
		ShotClutchGoAhead: a.WinningShots.ClutchGoAhead,
	} {
		if s == nil {
			continue
		}
		_, err = tx.Exec(`
			INSERT INTO winning_shots(game_id, kind, player, team, side, time, period, points, play_type, score, text)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, kind, s.Player, s.Team, s.Side.String(), s.Time, s.Period, s.Points, s.PlayType, s.Score, s.Text,
		)
		if err != nil {
			return fmt.Errorf("insert %s shot: %w", kind, err)
		}
	}

	ev := a.Special
	_, err = tx.Exec(`
		INSERT INTO special_events(game_id, overtime, overtime_periods, blowout, blowout_margin,
			blowout_winner, close_game, final_margin, comeback_win, comeback_side, comeback_deficit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, boolInt(ev.Overtime), ev.OvertimePeriods, boolInt(ev.Blowout), ev.BlowoutMargin,
		ev.BlowoutWinner.String(), boolInt(ev.CloseGame), ev.FinalMargin,
		boolInt(ev.ComebackWin), ev.ComebackSide.String(), ev.ComebackDeficit,
	)
	if err != nil {
		return fmt.Errorf("insert special events: %w", err)
	}
	return tx.Commit()
}

func insertSpans(tx *sql.Tx, id string, runs []model.Run, streaks []model.Streak) error {
	runStmt, err := tx.Prepare(`
		INSERT INTO team_runs(game_id, seq, team, side, points, start_time, end_time,
			start_period, end_period, start_score, end_score)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer runStmt.Close()
	for i, r := range runs {
		_, err = runStmt.Exec(id, i, r.Team, r.Side.String(), r.Points, r.StartTime, r.EndTime,
			r.StartPeriod, r.EndPeriod, r.StartScore, r.EndScore)
		if err != nil {
			return fmt.Errorf("insert team_runs: %w", err)
		}
	}

	streakStmt, err := tx.Prepare(`
		INSERT INTO player_streaks(game_id, seq, player, team, side, points, start_time, end_time,
			start_period, end_period, start_score, end_score)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer streakStmt.Close()
	for i, s := range streaks {
		_, err = streakStmt.Exec(id, i, s.Player, s.Team, s.Side.String(), s.Points, s.StartTime, s.EndTime,
			s.StartPeriod, s.EndPeriod, s.StartScore, s.EndScore)
		if err != nil {
			return fmt.Errorf("insert player_streaks for %s: %w", s.Player, err)
		}
	}
	return nil
}

func insertClutch(tx *sql.Tx, id string, c model.ClutchScoring) error {
	stmt, err := tx.Prepare(`
		INSERT INTO clutch_lines(game_id, side, seq, player, points, fg_makes, ft_makes, three_makes)
		VALUES (?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, lines := range [][]model.ClutchLine{c.Away, c.Home} {
		for i, l := range lines {
			if _, err := stmt.Exec(id, l.Side.String(), i, l.Player, l.Points, l.FGMakes, l.FTMakes, l.ThreeMakes); err != nil {
				return fmt.Errorf("insert clutch_lines for %s: %w", l.Player, err)
			}
		}
	}
	return nil
}

func insertMilestones(tx *sql.Tx, id string, entries []model.MilestoneEntry) error {
	stmt, err := tx.Prepare(`
		INSERT INTO milestones(game_id, seq, category, player, player_id, team, opponent, side, detail,
			pts, trb, ast, stl, blk, fg, fga, fg3, fg3a, ft, fta, tov, minutes)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, e := range entries {
		s := e.Stats
		_, err = stmt.Exec(id, i, e.Category, e.Player, e.PlayerID, e.Team, e.Opponent, e.Side.String(), e.Detail,
			s.PTS, s.TRB, s.AST, s.STL, s.BLK, s.FG, s.FGA, s.FG3, s.FG3A, s.FT, s.FTA, s.TOV, s.Minutes)
		if err != nil {
			return fmt.Errorf("insert milestone %s: %w", e.Category, err)
		}
	}
	return nil
}

const gameColumns = `id, source_hash, date, gender, away_team, home_team, away_score, home_score, winner_side, play_count, events`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(r rowScanner) (model.GameSummary, error) {
	var s model.GameSummary
	var gender, winner string
	err := r.Scan(&s.GameID, &s.SourceHash, &s.Date, &gender, &s.AwayTeam, &s.HomeTeam,
		&s.AwayScore, &s.HomeScore, &winner, &s.PlayCount, &s.Events)
	s.Gender = model.ParseGender(gender)
	s.Winner = model.ParseSide(winner)
	return s, err
}

// ListGames returns all stored games ordered by date desc.
func (db *DB) ListGames() ([]model.GameSummary, error) {
	rows, err := db.conn.Query(`SELECT ` + gameColumns + ` FROM games ORDER BY date DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.GameSummary
	for rows.Next() {
		s, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetGameByPrefix finds the first game whose id starts with the given prefix.
func (db *DB) GetGameByPrefix(prefix string) (*model.GameSummary, error) {
	s, err := scanGame(db.conn.QueryRow(
		`SELECT `+gameColumns+` FROM games WHERE id LIKE ? ORDER BY id LIMIT 1`, prefix+"%"))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetAnalysis rebuilds the stored analysis of a game. Highlights are not
// stored; callers recompute them. Returns nil, nil when the game is unknown.
func (db *DB) GetAnalysis(gameID string) (*model.GameAnalysis, error) {
	sum, err := scanGame(db.conn.QueryRow(`SELECT `+gameColumns+` FROM games WHERE id = ?`, gameID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a := &model.GameAnalysis{
		Context: model.GameContext{
			GameID:    sum.GameID,
			Date:      sum.Date,
			Gender:    sum.Gender,
			AwayTeam:  sum.AwayTeam,
			HomeTeam:  sum.HomeTeam,
			FinalAway: sum.AwayScore,
			FinalHome: sum.HomeScore,
			Winner:    sum.Winner,
		},
		PlayCount: sum.PlayCount,
	}

	if a.Runs, err = db.GetTeamRuns(gameID); err != nil {
		return nil, fmt.Errorf("team runs: %w", err)
	}
	if a.Streaks, err = db.GetPlayerStreaks(gameID); err != nil {
		return nil, fmt.Errorf("player streaks: %w", err)
	}
	if a.Comeback, err = db.GetComeback(gameID); err != nil {
		return nil, fmt.Errorf("comeback: %w", err)
	}
	if a.Clutch, err = db.GetClutch(gameID); err != nil {
		return nil, fmt.Errorf("clutch: %w", err)
	}
	if a.WinningShots, err = db.GetWinningShots(gameID); err != nil {
		return nil, fmt.Errorf("winning shots: %w", err)
	}
	if a.Milestones, err = db.GetMilestones(gameID); err != nil {
		return nil, fmt.Errorf("milestones: %w", err)
	}
	if a.Special, err = db.GetSpecialEvents(gameID); err != nil {
		return nil, fmt.Errorf("special events: %w", err)
	}
	return a, nil
}

// GetTeamRuns returns a game's runs in stored (points desc) order.
func (db *DB) GetTeamRuns(gameID string) ([]model.Run, error) {
	rows, err := db.conn.Query(`
		SELECT team, side, points, start_time, end_time, start_period, end_period, start_score, end_score
		FROM team_runs WHERE game_id = ? ORDER BY seq`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Run
	for rows.Next() {
		var r model.Run
		var side string
		if err := rows.Scan(&r.Team, &side, &r.Points, &r.StartTime, &r.EndTime,
			&r.StartPeriod, &r.EndPeriod, &r.StartScore, &r.EndScore); err != nil {
			return nil, err
		}
		r.Side = model.ParseSide(side)
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetPlayerStreaks returns a game's streaks in stored (points desc) order.
func (db *DB) GetPlayerStreaks(gameID string) ([]model.Streak, error) {
	rows, err := db.conn.Query(`
		SELECT player, team, side, points, start_time, end_time, start_period, end_period, start_score, end_score
		FROM player_streaks WHERE game_id = ? ORDER BY seq`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Streak
	for rows.Next() {
		var s model.Streak
		var side string
		if err := rows.Scan(&s.Player, &s.Team, &side, &s.Points, &s.StartTime, &s.EndTime,
			&s.StartPeriod, &s.EndPeriod, &s.StartScore, &s.EndScore); err != nil {
			return nil, err
		}
		s.Side = model.ParseSide(side)
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetComeback returns nil, nil when the game had no play-by-play.
func (db *DB) GetComeback(gameID string) (*model.ComebackResult, error) {
	var cb model.ComebackResult
	var side string
	var never int
	err := db.conn.QueryRow(`
		SELECT team, side, deficit, deficit_time, deficit_period, deficit_score, never_trailed, final_score
		FROM comebacks WHERE game_id = ?`, gameID).
		Scan(&cb.Team, &side, &cb.Deficit, &cb.DeficitTime, &cb.DeficitPeriod, &cb.DeficitScore, &never, &cb.FinalScore)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	cb.Side = model.ParseSide(side)
	cb.NeverTrailed = never != 0
	return &cb, nil
}

func (db *DB) GetClutch(gameID string) (model.ClutchScoring, error) {
	var out model.ClutchScoring
	rows, err := db.conn.Query(`
		SELECT side, player, points, fg_makes, ft_makes, three_makes
		FROM clutch_lines WHERE game_id = ? ORDER BY side, seq`, gameID)
	if err != nil {
		return out, err
	}
	defer rows.Close()

	for rows.Next() {
		var l model.ClutchLine
		var side string
		if err := rows.Scan(&side, &l.Player, &l.Points, &l.FGMakes, &l.FTMakes, &l.ThreeMakes); err != nil {
			return out, err
		}
		l.Side = model.ParseSide(side)
		switch l.Side {
		case model.SideAway:
			out.Away = append(out.Away, l)
		case model.SideHome:
			out.Home = append(out.Home, l)
		}
	}
	return out, rows.Err()
}

func (db *DB) GetWinningShots(gameID string) (model.WinningShots, error) {
	var out model.WinningShots
	rows, err := db.conn.Query(`
		SELECT kind, player, team, side, time, period, points, play_type, score, text
		FROM winning_shots WHERE game_id = ?`, gameID)
	if err != nil {
		return out, err
	}
	defer rows.Close()

	for rows.Next() {
		var s model.WinningShot
		var kind, side string
		if err := rows.Scan(&kind, &s.Player, &s.Team, &side, &s.Time, &s.Period,
			&s.Points, &s.PlayType, &s.Score, &s.Text); err != nil {
			return out, err
		}
		s.Side = model.ParseSide(side)
		switch kind {
		case ShotDecisive:
			out.Decisive = &s
		case ShotClutchGoAhead:
			out.ClutchGoAhead = &s
		}
	}
	return out, rows.Err()
}

const milestoneColumns = `category, player, player_id, team, opponent, side, detail,
	pts, trb, ast, stl, blk, fg, fga, fg3, fg3a, ft, fta, tov, minutes`

func scanMilestone(r rowScanner, extra ...any) (model.MilestoneEntry, error) {
	var e model.MilestoneEntry
	var side string
	s := &e.Stats
	dest := append([]any{&e.Category, &e.Player, &e.PlayerID, &e.Team, &e.Opponent, &side, &e.Detail,
		&s.PTS, &s.TRB, &s.AST, &s.STL, &s.BLK, &s.FG, &s.FGA, &s.FG3, &s.FG3A, &s.FT, &s.FTA, &s.TOV, &s.Minutes},
		extra...)
	err := r.Scan(dest...)
	e.Side = model.ParseSide(side)
	return e, err
}

// GetMilestones returns a game's milestones in classification order.
func (db *DB) GetMilestones(gameID string) ([]model.MilestoneEntry, error) {
	rows, err := db.conn.Query(`SELECT `+milestoneColumns+` FROM milestones WHERE game_id = ? ORDER BY seq`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MilestoneEntry
	for rows.Next() {
		e, err := scanMilestone(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetMilestonesByCategory lists every stored entry of one category, newest
// game first. limit <= 0 means no limit.
func (db *DB) GetMilestonesByCategory(category string, limit int) ([]model.GameMilestone, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.conn.Query(`
		SELECT m.`+milestoneColumns+`, m.game_id, g.date
		FROM milestones m JOIN games g ON g.id = m.game_id
		WHERE m.category = ?
		ORDER BY g.date DESC, m.game_id, m.seq
		LIMIT ?`, category, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.GameMilestone
	for rows.Next() {
		var gm model.GameMilestone
		e, err := scanMilestone(rows, &gm.GameID, &gm.Date)
		if err != nil {
			return nil, err
		}
		gm.MilestoneEntry = e
		out = append(out, gm)
	}
	return out, rows.Err()
}

// MilestoneCounts returns entry counts per category, most frequent first.
func (db *DB) MilestoneCounts() ([]model.CategoryCount, error) {
	rows, err := db.conn.Query(`
		SELECT category, COUNT(1) FROM milestones GROUP BY category ORDER BY COUNT(1) DESC, category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CategoryCount
	for rows.Next() {
		var c model.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (db *DB) GetSpecialEvents(gameID string) (model.SpecialEvents, error) {
	var ev model.SpecialEvents
	var ot, blowout, closeGame, comeback int
	var blowoutWinner, comebackSide string
	err := db.conn.QueryRow(`
		SELECT overtime, overtime_periods, blowout, blowout_margin, blowout_winner, close_game,
			final_margin, comeback_win, comeback_side, comeback_deficit
		FROM special_events WHERE game_id = ?`, gameID).
		Scan(&ot, &ev.OvertimePeriods, &blowout, &ev.BlowoutMargin, &blowoutWinner, &closeGame,
			&ev.FinalMargin, &comeback, &comebackSide, &ev.ComebackDeficit)
	if err == sql.ErrNoRows {
		return ev, nil
	}
	if err != nil {
		return ev, err
	}
	ev.Overtime = ot != 0
	ev.Blowout = blowout != 0
	ev.CloseGame = closeGame != 0
	ev.ComebackWin = comeback != 0
	ev.BlowoutWinner = model.ParseSide(blowoutWinner)
	ev.ComebackSide = model.ParseSide(comebackSide)
	return ev, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
