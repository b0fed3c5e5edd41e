package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pable/go-hoops-metrics/internal/model"
)

// gameDoc is the normalized game file: one game with its play stream, box
// score and line score, already resolved to away/home sides.
type gameDoc struct {
	GameID    string `json:"game_id"`
	Date      string `json:"date"`
	Gender    string `json:"gender"`
	AwayTeam  string `json:"away_team"`
	HomeTeam  string `json:"home_team"`
	AwayScore int    `json:"away_score"`
	HomeScore int    `json:"home_score"`

	Plays     []playDoc     `json:"plays"`
	BoxScore  boxScoreDoc   `json:"box_score"`
	LineScore *lineScoreDoc `json:"linescore"`
}

type boxScoreDoc struct {
	Away []boxDoc `json:"away"`
	Home []boxDoc `json:"home"`
}

type lineScoreDoc struct {
	Away lineDoc `json:"away"`
	Home lineDoc `json:"home"`
}

type playDoc struct {
	Time       string `json:"time"`
	Period     int    `json:"period"`
	TeamSide   string `json:"team_side"`
	Player     string `json:"player"`
	Team       string `json:"team"`
	ScoreValue int    `json:"score_value"`
	PlayType   string `json:"play_type"`
	Scoring    bool   `json:"scoring_play"`
	AwayScore  int    `json:"away_score"`
	HomeScore  int    `json:"home_score"`
	Text       string `json:"text"`
}

type boxDoc struct {
	Name     string     `json:"name"`
	PlayerID string     `json:"player_id"`
	MP       minutesDoc `json:"mp"`
	PTS      int        `json:"pts"`
	TRB      int        `json:"trb"`
	ORB      int        `json:"orb"`
	DRB      int        `json:"drb"`
	AST      int        `json:"ast"`
	STL      int        `json:"stl"`
	BLK      int        `json:"blk"`
	TOV      int        `json:"tov"`
	PF       int        `json:"pf"`
	FG       int        `json:"fg"`
	FGA      int        `json:"fga"`
	FG3      int        `json:"fg3"`
	FG3A     int        `json:"fg3a"`
	FT       int        `json:"ft"`
	FTA      int        `json:"fta"`
}

// lineDoc holds either halves or quarters, whichever the source recorded.
type lineDoc struct {
	Halves   []int `json:"halves"`
	Quarters []int `json:"quarters"`
	OT       []int `json:"OT"`
}

// minutesDoc accepts minutes played as "MM:SS", a decimal string or a number.
type minutesDoc float64

func (m *minutesDoc) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*m = 0
		return nil
	}
	if b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return fmt.Errorf("minutes: %w", err)
		}
		*m = minutesDoc(model.ParseMinutesPlayed(s))
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("minutes: %w", err)
	}
	*m = minutesDoc(f)
	return nil
}

// ParseNormalized decodes a normalized game file. A non-empty gender argument
// overrides the file's own gender field.
func ParseNormalized(data []byte, gender string) (*model.RawGame, error) {
	var doc gameDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse game: %w", err)
	}
	if len(doc.Plays) == 0 && len(doc.BoxScore.Away) == 0 && len(doc.BoxScore.Home) == 0 {
		return nil, ErrEmptyGame
	}
	g := doc.Gender
	if gender != "" {
		g = gender
	}

	plays := make([]model.Play, 0, len(doc.Plays))
	for _, p := range doc.Plays {
		playType := p.PlayType
		if playType == "" {
			playType = ClassifyPlay(p.Text, "")
		}
		player := p.Player
		if player == "" {
			player = ExtractPlayer(p.Text)
		}
		plays = append(plays, model.Play{
			Time:       p.Time,
			Period:     p.Period,
			Side:       model.ParseSide(p.TeamSide),
			Player:     player,
			Team:       p.Team,
			ScoreValue: p.ScoreValue,
			PlayType:   playType,
			IsScoring:  p.Scoring,
			AwayScore:  p.AwayScore,
			HomeScore:  p.HomeScore,
			Text:       p.Text,
		})
	}

	raw := &model.RawGame{
		Context: model.NewGameContext(doc.GameID, doc.Date, model.ParseGender(g),
			doc.AwayTeam, doc.HomeTeam, doc.AwayScore, doc.HomeScore, plays),
		Plays:   plays,
		AwayBox: boxLines(doc.BoxScore.Away),
		HomeBox: boxLines(doc.BoxScore.Home),
	}
	if ls := doc.LineScore; ls != nil {
		raw.LineScore = &model.LineScore{Away: ls.Away.teamLine(), Home: ls.Home.teamLine()}
	}
	return raw, nil
}

func (l lineDoc) teamLine() model.TeamLineScore {
	periods := l.Quarters
	if len(periods) == 0 {
		periods = l.Halves
	}
	return model.TeamLineScore{Periods: periods, OT: l.OT}
}

func boxLines(docs []boxDoc) []model.PlayerBoxLine {
	out := make([]model.PlayerBoxLine, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.PlayerBoxLine{
			Name: d.Name, ID: d.PlayerID,
			PTS: d.PTS, TRB: d.TRB, AST: d.AST, STL: d.STL, BLK: d.BLK,
			ORB: d.ORB, DRB: d.DRB, TOV: d.TOV, PF: d.PF,
			FG: d.FG, FGA: d.FGA, FG3: d.FG3, FG3A: d.FG3A, FT: d.FT, FTA: d.FTA,
			Minutes: float64(d.MP),
		})
	}
	return out
}
